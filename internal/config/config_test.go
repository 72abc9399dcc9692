package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":7936" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.ProgressInterval() != 250*time.Millisecond {
		t.Errorf("ProgressInterval = %v, want 250ms", cfg.ProgressInterval())
	}
	if cfg.SimDuration() != 10*time.Minute {
		t.Errorf("SimDuration = %v, want 10m", cfg.SimDuration())
	}
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("listen_addr: \":9000\"\nsim:\n  duration_seconds: 30\n")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q, want :9000", cfg.ListenAddr)
	}
	if cfg.SimDuration() != 30*time.Second {
		t.Errorf("SimDuration = %v, want 30s", cfg.SimDuration())
	}
	// Untouched fields keep their defaults.
	if cfg.ProgressIntervalMs != 250 {
		t.Errorf("ProgressIntervalMs = %d, want 250", cfg.ProgressIntervalMs)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: \":9000\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLAYERCTL_LISTEN_ADDR", ":9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":9100" {
		t.Errorf("ListenAddr = %q, want :9100", cfg.ListenAddr)
	}
}

func TestMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestInvalidIntervalRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("progress_interval_ms: 0\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for zero progress interval")
	}
}
