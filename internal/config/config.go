package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the daemon configuration. Values come from defaults, an
// optional YAML file, then environment overrides, in that order.
type Config struct {
	ListenAddr         string    `yaml:"listen_addr"`
	DBPath             string    `yaml:"db_path"`
	CORSOrigin         string    `yaml:"cors_origin"`
	ProgressIntervalMs int       `yaml:"progress_interval_ms"`
	Sim                SimConfig `yaml:"sim"`
}

// SimConfig configures the stand-in renderer the daemon uses when no real
// engine is attached.
type SimConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
}

func Default() *Config {
	return &Config{
		ListenAddr:         ":7936",
		DBPath:             "./data/playerctl.db",
		ProgressIntervalMs: 250,
		Sim:                SimConfig{DurationSeconds: 600},
	}
}

// Load builds the configuration: defaults, merged with the YAML file at
// path when one is given, then environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.ListenAddr = envOr("PLAYERCTL_LISTEN_ADDR", cfg.ListenAddr)
	cfg.DBPath = envOr("PLAYERCTL_DB_PATH", cfg.DBPath)
	cfg.CORSOrigin = envOr("PLAYERCTL_CORS_ORIGIN", cfg.CORSOrigin)

	if cfg.ProgressIntervalMs <= 0 {
		return nil, fmt.Errorf("progress_interval_ms must be positive, got %d", cfg.ProgressIntervalMs)
	}
	if cfg.Sim.DurationSeconds <= 0 {
		return nil, fmt.Errorf("sim.duration_seconds must be positive, got %d", cfg.Sim.DurationSeconds)
	}
	return cfg, nil
}

func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.ProgressIntervalMs) * time.Millisecond
}

func (c *Config) SimDuration() time.Duration {
	return time.Duration(c.Sim.DurationSeconds) * time.Second
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
