package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"playerctl/internal/cast"
	"playerctl/internal/config"
	"playerctl/internal/controller"
	"playerctl/internal/event"
	"playerctl/internal/orientation"
	"playerctl/internal/renderer"
	"playerctl/internal/server"
	"playerctl/internal/store"
)

func main() {
	configPath := flag.String("config", os.Getenv("PLAYERCTL_CONFIG"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		log.Fatal(err)
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer st.Close()

	if err := st.Migrate(); err != nil {
		log.Fatalf("running migrations: %v", err)
	}

	// A one-time token grant replaces any previously stored hash.
	if token := os.Getenv("PLAYERCTL_API_TOKEN"); token != "" {
		hash, err := server.HashToken(token)
		if err != nil {
			log.Fatalf("hashing API token: %v", err)
		}
		if err := st.SetTokenHash(hash); err != nil {
			log.Fatalf("storing API token: %v", err)
		}
		log.Println("API token configured, bearer auth enabled")
	}

	bus := event.NewBus()

	ctrl := controller.New(bus, renderer.SimFactory(cfg.SimDuration()),
		controller.WithProgressInterval(cfg.ProgressInterval()))
	defer ctrl.Destroy()

	samples := make(chan int, 64)
	policy := orientation.NewPolicy(ctrl, orientation.Unlocked, bus)
	policy.Start(context.Background(), samples)
	defer policy.Stop()

	peer := cast.NewPeer(cast.Unavailable{}, st)

	opts := []server.Option{
		server.WithCastPeer(peer),
		server.WithOrientationSamples(samples),
	}
	if cfg.CORSOrigin != "" {
		opts = append(opts, server.WithCORSOrigin(cfg.CORSOrigin))
	}
	srv := server.New(ctrl, bus, st, opts...)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("playerctl listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
