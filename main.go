package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightriskradar/internal/api"
	"flightriskradar/internal/catalog"
	"flightriskradar/internal/config"
	"flightriskradar/internal/daemon"
	"flightriskradar/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	flag.Parse()

	if *configPath != "" {
		os.Setenv("FLIGHTRISK_CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		// Logger isn't initialized yet
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logCloser := logging.Init(cfg.Log)
	defer logCloser.Close()

	cat, err := catalog.Load(catalog.Source{
		DBPath:        cfg.DBPath,
		RecordsCSV:    cfg.Catalog.RecordsCSV,
		VariationsCSV: cfg.Catalog.VariationsCSV,
	})
	if err != nil {
		slog.Error("Failed to load aircraft catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("Aircraft catalog loaded",
		"records", len(cat.Records()),
		"variations", len(cat.Variations()),
		"db_path", cfg.DBPath,
	)

	handler := api.NewHandler(cat, slog.Default())

	d, err := daemon.New(daemon.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handler.Routes())
	if err != nil {
		slog.Error("Failed to create daemon", "error", err)
		os.Exit(1)
	}

	if err := d.Start(); err != nil {
		slog.Error("Failed to start daemon", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		slog.Info("Received interrupt signal, shutting down...")
	case err := <-d.Done():
		if err != nil {
			slog.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := d.Stop(ctx); err != nil {
		slog.Error("Error stopping daemon", "error", err)
	}

	slog.Info("Shutdown complete")
}
