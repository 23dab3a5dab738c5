package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"paydoc-studio/internal/config"
	"paydoc-studio/internal/manager"
	"paydoc-studio/internal/preview"
	"paydoc-studio/internal/registry"
	"paydoc-studio/internal/storage"
)

// application holds the application-wide dependencies for the API server.
type application struct {
	logger    *slog.Logger
	manager   *manager.Manager
	registry  *registry.Registry
	projector *preview.Projector
}

func main() {
	configPath := flag.String("config", "", "Path to the configuration file (optional)")
	flag.Parse()

	// --- Configuration ---
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Initialize Logger ---
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	logger.Info("Using data directory", "path", cfg.DataDir)

	// --- Initialize Storage ---
	store, err := storage.NewJSONStore(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to initialize template store", "error", err)
		os.Exit(1)
	}

	// --- Initialize Registry ---
	reg, err := registry.LoadFile(cfg.RegistryFile)
	if err != nil {
		logger.Error("Failed to load system-field catalog", "error", err)
		os.Exit(1)
	}

	// --- Initialize Manager ---
	mgr, err := manager.NewManager(store, logger)
	if err != nil {
		logger.Error("Failed to hydrate template collections", "error", err)
		os.Exit(1)
	}

	app := &application{
		logger:    logger,
		manager:   mgr,
		registry:  reg,
		projector: preview.NewProjector(reg),
	}

	// --- Start Server ---
	logger.Info("Starting template studio server", "address", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, app.routes()); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
