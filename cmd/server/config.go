package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/deckorder-api/internal/config"
)

// loadAppConfig loads and validates the server configuration. It runs
// before the logger is configured, so anything it logs goes through the
// process default handler.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"task_workers", cfg.Task.WorkerCount,
		"verify_on_startup", cfg.Task.VerifyOnStartup)

	// Presence only. The values themselves never get logged.
	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}
	if cfg.Auth.JWTSecret != "" {
		slog.Debug("Auth configuration", "jwt_secret_present", true)
	}

	return cfg, nil
}
