package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/deckorder-api/internal/config"
	"github.com/phrazzld/deckorder-api/internal/platform/logger"
)

// setupAppLogger builds the process logger from the loaded configuration.
// Everything logged before this point goes through the slog default.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	return l, nil
}
