// Package main implements the entry point for the deckorder API server,
// which keeps each deck's notes in a dense 1..N display order and
// resolves rendered Deck@NNNNN labels back to the notes they name.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
)

// main is the entry point for the deckorder-api server.
// It parses command line flags, then either runs a migration command
// or initializes the full application and starts the HTTP server.
func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run loads configuration, sets up logging, and dispatches to either the
// migration runner or the server lifecycle. Returns any startup or
// shutdown error so main can decide the process exit code.
func run(migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	// Migration commands run against the configured database and exit
	// without starting the server.
	if migrateCmd != "" {
		return handleMigrations(cfg, migrateCmd, logger)
	}

	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	// Bring the schema up to date before wiring anything that queries it
	if err := applyMigrations(db, logger); err != nil {
		closeDatabase(db, logger)
		return err
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		// The application owns the connection once constructed, so a
		// construction failure leaves only the database to release.
		closeDatabase(db, logger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
