package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/phrazzld/deckorder-api/internal/config"
	"github.com/pressly/goose/v3"
)

// migrationsRelDir is the repository-relative directory holding the
// goose migration files.
const migrationsRelDir = "internal/platform/postgres/migrations"

// migrationTableName is the goose bookkeeping table, shared with the
// test database setup so both track the same applied set.
const migrationTableName = "schema_migrations"

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct{}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error
// Note: Unlike the standard Fatalf behavior, this does NOT call os.Exit
// to allow main.go to handle application exit consistently
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// handleMigrations executes the requested migration command against the
// configured database and returns once it completes. It is called from
// run() when the -migrate flag is set.
func handleMigrations(cfg *config.Config, command string, logger *slog.Logger) error {
	migrationLogger := logger.With("component", "migrations", "command", command)

	dbURL := cfg.Database.URL
	if dbURL == "" {
		return fmt.Errorf("database URL is empty: check your configuration")
	}
	migrationLogger.Info("Using database URL", "url", maskDatabaseURL(dbURL))

	// Open a dedicated connection for the migration run
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			migrationLogger.Error("Error closing database connection", "error", closeErr)
		}
	}()

	migrationsDir, err := setupGoose()
	if err != nil {
		return err
	}
	migrationLogger.Info("Using migrations directory", "path", migrationsDir)

	switch command {
	case "up":
		migrationLogger.Info("Applying pending migrations")
		err = goose.Up(db, migrationsDir)
	case "down":
		migrationLogger.Info("Rolling back one migration version")
		err = goose.Down(db, migrationsDir)
	case "status":
		migrationLogger.Info("Checking migration status")
		err = goose.Status(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command: %s (expected up, down, or status)", command)
	}

	if err != nil {
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	migrationLogger.Info("Migration command executed successfully")
	return nil
}

// applyMigrations brings the schema up to date on the given connection.
// Plain server starts call this so a fresh database boots without a
// separate migration step.
func applyMigrations(db *sql.DB, logger *slog.Logger) error {
	migrationsDir, err := setupGoose()
	if err != nil {
		return err
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("Database schema is up to date")
	return nil
}

// setupGoose configures the goose globals shared by the -migrate
// commands and startup migration, returning the migrations directory.
func setupGoose() (string, error) {
	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate migrations directory: %w", err)
	}

	// Route goose's own output through slog
	goose.SetLogger(&slogGooseLogger{})

	if err := goose.SetDialect("postgres"); err != nil {
		return "", fmt.Errorf("failed to set dialect: %w", err)
	}
	goose.SetTableName(migrationTableName)

	return migrationsDir, nil
}

// resolveMigrationsDir locates the migration files by walking up from
// the working directory to the module root. This keeps the command
// usable both from the repository root and from subdirectories.
func resolveMigrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			migrationsDir := filepath.Join(dir, filepath.FromSlash(migrationsRelDir))
			if info, err := os.Stat(migrationsDir); err == nil && info.IsDir() {
				return migrationsDir, nil
			}
			return "", fmt.Errorf("migrations directory not found at %s", migrationsDir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod in any parent directory")
		}
		dir = parent
	}
}

// maskDatabaseURL masks the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		username := parsedURL.User.Username()
		parsedURL.User = url.UserPassword(username, "****")
		return parsedURL.String()
	}

	return dbURL
}
