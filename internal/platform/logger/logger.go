package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/deckorder-api/internal/config"
)

// Setup builds the process logger from the server configuration and
// installs it as the slog default: a JSON handler on stdout filtered to
// the configured level. An unrecognized level falls back to info rather
// than failing startup.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	level, ok := parseLevel(cfg.LogLevel)
	if !ok {
		level = slog.LevelInfo

		// The JSON logger does not exist yet, so the warning goes out
		// through a throwaway text handler on stderr.
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Warn(
			"invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	// Package-level slog calls elsewhere in the process pick this up.
	slog.SetDefault(log)

	return log, nil
}

// parseLevel maps a configured level name onto a slog.Level,
// case-insensitively. The second return reports whether the name
// was recognized.
func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
