// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/deckorder-api/internal/config"
	"github.com/phrazzld/deckorder-api/internal/platform/logger"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case level", logLevel: "INFO"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
		{name: "empty level falls back to info", logLevel: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log, "Setup must return a usable logger")

			// Setup installs the returned logger as the process default
			assert.Equal(t, log, slog.Default())
		})
	}
}

func TestSetupLevelFiltering(t *testing.T) {
	log, err := logger.Setup(config.ServerConfig{LogLevel: "warn"})
	require.NoError(t, err)

	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestWithLoggerAndFromContext(t *testing.T) {
	annotated := slog.Default().With(slog.String("trace_id", "abc123"))
	ctx := logger.WithLogger(context.Background(), annotated)

	assert.Equal(t, annotated, logger.FromContext(ctx))

	// A bare context falls back to the default logger
	assert.Equal(t, slog.Default(), logger.FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	componentLogger := slog.Default().With(slog.String("component", "test"))

	// Context logger wins when present
	ctxLogger := slog.Default().With(slog.String("trace_id", "abc123"))
	ctx := logger.WithLogger(context.Background(), ctxLogger)
	assert.Equal(t, ctxLogger, logger.FromContextOrDefault(ctx, componentLogger))

	// Provided default wins over the process default
	assert.Equal(
		t,
		componentLogger,
		logger.FromContextOrDefault(context.Background(), componentLogger),
	)

	// Nil default still yields a usable logger
	assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))
}
