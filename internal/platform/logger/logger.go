// Package logger provides structured logging functionality for the
// application using Go's standard library log/slog package.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/tasknest/tasknest-api/internal/config"
)

// contextKey is the private type for logger context values.
type contextKey struct{}

var loggerKey contextKey

// Setup initializes the application's logging system based on the
// provided configuration. It creates a structured JSON logger with the
// configured log level, sets it as the process default, and returns it.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo

		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)

	slog.SetDefault(logger)

	return logger, nil
}

// WithLogger returns a context carrying the given logger. Handlers and
// middleware use this to propagate a request-scoped logger (e.g. one
// annotated with a trace ID) down to stores and services.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from the context, falling back to
// the process default logger when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger from the context, falling
// back to the provided default. A nil defaultLogger falls back to the
// process default logger.
func FromContextOrDefault(ctx context.Context, defaultLogger *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.Default()
}
