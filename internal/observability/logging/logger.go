// Package logging provides structured logging built on log/slog.
package logging

import (
	"context"
	"log/slog"
	"os"

	"newsstash/internal/handler/http/requestid"
)

// New creates a structured logger with JSON output. The level is controlled
// by the LOG_LEVEL environment variable ("debug" enables debug logging;
// anything else means info).
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// WithRequestID returns a logger that includes the request ID from the
// context, enabling correlation of log entries within one request.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
