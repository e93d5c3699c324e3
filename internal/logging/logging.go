// Package logging builds the process-wide structured logger and threads it
// through contexts so request handlers and deep call sites share one
// configured [*slog.Logger].
//
// Output is controlled by two environment variables:
//
//	LOG_LEVEL  = debug | info | warn | error  (default info)
//	LOG_FORMAT = json | text                  (default json; text reads better locally)
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// ctxKey keys the logger stored in a context.
type ctxKey struct{}

// New constructs the logger from the environment. Everything goes to stderr
// so command output on stdout stays pipeable.
func New() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}

	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, opts)
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger carried by ctx, falling back to
// [slog.Default] so call sites never nil-check.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// parseLevel maps a LOG_LEVEL string to a slog level. Unknown values mean Info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
