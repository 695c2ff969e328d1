package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

type ctxKey struct{}

func init() {
	// safe defaults for tests; main calls Initialize with the configured values
	Initialize("info", false)
}

// Initialize sets up the global logger with the specified level and format
func Initialize(level string, useJSON bool) {
	InitializeTo(os.Stdout, level, useJSON)
}

func InitializeTo(w io.Writer, level string, useJSON bool) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	var handler slog.Handler
	if useJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// WithContext stores a request scoped logger in ctx.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request scoped logger, or the global one.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return Log
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
