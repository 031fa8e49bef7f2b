package docdex

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with docdex-specific helpers so log fields stay
// consistent across the write and query paths.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// LogInsert logs a single-document insert.
func (l *Logger) LogInsert(ctx context.Context, collection string, id uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed",
			"collection", collection,
			"id", id,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "insert completed",
			"collection", collection,
			"id", id,
		)
	}
}

// LogBulkInsert logs a bulk insert.
func (l *Logger) LogBulkInsert(ctx context.Context, collection string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "bulk insert failed",
			"collection", collection,
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "bulk insert completed",
			"collection", collection,
			"count", count,
		)
	}
}

// LogSearch logs one query of any mode.
func (l *Logger) LogSearch(ctx context.Context, collection, mode string, hits int, err error) {
	if err != nil {
		l.DebugContext(ctx, "search failed",
			"collection", collection,
			"mode", mode,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"collection", collection,
			"mode", mode,
			"hits", hits,
		)
	}
}
