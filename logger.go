package dupetrack

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dupetrack-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

var noopLogger = &Logger{Logger: slog.New(slog.DiscardHandler)}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger returns a Logger that discards all log output.
func NoopLogger() *Logger {
	return noopLogger
}

// WithName adds a tracker name field, useful when several trackers share a
// handler.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("tracker", name),
	}
}

// LogSpill logs the allocator grabbing a heap chunk after the inline arena ran out.
// arena is only formatted when debug logging is enabled.
func (l *Logger) LogSpill(arena fmt.Stringer, chunk, elements int) {
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("arena spill",
		"arena", arena.String(),
		"chunk", chunk,
		"elements", elements,
	)
}

// LogRehash logs a bucket array resize.
func (l *Logger) LogRehash(from, to, elements int) {
	l.Debug("rehash",
		"from_buckets", from,
		"to_buckets", to,
		"elements", elements,
	)
}

// LogReserve logs an explicit capacity reservation.
func (l *Logger) LogReserve(n, buckets int) {
	l.Debug("reserve",
		"count", n,
		"buckets", buckets,
	)
}
