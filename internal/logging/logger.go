// Package logging provides structured logging for targetrun.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a structured logger writing to stderr.
// Format is "text" or "json"; level is "debug", "info", "warn" or
// "error". Verbose forces debug level and adds source locations.
func New(format, level string, verbose bool) *slog.Logger {
	logLevel := parseLevel(level)
	if verbose {
		logLevel = slog.LevelDebug
	}
	return NewWithWriter(os.Stderr, format, logLevel)
}

// NewWithWriter creates a logger that writes to a custom writer.
// Useful for tests.
func NewWithWriter(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		// A CLI tool defaults to human-readable output.
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// SetDefault installs the logger as the slog default.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
