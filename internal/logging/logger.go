// Package logging provides structured logging configuration using log/slog.
//
// Long-running operations such as spreadsheet imports are tagged with a run
// ID so all log entries for one run can be correlated after the fact.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
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

// WithRun returns a logger that carries a run_id field on every entry.
//
// Usage:
//
//	logger := logging.WithRun(runID)
//	logger.Info("import started", "file", path)
//	// ... later ...
//	logger.Info("import completed", "rows", imported)
func WithRun(runID string) *slog.Logger {
	logger := slog.Default()
	if runID != "" {
		logger = logger.With("run_id", runID)
	}
	return logger
}
