// Package logger configures the process-wide slog logger for the CLI.
package logger

import (
	"log/slog"
	"os"
)

// Init installs a JSON handler on stderr and returns the logger. Debug
// level is enabled when verbose is true; the default level keeps
// go:generate runs quiet.
func Init(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
	return logger
}
