// Package logger configures the process-wide slog logger.
package logger

import (
	"log/slog"
	"os"
)

// Init initializes the global logger based on environment.
// Development: text format with Debug level.
// Production: JSON format with Info level.
func Init(isDev bool) {
	var handler slog.Handler
	if isDev {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	slog.SetDefault(slog.New(handler))
}
