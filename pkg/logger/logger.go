// Package logger holds the process-wide structured logger. Init is called
// once from main before any component logs.
package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init configures JSON output on stdout. Level is controlled by LOG_LEVEL
// (debug, info, warn, error), defaulting to debug.
func Init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	Log = slog.New(handler)
}

func levelFromEnv() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
