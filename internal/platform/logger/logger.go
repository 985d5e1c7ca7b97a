package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Resolution diagnostics are logged at Debug
// because the resolvers swallow failures by contract; set RECAD_LOG_LEVEL=debug
// to see why a fallback fired.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("RECAD_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
