package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger: JSON on stdout, info level. Services log
// through *slog.Logger so handlers and workers share one configuration.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
