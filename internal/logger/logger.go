package logger

import (
	"log/slog"
	"os"
)

func Load() *slog.Logger {
	opts := &slog.HandlerOptions{Level: level()}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func level() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
