package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	std  *slog.Logger
	once sync.Once
)

// Init configures the process-wide logger. level accepts debug/info/warn/error.
func Init(level string) {
	once.Do(func() {
		std = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(level),
		}))
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func get() *slog.Logger {
	if std == nil {
		Init("info")
	}
	return std
}

func log(level slog.Level, msg string, args ...any) {
	// Callers sometimes pass a bare error as the trailing argument.
	if len(args)%2 == 1 {
		last := args[len(args)-1]
		args = append(args[:len(args)-1], "error", last)
	}
	get().Log(context.Background(), level, msg, args...)
}

func Debug(msg string, args ...any) { log(slog.LevelDebug, msg, args...) }
func Info(msg string, args ...any)  { log(slog.LevelInfo, msg, args...) }
func Warn(msg string, args ...any)  { log(slog.LevelWarn, msg, args...) }
func Error(msg string, args ...any) { log(slog.LevelError, msg, args...) }
