package logging

import (
	"context"
	"log/slog"
)

// Log writes a record at level. Only info and debug are valid here, errors go
// through LogErr.
func Log(level LogLevel, msg string, args ...any) {
	if logger == nil {
		return
	}
	switch level {
	case LogLevelDebug, LogLevelInfo:
		logger.Log(context.Background(), slogLevel(level), msg, args...)
	default:
		panic("logging: Log called with level " + string(level) + ", use -lnone or --loglevel=none to disable logging")
	}
}

func LogErr(err error, msg string) {
	if err == nil || logger == nil {
		return
	}

	logger.Error(msg, "error", err.Error())
}

// DebugEnabled lets hot loops skip building log arguments.
func DebugEnabled() bool {
	return logger != nil && logger.Enabled(context.Background(), slog.LevelDebug)
}

func slogLevel(level LogLevel) slog.Level {
	if level == LogLevelInfo {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
