package logging

import (
	"io"
	"log/slog"
	"os"
)

type LogLevel string

const (
	LogLevelNone  LogLevel = "none"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
)

var logger *slog.Logger

// Setup installs the process logger writing to stderr.
func Setup(optslevel LogLevel) {
	SetupSink(os.Stderr, optslevel)
}

// SetupSink installs the process logger writing to sink. LogLevelNone
// discards everything regardless of sink.
func SetupSink(sink io.Writer, optslevel LogLevel) {
	if optslevel == LogLevelNone {
		sink = io.Discard
	}

	handler := slog.NewTextHandler(sink, &slog.HandlerOptions{
		Level: slogLevel(optslevel),
	})
	logger = slog.New(handler)
}

// Reset drops the process logger, turning every Log call into a no-op.
func Reset() {
	logger = nil
}
