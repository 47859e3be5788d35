package core

import (
	"context"
	"fmt"
	"log/slog"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// SlogLogger adapts a *slog.Logger to the Logger interface. Printf output is
// emitted at the configured level.
type SlogLogger struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogLogger wraps logger so that Printf calls are logged at level
func NewSlogLogger(logger *slog.Logger, level slog.Level) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger, level: level}
}

// Printf formats the message and logs it
func (l *SlogLogger) Printf(format string, args ...interface{}) {
	l.logger.Log(context.Background(), l.level, fmt.Sprintf(format, args...))
}

// Slog returns the underlying structured logger
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

// NopLogger discards everything
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(string, ...interface{}) {}
