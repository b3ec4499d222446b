// Package log provides the structured logging interface used across errbound.
//
// The Logger interface is deliberately slog-shaped (message plus alternating
// key/value fields) so that the concrete backend can be swapped. The default
// backend is zerolog (see zerolog.go); tests use TestLogger, which records
// JSON lines in memory.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("bound").With(
//	    log.OperationKey, log.OperationAggregate,
//	)
//	logger.Info("bounds computed",
//	    log.SamplesKey, 1000,
//	    log.RecommendedBoundKey, 0.25,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
type Logger interface {
	// Debug logs a debug-level message with optional key/value fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional key/value fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional key/value fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional key/value fields.
	// If the first field is an error it is logged under ErrAttrKey together
	// with its stack trace when one is attached.
	//
	//   logger.Error("load failed", err, log.FileKey, path)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider defines an interface for creating and configuring loggers.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
