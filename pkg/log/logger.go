package log

import (
	"io"
	"log/slog"
	"os"

	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/mattn/go-isatty"
)

// SetupLogger configures process-wide logging for a command:
//   - the zerolog provider behind GetLogger writes to stderr,
//   - slog's default logger writes to stderr through ErrFmtHandler,
//   - errors.Warn is routed into the zerolog provider.
//
// Output is human readable when stderr is a terminal and JSON otherwise.
// Stdout is left to the command's report output.
func SetupLogger(loglevel string) error {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return SetupConsoleLoggerTo(os.Stderr, loglevel)
	}
	return SetupLoggerTo(os.Stderr, loglevel)
}

// SetupLoggerTo is SetupLogger with an explicit destination and JSON output.
func SetupLoggerTo(w io.Writer, loglevel string) error {
	return setup(w, loglevel, false)
}

// SetupConsoleLoggerTo is SetupLogger with an explicit destination and
// console output.
func SetupConsoleLoggerTo(w io.Writer, loglevel string) error {
	return setup(w, loglevel, true)
}

func setup(w io.Writer, loglevel string, console bool) error {
	level, err := ParseLevel(loglevel)
	if err != nil {
		return err
	}

	ops := slog.HandlerOptions{
		AddSource: level <= LevelDebug,
		Level:     slog.Level(level),
	}
	var (
		provider *ZerologProvider
		handler  slog.Handler
	)
	if console {
		provider = NewConsoleProvider(w, level)
		handler = slog.NewTextHandler(w, &ops)
	} else {
		provider = NewZerologProvider(w, level)
		handler = slog.NewJSONHandler(w, &ops)
	}
	SetGlobalLogger(provider)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))

	warnLogger := provider.GetLoggerWithName("warning")
	errors.SetZerologWarnFunc(func(warning error) {
		warnLogger.Warn(warning.Error(), "warning", warning)
	})
	return nil
}

// ParseLevel converts a level name to a Level.
func ParseLevel(level string) (Level, error) {
	switch level {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log-level", "must be one of debug, info, warn, error", level)
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
