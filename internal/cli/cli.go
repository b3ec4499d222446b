// Package cli holds the exit codes and fatal error reporting shared by the
// errbound commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/YuminosukeSato/errbound/pkg/log"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitNoInput = 1
	ExitFailure = 2
)

// ExitCode maps an error returned by a command to its exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var emptyErr *errors.EmptyInputError
	if errors.As(err, &emptyErr) {
		return ExitNoInput
	}
	return ExitFailure
}

// Fail reports err on w and through the structured logger, and returns the
// exit code for it.
func Fail(w io.Writer, msg string, err error) int {
	var emptyErr *errors.EmptyInputError
	if errors.As(err, &emptyErr) && emptyErr.Source != "" {
		fmt.Fprintf(w, "No CSV files found in %s folder\n", emptyErr.Source)
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}

	code := ExitCode(err)
	slog.Error(msg, log.ErrAttr(err), slog.String(log.ErrorCodeKey, Code(err)), slog.Int("exit_code", code))
	return code
}

// Code returns the ErrorCodeKey value for err.
func Code(err error) string {
	var (
		emptyErr  *errors.EmptyInputError
		schemaErr *errors.SchemaError
		parseErr  *errors.ParseError
		insErr    *errors.InsufficientDataError
		noRelErr  *errors.NoValidRelativeErrorError
	)
	switch {
	case errors.As(err, &emptyErr):
		return log.ErrorEmptyInput
	case errors.As(err, &schemaErr):
		return log.ErrorSchema
	case errors.As(err, &parseErr):
		return log.ErrorParse
	case errors.As(err, &insErr):
		return log.ErrorInsufficientData
	case errors.As(err, &noRelErr):
		return log.ErrorNoValidRelative
	}
	return "INTERNAL"
}
