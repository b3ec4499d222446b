package cli

import (
	"bytes"
	"testing"

	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/YuminosukeSato/errbound/pkg/log"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{name: "success", err: nil, want: ExitOK},
		{name: "no input", err: errors.NewEmptyInputError("results"), want: ExitNoInput, code: log.ErrorEmptyInput},
		{name: "schema", err: errors.NewSchemaError("a.csv", []string{"exact"}, nil), want: ExitFailure, code: log.ErrorSchema},
		{name: "parse", err: errors.NewParseError("a.csv", 2, "exact", "x", nil), want: ExitFailure, code: log.ErrorParse},
		{name: "insufficient", err: errors.NewInsufficientDataError("ComputeBounds", 2, 1), want: ExitFailure, code: log.ErrorInsufficientData},
		{name: "wrapped", err: errors.Wrap(errors.NewEmptyInputError(""), "load"), want: ExitNoInput, code: log.ErrorEmptyInput},
		{name: "other", err: errors.New("disk full"), want: ExitFailure, code: "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
			if tt.err != nil {
				assert.Equal(t, tt.code, Code(tt.err))
			}
		})
	}
}

func TestFail(t *testing.T) {
	var out bytes.Buffer
	code := Fail(&out, "analysis failed", errors.NewEmptyInputError("results"))
	assert.Equal(t, ExitNoInput, code)
	assert.Equal(t, "No CSV files found in results folder\n", out.String())

	out.Reset()
	code = Fail(&out, "analysis failed", errors.NewInsufficientDataError("ComputeBounds", 2, 1))
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out.String(), "Error: errbound: ComputeBounds: need at least 2 observations, got 1")
}
