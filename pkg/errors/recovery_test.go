package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "render")
		panic("no data ranges")
	}

	err := testFunc()
	require.Error(t, err)

	var panicErr *PanicError
	require.True(t, As(err, &panicErr), "expected *PanicError, got %T", err)
	assert.Equal(t, "render", panicErr.Operation)
	assert.Equal(t, "no data ranges", panicErr.PanicValue)
	assert.NotEmpty(t, panicErr.StackTrace)
	assert.Equal(t, "panic in render: no data ranges", panicErr.Error())
	assert.Contains(t, panicErr.String(), "Stack trace:")
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "render")
		return nil
	}

	assert.NoError(t, testFunc())
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "render")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "panic in render"))
	assert.True(t, Is(err, originalErr), "original error should stay in the chain")
}

func TestSafeExecute(t *testing.T) {
	tests := []struct {
		name       string
		fn         func() error
		wantErr    bool
		wantPanic  bool
		wantSubstr string
	}{
		{
			name:    "success",
			fn:      func() error { return nil },
			wantErr: false,
		},
		{
			name:       "returned error passes through",
			fn:         func() error { return NewValueError("Render", "bad size") },
			wantErr:    true,
			wantSubstr: "bad size",
		},
		{
			name:       "string panic",
			fn:         func() error { panic("index out of range") },
			wantErr:    true,
			wantPanic:  true,
			wantSubstr: "panic in chart: index out of range",
		},
		{
			name:       "error panic",
			fn:         func() error { panic(New("nil canvas")) },
			wantErr:    true,
			wantPanic:  true,
			wantSubstr: "nil canvas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SafeExecute("chart", tt.fn)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSubstr)

			var panicErr *PanicError
			assert.Equal(t, tt.wantPanic, As(err, &panicErr))
		})
	}
}
