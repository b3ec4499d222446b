package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/errbound/dataset"
	"github.com/YuminosukeSato/errbound/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	var out bytes.Buffer
	code := run(context.Background(), []string{
		"experiment", "-o", path, "-t", "25", "--min-n1", "2", "--max-n1", "3", "--max-n2", "5",
		"--seed", "3", "--log-level", "error",
	}, &out)
	require.Equal(t, cli.ExitOK, code, out.String())
	assert.Contains(t, out.String(), "Completed 25 trials")

	obs, err := dataset.Load([]string{path})
	require.NoError(t, err)
	assert.Equal(t, 25, obs.Len())
	for _, o := range obs {
		assert.LessOrEqual(t, o.Exact, o.Approx)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), []string{
		"experiment", "-o", filepath.Join(t.TempDir(), "r.csv"), "--max-n1", "10", "--max-n2", "10", "--log-level", "error",
	}, &out)
	assert.Equal(t, exitError, code)
	assert.Contains(t, out.String(), "max-n2")
}
