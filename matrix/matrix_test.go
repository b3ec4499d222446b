package matrix

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	m := Random(rng, 10, DefaultMaxValue)
	require.Equal(t, 10, m.Size())

	seen := map[int]bool{}
	for _, row := range m {
		require.Len(t, row, 10)
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, DefaultMaxValue)
			seen[v] = true
		}
	}
	assert.Greater(t, len(seen), 5)

	again := Random(rand.New(rand.NewPCG(1, 2)), 10, DefaultMaxValue)
	assert.Equal(t, m, again, "same seed gives the same matrix")
}

func TestWriteFormat(t *testing.T) {
	m := Matrix{{0, 4}, {7, 0}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, Matrix{{3}}))
	assert.Equal(t, "2\n0 4\n7 0\n1\n3\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	g := Random(rng, 5, 9)
	h := Random(rng, 10, 9)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g, h))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, []Matrix{g, h}, got)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "truncated", input: "2\n1 2\n3\n"},
		{name: "non-numeric entry", input: "2\n1 x\n3 4\n"},
		{name: "zero size", input: "0\n"},
		{name: "negative size", input: "-1\n"},
		{name: "huge size with few entries", input: "4000000000\n1 2 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}

	for _, input := range []string{"2\n1 2\n3\n", "4000000000\n1 2 3\n"} {
		_, err := Read(strings.NewReader(input))
		var valErr *errors.ValueError
		assert.True(t, errors.As(err, &valErr), "input %q", input)
	}
}

func TestReadEmpty(t *testing.T) {
	got, err := Read(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHelpers(t *testing.T) {
	m := Matrix{{1, 2}, {3, 4}}
	assert.Equal(t, 10, m.Sum())
	m.ZeroDiagonal()
	assert.Equal(t, Matrix{{0, 2}, {3, 0}}, m)
	assert.Equal(t, Matrix{{0, 0}, {0, 0}}, New(2))
}
