package experiment

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/YuminosukeSato/errbound/dataset"
	"github.com/YuminosukeSato/errbound/matrix"
	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactFindsEmbedding(t *testing.T) {
	g := matrix.Matrix{
		{0, 5},
		{1, 0},
	}
	// h contains g on vertices 2 and 0 (in that order).
	h := matrix.Matrix{
		{0, 0, 1},
		{0, 0, 0},
		{5, 0, 0},
	}

	p, err := Exact(g, h)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Cost)
	assert.Equal(t, []int{2, 0}, p.Mapping)
	assert.Equal(t, 0, p.Extension.Sum())

	a, err := Approximate(g, h)
	require.NoError(t, err)
	assert.Greater(t, a.Cost, 0, "no diagonal window matches")
}

func TestApproximateWindows(t *testing.T) {
	g := matrix.Matrix{{0, 3}, {3, 0}}
	h := matrix.Matrix{
		{0, 1, 0},
		{1, 0, 2},
		{0, 2, 0},
	}

	p, err := Approximate(g, h)
	require.NoError(t, err)
	// offset 0 costs 2+2, offset 1 costs 1+1
	assert.Equal(t, 2, p.Cost)
	assert.Equal(t, []int{1, 2}, p.Mapping)
	assert.Equal(t, 1, p.Extension[1][2])
	assert.Equal(t, 1, p.Extension[2][1])
	assert.Equal(t, 2, p.Extension.Sum())
}

// bruteForce enumerates every injective mapping.
func bruteForce(g, h matrix.Matrix) int {
	best := -1
	mapping := make([]int, g.Size())
	used := make([]bool, h.Size())
	var rec func(i int)
	rec = func(i int) {
		if i == len(mapping) {
			c, _ := Cost(g, h, mapping)
			if best < 0 || c < best {
				best = c
			}
			return
		}
		for v := range used {
			if !used[v] {
				used[v] = true
				mapping[i] = v
				rec(i + 1)
				used[v] = false
			}
		}
	}
	rec(0)
	return best
}

func TestExactMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	for trial := 0; trial < 50; trial++ {
		n1 := 1 + rng.IntN(4)
		n2 := n1 + rng.IntN(3)
		g := matrix.Random(rng, n1, 9)
		h := matrix.Random(rng, n2, 9)

		p, err := Exact(g, h)
		require.NoError(t, err)
		assert.Equal(t, bruteForce(g, h), p.Cost, "trial %d", trial)

		c, err := Cost(g, h, p.Mapping)
		require.NoError(t, err)
		assert.Equal(t, p.Cost, c)
		assert.Equal(t, p.Cost, p.Extension.Sum())

		a, err := Approximate(g, h)
		require.NoError(t, err)
		assert.LessOrEqual(t, p.Cost, a.Cost)
	}
}

func TestInvalidPairs(t *testing.T) {
	big := matrix.New(3)
	small := matrix.New(2)

	_, err := Exact(big, small)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, err = Approximate(matrix.Matrix{}, small)
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))

	_, err = Exact(matrix.Matrix{{1, 2}, {3}}, big)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	_, err = Cost(small, big, []int{1, 1})
	assert.True(t, errors.As(err, &valErr), "mapping must be injective")
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Trials = 60
	cfg.MinN1 = 2
	cfg.MaxN1 = 4
	cfg.MaxN2 = 6
	cfg.Seed = 2024
	return cfg
}

func TestRunDeterministic(t *testing.T) {
	cfg := smallConfig()
	cfg.Workers = 1
	serial, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Workers = 8
	concurrent, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, serial, concurrent)
	require.Len(t, serial, cfg.Trials)
	for i, r := range serial {
		assert.Equal(t, i, r.Trial)
		assert.GreaterOrEqual(t, r.N1, cfg.MinN1)
		assert.LessOrEqual(t, r.N1, cfg.MaxN1)
		assert.Greater(t, r.N2, r.N1)
		assert.LessOrEqual(t, r.N2, cfg.MaxN2)
		assert.LessOrEqual(t, r.Exact, r.Approx)
	}
}

func TestTrialZeroDiagonal(t *testing.T) {
	cfg := smallConfig()
	g, h := Trial(cfg, 3)
	for _, m := range []matrix.Matrix{g, h} {
		for i := range m {
			assert.Equal(t, 0, m[i][i])
		}
	}
	g2, h2 := Trial(cfg, 3)
	assert.Equal(t, g, g2)
	assert.Equal(t, h, h2)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, smallConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	mutations := map[string]func(*Config){
		"trials":  func(c *Config) { c.Trials = 0 },
		"min-n1":  func(c *Config) { c.MinN1 = 0 },
		"max-n1":  func(c *Config) { c.MaxN1 = c.MinN1 - 1 },
		"max-n2":  func(c *Config) { c.MaxN2 = c.MaxN1 },
		"max":     func(c *Config) { c.MaxValue = -1 },
		"workers": func(c *Config) { c.Workers = -2 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			err := cfg.Validate()
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, name, valErr.ParamName)
		})
	}
}

func TestWriteCSVLoadsAsDataset(t *testing.T) {
	results := []Result{
		{Trial: 0, N1: 3, N2: 5, Exact: 4, Approx: 6},
		{Trial: 1, N1: 2, N2: 4, Exact: 0, Approx: 3},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, results))
	assert.True(t, strings.HasPrefix(buf.String(), "n1,n2,exact,approx\n"))

	obs, err := dataset.LoadReader("results.csv", &buf)
	require.NoError(t, err)
	assert.Equal(t, dataset.ObservationSet{
		{Exact: 4, Approx: 6},
		{Exact: 0, Approx: 3},
	}, obs)
}
