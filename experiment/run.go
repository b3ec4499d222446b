package experiment

import (
	"context"
	"encoding/csv"
	"io"
	"math/rand/v2"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/YuminosukeSato/errbound/core/parallel"
	"github.com/YuminosukeSato/errbound/matrix"
	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/YuminosukeSato/errbound/pkg/log"
)

// Config controls a batch of random trials.
type Config struct {
	// Trials is the number of random graph pairs.
	Trials int
	// Pattern sizes n1 are drawn from [MinN1, MaxN1]; host sizes n2 from
	// (n1, MaxN2].
	MinN1 int
	MaxN1 int
	MaxN2 int
	// MaxValue is the largest edge weight.
	MaxValue int
	// ZeroDiagonal removes self loops from generated graphs.
	ZeroDiagonal bool
	// Workers bounds the number of trials solved concurrently; 0 means one per CPU.
	Workers int
	// Seed makes the batch reproducible. Trial i draws from a generator
	// seeded with (Seed, i), so results do not depend on Workers.
	Seed uint64
}

// DefaultConfig returns the configuration used by the experiment command.
func DefaultConfig() Config {
	return Config{
		Trials:       10000,
		MinN1:        3,
		MaxN1:        8,
		MaxN2:        10,
		MaxValue:     20,
		ZeroDiagonal: true,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Trials < 1:
		return errors.NewValidationError("trials", "must be at least 1", c.Trials)
	case c.MinN1 < 1:
		return errors.NewValidationError("min-n1", "must be at least 1", c.MinN1)
	case c.MaxN1 < c.MinN1:
		return errors.NewValidationError("max-n1", "must not be smaller than min-n1", c.MaxN1)
	case c.MaxN2 <= c.MaxN1:
		return errors.NewValidationError("max-n2", "must be larger than max-n1", c.MaxN2)
	case c.MaxValue < 0:
		return errors.NewValidationError("max", "must not be negative", c.MaxValue)
	case c.Workers < 0:
		return errors.NewValidationError("workers", "must not be negative", c.Workers)
	}
	return nil
}

// Result is the outcome of one trial.
type Result struct {
	Trial  int
	N1     int
	N2     int
	Exact  int
	Approx int
}

// Trial generates the graph pair for trial i of cfg.
func Trial(cfg Config, i int) (g, h matrix.Matrix) {
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(i)))

	n1 := cfg.MinN1 + rng.IntN(cfg.MaxN1-cfg.MinN1+1)
	n2 := n1 + 1 + rng.IntN(cfg.MaxN2-n1)

	g = matrix.Random(rng, n1, cfg.MaxValue)
	h = matrix.Random(rng, n2, cfg.MaxValue)
	if cfg.ZeroDiagonal {
		g.ZeroDiagonal()
		h.ZeroDiagonal()
	}
	return g, h
}

// Solve computes the exact and approximate costs for one graph pair.
func Solve(g, h matrix.Matrix) (Result, error) {
	exact, err := Exact(g, h)
	if err != nil {
		return Result{}, err
	}
	approx, err := Approximate(g, h)
	if err != nil {
		return Result{}, err
	}
	return Result{N1: g.Size(), N2: h.Size(), Exact: exact.Cost, Approx: approx.Cost}, nil
}

// Run solves cfg.Trials random graph pairs concurrently and returns the
// results in trial order. When ctx is cancelled no further trials are
// started and ctx.Err() is returned.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.GetLoggerWithName("experiment").With(log.OperationKey, log.OperationRun)
	workers := parallel.Workers(cfg.Workers, cfg.Trials)
	logger.Info("experiment started",
		log.TrialsKey, cfg.Trials,
		log.WorkersKey, workers,
		log.SeedKey, cfg.Seed,
	)

	start := time.Now()
	results := make([]Result, cfg.Trials)
	var done atomic.Int64
	step := int64(cfg.Trials / 10)

	err := parallel.ForEach(ctx, cfg.Trials, workers, func(_ context.Context, i int) error {
		r, err := Solve(Trial(cfg, i))
		if err != nil {
			return errors.Wrapf(err, "trial %d", i)
		}
		r.Trial = i
		results[i] = r

		if n := done.Add(1); step > 0 && n%step == 0 {
			logger.Debug("progress", "completed", n, log.TrialsKey, cfg.Trials)
		}
		return nil
	})
	if err != nil {
		logger.Error("experiment stopped", err, "completed", done.Load())
		return nil, err
	}

	logger.Info("experiment finished",
		log.TrialsKey, cfg.Trials,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return results, nil
}

// Header is the column layout written by WriteCSV.
var Header = []string{"n1", "n2", "exact", "approx"}

// WriteCSV writes one row per result under Header.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.N1),
			strconv.Itoa(r.N2),
			strconv.Itoa(r.Exact),
			strconv.Itoa(r.Approx),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "write trial %d", r.Trial)
		}
	}
	cw.Flush()
	return errors.WithStack(cw.Error())
}
