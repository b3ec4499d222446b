package bound

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/YuminosukeSato/errbound/pkg/log"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Percentile levels used throughout the report.
const (
	P95  = 95.0
	P99  = 99.0
	P999 = 99.9
)

// BoundReport aggregates the statistics of a full set of ErrorRecords.
// It is derived once by ComputeBounds and never modified.
type BoundReport struct {
	// Samples is the number of records the report was computed from.
	Samples int
	// Confidence is the confidence level used for MeanUpperBound.
	Confidence float64

	// Absolute error, computed over finite values only.
	Mean   float64
	Median float64
	StdDev float64 // sample standard deviation (n-1 denominator)
	Min    float64
	Max    float64

	// MeanUpperBound is mean + t((1+Confidence)/2, n-1) * StdDev/sqrt(n),
	// the upper end of a confidence interval for the mean absolute error.
	// It is not a bound on individual errors.
	MeanUpperBound float64
	P95            float64
	P99            float64
	P999           float64
	// ThreeSigma is Mean + 3*StdDev. It covers 99.7% of the data only if the
	// errors are normally distributed.
	ThreeSigma float64

	// ValidRelative counts records with a defined, finite relative error.
	ValidRelative int
	// RelativeFraction is ValidRelative / Samples.
	RelativeFraction float64
	// Relative is nil when no record has a defined relative error.
	Relative *RelativeBounds

	// RecommendedBound is P999: 99.9% of the observed approximations have an
	// absolute error at or below it. It describes the observed sample only.
	RecommendedBound float64
}

// RelativeBounds summarises the relative errors of a BoundReport.
type RelativeBounds struct {
	Mean float64
	Max  float64
	P999 float64
}

// ComputeBounds aggregates errs into a BoundReport.
//
// It fails with an InsufficientDataError when fewer than two records (or two
// finite absolute errors) are available, and with a ValidationError for a
// confidence outside (0, 1). When no record has a defined relative error the
// report is still returned, with Relative set to nil, alongside a
// NoValidRelativeErrorError.
func ComputeBounds(errs []ErrorRecord, opts ...Option) (*BoundReport, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !(cfg.confidence > 0 && cfg.confidence < 1) {
		return nil, errors.NewValidationError("confidence", "must be in (0, 1)", cfg.confidence)
	}
	if len(errs) < 2 {
		return nil, errors.NewInsufficientDataError("ComputeBounds", 2, len(errs))
	}

	abs := errors.FiniteOnly(AbsoluteErrors(errs))
	if len(abs) < 2 {
		return nil, errors.NewInsufficientDataError("ComputeBounds", 2, len(abs))
	}
	sort.Float64s(abs)

	n := float64(len(abs))
	mean := stat.Mean(abs, nil)
	std := stat.StdDev(abs, nil)

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}.Quantile((1 + cfg.confidence) / 2)
	if err := errors.CheckScalar("student-t quantile", t); err != nil {
		return nil, err
	}

	r := &BoundReport{
		Samples:        len(errs),
		Confidence:     cfg.confidence,
		Mean:           mean,
		Median:         percentileSorted(abs, 50),
		StdDev:         std,
		Min:            abs[0],
		Max:            abs[len(abs)-1],
		MeanUpperBound: mean + t*std/math.Sqrt(n),
		P95:            percentileSorted(abs, P95),
		P99:            percentileSorted(abs, P99),
		P999:           percentileSorted(abs, P999),
		ThreeSigma:     mean + 3*std,
	}
	r.RecommendedBound = r.P999

	rel := RelativeErrors(errs)
	r.ValidRelative = len(rel)
	r.RelativeFraction = float64(len(rel)) / float64(len(errs))

	logger := log.GetLoggerWithName("bound").With(log.OperationKey, log.OperationAggregate)
	logger.Debug("absolute error statistics",
		log.SamplesKey, r.Samples,
		log.MeanKey, r.Mean,
		log.StdDevKey, r.StdDev,
		log.ConfidenceKey, r.Confidence,
	)

	if len(rel) == 0 {
		err := errors.NewNoValidRelativeErrorError(r.Samples)
		errors.Warn(err)
		return r, err
	}

	sort.Float64s(rel)
	r.Relative = &RelativeBounds{
		Mean: stat.Mean(rel, nil),
		Max:  rel[len(rel)-1],
		P999: percentileSorted(rel, P999),
	}

	logger.Info("bounds computed",
		log.SamplesKey, r.Samples,
		log.ValidRelativeKey, r.ValidRelative,
		log.RecommendedBoundKey, r.RecommendedBound,
	)
	return r, nil
}
