package bound

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/errbound/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// QQDiagnostic is a normal probability plot of a sample: ordered values
// against the standard-normal quantiles of their expected positions, plus
// the least-squares line through those points.
type QQDiagnostic struct {
	// Theoretical holds the normal quantiles, ascending.
	Theoretical []float64
	// Ordered holds the finite sample values, ascending.
	Ordered []float64

	Slope     float64
	Intercept float64
	// R is the correlation between Theoretical and Ordered. Values close to 1
	// indicate an approximately normal sample.
	R float64
}

// NormalProbability builds the Q-Q diagnostic for values. Non-finite values
// are skipped. Positions use Filliben's estimate of the uniform order
// statistic medians. With fewer than two finite values the fit fields are NaN.
func NormalProbability(values []float64) QQDiagnostic {
	ordered := errors.FiniteOnly(values)
	sort.Float64s(ordered)

	n := len(ordered)
	q := QQDiagnostic{
		Theoretical: make([]float64, n),
		Ordered:     ordered,
		Slope:       math.NaN(),
		Intercept:   math.NaN(),
		R:           math.NaN(),
	}
	if n == 0 {
		return q
	}

	for i, m := range orderStatisticMedians(n) {
		q.Theoretical[i] = distuv.UnitNormal.Quantile(m)
	}
	if n < 2 {
		return q
	}

	q.Intercept, q.Slope = stat.LinearRegression(q.Theoretical, q.Ordered, nil, false)
	q.R = stat.Correlation(q.Theoretical, q.Ordered, nil)
	return q
}

// orderStatisticMedians returns Filliben's approximation of the medians of
// the uniform order statistics for a sample of size n.
func orderStatisticMedians(n int) []float64 {
	m := make([]float64, n)
	last := math.Pow(0.5, 1/float64(n))
	m[n-1] = last
	m[0] = 1 - last
	for i := 1; i < n-1; i++ {
		m[i] = (float64(i+1) - 0.3175) / (float64(n) + 0.365)
	}
	return m
}
