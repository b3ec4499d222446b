package bound

import (
	"math"
	"sort"
)

// Percentile returns the p-th percentile (0 <= p <= 100) of data using linear
// interpolation between order statistics: with n sorted values the result sits
// at rank p/100*(n-1). Percentile(x, 0) is the minimum and Percentile(x, 100)
// the maximum. data is not modified. NaN is returned for empty data or p
// outside [0, 100].
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 || p < 0 || p > 100 || math.IsNaN(p) {
		return math.NaN()
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

// percentileSorted is Percentile for data already in ascending order.
func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
