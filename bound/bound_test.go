package bound

import (
	"bytes"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/YuminosukeSato/errbound/dataset"
	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

const tol = 1e-9

// scenarioObs is the three-row example used across these tests: one exact
// match, one unit error, one observation with exact == 0.
func scenarioObs() dataset.ObservationSet {
	return dataset.ObservationSet{
		{Exact: 10, Approx: 10},
		{Exact: 10, Approx: 11},
		{Exact: 0, Approx: 0.5},
	}
}

func TestComputeErrors(t *testing.T) {
	errs := ComputeErrors(scenarioObs())
	require.Len(t, errs, 3)

	assert.Equal(t, []float64{0, 1, 0.5}, AbsoluteErrors(errs))
	assert.Equal(t, []float64{0, 0.1}, RelativeErrors(errs))

	rel, ok := errs[2].RelativeError()
	assert.False(t, ok)
	assert.True(t, math.IsNaN(rel), "undefined relative error must not be zero")
	assert.True(t, math.IsNaN(errs[2].Percentage))

	assert.InDelta(t, 10.0, errs[1].Percentage, tol)
}

func TestComputeErrorsProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	obs := make(dataset.ObservationSet, 500)
	for i := range obs {
		exact := float64(rng.IntN(5))
		obs[i] = dataset.Observation{Exact: exact, Approx: exact + rng.NormFloat64()}
	}

	errs := ComputeErrors(obs)
	require.Len(t, errs, len(obs))
	for i, e := range errs {
		assert.GreaterOrEqual(t, e.Absolute, 0.0)
		assert.Equal(t, obs[i].Exact != 0, e.HasRelative, "row %d", i)
		assert.InDelta(t, math.Abs(obs[i].Exact-obs[i].Approx), e.Absolute, tol)
	}
}

func TestComputeBoundsScenario(t *testing.T) {
	r, err := ComputeBounds(ComputeErrors(scenarioObs()))
	require.NoError(t, err)

	assert.Equal(t, 3, r.Samples)
	assert.Equal(t, DefaultConfidence, r.Confidence)
	assert.InDelta(t, 0.5, r.Mean, tol)
	assert.InDelta(t, 0.5, r.Median, tol)
	assert.InDelta(t, 0.5, r.StdDev, tol)
	assert.Equal(t, 0.0, r.Min)
	assert.Equal(t, 1.0, r.Max)
	assert.InDelta(t, 0.95, r.P95, tol)
	assert.InDelta(t, 0.99, r.P99, tol)
	assert.InDelta(t, 0.999, r.P999, tol)
	assert.InDelta(t, 2.0, r.ThreeSigma, tol)
	// t(0.975, 2) = 4.302652729749464
	assert.InDelta(t, 1.7420688558751656, r.MeanUpperBound, 1e-6)

	assert.Equal(t, 2, r.ValidRelative)
	assert.InDelta(t, 2.0/3.0, r.RelativeFraction, tol)
	require.NotNil(t, r.Relative)
	assert.InDelta(t, 0.05, r.Relative.Mean, tol)
	assert.InDelta(t, 0.1, r.Relative.Max, tol)
	assert.InDelta(t, 0.0999, r.Relative.P999, tol)

	assert.Equal(t, r.P999, r.RecommendedBound)
}

func TestComputeBoundsRecommendedIsPercentile(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	obs := make(dataset.ObservationSet, 1234)
	for i := range obs {
		obs[i] = dataset.Observation{Exact: 1 + rng.Float64(), Approx: rng.ExpFloat64()}
	}
	errs := ComputeErrors(obs)

	r, err := ComputeBounds(errs)
	require.NoError(t, err)
	assert.Equal(t, Percentile(AbsoluteErrors(errs), 99.9), r.RecommendedBound)
	assert.LessOrEqual(t, r.Min, r.Median)
	assert.LessOrEqual(t, r.P95, r.P99)
	assert.LessOrEqual(t, r.P99, r.P999)
	assert.LessOrEqual(t, r.P999, r.Max)
}

func TestComputeBoundsInsufficientData(t *testing.T) {
	for _, obs := range []dataset.ObservationSet{
		nil,
		{{Exact: 1, Approx: 2}},
		{{Exact: 1, Approx: 2}, {Exact: math.Inf(1), Approx: 0}},
	} {
		_, err := ComputeBounds(ComputeErrors(obs))
		var insErr *errors.InsufficientDataError
		assert.True(t, errors.As(err, &insErr), "got %v", err)
	}
}

func TestComputeBoundsNoValidRelative(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(nil)

	obs := dataset.ObservationSet{{Exact: 0, Approx: 1}, {Exact: 0, Approx: 2}}
	r, err := ComputeBounds(ComputeErrors(obs))

	var noRel *errors.NoValidRelativeErrorError
	require.True(t, errors.As(err, &noRel))
	require.NotNil(t, r, "absolute statistics must still be reported")
	assert.InDelta(t, 1.5, r.Mean, tol)
	assert.Nil(t, r.Relative)
	assert.Equal(t, 0, r.ValidRelative)
	assert.Len(t, warned, 1)

	// t(0.975, 1) = 12.706204736174698
	assert.InDelta(t, 7.853102368087349, r.MeanUpperBound, 1e-6)

	out := r.String()
	assert.Contains(t, out, "Valid samples for relative error: 0 / 2 (0.00%)")
	assert.Contains(t, out, "not applicable")
	assert.NotContains(t, out, "Mean relative error")
	assert.NotContains(t, out, "NaN")
}

func TestComputeBoundsConfidence(t *testing.T) {
	errs := ComputeErrors(scenarioObs())

	for _, c := range []float64{0, 1, -0.5, 1.2, math.NaN()} {
		_, err := ComputeBounds(errs, WithConfidence(c))
		var valErr *errors.ValidationError
		assert.True(t, errors.As(err, &valErr), "confidence %v", c)
	}

	r90, err := ComputeBounds(errs, WithConfidence(0.90))
	require.NoError(t, err)
	r99, err := ComputeBounds(errs, WithConfidence(0.99))
	require.NoError(t, err)
	assert.Less(t, r90.MeanUpperBound, r99.MeanUpperBound)
	assert.Equal(t, r90.P999, r99.P999, "percentile bounds do not depend on confidence")
	assert.Contains(t, r99.String(), "99% confidence upper bound: ")
}

func TestComputeBoundsIgnoresNonFinite(t *testing.T) {
	obs := append(scenarioObs(), dataset.Observation{Exact: math.NaN(), Approx: 1})
	r, err := ComputeBounds(ComputeErrors(obs))
	require.NoError(t, err)
	assert.Equal(t, 4, r.Samples)
	assert.InDelta(t, 0.5, r.Mean, tol)
	assert.Equal(t, 2, r.ValidRelative)
}

func TestPercentile(t *testing.T) {
	data := []float64{15, 20, 35, 40, 50}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 15},
		{25, 20},
		{40, 29},
		{50, 35},
		{100, 50},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(data, tt.p), tol, "p=%v", tt.p)
	}

	assert.Equal(t, []float64{15, 20, 35, 40, 50}, data, "input must not be modified")
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
	assert.True(t, math.IsNaN(Percentile(data, -1)))
	assert.True(t, math.IsNaN(Percentile(data, 100.5)))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 99.9))
}

func TestPercentileProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for trial := 0; trial < 20; trial++ {
		data := make([]float64, 1+rng.IntN(200))
		for i := range data {
			data[i] = rng.NormFloat64() * 10
		}
		sorted := append([]float64(nil), data...)
		sort.Float64s(sorted)

		assert.Equal(t, sorted[0], Percentile(data, 0))
		assert.Equal(t, sorted[len(sorted)-1], Percentile(data, 100))

		prev := math.Inf(-1)
		for p := 0.0; p <= 100; p += 0.5 {
			v := Percentile(data, p)
			assert.GreaterOrEqual(t, v, prev, "not monotonic at p=%v", p)
			prev = v
		}
	}
}

func TestNormalProbability(t *testing.T) {
	n := 200
	// A sample sitting exactly on scaled normal quantiles fits perfectly.
	values := make([]float64, n)
	for i, m := range orderStatisticMedians(n) {
		values[i] = 3 + 2*distuv.UnitNormal.Quantile(m)
	}

	qq := NormalProbability(values)
	require.Len(t, qq.Theoretical, n)
	require.Len(t, qq.Ordered, n)
	assert.InDelta(t, 2.0, qq.Slope, 1e-9)
	assert.InDelta(t, 3.0, qq.Intercept, 1e-9)
	assert.InDelta(t, 1.0, qq.R, 1e-12)
	assert.True(t, sort.Float64sAreSorted(qq.Theoretical))
	assert.InDelta(t, 0.0, qq.Theoretical[n/2]+qq.Theoretical[n-1-n/2], 1e-9, "quantiles are symmetric")

	skewed := make([]float64, n)
	rng := rand.New(rand.NewPCG(5, 6))
	for i := range skewed {
		skewed[i] = rng.ExpFloat64()
	}
	assert.Less(t, NormalProbability(skewed).R, qq.R)

	single := NormalProbability([]float64{1, math.NaN()})
	assert.Len(t, single.Ordered, 1)
	assert.True(t, math.IsNaN(single.R))
}

func TestReportLayout(t *testing.T) {
	r, err := ComputeBounds(ComputeErrors(scenarioObs()))
	require.NoError(t, err)

	want := `ABSOLUTE ERROR ANALYSIS
Mean absolute error:        0.500000
Median absolute error:      0.500000
Std deviation:              0.500000
Minimum observed error:     0.000000
Maximum observed error:     1.000000

STATISTICAL UPPER BOUNDS
95% confidence upper bound: 1.742069
95th percentile:            0.950000
99th percentile:            0.990000
99.9th percentile:          0.999000
Mean + 3σ (99.7% rule):     2.000000
Maximum observed:           1.000000

RELATIVE ERROR BOUNDS
Valid samples for relative error: 2 / 3 (66.67%)
Mean relative error:        0.050000 (5.00%)
Maximum relative error:     0.100000 (10.00%)
99.9th percentile relative: 0.099900 (9.99%)

RECOMMENDED UPPER BOUND
Recommended bound (99.9th percentile): 0.999000
99.9% of observed approximations have absolute error <= 0.999000
`
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, r))
	assert.Equal(t, want, buf.String())
}

func TestSplitFilesGiveSameReport(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	var whole, first, second strings.Builder
	for _, b := range []*strings.Builder{&whole, &first, &second} {
		b.WriteString("exact,approx\n")
	}
	for i := 0; i < 300; i++ {
		exact := rng.IntN(40)
		row := strconv.Itoa(exact) + "," + strconv.Itoa(exact+rng.IntN(6)) + "\n"
		whole.WriteString(row)
		if i < 150 {
			first.WriteString(row)
		} else {
			second.WriteString(row)
		}
	}

	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}
	single := write("all.csv", whole.String())
	a := write("part1.csv", first.String())
	b := write("part2.csv", second.String())

	obsWhole, err := dataset.Load([]string{single})
	require.NoError(t, err)
	obsSplit, err := dataset.Load([]string{a, b})
	require.NoError(t, err)

	rWhole, err := ComputeBounds(ComputeErrors(obsWhole))
	require.NoError(t, err)
	rSplit, err := ComputeBounds(ComputeErrors(obsSplit))
	require.NoError(t, err)
	assert.Equal(t, rWhole, rSplit)
}
