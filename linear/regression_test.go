package linear

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/YuminosukeSato/errbound/core"
	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// noisyLine は y = slope*x + intercept にノイズを加えたデータを生成する
func noisyLine(n int, slope, intercept, noise float64) ([]float64, []float64) {
	rng := rand.New(rand.NewPCG(42, 42))
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64() * 100
		y[i] = slope*x[i] + intercept + (rng.Float64()-0.5)*noise
	}
	return x, y
}

func TestFitLine(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{5, 7, 9, 11, 13}

	lr := NewLinearRegression()
	slope, intercept, err := lr.FitLine(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, slope, 1e-9)
	assert.InDelta(t, 3.0, intercept, 1e-9)
	assert.True(t, lr.IsFitted())
	assert.Equal(t, []float64{slope}, lr.GetWeights())

	X := mat.NewDense(5, 1, x)
	Y := mat.NewDense(5, 1, y)
	score, err := lr.Score(X, Y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-12)
}

func TestRegressorInterface(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	Y := mat.NewDense(4, 1, []float64{1, 3, 5, 7})

	var reg core.Regressor = NewLinearRegression()
	require.NoError(t, reg.Fit(X, Y))

	pred, err := reg.Predict(mat.NewDense(1, 1, []float64{10}))
	require.NoError(t, err)
	assert.InDelta(t, 21.0, pred.At(0, 0), 1e-9)

	score, err := reg.Score(X, Y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-12)
}

func TestFitLineNoisy(t *testing.T) {
	x, y := noisyLine(500, 1.05, 0.3, 0.5)

	lr := NewLinearRegression()
	slope, intercept, err := lr.FitLine(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.05, slope, 0.01)
	assert.InDelta(t, 0.3, intercept, 0.1)

	score, err := lr.Score(mat.NewDense(len(x), 1, x), mat.NewDense(len(y), 1, y))
	require.NoError(t, err)
	assert.Greater(t, score, 0.99)
}

func TestFitParallelMatchesSequential(t *testing.T) {
	x, y := noisyLine(3000, 0.8, -2, 1)

	seq := NewLinearRegression(WithParallelThreshold(len(x)))
	par := NewLinearRegression(WithParallelThreshold(10))

	s1, i1, err := seq.FitLine(x, y)
	require.NoError(t, err)
	s2, i2, err := par.FitLine(x, y)
	require.NoError(t, err)

	assert.InDelta(t, s1, s2, 1e-12)
	assert.InDelta(t, i1, i2, 1e-12)
}

func TestFitWithoutIntercept(t *testing.T) {
	lr := NewLinearRegression(WithFitIntercept(false))
	slope, intercept, err := lr.FitLine([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, slope, 1e-12)
	assert.Equal(t, 0.0, intercept)
}

func TestFitErrors(t *testing.T) {
	t.Run("constant x is singular", func(t *testing.T) {
		_, _, err := NewLinearRegression().FitLine([]float64{4, 4, 4}, []float64{1, 2, 3})
		assert.True(t, errors.Is(err, errors.ErrSingularMatrix))
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, _, err := NewLinearRegression().FitLine([]float64{1, 2}, []float64{1})
		var dimErr *errors.DimensionError
		assert.True(t, errors.As(err, &dimErr))
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := NewLinearRegression().FitLine(nil, nil)
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	})

	t.Run("y with two columns", func(t *testing.T) {
		err := NewLinearRegression().Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewDense(2, 2, nil))
		var valErr *errors.ValueError
		assert.True(t, errors.As(err, &valErr))
	})
}

func TestNotFitted(t *testing.T) {
	lr := NewLinearRegression()
	X := mat.NewDense(1, 1, []float64{1})

	_, err := lr.Predict(X)
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	_, err = lr.Score(X, X)
	assert.True(t, errors.As(err, &notFitted))
	assert.Equal(t, 0.0, lr.GetIntercept())
	assert.Nil(t, lr.GetWeights())
}

func TestPredictDimensionMismatch(t *testing.T) {
	lr := NewLinearRegression()
	_, _, err := lr.FitLine([]float64{1, 2, 3}, []float64{1, 2, 4})
	require.NoError(t, err)

	_, err = lr.Predict(mat.NewDense(2, 2, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

// BenchmarkFitLine は単回帰のベンチマークを実行する
func BenchmarkFitLine(b *testing.B) {
	for _, n := range []int{1000, 10000, 100000} {
		x, y := noisyLine(n, 1, 0, 0.1)
		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			lr := NewLinearRegression()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _, _ = lr.FitLine(x, y)
			}
		})
	}
}
