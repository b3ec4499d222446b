// Package linear は近似値を厳密値に回帰させる最小二乗モデルを提供します。
package linear

import (
	"github.com/YuminosukeSato/errbound/core"
	"github.com/YuminosukeSato/errbound/core/model"
	"github.com/YuminosukeSato/errbound/core/parallel"
	"github.com/YuminosukeSato/errbound/metrics"
	"github.com/YuminosukeSato/errbound/pkg/errors"
	"github.com/YuminosukeSato/errbound/pkg/log"
	"gonum.org/v1/gonum/mat"
)

const modelName = "LinearRegression"

var _ core.Regressor = (*LinearRegression)(nil)

// デフォルトの並列化閾値（この値以下の行数では逐次処理を使用）
const defaultParallelThreshold = 1000

// LinearRegression は線形回帰モデル
type LinearRegression struct {
	model.BaseEstimator               // BaseEstimatorを埋め込み
	Weights             *mat.VecDense // 重み（係数）
	Intercept           float64       // 切片
	NFeatures           int           // 特徴量の数

	fitIntercept      bool
	parallelThreshold int
}

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		fitIntercept:      true,
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit はモデルを訓練データで学習させる
// 正規方程式 w = (X^T * X)^(-1) * X^T * y を使用
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	// 入力の検証
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	lr.Reset()
	lr.NFeatures = c

	// 切片を推定する場合は先頭に 1 の列を追加する
	// X_design = [1, X]
	offset := 0
	if lr.fitIntercept {
		offset = 1
	}
	design := mat.NewDense(r, c+offset, nil)

	parallel.ParallelizeWithThreshold(r, lr.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			if offset == 1 {
				design.Set(i, 0, 1.0)
			}
			for j := 0; j < c; j++ {
				design.Set(i, j+offset, X.At(i, j))
			}
		}
	})

	// (X^T * X)^(-1) * X^T * y
	var XTX mat.Dense
	XTX.Mul(design.T(), design)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	var XTy mat.VecDense
	XTy.MulVec(design.T(), metrics.ColumnVec(y))

	weights := mat.NewVecDense(c+offset, nil)
	weights.MulVec(&XTXInv, &XTy)

	if err := errors.CheckNumericalStability("LinearRegression.Fit", weights.RawVector().Data); err != nil {
		return err
	}

	// 切片と重みを分離
	lr.Intercept = 0
	if offset == 1 {
		lr.Intercept = weights.AtVec(0)
	}
	lr.Weights = mat.NewVecDense(c, nil)
	for i := 0; i < c; i++ {
		lr.Weights.SetVec(i, weights.AtVec(i+offset))
	}

	lr.SetFitted()

	log.GetLoggerWithName("linear").Debug("model fitted",
		log.OperationKey, log.OperationFit,
		log.ModelNameKey, modelName,
		log.SamplesKey, r,
	)
	return nil
}

// FitLine は単一の説明変数 x に対して y = slope*x + intercept を学習する
func (lr *LinearRegression) FitLine(x, y []float64) (slope, intercept float64, err error) {
	if len(x) != len(y) {
		return 0, 0, errors.NewDimensionError("LinearRegression.FitLine", len(x), len(y), 0)
	}
	if len(x) == 0 {
		return 0, 0, errors.NewModelError("LinearRegression.FitLine", "empty data", errors.ErrEmptyData)
	}

	X := mat.NewDense(len(x), 1, append([]float64(nil), x...))
	Y := mat.NewDense(len(y), 1, append([]float64(nil), y...))
	if err := lr.Fit(X, Y); err != nil {
		return 0, 0, err
	}
	return lr.Weights.AtVec(0), lr.Intercept, nil
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.RequireFitted(modelName, "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if r == 0 {
		return nil, errors.NewValueError("LinearRegression.Predict", "empty data")
	}
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	// 予測: y = X * weights + intercept
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// GetWeights は学習された重み（係数）を返す
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}
	return mat.Col(nil, 0, lr.Weights)
}

// GetIntercept は学習された切片を返す
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if err := lr.RequireFitted(modelName, "Score"); err != nil {
		return 0, err
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	ry, cy := y.Dims()
	if cy != 1 {
		return 0, errors.NewValueError("LinearRegression.Score", "y must be a column vector")
	}
	if ry == 0 {
		return 0, errors.NewValueError("LinearRegression.Score", "empty vector")
	}
	if rp, _ := yPred.Dims(); rp != ry {
		return 0, errors.NewDimensionError("LinearRegression.Score", rp, ry, 0)
	}

	return metrics.R2Score(metrics.ColumnVec(y), metrics.ColumnVec(yPred))
}
