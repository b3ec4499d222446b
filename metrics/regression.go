// Package metrics は近似値と厳密値（あるいは回帰の予測値と実測値）の
// ずれを要約する回帰評価指標を提供します。
package metrics

import (
	"math"

	"github.com/YuminosukeSato/errbound/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Summary は一組の系列に対する評価指標をまとめたものです。
type Summary struct {
	N    int
	MSE  float64
	RMSE float64
	MAE  float64
	R2   float64
}

// residuals は yTrue - yPred を計算する。長さが異なる場合や空の場合はエラー。
func residuals(op string, yTrue, yPred *mat.VecDense) ([]float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	res := make([]float64, n)
	for i := range res {
		res[i] = yTrue.AtVec(i) - yPred.AtVec(i)
	}
	return res, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MSE = (1/n) * Σ(yTrue - yPred)²
	return floats.Dot(res, res) / float64(len(res)), nil
}

// MSEMatrix は n×1 行列形式の入力に対してMSEを計算する
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("MSEMatrix", "empty matrix")
	}
	if rTrue != rPred || cTrue != cPred {
		return 0, errors.NewDimensionError("MSEMatrix", rTrue, rPred, 0)
	}
	if cTrue != 1 {
		return 0, errors.NewValueError("MSEMatrix", "must be a column vector (n×1 matrix)")
	}

	return MSE(ColumnVec(yTrue), ColumnVec(yPred))
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する。
// 厳密値と近似値を渡すと誤差レポートの平均絶対誤差と一致する。
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// MAE = (1/n) * Σ|yTrue - yPred|
	return floats.Norm(res, 1) / float64(len(res)), nil
}

// R2Score は決定係数（R²）を計算する
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	y := mat.Col(nil, 0, yTrue)
	mean := stat.Mean(y, nil)

	var tss float64
	for _, v := range y {
		tss += (v - mean) * (v - mean)
	}
	// すべてのyTrueが同じ値の場合は定義できない
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return 1 - floats.Dot(res, res)/tss, nil
}

// MAPE は平均絶対パーセンテージ誤差を計算する。
// yTrue が0の要素は相対誤差が定義できないため除外する。
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := residuals("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	valid := 0
	for i, r := range res {
		if v := yTrue.AtVec(i); v != 0 {
			sum += math.Abs(r) / math.Abs(v)
			valid++
		}
	}
	if valid == 0 {
		return 0, errors.NewNoValidRelativeErrorError(len(res))
	}

	return sum / float64(valid) * 100, nil
}

// Evaluate はMSE、RMSE、MAE、R²をまとめて計算する。
// yTrueに分散がない場合、R2はNaNになる。
func Evaluate(yTrue, yPred *mat.VecDense) (Summary, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return Summary{}, err
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{N: yTrue.Len(), MSE: mse, RMSE: math.Sqrt(mse), MAE: mae, R2: math.NaN()}
	if r2, err := R2Score(yTrue, yPred); err == nil {
		s.R2 = r2
	}
	return s, nil
}

// ColumnVec は n×1 行列の第0列をVecDenseとしてコピーする。
// 行数0の行列は渡さないこと。
func ColumnVec(m mat.Matrix) *mat.VecDense {
	r, _ := m.Dims()
	return mat.NewVecDense(r, mat.Col(nil, 0, m))
}
