package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData is matched by every InsufficientDataError.
var ErrInsufficientData = errors.New("insufficient data for regression")

// InsufficientDataError reports a dataset that cannot support a unique
// least-squares line.
type InsufficientDataError struct {
	Rows   int
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for regression: %s (got %d rows)", e.Reason, e.Rows)
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }

// Model is a fitted simple linear regression y = Intercept + Slope*x.
type Model struct {
	Slope     float64
	Intercept float64
	// RSquared is the coefficient of determination on the training data.
	RSquared float64
	N        int
}

// Fit estimates an ordinary least squares line of ys on xs.
func Fit(xs, ys []float64) (*Model, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("fit: length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	n := len(xs)
	if n < 2 {
		return nil, &InsufficientDataError{Rows: n, Reason: "need at least 2 observations"}
	}
	if constant(xs) {
		return nil, &InsufficientDataError{Rows: n, Reason: "independent variable has zero variance"}
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	m := &Model{Slope: beta, Intercept: alpha, N: n}
	m.RSquared = rSquared(xs, ys, alpha, beta)
	return m, nil
}

// Predict returns the fitted value at x.
func (m *Model) Predict(x float64) float64 { return m.Intercept + m.Slope*x }

// PredictAll returns fitted values for xs, preserving order.
func (m *Model) PredictAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = m.Predict(x)
	}
	return out
}

// rSquared is 1 - SSres/SStot. A constant response has no variance to
// explain: a perfect fit scores 1, anything else 0.
func rSquared(xs, ys []float64, alpha, beta float64) float64 {
	if constant(ys) {
		for i := range xs {
			if math.Abs(ys[i]-(alpha+beta*xs[i])) > 1e-12*math.Max(1, math.Abs(ys[i])) {
				return 0
			}
		}
		return 1
	}
	return stat.RSquared(xs, ys, nil, alpha, beta)
}

func constant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}
