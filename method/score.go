package method

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var ErrScoreLenMismatch = errors.New("predicted and actual have different lengths")

// Scores tracks how well a method's fitted values track the history it was
// trained on. Reported in attribution maps for auditability.
type Scores struct {
	MSE  float64 `json:"mean_squared_error"`
	MAPE float64 `json:"mean_average_percent_error"`
	R2   float64 `json:"r_squared"`
}

// NewScores calculates the fit scores given the fitted and actual values.
func NewScores(fitted, actual []float64) (*Scores, error) {
	mse, err := MSE(fitted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean squared error, %w", err)
	}
	mape, err := MAPE(fitted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean average percent error, %w", err)
	}
	rs, err := RSquared(fitted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute r-squared, %w", err)
	}

	return &Scores{
		MSE:  mse,
		MAPE: mape,
		R2:   rs,
	}, nil
}

// MSE computes the mean squared error between fitted and actual values.
// A score of 0 means a perfect fit.
func MSE(fitted, actual []float64) (float64, error) {
	if len(fitted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(fitted), ErrScoreLenMismatch)
	}

	mse := 0.0
	for i := 0; i < len(actual); i++ {
		mse += math.Pow(actual[i]-fitted[i], 2.0)
	}
	mse /= float64(len(actual))
	return mse, nil
}

// MAPE calculates the mean average percent error, skipping zero-demand days
// to avoid dividing by zero.
func MAPE(fitted, actual []float64) (float64, error) {
	if len(fitted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(fitted), ErrScoreLenMismatch)
	}

	mape := 0.0
	for i := 0; i < len(actual); i++ {
		if actual[i] == 0 {
			continue
		}
		mape += math.Abs((actual[i] - fitted[i]) / actual[i])
	}
	mape /= float64(len(actual))
	return mape, nil
}

// RSquared computes the r squared value between the fitted and actual values
// where 1.0 means a perfect fit. A zero-variance actual series yields NaN
// from the coefficient formula and is reported as a perfect 1.0 since the
// fit cannot miss.
func RSquared(fitted, actual []float64) (float64, error) {
	if len(fitted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(fitted), ErrScoreLenMismatch)
	}

	r2 := stat.RSquaredFrom(fitted, actual, nil)
	if math.IsNaN(r2) {
		return 1.0, nil
	}
	return r2, nil
}
