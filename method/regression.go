package method

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

const LabelLinearRegression = "linear_regression"

// LinearRegression fits demand against the period index with ordinary least
// squares and extrapolates the fit forward. Confidence comes from the R² of
// the historical fit eroded by horizon distance.
type LinearRegression struct{}

func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

func (lr *LinearRegression) Name() string {
	return LabelLinearRegression
}

func (lr *LinearRegression) Forecast(series []float64, reference time.Time, horizon int) ([]Point, error) {
	if horizon < 1 {
		return nil, ErrInvalidHorizon
	}

	n := len(series)
	if n < 2 {
		return lr.forecastDegenerate(series, reference, horizon), nil
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i + 1)
	}
	intercept, slope := stat.LinearRegression(x, series, nil, false)

	fitted := make([]float64, n)
	for i := range fitted {
		fitted[i] = intercept + slope*x[i]
	}
	scores, err := NewScores(fitted, series)
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, horizon)
	for h := 1; h <= horizon; h++ {
		points = append(points, Point{
			Date:       forecastDate(reference, h),
			Demand:     roundDemand(slope*float64(n+h) + intercept),
			Confidence: clampConfidence(scores.R2*100-float64(h), MinConfidence, MaxConfidence),
			Factors: Factors{
				FactorMethod:    LabelLinearRegression,
				FactorSlope:     slope,
				FactorIntercept: intercept,
				FactorRSquared:  scores.R2,
				FactorFitScores: scores,
			},
		})
	}
	return points, nil
}

// forecastDegenerate handles series too short to fit a line. The normal
// equation denominator is zero, so rather than dividing by it the method
// projects the single available value, or zero, at minimum confidence.
func (lr *LinearRegression) forecastDegenerate(series []float64, reference time.Time, horizon int) []Point {
	var value float64
	if len(series) > 0 {
		value = series[0]
	}

	points := make([]Point, 0, horizon)
	for h := 1; h <= horizon; h++ {
		points = append(points, Point{
			Date:       forecastDate(reference, h),
			Demand:     roundDemand(value),
			Confidence: MinConfidence,
			Factors: Factors{
				FactorMethod:     LabelLinearRegression,
				FactorDegenerate: true,
			},
		})
	}
	return points
}
