// Package method contains the independent forecasting methods feeding the
// ensemble: exponential smoothing, moving-average trend, and linear
// regression. Each method is a pure function of its input series and shares
// no state with the others, so methods are safe to evaluate concurrently.
package method

import (
	"errors"
	"math"
	"time"
)

var ErrInvalidHorizon = errors.New("forecast horizon must be at least one day")

// Confidence bounds for any single method's output. The combiner may weight
// results below MinConfidence but a method never emits one.
const (
	MinConfidence = 40.0
	MaxConfidence = 95.0
)

// Well-known attribution keys recorded in Point.Factors.
const (
	FactorMethod         = "method"
	FactorVariant        = "variant"
	FactorAlpha          = "alpha"
	FactorBeta           = "beta"
	FactorGamma          = "gamma"
	FactorSeasonalPeriod = "seasonal_period"
	FactorWindow         = "window"
	FactorAverage        = "average"
	FactorTrend          = "trend"
	FactorSlope          = "slope"
	FactorIntercept      = "intercept"
	FactorRSquared       = "r_squared"
	FactorFitScores      = "fit_scores"
	FactorDegenerate     = "degenerate"
)

// Factors is an open attribution map recording which method produced a point
// and with what parameters. It exists for explainability, not re-computation.
type Factors map[string]any

// Point is one predicted future day.
//
// Confidence is an engineered heuristic in [0,100] eroded by historical
// variance and horizon distance. It is not a calibrated probability and must
// not be interpreted as a prediction interval.
type Point struct {
	Date       time.Time `json:"date"`
	Demand     int       `json:"predicted_demand"`
	Confidence float64   `json:"confidence"`
	Factors    Factors   `json:"factors,omitempty"`
}

// Method generates a contiguous run of forecast points starting one day
// after the reference time.
type Method interface {
	// Name returns the method name recorded in attribution maps.
	Name() string
	// Forecast predicts horizon days of demand from the prepared series.
	Forecast(series []float64, reference time.Time, horizon int) ([]Point, error)
}

// forecastDate returns the date for forecast step h, 1-indexed days ahead of
// the reference time.
func forecastDate(reference time.Time, h int) time.Time {
	return reference.AddDate(0, 0, h)
}

// roundDemand clamps a raw model output to be non-negative and rounds to the
// nearest whole unit.
func roundDemand(raw float64) int {
	return int(math.Round(math.Max(0, raw)))
}

// clampConfidence bounds a confidence score to [lo, hi].
func clampConfidence(c, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, c))
}
