package method

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

const LabelMovingAverage = "moving_average"

// DefaultMaxWindow caps the moving-average window at two weeks of history.
const DefaultMaxWindow = 14

// MovingAverage is the robust fallback method: it averages a recent window
// of observations and extrapolates the drift between the window's two
// halves.
type MovingAverage struct {
	MaxWindow int
}

// NewMovingAverage returns a moving-average forecaster with the default
// window cap.
func NewMovingAverage() *MovingAverage {
	return &MovingAverage{MaxWindow: DefaultMaxWindow}
}

func (ma *MovingAverage) Name() string {
	return LabelMovingAverage
}

func (ma *MovingAverage) Forecast(series []float64, reference time.Time, horizon int) ([]Point, error) {
	if horizon < 1 {
		return nil, ErrInvalidHorizon
	}
	maxWindow := ma.MaxWindow
	if maxWindow < 1 {
		maxWindow = DefaultMaxWindow
	}

	window := min(maxWindow, len(series)/2)

	var average, trend float64
	switch {
	case window < 1:
		// 0 or 1 observations; use whatever single value exists with no
		// trend rather than dividing by an empty window.
		if len(series) > 0 {
			average = series[len(series)-1]
		}
	default:
		recent := series[len(series)-window:]
		average = stat.Mean(recent, nil)

		if half := window / 2; half > 0 {
			firstHalf := stat.Mean(recent[:half], nil)
			secondHalf := stat.Mean(recent[window-half:], nil)
			trend = (secondHalf - firstHalf) / float64(half)
		}
	}

	points := make([]Point, 0, horizon)
	for h := 1; h <= horizon; h++ {
		points = append(points, Point{
			Date:       forecastDate(reference, h),
			Demand:     roundDemand(average + trend*float64(h)),
			Confidence: clampConfidence(85-1.5*float64(h), 60, 85),
			Factors: Factors{
				FactorMethod:  LabelMovingAverage,
				FactorWindow:  window,
				FactorAverage: average,
				FactorTrend:   trend,
			},
		})
	}
	return points, nil
}
