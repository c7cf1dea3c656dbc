// Package ensemble merges the per-method forecasts into one
// confidence-weighted series and optionally applies calendar-pattern
// adjustments on top.
package ensemble

import (
	"errors"
	"fmt"
	"math"

	"github.com/abdul712/demandcast/method"
)

var (
	ErrNoMethodResults   = errors.New("no method results to combine")
	ErrShortMethodResult = errors.New("method result has fewer points than the horizon")
)

// Attribution keys added by the combiner and adjuster.
const (
	FactorMethods    = "methods"
	FactorWeekday    = "weekday_factor"
	FactorMonth      = "month_factor"
	FactorHoliday    = "holiday_factor"
	FactorAdjustment = "adjustment"
)

// DefaultConfidence is reported when every contributing method has zero
// weight and a weighted average is undefined.
const DefaultConfidence = 50.0

// MethodResult pairs a method name with its day-aligned forecast points.
// All results handed to Combine must share the same reference anchor so
// positions line up by date.
type MethodResult struct {
	Method string         `json:"method"`
	Points []method.Point `json:"points"`
}

// Contribution records one method's vote for a forecast day inside the
// combined point's attribution map.
type Contribution struct {
	Method     string  `json:"method"`
	Demand     int     `json:"predicted_demand"`
	Confidence float64 `json:"confidence"`
}

// Combine merges the method results into exactly horizon points, weighting
// each method's prediction by its own confidence. A day where every method
// reports zero confidence falls back to zero demand at DefaultConfidence
// rather than dividing by zero.
func Combine(results []MethodResult, horizon int) ([]method.Point, error) {
	if len(results) == 0 {
		return nil, ErrNoMethodResults
	}
	for _, res := range results {
		if len(res.Points) < horizon {
			return nil, fmt.Errorf("%s produced %d of %d points, %w", res.Method, len(res.Points), horizon, ErrShortMethodResult)
		}
	}

	points := make([]method.Point, 0, horizon)
	for d := 0; d < horizon; d++ {
		var weightedDemand, weightedConfidence, weightSum float64
		contributions := make([]Contribution, 0, len(results))

		for _, res := range results {
			pt := res.Points[d]
			weight := pt.Confidence / 100.0
			weightedDemand += float64(pt.Demand) * weight
			weightedConfidence += pt.Confidence * weight
			weightSum += weight

			contributions = append(contributions, Contribution{
				Method:     res.Method,
				Demand:     pt.Demand,
				Confidence: pt.Confidence,
			})
		}

		demand := 0
		confidence := DefaultConfidence
		if weightSum > 0 {
			demand = int(math.Round(weightedDemand / weightSum))
			confidence = math.Round(weightedConfidence / weightSum)
		}

		points = append(points, method.Point{
			Date:       results[0].Points[d].Date,
			Demand:     demand,
			Confidence: confidence,
			Factors: method.Factors{
				FactorMethods: contributions,
			},
		})
	}
	return points, nil
}
