package method

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

const LabelExponentialSmoothing = "exponential_smoothing"

// Defaults applied when a smoothing parameter is out of range.
const (
	DefaultAlpha          = 0.3
	DefaultBeta           = 0.1
	DefaultGamma          = 0.1
	DefaultSeasonalPeriod = 7
)

// SmoothingParams are the tunable constants for exponential smoothing.
// Supplied as configuration and never mutated during a run.
type SmoothingParams struct {
	// Alpha is the level smoothing factor in (0, 1].
	Alpha float64 `json:"alpha"`
	// Beta is the trend smoothing factor in (0, 1].
	Beta float64 `json:"beta"`
	// Gamma is the seasonal smoothing factor in (0, 1].
	Gamma float64 `json:"gamma"`
	// SeasonalPeriod is the number of days per seasonal cycle.
	SeasonalPeriod int `json:"seasonal_period"`
}

// NewDefaultSmoothingParams returns the default weekly-seasonality smoothing
// parameters.
func NewDefaultSmoothingParams() SmoothingParams {
	return SmoothingParams{
		Alpha:          DefaultAlpha,
		Beta:           DefaultBeta,
		Gamma:          DefaultGamma,
		SeasonalPeriod: DefaultSeasonalPeriod,
	}
}

// validate replaces out-of-range parameters with defaults rather than
// erroring so a bad configuration degrades instead of failing a forecast.
func (p SmoothingParams) validate() SmoothingParams {
	if p.Alpha <= 0 || p.Alpha > 1 {
		p.Alpha = DefaultAlpha
	}
	if p.Beta <= 0 || p.Beta > 1 {
		p.Beta = DefaultBeta
	}
	if p.Gamma <= 0 || p.Gamma > 1 {
		p.Gamma = DefaultGamma
	}
	if p.SeasonalPeriod < 1 {
		p.SeasonalPeriod = DefaultSeasonalPeriod
	}
	return p
}

// ExponentialSmoothing forecasts with Holt-Winters triple exponential
// smoothing when at least two full seasons of history exist, otherwise it
// degrades to simple exponential smoothing projected flat across the
// horizon.
type ExponentialSmoothing struct {
	Params      SmoothingParams
	Seasonality bool
	Trend       bool
}

// NewExponentialSmoothing returns a Holt-Winters forecaster with both trend
// and seasonal components enabled.
func NewExponentialSmoothing(params SmoothingParams) *ExponentialSmoothing {
	return &ExponentialSmoothing{
		Params:      params,
		Seasonality: true,
		Trend:       true,
	}
}

func (es *ExponentialSmoothing) Name() string {
	return LabelExponentialSmoothing
}

func (es *ExponentialSmoothing) Forecast(series []float64, reference time.Time, horizon int) ([]Point, error) {
	if horizon < 1 {
		return nil, ErrInvalidHorizon
	}
	p := es.Params.validate()

	if len(series) < p.SeasonalPeriod*2 {
		return es.forecastSimple(series, reference, horizon, p), nil
	}
	return es.forecastHoltWinters(series, reference, horizon, p), nil
}

// forecastSimple recursively smooths the series with the level factor alone
// and projects the final smoothed value flat across the horizon.
func (es *ExponentialSmoothing) forecastSimple(series []float64, reference time.Time, horizon int, p SmoothingParams) []Point {
	var smoothed float64
	if len(series) > 0 {
		smoothed = series[0]
		for t := 1; t < len(series); t++ {
			smoothed = p.Alpha*series[t] + (1-p.Alpha)*smoothed
		}
	}

	points := make([]Point, 0, horizon)
	for h := 1; h <= horizon; h++ {
		points = append(points, Point{
			Date:       forecastDate(reference, h),
			Demand:     roundDemand(smoothed),
			Confidence: math.Max(50, 90-2*float64(h)),
			Factors: Factors{
				FactorMethod:  LabelExponentialSmoothing,
				FactorVariant: "simple",
				FactorAlpha:   p.Alpha,
			},
		})
	}
	return points
}

func (es *ExponentialSmoothing) forecastHoltWinters(series []float64, reference time.Time, horizon int, p SmoothingParams) []Point {
	n := len(series)
	period := p.SeasonalPeriod

	level := series[0]
	trend := 0.0
	seasonal := make([]float64, period)
	for i := range seasonal {
		seasonal[i] = 1.0
	}

	if es.Seasonality {
		initialLevel := stat.Mean(series[:period], nil)
		if initialLevel != 0 {
			for i := 0; i < period; i++ {
				seasonal[i] = series[i] / initialLevel
			}
		}
	}
	if es.Trend && n >= period*2 {
		firstSeason := stat.Mean(series[:period], nil)
		secondSeason := stat.Mean(series[period:period*2], nil)
		trend = (secondSeason - firstSeason) / float64(period)
	}

	for t := 1; t < n; t++ {
		slot := t % period
		seasonalFactor := 1.0
		if es.Seasonality && seasonal[slot] != 0 {
			seasonalFactor = seasonal[slot]
		}

		prevLevel := level
		level = p.Alpha*(series[t]/seasonalFactor) + (1-p.Alpha)*(level+trend)
		if es.Trend {
			trend = p.Beta*(level-prevLevel) + (1-p.Beta)*trend
		}
		if es.Seasonality && level != 0 {
			seasonal[slot] = p.Gamma*(series[t]/level) + (1-p.Gamma)*seasonalFactor
		}
	}

	baseConfidence := math.Max(50, 95-10*stat.Variance(series, nil))

	points := make([]Point, 0, horizon)
	for h := 1; h <= horizon; h++ {
		seasonalFactor := 1.0
		if es.Seasonality {
			if sf := seasonal[(n+h-1)%period]; sf != 0 {
				seasonalFactor = sf
			}
		}
		raw := (level + trend*float64(h)) * seasonalFactor

		points = append(points, Point{
			Date:       forecastDate(reference, h),
			Demand:     roundDemand(raw),
			Confidence: clampConfidence(baseConfidence-2*float64(h), MinConfidence, MaxConfidence),
			Factors: Factors{
				FactorMethod:         LabelExponentialSmoothing,
				FactorVariant:        "holt_winters",
				FactorAlpha:          p.Alpha,
				FactorBeta:           p.Beta,
				FactorGamma:          p.Gamma,
				FactorSeasonalPeriod: period,
			},
		})
	}
	return points
}
