// Package timeseries converts raw historical sales observations into the
// clean numeric series consumed by the forecasting methods.
package timeseries

import (
	"log/slog"
	"math"
	"sort"
	"time"
)

// Observation is one recorded unit of demand for a single past day. It is
// owned by the caller's storage layer and passed in by value; the engine
// never mutates it.
type Observation struct {
	Date            time.Time          `json:"date"`
	Quantity        int                `json:"quantity"`
	Price           float64            `json:"price,omitempty"`
	PromotionActive bool               `json:"promotion_active,omitempty"`
	External        map[string]float64 `json:"external,omitempty"`
}

// Series is an ordered sequence of non-negative demand values, one per
// chronological period. Missing days are simply absent, shifting the
// effective period index.
type Series []float64

// Prepare filters the observations into a Series, dropping entries with a
// negative quantity. An empty result is valid; the caller decides whether
// enough history remains.
func Prepare(observations []Observation) Series {
	series := make(Series, 0, len(observations))
	var dropped int
	for _, obs := range observations {
		if obs.Quantity < 0 {
			dropped++
			continue
		}
		series = append(series, float64(obs.Quantity))
	}
	if dropped > 0 {
		slog.Debug("dropped observations with negative quantity", "dropped", dropped, "kept", len(series))
	}
	return series
}

// Copy returns an independent copy of the series so concurrent consumers
// cannot observe each other's state.
func (s Series) Copy() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// OutlierOptions configures the optional pre-forecast outlier trim using a
// percentile window widened by a Tukey factor.
type OutlierOptions struct {
	LowerPercentile float64 `json:"lower_percentile"`
	UpperPercentile float64 `json:"upper_percentile"`
	TukeyFactor     float64 `json:"tukey_factor"`
}

// NewDefaultOutlierOptions returns the default trim window of the middle 80%
// widened by one inter-percentile range.
func NewDefaultOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		LowerPercentile: 0.1,
		UpperPercentile: 0.9,
		TukeyFactor:     1.0,
	}
}

// RemoveOutliers returns a new series with values outside the percentile
// fence removed. A nil option set leaves the series untouched.
func RemoveOutliers(s Series, opt *OutlierOptions) Series {
	if opt == nil || len(s) == 0 {
		return s.Copy()
	}
	lowerPerc := math.Max(opt.LowerPercentile, 0.0)
	upperPerc := math.Min(opt.UpperPercentile, 1.0)
	tukeyFactor := math.Max(opt.TukeyFactor, 0.0)

	sorted := s.Copy()
	sort.Float64s(sorted)
	lowerIdx := int(math.Floor(float64(len(sorted)) * lowerPerc))
	upperIdx := int(math.Ceil(float64(len(sorted)) * upperPerc))
	if upperIdx >= len(sorted) {
		upperIdx = len(sorted) - 1
	}

	lower := sorted[lowerIdx]
	upper := sorted[upperIdx]
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	out := make(Series, 0, len(s))
	for _, v := range s {
		if v > upper || v < lower {
			continue
		}
		out = append(out, v)
	}
	return out
}
