package demandcast

import (
	"time"

	"github.com/abdul712/demandcast/method"
	"github.com/abdul712/demandcast/timeseries"
)

// DefaultHorizonDays is the forecast horizon used when the caller does not
// specify one.
const DefaultHorizonDays = 30

// Options configures the forecasting engine.
type Options struct {
	// HorizonDays is the number of future days to forecast when the call
	// does not specify a positive horizon.
	HorizonDays int `json:"horizon_days"`

	// IncludeSeasonality enables the Holt-Winters seasonal component.
	IncludeSeasonality bool `json:"include_seasonality"`
	// IncludeTrends enables the Holt-Winters trend component.
	IncludeTrends bool `json:"include_trends"`
	// IncludeExternalFactors applies the calendar adjuster to the combined
	// forecast.
	IncludeExternalFactors bool `json:"include_external_factors"`

	Smoothing method.SmoothingParams `json:"smoothing"`

	// OutlierOptions trims demand outliers before forecasting. Nil disables
	// the trim.
	OutlierOptions *timeseries.OutlierOptions `json:"outlier_options,omitempty"`

	// Now anchors the first forecast date to one day after its result.
	// Injected so forecasts are reproducible under test. Defaults to
	// time.Now.
	Now func() time.Time `json:"-"`
}

// NewDefaultOptions returns a set of default engine options with trend and
// weekly seasonality enabled and external factors disabled.
func NewDefaultOptions() *Options {
	return &Options{
		HorizonDays:        DefaultHorizonDays,
		IncludeSeasonality: true,
		IncludeTrends:      true,
		Smoothing:          method.NewDefaultSmoothingParams(),
		Now:                time.Now,
	}
}
