// Package demandcast turns a product's historical sales series into a
// multi-day demand forecast. Three independent methods run over the same
// prepared series and their outputs are merged into one confidence-weighted
// forecast per day, optionally adjusted for calendar patterns.
package demandcast

import (
	"errors"
	"fmt"
	"time"

	"github.com/abdul712/demandcast/ensemble"
	"github.com/abdul712/demandcast/method"
	"github.com/abdul712/demandcast/timeseries"
	"golang.org/x/sync/errgroup"
)

// ErrInsufficientData reports fewer valid historical observations than any
// method needs for a meaningful estimate.
var ErrInsufficientData = errors.New("insufficient historical observations to generate a forecast")

// MinObservations is the minimum number of valid observations remaining
// after preparation.
const MinObservations = 7

// Engine generates demand forecasts. It is a pure computation over its
// inputs plus the injected clock: no I/O and no shared mutable state, so a
// single Engine is safe for concurrent use.
type Engine struct {
	opt      *Options
	adjuster *ensemble.Adjuster
}

// New creates an Engine using the provided options. If no options are
// provided a default is used.
func New(opt *Options) *Engine {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Engine{
		opt:      opt,
		adjuster: ensemble.NewAdjuster(),
	}
}

// Forecast is the unit of output: one product's forecast run, ready for the
// caller to persist.
type Forecast struct {
	ProductID   string         `json:"product_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Points      []method.Point `json:"points"`
}

// GenerateForecasts forecasts horizonDays of demand for a product from its
// historical observations. A non-positive horizon falls back to the
// configured default. The first point is dated exactly one day after the
// engine clock and the run is contiguous with no gaps.
func (e *Engine) GenerateForecasts(productID string, history []timeseries.Observation, horizonDays int) (*Forecast, error) {
	if horizonDays < 1 {
		horizonDays = e.opt.HorizonDays
	}
	if horizonDays < 1 {
		horizonDays = DefaultHorizonDays
	}

	series := timeseries.Prepare(history)
	if e.opt.OutlierOptions != nil {
		series = timeseries.RemoveOutliers(series, e.opt.OutlierOptions)
	}
	if len(series) < MinObservations {
		return nil, fmt.Errorf("got %d valid observations for product %s, need at least %d, %w",
			len(series), productID, MinObservations, ErrInsufficientData)
	}

	now := e.opt.Now()

	smoothing := method.NewExponentialSmoothing(e.opt.Smoothing)
	smoothing.Seasonality = e.opt.IncludeSeasonality
	smoothing.Trend = e.opt.IncludeTrends

	methods := []method.Method{
		smoothing,
		method.NewMovingAverage(),
		method.NewLinearRegression(),
	}

	// Each method gets its own copy of the series and writes only its own
	// slot, so the group is the only synchronization needed.
	results := make([]ensemble.MethodResult, len(methods))
	g := new(errgroup.Group)
	for i, m := range methods {
		i, m := i, m
		g.Go(func() error {
			points, err := m.Forecast(series.Copy(), now, horizonDays)
			if err != nil {
				return fmt.Errorf("unable to forecast with %s, %w", m.Name(), err)
			}
			results[i] = ensemble.MethodResult{Method: m.Name(), Points: points}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	points, err := ensemble.Combine(results, horizonDays)
	if err != nil {
		return nil, fmt.Errorf("unable to combine method forecasts, %w", err)
	}
	if e.opt.IncludeExternalFactors {
		points = e.adjuster.Adjust(points)
	}

	return &Forecast{
		ProductID:   productID,
		GeneratedAt: now,
		Points:      points,
	}, nil
}
