package demandcast

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/abdul712/demandcast/timeseries"
	"github.com/goccy/go-json"
	"github.com/pkg/profile"
)

var benchForecast *Forecast

func setupBenchHistory() []timeseries.Observation {
	now := time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC)
	n := 365
	history := make([]timeseries.Observation, 0, n)
	for i := 0; i < n; i++ {
		date := now.AddDate(0, 0, i-n)
		// weekly cycle on top of a slow upward trend
		quantity := 20 + i/30 + int(6*math.Sin(2*math.Pi*float64(i)/7))
		history = append(history, timeseries.Observation{Date: date, Quantity: quantity})
	}
	return history
}

func BenchmarkGenerateForecasts(b *testing.B) {
	history := setupBenchHistory()
	opt := NewDefaultOptions()
	opt.IncludeExternalFactors = true

	e := New(opt)

	var err error
	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for i := 0; i < b.N; i++ {
		benchForecast, err = e.GenerateForecasts("sku-bench", history, 30)
		if err != nil {
			panic(err)
		}
	}

	bytes, err := json.MarshalIndent(benchForecast, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile("benchmark_forecast.json", bytes, 0o644); err != nil {
		panic(err)
	}
}
