package demandcast

import (
	"io"
	"os"
	"time"

	"github.com/abdul712/demandcast/timeseries"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineDemandForecast generates an echart line chart plotting the historical
// demand followed by the forecasted demand.
func LineDemandForecast(history []timeseries.Observation, fc *Forecast) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Demand Forecast " + fc.ProductID,
			},
		),
	)

	t := make([]time.Time, 0, len(history)+len(fc.Points))
	lineDataActual := make([]opts.LineData, 0, len(history))
	lineDataForecast := make([]opts.LineData, 0, len(fc.Points))

	for _, obs := range history {
		t = append(t, obs.Date)
		lineDataActual = append(lineDataActual, opts.LineData{Value: obs.Quantity})
	}
	// pad the forecast series so it starts where the history ends
	for range history {
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: "-"})
	}
	for _, pt := range fc.Points {
		t = append(t, pt.Date)
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: pt.Demand})
	}

	line.SetXAxis(t).
		AddSeries("Actual", lineDataActual).
		AddSeries("Forecast", lineDataForecast)
	return line
}

// LineConfidence generates an echart line chart of the per-day confidence
// scores of a forecast.
func LineConfidence(fc *Forecast) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Forecast Confidence",
			},
		),
	)

	t := make([]time.Time, 0, len(fc.Points))
	lineDataConfidence := make([]opts.LineData, 0, len(fc.Points))
	for _, pt := range fc.Points {
		t = append(t, pt.Date)
		lineDataConfidence = append(lineDataConfidence, opts.LineData{Value: pt.Confidence})
	}

	line.SetXAxis(t).
		AddSeries("Confidence", lineDataConfidence)
	return line
}

// PlotForecast uses the Apache Echarts library to generate an html file
// showing the historical demand, the forecast, and its confidence scores.
func PlotForecast(path string, history []timeseries.Observation, fc *Forecast) error {
	page := components.NewPage()
	page.AddCharts(
		LineDemandForecast(history, fc),
		LineConfidence(fc),
	)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return page.Render(io.MultiWriter(file))
}
