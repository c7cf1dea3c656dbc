package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearRegressionInvalidHorizon(t *testing.T) {
	lr := NewLinearRegression()
	_, err := lr.Forecast([]float64{1, 2, 3}, testReference, 0)
	assert.ErrorIs(t, err, ErrInvalidHorizon)
}

func TestLinearRegressionExactFit(t *testing.T) {
	// y_i = 5 + 2i over 10 days continues as 25, 27, 29, ...
	series := make([]float64, 10)
	for i := range series {
		series[i] = 5 + 2*float64(i)
	}

	lr := NewLinearRegression()
	points, err := lr.Forecast(series, testReference, 3)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, 25, points[0].Demand)
	assert.Equal(t, 27, points[1].Demand)
	assert.Equal(t, 29, points[2].Demand)

	assert.InDelta(t, 2.0, points[0].Factors[FactorSlope].(float64), 1e-9)
	// intercept is against the 1-indexed period axis, so y = 3 + 2x
	assert.InDelta(t, 3.0, points[0].Factors[FactorIntercept].(float64), 1e-9)
	assert.InDelta(t, 1.0, points[0].Factors[FactorRSquared].(float64), 1e-9)

	// a perfect fit erodes only with horizon, capped at the method maximum
	assert.Equal(t, MaxConfidence, points[0].Confidence)

	scores, ok := points[0].Factors[FactorFitScores].(*Scores)
	require.True(t, ok)
	assert.InDelta(t, 0.0, scores.MSE, 1e-9)
	assert.InDelta(t, 0.0, scores.MAPE, 1e-9)
}

func TestLinearRegressionFlatSeries(t *testing.T) {
	series := []float64{7, 7, 7, 7, 7, 7, 7}

	lr := NewLinearRegression()
	points, err := lr.Forecast(series, testReference, 2)
	require.NoError(t, err)

	for _, pt := range points {
		assert.Equal(t, 7, pt.Demand)
	}
	// zero-variance history reports a perfect fit
	assert.InDelta(t, 1.0, points[0].Factors[FactorRSquared].(float64), 1e-9)
}

func TestLinearRegressionNoisySeriesConfidence(t *testing.T) {
	series := []float64{10, 2, 14, 3, 12, 1, 15, 2, 11, 4}

	lr := NewLinearRegression()
	points, err := lr.Forecast(series, testReference, 5)
	require.NoError(t, err)

	for _, pt := range points {
		assert.GreaterOrEqual(t, pt.Confidence, MinConfidence)
		assert.LessOrEqual(t, pt.Confidence, MaxConfidence)
		assert.GreaterOrEqual(t, pt.Demand, 0)
	}
}

func TestLinearRegressionDegenerate(t *testing.T) {
	testData := map[string]struct {
		series         []float64
		expectedDemand int
	}{
		"empty series":       {series: nil, expectedDemand: 0},
		"single observation": {series: []float64{9}, expectedDemand: 9},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			lr := NewLinearRegression()
			points, err := lr.Forecast(td.series, testReference, 4)
			require.NoError(t, err)
			require.Len(t, points, 4)
			for _, pt := range points {
				assert.Equal(t, td.expectedDemand, pt.Demand)
				assert.Equal(t, MinConfidence, pt.Confidence)
				assert.Equal(t, true, pt.Factors[FactorDegenerate])
			}
		})
	}
}

func TestLinearRegressionNegativeProjectionClamped(t *testing.T) {
	// steeply declining demand projects below zero and must clamp
	series := []float64{50, 40, 30, 20, 10, 0}

	lr := NewLinearRegression()
	points, err := lr.Forecast(series, testReference, 5)
	require.NoError(t, err)

	for _, pt := range points {
		assert.GreaterOrEqual(t, pt.Demand, 0)
	}
	assert.Equal(t, 0, points[4].Demand)
}
