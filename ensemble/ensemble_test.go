package ensemble

import (
	"testing"
	"time"

	"github.com/abdul712/demandcast/method"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testReference = time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC)

func testPoints(demands []int, confidences []float64) []method.Point {
	points := make([]method.Point, len(demands))
	for i := range demands {
		points[i] = method.Point{
			Date:       testReference.AddDate(0, 0, i+1),
			Demand:     demands[i],
			Confidence: confidences[i],
		}
	}
	return points
}

func TestCombine(t *testing.T) {
	testData := map[string]struct {
		results            []MethodResult
		horizon            int
		expectedDemand     []int
		expectedConfidence []float64
		err                error
	}{
		"no results": {
			horizon: 1,
			err:     ErrNoMethodResults,
		},
		"short result": {
			results: []MethodResult{
				{Method: "a", Points: testPoints([]int{10}, []float64{80})},
			},
			horizon: 2,
			err:     ErrShortMethodResult,
		},
		"single method passes through": {
			results: []MethodResult{
				{Method: "a", Points: testPoints([]int{10, 12}, []float64{80, 78})},
			},
			horizon:            2,
			expectedDemand:     []int{10, 12},
			expectedConfidence: []float64{80, 78},
		},
		"confidence weighted average": {
			results: []MethodResult{
				{Method: "a", Points: testPoints([]int{10}, []float64{80})},
				{Method: "b", Points: testPoints([]int{20}, []float64{40})},
			},
			horizon: 1,
			// (10*0.8 + 20*0.4) / 1.2 and (80*0.8 + 40*0.4) / 1.2
			expectedDemand:     []int{13},
			expectedConfidence: []float64{67},
		},
		"zero weights fall back": {
			results: []MethodResult{
				{Method: "a", Points: testPoints([]int{10}, []float64{0})},
				{Method: "b", Points: testPoints([]int{20}, []float64{0})},
			},
			horizon:            1,
			expectedDemand:     []int{0},
			expectedConfidence: []float64{DefaultConfidence},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			points, err := Combine(td.results, td.horizon)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			require.Len(t, points, td.horizon)
			for i, pt := range points {
				assert.Equal(t, td.expectedDemand[i], pt.Demand)
				assert.Equal(t, td.expectedConfidence[i], pt.Confidence)
				assert.Equal(t, testReference.AddDate(0, 0, i+1), pt.Date)
			}
		})
	}
}

func TestCombineAttribution(t *testing.T) {
	results := []MethodResult{
		{Method: "a", Points: testPoints([]int{10}, []float64{80})},
		{Method: "b", Points: testPoints([]int{20}, []float64{40})},
	}

	points, err := Combine(results, 1)
	require.NoError(t, err)

	contributions, ok := points[0].Factors[FactorMethods].([]Contribution)
	require.True(t, ok)
	require.Len(t, contributions, 2)
	assert.Equal(t, Contribution{Method: "a", Demand: 10, Confidence: 80}, contributions[0])
	assert.Equal(t, Contribution{Method: "b", Demand: 20, Confidence: 40}, contributions[1])
}

func TestCombineTruncatesToHorizon(t *testing.T) {
	results := []MethodResult{
		{Method: "a", Points: testPoints([]int{10, 11, 12}, []float64{80, 80, 80})},
	}

	points, err := Combine(results, 2)
	require.NoError(t, err)
	assert.Len(t, points, 2)
}
