package ensemble

import (
	"math"
	"time"

	"github.com/abdul712/demandcast/method"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// Calendar demand multipliers. Weekends see lower retail demand, Mondays a
// restocking bump, and observed holidays a surge.
const (
	WeekendFactor = 0.7
	MondayFactor  = 1.2
	HolidayFactor = 1.3
)

// monthFactors scales demand by month of year, rising through the
// back-to-school and holiday months.
var monthFactors = [12]float64{
	0.8,  // January
	0.85, // February
	0.9,  // March
	0.95, // April
	1.0,  // May
	1.05, // June
	1.0,  // July
	1.15, // August
	1.1,  // September
	1.05, // October
	1.3,  // November
	1.5,  // December
}

// confidence is eroded by 5 points when the combined adjustment moves demand
// by 10% or more.
const (
	adjustmentTolerance = 0.1
	adjustmentPenalty   = 5.0
)

// Adjuster applies day-of-week, month-of-year, and holiday multiplicative
// adjustments on top of the combined forecast.
type Adjuster struct {
	// Holidays marks surge days. Nil disables the holiday factor.
	Holidays *cal.BusinessCalendar
}

// NewAdjuster returns an adjuster observing the US holiday set.
func NewAdjuster() *Adjuster {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(us.Holidays...)
	return &Adjuster{Holidays: c}
}

// Adjust returns a new point series with calendar factors applied. The input
// points are not mutated.
func (a *Adjuster) Adjust(points []method.Point) []method.Point {
	adjusted := make([]method.Point, 0, len(points))
	for _, pt := range points {
		weekdayFactor := weekdayFactor(pt.Date.Weekday())
		monthFactor := monthFactors[pt.Date.Month()-1]
		holidayFactor := 1.0
		if a.Holidays != nil {
			if _, observed, _ := a.Holidays.IsHoliday(pt.Date); observed {
				holidayFactor = HolidayFactor
			}
		}
		adjustment := weekdayFactor * monthFactor * holidayFactor

		confidence := pt.Confidence
		if math.Abs(adjustment-1.0) >= adjustmentTolerance {
			confidence = math.Max(method.MinConfidence, confidence-adjustmentPenalty)
		}

		factors := make(method.Factors, len(pt.Factors)+4)
		for k, v := range pt.Factors {
			factors[k] = v
		}
		factors[FactorWeekday] = weekdayFactor
		factors[FactorMonth] = monthFactor
		factors[FactorHoliday] = holidayFactor
		factors[FactorAdjustment] = adjustment

		adjusted = append(adjusted, method.Point{
			Date:       pt.Date,
			Demand:     int(math.Round(math.Max(0, float64(pt.Demand)*adjustment))),
			Confidence: confidence,
			Factors:    factors,
		})
	}
	return adjusted
}

func weekdayFactor(day time.Weekday) float64 {
	switch day {
	case time.Saturday, time.Sunday:
		return WeekendFactor
	case time.Monday:
		return MondayFactor
	default:
		return 1.0
	}
}
