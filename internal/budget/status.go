// Package budget derives budget status and spend summaries from totals. Nothing in
// it fails: a zero limit means no budget is configured.
package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// Level is the three-step budget status.
type Level string

// Budget levels.
const (
	LevelOK      Level = "ok"
	LevelWarning Level = "warning"
	LevelAlert   Level = "alert"
)

// Thresholds as a share of the monthly limit.
const (
	WarningThreshold = 0.70
	AlertThreshold   = 0.90
)

// Thresholds in percent, for exact integer comparison.
const (
	warningPercent = 70
	alertPercent   = 90
)

// Status is the budget position for a period.
type Status struct {
	Level          Level
	TotalCents     int64
	LimitCents     int64
	RemainingCents int64
	PercentageUsed float64 // total / limit; 0 when there is no limit
}

// Calculate derives the budget status of totalCents spent against limitCents.
// A limit of zero or less means no budget: nothing remains and the level is ok.
func Calculate(totalCents, limitCents int64) Status {
	if limitCents <= 0 {
		return Status{TotalCents: totalCents, Level: LevelOK}
	}

	return Status{
		TotalCents:     totalCents,
		LimitCents:     limitCents,
		RemainingCents: max(0, limitCents-totalCents),
		PercentageUsed: float64(totalCents) / float64(limitCents),
		Level:          levelFor(totalCents, limitCents),
	}
}

func levelFor(totalCents, limitCents int64) Level {
	switch {
	case totalCents*100 >= limitCents*alertPercent:
		return LevelAlert
	case totalCents*100 >= limitCents*warningPercent:
		return LevelWarning
	default:
		return LevelOK
	}
}

// Percent returns PercentageUsed as a whole percentage, rounded down.
func (s Status) Percent() int {
	if s.LimitCents <= 0 {
		return 0
	}
	return int(s.TotalCents * 100 / s.LimitCents)
}

// CanAfford reports whether spending extraCents keeps the month within the limit.
// Without a limit everything is affordable.
func CanAfford(currentCents, limitCents, extraCents int64) bool {
	if limitCents <= 0 {
		return true
	}
	return currentCents+extraCents <= limitCents
}

// MonthRange returns the first instant of now's month and of the next one, in
// now's location.
func MonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// DailyAverage returns the euros spent per elapsed day of the month, today included.
// It is a plain average, not a forecast.
func DailyAverage(totalCents int64, now time.Time) decimal.Decimal {
	return dailyAverage(totalCents, now).Round(2)
}

// ProjectMonthEnd linearly extrapolates the daily average to the whole month.
// It assumes spending continues at the same pace and models no trend or seasonality.
func ProjectMonthEnd(totalCents int64, now time.Time) decimal.Decimal {
	days := decimal.NewFromInt(int64(DaysInMonth(now)))
	return dailyAverage(totalCents, now).Mul(days).Round(2)
}

func dailyAverage(totalCents int64, now time.Time) decimal.Decimal {
	elapsed := decimal.NewFromInt(int64(now.Day()))
	return decimal.New(totalCents, -2).DivRound(elapsed, 8)
}
