package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		limit         int64
		wantLevel     Level
		wantRemaining int64
		wantPercent   float64
	}{
		{name: "empty", total: 0, limit: 10000, wantLevel: LevelOK, wantRemaining: 10000, wantPercent: 0},
		{name: "just below warning", total: 6999, limit: 10000, wantLevel: LevelOK, wantRemaining: 3001, wantPercent: 0.6999},
		{name: "warning boundary", total: 7000, limit: 10000, wantLevel: LevelWarning, wantRemaining: 3000, wantPercent: 0.70},
		{name: "just below alert", total: 8999, limit: 10000, wantLevel: LevelWarning, wantRemaining: 1001, wantPercent: 0.8999},
		{name: "alert boundary", total: 9000, limit: 10000, wantLevel: LevelAlert, wantRemaining: 1000, wantPercent: 0.90},
		{name: "over budget", total: 12500, limit: 10000, wantLevel: LevelAlert, wantRemaining: 0, wantPercent: 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.total, tt.limit)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantRemaining, got.RemainingCents)
			assert.InDelta(t, tt.wantPercent, got.PercentageUsed, 1e-12)
			assert.Equal(t, tt.total, got.TotalCents)
		})
	}
}

func TestCalculate_NoLimit(t *testing.T) {
	for _, total := range []int64{0, 1, 50_000, 1 << 40} {
		got := Calculate(total, 0)
		assert.Zero(t, got.PercentageUsed)
		assert.Equal(t, LevelOK, got.Level)
		assert.Zero(t, got.RemainingCents)
		assert.Zero(t, got.Percent())
	}
}

func TestCalculate_LevelsPartition(t *testing.T) {
	const limit = 10000
	for total := int64(0); total <= 2*limit; total += 7 {
		got := Calculate(total, limit)
		assert.InDelta(t, float64(total)/limit, got.PercentageUsed, 1e-12)

		switch {
		case got.PercentageUsed < WarningThreshold:
			assert.Equal(t, LevelOK, got.Level, total)
		case got.PercentageUsed < AlertThreshold:
			assert.Equal(t, LevelWarning, got.Level, total)
		default:
			assert.Equal(t, LevelAlert, got.Level, total)
		}
	}
}

func TestCanAfford(t *testing.T) {
	assert.True(t, CanAfford(5000, 0, 1_000_000))
	assert.True(t, CanAfford(5000, 10000, 5000))
	assert.False(t, CanAfford(5000, 10000, 5001))
}

func TestMonthRange(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	assert.NoError(t, err)

	start, end := MonthRange(time.Date(2026, 12, 31, 23, 59, 0, 0, madrid))
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, madrid), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, madrid), end)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 28, DaysInMonth(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 29, DaysInMonth(time.Date(2028, 2, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 31, DaysInMonth(time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)))
}

func TestDailyAverageAndProjection(t *testing.T) {
	now := time.Date(2026, 10, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "15", DailyAverage(15000, now).String())
	assert.Equal(t, "465", ProjectMonthEnd(15000, now).String())

	now = time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "3.33", DailyAverage(1000, now).String())
	assert.Equal(t, "103.33", ProjectMonthEnd(1000, now).String())
}
