package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/foxy-spend/internal/model"
)

func spend(category model.Category, cents int64, at time.Time) model.Expense {
	return model.Expense{Category: category, AmountCents: cents, Timestamp: at, Currency: model.CurrencyEUR}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	expenses := []model.Expense{
		spend(model.CategoryGroceries, 4500, now.AddDate(0, 0, -1)),
		spend(model.CategoryCoffee, 350, now.AddDate(0, 0, -2)),
		spend(model.CategoryCoffee, 350, now.AddDate(0, 0, -3)),
		spend(model.CategoryTransport, 1200, now.AddDate(0, 0, -4)),
		spend(model.CategoryLeisure, 700, now.AddDate(0, 0, -5)),
		spend(model.CategoryHome, 9900, now.AddDate(0, 0, -10)),
		spend(model.CategoryHealth, 2000, time.Date(2026, 9, 30, 10, 0, 0, 0, time.UTC)),
	}

	t.Run("weekly", func(t *testing.T) {
		got := Summarize(PeriodWeekly, expenses, now)
		assert.Equal(t, int64(4500+350+350+1200+700), got.TotalCents)
		assert.Equal(t, 5, got.Count)
		require.Len(t, got.TopCategories, 3)
		assert.Equal(t, CategoryTotal{Category: model.CategoryGroceries, AmountCents: 4500}, got.TopCategories[0])
		assert.Equal(t, CategoryTotal{Category: model.CategoryTransport, AmountCents: 1200}, got.TopCategories[1])
		// Coffee and leisure tie at 7€; coffee is listed first.
		assert.Equal(t, CategoryTotal{Category: model.CategoryCoffee, AmountCents: 700}, got.TopCategories[2])
	})

	t.Run("monthly", func(t *testing.T) {
		got := Summarize(PeriodMonthly, expenses, now)
		assert.Equal(t, int64(4500+350+350+1200+700+9900), got.TotalCents)
		assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), got.Start)
		assert.Equal(t, model.CategoryHome, got.TopCategories[0].Category)
	})

	t.Run("nothing spent", func(t *testing.T) {
		got := Summarize(PeriodWeekly, nil, now)
		assert.Zero(t, got.TotalCents)
		assert.Empty(t, got.TopCategories)
	})
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("Semanal")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeekly, p)

	p, err = ParsePeriod("monthly")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonthly, p)

	_, err = ParsePeriod("yearly")
	assert.Error(t, err)
}
