package budget

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/foxy-spend/internal/model"
)

// TopCategoryCount is how many categories a summary ranks.
const TopCategoryCount = 3

// Period selects the window of a summary.
type Period string

// Summary periods.
const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod accepts "weekly"/"semanal" and "monthly"/"mensual".
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly", "week", "semanal", "semana":
		return PeriodWeekly, nil
	case "monthly", "month", "mensual", "mes":
		return PeriodMonthly, nil
	default:
		return "", fmt.Errorf("unknown summary period %q", s)
	}
}

// Range returns the window of p ending at now: the last seven days for weekly, the
// current calendar month so far for monthly.
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	if p == PeriodMonthly {
		start, _ := MonthRange(now)
		return start, now
	}
	return now.AddDate(0, 0, -7), now
}

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category    model.Category
	AmountCents int64
}

// Summary aggregates the expenses of a period.
type Summary struct {
	Start         time.Time
	End           time.Time
	Period        Period
	TopCategories []CategoryTotal
	TotalCents    int64
	Count         int
}

// Summarize totals the expenses that fall inside p's window ending at now and ranks
// the categories by amount.
func Summarize(p Period, expenses []model.Expense, now time.Time) Summary {
	start, end := p.Range(now)
	summary := Summary{Period: p, Start: start, End: end}

	byCategory := make(map[model.Category]int64)
	for _, e := range expenses {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		summary.TotalCents += e.AmountCents
		summary.Count++
		byCategory[e.Category] += e.AmountCents
	}

	summary.TopCategories = topCategories(byCategory, TopCategoryCount)
	return summary
}

func topCategories(byCategory map[model.Category]int64, n int) []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, cents := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, AmountCents: cents})
	}

	order := make(map[model.Category]int)
	for i, c := range model.AllCategories() {
		order[c] = i
	}
	slices.SortFunc(totals, func(a, b CategoryTotal) int {
		if c := cmp.Compare(b.AmountCents, a.AmountCents); c != 0 {
			return c
		}
		return cmp.Compare(order[a.Category], order[b.Category])
	})

	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}
