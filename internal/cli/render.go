package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/foxy-spend/internal/budget"
	"github.com/Veraticus/foxy-spend/internal/model"
)

const budgetBarWidth = 20

// FormatItem renders one parsed expense on a single line, e.g.
// "3,50 € · Café · Starbucks · tarjeta · ayer (92%)".
func FormatItem(item model.ParsedExpense) string {
	parts := []string{
		BoldStyle.Render(model.FormatEUR(item.AmountCents())),
		item.Category.String(),
	}
	if item.Merchant != "" {
		parts = append(parts, item.Merchant)
	}
	if item.Note != "" {
		parts = append(parts, SubtleStyle.Render(item.Note))
	}
	if pm := item.PaymentMethod.Spanish(); pm != "" {
		parts = append(parts, pm)
	}
	if item.DateExpression != "" {
		parts = append(parts, item.DateExpression)
	}
	return strings.Join(parts, " · ") + " " + confidenceStyle(item.Confidence).Render(fmt.Sprintf("(%.0f%%)", item.Confidence*100))
}

func confidenceStyle(c float64) lipgloss.Style {
	switch {
	case c >= 0.9:
		return SuccessStyle
	case c >= 0.5:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

// RenderBatch renders a parsed batch as a numbered list.
func RenderBatch(batch model.ParsedBatch) string {
	var b strings.Builder
	for i, item := range batch.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, FormatItem(item))
	}
	fmt.Fprintf(&b, "\n%s Confianza media: %.0f%%", InfoIcon, batch.AggregateConfidence*100)
	return b.String()
}

// RenderBudget renders the month's budget status with a usage bar.
func RenderBudget(status budget.Status, now time.Time) string {
	if status.LimitCents <= 0 {
		return fmt.Sprintf("%s Gastado este mes: %s (sin presupuesto)", CoinIcon, model.FormatEUR(status.TotalCents))
	}

	style := levelStyle(status.Level)
	filled := min(int(status.PercentageUsed*budgetBarWidth), budgetBarWidth)
	bar := style.Render(strings.Repeat("█", filled)) + SubtleStyle.Render(strings.Repeat("░", budgetBarWidth-filled))

	var b strings.Builder
	fmt.Fprintf(&b, "%s / %s  %s %s\n",
		model.FormatEUR(status.TotalCents),
		model.FormatEUR(status.LimitCents),
		bar,
		style.Render(fmt.Sprintf("%d%%", status.Percent())))
	if status.RemainingCents > 0 {
		fmt.Fprintf(&b, "Quedan %s\n", model.FormatEUR(status.RemainingCents))
	} else {
		fmt.Fprintf(&b, "%s\n", ErrorStyle.Render("Presupuesto agotado"))
	}
	fmt.Fprintf(&b, "Media diaria: %s €  ·  Proyección fin de mes: %s €",
		budget.DailyAverage(status.TotalCents, now).StringFixed(2),
		budget.ProjectMonthEnd(status.TotalCents, now).StringFixed(2))
	return b.String()
}

func levelStyle(level budget.Level) lipgloss.Style {
	switch level {
	case budget.LevelAlert:
		return ErrorStyle
	case budget.LevelWarning:
		return WarningStyle
	default:
		return SuccessStyle
	}
}

// RenderSummary renders a weekly or monthly summary.
func RenderSummary(summary budget.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s → %s\n", summary.Start.Format("02/01/2006"), summary.End.Format("02/01/2006"))
	fmt.Fprintf(&b, "Total: %s en %d gastos\n", BoldStyle.Render(model.FormatEUR(summary.TotalCents)), summary.Count)
	for i, ct := range summary.TopCategories {
		fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, ct.Category, model.FormatEUR(ct.AmountCents))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderExpenses renders stored expenses as a table in loc.
func RenderExpenses(expenses []model.Expense, loc *time.Location) string {
	if len(expenses) == 0 {
		return SubtleStyle.Render("Sin gastos")
	}

	header := TableHeaderStyle.Render(fmt.Sprintf("%-16s %12s  %-14s %s", "Fecha", "Importe", "Categoría", "Comercio"))
	lines := []string{header}
	for _, e := range expenses {
		lines = append(lines, fmt.Sprintf("%-16s %12s  %-14s %s",
			e.Timestamp.In(loc).Format("02/01/2006 15:04"),
			model.FormatEUR(e.AmountCents),
			e.Category,
			e.Merchant))
	}
	return strings.Join(lines, "\n")
}
