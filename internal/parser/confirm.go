package parser

import (
	"time"

	"github.com/Veraticus/foxy-spend/internal/dates"
	"github.com/Veraticus/foxy-spend/internal/model"
)

// Confirm converts a reviewed batch into expenses for userID. Each item's date phrase
// is resolved against now; items without one, or with one that cannot be resolved,
// are dated now. Items without a positive amount are skipped.
func Confirm(userID string, batch model.ParsedBatch, now time.Time) []model.Expense {
	expenses := make([]model.Expense, 0, len(batch.Items))
	for _, item := range batch.Items {
		if !item.Valid() {
			continue
		}
		at := now
		if item.DateExpression != "" {
			if resolved, ok := dates.Resolve(item.DateExpression, now); ok {
				at = resolved
			}
		}
		expenses = append(expenses, model.ExpenseFromParsed(userID, item, at))
	}
	return expenses
}
