package testutil

import (
	"time"

	"github.com/Veraticus/foxy-spend/internal/model"
)

// DefaultUserID owns the data seeded by SetupTestDB.
const DefaultUserID = "test-user"

// SpendBuilder builds expenses for tests with a fluent API.
type SpendBuilder struct {
	expense model.Expense
}

// NewSpend starts an expense of cents in category at the given time, paid by card.
func NewSpend(cents int64, category model.Category, at time.Time) *SpendBuilder {
	return &SpendBuilder{expense: model.Expense{
		UserID:        DefaultUserID,
		AmountCents:   cents,
		Currency:      model.CurrencyEUR,
		Category:      category,
		PaymentMethod: model.PaymentCard,
		Timestamp:     at,
	}}
}

// WithMerchant sets the merchant.
func (b *SpendBuilder) WithMerchant(merchant string) *SpendBuilder {
	b.expense.Merchant = merchant
	return b
}

// WithNote sets the note.
func (b *SpendBuilder) WithNote(note string) *SpendBuilder {
	b.expense.Note = note
	return b
}

// PaidWith sets the payment method.
func (b *SpendBuilder) PaidWith(method model.PaymentMethod) *SpendBuilder {
	b.expense.PaymentMethod = method
	return b
}

// Build returns the expense.
func (b *SpendBuilder) Build() model.Expense {
	return b.expense
}

// MonthOfSpends returns one expense per entry of cents, a day apart starting at start.
// Categories cycle through model.AllCategories.
func MonthOfSpends(start time.Time, cents ...int64) []model.Expense {
	categories := model.AllCategories()
	out := make([]model.Expense, len(cents))
	for i, c := range cents {
		out[i] = NewSpend(c, categories[i%len(categories)], start.AddDate(0, 0, i)).Build()
	}
	return out
}
