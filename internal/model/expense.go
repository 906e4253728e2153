package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyEUR is the only currency the parser produces.
const CurrencyEUR = "EUR"

var hundred = decimal.NewFromInt(100)

// ParsedExpense is one structured expense extracted from an utterance.
type ParsedExpense struct {
	Amount         decimal.Decimal
	Category       Category
	Merchant       string
	Note           string
	PaymentMethod  PaymentMethod
	DateExpression string // raw phrase such as "ayer", resolved later
	Confidence     float64
}

// Valid reports whether the item carries a positive amount.
func (e ParsedExpense) Valid() bool {
	return e.Amount.IsPositive()
}

// AmountCents returns the amount in integer cents, rounded half away from zero.
func (e ParsedExpense) AmountCents() int64 {
	return e.Amount.Mul(hundred).Round(0).IntPart()
}

// ParsedBatch is the result of parsing one utterance.
type ParsedBatch struct {
	Items               []ParsedExpense
	AggregateConfidence float64
}

// NewBatch builds a batch whose aggregate confidence is the mean item confidence.
func NewBatch(items []ParsedExpense) ParsedBatch {
	return ParsedBatch{
		Items:               items,
		AggregateConfidence: meanConfidence(items),
	}
}

// HasPositiveAmount reports whether at least one item has an amount above zero.
func (b ParsedBatch) HasPositiveAmount() bool {
	for _, item := range b.Items {
		if item.Valid() {
			return true
		}
	}
	return false
}

// Clone returns a batch with its own copy of the items.
func (b ParsedBatch) Clone() ParsedBatch {
	items := make([]ParsedExpense, len(b.Items))
	copy(items, b.Items)
	return ParsedBatch{Items: items, AggregateConfidence: b.AggregateConfidence}
}

func meanConfidence(items []ParsedExpense) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, item := range items {
		sum += item.Confidence
	}
	return sum / float64(len(items))
}

// Expense is a confirmed, persisted spend.
type Expense struct {
	Timestamp     time.Time
	ID            string
	UserID        string
	Currency      string
	Category      Category
	Merchant      string
	Note          string
	PaymentMethod PaymentMethod
	AmountCents   int64
}

// ExpenseFromParsed converts a reviewed item into an expense recorded at the given time.
func ExpenseFromParsed(userID string, item ParsedExpense, at time.Time) Expense {
	return Expense{
		UserID:        userID,
		AmountCents:   item.AmountCents(),
		Currency:      CurrencyEUR,
		Category:      item.Category,
		Merchant:      item.Merchant,
		Note:          item.Note,
		PaymentMethod: item.PaymentMethod,
		Timestamp:     at,
	}
}

// Amount returns the expense amount in euros.
func (e Expense) Amount() decimal.Decimal {
	return decimal.New(e.AmountCents, -2)
}
