// Package fastpath resolves short, unambiguous utterances locally so they never
// reach the remote classifier.
package fastpath

import (
	"regexp"
	"strings"

	"github.com/Veraticus/foxy-spend/internal/classification"
	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/dates"
	"github.com/Veraticus/foxy-spend/internal/model"
)

const (
	// MaxWords is the longest utterance the extractor will look at.
	MaxWords = 8
	// MaxAcceptedWords is the longest utterance it will answer for.
	MaxAcceptedWords = 5
	// Confidence is assigned to every fast-path result.
	Confidence = 0.85
)

var conjunction = regexp.MustCompile(`\sy\s`)

// Extractor is a conservative keyword-based parser for single expenses.
type Extractor struct {
	categories *classification.Table[model.Category]
	merchants  *classification.Table[string]
	payments   *classification.Table[model.PaymentMethod]
}

// New creates an extractor with the built-in conservative tables.
func New() *Extractor {
	return &Extractor{
		categories: classification.ConservativeCategories(),
		merchants:  classification.ConservativeMerchants(),
		payments:   classification.PaymentMethods(),
	}
}

// TryExtract returns a single expense when text is short, carries one amount and
// names an unambiguous category. Otherwise it returns false and the caller escalates.
func (e *Extractor) TryExtract(text string) (model.ParsedExpense, bool) {
	normalized := common.CollapseSpaces(text)
	words := strings.Fields(normalized)
	if len(words) == 0 || len(words) > MaxWords {
		return model.ParsedExpense{}, false
	}

	// Several expenses in one breath need the full classifier.
	if conjunction.MatchString(" "+common.Fold(normalized)+" ") || classification.CountAmounts(normalized) > 1 {
		return model.ParsedExpense{}, false
	}

	amount, ok := classification.ExtractAmount(normalized)
	if !ok {
		return model.ParsedExpense{}, false
	}

	category, ok := e.categories.Lookup(normalized)
	if !ok || category == model.CategoryOther || len(words) > MaxAcceptedWords {
		return model.ParsedExpense{}, false
	}

	merchant, _ := e.merchants.Lookup(normalized)
	payment, _ := e.payments.Lookup(normalized)

	return model.ParsedExpense{
		Amount:         amount,
		Category:       category,
		Merchant:       merchant,
		PaymentMethod:  payment,
		DateExpression: dates.ExtractExpression(normalized),
		Confidence:     Confidence,
	}, true
}
