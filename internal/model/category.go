// Package model defines the core domain models for expense parsing, budgets and alerts.
package model

import (
	"strings"

	"github.com/Veraticus/foxy-spend/internal/common"
)

// Category is one of the fixed expense categories. Its value is the Spanish label
// used on the wire with the remote classifier.
type Category string

// The closed set of categories, in display order.
const (
	CategoryCoffee    Category = "Café"
	CategoryEatingOut Category = "Comida fuera"
	CategoryGroceries Category = "Supermercado"
	CategoryTransport Category = "Transporte"
	CategoryLeisure   Category = "Ocio"
	CategoryHome      Category = "Hogar"
	CategoryHealth    Category = "Salud"
	CategoryShopping  Category = "Compras"
	CategoryOther     Category = "Otros"
)

var allCategories = []Category{
	CategoryCoffee,
	CategoryEatingOut,
	CategoryGroceries,
	CategoryTransport,
	CategoryLeisure,
	CategoryHome,
	CategoryHealth,
	CategoryShopping,
	CategoryOther,
}

var englishNames = map[Category]string{
	CategoryCoffee:    "Coffee",
	CategoryEatingOut: "Eating-out",
	CategoryGroceries: "Groceries",
	CategoryTransport: "Transport",
	CategoryLeisure:   "Leisure",
	CategoryHome:      "Home",
	CategoryHealth:    "Health",
	CategoryShopping:  "Shopping",
	CategoryOther:     "Other",
}

// categoryLookup maps folded labels and English names to categories.
var categoryLookup = func() map[string]Category {
	lookup := make(map[string]Category, len(allCategories)*3)
	for _, c := range allCategories {
		lookup[common.Fold(string(c))] = c
		english := common.Fold(englishNames[c])
		lookup[english] = c
		lookup[strings.ReplaceAll(english, "-", " ")] = c
	}
	return lookup
}()

// AllCategories returns every category in display order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory recognizes a Spanish label or English name, ignoring case and accents.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryLookup[common.Fold(common.CollapseSpaces(s))]
	return c, ok
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	_, ok := englishNames[c]
	return ok
}

// English returns the English name of the category.
func (c Category) English() string {
	return englishNames[c]
}

func (c Category) String() string {
	return string(c)
}

// PaymentMethod records how an expense was paid. The zero value means unknown.
type PaymentMethod string

// Payment methods.
const (
	PaymentUnknown  PaymentMethod = ""
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

var paymentAliases = map[string]PaymentMethod{
	"cash":          PaymentCash,
	"efectivo":      PaymentCash,
	"card":          PaymentCard,
	"tarjeta":       PaymentCard,
	"transfer":      PaymentTransfer,
	"transferencia": PaymentTransfer,
	"bizum":         PaymentTransfer,
}

// ParsePaymentMethod maps Spanish or English payment words to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	pm, ok := paymentAliases[common.Fold(strings.TrimSpace(s))]
	return pm, ok
}

// Spanish returns the label the remote classifier uses for the method.
func (p PaymentMethod) Spanish() string {
	switch p {
	case PaymentCash:
		return "efectivo"
	case PaymentCard:
		return "tarjeta"
	case PaymentTransfer:
		return "transferencia"
	default:
		return ""
	}
}
