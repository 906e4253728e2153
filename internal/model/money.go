package model

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Spanish euro formatting: "1.234,50 €".
var euroFormatter = money.NewFormatter(2, ",", ".", "€", "1 $")

// FormatEUR renders cents as euros the way Spanish speakers write them.
func FormatEUR(cents int64) string {
	return euroFormatter.Format(cents)
}

// ParseEuros parses an amount such as "800", "12,50" or "12.50 €" into cents.
func ParseEuros(s string) (int64, error) {
	text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "€"))
	d, err := decimal.NewFromString(strings.Replace(text, ",", ".", 1))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}
