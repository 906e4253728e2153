package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/foxy-spend/internal/classification"
	"github.com/Veraticus/foxy-spend/internal/model"
)

// UnknownCategoryMaxConfidence caps items whose category had to be replaced by Other.
const UnknownCategoryMaxConfidence = 0.6

const defaultItemConfidence = 0.5

var (
	errMissingAmount   = errors.New("missing or invalid amount")
	errMissingCategory = errors.New("missing category")
	errEmptyResponse   = errors.New("no expenses in response")
)

var codeFence = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// ExtractJSON pulls the JSON payload out of a model reply: the body of a code fence
// if there is one, else the span from the first "[" to the last "]", else the reply.
func ExtractJSON(content string) string {
	if m := codeFence.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start >= 0 && end > start {
		return content[start : end+1]
	}

	return strings.TrimSpace(content)
}

// parseExpenses decodes a model reply into expenses. Any item without a usable
// amount or category fails the whole reply.
func parseExpenses(content string) ([]model.ParsedExpense, error) {
	payload := []byte(ExtractJSON(content))

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		var single map[string]json.RawMessage
		if objErr := json.Unmarshal(payload, &single); objErr != nil {
			return nil, fmt.Errorf("failed to parse JSON response: %w", err)
		}
		raw = []map[string]json.RawMessage{single}
	}

	if len(raw) == 0 {
		return nil, errEmptyResponse
	}

	items := make([]model.ParsedExpense, 0, len(raw))
	for i, fields := range raw {
		item, err := coerceItem(fields)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func coerceItem(fields map[string]json.RawMessage) (model.ParsedExpense, error) {
	amountRaw, ok := firstField(fields, "amount_eur", "amount")
	if !ok {
		return model.ParsedExpense{}, errMissingAmount
	}
	amount, err := parseAmount(amountRaw)
	if err != nil {
		return model.ParsedExpense{}, fmt.Errorf("%w: %s", errMissingAmount, amountRaw)
	}

	categoryText, ok := stringField(fields, "category")
	if !ok || strings.TrimSpace(categoryText) == "" {
		return model.ParsedExpense{}, errMissingCategory
	}

	confidence := defaultItemConfidence
	if confRaw, ok := firstField(fields, "confidence"); ok {
		if c, err := parseConfidence(confRaw); err == nil {
			confidence = c
		}
	}

	category, known := model.ParseCategory(categoryText)
	if !known {
		category = model.CategoryOther
		confidence = math.Min(confidence, UnknownCategoryMaxConfidence)
	}

	item := model.ParsedExpense{
		Amount:     amount,
		Category:   category,
		Confidence: confidence,
	}
	item.Merchant, _ = stringField(fields, "merchant")
	item.Note, _ = stringField(fields, "note")
	item.DateExpression, _ = stringField(fields, "date", "date_expression")
	if paid, ok := stringField(fields, "paid_with", "payment_method"); ok {
		item.PaymentMethod, _ = model.ParsePaymentMethod(paid)
	}

	return item, nil
}

func firstField(fields map[string]json.RawMessage, names ...string) (json.RawMessage, bool) {
	for _, name := range names {
		raw, ok := fields[name]
		if ok && !isNull(raw) {
			return raw, true
		}
	}
	return nil, false
}

func stringField(fields map[string]json.RawMessage, names ...string) (string, bool) {
	raw, ok := firstField(fields, names...)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// numberText returns the textual number held by raw, whether it was sent as a JSON
// number or as a string such as "6,50".
func numberText(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	text, err := numberText(raw)
	if err != nil {
		return decimal.Zero, err
	}
	text = strings.TrimSpace(strings.NewReplacer("€", "", "EUR", "", "eur", "").Replace(text))
	return classification.ParseDecimal(text)
}

func parseConfidence(raw json.RawMessage) (float64, error) {
	text, err := numberText(raw)
	if err != nil {
		return 0, err
	}

	scale := 1.0
	if strings.HasSuffix(text, "%") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "%"))
		scale = 100
	}

	c, err := strconv.ParseFloat(strings.Replace(text, ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	c /= scale

	switch {
	case math.IsNaN(c) || c < 0:
		return 0, nil
	case c > 1:
		return 1, nil
	}
	return c, nil
}
