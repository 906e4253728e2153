package llm

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Veraticus/foxy-spend/internal/classification"
	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/dates"
	"github.com/Veraticus/foxy-spend/internal/model"
)

// LocalName is the name reported by the local classifier.
const LocalName = "local"

// Local confidence scoring.
const (
	localBaseConfidence     = 0.5
	localAmountBonus        = 0.2
	localCategoryBonus      = 0.2
	localMerchantBonus      = 0.1
	localMaxConfidence      = 0.95
	localFallbackConfidence = 0.4
)

var (
	segmentSeparator = regexp.MustCompile(`\s+y\s+|\s*,\s+`)
	merchantAfterEn  = regexp.MustCompile(`\ben\s+(?:(?:el|la|los|las)\s+)?([\p{L}][\p{L}\d&'-]*)`)

	reasonableAmount = decimal.NewFromInt(1000)
)

// Words that follow "en" without naming a shop.
var merchantStopwords = map[string]bool{
	"el": true, "la": true, "los": true, "las": true, "un": true, "una": true,
	"efectivo": true, "tarjeta": true, "casa": true, "bizum": true,
	"super": true, "supermercado": true, "bar": true, "restaurante": true,
	"tienda": true, "farmacia": true, "metro": true, "bus": true, "taxi": true, "tren": true,
}

// LocalClassifier is a keyword heuristic used when no remote provider is configured
// or the remote call fails. It never returns an error.
type LocalClassifier struct {
	categories *classification.Table[model.Category]
	merchants  *classification.Table[string]
	payments   *classification.Table[model.PaymentMethod]
	logger     *slog.Logger
}

// NewLocalClassifier creates a local classifier with the broad keyword tables.
func NewLocalClassifier(logger *slog.Logger) *LocalClassifier {
	return &LocalClassifier{
		categories: classification.BroadCategories(),
		merchants:  classification.KnownMerchants(),
		payments:   classification.PaymentMethods(),
		logger:     common.LoggerOrDefault(logger),
	}
}

// Name returns "local".
func (c *LocalClassifier) Name() string {
	return LocalName
}

// Parse splits text into expenses. When no positive amount can be found it returns a
// single low-confidence item carrying the original text as its note, for review.
func (c *LocalClassifier) Parse(_ context.Context, text, _ string) (model.ParsedBatch, error) {
	normalized := classification.NormalizeNumbers(text)
	sharedDate := dates.ExtractExpression(normalized)

	var items []model.ParsedExpense
	for _, group := range c.groups(normalized) {
		item, ok := c.parseGroup(group)
		if !ok {
			continue
		}
		if item.DateExpression == "" {
			item.DateExpression = sharedDate
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		c.logger.Debug("local classifier found no amount", "text_length", utf8.RuneCountInString(text))
		return model.NewBatch([]model.ParsedExpense{c.fallbackItem(text, normalized, sharedDate)}), nil
	}

	return model.NewBatch(items), nil
}

// fragmentGroup is the text of one expense plus the amount-less fragments said
// around it, kept verbatim as the note.
type fragmentGroup struct {
	text string
	note string
}

// groups splits a multi-amount utterance into one group per expense. Fragments
// without an amount join the previous group, or the next one when they lead the
// utterance, and are kept as that group's note.
func (c *LocalClassifier) groups(normalized string) []fragmentGroup {
	if classification.CountAmounts(normalized) < 2 {
		return []fragmentGroup{{text: normalized}}
	}

	var (
		groups  []fragmentGroup
		pending fragmentGroup
	)
	forEachSegment(normalized, func(segment, separator string) {
		if _, ok := classification.ExtractAmount(segment); ok {
			group := fragmentGroup{text: segment}
			if pending.text != "" {
				group = fragmentGroup{text: pending.text + " " + segment, note: pending.note}
				pending = fragmentGroup{}
			}
			groups = append(groups, group)
			return
		}

		target := &pending
		if len(groups) > 0 {
			target = &groups[len(groups)-1]
		}
		target.text = strings.TrimSpace(target.text + " " + segment)
		if target.note == "" {
			target.note = segment
		} else {
			target.note += separator + segment
		}
	})

	if len(groups) == 0 {
		return []fragmentGroup{{text: normalized}}
	}
	return groups
}

// forEachSegment calls fn for every non-empty segment between separators, along with
// the separator that preceded it, normalized to " y " or ", ".
func forEachSegment(text string, fn func(segment, separator string)) {
	separator, prev := "", 0
	bounds := append(segmentSeparator.FindAllStringIndex(text, -1), []int{len(text), len(text)})
	for _, loc := range bounds {
		if segment := strings.TrimSpace(text[prev:loc[0]]); segment != "" {
			fn(segment, separator)
		}
		separator = ", "
		if strings.TrimSpace(text[loc[0]:loc[1]]) == "y" {
			separator = " y "
		}
		prev = loc[1]
	}
}

func (c *LocalClassifier) parseGroup(group fragmentGroup) (model.ParsedExpense, bool) {
	amount, ok := classification.ExtractAmount(group.text)
	if !ok {
		return model.ParsedExpense{}, false
	}

	category, found := c.categories.Lookup(group.text)
	if !found {
		category = model.CategoryOther
	}
	payment, _ := c.payments.Lookup(group.text)

	item := model.ParsedExpense{
		Amount:         amount,
		Category:       category,
		Merchant:       c.merchant(group.text),
		Note:           group.note,
		PaymentMethod:  payment,
		DateExpression: dates.ExtractExpression(group.text),
	}
	item.Confidence = score(item)
	return item, true
}

func (c *LocalClassifier) merchant(group string) string {
	if m, ok := c.merchants.Lookup(group); ok {
		return m
	}
	m := merchantAfterEn.FindStringSubmatch(group)
	if m == nil || merchantStopwords[m[1]] {
		return ""
	}
	return cases.Title(language.Spanish).String(m[1])
}

func (c *LocalClassifier) fallbackItem(text, normalized, date string) model.ParsedExpense {
	amount, _ := classification.FirstNumber(normalized)
	return model.ParsedExpense{
		Amount:         amount,
		Category:       model.CategoryOther,
		Note:           strings.TrimSpace(text),
		DateExpression: date,
		Confidence:     localFallbackConfidence,
	}
}

func score(item model.ParsedExpense) float64 {
	confidence := localBaseConfidence
	if item.Amount.IsPositive() && item.Amount.LessThan(reasonableAmount) {
		confidence += localAmountBonus
	}
	if item.Category != model.CategoryOther {
		confidence += localCategoryBonus
	}
	if item.Merchant != "" {
		confidence += localMerchantBonus
	}
	if confidence > localMaxConfidence {
		confidence = localMaxConfidence
	}
	return confidence
}
