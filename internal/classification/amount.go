package classification

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/foxy-spend/internal/common"
)

const number = `(\d+(?:[.,]\d{1,2})?)`

var (
	currencyAmount = regexp.MustCompile(`€\s*` + number + `|` + number + `\s*€`)
	eurosAmount    = regexp.MustCompile(number + `\s*(?:euros?|eur)\b`)
	conAmount      = regexp.MustCompile(`(\d+)\s+con\s+(\d{1,2})\b`)
	bareAmount     = regexp.MustCompile(`\b` + number + `\b`)
	numericToken   = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	thousands      = regexp.MustCompile(`(\d)\.(\d{3})\b`)
)

// ParseDecimal parses "6,50" or "6.50" into a decimal.
func ParseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
}

// ExtractAmount finds the spoken amount in text. Forms are tried in order and the
// first match wins: "€N" or "N €", "N euros", "N con NN", then a bare number.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	folded := thousands.ReplaceAllString(common.Fold(text), "$1$2")

	if m := currencyAmount.FindStringSubmatch(folded); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		return positive(raw)
	}

	for _, loc := range eurosAmount.FindAllStringSubmatchIndex(folded, -1) {
		// "10 con 50 euros": the euros belong to the cents part.
		if strings.HasSuffix(strings.TrimRight(folded[:loc[0]], " "), " con") {
			continue
		}
		return positive(folded[loc[2]:loc[3]])
	}

	if m := conAmount.FindStringSubmatch(folded); m != nil {
		// Spoken cents: "3 con 5" is three euros and five cents.
		cents := m[2]
		if len(cents) == 1 {
			cents = "0" + cents
		}
		return positive(m[1] + "." + cents)
	}

	if m := bareAmount.FindStringSubmatch(folded); m != nil {
		return positive(m[1])
	}

	return decimal.Zero, false
}

// CountAmounts returns how many numeric tokens appear in text. "10 con 50" counts once.
func CountAmounts(text string) int {
	folded := common.Fold(text)
	folded = conAmount.ReplaceAllString(folded, "$1.$2")
	return len(numericToken.FindAllString(folded, -1))
}

func positive(raw string) (decimal.Decimal, bool) {
	d, err := ParseDecimal(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

var spelledUnits = map[string]int{
	"un": 1, "uno": 1, "una": 1, "dos": 2, "tres": 3, "cuatro": 4, "cinco": 5,
	"seis": 6, "siete": 7, "ocho": 8, "nueve": 9, "diez": 10, "once": 11,
	"doce": 12, "trece": 13, "catorce": 14, "quince": 15, "dieciseis": 16,
	"diecisiete": 17, "dieciocho": 18, "diecinueve": 19, "veinte": 20,
	"veintiuno": 21, "veintiun": 21, "veintidos": 22, "veintitres": 23,
	"veinticuatro": 24, "veinticinco": 25, "veintiseis": 26, "veintisiete": 27,
	"veintiocho": 28, "veintinueve": 29, "cien": 100,
}

var spelledTens = map[string]int{
	"treinta": 30, "cuarenta": 40, "cincuenta": 50, "sesenta": 60,
	"setenta": 70, "ochenta": 80, "noventa": 90,
}

// NormalizeNumbers folds text and rewrites spelled-out Spanish numbers as digits when
// they are used as money: followed by "euros" or "con", or following "con".
// "tres con cincuenta" becomes "3 con 50"; "un café" is left alone.
func NormalizeNumbers(text string) string {
	tokens := strings.Fields(common.Fold(text))
	out := make([]string, 0, len(tokens))

	for i := 0; i < len(tokens); {
		value, consumed := spelledNumber(tokens, i)
		if consumed > 0 && isMoneyContext(tokens, i, i+consumed) {
			out = append(out, strconv.Itoa(value))
			i += consumed
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return strings.Join(out, " ")
}

func spelledNumber(tokens []string, i int) (int, int) {
	if v, ok := spelledUnits[tokens[i]]; ok {
		return v, 1
	}
	tens, ok := spelledTens[tokens[i]]
	if !ok {
		return 0, 0
	}
	if i+2 < len(tokens) && tokens[i+1] == "y" {
		if unit, ok := spelledUnits[tokens[i+2]]; ok && unit < 10 {
			return tens + unit, 3
		}
	}
	return tens, 1
}

func isMoneyContext(tokens []string, start, end int) bool {
	if start > 0 && tokens[start-1] == "con" {
		return true
	}
	if end >= len(tokens) {
		return false
	}
	switch tokens[end] {
	case "euro", "euros", "eur", "€", "con":
		return true
	}
	return false
}

// FirstNumber returns the first numeric token in text, zero included. It is the
// last-resort reading when no amount form matches.
func FirstNumber(text string) (decimal.Decimal, bool) {
	folded := thousands.ReplaceAllString(common.Fold(text), "$1$2")
	token := numericToken.FindString(folded)
	if token == "" {
		return decimal.Zero, false
	}
	d, err := ParseDecimal(token)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
