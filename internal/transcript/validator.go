// Package transcript screens speech-to-text output before any parsing work is spent on it.
package transcript

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Veraticus/foxy-spend/internal/common"
)

// Length bounds, in characters, for a transcript worth parsing.
const (
	MinLength = 5
	MaxLength = 200
)

// Rejection reasons.
const (
	ReasonTooShort          = "too short"
	ReasonNoWords           = "no words detected"
	ReasonTooLong           = "suspiciously long"
	ReasonNotExpenseRelated = "not expense-related"
)

var letterPattern = regexp.MustCompile(`[a-zA-ZáéíóúüñÁÉÍÓÚÜÑ]`)

// fillerWords are interjections, greetings and acknowledgements, stored folded.
// An utterance made only of these carries no expense.
var fillerWords = map[string]struct{}{
	"eh": {}, "ehh": {}, "um": {}, "umm": {}, "ah": {}, "ahh": {},
	"mmm": {}, "mmmm": {}, "hmm": {}, "hmmm": {},
	"hola": {}, "hello": {}, "hey": {}, "buenas": {}, "buenos": {},
	"dias": {}, "tardes": {}, "noches": {}, "que": {}, "tal": {},
	"vale": {}, "ok": {}, "okay": {}, "gracias": {}, "si": {}, "no": {},
	"bueno": {}, "pues": {}, "adios": {}, "hasta": {}, "luego": {},
}

// Result is the outcome of validating a transcript.
type Result struct {
	Reason string
	Valid  bool
}

// Err returns a *common.ValidationError for rejected transcripts and nil otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return common.NewValidationError(r.Reason)
}

// Validate applies the rules in order; the first failing rule decides the reason.
func Validate(text string) Result {
	trimmed := strings.TrimSpace(text)
	length := utf8.RuneCountInString(trimmed)

	switch {
	case length < MinLength:
		return reject(ReasonTooShort)
	case !letterPattern.MatchString(trimmed):
		return reject(ReasonNoWords)
	case length > MaxLength:
		return reject(ReasonTooLong)
	case isFiller(trimmed):
		return reject(ReasonNotExpenseRelated)
	}

	return Result{Valid: true}
}

func reject(reason string) Result {
	return Result{Reason: reason}
}

func isFiller(text string) bool {
	words := strings.FieldsFunc(common.Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if _, ok := fillerWords[w]; !ok {
			return false
		}
	}
	return true
}
