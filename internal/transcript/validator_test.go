package transcript

import (
	"strings"
	"testing"

	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantReason string
		wantValid  bool
	}{
		{name: "simple expense", text: "café 3 euros", wantValid: true},
		{name: "amount only with currency word", text: "taxi 6,50", wantValid: true},
		{name: "multi item", text: "5€ café y 10€ taxi", wantValid: true},
		{name: "greeting with amount", text: "hola, 5 euros de pan", wantValid: true},
		{name: "empty", text: "", wantReason: ReasonTooShort},
		{name: "whitespace padded short", text: "   ab   ", wantReason: ReasonTooShort},
		{name: "four accented letters", text: "café", wantReason: ReasonTooShort},
		{name: "digits and symbols", text: "12345 €", wantReason: ReasonNoWords},
		{name: "punctuation only", text: "?!?!?!", wantReason: ReasonNoWords},
		{name: "too long", text: "café " + strings.Repeat("a", 200), wantReason: ReasonTooLong},
		{name: "greeting phrase", text: "hola qué tal", wantReason: ReasonNotExpenseRelated},
		{name: "acknowledgement", text: "vale, gracias", wantReason: ReasonNotExpenseRelated},
		{name: "hesitation", text: "mmm hmm", wantReason: ReasonNotExpenseRelated},
		{name: "good morning", text: "¡Buenos días!", wantReason: ReasonNotExpenseRelated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.text)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantReason, result.Reason)
		})
	}
}

func TestValidate_LengthBoundaries(t *testing.T) {
	assert.True(t, Validate("pan 2").Valid)
	assert.True(t, Validate(strings.Repeat("a", MaxLength)).Valid)
	assert.Equal(t, ReasonTooLong, Validate(strings.Repeat("a", MaxLength+1)).Reason)
}

func TestResult_Err(t *testing.T) {
	require.NoError(t, Validate("café 3 euros").Err())

	err := Validate("hola qué tal").Err()
	var validationErr *common.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, ReasonNotExpenseRelated, validationErr.Reason)
}

func TestValidate_Deterministic(t *testing.T) {
	inputs := []string{"café 3 euros", "hola", "12345", "mmm hmm"}
	for _, in := range inputs {
		assert.Equal(t, Validate(in), Validate(in), in)
	}
}
