package llm

import (
	"context"
	"time"

	"github.com/Veraticus/foxy-spend/internal/model"
)

// DefaultLocale is the language and region the prompts are written for.
const DefaultLocale = "es-ES"

// Classifier parses an utterance into a batch of expenses.
type Classifier interface {
	Parse(ctx context.Context, text, locale string) (model.ParsedBatch, error)
	Name() string
}

// Config holds configuration for the remote classifier.
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	RateLimit   int // requests per minute
}
