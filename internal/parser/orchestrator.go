// Package parser runs the full parsing pipeline for one utterance: validation, the
// result cache, the fast path, and the classifiers.
package parser

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Veraticus/foxy-spend/internal/cache"
	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/fastpath"
	"github.com/Veraticus/foxy-spend/internal/llm"
	"github.com/Veraticus/foxy-spend/internal/model"
	"github.com/Veraticus/foxy-spend/internal/transcript"
)

// Source names the stage that produced a batch.
type Source string

// Pipeline stages.
const (
	SourceCache    Source = "cache"
	SourceFastPath Source = "fastpath"
	SourceRemote   Source = "remote"
	SourceLocal    Source = "local"
)

// Config holds the confidence policy of the orchestrator.
type Config struct {
	Locale               string
	AutoConfirmThreshold float64
	MinConfidence        float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Locale:               llm.DefaultLocale,
		AutoConfirmThreshold: 0.95,
		MinConfidence:        0.5,
	}
}

// Result is a parsed utterance and how it was obtained.
type Result struct {
	Source            Source
	Batch             model.ParsedBatch
	RemoteCallAvoided bool
	LowConfidence     bool // below Config.MinConfidence; show it for review
}

// Orchestrator composes the parsing stages. It is safe for concurrent use, though
// concurrent parses of the same text may both reach the classifier.
type Orchestrator struct {
	remote   llm.Classifier
	fallback *llm.LocalClassifier
	fastPath *fastpath.Extractor
	results  *cache.Cache
	logger   *slog.Logger
	config   Config
	stats    Stats
	mu       sync.Mutex
}

// New creates an orchestrator with the default configuration. classifier may be nil
// or the local classifier, in which case no remote call is ever made.
func New(classifier llm.Classifier, results *cache.Cache, logger *slog.Logger) *Orchestrator {
	return NewWithConfig(classifier, results, logger, DefaultConfig())
}

// NewWithConfig creates an orchestrator with custom configuration.
func NewWithConfig(classifier llm.Classifier, results *cache.Cache, logger *slog.Logger, config Config) *Orchestrator {
	logger = common.LoggerOrDefault(logger)
	if results == nil {
		results = cache.New()
	}
	if config.Locale == "" {
		config.Locale = llm.DefaultLocale
	}

	o := &Orchestrator{
		fallback: llm.NewLocalClassifier(logger),
		fastPath: fastpath.New(),
		results:  results,
		logger:   logger,
		config:   config,
	}
	if _, local := classifier.(*llm.LocalClassifier); classifier != nil && !local {
		o.remote = classifier
	}
	return o
}

// Config returns the orchestrator's configuration.
func (o *Orchestrator) Config() Config {
	return o.config
}

// Parse turns text into a batch of expenses. It returns a *common.ValidationError for
// rejected transcripts and common.ErrNoValidAmount when no stage finds an amount.
// Remote failures are never returned; they fall back to the local classifier.
func (o *Orchestrator) Parse(ctx context.Context, text, locale string) (Result, error) {
	o.count(func(s *Stats) { s.Total++ })
	if locale == "" {
		locale = o.config.Locale
	}

	if check := transcript.Validate(text); !check.Valid {
		o.count(func(s *Stats) { s.Rejections++ })
		o.logger.Debug("transcript rejected", "reason", check.Reason)
		return Result{}, check.Err()
	}

	if items, ok := o.results.Get(text); ok {
		o.count(func(s *Stats) { s.CacheHits++; s.Avoided++ })
		o.logger.Debug("parse served from cache", "items", len(items))
		return o.result(model.NewBatch(items), SourceCache, true), nil
	}

	if item, ok := o.fastPath.TryExtract(text); ok {
		batch := model.NewBatch([]model.ParsedExpense{item})
		o.results.Set(text, batch.Items)
		o.count(func(s *Stats) { s.FastPathHits++; s.Avoided++ })
		o.logger.Debug("parse served by fast path", "category", item.Category, "amount", item.Amount)
		return o.result(batch, SourceFastPath, true), nil
	}

	batch, source := o.classify(ctx, text, locale)
	batch = positiveOnly(batch)
	if len(batch.Items) == 0 {
		o.count(func(s *Stats) { s.Rejections++ })
		return Result{}, common.ErrNoValidAmount
	}

	o.results.Set(text, batch.Items)
	return o.result(batch, source, false), nil
}

func (o *Orchestrator) classify(ctx context.Context, text, locale string) (model.ParsedBatch, Source) {
	if o.remote != nil {
		o.count(func(s *Stats) { s.RemoteCalls++ })
		o.logger.Info("escalating to remote classifier", "provider", o.remote.Name())

		batch, err := o.remote.Parse(ctx, text, locale)
		switch {
		case err != nil:
			o.count(func(s *Stats) { s.RemoteFailures++ })
			o.logger.Warn("remote classifier failed, using local fallback",
				"provider", o.remote.Name(),
				"error", err)
		case !batch.HasPositiveAmount():
			o.logger.Warn("remote classifier found no amount, using local fallback",
				"provider", o.remote.Name(),
				"items", len(batch.Items))
		default:
			return batch, SourceRemote
		}
		o.count(func(s *Stats) { s.Fallbacks++ })
	}

	batch, err := o.fallback.Parse(ctx, text, locale)
	if err != nil {
		o.logger.Error("local classifier failed", "error", err)
		return model.ParsedBatch{}, SourceLocal
	}
	return batch, SourceLocal
}

func (o *Orchestrator) result(batch model.ParsedBatch, source Source, avoided bool) Result {
	low := batch.AggregateConfidence < o.config.MinConfidence
	if low {
		o.logger.Warn("low confidence parse",
			"source", source,
			"confidence", batch.AggregateConfidence,
			"min_confidence", o.config.MinConfidence)
	}
	return Result{
		Batch:             batch,
		Source:            source,
		RemoteCallAvoided: avoided,
		LowConfidence:     low,
	}
}

// positiveOnly drops items without a positive amount and recomputes the aggregate.
func positiveOnly(batch model.ParsedBatch) model.ParsedBatch {
	items := make([]model.ParsedExpense, 0, len(batch.Items))
	for _, item := range batch.Items {
		if item.Valid() {
			items = append(items, item)
		}
	}
	if len(items) == len(batch.Items) {
		return batch
	}
	return model.NewBatch(items)
}

// ShouldAutoConfirm reports whether batch may be saved without review.
func ShouldAutoConfirm(batch model.ParsedBatch, threshold float64) bool {
	return len(batch.Items) > 0 && batch.AggregateConfidence >= threshold
}
