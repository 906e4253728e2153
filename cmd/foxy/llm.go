package main

import (
	"log/slog"

	"github.com/Veraticus/foxy-spend/internal/cache"
	"github.com/Veraticus/foxy-spend/internal/config"
	"github.com/Veraticus/foxy-spend/internal/llm"
	"github.com/Veraticus/foxy-spend/internal/parser"
)

func llmConfig(cfg config.Config) llm.Config {
	return llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Timeout:     cfg.LLM.Timeout,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		RateLimit:   cfg.LLM.RateLimit,
	}
}

// newOrchestrator wires the classifier, cache and confidence policy from cfg.
func newOrchestrator(cfg config.Config) (*parser.Orchestrator, error) {
	logger := slog.Default()

	classifier, err := llm.NewClassifier(llmConfig(cfg), logger)
	if err != nil {
		return nil, err
	}
	if llm.IsLocalOnly(llmConfig(cfg)) {
		logger.Info("no API key configured, using the local classifier only")
	}

	results := cache.New(
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithCapacity(cfg.Cache.Capacity),
	)

	return parser.NewWithConfig(classifier, results, logger, parser.Config{
		Locale:               cfg.Parser.Locale,
		AutoConfirmThreshold: cfg.Parser.AutoConfirmThreshold,
		MinConfidence:        cfg.Parser.MinConfidence,
	}), nil
}
