package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/model"
)

// Remote classifier defaults.
const (
	DefaultTimeout     = 3 * time.Second
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 300
)

type providerDefaults struct {
	baseURL string
	model   string
}

var providers = map[string]providerDefaults{
	"deepseek": {baseURL: "https://api.deepseek.com/v1", model: "deepseek-chat"},
	"openai":   {baseURL: "https://api.openai.com/v1", model: "gpt-4o-mini"},
}

// RemoteClassifier calls an OpenAI-compatible chat completions endpoint.
// Every Parse makes exactly one request.
type RemoteClassifier struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
	provider    string
	apiKey      string
	baseURL     string
	model       string
	timeout     time.Duration
	temperature float64
	maxTokens   int
}

// NewRemoteClassifier creates a remote classifier for cfg.Provider ("deepseek" or "openai").
func NewRemoteClassifier(cfg Config, logger *slog.Logger) (*RemoteClassifier, error) {
	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = "deepseek"
	}
	defaults, ok := providers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: %s API key", common.ErrMissingConfig, provider)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaults.baseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaults.model
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	return &RemoteClassifier{
		provider:    provider,
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       modelName,
		timeout:     timeout,
		temperature: temperature,
		maxTokens:   maxTokens,
		limiter:     newRateLimiter(cfg.RateLimit),
		logger:      common.LoggerOrDefault(logger),
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Name returns the provider name.
func (c *RemoteClassifier) Name() string {
	return c.provider
}

// Parse sends text to the provider and decodes the expenses in its reply.
// All failures, including the timeout, are returned as *common.ProviderError.
func (c *RemoteClassifier) Parse(ctx context.Context, text, locale string) (model.ParsedBatch, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return model.ParsedBatch{}, c.fail(fmt.Errorf("rate limit: %w", err))
	}

	start := time.Now()
	content, err := c.complete(ctx, buildPrompt(text, locale))
	if err != nil {
		return model.ParsedBatch{}, err
	}

	items, err := parseExpenses(content)
	if err != nil {
		c.logger.Warn("unusable classifier response",
			"provider", c.provider,
			"error", err)
		return model.ParsedBatch{}, c.fail(fmt.Errorf("%w: %w", common.ErrMalformedResponse, err))
	}

	batch := model.NewBatch(items)
	c.logger.Debug("remote classification complete",
		"provider", c.provider,
		"items", len(items),
		"confidence", batch.AggregateConfidence,
		"duration", time.Since(start))

	return batch, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *RemoteClassifier) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", c.fail(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", c.fail(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Warn("classifier request timed out", "provider", c.provider, "timeout", c.timeout)
			return "", c.fail(fmt.Errorf("request timed out after %s: %w", c.timeout, context.DeadlineExceeded))
		}
		return "", c.fail(fmt.Errorf("request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.fail(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", &common.ProviderError{
			Provider: c.provider,
			Status:   resp.StatusCode,
			Body:     string(respBody),
			Err:      fmt.Errorf("unexpected status: %s", http.StatusText(resp.StatusCode)),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", c.fail(fmt.Errorf("%w: %w", common.ErrMalformedResponse, err))
	}
	if len(parsed.Choices) == 0 {
		return "", c.fail(fmt.Errorf("%w: no completion choices returned", common.ErrMalformedResponse))
	}

	return parsed.Choices[0].Message.Content, nil
}

func (c *RemoteClassifier) fail(err error) error {
	return common.NewProviderError(c.provider, err)
}
