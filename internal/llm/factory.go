package llm

import (
	"log/slog"
	"strings"
)

// IsLocalOnly reports whether cfg selects the local heuristic classifier only,
// either explicitly or because no API key is configured.
func IsLocalOnly(cfg Config) bool {
	return strings.EqualFold(cfg.Provider, LocalName) || cfg.APIKey == ""
}

// NewClassifier creates the primary classifier for cfg: the remote provider when
// credentials are configured, otherwise the local classifier.
func NewClassifier(cfg Config, logger *slog.Logger) (Classifier, error) {
	if IsLocalOnly(cfg) {
		return NewLocalClassifier(logger), nil
	}
	return NewRemoteClassifier(cfg, logger)
}
