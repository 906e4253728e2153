package notify

import (
	"context"
	"log/slog"

	"github.com/Veraticus/foxy-spend/internal/common"
)

// LogSender delivers notifications to the log. It stands in for a push provider.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender writing to logger.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: common.LoggerOrDefault(logger)}
}

// Send logs the notification at info level.
func (s *LogSender) Send(_ context.Context, title, body, tag string) error {
	s.logger.Info("notification",
		"tag", tag,
		"title", title,
		"body", body)
	return nil
}
