// Package service defines the contracts the parsing and alerting core consumes.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/foxy-spend/internal/model"
)

// SpendRepository persists confirmed expenses.
type SpendRepository interface {
	CreateSpend(ctx context.Context, expense *model.Expense) error
	GetSpend(ctx context.Context, userID, id string) (*model.Expense, error)
	ListRecentSpends(ctx context.Context, userID string, limit int) ([]model.Expense, error)
	ListSpendsInRange(ctx context.Context, userID string, start, end time.Time) ([]model.Expense, error)
	SumSpendsInRange(ctx context.Context, userID string, start, end time.Time) (int64, error)
	UpdateSpend(ctx context.Context, expense *model.Expense) error
	DeleteSpend(ctx context.Context, userID, id string) error
}

// SettingsRepository stores the per-user budget and notification settings.
type SettingsRepository interface {
	// GetSettings returns common.ErrNotFound when the user has none.
	GetSettings(ctx context.Context, userID string) (*model.Settings, error)
	SaveSettings(ctx context.Context, settings *model.Settings) error
}

// AlertStateStore remembers which alerts and reminders were sent.
type AlertStateStore interface {
	// LoadAlertState returns an empty state when nothing was saved yet.
	LoadAlertState(ctx context.Context, userID string) (model.AlertState, error)
	SaveAlertState(ctx context.Context, userID string, state model.AlertState) error
}

// NotificationSender delivers a notification to the user.
type NotificationSender interface {
	Send(ctx context.Context, title, body, tag string) error
}

// Storage is the full persistence layer.
type Storage interface {
	SpendRepository
	SettingsRepository
	AlertStateStore

	Migrate(ctx context.Context) error
	Close() error
}
