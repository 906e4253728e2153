package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/model"
)

// GetSettings returns the user's settings, or common.ErrNotFound.
func (s *SQLiteStorage) GetSettings(ctx context.Context, userID string) (*model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var (
		settings = model.Settings{UserID: userID}
		slots    string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT monthly_limit_cents, timezone, reminder_slots, budget_alerts, reminders
		FROM settings
		WHERE user_id = ?
	`, userID).Scan(
		&settings.MonthlyLimitCents,
		&settings.Timezone,
		&slots,
		&settings.BudgetAlerts,
		&settings.Reminders,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settings for %s: %w", userID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if slots != "" {
		settings.ReminderSlots, err = model.ParseTimeSlots(strings.Split(slots, ","))
		if err != nil {
			return nil, fmt.Errorf("stored reminder slots for %s: %w", userID, err)
		}
	}
	return &settings, nil
}

// SaveSettings inserts or replaces the user's settings.
func (s *SQLiteStorage) SaveSettings(ctx context.Context, settings *model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}

	timezone := settings.Timezone
	if timezone == "" {
		timezone = model.DefaultTimezone
	}

	slots := make([]string, len(settings.ReminderSlots))
	for i, slot := range settings.ReminderSlots {
		slots[i] = slot.String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (user_id, monthly_limit_cents, timezone, reminder_slots, budget_alerts, reminders, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			monthly_limit_cents = excluded.monthly_limit_cents,
			timezone = excluded.timezone,
			reminder_slots = excluded.reminder_slots,
			budget_alerts = excluded.budget_alerts,
			reminders = excluded.reminders,
			updated_at = CURRENT_TIMESTAMP
	`,
		settings.UserID,
		settings.MonthlyLimitCents,
		timezone,
		strings.Join(slots, ","),
		settings.BudgetAlerts,
		settings.Reminders,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
