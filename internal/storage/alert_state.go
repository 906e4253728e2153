package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/foxy-spend/internal/model"
)

// LoadAlertState returns the user's alert state; an empty state if none was saved.
func (s *SQLiteStorage) LoadAlertState(ctx context.Context, userID string) (model.AlertState, error) {
	if err := validateContext(ctx); err != nil {
		return model.AlertState{}, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return model.AlertState{}, err
	}

	state := model.AlertState{ReminderSent: make(map[string]time.Time)}

	var month int
	err := s.db.QueryRowContext(ctx, `
		SELECT year, month, sent_70, sent_90
		FROM alert_state
		WHERE user_id = ?
	`, userID).Scan(&state.Year, &month, &state.Sent70, &state.Sent90)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return model.AlertState{}, fmt.Errorf("failed to load alert state: %w", err)
	default:
		state.Month = time.Month(month)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT slot, sent_at FROM reminder_log WHERE user_id = ?`, userID)
	if err != nil {
		return model.AlertState{}, fmt.Errorf("failed to load reminder log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			slot   string
			sentMs int64
		)
		if err := rows.Scan(&slot, &sentMs); err != nil {
			return model.AlertState{}, fmt.Errorf("failed to scan reminder log: %w", err)
		}
		state.ReminderSent[slot] = time.UnixMilli(sentMs).UTC()
	}
	if err := rows.Err(); err != nil {
		return model.AlertState{}, fmt.Errorf("failed to iterate reminder log: %w", err)
	}

	return state, nil
}

// SaveAlertState replaces the user's alert state.
func (s *SQLiteStorage) SaveAlertState(ctx context.Context, userID string, state model.AlertState) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO alert_state (user_id, year, month, sent_70, sent_90, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			year = excluded.year,
			month = excluded.month,
			sent_70 = excluded.sent_70,
			sent_90 = excluded.sent_90,
			updated_at = CURRENT_TIMESTAMP
	`, userID, state.Year, int(state.Month), state.Sent70, state.Sent90); err != nil {
		return fmt.Errorf("failed to save alert state: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reminder_log WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear reminder log: %w", err)
	}
	for slot, sentAt := range state.ReminderSent {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO reminder_log (user_id, slot, sent_at) VALUES (?, ?, ?)
		`, userID, slot, sentAt.UnixMilli()); err != nil {
			return fmt.Errorf("failed to save reminder log: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit alert state: %w", err)
	}
	return nil
}
