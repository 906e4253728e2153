package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/model"
)

// DefaultRecentLimit bounds ListRecentSpends when no limit is given.
const DefaultRecentLimit = 100

const spendColumns = `id, user_id, amount_cents, currency, category, merchant, note, paid_with, spent_at`

// CreateSpend stores a new expense. An empty ID is filled with a new UUID.
func (s *SQLiteStorage) CreateSpend(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	if expense.Currency == "" {
		expense.Currency = model.CurrencyEUR
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO spends (`+spendColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		expense.ID,
		expense.UserID,
		expense.AmountCents,
		expense.Currency,
		string(expense.Category),
		expense.Merchant,
		expense.Note,
		string(expense.PaymentMethod),
		expense.Timestamp.UnixMilli(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: spend %s", common.ErrDuplicateEntry, expense.ID)
		}
		return fmt.Errorf("failed to create spend: %w", err)
	}
	return nil
}

// GetSpend returns one of the user's expenses, or common.ErrNotFound.
func (s *SQLiteStorage) GetSpend(ctx context.Context, userID, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+spendColumns+`
		FROM spends
		WHERE id = ? AND user_id = ?
	`, id, userID)

	expense, err := scanSpend(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("spend %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get spend: %w", err)
	}
	return &expense, nil
}

// ListRecentSpends returns the user's latest expenses, newest first.
func (s *SQLiteStorage) ListRecentSpends(ctx context.Context, userID string, limit int) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	return s.querySpends(ctx, s.db, `
		SELECT `+spendColumns+`
		FROM spends
		WHERE user_id = ?
		ORDER BY spent_at DESC, created_at DESC
		LIMIT ?
	`, userID, limit)
}

// ListSpendsInRange returns the user's expenses in [start, end), oldest first.
func (s *SQLiteStorage) ListSpendsInRange(ctx context.Context, userID string, start, end time.Time) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	return s.querySpends(ctx, s.db, `
		SELECT `+spendColumns+`
		FROM spends
		WHERE user_id = ? AND spent_at >= ? AND spent_at < ?
		ORDER BY spent_at ASC
	`, userID, start.UnixMilli(), end.UnixMilli())
}

// SumSpendsInRange returns the cents spent by the user in [start, end).
func (s *SQLiteStorage) SumSpendsInRange(ctx context.Context, userID string, start, end time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}
	if err := validateDateRange(start, end); err != nil {
		return 0, err
	}

	var total int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM spends
		WHERE user_id = ? AND spent_at >= ? AND spent_at < ?
	`, userID, start.UnixMilli(), end.UnixMilli()).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum spends: %w", err)
	}
	return total, nil
}

// UpdateSpend overwrites an existing expense, or returns common.ErrNotFound.
func (s *SQLiteStorage) UpdateSpend(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}
	if err := validateString(expense.ID, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE spends
		SET amount_cents = ?, currency = ?, category = ?, merchant = ?, note = ?, paid_with = ?, spent_at = ?
		WHERE id = ? AND user_id = ?
	`,
		expense.AmountCents,
		expense.Currency,
		string(expense.Category),
		expense.Merchant,
		expense.Note,
		string(expense.PaymentMethod),
		expense.Timestamp.UnixMilli(),
		expense.ID,
		expense.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update spend: %w", err)
	}
	return requireAffected(result, "spend "+expense.ID)
}

// DeleteSpend removes one of the user's expenses, or returns common.ErrNotFound.
func (s *SQLiteStorage) DeleteSpend(ctx context.Context, userID, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM spends WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete spend: %w", err)
	}
	return requireAffected(result, "spend "+id)
}

func (s *SQLiteStorage) querySpends(ctx context.Context, q queryable, query string, args ...any) ([]model.Expense, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query spends: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		expense, err := scanSpend(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spend: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spends: %w", err)
	}
	return expenses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpend(row rowScanner) (model.Expense, error) {
	var (
		expense   model.Expense
		category  string
		paidWith  string
		spentAtMs int64
	)
	err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&expense.AmountCents,
		&expense.Currency,
		&category,
		&expense.Merchant,
		&expense.Note,
		&paidWith,
		&spentAtMs,
	)
	if err != nil {
		return model.Expense{}, err
	}

	expense.Category = model.Category(category)
	expense.PaymentMethod = model.PaymentMethod(paidWith)
	expense.Timestamp = time.UnixMilli(spentAtMs).UTC()
	return expense, nil
}

func requireAffected(result sql.Result, what string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", what, common.ErrNotFound)
	}
	return nil
}
