// Package storage persists expenses, settings and alert state in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/foxy-spend/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidExpense   = errors.New("invalid expense")
	ErrInvalidSettings  = errors.New("invalid settings")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

// validateExpense validates an expense before it is written.
func validateExpense(e *model.Expense) error {
	if e == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if e.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidExpense)
	}
	if e.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidExpense, e.Category)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidExpense)
	}
	return nil
}

// validateSettings validates user settings before they are written.
func validateSettings(s *model.Settings) error {
	if s == nil {
		return fmt.Errorf("%w: settings", ErrNilParameter)
	}
	if s.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidSettings)
	}
	if !model.IsValidMonthlyLimit(s.MonthlyLimitCents) {
		return fmt.Errorf("%w: monthly limit out of range", ErrInvalidSettings)
	}
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("%w: unknown time zone %q", ErrInvalidSettings, s.Timezone)
		}
	}
	return nil
}
