package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Spends and settings",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS spends (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					amount_cents INTEGER NOT NULL CHECK (amount_cents > 0),
					currency TEXT NOT NULL DEFAULT 'EUR',
					category TEXT NOT NULL,
					merchant TEXT NOT NULL DEFAULT '',
					note TEXT NOT NULL DEFAULT '',
					paid_with TEXT NOT NULL DEFAULT '',
					spent_at INTEGER NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_spends_user_time ON spends(user_id, spent_at)`,

				`CREATE TABLE IF NOT EXISTS settings (
					user_id TEXT PRIMARY KEY,
					monthly_limit_cents INTEGER NOT NULL DEFAULT 0,
					timezone TEXT NOT NULL DEFAULT 'Europe/Madrid',
					reminder_slots TEXT NOT NULL DEFAULT '',
					budget_alerts INTEGER NOT NULL DEFAULT 1,
					reminders INTEGER NOT NULL DEFAULT 1,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Alert state and reminder log",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS alert_state (
					user_id TEXT PRIMARY KEY,
					year INTEGER NOT NULL,
					month INTEGER NOT NULL,
					sent_70 INTEGER NOT NULL DEFAULT 0,
					sent_90 INTEGER NOT NULL DEFAULT 0,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS reminder_log (
					user_id TEXT NOT NULL,
					slot TEXT NOT NULL,
					sent_at INTEGER NOT NULL,
					PRIMARY KEY (user_id, slot)
				)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
