// Package testutil provides test utilities for foxy-spend.
// It sets up isolated in-memory databases and seeds them with expenses and settings.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/foxy-spend/internal/model"
	"github.com/Veraticus/foxy-spend/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
	UserID  string
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	Settings   *model.Settings
	AlertState *model.AlertState
	UserID     string
	Spends     []model.Expense
}

// SetupTestDB creates a new migrated in-memory database for DefaultUserID.
// Cleanup is registered with t.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.AddSpend(350, model.CategoryCoffee, now)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database seeded from opts.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	userID := opts.UserID
	if userID == "" {
		userID = DefaultUserID
	}

	db := &TestDB{
		Storage: store,
		UserID:  userID,
		t:       t,
	}

	if opts.Settings != nil {
		settings := *opts.Settings
		settings.UserID = userID
		db.SaveSettings(settings)
	}
	for _, spend := range opts.Spends {
		spend.UserID = userID
		db.mustCreate(spend)
	}
	if opts.AlertState != nil {
		if err := store.SaveAlertState(ctx, userID, *opts.AlertState); err != nil {
			t.Fatalf("failed to seed alert state: %v", err)
		}
	}

	return db
}

// AddSpend stores an expense for the database user and returns it with its ID.
func (db *TestDB) AddSpend(cents int64, category model.Category, at time.Time) model.Expense {
	db.t.Helper()
	return db.mustCreate(NewSpend(cents, category, at).Build())
}

// SaveSettings stores settings for the database user or fails the test.
func (db *TestDB) SaveSettings(settings model.Settings) {
	db.t.Helper()
	settings.UserID = db.UserID
	if err := db.Storage.SaveSettings(context.Background(), &settings); err != nil {
		db.t.Fatalf("failed to save settings: %v", err)
	}
}

// AlertState loads the stored alert state or fails the test.
func (db *TestDB) AlertState() model.AlertState {
	db.t.Helper()
	state, err := db.Storage.LoadAlertState(context.Background(), db.UserID)
	if err != nil {
		db.t.Fatalf("failed to load alert state: %v", err)
	}
	return state
}

// Spends lists every stored expense for the database user, oldest first.
func (db *TestDB) Spends() []model.Expense {
	db.t.Helper()
	spends, err := db.Storage.ListSpendsInRange(context.Background(), db.UserID, time.Unix(0, 0), time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		db.t.Fatalf("failed to list spends: %v", err)
	}
	return spends
}

func (db *TestDB) mustCreate(spend model.Expense) model.Expense {
	db.t.Helper()
	spend.UserID = db.UserID
	if err := db.Storage.CreateSpend(context.Background(), &spend); err != nil {
		db.t.Fatalf("failed to seed spend: %v", err)
	}
	return spend
}
