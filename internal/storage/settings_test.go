package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/model"
)

func TestSQLiteStorage_GetSettings_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetSettings(context.Background(), "u1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_SaveSettings(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	settings := model.DefaultSettings("u1")
	settings.MonthlyLimitCents = 50000
	require.NoError(t, store.SaveSettings(ctx, &settings))

	got, err := store.GetSettings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, settings, *got)

	settings.MonthlyLimitCents = 80000
	settings.Reminders = false
	settings.ReminderSlots = []model.TimeSlot{{StartMinute: 20 * 60, EndMinute: 22*60 + 30}}
	settings.Timezone = "America/Mexico_City"
	require.NoError(t, store.SaveSettings(ctx, &settings))

	got, err = store.GetSettings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSQLiteStorage_SaveSettings_NoSlots(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	settings := &model.Settings{UserID: "u1", BudgetAlerts: true}
	require.NoError(t, store.SaveSettings(ctx, settings))

	got, err := store.GetSettings(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.ReminderSlots)
	assert.Equal(t, model.DefaultTimezone, got.Timezone)
	assert.True(t, got.BudgetAlerts)
	assert.False(t, got.Reminders)
}

func TestSQLiteStorage_SaveSettings_Invalid(t *testing.T) {
	tests := []struct {
		settings *model.Settings
		wantErr  error
		name     string
	}{
		{name: "nil", wantErr: ErrNilParameter},
		{name: "missing user", settings: &model.Settings{}, wantErr: ErrInvalidSettings},
		{name: "negative limit", settings: &model.Settings{UserID: "u1", MonthlyLimitCents: -1}, wantErr: ErrInvalidSettings},
		{name: "limit too high", settings: &model.Settings{UserID: "u1", MonthlyLimitCents: model.MaxMonthlyLimitCents + 1}, wantErr: ErrInvalidSettings},
		{name: "unknown zone", settings: &model.Settings{UserID: "u1", Timezone: "Mars/Olympus"}, wantErr: ErrInvalidSettings},
	}

	store, cleanup := createTestStorage(t)
	defer cleanup()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, store.SaveSettings(context.Background(), tt.settings), tt.wantErr)
		})
	}
}
