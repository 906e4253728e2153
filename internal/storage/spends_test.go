package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/model"
)

var spendBase = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func TestSQLiteStorage_CreateSpend(t *testing.T) {
	tests := []struct {
		expense *model.Expense
		wantErr error
		name    string
	}{
		{
			name:    "assigns id and currency",
			expense: testExpense("u1", 1250, model.CategoryGroceries, spendBase),
		},
		{
			name:    "nil expense",
			wantErr: ErrNilParameter,
		},
		{
			name:    "zero amount",
			expense: testExpense("u1", 0, model.CategoryGroceries, spendBase),
			wantErr: ErrInvalidExpense,
		},
		{
			name:    "unknown category",
			expense: testExpense("u1", 100, model.Category("Viajes"), spendBase),
			wantErr: ErrInvalidExpense,
		},
		{
			name:    "missing user",
			expense: testExpense("", 100, model.CategoryCoffee, spendBase),
			wantErr: ErrInvalidExpense,
		},
		{
			name:    "missing timestamp",
			expense: testExpense("u1", 100, model.CategoryCoffee, time.Time{}),
			wantErr: ErrInvalidExpense,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()

			err := store.CreateSpend(context.Background(), tt.expense)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, tt.expense.ID)
			assert.Equal(t, model.CurrencyEUR, tt.expense.Currency)
		})
	}
}

func TestSQLiteStorage_CreateSpend_Duplicate(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first := testExpense("u1", 500, model.CategoryCoffee, spendBase)
	first.ID = "fixed"
	require.NoError(t, store.CreateSpend(ctx, first))

	second := testExpense("u1", 700, model.CategoryCoffee, spendBase)
	second.ID = "fixed"
	assert.ErrorIs(t, store.CreateSpend(ctx, second), common.ErrDuplicateEntry)
}

func TestSQLiteStorage_GetSpend_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	at := time.Date(2026, 10, 15, 23, 45, 12, 345_000_000, madrid)

	expense := &model.Expense{
		UserID:        "u1",
		AmountCents:   4599,
		Category:      model.CategoryHealth,
		Merchant:      "Farmacia Sol",
		Note:          "ibuprofeno",
		PaymentMethod: model.PaymentCash,
		Timestamp:     at,
	}
	require.NoError(t, store.CreateSpend(ctx, expense))

	got, err := store.GetSpend(ctx, "u1", expense.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.ID, got.ID)
	assert.Equal(t, int64(4599), got.AmountCents)
	assert.Equal(t, model.CategoryHealth, got.Category)
	assert.Equal(t, "Farmacia Sol", got.Merchant)
	assert.Equal(t, "ibuprofeno", got.Note)
	assert.Equal(t, model.PaymentCash, got.PaymentMethod)
	assert.True(t, at.Equal(got.Timestamp))
	assert.Equal(t, time.UTC, got.Timestamp.Location())
}

func TestSQLiteStorage_GetSpend_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expense := testExpense("u1", 100, model.CategoryCoffee, spendBase)
	require.NoError(t, store.CreateSpend(ctx, expense))

	_, err := store.GetSpend(ctx, "u1", "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.GetSpend(ctx, "someone-else", expense.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_ListRecentSpends(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.CreateSpend(ctx,
			testExpense("u1", int64(100*(i+1)), model.CategoryCoffee, spendBase.Add(time.Duration(i)*time.Hour))))
	}
	require.NoError(t, store.CreateSpend(ctx, testExpense("u2", 999, model.CategoryCoffee, spendBase)))

	got, err := store.ListRecentSpends(ctx, "u1", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(500), got[0].AmountCents)
	assert.Equal(t, int64(400), got[1].AmountCents)
	assert.Equal(t, int64(300), got[2].AmountCents)

	all, err := store.ListRecentSpends(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestSQLiteStorage_ListAndSumInRange(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateSpend(ctx, testExpense("u1", 1000, model.CategoryGroceries, start.Add(-time.Millisecond))))
	require.NoError(t, store.CreateSpend(ctx, testExpense("u1", 2000, model.CategoryGroceries, start)))
	require.NoError(t, store.CreateSpend(ctx, testExpense("u1", 350, model.CategoryCoffee, spendBase)))
	require.NoError(t, store.CreateSpend(ctx, testExpense("u1", 4000, model.CategoryLeisure, end)))
	require.NoError(t, store.CreateSpend(ctx, testExpense("u2", 8000, model.CategoryLeisure, spendBase)))

	got, err := store.ListSpendsInRange(ctx, "u1", start, end)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2000), got[0].AmountCents)
	assert.Equal(t, int64(350), got[1].AmountCents)

	total, err := store.SumSpendsInRange(ctx, "u1", start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(2350), total)

	empty, err := store.SumSpendsInRange(ctx, "nobody", start, end)
	require.NoError(t, err)
	assert.Zero(t, empty)

	_, err = store.ListSpendsInRange(ctx, "u1", end, start)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestSQLiteStorage_UpdateSpend(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expense := testExpense("u1", 1200, model.CategoryOther, spendBase)
	require.NoError(t, store.CreateSpend(ctx, expense))

	expense.AmountCents = 1500
	expense.Category = model.CategoryEatingOut
	expense.Merchant = "Telepizza"
	require.NoError(t, store.UpdateSpend(ctx, expense))

	got, err := store.GetSpend(ctx, "u1", expense.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), got.AmountCents)
	assert.Equal(t, model.CategoryEatingOut, got.Category)
	assert.Equal(t, "Telepizza", got.Merchant)

	missing := testExpense("u1", 100, model.CategoryOther, spendBase)
	missing.ID = "missing"
	assert.ErrorIs(t, store.UpdateSpend(ctx, missing), common.ErrNotFound)
}

func TestSQLiteStorage_DeleteSpend(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expense := testExpense("u1", 800, model.CategoryTransport, spendBase)
	require.NoError(t, store.CreateSpend(ctx, expense))

	assert.ErrorIs(t, store.DeleteSpend(ctx, "u2", expense.ID), common.ErrNotFound)
	require.NoError(t, store.DeleteSpend(ctx, "u1", expense.ID))
	assert.ErrorIs(t, store.DeleteSpend(ctx, "u1", expense.ID), common.ErrNotFound)

	_, err := store.GetSpend(ctx, "u1", expense.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
