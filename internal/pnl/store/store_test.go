package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/plsync/internal/database"
	"github.com/MrJamesThe3rd/plsync/internal/grid"
	"github.com/MrJamesThe3rd/plsync/internal/pnl"
	"github.com/MrJamesThe3rd/plsync/internal/pnl/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.New(database.DriverSQLite, ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))

	return store.New(db)
}

var mar24Actual = pnl.Key{Year: 2024, Month: 3, DataType: pnl.DataTypeActual}

func TestStore_UpsertRecordReplacesAllValues(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	first := pnl.NewRecord(mar24Actual)
	first.Set(pnl.FieldRevenueFood, decimal.NewFromInt(1500000))
	first.Set(pnl.FieldLabor13th, decimal.RequireFromString("250.75"))
	first.SyncedAt = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.UpsertRecord(ctx, first))

	second := pnl.NewRecord(mar24Actual)
	second.Set(pnl.FieldRevenueWine, decimal.NewFromInt(800))
	second.SyncedAt = time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.UpsertRecord(ctx, second))

	got, err := s.ListRecords(ctx, pnl.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.True(t, got[0].Equal(second))
	assert.True(t, got[0].Get(pnl.FieldRevenueFood).IsZero())
	assert.True(t, second.SyncedAt.Equal(got[0].SyncedAt))
}

func TestStore_ListRecordsFilter(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, key := range []pnl.Key{
		mar24Actual,
		{Year: 2024, Month: 3, DataType: pnl.DataTypeBudget},
		{Year: 2023, Month: 12, DataType: pnl.DataTypeActual},
	} {
		rec := pnl.NewRecord(key)
		rec.Set(pnl.FieldGrossSales, decimal.NewFromInt(1))
		rec.SyncedAt = time.Now()
		require.NoError(t, s.UpsertRecord(ctx, rec))
	}

	all, err := s.ListRecords(ctx, pnl.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 2023, all[0].Year)

	actual := pnl.DataTypeActual

	got, err := s.ListRecords(ctx, pnl.ListFilter{Year: new(2024), DataType: &actual})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mar24Actual, got[0].Key)
}

func TestStore_Pins(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	locks, err := s.ListLocks(ctx)
	require.NoError(t, err)
	require.Len(t, locks, 1, "schema seeds the January 2025 budget lock")
	assert.Equal(t, pnl.Key{Year: 2025, Month: 1, DataType: pnl.DataTypeBudget}, locks[0].Key)

	lock := &pnl.Lock{ID: uuid.New(), Key: mar24Actual, Reason: "audited", CreatedAt: time.Now()}
	require.NoError(t, s.CreateLock(ctx, lock))

	again := &pnl.Lock{ID: uuid.New(), Key: mar24Actual, Reason: "audited twice", CreatedAt: time.Now()}
	require.NoError(t, s.CreateLock(ctx, again))
	assert.Equal(t, lock.ID, again.ID)

	locks, err = s.ListLocks(ctx)
	require.NoError(t, err)
	require.Len(t, locks, 2)

	require.NoError(t, s.DeleteLock(ctx, lock.ID))
	assert.ErrorIs(t, s.DeleteLock(ctx, lock.ID), pnl.ErrNotFound)

	o, err := pnl.NewOverride(2024, 3, "actual", "ebit", "-1.500.000")
	require.NoError(t, err)

	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	require.NoError(t, s.CreateOverride(ctx, &o))

	overrides, err := s.ListOverrides(ctx)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, pnl.FieldEBIT, overrides[0].Field)
	assert.Equal(t, "-1500000", overrides[0].Value.String())

	require.NoError(t, s.DeleteOverride(ctx, o.ID))
	assert.ErrorIs(t, s.DeleteOverride(ctx, o.ID), pnl.ErrNotFound)
}

func TestService_SyncIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := pnl.NewService(s)

	g := grid.Grid{
		{"", "", "", "", "", "Mar 24", "Mar-24 Actual", "Jan 25"},
		{"1", "", "Revenue"},
		{"1.1", "", "Food", "", "", "1.000.000", "980.000", "500"},
		{"1.2", "", "Wine", "", "", "250.000", "265.500", "0"},
		{"2", "", "COGS"},
		{"2.1", "", "Food", "", "", "300.000", "310.000", "0"},
		{"3", "", "Labor"},
		{"3.1", "", "13th Salary", "", "", "50.000", "50.000", "0"},
	}

	first, err := svc.Sync(ctx, g, pnl.SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, pnl.StatusSuccess, first.Status)
	assert.Equal(t, 2, first.RecordsProcessed)
	assert.Equal(t, []pnl.Key{{Year: 2025, Month: 1, DataType: pnl.DataTypeBudget}}, first.Locked)

	before, err := s.ListRecords(ctx, pnl.ListFilter{})
	require.NoError(t, err)

	_, err = svc.Sync(ctx, g, pnl.SyncOptions{})
	require.NoError(t, err)

	after, err := s.ListRecords(ctx, pnl.ListFilter{})
	require.NoError(t, err)

	require.Len(t, after, len(before))

	for i := range before {
		assert.True(t, before[i].Equal(after[i]), before[i].Key)
	}

	assert.Equal(t, "1250000", after[1].Get(pnl.FieldGrossSales).String())
	assert.Equal(t, "24", after[1].Get(pnl.FieldCOGSPct).String())
}
