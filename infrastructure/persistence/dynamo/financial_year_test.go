package dynamo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk-backend/domain/model"
)

func newFinancialYearFixture(t *testing.T) *FinancialYearStore {
	t.Helper()
	client := newFakeClient()
	client.addTable("financial_years", "id")
	client.addTable("counters", "table_name")
	return NewFinancialYearStore(client, "financial_years", NewCounter(client, "counters"))
}

func newYear(year int, active bool) *model.FinancialYear {
	start := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	return &model.FinancialYear{
		Year:      year,
		StartDate: start,
		EndDate:   start.AddDate(1, 0, -1),
		IsActive:  active,
	}
}

func TestFinancialYearActivationIsExclusive(t *testing.T) {
	store := newFinancialYearFixture(t)
	ctx := context.Background()

	first, err := store.Create(ctx, newYear(2025, true))
	require.NoError(t, err)
	second, err := store.Create(ctx, newYear(2026, false))
	require.NoError(t, err)

	matched, err := store.SetActive(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, matched)

	active, err := store.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	got, err := store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestFinancialYearCreateActiveDeactivatesOthers(t *testing.T) {
	store := newFinancialYearFixture(t)
	ctx := context.Background()

	first, err := store.Create(ctx, newYear(2025, true))
	require.NoError(t, err)
	second, err := store.Create(ctx, newYear(2026, true))
	require.NoError(t, err)

	active, err := store.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	got, err := store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestFinancialYearListNewestFirst(t *testing.T) {
	store := newFinancialYearFixture(t)
	ctx := context.Background()

	_, err := store.Create(ctx, newYear(2024, false))
	require.NoError(t, err)
	_, err = store.Create(ctx, newYear(2026, false))
	require.NoError(t, err)
	_, err = store.Create(ctx, newYear(2025, false))
	require.NoError(t, err)

	years, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, years, 3)
	assert.Equal(t, 2026, years[0].Year)
	assert.Equal(t, 2024, years[2].Year)
}

func TestFinancialYearSetActiveMissingYearKeepsActive(t *testing.T) {
	store := newFinancialYearFixture(t)
	ctx := context.Background()

	current, err := store.Create(ctx, newYear(2026, true))
	require.NoError(t, err)

	matched, err := store.SetActive(ctx, 999)
	require.NoError(t, err)
	assert.False(t, matched)

	active, err := store.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, current.ID, active.ID)
}

func TestFinancialYearUpdateRoutesActivationThroughSetActive(t *testing.T) {
	store := newFinancialYearFixture(t)
	ctx := context.Background()

	first, err := store.Create(ctx, newYear(2025, true))
	require.NoError(t, err)
	second, err := store.Create(ctx, newYear(2026, false))
	require.NoError(t, err)

	matched, err := store.Update(ctx, second.ID, model.Fields{"is_active": true})
	require.NoError(t, err)
	assert.True(t, matched)

	got, err := store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
