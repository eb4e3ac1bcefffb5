package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk-backend/domain/model"
)

func fyDates(year int) (time.Time, time.Time) {
	start := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, -1)
}

func TestFinancialYearCreateActiveDeactivatesOthers(t *testing.T) {
	store := NewFinancialYearStore(newTestRepository(t))
	ctx := context.Background()

	start, end := fyDates(2025)
	first, err := store.Create(ctx, &model.FinancialYear{Year: 2025, StartDate: start, EndDate: end, IsActive: true})
	require.NoError(t, err)

	start, end = fyDates(2026)
	second, err := store.Create(ctx, &model.FinancialYear{Year: 2026, StartDate: start, EndDate: end, IsActive: true})
	require.NoError(t, err)

	active, err := store.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	got, err := store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestFinancialYearSetActiveIsExclusive(t *testing.T) {
	store := NewFinancialYearStore(newTestRepository(t))
	ctx := context.Background()

	start, end := fyDates(2025)
	first, err := store.Create(ctx, &model.FinancialYear{Year: 2025, StartDate: start, EndDate: end, IsActive: true})
	require.NoError(t, err)

	start, end = fyDates(2026)
	second, err := store.Create(ctx, &model.FinancialYear{Year: 2026, StartDate: start, EndDate: end})
	require.NoError(t, err)

	matched, err := store.SetActive(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, matched)

	years, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, years, 2)
	// List is newest year first.
	assert.Equal(t, 2026, years[0].Year)

	activeCount := 0
	for _, fy := range years {
		if fy.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)

	got, err := store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestFinancialYearSetActiveMissingYear(t *testing.T) {
	store := NewFinancialYearStore(newTestRepository(t))

	matched, err := store.SetActive(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestFinancialYearSetActiveMissingYearKeepsActive(t *testing.T) {
	store := NewFinancialYearStore(newTestRepository(t))
	ctx := context.Background()

	start, end := fyDates(2026)
	current, err := store.Create(ctx, &model.FinancialYear{Year: 2026, StartDate: start, EndDate: end, IsActive: true})
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
	store := NewFinancialYearStore(newTestRepository(t))
	ctx := context.Background()

	start, end := fyDates(2025)
	first, err := store.Create(ctx, &model.FinancialYear{Year: 2025, StartDate: start, EndDate: end, IsActive: true})
	require.NoError(t, err)

	start, end = fyDates(2026)
	second, err := store.Create(ctx, &model.FinancialYear{Year: 2026, StartDate: start, EndDate: end})
	require.NoError(t, err)

	matched, err := store.Update(ctx, second.ID, model.Fields{"is_active": true})
	require.NoError(t, err)
	assert.True(t, matched)

	got, err := store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active, err := store.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}
