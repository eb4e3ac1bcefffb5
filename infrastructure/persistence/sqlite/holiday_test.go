package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk-backend/domain/model"
)

func seedHolidays(t *testing.T, store *HolidayStore, yearID int) (mandatory, optionalA, optionalB *model.Holiday) {
	t.Helper()
	ctx := context.Background()

	var err error
	mandatory, err = store.Create(ctx, &model.Holiday{
		FinancialYearID: yearID,
		Name:            "Republic Day",
		Date:            time.Date(2026, time.January, 26, 0, 0, 0, 0, time.UTC),
		IsMandatory:     true,
	})
	require.NoError(t, err)
	optionalA, err = store.Create(ctx, &model.Holiday{
		FinancialYearID: yearID,
		Name:            "Diwali Eve",
		Date:            time.Date(2026, time.November, 7, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	optionalB, err = store.Create(ctx, &model.Holiday{
		FinancialYearID: yearID,
		Name:            "Christmas Eve",
		Date:            time.Date(2026, time.December, 24, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return mandatory, optionalA, optionalB
}

func TestHolidayListsSplitByMandatory(t *testing.T) {
	store := NewHolidayStore(newTestRepository(t))
	seedHolidays(t, store, 1)
	ctx := context.Background()

	all, err := store.ListByYear(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// Ordered by date.
	assert.Equal(t, "Republic Day", all[0].Name)

	mandatory, err := store.ListMandatory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mandatory, 1)
	assert.Equal(t, "Republic Day", mandatory[0].Name)

	optional, err := store.ListOptional(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, optional, 2)

	other, err := store.ListByYear(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestHolidayDelete(t *testing.T) {
	store := NewHolidayStore(newTestRepository(t))
	mandatory, _, _ := seedHolidays(t, store, 1)
	ctx := context.Background()

	matched, err := store.Delete(ctx, mandatory.ID)
	require.NoError(t, err)
	assert.True(t, matched)

	got, err := store.GetByID(ctx, mandatory.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	matched, err = store.Delete(ctx, mandatory.ID)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestHolidaySelectOptionalReplacesPicks(t *testing.T) {
	store := NewHolidayStore(newTestRepository(t))
	_, optionalA, optionalB := seedHolidays(t, store, 1)
	ctx := context.Background()

	require.NoError(t, store.SelectOptional(ctx, "alice", []int{optionalA.ID}, 1))

	picks, err := store.UserSelections(ctx, "alice", 1)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, "Diwali Eve", picks[0].Name)

	// Re-selecting replaces the previous picks rather than accumulating.
	require.NoError(t, store.SelectOptional(ctx, "alice", []int{optionalB.ID}, 1))

	picks, err = store.UserSelections(ctx, "alice", 1)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, "Christmas Eve", picks[0].Name)

	// Another user's picks are untouched.
	require.NoError(t, store.SelectOptional(ctx, "bob", []int{optionalA.ID, optionalB.ID}, 1))
	picks, err = store.UserSelections(ctx, "bob", 1)
	require.NoError(t, err)
	assert.Len(t, picks, 2)
}
