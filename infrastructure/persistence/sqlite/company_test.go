package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk-backend/domain/errs"
	"hrdesk-backend/domain/model"
)

func TestCompanyCreateAndGet(t *testing.T) {
	store := NewCompanyStore(newTestRepository(t))
	ctx := context.Background()

	created, err := store.Create(ctx, &model.Company{Name: "Acme", SPOC: "Jane", EmailID: "jane@acme.example"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.StatusActive, created.Status)

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got.Name)

	missing, err := store.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCompanyCreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	store := NewCompanyStore(newTestRepository(t))
	ctx := context.Background()

	_, err := store.Create(ctx, &model.Company{Name: "Acme"})
	require.NoError(t, err)

	_, err = store.Create(ctx, &model.Company{Name: "ACME"})
	assert.ErrorIs(t, err, errs.ErrDuplicateName)
}

func TestCompanyUpdateStampsUpdatedDate(t *testing.T) {
	store := NewCompanyStore(newTestRepository(t))
	ctx := context.Background()

	created, err := store.Create(ctx, &model.Company{Name: "Acme"})
	require.NoError(t, err)
	before := created.UpdatedDate

	time.Sleep(10 * time.Millisecond)
	matched, err := store.Update(ctx, created.ID, model.Fields{"spoc": "John"})
	require.NoError(t, err)
	assert.True(t, matched)

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", got.SPOC)
	assert.Equal(t, "Acme", got.Name)
	assert.True(t, got.UpdatedDate.After(before))

	matched, err = store.Update(ctx, 999, model.Fields{"spoc": "John"})
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCompanyListActive(t *testing.T) {
	store := NewCompanyStore(newTestRepository(t))
	ctx := context.Background()

	_, err := store.Create(ctx, &model.Company{Name: "Acme"})
	require.NoError(t, err)
	inactive, err := store.Create(ctx, &model.Company{Name: "Globex"})
	require.NoError(t, err)

	_, err = store.Update(ctx, inactive.ID, model.Fields{"status": model.StatusInactive})
	require.NoError(t, err)

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Acme", active[0].Name)
}
