package dynamo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk-backend/domain/errs"
	"hrdesk-backend/domain/model"
)

func newCompanyFixture(t *testing.T) (*CompanyStore, *fakeClient) {
	t.Helper()
	client := newFakeClient()
	client.addTable("companies", "id")
	client.addTable("counters", "table_name")
	return NewCompanyStore(client, "companies", NewCounter(client, "counters")), client
}

func TestCompanyCreateAssignsIDAndDefaults(t *testing.T) {
	store, _ := newCompanyFixture(t)
	ctx := context.Background()

	created, err := store.Create(ctx, &model.Company{Name: "Acme", SPOC: "Jane", EmailID: "jane@acme.example"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, model.StatusActive, created.Status)
	assert.False(t, created.CreatedDate.IsZero())

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "jane@acme.example", got.EmailID)
}

func TestCompanyCreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	store, _ := newCompanyFixture(t)
	ctx := context.Background()

	_, err := store.Create(ctx, &model.Company{Name: "Acme"})
	require.NoError(t, err)

	_, err = store.Create(ctx, &model.Company{Name: "ACME"})
	assert.ErrorIs(t, err, errs.ErrDuplicateName)
}

func TestCompanyGetByIDMissingIsNotAnError(t *testing.T) {
	store, _ := newCompanyFixture(t)

	got, err := store.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCompanyUpdate(t *testing.T) {
	store, _ := newCompanyFixture(t)
	ctx := context.Background()

	created, err := store.Create(ctx, &model.Company{Name: "Acme"})
	require.NoError(t, err)

	matched, err := store.Update(ctx, created.ID, model.Fields{"spoc": "John"})
	require.NoError(t, err)
	assert.True(t, matched)

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", got.SPOC)

	matched, err = store.Update(ctx, 999, model.Fields{"spoc": "John"})
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCompanyListActiveFiltersOutInactive(t *testing.T) {
	store, _ := newCompanyFixture(t)
	ctx := context.Background()

	_, err := store.Create(ctx, &model.Company{Name: "Acme"})
	require.NoError(t, err)
	second, err := store.Create(ctx, &model.Company{Name: "Globex"})
	require.NoError(t, err)

	// Deactivation goes through the reserved-word alias for status.
	matched, err := store.Update(ctx, second.ID, model.Fields{"status": model.StatusInactive})
	require.NoError(t, err)
	require.True(t, matched)

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Acme", active[0].Name)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
