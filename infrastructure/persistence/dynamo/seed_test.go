package dynamo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk-backend/domain/model"
)

func TestSeedStatusTables(t *testing.T) {
	client := newFakeClient()
	client.addTable("requirement_statuses", "id")
	client.addTable("profile_statuses", "id")
	ctx := context.Background()

	require.NoError(t, SeedStatusTables(ctx, client, "requirement_statuses", "profile_statuses"))

	raw, err := scanAll(ctx, client, "requirement_statuses", nil)
	require.NoError(t, err)
	assert.Len(t, raw, len(model.DefaultRequirementStatuses))

	raw, err = scanAll(ctx, client, "profile_statuses", nil)
	require.NoError(t, err)
	assert.Len(t, raw, len(model.DefaultProfileStatuses))

	// Re-seeding an already populated table leaves it untouched.
	require.NoError(t, SeedStatusTables(ctx, client, "requirement_statuses", "profile_statuses"))
	raw, err = scanAll(ctx, client, "requirement_statuses", nil)
	require.NoError(t, err)
	assert.Len(t, raw, len(model.DefaultRequirementStatuses))
}
