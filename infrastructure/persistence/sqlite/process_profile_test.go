package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk-backend/domain/model"
)

func TestProcessProfileCreateIsIdempotentPerRecruiter(t *testing.T) {
	repo := newTestRepository(t)
	store := NewProcessProfileStore(repo)
	ctx := context.Background()

	first, err := store.Create(ctx, &model.ProcessProfile{RequirementID: 7, RecruiterName: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "No", first.ActivelyWorking)

	again, err := store.Create(ctx, &model.ProcessProfile{
		RequirementID:   7,
		RecruiterName:   "alice",
		ActivelyWorking: "Yes",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Yes", again.ActivelyWorking)
}

func TestProcessProfileUpsertMergesOnRequirementAndProfile(t *testing.T) {
	repo := newTestRepository(t)
	store := NewProcessProfileStore(repo)
	ctx := context.Background()

	first, err := store.Upsert(ctx, &model.ProcessProfile{
		RequirementID: 7,
		ProfileID:     3,
		RecruiterName: "alice",
		Status:        1,
		Remarks:       "initial screen",
	})
	require.NoError(t, err)

	merged, err := store.Upsert(ctx, &model.ProcessProfile{
		RequirementID: 7,
		ProfileID:     3,
		RecruiterName: "bob",
		Status:        3,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, "bob", merged.RecruiterName)
	assert.Equal(t, 3, merged.Status)
	assert.Equal(t, "initial screen", merged.Remarks)
}

func TestProcessProfileUpdateRecruiter(t *testing.T) {
	repo := newTestRepository(t)
	store := NewProcessProfileStore(repo)
	ctx := context.Background()

	_, err := store.Create(ctx, &model.ProcessProfile{RequirementID: 7, RecruiterName: "alice"})
	require.NoError(t, err)

	matched, err := store.UpdateRecruiter(ctx, 7, "carol")
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = store.UpdateRecruiter(ctx, 99, "carol")
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestProfilesByRequirementAttachesProfileAndStage(t *testing.T) {
	repo := newTestRepository(t)
	store := NewProcessProfileStore(repo)
	profiles := NewProfileStore(repo)
	ctx := context.Background()

	screened, err := profiles.Create(ctx, &model.Profile{Name: "Ada", Status: 2})
	require.NoError(t, err)
	unknown, err := profiles.Create(ctx, &model.Profile{Name: "Grace"})
	require.NoError(t, err)

	// Recruiter-only sentinel, two real rows, and one pointing at a profile
	// that does not exist.
	_, err = store.Create(ctx, &model.ProcessProfile{RequirementID: 7, RecruiterName: "alice"})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, &model.ProcessProfile{RequirementID: 7, ProfileID: screened.ID, RecruiterName: "alice", Status: 2})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, &model.ProcessProfile{RequirementID: 7, ProfileID: unknown.ID, RecruiterName: "alice"})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, &model.ProcessProfile{RequirementID: 7, ProfileID: 999, RecruiterName: "alice"})
	require.NoError(t, err)

	got, err := store.ProfilesByRequirement(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Ada", got[0].Profile.Name)
	assert.Equal(t, model.DefaultProfileStatuses[1].Status, got[0].Stage)
	assert.Equal(t, "Grace", got[1].Profile.Name)
	assert.Equal(t, model.StageUnknown, got[1].Stage)
}

func TestProfilesByRequirementAndRecruiterFilters(t *testing.T) {
	repo := newTestRepository(t)
	store := NewProcessProfileStore(repo)
	profiles := NewProfileStore(repo)
	ctx := context.Background()

	ada, err := profiles.Create(ctx, &model.Profile{Name: "Ada", Status: 1})
	require.NoError(t, err)
	grace, err := profiles.Create(ctx, &model.Profile{Name: "Grace", Status: 1})
	require.NoError(t, err)

	_, err = store.Upsert(ctx, &model.ProcessProfile{RequirementID: 7, ProfileID: ada.ID, RecruiterName: "alice"})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, &model.ProcessProfile{RequirementID: 7, ProfileID: grace.ID, RecruiterName: "bob"})
	require.NoError(t, err)

	got, err := store.ProfilesByRequirementAndRecruiter(ctx, 7, "bob")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Grace", got[0].Profile.Name)
}
