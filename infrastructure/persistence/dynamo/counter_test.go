package dynamo

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterNextIDIsMonotonic(t *testing.T) {
	client := newFakeClient()
	client.addTable("counters", "table_name")
	counter := NewCounter(client, "counters")

	for want := 1; want <= 3; want++ {
		id, err := counter.NextID(context.Background(), "companies")
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestCounterSequencesAreIndependent(t *testing.T) {
	client := newFakeClient()
	client.addTable("counters", "table_name")
	counter := NewCounter(client, "counters")
	ctx := context.Background()

	id, err := counter.NextID(ctx, "companies")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	id, err = counter.NextID(ctx, "profiles")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	id, err = counter.NextID(ctx, "companies")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestCounterConcurrentCallersGetUniqueIDs(t *testing.T) {
	client := newFakeClient()
	client.addTable("counters", "table_name")
	counter := NewCounter(client, "counters")

	const workers = 8
	const perWorker = 25
	ids := make(chan int, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := counter.NextID(context.Background(), "companies")
				assert.NoError(t, err)
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, workers*perWorker)
	for id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	require.Len(t, seen, workers*perWorker)
	for id := 1; id <= workers*perWorker; id++ {
		assert.True(t, seen[id], "id %d never issued", id)
	}
}

func TestCounterSeedsMissingSequence(t *testing.T) {
	client := newFakeClient()
	client.addTable("counters", "table_name")
	client.notFoundUpdates = 1
	counter := NewCounter(client, "counters")

	id, err := counter.NextID(context.Background(), "companies")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	// The seeded row is in place, so the next call increments normally.
	id, err = counter.NextID(context.Background(), "companies")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestCounterRetriesThrottling(t *testing.T) {
	client := newFakeClient()
	client.addTable("counters", "table_name")
	client.throttleUpdates = 1
	counter := NewCounter(client, "counters")

	id, err := counter.NextID(context.Background(), "companies")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, 2, client.updateCalls)
}

func TestCounterGivesUpAfterRetries(t *testing.T) {
	client := newFakeClient()
	client.addTable("counters", "table_name")
	client.throttleUpdates = 10
	counter := NewCounter(client, "counters")

	_, err := counter.NextID(context.Background(), "companies")
	require.Error(t, err)
	assert.Equal(t, 3, client.updateCalls)
}
