package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portrepos "github.com/takutakahashi/demoenv-bot/internal/usecases/ports/repositories"
)

func TestMemoryRepositoryPutGetScan(t *testing.T) {
	repo := NewMemoryLeaseRepository()

	got, err := repo.Get(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Nil(t, got)

	record := &portrepos.LeaseRecord{Environment: "alpha", Username: "bob", ClaimedAt: "2024-03-01T09:00:00Z", DurationHours: 8}
	require.NoError(t, repo.Put(context.Background(), record))

	got, err = repo.Get(context.Background(), "alpha")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *record, *got)

	all, err := repo.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryRepositoryImplementsConditionalPut(t *testing.T) {
	repo := NewMemoryLeaseRepository()

	// The port's optional extension is satisfied.
	var _ portrepos.ConditionalLeaseRepository = repo

	record := &portrepos.LeaseRecord{Environment: "alpha", Username: "bob", ClaimedAt: "2024-03-01T09:00:00Z", DurationHours: 8}

	// Empty expectation matches a missing record.
	require.NoError(t, repo.PutIfUsername(context.Background(), record, ""))

	update := &portrepos.LeaseRecord{Environment: "alpha", Username: "carol", ClaimedAt: "2024-03-01T10:00:00Z", DurationHours: 8}
	assert.Error(t, repo.PutIfUsername(context.Background(), update, "someone-else"))
	require.NoError(t, repo.PutIfUsername(context.Background(), update, "bob"))

	got, err := repo.Get(context.Background(), "alpha")
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Username)
}
