package badger

import (
	"context"
	"testing"

	"github.com/notespace/metadoc/core"
	"github.com/notespace/metadoc/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJobRepository(t *testing.T) storage.JobRepository {
	t.Helper()

	backend, err := OpenBackend(t.TempDir(), false)
	require.NoError(t, err)

	repo, err := NewJobRepository(backend)
	require.NoError(t, err)

	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	return repo
}

func TestAcquireJobCreatesProcessingJob(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	job, created, err := repo.AcquireJob(ctx, 1, 0)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, job.Id)
	assert.Equal(t, core.ID(1), job.TopicId)
	assert.Equal(t, core.JobStatusProcessing, job.Status)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestAcquireJobReusesInFlightJob(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	first, created, err := repo.AcquireJob(ctx, 1, 0)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := repo.AcquireJob(ctx, 1, 0)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.Id, second.Id)
}

func TestAcquireJobSeparateTopics(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	a, _, err := repo.AcquireJob(ctx, 1, 0)
	require.NoError(t, err)

	b, created, err := repo.AcquireJob(ctx, 2, 0)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, a.Id, b.Id)
}

func TestAcquireJobAfterTerminalCreatesNewJob(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	first, _, err := repo.AcquireJob(ctx, 1, 0)
	require.NoError(t, err)

	first.Status = core.JobStatusCompleted
	first.SynthesizedContent = "doc"
	_, err = repo.UpdateJob(ctx, first)
	require.NoError(t, err)

	second, created, err := repo.AcquireJob(ctx, 1, 0)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.Id, second.Id)
}

func TestAcquireJobFailsAbandonedJob(t *testing.T) {
	backend, err := OpenBackend(t.TempDir(), false)
	require.NoError(t, err)

	// Cutoff zero: any held slot counts as abandoned on the next acquire.
	repo, err := NewJobRepository(backend, WithStaleJobCutoff(0))
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	ctx := context.Background()

	first, created, err := repo.AcquireJob(ctx, 1, 0)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := repo.AcquireJob(ctx, 1, 0)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.Id, second.Id)

	orphan, err := repo.GetJob(ctx, first.Id)
	require.NoError(t, err)
	assert.Equal(t, core.JobStatusFailed, orphan.Status)
	assert.Equal(t, "processing abandoned", orphan.ErrorMessage)

	active, err := repo.FindActiveJob(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second.Id, active.Id)
}

func TestUpdateJobReleasesActiveSlotOnTerminal(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	job, _, err := repo.AcquireJob(ctx, 1, 0)
	require.NoError(t, err)

	active, err := repo.FindActiveJob(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, job.Id, active.Id)

	job.Status = core.JobStatusFailed
	job.ErrorMessage = "boom"
	_, err = repo.UpdateJob(ctx, job)
	require.NoError(t, err)

	_, err = repo.FindActiveJob(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateJobEnforcesTransitions(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	job, _, err := repo.AcquireJob(ctx, 1, 0)
	require.NoError(t, err)

	job.Status = core.JobStatusCompleted
	job.SynthesizedContent = "doc"
	_, err = repo.UpdateJob(ctx, job)
	require.NoError(t, err)

	// Terminal jobs never move again
	job.Status = core.JobStatusProcessing
	job.SynthesizedContent = ""
	_, err = repo.UpdateJob(ctx, job)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestUpdateJobNotFound(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	_, err := repo.UpdateJob(ctx, &core.ProcessingJob{Id: 999, TopicId: 1, Status: core.JobStatusProcessing})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetJob(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	job, _, err := repo.AcquireJob(ctx, 1, 5)
	require.NoError(t, err)

	got, err := repo.GetJob(ctx, job.Id)
	require.NoError(t, err)
	assert.Equal(t, job.Id, got.Id)
	assert.Equal(t, core.ID(5), got.SourceId)

	_, err = repo.GetJob(ctx, 12345)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetJobsByTopicKeepsHistoryInOrder(t *testing.T) {
	repo := setupJobRepository(t)
	ctx := context.Background()

	var ids []core.ID
	for i := 0; i < 3; i++ {
		job, created, err := repo.AcquireJob(ctx, 1, 0)
		require.NoError(t, err)
		require.True(t, created)
		ids = append(ids, job.Id)

		job.Status = core.JobStatusFailed
		job.ErrorMessage = "boom"
		_, err = repo.UpdateJob(ctx, job)
		require.NoError(t, err)
	}

	jobs, err := repo.GetJobsByTopic(ctx, 1)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	for i, job := range jobs {
		assert.Equal(t, ids[i], job.Id)
	}

	other, err := repo.GetJobsByTopic(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other)
}
