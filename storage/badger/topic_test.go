package badger

import (
	"context"
	"testing"

	"github.com/notespace/metadoc/core"
	"github.com/notespace/metadoc/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTopicRepository(t *testing.T) storage.TopicRepository {
	t.Helper()

	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	repo, err := NewTopicRepository(backend)
	require.NoError(t, err)

	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	return repo
}

func TestAddAndGetTopic(t *testing.T) {
	repo := setupTopicRepository(t)
	ctx := context.Background()

	topic, err := repo.AddTopic(ctx, &core.Topic{Name: "Algorithms"})
	require.NoError(t, err)
	assert.NotZero(t, topic.Id)
	assert.False(t, topic.CreatedAt.IsZero())

	got, err := repo.GetTopic(ctx, topic.Id)
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", got.Name)
}

func TestAddTopicRejectsEmptyName(t *testing.T) {
	repo := setupTopicRepository(t)
	ctx := context.Background()

	_, err := repo.AddTopic(ctx, &core.Topic{})
	assert.ErrorIs(t, err, core.ErrInvalidTopic)
}

func TestGetTopicNotFound(t *testing.T) {
	repo := setupTopicRepository(t)
	ctx := context.Background()

	_, err := repo.GetTopic(ctx, 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListTopicsOrderedByID(t *testing.T) {
	repo := setupTopicRepository(t)
	ctx := context.Background()

	names := []string{"Algorithms", "Operating Systems", "Databases"}
	for _, name := range names {
		_, err := repo.AddTopic(ctx, &core.Topic{Name: name})
		require.NoError(t, err)
	}

	topics, err := repo.ListTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 3)
	for i, topic := range topics {
		assert.Equal(t, names[i], topic.Name)
		if i > 0 {
			assert.Greater(t, topic.Id, topics[i-1].Id)
		}
	}
}
