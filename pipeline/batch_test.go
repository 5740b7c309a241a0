package pipeline

import (
	"context"
	"testing"

	"github.com/notespace/metadoc/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAllNoTopics(t *testing.T) {
	env := setupPipeline(t)
	batch := NewBatchProcessor(env.pipeline, 2)

	outcomes, err := batch.ProcessAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestProcessAllCoversEveryTopic(t *testing.T) {
	env := setupPipeline(t)
	ctx := context.Background()

	ready := env.addTopic(t, "Ready")
	env.addTextFile(t, ready.Id, "ready.txt", "Ready content.")
	env.addTopic(t, "Empty")

	batch := NewBatchProcessor(env.pipeline, 2)
	outcomes, err := batch.ProcessAll(ctx)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	byName := map[string]TopicOutcome{}
	for _, o := range outcomes {
		byName[o.TopicName] = o
	}

	assert.Equal(t, core.ResultSuccess, byName["Ready"].Result.Status)
	assert.NotZero(t, byName["Ready"].Result.JobId)

	assert.Equal(t, core.ResultError, byName["Empty"].Result.Status)
	assert.Equal(t, "no files found for this topic", byName["Empty"].Result.Message)
}

func TestNewBatchProcessorDefaultsWorkers(t *testing.T) {
	env := setupPipeline(t)

	batch := NewBatchProcessor(env.pipeline, 0)
	assert.Equal(t, DefaultBatchWorkers, batch.workers)
}
