package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/notespace/metadoc/core"
	"github.com/panjf2000/ants/v2"
)

// DefaultBatchWorkers is the default concurrency for batch processing.
const DefaultBatchWorkers = 4

// TopicOutcome pairs a topic with the result of its processing run.
type TopicOutcome struct {
	TopicId   core.ID
	TopicName string
	Result    *core.JobResult
}

// BatchProcessor runs the pipeline over many topics on a bounded worker
// pool. Per-topic job slots already keep concurrent runs of the same topic
// from colliding, so workers only need bounding, not coordination.
type BatchProcessor struct {
	pipeline *Pipeline
	workers  int
	logger   *slog.Logger
}

// NewBatchProcessor creates a batch processor over the given pipeline.
// A non-positive worker count falls back to DefaultBatchWorkers.
func NewBatchProcessor(p *Pipeline, workers int) *BatchProcessor {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	return &BatchProcessor{
		pipeline: p,
		workers:  workers,
		logger:   slog.Default().With("component", "batch"),
	}
}

// ProcessAll runs every known topic through the pipeline and returns one
// outcome per topic, ordered by topic id.
func (b *BatchProcessor) ProcessAll(ctx context.Context) ([]TopicOutcome, error) {
	topics, err := b.pipeline.topics.ListTopics(ctx)
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(b.workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	b.logger.Info("batch processing started", "topics", len(topics), "workers", b.workers)

	outcomes := make([]TopicOutcome, len(topics))
	var wg sync.WaitGroup
	for i, topic := range topics {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = TopicOutcome{
				TopicId:   topic.Id,
				TopicName: topic.Name,
				Result:    b.pipeline.ProcessTopic(ctx, topic.Id),
			}
		}); err != nil {
			wg.Done()
			outcomes[i] = TopicOutcome{
				TopicId:   topic.Id,
				TopicName: topic.Name,
				Result:    errorResult(err.Error()),
			}
		}
	}
	wg.Wait()

	return outcomes, nil
}
