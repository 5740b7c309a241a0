package storage

import (
	"context"

	"github.com/notespace/metadoc/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// TopicRepository provides operations for managing topics.
type TopicRepository interface {
	Repository

	// AddTopic adds a topic to storage. For topics with ID=0, generates a new
	// ID from sequence. Sets CreatedAt if not already set.
	// Returns the topic with ID and timestamps populated.
	AddTopic(ctx context.Context, topic *core.Topic) (*core.Topic, error)

	// GetTopic retrieves a topic by ID.
	// Returns ErrNotFound if the topic doesn't exist.
	GetTopic(ctx context.Context, id core.ID) (*core.Topic, error)

	// ListTopics retrieves all topics ordered by ID.
	ListTopics(ctx context.Context) ([]*core.Topic, error)
}

// SourceRepository provides operations for managing uploaded source documents.
type SourceRepository interface {
	Repository

	// AddSources registers one or more source documents.
	// Uses content-based IDs (IDFromContent of the document tuple), so
	// registering the same locator for the same topic is idempotent.
	// Sets UploadedAt if not already set.
	AddSources(ctx context.Context, docs ...*core.SourceDocument) ([]*core.SourceDocument, error)

	// GetSource retrieves a source document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetSource(ctx context.Context, id core.ID) (*core.SourceDocument, error)

	// GetSourcesByTopic retrieves all source documents for a topic in upload
	// order. Returns an empty slice when the topic has no documents.
	GetSourcesByTopic(ctx context.Context, topicID core.ID) ([]*core.SourceDocument, error)
}

// JobRepository provides operations for managing processing jobs.
type JobRepository interface {
	Repository

	// AcquireJob returns the topic's current non-terminal job, or atomically
	// creates a new one with status processing when none exists. The check
	// and the insert happen in one transaction, so two concurrent calls for
	// the same topic cannot both create a job. The boolean reports whether a
	// new job was created. sourceID may be 0 for whole-topic runs.
	AcquireJob(ctx context.Context, topicID, sourceID core.ID) (*core.ProcessingJob, bool, error)

	// UpdateJob persists a job mutation. It refreshes UpdatedAt, enforces
	// the status state machine against the stored record, and releases the
	// topic's active-job slot when the job reaches a terminal status.
	// Returns ErrNotFound if the job doesn't exist.
	UpdateJob(ctx context.Context, job *core.ProcessingJob) (*core.ProcessingJob, error)

	// GetJob retrieves a job by ID.
	// Returns ErrNotFound if the job doesn't exist.
	GetJob(ctx context.Context, id core.ID) (*core.ProcessingJob, error)

	// GetJobsByTopic retrieves all jobs for a topic ordered by creation.
	// Jobs are retained as an append-only history; this returns all of it.
	GetJobsByTopic(ctx context.Context, topicID core.ID) ([]*core.ProcessingJob, error)

	// FindActiveJob returns the topic's job currently in the processing
	// state, or ErrNotFound when the topic has no job in flight.
	FindActiveJob(ctx context.Context, topicID core.ID) (*core.ProcessingJob, error)
}
