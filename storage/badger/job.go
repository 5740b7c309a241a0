package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/notespace/metadoc/core"
	"github.com/notespace/metadoc/storage"
)

// DefaultStaleJobCutoff bounds how long an in-flight job may hold its
// topic's slot without an update. A slot older than this belongs to a run
// that died before reaching a terminal state; AcquireJob fails the orphan
// and starts over instead of reporting it as in progress forever.
const DefaultStaleJobCutoff = 30 * time.Minute

// JobRepository implements storage.JobRepository for BadgerDB.
type JobRepository struct {
	backend     *Backend
	idSeq       *badger.Sequence
	staleCutoff time.Duration
}

var _ storage.JobRepository = (*JobRepository)(nil)

// JobRepositoryOption configures a JobRepository.
type JobRepositoryOption func(*JobRepository)

// WithStaleJobCutoff overrides DefaultStaleJobCutoff.
func WithStaleJobCutoff(d time.Duration) JobRepositoryOption {
	return func(r *JobRepository) {
		r.staleCutoff = d
	}
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(backend *Backend, opts ...JobRepositoryOption) (*JobRepository, error) {
	idSeq, err := backend.GetSequence(jobIDSeq)
	if err != nil {
		return nil, err
	}

	r := &JobRepository{
		backend:     backend,
		idSeq:       idSeq,
		staleCutoff: DefaultStaleJobCutoff,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Close releases the ID sequence.
func (r *JobRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *JobRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AcquireJob returns the topic's current non-terminal job, or atomically
// creates a new one with status processing. The active-job slot key acts as
// the uniqueness constraint: it is written in the same transaction that
// creates the job and removed in the transaction that finishes it, so two
// concurrent invocations for one topic cannot both create a job.
func (r *JobRepository) AcquireJob(ctx context.Context, topicID, sourceID core.ID) (*core.ProcessingJob, bool, error) {
	var (
		job     *core.ProcessingJob
		created bool
	)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		activeKey := makeJobActiveKey(topicID)

		// Reuse the in-flight job when the slot is held
		activeID, err := readActiveJobID(tx, activeKey)
		if err != nil {
			return err
		}
		if activeID != 0 {
			active, err := readJob(tx, makeJobKey(activeID))
			if err != nil {
				return err
			}
			switch {
			case active == nil:
				// Slot points at a missing record; fall through and recreate
			case time.Since(active.UpdatedAt) <= r.staleCutoff:
				job = active
				created = false
				return nil
			default:
				// The holder died without finishing. Fail the orphan in the
				// same transaction that hands the slot to the new job.
				active.Status = core.JobStatusFailed
				active.ErrorMessage = "processing abandoned"
				active.SynthesizedContent = ""
				active.TokenCount = 0
				active.UpdatedAt = time.Now().UTC()
				if err := tx.Set(makeJobKey(active.Id), storage.MarshalProcessingJob(active)); err != nil {
					return err
				}
			}
		}

		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		job = &core.ProcessingJob{
			Id:        core.ID(nextID),
			TopicId:   topicID,
			SourceId:  sourceID,
			Status:    core.JobStatusProcessing,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := tx.Set(makeJobKey(job.Id), storage.MarshalProcessingJob(job)); err != nil {
			return err
		}
		if err := tx.Set(makeJobTopicKey(topicID, job.Id), storage.MarshalID(job.Id)); err != nil {
			return err
		}
		if err := tx.Set(activeKey, storage.MarshalID(job.Id)); err != nil {
			return err
		}

		created = true
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, false, err
	}
	return job, created, nil
}

// UpdateJob persists a job mutation, enforcing the status state machine.
func (r *JobRepository) UpdateJob(ctx context.Context, job *core.ProcessingJob) (*core.ProcessingJob, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeJobKey(job.Id)

		old, err := readJob(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		if err := core.ValidateTransition(old.Status, job.Status); err != nil {
			return err
		}
		if err := core.ValidateJob(job); err != nil {
			return err
		}

		job.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalProcessingJob(job)); err != nil {
			return err
		}

		// Terminal transition releases the topic's active-job slot
		if job.Status.Terminal() {
			activeKey := makeJobActiveKey(job.TopicId)
			activeID, err := readActiveJobID(tx, activeKey)
			if err != nil {
				return err
			}
			if activeID == job.Id {
				if err := tx.Delete(activeKey); err != nil {
					return err
				}
			}
		}

		return tx.Commit()
	}, true)

	return job, err
}

// GetJob retrieves a job by ID.
func (r *JobRepository) GetJob(ctx context.Context, id core.ID) (*core.ProcessingJob, error) {
	var result *core.ProcessingJob
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readJob(tx, makeJobKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetJobsByTopic retrieves all jobs for a topic in creation order.
func (r *JobRepository) GetJobsByTopic(ctx context.Context, topicID core.ID) ([]*core.ProcessingJob, error) {
	var results []*core.ProcessingJob
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialJobTopicKey(topicID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var jobID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				jobID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			job, err := readJob(tx, makeJobKey(jobID))
			if err != nil {
				return err
			}
			if job != nil {
				results = append(results, job)
			}
		}
		return nil
	}, false)

	return results, err
}

// FindActiveJob returns the topic's job currently in flight.
func (r *JobRepository) FindActiveJob(ctx context.Context, topicID core.ID) (*core.ProcessingJob, error) {
	var result *core.ProcessingJob
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		activeID, err := readActiveJobID(tx, makeJobActiveKey(topicID))
		if err != nil {
			return err
		}
		if activeID == 0 {
			return storage.ErrNotFound
		}
		result, err = readJob(tx, makeJobKey(activeID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// readJob reads a processing job from the transaction by key.
// Returns nil (no error) when the key does not exist.
func readJob(tx *badger.Txn, key []byte) (*core.ProcessingJob, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var job *core.ProcessingJob
	err = item.Value(func(val []byte) error {
		var err error
		job, err = storage.UnmarshalProcessingJob(val)
		return err
	})
	return job, err
}

// readActiveJobID reads the active-job slot for a topic.
// Returns 0 (no error) when no slot is held.
func readActiveJobID(tx *badger.Txn, key []byte) (core.ID, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var id core.ID
	err = item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	})
	return id, err
}
