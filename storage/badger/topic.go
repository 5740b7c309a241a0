package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/notespace/metadoc/core"
	"github.com/notespace/metadoc/storage"
)

// TopicRepository implements storage.TopicRepository for BadgerDB.
type TopicRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.TopicRepository = (*TopicRepository)(nil)

// NewTopicRepository creates a new TopicRepository.
func NewTopicRepository(backend *Backend) (*TopicRepository, error) {
	idSeq, err := backend.GetSequence(topicIDSeq)
	if err != nil {
		return nil, err
	}

	return &TopicRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *TopicRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *TopicRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTopic adds a topic to storage.
func (r *TopicRepository) AddTopic(ctx context.Context, topic *core.Topic) (*core.Topic, error) {
	if err := core.ValidateTopic(topic); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if topic.Id == 0 {
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
			topic.Id = core.ID(nextID)
		}

		topic.CreatedAt = time.Now().UTC()
		topic.UpdatedAt = topic.CreatedAt

		key := makeTopicKey(topic.Id)
		if err := tx.Set(key, storage.MarshalTopic(topic)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return topic, err
}

// GetTopic retrieves a topic by ID.
func (r *TopicRepository) GetTopic(ctx context.Context, id core.ID) (*core.Topic, error) {
	var result *core.Topic
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readTopic(tx, makeTopicKey(id))
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

// ListTopics retrieves all topics ordered by ID.
func (r *TopicRepository) ListTopics(ctx context.Context) ([]*core.Topic, error) {
	var results []*core.Topic
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(topicRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			var topic *core.Topic
			err := item.Value(func(val []byte) error {
				var err error
				topic, err = storage.UnmarshalTopic(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, topic)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Primary keys are decimal strings, so key order is not numeric order
	slices.SortFunc(results, func(a, b *core.Topic) int {
		if a.Id == b.Id {
			return 0
		}
		if a.Id < b.Id {
			return -1
		}
		return 1
	})

	return results, nil
}

// readTopic reads a topic from the transaction by key.
// Returns nil (no error) when the key does not exist.
func readTopic(tx *badger.Txn, key []byte) (*core.Topic, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var topic *core.Topic
	err = item.Value(func(val []byte) error {
		var err error
		topic, err = storage.UnmarshalTopic(val)
		return err
	})
	return topic, err
}
