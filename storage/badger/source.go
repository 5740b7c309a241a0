package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/notespace/metadoc/core"
	"github.com/notespace/metadoc/storage"
)

// SourceRepository implements storage.SourceRepository for BadgerDB.
type SourceRepository struct {
	backend *Backend
}

var _ storage.SourceRepository = (*SourceRepository)(nil)

// NewSourceRepository creates a new SourceRepository.
func NewSourceRepository(backend *Backend) (*SourceRepository, error) {
	return &SourceRepository{
		backend: backend,
	}, nil
}

// Close releases resources. SourceRepository has no resources to release.
func (r *SourceRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SourceRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddSources registers one or more source documents.
func (r *SourceRepository) AddSources(ctx context.Context, docs ...*core.SourceDocument) ([]*core.SourceDocument, error) {
	for _, doc := range docs {
		if err := core.ValidateSourceDocument(doc); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			// Use content-based ID if not set
			if doc.Id == 0 {
				doc.Id = core.IDFromContent(doc.Tuple())
			}

			if doc.UploadedAt.IsZero() {
				doc.UploadedAt = time.Now().UTC()
			}

			// Re-registering the same locator keeps the original upload time
			// so the topic's source order stays stable
			old, err := readSource(tx, makeSourceKey(doc.Id))
			if err != nil {
				return err
			}
			if old != nil {
				doc.UploadedAt = old.UploadedAt
			}

			// Store primary record
			key := makeSourceKey(doc.Id)
			if err := tx.Set(key, storage.MarshalSourceDocument(doc)); err != nil {
				return err
			}

			// Store topic index
			topicKey := makeSourceTopicKey(doc.TopicId, doc.UploadedAt, doc.Id)
			if err := tx.Set(topicKey, storage.MarshalID(doc.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// GetSource retrieves a source document by ID.
func (r *SourceRepository) GetSource(ctx context.Context, id core.ID) (*core.SourceDocument, error) {
	var result *core.SourceDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readSource(tx, makeSourceKey(id))
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

// GetSourcesByTopic retrieves all source documents for a topic in upload order.
func (r *SourceRepository) GetSourcesByTopic(ctx context.Context, topicID core.ID) ([]*core.SourceDocument, error) {
	var results []*core.SourceDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialSourceTopicKey(topicID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			// Read the ID from the index
			var sourceID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				sourceID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			doc, err := readSource(tx, makeSourceKey(sourceID))
			if err != nil {
				return err
			}
			if doc != nil {
				results = append(results, doc)
			}
		}
		return nil
	}, false)

	return results, err
}

// readSource reads a source document from the transaction by key.
// Returns nil (no error) when the key does not exist.
func readSource(tx *badger.Txn, key []byte) (*core.SourceDocument, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc *core.SourceDocument
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalSourceDocument(val)
		return err
	})
	return doc, err
}
