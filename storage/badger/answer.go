package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/storage"
)

// AnswerCache implements storage.AnswerCache for BadgerDB.
type AnswerCache struct {
	backend *Backend
}

var _ storage.AnswerCache = (*AnswerCache)(nil)

// NewAnswerCache creates an enrichment-answer cache over the backend.
//
// Returns storage.AnswerCache interface to enforce abstraction.
func NewAnswerCache(backend *Backend) storage.AnswerCache {
	return &AnswerCache{backend: backend}
}

// GetAnswers retrieves the cached enrichment result for a document.
func (c *AnswerCache) GetAnswers(ctx context.Context, documentID string, digest core.Digest) (*core.EnrichmentResult, bool, error) {
	var result *core.EnrichmentResult

	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeAnswerKey(documentID, digest))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalEnrichmentResult(val)
			return unmarshalErr
		})
	}, false)

	if err != nil {
		return nil, false, err
	}
	return result, result != nil, nil
}

// PutAnswers stores the enrichment result for a document.
func (c *AnswerCache) PutAnswers(ctx context.Context, documentID string, digest core.Digest, result *core.EnrichmentResult) error {
	value, err := storage.MarshalEnrichmentResult(result)
	if err != nil {
		return err
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeAnswerKey(documentID, digest), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op; the backend owns the database lifecycle.
func (c *AnswerCache) Close() error {
	return nil
}
