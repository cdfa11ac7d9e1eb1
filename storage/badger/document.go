package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/storage"
)

// DocumentCache implements storage.DocumentCache for BadgerDB.
type DocumentCache struct {
	backend *Backend
}

var _ storage.DocumentCache = (*DocumentCache)(nil)

// NewDocumentCache creates a document-extraction cache over the backend.
//
// Returns storage.DocumentCache interface to enforce abstraction.
func NewDocumentCache(backend *Backend) storage.DocumentCache {
	return &DocumentCache{backend: backend}
}

// GetDocument retrieves the cached extraction result for a file path.
func (c *DocumentCache) GetDocument(ctx context.Context, path string) (*core.ExtractedDocument, bool, error) {
	var doc *core.ExtractedDocument

	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentKey(path))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			doc, unmarshalErr = storage.UnmarshalExtractedDocument(val)
			return unmarshalErr
		})
	}, false)

	if err != nil {
		return nil, false, err
	}
	return doc, doc != nil, nil
}

// PutDocument stores the extraction result for a file path.
func (c *DocumentCache) PutDocument(ctx context.Context, path string, doc *core.ExtractedDocument) error {
	value, err := storage.MarshalExtractedDocument(doc)
	if err != nil {
		return err
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeDocumentKey(path), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op; the backend owns the database lifecycle.
func (c *DocumentCache) Close() error {
	return nil
}
