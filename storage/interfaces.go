package storage

import (
	"context"

	"github.com/poiesic/docscore/core"
)

// DocumentCache is the durable extraction cache. Entries are keyed by file
// path and hold the raw extractor output for that path.
//
// Implementations must be thread-safe and support concurrent access. A miss
// is not an error: Get returns found=false and the caller performs the
// expensive extraction followed by a Put.
type DocumentCache interface {
	// GetDocument retrieves the cached extraction result for a file path.
	// Returns found=false when no entry exists.
	GetDocument(ctx context.Context, path string) (doc *core.ExtractedDocument, found bool, err error)

	// PutDocument stores the extraction result for a file path.
	// Concurrent writes to the same path are last-writer-wins.
	PutDocument(ctx context.Context, path string, doc *core.ExtractedDocument) error

	// Close releases resources held by the cache.
	Close() error
}

// AnswerCache is the durable enrichment-answer cache. Entries are keyed by
// (documentID, content digest): if a document's extracted text changes, the
// digest changes and the stale answer is not reused, while re-runs over
// unchanged content hit across process restarts.
type AnswerCache interface {
	// GetAnswers retrieves the cached enrichment result for a document.
	// Returns found=false when no entry exists.
	GetAnswers(ctx context.Context, documentID string, digest core.Digest) (result *core.EnrichmentResult, found bool, err error)

	// PutAnswers stores the enrichment result for a document.
	PutAnswers(ctx context.Context, documentID string, digest core.Digest, result *core.EnrichmentResult) error

	// Close releases resources held by the cache.
	Close() error
}

// SnapshotStore persists one run-level snapshot of all enrichment results.
// The snapshot is overwritten after every live run and read by the reuse
// fast path. This is a coarse run-level cache, distinct from AnswerCache.
type SnapshotStore interface {
	// SaveSnapshot overwrites the snapshot with the given results.
	SaveSnapshot(ctx context.Context, results []*core.EnrichmentResult) error

	// LoadSnapshot reads the snapshot from the last completed live run.
	// Returns ErrSnapshotNotFound if no snapshot has ever been written.
	LoadSnapshot(ctx context.Context) ([]*core.EnrichmentResult, error)
}
