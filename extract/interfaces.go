package extract

import (
	"context"

	"github.com/poiesic/docscore/core"
)

// Extractor converts a binary document file into plain text plus metadata.
// Implementations must be thread-safe for concurrent use.
type Extractor interface {
	// Extract returns the extracted content and metadata for the file at path.
	// Failures (unsupported or corrupt file, backend unavailable, backend
	// timeout) are returned as an *Error and are non-fatal to a run: the
	// caller records them in the skip ledger and continues.
	Extract(ctx context.Context, path string) (*core.ExtractedDocument, error)
}
