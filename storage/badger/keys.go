package badger

import (
	"fmt"

	"github.com/poiesic/docscore/core"
)

// Key prefixes for the independent cache namespaces
const (
	documentPrefix = "docext"
	answerPrefix   = "docans"
	snapshotKey    = "runsnap"
)

// makeDocumentKey generates a key for a cached extraction result.
// The key is the file path as passed to the extractor; extraction is
// assumed deterministic per path, so content is deliberately not part
// of the key.
func makeDocumentKey(path string) []byte {
	return []byte(fmt.Sprintf("%s:%s", documentPrefix, path))
}

// makeAnswerKey generates a composite key for a cached enrichment result.
// Format: prefix:documentID:contentDigest
// Including the digest means changed document text misses the cache.
func makeAnswerKey(documentID string, digest core.Digest) []byte {
	return []byte(fmt.Sprintf("%s:%s:%016x", answerPrefix, documentID, uint64(digest)))
}

// makeSnapshotKey generates the key for the run-level result snapshot.
func makeSnapshotKey() []byte {
	return []byte(snapshotKey)
}
