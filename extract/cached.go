package extract

import (
	"context"
	"log/slog"

	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/storage"
)

// CachedExtractor wraps an Extractor with the durable document cache.
// A cache hit skips invoking the backend entirely.
//
// The cache key is the file path alone, not the file content or mtime:
// extraction is assumed deterministic per path. A file edited under an
// unchanged name will be served stale extracted text until its cache
// entry is deleted. Inherited limitation, kept deliberately.
type CachedExtractor struct {
	inner  Extractor
	cache  storage.DocumentCache
	logger *slog.Logger
}

var _ Extractor = (*CachedExtractor)(nil)

// NewCachedExtractor wraps inner with the document cache.
func NewCachedExtractor(inner Extractor, cache storage.DocumentCache) *CachedExtractor {
	return &CachedExtractor{
		inner:  inner,
		cache:  cache,
		logger: slog.Default().With("component", "cached-extractor"),
	}
}

// Extract returns the cached result for path, or invokes the backend on a
// miss and stores the result before returning it. Cache read/write errors
// are logged and degrade to a direct backend call rather than failing the
// extraction.
func (c *CachedExtractor) Extract(ctx context.Context, path string) (*core.ExtractedDocument, error) {
	doc, found, err := c.cache.GetDocument(ctx, path)
	if err != nil {
		c.logger.Warn("document cache read failed", "path", path, "err", err)
	} else if found {
		c.logger.Debug("document cache hit", "path", path)
		return doc, nil
	}

	doc, err = c.inner.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	if putErr := c.cache.PutDocument(ctx, path, doc); putErr != nil {
		c.logger.Warn("document cache write failed", "path", path, "err", putErr)
	}

	return doc, nil
}
