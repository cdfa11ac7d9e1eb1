package extract

import (
	"context"
	"testing"

	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExtractor implements Extractor for testing.
type stubExtractor struct {
	docs      map[string]*core.ExtractedDocument
	failOn    string
	callCount int
}

func (s *stubExtractor) Extract(ctx context.Context, path string) (*core.ExtractedDocument, error) {
	s.callCount++
	if path == s.failOn {
		return nil, &Error{Path: path, Message: "backend unavailable"}
	}
	if doc, ok := s.docs[path]; ok {
		return doc, nil
	}
	return nil, &Error{Path: path, Message: "unsupported or corrupt file"}
}

func setupCached(t *testing.T, stub *stubExtractor) *CachedExtractor {
	t.Helper()
	docCache, _, backend, err := badger.NewMemoryCaches()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	return NewCachedExtractor(stub, docCache)
}

func TestCachedExtractor_MissInvokesBackendOnce(t *testing.T) {
	stub := &stubExtractor{docs: map[string]*core.ExtractedDocument{
		"report.pdf": {Content: "body", Metadata: map[string]string{"Content-Type": "application/pdf"}},
	}}
	cached := setupCached(t, stub)
	ctx := context.Background()

	doc, err := cached.Extract(ctx, "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "body", doc.Content)
	assert.Equal(t, 1, stub.callCount)

	// Second call is served from the cache.
	doc, err = cached.Extract(ctx, "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "body", doc.Content)
	assert.Equal(t, 1, stub.callCount)
}

func TestCachedExtractor_FailureNotCached(t *testing.T) {
	stub := &stubExtractor{failOn: "broken.pdf"}
	cached := setupCached(t, stub)
	ctx := context.Background()

	_, err := cached.Extract(ctx, "broken.pdf")
	require.Error(t, err)
	assert.True(t, IsExtractionError(err))

	// Failures must not poison the cache; the backend is consulted again.
	_, err = cached.Extract(ctx, "broken.pdf")
	require.Error(t, err)
	assert.Equal(t, 2, stub.callCount)
}

func TestCachedExtractor_KeyIsPathNotContent(t *testing.T) {
	stub := &stubExtractor{docs: map[string]*core.ExtractedDocument{
		"report.pdf": {Content: "original"},
	}}
	cached := setupCached(t, stub)
	ctx := context.Background()

	_, err := cached.Extract(ctx, "report.pdf")
	require.NoError(t, err)

	// Simulate the file being edited in place. The cache still serves the
	// original text: path-only keying is inherited behavior.
	stub.docs["report.pdf"] = &core.ExtractedDocument{Content: "edited"}

	doc, err := cached.Extract(ctx, "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "original", doc.Content)
}

func TestExtractionError(t *testing.T) {
	err := &Error{Path: "a.pdf", Message: "timeout"}
	assert.Contains(t, err.Error(), "a.pdf")
	assert.Contains(t, err.Error(), "timeout")
	assert.True(t, IsExtractionError(err))
	assert.False(t, IsExtractionError(context.Canceled))
}
