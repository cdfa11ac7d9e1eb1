package badger

import (
	"context"
	"sync"
	"testing"

	"github.com/poiesic/docscore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCache_MissThenHit(t *testing.T) {
	docCache, _, backend, err := NewMemoryCaches()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	path := "data/raw/report.pdf"

	_, found, err := docCache.GetDocument(ctx, path)
	require.NoError(t, err)
	assert.False(t, found)

	doc := &core.ExtractedDocument{
		Content:  "Extracted body.",
		Metadata: map[string]string{"Content-Type": "application/pdf"},
	}
	require.NoError(t, docCache.PutDocument(ctx, path, doc))

	got, found, err := docCache.GetDocument(ctx, path)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, doc, got)
}

func TestDocumentCache_KeyedByPath(t *testing.T) {
	docCache, _, backend, err := NewMemoryCaches()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, docCache.PutDocument(ctx, "a.pdf", &core.ExtractedDocument{Content: "a"}))

	_, found, err := docCache.GetDocument(ctx, "b.pdf")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDocumentCache_Overwrite(t *testing.T) {
	docCache, _, backend, err := NewMemoryCaches()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	path := "report.pdf"

	require.NoError(t, docCache.PutDocument(ctx, path, &core.ExtractedDocument{Content: "first"}))
	require.NoError(t, docCache.PutDocument(ctx, path, &core.ExtractedDocument{Content: "second"}))

	got, found, err := docCache.GetDocument(ctx, path)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "second", got.Content)
}

func TestDocumentCache_DurableAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	path := "report.pdf"

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	cache := NewDocumentCache(backend)
	require.NoError(t, cache.PutDocument(ctx, path, &core.ExtractedDocument{Content: "survives restart"}))
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()

	got, found, err := NewDocumentCache(backend).GetDocument(ctx, path)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "survives restart", got.Content)
}

func TestDocumentCache_ConcurrentWrites(t *testing.T) {
	docCache, _, backend, err := NewMemoryCaches()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	// Concurrent writes to distinct keys must all land.
	var wg sync.WaitGroup
	paths := []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf"}
	for _, path := range paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			assert.NoError(t, docCache.PutDocument(ctx, p, &core.ExtractedDocument{Content: p}))
		}(path)
	}
	wg.Wait()

	for _, path := range paths {
		got, found, err := docCache.GetDocument(ctx, path)
		require.NoError(t, err)
		require.True(t, found, path)
		assert.Equal(t, path, got.Content)
	}
}
