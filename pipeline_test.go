package docscore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/docscore/ai"
	"github.com/poiesic/docscore/ai/mock"
	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/enrich"
	"github.com/poiesic/docscore/extract"
	"github.com/poiesic/docscore/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor pretends every .pdf except broken.pdf contains clean text.
type fakeExtractor struct {
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) (*core.ExtractedDocument, error) {
	f.calls++
	name := filepath.Base(path)
	if name == "broken.pdf" {
		return nil, &extract.Error{Path: path, Message: "org.apache.tika.exception.TikaException: Unable to extract PDF content"}
	}
	return &core.ExtractedDocument{
		Content:  "Extracted text of " + name,
		Metadata: map[string]string{"Content-Type": "application/pdf"},
	}, nil
}

// wordCounter counts whitespace-separated chunks.
type wordCounter struct{}

func (wordCounter) Count(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

func testQuestionnaire(t *testing.T) *core.Questionnaire {
	t.Helper()
	q, err := core.NewQuestionnaire([]core.Question{
		{Key: "novelty", Text: "How novel is the work?"},
		{Key: "rigor", Text: "How rigorous is the method?"},
		{Key: "clarity", Text: "How clearly is it written?"},
	})
	require.NoError(t, err)
	return q
}

func writeInputDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("raw bytes"), 0644))
	}
	return dir
}

// swapEngine rebuilds the pipeline's engine around an observable scorer.
func swapEngine(t *testing.T, pipeline *Pipeline, scorer ai.DocumentScorer) {
	t.Helper()
	pipeline.engine.Release()
	engine, err := enrich.NewEngine(scorer, pipeline.answerCache)
	require.NoError(t, err)
	pipeline.engine = engine
}

func newTestPipeline(t *testing.T, opts ...PipelineOption) *Pipeline {
	t.Helper()
	base := []PipelineOption{
		WithInMemoryStore(),
		WithMockScoring(),
		WithExtractor(&fakeExtractor{}),
		WithTokenCounter(wordCounter{}),
	}
	pipeline, err := NewPipeline("", testQuestionnaire(t), append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { pipeline.Close() })
	return pipeline
}

func TestRun_EndToEnd(t *testing.T) {
	// One extractable file, one unsupported suffix, one extraction failure.
	dir := writeInputDir(t, "paper.pdf", "notes.txt", "broken.pdf")
	pipeline := newTestPipeline(t)

	report, err := pipeline.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, report.Documents, 1)
	assert.Equal(t, "paper_pdf", report.Documents[0].ID)

	require.Len(t, report.Skipped, 2)
	reasons := map[string]string{}
	for _, skip := range report.Skipped {
		reasons[skip.FileName] = skip.Reason
	}
	assert.Equal(t, "unsupported file type", reasons["notes.txt"])
	assert.Contains(t, reasons["broken.pdf"], "TikaException")

	assert.Empty(t, report.Failures)

	// One row per (document, question) pair.
	require.Len(t, report.Rows, 3)
	for _, row := range report.Rows {
		assert.Equal(t, "paper_pdf", row.DocumentID)
	}
}

func TestRun_SnapshotFastPath(t *testing.T) {
	dir := writeInputDir(t, "paper.pdf")
	pipeline := newTestPipeline(t)

	ctx := context.Background()
	report, err := pipeline.Run(ctx, dir)
	require.NoError(t, err)

	rows, err := pipeline.ResultsFromSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, report.Rows, rows)
}

func TestResultsFromSnapshot_NoPriorRun(t *testing.T) {
	pipeline := newTestPipeline(t)

	_, err := pipeline.ResultsFromSnapshot(context.Background())
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)
}

func TestRun_WarmRunSkipsScoringAndExtraction(t *testing.T) {
	dir := writeInputDir(t, "paper.pdf")

	extractor := &fakeExtractor{}
	scorer := mock.NewScorer()

	questionnaire := testQuestionnaire(t)
	pipeline, err := NewPipeline("", questionnaire,
		WithInMemoryStore(),
		WithMockScoring(),
		WithExtractor(extractor),
		WithTokenCounter(wordCounter{}),
	)
	require.NoError(t, err)
	defer pipeline.Close()
	swapEngine(t, pipeline, scorer)

	ctx := context.Background()
	first, err := pipeline.Run(ctx, dir)
	require.NoError(t, err)
	second, err := pipeline.Run(ctx, dir)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, 1, extractor.calls)
	assert.Equal(t, 1, scorer.CallCount())
}

func TestRun_FailedDocumentExcludedFromSnapshot(t *testing.T) {
	dir := writeInputDir(t, "good.pdf", "toolong.pdf")

	scorer := mock.NewScorer()
	pipeline, err := NewPipeline("", testQuestionnaire(t),
		WithInMemoryStore(),
		WithMockScoring(),
		WithExtractor(&fakeExtractor{}),
		WithTokenCounter(oversizedCounter{}),
	)
	require.NoError(t, err)
	defer pipeline.Close()
	swapEngine(t, pipeline, scorer)

	ctx := context.Background()
	report, err := pipeline.Run(ctx, dir)
	require.NoError(t, err)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "toolong_pdf", report.Failures[0].DocumentID)

	rows, err := pipeline.ResultsFromSnapshot(ctx)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, "good_pdf", row.DocumentID)
	}
}

// oversizedCounter pushes toolong.pdf over the token ceiling.
type oversizedCounter struct{}

func (oversizedCounter) Count(text string) (int, error) {
	if strings.Contains(text, "toolong.pdf") {
		return 120001, nil
	}
	return len(strings.Fields(text)), nil
}

func TestNewPipeline_RequiresQuestionnaire(t *testing.T) {
	_, err := NewPipeline("", nil, WithInMemoryStore())
	assert.Error(t, err)
}
