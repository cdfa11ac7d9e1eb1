package enrich

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/docscore/ai"
	"github.com/poiesic/docscore/ai/mock"
	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuestionnaire(t *testing.T) *core.Questionnaire {
	t.Helper()
	q, err := core.NewQuestionnaire([]core.Question{
		{Key: "novelty", Text: "How novel is the work?"},
		{Key: "rigor", Text: "How rigorous is the method?"},
	})
	require.NoError(t, err)
	return q
}

func testDocument(id string, tokenCount int) *core.DocumentRecord {
	return &core.DocumentRecord{
		ID:         id,
		FileName:   id + ".pdf",
		TokenCount: tokenCount,
		Content:    "content of " + id,
	}
}

func newTestEngine(t *testing.T, scorer ai.DocumentScorer, opts ...Option) *Engine {
	t.Helper()
	_, answerCache, backend, err := badger.NewMemoryCaches()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	engine, err := NewEngine(scorer, answerCache, opts...)
	require.NoError(t, err)
	t.Cleanup(engine.Release)
	return engine
}

func TestEnrich_AllDocumentsScored(t *testing.T) {
	questionnaire := testQuestionnaire(t)
	scorer := mock.NewScorer()
	engine := newTestEngine(t, scorer)

	docs := []*core.DocumentRecord{
		testDocument("a_pdf", 100),
		testDocument("b_pdf", 200),
		testDocument("c_pdf", 300),
	}

	results, failures, err := engine.Enrich(context.Background(), docs, questionnaire)
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, results, 3)

	for _, doc := range docs {
		result, ok := results[doc.ID]
		require.True(t, ok, "missing result for %s", doc.ID)
		assert.Equal(t, doc.ID, result.DocumentID)
		assert.Len(t, result.Answers, questionnaire.Len())
	}
}

func TestEnrich_CacheSingleDispatch(t *testing.T) {
	questionnaire := testQuestionnaire(t)
	scorer := mock.NewScorer()
	engine := newTestEngine(t, scorer)

	docs := []*core.DocumentRecord{testDocument("a_pdf", 100)}
	ctx := context.Background()

	first, _, err := engine.Enrich(ctx, docs, questionnaire)
	require.NoError(t, err)
	assert.Equal(t, 1, scorer.CallCount())

	second, _, err := engine.Enrich(ctx, docs, questionnaire)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// Second run was served entirely from the answer cache.
	assert.Equal(t, 1, scorer.CallCount())
}

func TestEnrich_ContentChangeMissesCache(t *testing.T) {
	questionnaire := testQuestionnaire(t)
	scorer := mock.NewScorer()
	engine := newTestEngine(t, scorer)

	ctx := context.Background()
	doc := testDocument("a_pdf", 100)

	_, _, err := engine.Enrich(ctx, []*core.DocumentRecord{doc}, questionnaire)
	require.NoError(t, err)

	changed := *doc
	changed.Content = "revised content"
	_, _, err = engine.Enrich(ctx, []*core.DocumentRecord{&changed}, questionnaire)
	require.NoError(t, err)

	assert.Equal(t, 2, scorer.CallCount())
}

func TestEnrich_TokenCeiling(t *testing.T) {
	questionnaire := testQuestionnaire(t)
	scorer := mock.NewScorer()
	engine := newTestEngine(t, scorer)

	docs := []*core.DocumentRecord{
		testDocument("at_limit", DefaultMaxDocumentTokens),
		testDocument("over_limit", DefaultMaxDocumentTokens+1),
	}

	results, failures, err := engine.Enrich(context.Background(), docs, questionnaire)
	require.NoError(t, err)

	assert.Contains(t, results, "at_limit")
	require.Len(t, failures, 1)
	assert.Equal(t, "over_limit", failures[0].DocumentID)
	assert.ErrorIs(t, failures[0].Err, ErrDocumentTooLong)

	// The oversized document never reached the scorer.
	assert.Equal(t, 1, scorer.CallCount())
}

func TestEnrich_FailureIsolation(t *testing.T) {
	questionnaire := testQuestionnaire(t)
	remoteErr := errors.New("503 service unavailable")
	scorer := mock.NewScorer()
	scorer.ScoreFunc = func(ctx context.Context, content string, q *core.Questionnaire) ([]core.AnswerRecord, error) {
		if content == "content of bad_pdf" {
			return nil, remoteErr
		}
		answers := make([]core.AnswerRecord, 0, q.Len())
		for _, question := range q.Questions {
			answers = append(answers, core.AnswerRecord{Key: question.Key, Question: question.Text, Score: 5})
		}
		return answers, nil
	}
	engine := newTestEngine(t, scorer)

	docs := []*core.DocumentRecord{
		testDocument("good_pdf", 100),
		testDocument("bad_pdf", 100),
		testDocument("fine_pdf", 100),
	}

	results, failures, err := engine.Enrich(context.Background(), docs, questionnaire)
	require.NoError(t, err)

	assert.Len(t, results, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, "bad_pdf", failures[0].DocumentID)
	assert.Equal(t, "bad_pdf.pdf", failures[0].FileName)
	assert.ErrorIs(t, failures[0].Err, remoteErr)
}

func TestEnrich_ConcurrencyBound(t *testing.T) {
	questionnaire := testQuestionnaire(t)

	var inFlight, maxInFlight atomic.Int64
	scorer := mock.NewScorer()
	scorer.ScoreFunc = func(ctx context.Context, content string, q *core.Questionnaire) ([]core.AnswerRecord, error) {
		current := inFlight.Add(1)
		for {
			observed := maxInFlight.Load()
			if current <= observed || maxInFlight.CompareAndSwap(observed, current) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return []core.AnswerRecord{{Key: "novelty", Score: 5}, {Key: "rigor", Score: 5}}, nil
	}
	engine := newTestEngine(t, scorer, WithPoolSize(2))

	docs := make([]*core.DocumentRecord, 10)
	for i := range docs {
		docs[i] = testDocument(fmt.Sprintf("doc_%d", i), 100)
	}

	results, failures, err := engine.Enrich(context.Background(), docs, questionnaire)
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Len(t, results, 10)
	assert.LessOrEqual(t, maxInFlight.Load(), int64(2))
}

func TestEnrich_MalformedResponseNotRetried(t *testing.T) {
	questionnaire := testQuestionnaire(t)
	var calls atomic.Int64
	scorer := mock.NewScorer()
	scorer.ScoreFunc = func(ctx context.Context, content string, q *core.Questionnaire) ([]core.AnswerRecord, error) {
		calls.Add(1)
		return nil, fmt.Errorf("%w: gibberish", ai.ErrMalformedResponse)
	}
	engine := newTestEngine(t, scorer, WithRetry(3, time.Millisecond))

	_, failures, err := engine.Enrich(context.Background(), []*core.DocumentRecord{testDocument("a_pdf", 100)}, questionnaire)
	require.NoError(t, err)

	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0].Err, ai.ErrMalformedResponse)
	assert.Equal(t, int64(1), calls.Load())
}

func TestEnrich_RetryRecoversTransientFailure(t *testing.T) {
	questionnaire := testQuestionnaire(t)
	var calls atomic.Int64
	scorer := mock.NewScorer()
	scorer.ScoreFunc = func(ctx context.Context, content string, q *core.Questionnaire) ([]core.AnswerRecord, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("connection reset by peer")
		}
		return []core.AnswerRecord{{Key: "novelty", Score: 5}, {Key: "rigor", Score: 5}}, nil
	}
	engine := newTestEngine(t, scorer, WithRetry(2, time.Millisecond))

	results, failures, err := engine.Enrich(context.Background(), []*core.DocumentRecord{testDocument("a_pdf", 100)}, questionnaire)
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Len(t, results, 1)
	assert.Equal(t, int64(2), calls.Load())
}

func TestEnrich_InvalidScorePayloadIsFailure(t *testing.T) {
	questionnaire := testQuestionnaire(t)
	scorer := mock.NewScorer()
	scorer.ScoreFunc = func(ctx context.Context, content string, q *core.Questionnaire) ([]core.AnswerRecord, error) {
		return []core.AnswerRecord{{Key: "novelty", Score: 42}}, nil
	}
	engine := newTestEngine(t, scorer)

	results, failures, err := engine.Enrich(context.Background(), []*core.DocumentRecord{testDocument("a_pdf", 100)}, questionnaire)
	require.NoError(t, err)
	assert.Empty(t, results)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0].Err, core.ErrScoreOutOfRange)
}

func TestEnrich_StaleCachedAnswersRescored(t *testing.T) {
	questionnaire := testQuestionnaire(t)
	scorer := mock.NewScorer()

	_, answerCache, backend, err := badger.NewMemoryCaches()
	require.NoError(t, err)
	defer backend.Close()

	engine, err := NewEngine(scorer, answerCache)
	require.NoError(t, err)
	defer engine.Release()

	ctx := context.Background()
	doc := testDocument("a_pdf", 100)

	// Seed the cache with answers keyed to a question that no longer exists.
	stale := &core.EnrichmentResult{
		DocumentID: doc.ID,
		Answers:    []core.AnswerRecord{{Key: "retired_question", Score: 3}},
	}
	require.NoError(t, answerCache.PutAnswers(ctx, doc.ID, core.ContentDigest(doc.Content), stale))

	results, failures, err := engine.Enrich(ctx, []*core.DocumentRecord{doc}, questionnaire)
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Contains(t, results, doc.ID)
	assert.Equal(t, 1, scorer.CallCount())
	assert.Len(t, results[doc.ID].Answers, questionnaire.Len())
}

func TestNewEngine_Validation(t *testing.T) {
	_, answerCache, backend, err := badger.NewMemoryCaches()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewEngine(nil, answerCache)
	assert.ErrorIs(t, err, ErrScorerRequired)

	_, err = NewEngine(mock.NewScorer(), nil)
	assert.ErrorIs(t, err, ErrAnswerCacheRequired)

	_, err = NewEngine(mock.NewScorer(), answerCache, WithRetry(0, time.Second))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestProgressTracker_Reports(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 4, 2)
	tracker.Start()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Increment(1)
		}()
	}
	wg.Wait()
	tracker.Finish()

	assert.Contains(t, buf.String(), "4/4 (100.0%)")
	assert.Greater(t, tracker.Elapsed(), time.Duration(0))
}
