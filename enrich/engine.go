// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docscore/ai"
	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/storage"
)

const (
	// DefaultPoolSize is the number of documents scored concurrently.
	DefaultPoolSize = 60

	// DefaultMaxDocumentTokens is the per-document token ceiling. Documents
	// over the ceiling are failed locally without a remote call.
	DefaultMaxDocumentTokens = 120000

	// DefaultReportInterval is how many completed documents elapse between
	// progress reports.
	DefaultReportInterval = 10
)

// Failure records one document the engine could not enrich. Failures never
// abort the run; they are reported alongside the successful results.
type Failure struct {
	DocumentID string
	FileName   string
	Err        error
}

// Engine fans document scoring out over a bounded worker pool, consulting
// the durable answer cache before every remote call.
type Engine struct {
	scorer         ai.DocumentScorer
	answerCache    storage.AnswerCache
	pool           *ants.Pool
	maxTokens      int
	maxAttempts    int
	retryDelay     time.Duration
	progressWriter io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithPoolSize sets the worker pool size for concurrent scoring.
// Default is DefaultPoolSize.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}

		if e.pool != nil {
			e.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		e.pool = pool
		return nil
	}
}

// WithMaxDocumentTokens sets the per-document token ceiling.
// Default is DefaultMaxDocumentTokens.
func WithMaxDocumentTokens(limit int) Option {
	return func(e *Engine) error {
		if limit < 1 {
			return fmt.Errorf("max document tokens must be positive, got %d", limit)
		}
		e.maxTokens = limit
		return nil
	}
}

// WithRetry enables retrying failed remote calls with exponential backoff.
// Malformed or empty responses are never retried; retrying cannot fix them.
// Default is a single attempt.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(e *Engine) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		e.maxAttempts = maxAttempts
		e.retryDelay = baseDelay
		return nil
	}
}

// WithProgress enables progress reporting to the given writer.
func WithProgress(w io.Writer, reportInterval int) Option {
	return func(e *Engine) error {
		if reportInterval < 1 {
			reportInterval = DefaultReportInterval
		}
		e.progressWriter = w
		e.reportInterval = reportInterval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates an enrichment engine.
func NewEngine(scorer ai.DocumentScorer, answerCache storage.AnswerCache, opts ...Option) (*Engine, error) {
	if scorer == nil {
		return nil, ErrScorerRequired
	}
	if answerCache == nil {
		return nil, ErrAnswerCacheRequired
	}

	pool, err := ants.NewPool(DefaultPoolSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		scorer:         scorer,
		answerCache:    answerCache,
		pool:           pool,
		maxTokens:      DefaultMaxDocumentTokens,
		maxAttempts:    1,
		retryDelay:     time.Second,
		reportInterval: DefaultReportInterval,
		logger:         slog.Default().With("component", "enrich"),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Enrich scores every document against the questionnaire and returns the
// results keyed by document ID, plus one Failure per document that could not
// be enriched. A per-document failure never affects any other document.
//
// Enrich blocks until every document has either a result or a failure.
func (e *Engine) Enrich(ctx context.Context, documents []*core.DocumentRecord, questionnaire *core.Questionnaire) (map[string]*core.EnrichmentResult, []Failure, error) {
	if questionnaire == nil {
		return nil, nil, ErrQuestionnaireRequired
	}

	results := make(map[string]*core.EnrichmentResult, len(documents))
	var failures []Failure
	var mu sync.Mutex
	var wg sync.WaitGroup

	var tracker *ProgressTracker
	if e.progressWriter != nil {
		tracker = NewProgressTracker(e.progressWriter, len(documents), e.reportInterval)
		tracker.Start()
	}

	for _, doc := range documents {
		doc := doc
		wg.Add(1)
		task := func() {
			defer wg.Done()

			result, err := e.enrichOne(ctx, doc, questionnaire)

			mu.Lock()
			if err != nil {
				e.logger.Warn("document enrichment failed", "document", doc.ID, "err", err)
				failures = append(failures, Failure{DocumentID: doc.ID, FileName: doc.FileName, Err: err})
			} else {
				results[doc.ID] = result
			}
			mu.Unlock()

			if tracker != nil {
				tracker.Increment(1)
			}
		}

		if submitErr := e.pool.Submit(task); submitErr != nil {
			wg.Done()
			mu.Lock()
			failures = append(failures, Failure{DocumentID: doc.ID, FileName: doc.FileName, Err: submitErr})
			mu.Unlock()
		}
	}

	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}

	e.logger.Info("enrichment complete", "documents", len(documents), "enriched", len(results), "failed", len(failures))
	return results, failures, nil
}

// enrichOne produces the enrichment result for a single document: answer
// cache first, then the token-ceiling pre-flight, then the remote call.
func (e *Engine) enrichOne(ctx context.Context, doc *core.DocumentRecord, questionnaire *core.Questionnaire) (*core.EnrichmentResult, error) {
	digest := core.ContentDigest(doc.Content)

	cached, found, err := e.answerCache.GetAnswers(ctx, doc.ID, digest)
	if err != nil {
		e.logger.Warn("answer cache read failed, scoring directly", "document", doc.ID, "err", err)
	} else if found {
		if validErr := core.ValidateEnrichmentResult(cached, questionnaire); validErr == nil {
			e.logger.Debug("answer cache hit", "document", doc.ID)
			return cached, nil
		}
		// A cached result that no longer matches the questionnaire is a miss.
		e.logger.Warn("discarding stale cached answers", "document", doc.ID)
	}

	if doc.TokenCount > e.maxTokens {
		return nil, fmt.Errorf("%w: %d tokens exceeds limit of %d", ErrDocumentTooLong, doc.TokenCount, e.maxTokens)
	}

	var answers []core.AnswerRecord
	err = retryWithBackoff(ctx, func() error {
		var scoreErr error
		answers, scoreErr = e.scorer.ScoreDocument(ctx, doc.Content, questionnaire)
		if scoreErr != nil && (errors.Is(scoreErr, ai.ErrMalformedResponse) || errors.Is(scoreErr, ai.ErrEmptyResponse)) {
			return &permanentError{err: scoreErr}
		}
		return scoreErr
	}, e.maxAttempts, e.retryDelay)
	if err != nil {
		return nil, err
	}

	result := &core.EnrichmentResult{DocumentID: doc.ID, Answers: answers}
	if err := core.ValidateEnrichmentResult(result, questionnaire); err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrMalformedResponse, err)
	}

	if err := e.answerCache.PutAnswers(ctx, doc.ID, digest, result); err != nil {
		// The answer is good even if we could not persist it.
		e.logger.Warn("answer cache write failed", "document", doc.ID, "err", err)
	}

	return result, nil
}

// Release releases the worker pool.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}
