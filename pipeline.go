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

package docscore

import (
	"context"
	"log/slog"

	"github.com/poiesic/docscore/ai"
	"github.com/poiesic/docscore/ai/mock"
	"github.com/poiesic/docscore/ai/openai"
	"github.com/poiesic/docscore/catalog"
	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/enrich"
	"github.com/poiesic/docscore/extract"
	"github.com/poiesic/docscore/extract/local"
	"github.com/poiesic/docscore/extract/tika"
	"github.com/poiesic/docscore/results"
	"github.com/poiesic/docscore/storage"
	"github.com/poiesic/docscore/storage/badger"
	"github.com/poiesic/docscore/tokens"
)

// Pipeline wires the document catalog, the enrichment engine, and the
// durable caches behind one handle. A Pipeline owns its storage backend and
// worker pool; callers must Close it when done.
type Pipeline struct {
	backend       *badger.Backend
	docCache      storage.DocumentCache
	answerCache   storage.AnswerCache
	snapshots     storage.SnapshotStore
	extractor     extract.Extractor
	counter       tokens.Counter
	engine        *enrich.Engine
	questionnaire *core.Questionnaire
	logger        *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*pipelineOptions)

type pipelineOptions struct {
	aiConfig         *ai.Config
	mockScoring      bool
	tikaHost         string
	tokenizerProfile string
	inMemory         bool
	extractor        extract.Extractor
	counter          tokens.Counter
	engineOpts       []enrich.Option
}

// WithAIConfig sets the scoring service configuration.
func WithAIConfig(cfg *ai.Config) PipelineOption {
	return func(o *pipelineOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithMockScoring replaces the remote scorer with canned answers, letting a
// run complete end to end without a scoring service.
func WithMockScoring() PipelineOption {
	return func(o *pipelineOptions) {
		o.mockScoring = true
	}
}

// WithTikaHost routes text extraction through an Apache Tika server instead
// of the built-in local extractor.
func WithTikaHost(host string) PipelineOption {
	return func(o *pipelineOptions) {
		o.tikaHost = host
	}
}

// WithTokenizerProfile sets the token-counting profile.
// Default is tokens.DefaultProfile.
func WithTokenizerProfile(profile string) PipelineOption {
	return func(o *pipelineOptions) {
		o.tokenizerProfile = profile
	}
}

// WithExtractor replaces the built-in extractors with a custom one. The
// extraction cache still applies on top of it.
func WithExtractor(extractor extract.Extractor) PipelineOption {
	return func(o *pipelineOptions) {
		o.extractor = extractor
	}
}

// WithTokenCounter replaces the tiktoken-based counter with a custom one.
func WithTokenCounter(counter tokens.Counter) PipelineOption {
	return func(o *pipelineOptions) {
		o.counter = counter
	}
}

// WithInMemoryStore keeps all caches in memory. Nothing survives the
// process; intended for tests.
func WithInMemoryStore() PipelineOption {
	return func(o *pipelineOptions) {
		o.inMemory = true
	}
}

// WithEngineOptions passes options through to the enrichment engine, such as
// enrich.WithPoolSize or enrich.WithRetry.
func WithEngineOptions(opts ...enrich.Option) PipelineOption {
	return func(o *pipelineOptions) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// NewPipeline creates a pipeline backed by the BadgerDB store at dbPath.
func NewPipeline(dbPath string, questionnaire *core.Questionnaire, opts ...PipelineOption) (*Pipeline, error) {
	if questionnaire == nil {
		return nil, enrich.ErrQuestionnaireRequired
	}

	options := &pipelineOptions{
		aiConfig:         ai.DefaultConfig(),
		tokenizerProfile: tokens.DefaultProfile,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(dbPath, options.inMemory)
	if err != nil {
		return nil, err
	}

	docCache := badger.NewDocumentCache(backend)
	answerCache := badger.NewAnswerCache(backend)
	snapshots := badger.NewSnapshotStore(backend)

	counter := options.counter
	if counter == nil {
		counter, err = tokens.NewCounter(options.tokenizerProfile)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	var scorer ai.DocumentScorer
	if options.mockScoring {
		scorer = mock.NewScorer()
	} else {
		scorer, err = openai.NewScorer(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	inner := options.extractor
	if inner == nil {
		if options.tikaHost != "" {
			inner = tika.NewClient(options.tikaHost)
		} else {
			inner = local.NewExtractor()
		}
	}

	engine, err := enrich.NewEngine(scorer, answerCache, options.engineOpts...)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Pipeline{
		backend:       backend,
		docCache:      docCache,
		answerCache:   answerCache,
		snapshots:     snapshots,
		extractor:     extract.NewCachedExtractor(inner, docCache),
		counter:       counter,
		engine:        engine,
		questionnaire: questionnaire,
		logger:        slog.Default().With("component", "pipeline"),
	}, nil
}

// RunReport is the full outcome of one live run.
type RunReport struct {
	// Documents is the catalog of successfully extracted files.
	Documents []*core.DocumentRecord

	// Skipped lists files excluded before enrichment, with reasons.
	Skipped []core.SkipRecord

	// Failures lists documents that entered enrichment but produced no
	// result.
	Failures []enrich.Failure

	// Rows is the flattened scoring output, one row per answered
	// (document, question) pair.
	Rows []results.Row
}

// Run executes a live run over the given directory: catalog build,
// enrichment fan-out, snapshot overwrite, aggregation.
//
// Per-file and per-document problems are reported in the RunReport; only
// failures that invalidate the whole run (an unreadable directory, a broken
// store) return an error.
func (p *Pipeline) Run(ctx context.Context, dir string) (*RunReport, error) {
	builder, err := catalog.NewBuilder(p.extractor, p.counter, catalog.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}

	documents, skipped, err := builder.Build(ctx, dir)
	if err != nil {
		return nil, err
	}

	enriched, failures, err := p.engine.Enrich(ctx, documents, p.questionnaire)
	if err != nil {
		return nil, err
	}

	snapshot := make([]*core.EnrichmentResult, 0, len(enriched))
	for _, doc := range documents {
		if result, ok := enriched[doc.ID]; ok {
			snapshot = append(snapshot, result)
		}
	}
	if err := p.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	return &RunReport{
		Documents: documents,
		Skipped:   skipped,
		Failures:  failures,
		Rows:      results.Aggregate(enriched),
	}, nil
}

// ResultsFromSnapshot aggregates the snapshot of the last completed live
// run without touching the input directory or the scoring service.
//
// Returns an error wrapping storage.ErrSnapshotNotFound when no live run
// has ever completed against this store.
func (p *Pipeline) ResultsFromSnapshot(ctx context.Context) ([]results.Row, error) {
	saved, err := p.snapshots.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	enriched := make(map[string]*core.EnrichmentResult, len(saved))
	for _, result := range saved {
		enriched[result.DocumentID] = result
	}

	return results.Aggregate(enriched), nil
}

// Close releases the worker pool and the storage backend.
// The pipeline should not be used after calling Close.
func (p *Pipeline) Close() error {
	p.engine.Release()

	if err := p.answerCache.Close(); err != nil {
		p.logger.Error("error closing answer cache", "err", err)
		return err
	}
	if err := p.docCache.Close(); err != nil {
		p.logger.Error("error closing document cache", "err", err)
		return err
	}

	if err := p.backend.Close(); err != nil {
		p.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
