package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/extract"
	"github.com/poiesic/docscore/tokens"
)

// supportedExtensions are the file types the extraction backend handles.
var supportedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// Builder walks an input directory and assembles the document catalog plus
// the skip ledger. Extraction runs sequentially, through whatever caching
// the provided extractor applies.
type Builder struct {
	extractor extract.Extractor
	counter   tokens.Counter
	logger    *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
	}
}

// NewBuilder creates a catalog builder.
func NewBuilder(extractor extract.Extractor, counter tokens.Counter, opts ...Option) (*Builder, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if counter == nil {
		return nil, ErrCounterRequired
	}

	b := &Builder{
		extractor: extractor,
		counter:   counter,
		logger:    slog.Default().With("component", "catalog"),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Build lists the directory and produces one DocumentRecord per
// successfully extracted file, in directory-listing order, plus one
// SkipRecord per excluded or failed file.
//
// Per-file failures never abort the build: unsupported suffixes are skipped
// without invoking the extractor, and extraction or tokenization failures
// are downgraded to skip entries with the error text.
func (b *Builder) Build(ctx context.Context, dir string) ([]*core.DocumentRecord, []core.SkipRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var documents []*core.DocumentRecord
	var skipped []core.SkipRecord

	for _, entry := range entries {
		fileName := entry.Name()

		ext := strings.ToLower(filepath.Ext(fileName))
		if _, ok := supportedExtensions[ext]; !ok {
			skipped = append(skipped, core.SkipRecord{FileName: fileName, Reason: "unsupported file type"})
			continue
		}

		path := filepath.Join(dir, fileName)
		doc, err := b.extractor.Extract(ctx, path)
		if err != nil {
			b.logger.Warn("extraction failed", "file", fileName, "err", err)
			skipped = append(skipped, core.SkipRecord{FileName: fileName, Reason: err.Error()})
			continue
		}

		tokenCount, err := b.counter.Count(doc.Content)
		if err != nil {
			b.logger.Warn("tokenization failed", "file", fileName, "err", err)
			skipped = append(skipped, core.SkipRecord{FileName: fileName, Reason: err.Error()})
			continue
		}

		info, err := entry.Info()
		if err != nil {
			skipped = append(skipped, core.SkipRecord{FileName: fileName, Reason: err.Error()})
			continue
		}

		documents = append(documents, &core.DocumentRecord{
			ID:            core.IDFromFileName(fileName),
			FileName:      fileName,
			TokenCount:    tokenCount,
			FileSizeBytes: info.Size(),
			Metadata:      doc.Metadata,
			Content:       doc.Content,
		})
	}

	b.logger.Info("catalog built", "documents", len(documents), "skipped", len(skipped))
	return documents, skipped, nil
}
