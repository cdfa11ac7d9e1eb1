package local

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
	"github.com/poiesic/docscore/core"
	"github.com/poiesic/docscore/extract"
)

// pageTimeout bounds text extraction for a single PDF page; malformed pages
// can send the parser into unbounded work.
const pageTimeout = 10 * time.Second

// Extractor is an offline extract.Extractor using pure-Go document readers.
// It needs no Tika server: PDFs are read page by page, word documents
// through their XML archives.
type Extractor struct {
	logger *slog.Logger
}

var _ extract.Extractor = (*Extractor)(nil)

// NewExtractor creates a local extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		logger: slog.Default().With("component", "local-extractor"),
	}
}

// Extract reads the file at path and returns its text content.
func (e *Extractor) Extract(ctx context.Context, path string) (*core.ExtractedDocument, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var content string
	var err error
	switch ext {
	case ".pdf":
		content, err = e.extractPDF(path)
	case ".doc", ".docx":
		content, err = cat.File(path)
	default:
		return nil, &extract.Error{Path: path, Message: fmt.Sprintf("no local parser for %q", ext)}
	}

	if err != nil {
		if extract.IsExtractionError(err) {
			return nil, err
		}
		return nil, &extract.Error{Path: path, Message: "parse failed", Err: err}
	}

	return &core.ExtractedDocument{
		Content: strings.TrimSpace(content),
		Metadata: map[string]string{
			"Content-Type": contentType(ext),
			"resourceName": filepath.Base(path),
		},
	}, nil
}

func (e *Extractor) extractPDF(path string) (string, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// A single unreadable page does not fail the document.
			e.logger.Warn("skipping unreadable pdf page", "path", path, "page", i, "err", err)
			continue
		}

		sb.WriteString(content)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// protectExtract runs page text extraction under a timeout.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(pageTimeout):
		return "", errors.New("page extraction timeout")
	}
}

func contentType(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".doc":
		return "application/msword"
	default:
		return "application/octet-stream"
	}
}
