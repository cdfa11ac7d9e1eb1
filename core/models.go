package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// Digest is a 64-bit content digest used to detect changed document text.
type Digest uint64

// ContentDigest generates a deterministic digest from text content using BLAKE2b hashing.
// Identical content always produces an identical digest.
func ContentDigest(text string) Digest {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Digest(binary.LittleEndian.Uint64(sum))
}

var idReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_", ".", "_")

// IDFromFileName derives a stable document identifier from a file name by
// replacing path separators, spaces, and periods with underscores.
//
// The mapping is deterministic but not proven injective: two distinct file
// names (e.g. "a.b" and "a_b") collide to the same identifier. This is a
// known limitation inherited from the original design.
func IDFromFileName(fileName string) string {
	return idReplacer.Replace(fileName)
}

// ExtractedDocument is the raw output of the extraction backend for one file:
// plain text content plus opaque structural metadata.
type ExtractedDocument struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// DocumentRecord represents a successfully cataloged document.
// It is assembled once by the catalog builder and immutable afterwards.
type DocumentRecord struct {
	ID            string            `json:"id"`
	FileName      string            `json:"file_name"`
	TokenCount    int               `json:"num_tokens"`
	FileSizeBytes int64             `json:"file_size"`
	Metadata      map[string]string `json:"metadata"`
	Content       string            `json:"content"`
}

// SkipRecord records a file that was excluded from the catalog and why.
type SkipRecord struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// AnswerRecord is the scoring service's answer to a single question
// about a single document.
type AnswerRecord struct {
	Key       string   `json:"key"`
	Question  string   `json:"question"`
	Score     int      `json:"score"`
	Rationale string   `json:"rationale"`
	Quotes    []string `json:"quotes"`
}

// EnrichmentResult is the complete set of answers for one document.
// A document either has a complete result or none; partial per-question
// failure is treated as whole-document failure.
type EnrichmentResult struct {
	DocumentID string         `json:"document_id"`
	Answers    []AnswerRecord `json:"answers"`
}
