// Package catalog builds the per-run document catalog.
//
// The Builder lists an input directory, filters by supported suffix
// (pdf, doc, docx — case-insensitive), extracts each supported file through
// the configured extractor, counts tokens, and assembles immutable
// DocumentRecords. Every excluded or failed file lands in the skip ledger
// with its reason; no per-file failure aborts the build.
//
// Catalog building is sequential by design; enrichment is the pipeline's
// only fan-out point.
package catalog
