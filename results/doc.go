// Package results flattens enrichment results into exportable rows.
//
// Aggregation produces exactly one row per answered (document, question)
// pair; documents that were skipped or failed contribute nothing here.
// Exports are available as CSV or JSON.
package results
