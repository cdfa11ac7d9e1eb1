// Package enrich runs questionnaire scoring over the document catalog.
//
// The Engine dispatches one scoring call per document onto a bounded worker
// pool. Before each remote call it consults the durable answer cache keyed
// by (document ID, content digest), and it refuses documents over the token
// ceiling without calling out. Failures are isolated: a document that cannot
// be scored becomes a Failure entry and the rest of the run proceeds.
package enrich
