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

package results

import (
	"sort"

	"github.com/poiesic/docscore/core"
)

// Row is one flattened scoring answer: a single (document, question) pair.
type Row struct {
	DocumentID string   `json:"document_id"`
	Key        string   `json:"key"`
	Question   string   `json:"question"`
	Score      int      `json:"score"`
	Rationale  string   `json:"rationale"`
	Quotes     []string `json:"quotes"`
}

// Aggregate flattens enrichment results into one row per answer, ordered by
// document ID and then by the answer order the scoring service produced.
// Documents without a result contribute no rows; the skip ledger and failure
// list account for them separately.
func Aggregate(enriched map[string]*core.EnrichmentResult) []Row {
	ids := make([]string, 0, len(enriched))
	for id := range enriched {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var rows []Row
	for _, id := range ids {
		for _, answer := range enriched[id].Answers {
			rows = append(rows, Row{
				DocumentID: id,
				Key:        answer.Key,
				Question:   answer.Question,
				Score:      answer.Score,
				Rationale:  answer.Rationale,
				Quotes:     answer.Quotes,
			})
		}
	}

	return rows
}
