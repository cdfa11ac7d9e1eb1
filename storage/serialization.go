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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/docscore/core"
)

// Cache values are JSON documents produced by external services (extractor
// metadata, scoring payloads), so they are stored as JSON rather than a
// binary codec. This keeps entries inspectable with standard tooling.

// MarshalExtractedDocument serializes an ExtractedDocument to bytes.
func MarshalExtractedDocument(doc *core.ExtractedDocument) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalExtractedDocument deserializes an ExtractedDocument from bytes.
func UnmarshalExtractedDocument(data []byte) (*core.ExtractedDocument, error) {
	var doc core.ExtractedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}

// MarshalEnrichmentResult serializes an EnrichmentResult to bytes.
func MarshalEnrichmentResult(result *core.EnrichmentResult) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalEnrichmentResult deserializes an EnrichmentResult from bytes.
func UnmarshalEnrichmentResult(data []byte) (*core.EnrichmentResult, error) {
	var result core.EnrichmentResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &result, nil
}

// MarshalSnapshot serializes a run-level result snapshot to bytes.
func MarshalSnapshot(results []*core.EnrichmentResult) ([]byte, error) {
	data, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalSnapshot deserializes a run-level result snapshot from bytes.
func UnmarshalSnapshot(data []byte) ([]*core.EnrichmentResult, error) {
	var results []*core.EnrichmentResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return results, nil
}
