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


// Package core defines the domain model for docscore.
//
// The model covers the document enrichment pipeline end to end:
//
//   - ExtractedDocument: raw extractor output (text + metadata)
//   - DocumentRecord: a cataloged document with identity and token count
//   - SkipRecord: a file excluded from the catalog and why
//   - Questionnaire / Question: the fixed question set every document is
//     scored against
//   - AnswerRecord / EnrichmentResult: per-question scored answers for one
//     document, produced atomically by the scoring service
//
// Document identities are derived deterministically from file names
// (IDFromFileName), and content digests (ContentDigest) detect changed
// extracted text for answer-cache keying.
package core
