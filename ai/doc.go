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


// Package ai defines the remote-scoring boundary for docscore.
//
// DocumentScorer is the single abstraction: one call per document, carrying
// the full questionnaire and the document's extracted text, returning one
// scored answer per question. The call is atomic; there is no per-question
// partial success.
//
// # Implementation Packages
//
//   - ai/openai: production implementation over OpenAI-compatible chat APIs
//   - ai/mock: deterministic canned scorer for tests and mock-mode runs
//
// # Constructor Return Type Pattern
//
// Production constructors (openai.NewScorer) return the ai.DocumentScorer
// INTERFACE to enforce abstraction. The mock constructor returns the
// CONCRETE *mock.Scorer so tests can inject behavior and assert call counts.
package ai
