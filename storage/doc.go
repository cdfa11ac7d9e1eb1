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


// Package storage provides the persistence abstraction layer for docscore.
//
// Three independent durable surfaces are defined:
//
//   - DocumentCache: extraction results keyed by file path
//   - AnswerCache: enrichment results keyed by (documentID, content digest)
//   - SnapshotStore: one run-level snapshot of all enrichment results
//
// The two caches are independent namespaces within the same store; the
// snapshot is a coarse run-level cache layered on top, read by the
// "reuse last run" fast path.
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction and
// enable alternative backends:
//
//	cache, err := badger.NewDocumentCache(backend)  // returns storage.DocumentCache
//
// # Thread Safety
//
// All implementations must tolerate concurrent reads and writes from
// multiple goroutines within one process. Concurrent writes to the same
// key are last-writer-wins; they must never corrupt the store.
package storage
