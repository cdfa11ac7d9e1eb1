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


// Package extract defines the document-text-extraction boundary.
//
// The Extractor interface treats the extraction backend as a black box:
// given a file path it returns extracted text plus metadata, or an *Error
// with a human-readable message. Two implementations ship with docscore:
//
//   - extract/tika: client for an Apache Tika server
//   - extract/local: offline extraction using pure-Go pdf/docx readers
//
// CachedExtractor layers the durable document cache over either backend;
// the cache key is the file path (see CachedExtractor for the staleness
// caveat this implies).
package extract
