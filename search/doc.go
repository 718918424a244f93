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


// Package search provides the retrieval primitives of the knowledge base:
//
//   - Text normalization and tokenization with stop-word filtering
//     (western and CJK-aware variants)
//   - Similarity utilities: Levenshtein distance, tiered fuzzy matching,
//     Jaccard and cosine similarity, TF-IDF
//   - A structured metadata filter engine (OR within a dimension, AND
//     across dimensions)
//   - Two named scoring strategies behind one interface: tiered keyword
//     scoring and weighted per-field Jaccard scoring
//   - Facet aggregation over matched result sets
//
// Everything in this package is pure and stateless: functions take their
// inputs and return their outputs with no shared mutable state, so they are
// safe for concurrent use.
package search
