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


// Package knowbase is an in-memory knowledge retrieval engine over a fixed
// corpus of short documents: essays, videos, and podcasts for startup
// founders.
//
// A KnowledgeBase composes the retrieval primitives into one search call:
// structured metadata filtering, weighted keyword scoring, facet
// aggregation, and LRU result caching. The corpus is supplied by a
// corpus.Source at initialization time and is read-only for the process
// lifetime; document bodies are loaded lazily through a
// corpus.ContentLoader and cached with TTL.
//
// Construct one KnowledgeBase per process at startup and pass it by
// reference to whatever consumes it:
//
//	kb, err := knowbase.New(source, loader)
//	if err != nil { ... }
//	if err := kb.Initialize(ctx); err != nil { ... }
//	result, err := kb.Search(ctx, core.SearchQuery{Keywords: []string{"startup"}, Limit: 10})
package knowbase
