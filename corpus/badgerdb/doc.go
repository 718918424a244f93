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


// Package badgerdb stores a packed knowledge library in a local BadgerDB
// database: resource records under one key prefix, body texts under another.
// A Store satisfies both corpus.Source and corpus.ContentLoader, so a packed
// library plugs straight into the knowledge base.
package badgerdb
