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


// Package corpus defines the boundary between the knowledge base and the
// collaborators that produce its documents: a Source supplies parsed
// resource records, a ContentLoader resolves a resource's opaque locator to
// body text. The core never knows whether records came from a manifest
// directory, a packed library, or a test fixture.
package corpus
