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


// Package index provides the in-memory vector index over catalog
// embeddings.
//
// The VectorStore is built once from persisted embedding records and is
// immutable for its lifetime; catalog sizes are small enough that the
// rankers scan its dense matrix linearly instead of maintaining an
// approximate-nearest-neighbor structure. Rebuilds are published through
// a Handle via atomic reference replacement.
package index
