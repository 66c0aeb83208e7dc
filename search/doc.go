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


// Package search provides hybrid retrieval over the catalog vector index.
//
// The Searcher type implements a staged resolution pipeline:
//   - Input correction against the catalog vocabulary
//   - Semantic nearest-neighbor search with distance thresholding
//   - Lexical fuzzy fallback when no semantic candidate qualifies
//
// Exactly one of the two match lists in a result is populated; the fuzzy
// ranker is a fallback, not a supplement.
package search
