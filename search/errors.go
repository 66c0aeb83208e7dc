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


package search

import "errors"

var (
	// ErrIndexHandleRequired is returned when an index handle is not provided.
	ErrIndexHandleRequired = errors.New("index handle required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrDimensionMismatch is returned when a query vector's dimensionality
	// differs from the store's. It indicates an embedding model mismatch
	// between query time and index build time.
	ErrDimensionMismatch = errors.New("query vector dimensionality mismatch")

	// ErrInvalidTopK is returned for a non-positive top-K setting.
	ErrInvalidTopK = errors.New("top-k must be positive")

	// ErrInvalidMaxDistance is returned for a non-positive distance threshold.
	ErrInvalidMaxDistance = errors.New("max distance must be positive")
)
