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


package core

import "fmt"

// ValidateCatalogEntry validates a CatalogEntry according to domain rules.
//
// Validation rules:
//   - Code must not be empty
//   - Description must not be empty
//
// NOT validated:
//   - ID (0 is a valid ID for entries keyed purely by code)
func ValidateCatalogEntry(entry *CatalogEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidCatalogEntry)
	}

	if entry.Code == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCatalogEntry, ErrEmptyCode)
	}

	if entry.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCatalogEntry, ErrEmptyDescription)
	}

	return nil
}

// ValidateEmbeddingRecord validates an EmbeddingRecord according to domain rules.
//
// Validation rules:
//   - Entry must be a valid CatalogEntry
//   - Vector must not be empty
//
// Dimensionality consistency across records is a store-level invariant and
// is checked by the index loader, not here.
func ValidateEmbeddingRecord(record *EmbeddingRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidEmbeddingRecord)
	}

	if err := ValidateCatalogEntry(&record.Entry); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEmbeddingRecord, err)
	}

	if len(record.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEmbeddingRecord, ErrEmptyVector)
	}

	return nil
}
