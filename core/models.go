package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog entries.
// It is assigned by the upstream catalog or derived from the product code.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. It is used to
// assign stable IDs to catalog entries whose source carries none, keyed on
// the product code.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// CatalogEntry identifies a single product in the catalog.
// Entries are immutable once loaded; identity is Id.
type CatalogEntry struct {
	Id          ID
	Code        string // External product code, e.g. an EAN
	Description string // Free text, up to ~4000 chars
}

// EmbeddingRecord pairs a catalog entry with its embedding vector.
// Every vector in one store has the same length (the embedding
// dimensionality); records violating that are rejected at load time.
type EmbeddingRecord struct {
	Entry  CatalogEntry
	Vector []float32
}

// RankedMatch is a single search candidate.
// Score is a similarity percentage in [0, 100]. RawMetric carries the
// underlying metric: the Euclidean distance for semantic matches, the
// token-sort ratio for fuzzy matches.
type RankedMatch struct {
	Id          ID      `json:"id"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	RawMetric   float64 `json:"raw_metric"`
}

// SearchResult is the structured outcome of one search call.
// At most one of SemanticMatches and FuzzyMatches is populated: fuzzy
// matching is a fallback, not a supplement. Both slices are always
// non-nil so the serialized shape is stable for callers.
type SearchResult struct {
	QueryOriginal   string        `json:"query_original"`
	QueryUsed       string        `json:"query_used"`
	SemanticMatches []RankedMatch `json:"semantic_matches"`
	FuzzyMatches    []RankedMatch `json:"fuzzy_matches"`
}
