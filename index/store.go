package index

import (
	"context"
	"fmt"

	"github.com/poiesic/prodmatch/core"
)

// RecordSource supplies the persisted embedding records a VectorStore is
// built from. storage.ProductRepository satisfies it.
type RecordSource interface {
	AllEmbeddingRecords(ctx context.Context) ([]*core.EmbeddingRecord, error)
}

// VectorStore holds the catalog embeddings as a dense row-major float32
// matrix plus a parallel entry list, ordered to match the matrix rows.
//
// A VectorStore is immutable after construction and safe for concurrent
// reads. Construction itself is not thread-safe; publish a fully built
// store through a Handle before handing it to readers.
type VectorStore struct {
	entries []core.CatalogEntry
	matrix  []float32 // len(entries) rows of dim columns, row-major
	dim     int
}

// Load builds a VectorStore from all records of the source.
// Fails if the source is unreachable, empty, or contains vectors of
// inconsistent length. Load-time failures are fatal by design: a
// partially usable store is never returned.
func Load(ctx context.Context, source RecordSource) (*VectorStore, error) {
	records, err := source.AllEmbeddingRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog vectors: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptySource
	}
	return New(records)
}

// New builds a VectorStore from in-memory records. Unlike Load, an empty
// record set is accepted and yields an empty store; searches against it
// return empty results.
func New(records []*core.EmbeddingRecord) (*VectorStore, error) {
	if len(records) == 0 {
		return &VectorStore{}, nil
	}

	dim := len(records[0].Vector)
	if dim == 0 {
		return nil, fmt.Errorf("%w: record %d", ErrInconsistentVector, records[0].Entry.Id)
	}

	s := &VectorStore{
		entries: make([]core.CatalogEntry, len(records)),
		matrix:  make([]float32, 0, len(records)*dim),
		dim:     dim,
	}
	for i, record := range records {
		if len(record.Vector) != dim {
			return nil, fmt.Errorf("%w: record %d has %d dimensions, store has %d",
				ErrInconsistentVector, record.Entry.Id, len(record.Vector), dim)
		}
		s.entries[i] = record.Entry
		s.matrix = append(s.matrix, record.Vector...)
	}
	return s, nil
}

// Size returns the number of catalog entries in the store.
func (s *VectorStore) Size() int {
	return len(s.entries)
}

// Dimensionality returns the embedding dimensionality, 0 for an empty store.
func (s *VectorStore) Dimensionality() int {
	return s.dim
}

// Entries returns the catalog entries in matrix row order.
// The returned slice is shared; callers must not mutate it.
func (s *VectorStore) Entries() []core.CatalogEntry {
	return s.entries
}

// Entry returns the catalog entry at matrix row i.
func (s *VectorStore) Entry(i int) core.CatalogEntry {
	return s.entries[i]
}

// Matrix returns the dense row-major embedding matrix for batched
// distance computation. The returned slice is shared; callers must not
// mutate it.
func (s *VectorStore) Matrix() []float32 {
	return s.matrix
}

// Row returns the embedding vector at matrix row i as a subslice of the
// matrix.
func (s *VectorStore) Row(i int) []float32 {
	return s.matrix[i*s.dim : (i+1)*s.dim]
}

// Vocabulary returns all catalog descriptions in store order. It is the
// input-correction vocabulary for search.
func (s *VectorStore) Vocabulary() []string {
	vocab := make([]string, len(s.entries))
	for i, entry := range s.entries {
		vocab[i] = entry.Description
	}
	return vocab
}
