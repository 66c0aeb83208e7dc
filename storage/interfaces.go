package storage

import (
	"context"

	"github.com/poiesic/prodmatch/core"
)

// ProductRepository provides operations for managing persisted embedding
// records. Implementations must be thread-safe and support concurrent access.
//
// The repository is the hand-off point between the offline embedding
// generation job (writer) and the in-memory vector index (reader): the job
// writes records, the index reads them all once at load time. There is no
// live update path; catalog changes require a rebuild and an index reload.
type ProductRepository interface {
	// PutEmbeddingRecords inserts or replaces embedding records, keyed by
	// the entry ID. Records are validated before writing.
	PutEmbeddingRecords(ctx context.Context, records ...*core.EmbeddingRecord) error

	// GetEmbeddingRecord retrieves a single embedding record by entry ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetEmbeddingRecord(ctx context.Context, id core.ID) (*core.EmbeddingRecord, error)

	// AllEmbeddingRecords retrieves every persisted embedding record in
	// stable key order. Returns an empty slice for an empty repository.
	AllEmbeddingRecords(ctx context.Context) ([]*core.EmbeddingRecord, error)

	// CountEmbeddingRecords returns the number of persisted records.
	CountEmbeddingRecords(ctx context.Context) (int, error)

	// DeleteEmbeddingRecords removes embedding records by their entry IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteEmbeddingRecords(ctx context.Context, ids ...core.ID) error

	// Close closes the repository and releases resources.
	Close() error
}
