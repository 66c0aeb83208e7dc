package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/prodmatch/core"
	"github.com/poiesic/prodmatch/storage"
)

// ProductRepository implements storage.ProductRepository for BadgerDB.
type ProductRepository struct {
	backend *Backend
}

var _ storage.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates a new ProductRepository.
//
// Returns storage.ProductRepository interface to enforce abstraction.
func NewProductRepository(backend *Backend) (storage.ProductRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &ProductRepository{backend: backend}, nil
}

// Close is a no-op; the repository holds no resources beyond the backend,
// which is closed by its owner.
func (r *ProductRepository) Close() error {
	return nil
}

// PutEmbeddingRecords inserts or replaces embedding records keyed by entry ID.
func (r *ProductRepository) PutEmbeddingRecords(ctx context.Context, records ...*core.EmbeddingRecord) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateEmbeddingRecord(record); err != nil {
				return err
			}

			key := makeEmbeddingRecordKey(record.Entry.Id)
			value := storage.MarshalEmbeddingRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEmbeddingRecord retrieves a single embedding record by entry ID.
func (r *ProductRepository) GetEmbeddingRecord(ctx context.Context, id core.ID) (*core.EmbeddingRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var record *core.EmbeddingRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEmbeddingRecordKey(id))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			record, err = storage.UnmarshalEmbeddingRecord(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// AllEmbeddingRecords retrieves every persisted embedding record in key order.
func (r *ProductRepository) AllEmbeddingRecords(ctx context.Context) ([]*core.EmbeddingRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	records := []*core.EmbeddingRecord{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(embeddingRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.EmbeddingRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalEmbeddingRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountEmbeddingRecords returns the number of persisted records.
func (r *ProductRepository) CountEmbeddingRecords(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(embeddingRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteEmbeddingRecords removes embedding records by their entry IDs.
func (r *ProductRepository) DeleteEmbeddingRecords(ctx context.Context, ids ...core.ID) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEmbeddingRecordKey(id)
			if _, err := tx.Get(key); err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			} else if err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}
