package index

import (
	"context"
	"testing"

	"github.com/poiesic/prodmatch/core"
	"github.com/poiesic/prodmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id core.ID, code, description string, vector []float32) *core.EmbeddingRecord {
	return &core.EmbeddingRecord{
		Entry:  core.CatalogEntry{Id: id, Code: code, Description: description},
		Vector: vector,
	}
}

func TestNew(t *testing.T) {
	t.Run("builds matrix in record order", func(t *testing.T) {
		store, err := New([]*core.EmbeddingRecord{
			record(1, "EAN1", "Harry Potter book", []float32{0.1, 0.2}),
			record(2, "EAN2", "Mineral water 500ml", []float32{0.3, 0.4}),
		})
		require.NoError(t, err)

		assert.Equal(t, 2, store.Size())
		assert.Equal(t, 2, store.Dimensionality())
		assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, store.Matrix())
		assert.Equal(t, core.ID(1), store.Entry(0).Id)
		assert.Equal(t, core.ID(2), store.Entry(1).Id)
		assert.Equal(t, []float32{0.3, 0.4}, store.Row(1))
	})

	t.Run("empty record set yields empty store", func(t *testing.T) {
		store, err := New(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, store.Size())
		assert.Equal(t, 0, store.Dimensionality())
		assert.Empty(t, store.Entries())
	})

	t.Run("inconsistent dimensionality", func(t *testing.T) {
		_, err := New([]*core.EmbeddingRecord{
			record(1, "EAN1", "Harry Potter book", []float32{0.1, 0.2}),
			record(2, "EAN2", "Mineral water 500ml", []float32{0.3}),
		})
		assert.ErrorIs(t, err, ErrInconsistentVector)
	})

	t.Run("zero-length first vector", func(t *testing.T) {
		_, err := New([]*core.EmbeddingRecord{
			record(1, "EAN1", "Harry Potter book", nil),
		})
		assert.ErrorIs(t, err, ErrInconsistentVector)
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("from repository", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer backend.Close()

		require.NoError(t, repo.PutEmbeddingRecords(ctx,
			record(1, "EAN1", "Harry Potter book", []float32{0.1, 0.2}),
			record(2, "EAN2", "Mineral water 500ml", []float32{0.3, 0.4}),
		))

		store, err := Load(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, 2, store.Size())
		assert.Equal(t, []string{"Harry Potter book", "Mineral water 500ml"}, store.Vocabulary())
	})

	t.Run("empty source is a load error", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer backend.Close()

		_, err = Load(ctx, repo)
		assert.ErrorIs(t, err, ErrEmptySource)
	})

	t.Run("unreachable source is a load error", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		require.NoError(t, backend.Close())

		_, err = Load(ctx, repo)
		assert.Error(t, err)
	})
}

func TestHandle(t *testing.T) {
	empty, err := New(nil)
	require.NoError(t, err)

	t.Run("nil until published", func(t *testing.T) {
		h := NewHandle(nil)
		assert.Nil(t, h.Load())
	})

	t.Run("swap publishes new store", func(t *testing.T) {
		h := NewHandle(empty)
		assert.Same(t, empty, h.Load())

		next, err := New([]*core.EmbeddingRecord{
			record(1, "EAN1", "Harry Potter book", []float32{0.1}),
		})
		require.NoError(t, err)

		prev := h.Swap(next)
		assert.Same(t, empty, prev)
		assert.Same(t, next, h.Load())
	})
}
