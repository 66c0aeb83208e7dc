package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/poiesic/prodmatch/ai/mock"
	"github.com/poiesic/prodmatch/core"
	"github.com/poiesic/prodmatch/storage"
	"github.com/poiesic/prodmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) storage.ProductRepository {
	t.Helper()

	products, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		products.Close()
		backend.Close()
	})

	return products
}

func TestNewPipeline(t *testing.T) {
	products := setupTestRepository(t)
	provider := mock.NewMockProvider()

	t.Run("valid pipeline", func(t *testing.T) {
		pipeline, err := NewPipeline(products, provider)
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		defer pipeline.Release()

		assert.NotNil(t, pipeline.products)
		assert.NotNil(t, pipeline.pool)
		assert.Equal(t, DefaultBatchSize, pipeline.batchSize)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewPipeline(nil, provider)
		assert.Equal(t, ErrProductRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPipeline(products, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestPipeline_WithOptions(t *testing.T) {
	products := setupTestRepository(t)
	provider := mock.NewMockProvider()

	t.Run("with pool size", func(t *testing.T) {
		pipeline, err := NewPipeline(products, provider, WithPoolSize(4))
		require.NoError(t, err)
		defer pipeline.Release()

		assert.NotNil(t, pipeline.pool)
	})

	t.Run("with pool size zero defaults to 1", func(t *testing.T) {
		pipeline, err := NewPipeline(products, provider, WithPoolSize(0))
		require.NoError(t, err)
		defer pipeline.Release()
	})

	t.Run("with batch size", func(t *testing.T) {
		pipeline, err := NewPipeline(products, provider, WithBatchSize(8))
		require.NoError(t, err)
		defer pipeline.Release()

		assert.Equal(t, 8, pipeline.batchSize)
	})

	t.Run("with custom logger", func(t *testing.T) {
		logger := slog.Default()
		pipeline, err := NewPipeline(products, provider, WithLogger(logger))
		require.NoError(t, err)
		defer pipeline.Release()

		assert.Equal(t, logger, pipeline.logger)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		pipeline, err := NewPipeline(products, provider, WithLogger(nil))
		require.NoError(t, err)
		defer pipeline.Release()

		assert.NotNil(t, pipeline.logger)
	})
}

func TestPipeline_Ingest(t *testing.T) {
	ctx := context.Background()

	t.Run("persists records for all entries", func(t *testing.T) {
		products := setupTestRepository(t)
		pipeline, err := NewPipeline(products, mock.NewMockProvider(), WithPoolSize(2), WithBatchSize(2))
		require.NoError(t, err)
		defer pipeline.Release()

		entries := make([]*core.CatalogEntry, 5)
		for i := range entries {
			entries[i] = &core.CatalogEntry{
				Id:          core.ID(i + 1),
				Code:        fmt.Sprintf("EAN%d", i+1),
				Description: fmt.Sprintf("Product %d", i+1),
			}
		}

		err = pipeline.Ingest(ctx, entries)
		require.NoError(t, err)

		count, err := products.CountEmbeddingRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, count)

		record, err := products.GetEmbeddingRecord(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "EAN3", record.Entry.Code)
		assert.Equal(t, "Product 3", record.Entry.Description)
		assert.NotEmpty(t, record.Vector)
	})

	t.Run("derives IDs from the product code", func(t *testing.T) {
		products := setupTestRepository(t)
		pipeline, err := NewPipeline(products, mock.NewMockProvider())
		require.NoError(t, err)
		defer pipeline.Release()

		entries := []*core.CatalogEntry{
			{Code: "4006381333931", Description: "Mineral water 500ml"},
		}

		err = pipeline.Ingest(ctx, entries)
		require.NoError(t, err)

		wantID := core.IDFromContent("4006381333931")
		record, err := products.GetEmbeddingRecord(ctx, wantID)
		require.NoError(t, err)
		assert.Equal(t, wantID, record.Entry.Id)
	})

	t.Run("re-ingesting replaces records", func(t *testing.T) {
		products := setupTestRepository(t)
		pipeline, err := NewPipeline(products, mock.NewMockProvider())
		require.NoError(t, err)
		defer pipeline.Release()

		entries := []*core.CatalogEntry{
			{Id: 1, Code: "EAN1", Description: "Harry Potter book"},
		}

		require.NoError(t, pipeline.Ingest(ctx, entries))
		require.NoError(t, pipeline.Ingest(ctx, entries))

		count, err := products.CountEmbeddingRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		products := setupTestRepository(t)
		pipeline, err := NewPipeline(products, mock.NewMockProvider())
		require.NoError(t, err)
		defer pipeline.Release()

		require.NoError(t, pipeline.Ingest(ctx, nil))

		count, err := products.CountEmbeddingRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("invalid entry fails before any provider call", func(t *testing.T) {
		products := setupTestRepository(t)
		embedder := mock.NewMockEmbedder()
		pipeline, err := NewPipeline(products, mock.NewMockProviderWithEmbedder(embedder))
		require.NoError(t, err)
		defer pipeline.Release()

		entries := []*core.CatalogEntry{
			{Id: 1, Code: "EAN1", Description: ""},
		}

		err = pipeline.Ingest(ctx, entries)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrEmptyDescription)
		assert.Equal(t, 0, embedder.CallCount())
	})

	t.Run("embedder error surfaces", func(t *testing.T) {
		products := setupTestRepository(t)
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(_ context.Context, _ []string) ([][]float32, error) {
			return nil, errors.New("provider unavailable")
		}
		pipeline, err := NewPipeline(products, mock.NewMockProviderWithEmbedder(embedder))
		require.NoError(t, err)
		defer pipeline.Release()

		entries := []*core.CatalogEntry{
			{Id: 1, Code: "EAN1", Description: "Harry Potter book"},
		}

		err = pipeline.Ingest(ctx, entries)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider unavailable")
	})

	t.Run("embedding count mismatch surfaces", func(t *testing.T) {
		products := setupTestRepository(t)
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
			return make([][]float32, len(texts)+1), nil
		}
		pipeline, err := NewPipeline(products, mock.NewMockProviderWithEmbedder(embedder))
		require.NoError(t, err)
		defer pipeline.Release()

		entries := []*core.CatalogEntry{
			{Id: 1, Code: "EAN1", Description: "Harry Potter book"},
		}

		err = pipeline.Ingest(ctx, entries)
		assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
	})
}

func TestPipeline_Release(t *testing.T) {
	products := setupTestRepository(t)
	pipeline, err := NewPipeline(products, mock.NewMockProvider())
	require.NoError(t, err)

	// Release should not panic
	pipeline.Release()

	// Multiple releases should not panic
	pipeline.Release()
}
