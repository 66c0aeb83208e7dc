package prodmatch

import (
	"context"
	"testing"

	"github.com/poiesic/prodmatch/ai/mock"
	"github.com/poiesic/prodmatch/core"
	"github.com/poiesic/prodmatch/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	catalog, err := Open("", WithInMemory(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })

	return catalog
}

func ingestSampleEntries(t *testing.T, catalog *Catalog, entries ...*core.CatalogEntry) {
	t.Helper()

	pipeline, err := catalog.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	require.NoError(t, pipeline.Ingest(context.Background(), entries))
}

func TestCatalog_IngestLoadSearch(t *testing.T) {
	catalog := openTestCatalog(t)
	ctx := context.Background()

	ingestSampleEntries(t, catalog,
		&core.CatalogEntry{Id: 1, Code: "EAN1", Description: "Harry Potter book"},
		&core.CatalogEntry{Id: 2, Code: "EAN2", Description: "Mineral water 500ml"},
	)

	require.NoError(t, catalog.LoadIndex(ctx))

	// The mock embedder is deterministic, so a query equal to a stored
	// description lands exactly on its vector.
	result, err := catalog.SearchVectorizedProduct(ctx, "Harry Potter book")
	require.NoError(t, err)

	require.NotEmpty(t, result.SemanticMatches)
	assert.Equal(t, core.ID(1), result.SemanticMatches[0].Id)
	assert.Equal(t, 100.0, result.SemanticMatches[0].Score)
	assert.Equal(t, 0.0, result.SemanticMatches[0].RawMetric)
}

func TestCatalog_LoadIndexEmptyStore(t *testing.T) {
	catalog := openTestCatalog(t)

	err := catalog.LoadIndex(context.Background())
	assert.ErrorIs(t, err, index.ErrEmptySource)
	assert.Nil(t, catalog.IndexHandle().Load())
}

func TestCatalog_SearchBeforeLoadDegrades(t *testing.T) {
	catalog := openTestCatalog(t)

	result, err := catalog.SearchVectorizedProduct(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, result.SemanticMatches)
	assert.Empty(t, result.FuzzyMatches)
}

func TestCatalog_ReloadIndexPicksUpNewRecords(t *testing.T) {
	catalog := openTestCatalog(t)
	ctx := context.Background()

	ingestSampleEntries(t, catalog,
		&core.CatalogEntry{Id: 1, Code: "EAN1", Description: "Harry Potter book"},
	)
	require.NoError(t, catalog.LoadIndex(ctx))
	assert.Equal(t, 1, catalog.IndexHandle().Load().Size())

	ingestSampleEntries(t, catalog,
		&core.CatalogEntry{Id: 2, Code: "EAN2", Description: "Mineral water 500ml"},
	)
	require.NoError(t, catalog.ReloadIndex(ctx))
	assert.Equal(t, 2, catalog.IndexHandle().Load().Size())
}

func TestCatalog_FailedReloadKeepsPublishedStore(t *testing.T) {
	catalog := openTestCatalog(t)
	ctx := context.Background()

	ingestSampleEntries(t, catalog,
		&core.CatalogEntry{Id: 1, Code: "EAN1", Description: "Harry Potter book"},
	)
	require.NoError(t, catalog.LoadIndex(ctx))
	published := catalog.IndexHandle().Load()

	require.NoError(t, catalog.ProductRepository().DeleteEmbeddingRecords(ctx, 1))

	err := catalog.ReloadIndex(ctx)
	assert.ErrorIs(t, err, index.ErrEmptySource)
	assert.Same(t, published, catalog.IndexHandle().Load())
}
