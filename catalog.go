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


package prodmatch

import (
	"context"
	"log/slog"

	"github.com/poiesic/prodmatch/ai"
	"github.com/poiesic/prodmatch/ai/openai"
	"github.com/poiesic/prodmatch/core"
	"github.com/poiesic/prodmatch/index"
	"github.com/poiesic/prodmatch/ingestion"
	"github.com/poiesic/prodmatch/search"
	"github.com/poiesic/prodmatch/storage"
	"github.com/poiesic/prodmatch/storage/badger"
)

// Catalog wires the persisted embedding store, the AI provider, and the
// in-memory vector index behind a single handle. It is the entry point for
// both sides of the system: the ingestion job writing embedding records and
// the searcher resolving queries against the published index.
type Catalog struct {
	backend  *badger.Backend
	products storage.ProductRepository
	provider ai.Provider
	handle   *index.Handle
	logger   *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) CatalogOption {
	return func(o *catalogOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing the default
// OpenAI-compatible one. The catalog takes ownership and closes it.
func WithProvider(provider ai.Provider) CatalogOption {
	return func(o *catalogOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the backing store in memory, without files. Useful for
// tests and throwaway catalogs.
func WithInMemory() CatalogOption {
	return func(o *catalogOptions) {
		o.inMemory = true
	}
}

// Open opens (creating if necessary) a catalog at the given path.
// The vector index starts unpublished; call LoadIndex once records exist.
func Open(filePath string, opts ...CatalogOption) (*Catalog, error) {
	// Apply options
	options := &catalogOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create product repository
	products, err := badger.NewProductRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			products.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Catalog{
		backend:  backend,
		products: products,
		provider: provider,
		handle:   index.NewHandle(nil),
		logger:   slog.Default(),
	}, nil
}

// Close releases the provider, repositories, and backing store.
func (c *Catalog) Close() error {
	// Close AI provider first
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := c.products.Close(); err != nil {
		c.logger.Error("error closing product repository", "err", err)
		return err
	}

	// Close backend
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ProductRepository exposes the persisted embedding-record store.
func (c *Catalog) ProductRepository() storage.ProductRepository {
	return c.products
}

// IndexHandle exposes the swappable vector store reference.
func (c *Catalog) IndexHandle() *index.Handle {
	return c.handle
}

// LoadIndex builds a vector store from the persisted records and publishes
// it. Fails if the repository holds no records or the records carry
// inconsistent vector dimensions; the previously published store, if any,
// stays live in that case.
func (c *Catalog) LoadIndex(ctx context.Context) error {
	store, err := index.Load(ctx, c.products)
	if err != nil {
		return err
	}

	c.handle.Swap(store)
	c.logger.Info("vector index published",
		"entries", store.Size(), "dimensions", store.Dimensionality())
	return nil
}

// ReloadIndex rebuilds and atomically republishes the vector store after
// the embedding job has rewritten records. In-flight searches keep the
// store they started with.
func (c *Catalog) ReloadIndex(ctx context.Context) error {
	return c.LoadIndex(ctx)
}

// NewIngestionPipeline creates an embedding-generation pipeline writing to
// this catalog's store.
func (c *Catalog) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(c.products, c.provider, opts...)
}

// NewSearcher creates a searcher over the published index.
func (c *Catalog) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(c.handle, c.provider, opts...)
}

// SearchVectorizedProduct resolves a free-text product description against
// the published index with default search parameters. The result is always
// well-formed; failures degrade to empty match lists.
func (c *Catalog) SearchVectorizedProduct(ctx context.Context, query string) (*core.SearchResult, error) {
	searcher, err := c.NewSearcher()
	if err != nil {
		return nil, err
	}
	return searcher.Search(ctx, query), nil
}
