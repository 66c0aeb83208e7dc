package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/prodmatch/ai"
	"github.com/poiesic/prodmatch/core"
	"github.com/poiesic/prodmatch/storage"
)

// DefaultBatchSize is the number of entries embedded per provider call.
const DefaultBatchSize = 64

// Pipeline generates and persists embedding records for catalog entries.
// Entries are embedded in batches on a worker pool; the pipeline is the
// writer side of the repository, the index loader is the reader.
type Pipeline struct {
	products  storage.ProductRepository
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithBatchSize sets the number of entries per embedding request.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = DefaultBatchSize
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new embedding-generation pipeline.
func NewPipeline(products storage.ProductRepository, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if products == nil {
		return nil, ErrProductRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		products:  products,
		embedder:  provider.Embedder(),
		pool:      pool,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest embeds the descriptions of the given entries and persists the
// resulting records. Entries without an ID get a content-based one derived
// from their product code. Batches run concurrently; Ingest blocks until
// all of them have completed and returns the combined error, if any.
func (p *Pipeline) Ingest(ctx context.Context, entries []*core.CatalogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	// Validate up front so a bad row fails the job before any provider call
	prepared := make([]core.CatalogEntry, len(entries))
	for i, entry := range entries {
		e := *entry
		if e.Id == 0 {
			e.Id = core.IDFromContent(e.Code)
		}
		if err := core.ValidateCatalogEntry(&e); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		prepared[i] = e
	}

	p.logger.Info("ingesting catalog entries", "entries", len(prepared), "batchSize", p.batchSize)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for start := 0; start < len(prepared); start += p.batchSize {
		end := min(start+p.batchSize, len(prepared))
		batch := prepared[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.processBatch(ctx, batch); err != nil {
				p.logger.Error("error processing batch", "start", start, "size", len(batch), "err", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	return errors.Join(errs...)
}

// processBatch embeds one slice of entries and writes the records.
func (p *Pipeline) processBatch(ctx context.Context, batch []core.CatalogEntry) error {
	texts := make([]string, len(batch))
	for i, entry := range batch {
		texts[i] = entry.Description
	}

	p.logger.Debug("generating embeddings for catalog entries", "entries", len(texts))
	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("generating embeddings: %w", err)
	}

	if len(embeddings) != len(batch) {
		return fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingCountMismatch, len(batch), len(embeddings))
	}

	records := make([]*core.EmbeddingRecord, len(batch))
	for i := range batch {
		records[i] = &core.EmbeddingRecord{
			Entry:  batch[i],
			Vector: embeddings[i],
		}
	}

	return p.products.PutEmbeddingRecords(ctx, records...)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
