package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/prodmatch/ai"
	"github.com/poiesic/prodmatch/core"
	"github.com/poiesic/prodmatch/index"
)

// Default search parameters.
const (
	DefaultTopK        = 5
	DefaultMaxDistance = 1.0
)

// Searcher resolves free-text product descriptions against the catalog
// index: input correction, semantic nearest-neighbor ranking, and a lexical
// fuzzy fallback when semantic search yields nothing.
//
// Searches are stateless beyond the shared immutable store, so a single
// Searcher is safe for concurrent use.
type Searcher struct {
	handle      *index.Handle
	embedder    ai.Embedder
	corrector   *Corrector
	topK        int
	maxDistance float64
	logger      *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithTopK sets the maximum number of matches returned per ranking.
// Default is DefaultTopK.
func WithTopK(topK int) Option {
	return func(s *Searcher) error {
		if topK < 1 {
			return ErrInvalidTopK
		}
		s.topK = topK
		return nil
	}
}

// WithMaxDistance sets the semantic distance threshold. Candidates at or
// beyond it are not semantically plausible and trigger the fuzzy fallback.
// Default is DefaultMaxDistance.
func WithMaxDistance(maxDistance float64) Option {
	return func(s *Searcher) error {
		if maxDistance <= 0 {
			return ErrInvalidMaxDistance
		}
		s.maxDistance = maxDistance
		return nil
	}
}

// WithCorrectionCutoff sets the input-correction similarity cutoff.
// Default is DefaultCorrectionCutoff.
func WithCorrectionCutoff(cutoff float64) Option {
	return func(s *Searcher) error {
		s.corrector = NewCorrector(cutoff)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over the published store.
func NewSearcher(handle *index.Handle, provider ai.Provider, opts ...Option) (*Searcher, error) {
	if handle == nil {
		return nil, ErrIndexHandleRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		handle:      handle,
		embedder:    provider.Embedder(),
		corrector:   NewCorrector(DefaultCorrectionCutoff),
		topK:        DefaultTopK,
		maxDistance: DefaultMaxDistance,
		logger:      slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search resolves a raw product description to ranked catalog candidates.
func (s *Searcher) Search(ctx context.Context, rawQuery string) *core.SearchResult {
	return s.SearchWithMonitor(ctx, rawQuery, nil)
}

// SearchWithMonitor resolves a raw product description with monitoring.
// The monitor receives callbacks at each stage of the search process.
//
// The result is always well-formed. Embedding-provider and store failures
// are caught here and degrade to empty match lists: the calling agent must
// treat "no match" and "search failure" identically, and a single bad query
// must never take down a long-running session.
func (s *Searcher) SearchWithMonitor(ctx context.Context, rawQuery string, monitor SearchMonitor) *core.SearchResult {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	rawQuery = strings.TrimSpace(rawQuery)
	monitor.Start(rawQuery)

	result := &core.SearchResult{
		QueryOriginal:   rawQuery,
		QueryUsed:       rawQuery,
		SemanticMatches: []core.RankedMatch{},
		FuzzyMatches:    []core.RankedMatch{},
	}

	store := s.handle.Load()
	if store == nil {
		s.logger.Error("no vector store published, returning empty result", "query", rawQuery)
		monitor.Finish(result)
		return result
	}

	// 1. Correct the input against the catalog vocabulary
	corrected := s.corrector.Correct(rawQuery, store.Vocabulary())
	if corrected != rawQuery {
		s.logger.Info("query corrected", "original", rawQuery, "corrected", corrected)
	}
	result.QueryUsed = corrected
	monitor.AfterCorrection(rawQuery, corrected)

	// 2. Embed the corrected query
	queryVector, err := s.embedder.EmbedText(ctx, corrected)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", corrected, "err", err)
		monitor.Finish(result)
		return result
	}
	monitor.AfterEmbedding(len(queryVector))

	// 3. Rank semantically
	semantic, err := RankSemantic(queryVector, store, s.topK, s.maxDistance)
	if err != nil {
		s.logger.Error("error ranking semantic candidates", "err", err)
		monitor.Finish(result)
		return result
	}
	result.SemanticMatches = semantic
	monitor.AfterSemanticSearch(semantic)

	// 4. Fuzzy fallback when nothing is semantically plausible
	if len(semantic) == 0 {
		s.logger.Info("no semantic matches found, falling back to fuzzy matching", "query", corrected)
		result.FuzzyMatches = RankFuzzy(corrected, store, s.topK)
		monitor.AfterFuzzyFallback(result.FuzzyMatches)
	}

	monitor.Finish(result)
	return result
}
