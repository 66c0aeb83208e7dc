package search

import "github.com/poiesic/prodmatch/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterCorrection(original, used string)
	AfterEmbedding(dimensions int)
	AfterSemanticSearch(matches []core.RankedMatch)
	AfterFuzzyFallback(matches []core.RankedMatch)
	Finish(result *core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                            {}
func (n *noopMonitor) AfterCorrection(_, _ string)               {}
func (n *noopMonitor) AfterEmbedding(_ int)                      {}
func (n *noopMonitor) AfterSemanticSearch(_ []core.RankedMatch)  {}
func (n *noopMonitor) AfterFuzzyFallback(_ []core.RankedMatch)   {}
func (n *noopMonitor) Finish(_ *core.SearchResult)               {}
