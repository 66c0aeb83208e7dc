package search

import (
	"cmp"
	"slices"
	"sort"
	"strings"

	"github.com/poiesic/prodmatch/core"
	"github.com/poiesic/prodmatch/index"
	"github.com/xrash/smetrics"
)

// RankFuzzy scores every catalog description against the query with a
// token-order-insensitive similarity ratio on a 0-100 scale and returns the
// topK by descending score, ties broken by store order. It runs only when
// semantic search produced no candidate under the distance threshold.
//
// This is a deliberate linear scan: catalogs are hundreds to low thousands
// of entries and fallback invocation is rare, so an inverted index would not
// pay for itself.
func RankFuzzy(query string, store *index.VectorStore, topK int) []core.RankedMatch {
	if store == nil || store.Size() == 0 || topK <= 0 {
		return []core.RankedMatch{}
	}

	sortedQuery := sortTokens(query)

	type scored struct {
		row   int
		score float64
	}
	all := make([]scored, store.Size())
	for i, entry := range store.Entries() {
		all[i] = scored{row: i, score: indelRatio(sortedQuery, sortTokens(entry.Description))}
	}

	// Stable sort keeps store order on equal scores.
	slices.SortStableFunc(all, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	if len(all) > topK {
		all = all[:topK]
	}

	matches := make([]core.RankedMatch, len(all))
	for i, s := range all {
		entry := store.Entry(s.row)
		matches[i] = core.RankedMatch{
			Id:          entry.Id,
			Code:        entry.Code,
			Description: entry.Description,
			Score:       round2(s.score),
			RawMetric:   round2(s.score),
		}
	}
	return matches
}

// sortTokens lowercases the text, splits it into whitespace-separated
// tokens, sorts them, and rejoins, so "red large shirt" and "large shirt
// red" compare equal.
func sortTokens(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// indelRatio is the normalized insert/delete similarity of two strings on a
// 0-100 scale. Substitutions cost 2 (a delete plus an insert), which makes
// the Wagner-Fischer distance the indel distance the ratio normalizes.
func indelRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return (1 - float64(dist)/float64(len(a)+len(b))) * 100
}
