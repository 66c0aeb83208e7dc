package search

import (
	"container/heap"
	"fmt"
	"math"
	"slices"

	"github.com/poiesic/prodmatch/core"
	"github.com/poiesic/prodmatch/index"
)

// RankSemantic computes the Euclidean distance between the query vector and
// every row of the store's matrix, selects the topK smallest, and discards
// candidates at or beyond maxDistance. Surviving candidates are returned by
// ascending distance, ties broken by store order, with
// Score = 100/(1+distance) rounded to 2 decimals and RawMetric the distance
// rounded to 4.
//
// An empty store yields an empty result. A query vector whose length differs
// from the store dimensionality fails with ErrDimensionMismatch.
func RankSemantic(queryVector []float32, store *index.VectorStore, topK int, maxDistance float64) ([]core.RankedMatch, error) {
	if store == nil || store.Size() == 0 || topK <= 0 {
		return []core.RankedMatch{}, nil
	}
	if len(queryVector) != store.Dimensionality() {
		return nil, fmt.Errorf("%w: query has %d dimensions, store has %d",
			ErrDimensionMismatch, len(queryVector), store.Dimensionality())
	}

	// Single batched pass over the dense matrix, keeping only the current
	// topK in a bounded heap instead of sorting all N distances.
	dim := store.Dimensionality()
	matrix := store.Matrix()

	h := make(candidateHeap, 0, topK)
	for row := 0; row < store.Size(); row++ {
		base := row * dim
		var sum float64
		for j := 0; j < dim; j++ {
			d := float64(matrix[base+j]) - float64(queryVector[j])
			sum += d * d
		}
		cand := candidate{row: row, distance: math.Sqrt(sum)}

		if len(h) < topK {
			heap.Push(&h, cand)
		} else if cand.closerThan(h[0]) {
			h[0] = cand
			heap.Fix(&h, 0)
		}
	}

	selected := []candidate(h)
	slices.SortFunc(selected, func(a, b candidate) int {
		if a.closerThan(b) {
			return -1
		}
		return 1
	})

	matches := []core.RankedMatch{}
	for _, cand := range selected {
		if cand.distance >= maxDistance {
			break
		}
		entry := store.Entry(cand.row)
		matches = append(matches, core.RankedMatch{
			Id:          entry.Id,
			Code:        entry.Code,
			Description: entry.Description,
			Score:       round2(100 / (1 + cand.distance)),
			RawMetric:   round4(cand.distance),
		})
	}
	return matches, nil
}

type candidate struct {
	row      int
	distance float64
}

// closerThan reports whether c ranks ahead of other: smaller distance, or
// equal distance and earlier store order.
func (c candidate) closerThan(other candidate) bool {
	if c.distance != other.distance {
		return c.distance < other.distance
	}
	return c.row < other.row
}

// candidateHeap is a bounded max-heap: the worst retained candidate sits at
// the root so it can be evicted when a closer one arrives.
type candidateHeap []candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[j].closerThan(h[i]) }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)         { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
