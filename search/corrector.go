package search

import (
	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCorrectionCutoff is the minimum sequence ratio at which a
// vocabulary entry is considered close enough to replace the raw query.
const DefaultCorrectionCutoff = 0.6

// Corrector normalizes a noisy query string against the catalog
// vocabulary. Typed and OCR-extracted descriptions carry typos that
// embeddings are sensitive to; snapping the query to a known description
// before embedding measurably improves recall.
type Corrector struct {
	cutoff float64
}

// NewCorrector creates a corrector with the given similarity cutoff.
// A cutoff outside (0, 1] falls back to DefaultCorrectionCutoff.
func NewCorrector(cutoff float64) *Corrector {
	if cutoff <= 0 || cutoff > 1 {
		cutoff = DefaultCorrectionCutoff
	}
	return &Corrector{cutoff: cutoff}
}

// Correct returns the single vocabulary entry closest to raw under the
// sequence-matching ratio, when that ratio reaches the cutoff; otherwise
// raw is returned unchanged. Deterministic: ties go to the first
// vocabulary entry encountered.
func (c *Corrector) Correct(raw string, vocabulary []string) string {
	if raw == "" || len(vocabulary) == 0 {
		return raw
	}

	// Seq2 is fixed to the query so the matcher reuses its index across
	// the vocabulary scan; the cheap ratio bounds prune non-candidates
	// before the full quadratic ratio runs.
	matcher := difflib.NewMatcher(nil, splitChars(raw))

	best := ""
	bestRatio := 0.0
	for _, candidate := range vocabulary {
		matcher.SetSeq1(splitChars(candidate))
		if matcher.RealQuickRatio() < c.cutoff || matcher.QuickRatio() < c.cutoff {
			continue
		}
		if ratio := matcher.Ratio(); ratio >= c.cutoff && ratio > bestRatio {
			best = candidate
			bestRatio = ratio
		}
	}

	if best == "" {
		return raw
	}
	return best
}

// splitChars splits a string into per-rune elements for character-level
// sequence matching.
func splitChars(s string) []string {
	chars := make([]string, 0, len(s))
	for _, r := range s {
		chars = append(chars, string(r))
	}
	return chars
}
