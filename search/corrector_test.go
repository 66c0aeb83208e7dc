package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrector_Correct(t *testing.T) {
	corrector := NewCorrector(DefaultCorrectionCutoff)

	t.Run("corrects noisy query toward known description", func(t *testing.T) {
		vocab := []string{"Harry Potter book", "Mineral water 500ml"}
		got := corrector.Correct("harry poter", vocab)
		assert.Equal(t, "Harry Potter book", got)
	})

	t.Run("returns raw when nothing is close enough", func(t *testing.T) {
		vocab := []string{"Harry Potter book", "Mineral water 500ml"}
		got := corrector.Correct("xyzzy", vocab)
		assert.Equal(t, "xyzzy", got)
	})

	t.Run("ties go to the first vocabulary entry", func(t *testing.T) {
		vocab := []string{"abcde", "abcdf"}
		got := corrector.Correct("abcd", vocab)
		assert.Equal(t, "abcde", got)
	})

	t.Run("empty vocabulary", func(t *testing.T) {
		got := corrector.Correct("harry poter", nil)
		assert.Equal(t, "harry poter", got)
	})

	t.Run("empty query", func(t *testing.T) {
		got := corrector.Correct("", []string{"Harry Potter book"})
		assert.Equal(t, "", got)
	})

	t.Run("exact match stays itself", func(t *testing.T) {
		vocab := []string{"Mineral water 500ml", "Harry Potter book"}
		got := corrector.Correct("Harry Potter book", vocab)
		assert.Equal(t, "Harry Potter book", got)
	})
}

func TestNewCorrector_InvalidCutoff(t *testing.T) {
	// Out-of-range cutoffs fall back to the default instead of disabling
	// correction entirely.
	corrector := NewCorrector(-1)
	got := corrector.Correct("harry poter", []string{"Harry Potter book"})
	assert.Equal(t, "Harry Potter book", got)
}
