package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("7891234567895")
		id2 := IDFromContent("7891234567895")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content different IDs", func(t *testing.T) {
		id1 := IDFromContent("7891234567895")
		id2 := IDFromContent("7891234567896")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		id := IDFromContent("")
		assert.NotZero(t, id)
	})
}

func TestEmbeddingRecordMUSRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		record EmbeddingRecord
	}{
		{
			name: "record with vector",
			record: EmbeddingRecord{
				Entry: CatalogEntry{
					Id:          42,
					Code:        "7891234567895",
					Description: "Harry Potter book",
				},
				Vector: []float32{0.25, -1.5, 3.75, 0},
			},
		},
		{
			name: "record without vector",
			record: EmbeddingRecord{
				Entry: CatalogEntry{
					Id:          1,
					Code:        "EAN1",
					Description: "Mineral water 500ml",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := make([]byte, EmbeddingRecordMUS.Size(tt.record))
			n := EmbeddingRecordMUS.Marshal(tt.record, bs)
			require.Equal(t, len(bs), n)

			decoded, n, err := EmbeddingRecordMUS.Unmarshal(bs)
			require.NoError(t, err)
			assert.Equal(t, len(bs), n)
			assert.Equal(t, tt.record.Entry, decoded.Entry)
			assert.Equal(t, tt.record.Vector, decoded.Vector)
		})
	}
}

func TestEmbeddingRecordMUSUnmarshalTruncated(t *testing.T) {
	record := EmbeddingRecord{
		Entry:  CatalogEntry{Id: 7, Code: "EAN7", Description: "Olive oil 1l"},
		Vector: []float32{0.1, 0.2},
	}
	bs := make([]byte, EmbeddingRecordMUS.Size(record))
	EmbeddingRecordMUS.Marshal(record, bs)

	_, _, err := EmbeddingRecordMUS.Unmarshal(bs[:len(bs)-3])
	assert.Error(t, err)
}
