package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorBytesRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		vector []float32
	}{
		{"empty vector", []float32{}},
		{"single element", []float32{1.5}},
		{"typical vector", []float32{0.1, -0.25, 3.75, 0, 1e-7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := VectorBytes(tt.vector)
			require.Len(t, bs, len(tt.vector)*4)

			decoded, err := VectorFromBytes(bs)
			require.NoError(t, err)
			assert.Equal(t, tt.vector, decoded)
		})
	}
}

func TestVectorBytesLittleEndianLayout(t *testing.T) {
	// 1.0 as little-endian IEEE 754 float32; this layout must match what
	// numpy-style tooling writes with astype(float32).tobytes().
	bs := VectorBytes([]float32{1.0})
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, bs)
}

func TestVectorFromBytesMalformed(t *testing.T) {
	_, err := VectorFromBytes([]byte{0x00, 0x00, 0x80})
	assert.ErrorIs(t, err, ErrMalformedVectorBytes)
}
