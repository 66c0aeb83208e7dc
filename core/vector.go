package core

import (
	"fmt"

	"github.com/mus-format/mus-go/raw"
)

const float32Width = 4

// VectorBytes encodes an embedding vector as raw little-endian float32
// bytes. This is the interchange layout produced by the embedding
// generation job, so indexes written by external tooling load unchanged.
func VectorBytes(vector []float32) []byte {
	bs := make([]byte, len(vector)*float32Width)
	n := 0
	for _, f := range vector {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return bs
}

// VectorFromBytes decodes a raw little-endian float32 payload back into
// an embedding vector. Returns ErrMalformedVectorBytes if the payload
// length is not a multiple of the float32 width.
func VectorFromBytes(bs []byte) ([]float32, error) {
	if len(bs)%float32Width != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedVectorBytes, len(bs))
	}

	vector := make([]float32, len(bs)/float32Width)
	n := 0
	for i := range vector {
		f, n1, err := raw.Float32.Unmarshal(bs[n:])
		if err != nil {
			return nil, err
		}
		vector[i] = f
		n += n1
	}
	return vector, nil
}
