// Package vector implements the semantic retrieval core: durable storage
// of per-paper embeddings and similarity ranking against a query vector.
package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Vectors are persisted as fixed-width little-endian IEEE-754 float32
// values so they round-trip exactly. Text encodings (JSON) lose precision
// and are treated as a correctness bug here.

// encodeVector serializes a vector to bytes. An empty vector encodes to nil.
func encodeVector(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

// decodeVector deserializes bytes produced by encodeVector. A nil or empty
// blob decodes to a nil vector.
func decodeVector(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("malformed vector blob: %d bytes is not a multiple of 4", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v, nil
}
