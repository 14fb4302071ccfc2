package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeStored encodes a stored vector into the BLOB representation persisted
// by the SQLite backend: a little-endian sequence of IEEE 754 float32 values
// with no length prefix. The width is recovered from the BLOB size on decode.
func EncodeStored(stored []float32) ([]byte, error) {
	if len(stored) == 0 {
		return nil, nil
	}
	out := make([]byte, 4*len(stored))
	off := 0
	for _, v := range stored {
		binary.LittleEndian.PutUint32(out[off:], math.Float32bits(v))
		off += 4
	}
	return out, nil
}

// DecodeStored decodes a BLOB produced by EncodeStored back into a stored
// vector.
func DecodeStored(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector: stored blob length %d is not a multiple of 4", len(b))
	}
	stored := make([]float32, len(b)/4)
	for i := range stored {
		stored[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return stored, nil
}
