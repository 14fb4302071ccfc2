package weight

import "github.com/viant/vec/search"

// Normalize rescales v to unit Euclidean norm and returns the result as a new
// slice; the input is not modified. An all-zero input yields a same-length
// all-zero slice rather than an error: a zero embedding is a valid degenerate
// input, not a caller mistake.
func Normalize(v []float32) []float32 {
	out := make([]float32, len(v))
	if len(v) == 0 {
		return out
	}
	magnitude := search.Float32s(v).Magnitude()
	if magnitude == 0 {
		return out
	}
	for i, x := range v {
		out[i] = x / magnitude
	}
	return out
}
