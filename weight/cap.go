package weight

// MaxDimension is the hard upper bound on vector width imposed by the
// downstream ANN index.
const MaxDimension = 4096

// EffectiveDimension returns the width of the stored (and query) vector for a
// raw embedding of dimension d. One extra slot holds the importance weight,
// except at the cap, where the last raw dimension is sacrificed to make room
// for it. The result never exceeds MaxDimension.
func EffectiveDimension(d int) int {
	if d >= MaxDimension {
		return MaxDimension
	}
	return d + 1
}

// capEmbedding drops the trailing raw dimensions of an embedding that already
// fills the cap, so that appending the importance slot never pushes the
// vector past MaxDimension. Shorter embeddings pass through unchanged.
func capEmbedding(v []float32) []float32 {
	if len(v) >= MaxDimension {
		return v[:MaxDimension-1]
	}
	return v
}
