package weight

import (
	"fmt"
	"math"
)

// Encode produces the fixed-width vector persisted in the ANN index for the
// given raw embedding and importance weight. The embedding is capped at
// MaxDimension-1, normalized to unit norm, and extended with sqrt(importance)
// so the weight occupies its own trailing dimension. The resulting width is
// always EffectiveDimension(len(embedding)).
//
// importance must lie in [0, 1] and the embedding must be non-empty; both are
// validated so a bad weight surfaces as an error instead of a NaN slot.
func Encode(embedding []float32, importance float64) ([]float32, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("weight: empty embedding")
	}
	if math.IsNaN(importance) || importance < 0 || importance > 1 {
		return nil, fmt.Errorf("weight: importance %v outside [0, 1]", importance)
	}
	prefix := Normalize(capEmbedding(embedding))
	return append(prefix, float32(math.Sqrt(importance))), nil
}

// EncodeQuery produces the fixed-width vector used to query the index for the
// given raw embedding. The embedding passes through unnormalized and the
// trailing slot is zero, so the importance axis contributes nothing to the
// index's similarity comparison while query and stored widths stay aligned.
func EncodeQuery(embedding []float32) []float32 {
	capped := capEmbedding(embedding)
	out := make([]float32, len(capped)+1)
	copy(out, capped)
	return out
}
