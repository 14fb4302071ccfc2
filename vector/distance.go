package vector

import (
	"fmt"

	"github.com/viant/vec/search"
)

// CosineSimilarity computes the cosine similarity between two fixed-width
// vectors. This is the metric the stores rank by: because a query vector
// carries a zero importance slot while a stored vector carries
// sqrt(importance), the stored weight enters the score only through the
// stored vector's magnitude.
//
// It returns an error for mismatched widths or a zero-magnitude operand.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: cosine similarity width mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: cosine similarity on empty vectors")
	}
	if search.Float32s(a).Magnitude() == 0 || search.Float32s(b).Magnitude() == 0 {
		return 0, fmt.Errorf("vector: cosine similarity with zero-magnitude vector")
	}
	return 1 - float64(search.Float32s(a).CosineDistance(b)), nil
}
