package weight

import "fmt"

// Importance recovers the weight encoded in a stored vector's trailing slot.
// The slot holds sqrt(importance), so squaring inverts the encoding exactly
// up to floating-point rounding.
func Importance(stored []float32) (float64, error) {
	if len(stored) == 0 {
		return 0, fmt.Errorf("weight: empty stored vector")
	}
	last := float64(stored[len(stored)-1])
	return last * last, nil
}

// Reweight replaces the importance of an already-encoded stored vector,
// returning a new stored vector. The prefix was capped and normalized at
// encode time, so re-encoding is a no-op on the semantic direction and only
// the trailing slot changes. The input is not modified.
func Reweight(stored []float32, importance float64) ([]float32, error) {
	if len(stored) < 2 {
		return nil, fmt.Errorf("weight: stored vector of width %d cannot carry an importance slot", len(stored))
	}
	return Encode(stored[:len(stored)-1], importance)
}
