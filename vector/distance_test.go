package vector

import (
	"math"
	"testing"

	"github.com/viant/weighted-vec/weight"
)

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	c := []float32{1, 0}

	// Orthogonal vectors -> similarity 0
	if sim, err := CosineSimilarity(a, b); err != nil || math.Abs(sim) > 1e-6 {
		t.Fatalf("CosineSimilarity(a,b) = %v, %v; want 0, nil", sim, err)
	}

	// Identical vectors -> similarity 1
	if sim, err := CosineSimilarity(a, c); err != nil || math.Abs(sim-1) > 1e-6 {
		t.Fatalf("CosineSimilarity(a,c) = %v, %v; want 1, nil", sim, err)
	}
}

// Cosine similarity is scale invariant, so operands of any magnitude score
// the same as their normalized forms.
func TestCosineSimilarity_UnnormalizedOperands(t *testing.T) {
	if sim, err := CosineSimilarity([]float32{2, 0}, []float32{5, 0}); err != nil || math.Abs(sim-1) > 1e-6 {
		t.Fatalf("CosineSimilarity([2 0],[5 0]) = %v, %v; want 1, nil", sim, err)
	}
	if sim, err := CosineSimilarity([]float32{3, 0}, []float32{0, 4}); err != nil || math.Abs(sim) > 1e-6 {
		t.Fatalf("CosineSimilarity([3 0],[0 4]) = %v, %v; want 0, nil", sim, err)
	}
	if sim, err := CosineSimilarity([]float32{3, 4}, []float32{6, 8}); err != nil || math.Abs(sim-1) > 1e-6 {
		t.Fatalf("CosineSimilarity([3 4],[6 8]) = %v, %v; want 1, nil", sim, err)
	}
}

func TestCosineSimilarity_Errors(t *testing.T) {
	if _, err := CosineSimilarity([]float32{1}, []float32{1, 2}); err == nil {
		t.Fatalf("width mismatch succeeded, want error")
	}
	if _, err := CosineSimilarity(nil, nil); err == nil {
		t.Fatalf("empty vectors succeeded, want error")
	}
	if _, err := CosineSimilarity([]float32{0, 0}, []float32{1, 0}); err == nil {
		t.Fatalf("zero magnitude succeeded, want error")
	}
}

// TestCosineSimilarity_ImportanceSlot pins down how the stored weight enters
// the ranking metric: the query's trailing slot is zero, so the importance
// slot never contributes to the dot product and acts only through the stored
// vector's magnitude.
func TestCosineSimilarity_ImportanceSlot(t *testing.T) {
	query := weight.EncodeQuery([]float32{1, 0})

	low, err := weight.Encode([]float32{1, 0}, 0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	high, err := weight.Encode([]float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	simLow, err := CosineSimilarity(query, low)
	if err != nil {
		t.Fatalf("CosineSimilarity(query, low) failed: %v", err)
	}
	simHigh, err := CosineSimilarity(query, high)
	if err != nil {
		t.Fatalf("CosineSimilarity(query, high) failed: %v", err)
	}

	if math.Abs(simLow-1) > 1e-5 {
		t.Fatalf("similarity at importance 0 = %v, want 1", simLow)
	}
	if want := 1 / math.Sqrt2; math.Abs(simHigh-want) > 1e-5 {
		t.Fatalf("similarity at importance 1 = %v, want %v", simHigh, want)
	}
}
