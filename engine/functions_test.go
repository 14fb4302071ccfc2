package engine

import (
	"math"
	"testing"

	"github.com/viant/weighted-vec/vector"
	"github.com/viant/weighted-vec/weight"
)

func TestVecCosine(t *testing.T) {
	// Register globally before first connection so functions are available.
	if err := RegisterVectorFunctions(nil); err != nil {
		t.Fatalf("RegisterVectorFunctions failed: %v", err)
	}
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	aBlob, err := vector.EncodeStored([]float32{1, 0, 0})
	if err != nil {
		t.Fatalf("EncodeStored a failed: %v", err)
	}
	bBlob, err := vector.EncodeStored([]float32{0, 1, 0})
	if err != nil {
		t.Fatalf("EncodeStored b failed: %v", err)
	}
	cBlob, err := vector.EncodeStored([]float32{1, 0, 0})
	if err != nil {
		t.Fatalf("EncodeStored c failed: %v", err)
	}

	var sim float64
	if err := db.QueryRow(`SELECT vec_cosine(?, ?)`, aBlob, bBlob).Scan(&sim); err != nil {
		t.Fatalf("vec_cosine(a,b) query failed: %v", err)
	}
	if sim != 0 {
		t.Fatalf("vec_cosine(a,b) = %v, want 0", sim)
	}

	if err := db.QueryRow(`SELECT vec_cosine(?, ?)`, aBlob, cBlob).Scan(&sim); err != nil {
		t.Fatalf("vec_cosine(a,c) query failed: %v", err)
	}
	if math.Abs(sim-1) > 1e-9 {
		t.Fatalf("vec_cosine(a,c) = %v, want 1", sim)
	}
}

func TestVecCosine_ZeroMagnitudeIsNull(t *testing.T) {
	if err := RegisterVectorFunctions(nil); err != nil {
		t.Fatalf("RegisterVectorFunctions failed: %v", err)
	}
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	zeroBlob, err := vector.EncodeStored([]float32{0, 0, 0})
	if err != nil {
		t.Fatalf("EncodeStored zero failed: %v", err)
	}
	unitBlob, err := vector.EncodeStored([]float32{1, 0, 0})
	if err != nil {
		t.Fatalf("EncodeStored unit failed: %v", err)
	}

	var sim *float64
	if err := db.QueryRow(`SELECT vec_cosine(?, ?)`, zeroBlob, unitBlob).Scan(&sim); err != nil {
		t.Fatalf("vec_cosine(zero, unit) query failed: %v", err)
	}
	if sim != nil {
		t.Fatalf("vec_cosine(zero, unit) = %v, want NULL", *sim)
	}
}

func TestVecImportance(t *testing.T) {
	if err := RegisterVectorFunctions(nil); err != nil {
		t.Fatalf("RegisterVectorFunctions failed: %v", err)
	}
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	stored, err := weight.Encode([]float32{3, 4}, 0.5)
	if err != nil {
		t.Fatalf("weight.Encode failed: %v", err)
	}
	blob, err := vector.EncodeStored(stored)
	if err != nil {
		t.Fatalf("EncodeStored failed: %v", err)
	}

	var importance float64
	if err := db.QueryRow(`SELECT vec_importance(?)`, blob).Scan(&importance); err != nil {
		t.Fatalf("vec_importance query failed: %v", err)
	}
	if math.Abs(importance-0.5) > 1e-5 {
		t.Fatalf("vec_importance = %v, want 0.5", importance)
	}
}
