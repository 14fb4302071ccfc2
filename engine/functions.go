package engine

import (
	"database/sql"
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"

	sqlite "modernc.org/sqlite"
)

// RegisterVectorFunctions registers vec_cosine and vec_importance with the
// SQLite driver so they are available on connections opened after this call.
// Note: existing open connections will not see new functions.
//
// vec_cosine(stored, query) returns the cosine similarity of two vector
// BLOBs, or NULL when either operand is NULL or has zero magnitude; with
// ORDER BY ... DESC the NULL rows sink below every scored match.
// vec_importance(stored) returns the weight encoded in a stored vector's
// trailing slot.
func RegisterVectorFunctions(_ *sql.DB) error {
	// Idempotent registration; the driver rejects duplicates and we ignore
	// those errors.
	_ = sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, vecCosineImpl)
	_ = sqlite.RegisterDeterministicScalarFunction("vec_importance", 1, vecImportanceImpl)
	return nil
}

func asStored(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return decodeStored(v)
	default:
		return nil, fmt.Errorf("vec: unsupported argument type %T for stored vector; want BLOB", arg)
	}
}

func vecCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("vec_cosine: expected 2 arguments, got %d", len(args))
	}
	a, err := asStored(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asStored(args[1])
	if err != nil {
		return nil, err
	}
	if len(a) == 0 || len(b) == 0 {
		return nil, nil
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("vec_cosine: width mismatch %d vs %d", len(a), len(b))
	}
	var dot, na2, nb2 float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}
	if na2 == 0 || nb2 == 0 {
		return nil, nil
	}
	return dot / (math.Sqrt(na2) * math.Sqrt(nb2)), nil
}

func vecImportanceImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("vec_importance: expected 1 argument, got %d", len(args))
	}
	v, err := asStored(args[0])
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, nil
	}
	last := float64(v[len(v)-1])
	return last * last, nil
}

// decodeStored is a local copy of the vector package codec; the vector tests
// import engine, so engine cannot import vector without a cycle.
func decodeStored(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vec: invalid stored blob length %d", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v, nil
}
