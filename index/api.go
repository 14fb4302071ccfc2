package index

// Index defines a generic in-memory index over stored vectors with basic
// lifecycle methods: building from (id, vector) pairs, kNN queries, and
// binary serialization for persistence.
type Index interface {
	// Build constructs the index from the given ids and stored vectors.
	// ids and vectors must have the same length and a consistent width.
	Build(ids []string, vectors [][]float32) error

	// Query runs a kNN search with the provided query vector and returns up
	// to k matches as parallel slices of ids and scores, where a higher score
	// means more similar. The query must have the same fixed width as the
	// stored vectors (use weight.EncodeQuery on the raw embedding).
	Query(query []float32, k int) (ids []string, scores []float64, err error)

	// MarshalBinary serializes the index into a byte slice.
	MarshalBinary() ([]byte, error)

	// UnmarshalBinary reconstructs the index from a serialized byte slice.
	UnmarshalBinary(data []byte) error
}
