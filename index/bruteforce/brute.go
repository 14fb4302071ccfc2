package bruteforce

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/viant/vec/search"

	"github.com/viant/weighted-vec/weight"
)

// Index is an exact in-memory index over stored vectors scored by cosine
// similarity. Magnitudes are cached at build time so degenerate vectors are
// skipped without rescanning; the importance slot is part of the stored
// vector, so it contributes to every score.
type Index struct {
	ids  []string
	vecs [][]float32
	mags []float32
	dim  int
}

// Build loads ids and stored vectors and precomputes magnitudes. The width
// must be consistent and cannot exceed the index-wide dimension cap.
func (i *Index) Build(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("bruteforce: ids and vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	if len(ids) == 0 {
		i.ids, i.vecs, i.mags, i.dim = nil, nil, nil, 0
		return nil
	}
	dim := len(vectors[0])
	if dim > weight.MaxDimension {
		return fmt.Errorf("bruteforce: vector width %d exceeds cap %d", dim, weight.MaxDimension)
	}
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("bruteforce: inconsistent vector widths %d vs %d", len(vectors[j]), dim)
		}
	}
	mags := make([]float32, len(vectors))
	for j := range vectors {
		mags[j] = search.Float32s(vectors[j]).Magnitude()
	}
	i.ids = append([]string(nil), ids...)
	i.vecs = append([][]float32(nil), vectors...)
	i.mags = mags
	i.dim = dim
	return nil
}

// Query returns up to k ids ordered by decreasing cosine similarity to the
// query vector. Zero-magnitude stored vectors are skipped.
func (i *Index) Query(query []float32, k int) ([]string, []float64, error) {
	if i.dim == 0 || len(i.vecs) == 0 {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("bruteforce: query width %d != index width %d", len(query), i.dim)
	}
	q := search.Float32s(query)
	qm := q.Magnitude()
	if qm == 0 {
		return nil, nil, nil
	}

	type scored struct {
		idx   int
		score float64
	}
	candidates := make([]scored, 0, len(i.vecs))
	for j := range i.vecs {
		if i.mags[j] == 0 {
			continue
		}
		s := 1 - float64(q.CosineDistance(i.vecs[j]))
		if math.IsNaN(s) {
			continue
		}
		candidates = append(candidates, scored{idx: j, score: s})
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].score > candidates[b].score })
	if k <= 0 || k > len(candidates) {
		k = len(candidates)
	}
	outIDs := make([]string, k)
	outScores := make([]float64, k)
	for n := 0; n < k; n++ {
		outIDs[n] = i.ids[candidates[n].idx]
		outScores[n] = candidates[n].score
	}
	return outIDs, outScores, nil
}

// MarshalBinary serializes the index as: dim(uint32), n(uint32), then per
// item idLen(uint32), id bytes, vector(float32[dim]), all little-endian.
func (i *Index) MarshalBinary() ([]byte, error) {
	size := 8
	for idx := range i.ids {
		size += 4 + len(i.ids[idx]) + 4*i.dim
	}
	out := make([]byte, size)
	binary.LittleEndian.PutUint32(out[0:], uint32(i.dim))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(i.ids)))
	off := 8
	for idx, id := range i.ids {
		binary.LittleEndian.PutUint32(out[off:], uint32(len(id)))
		off += 4
		copy(out[off:], id)
		off += len(id)
		for _, v := range i.vecs[idx] {
			binary.LittleEndian.PutUint32(out[off:], math.Float32bits(v))
			off += 4
		}
	}
	return out, nil
}

// UnmarshalBinary restores the index from bytes produced by MarshalBinary.
func (i *Index) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("bruteforce: serialized index too short: %d bytes", len(data))
	}
	dim := int(binary.LittleEndian.Uint32(data[0:]))
	n := int(binary.LittleEndian.Uint32(data[4:]))
	off := 8
	ids := make([]string, n)
	vecs := make([][]float32, n)
	for idx := 0; idx < n; idx++ {
		if off+4 > len(data) {
			return fmt.Errorf("bruteforce: truncated id length at item %d", idx)
		}
		idLen := int(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		if off+idLen > len(data) {
			return fmt.Errorf("bruteforce: truncated id at item %d", idx)
		}
		ids[idx] = string(data[off : off+idLen])
		off += idLen
		if off+4*dim > len(data) {
			return fmt.Errorf("bruteforce: truncated vector at item %d", idx)
		}
		vec := make([]float32, dim)
		for j := 0; j < dim; j++ {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}
		vecs[idx] = vec
	}
	return i.Build(ids, vecs)
}
