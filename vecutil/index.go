package vecutil

import (
	"context"
	"fmt"

	"github.com/viant/weighted-vec/vector"
	"github.com/viant/weighted-vec/weight"
)

// Index provides a higher-level, text-in/text-out API over a vector.Store.
// It remains embedding-agnostic by requiring an EmbedFunc supplied by the
// caller.
type Index struct {
	Store vector.Store
	Embed EmbedFunc
}

// NewIndex constructs an Index over the given store and embedding function.
func NewIndex(store vector.Store, embed EmbedFunc) (*Index, error) {
	if store == nil {
		return nil, fmt.Errorf("vecutil: store is nil")
	}
	if embed == nil {
		return nil, fmt.Errorf("vecutil: EmbedFunc is nil")
	}
	return &Index{Store: store, Embed: embed}, nil
}

// Match represents a single similarity search hit.
type Match struct {
	ID      string
	Content string
	Meta    string

	// Score is the full-width cosine similarity the store ranks by; the
	// stored importance modulates it through vector magnitude.
	Score float64

	// Semantic is the cosine similarity of the raw embedding axes alone,
	// with the importance slot excluded from both operands.
	Semantic float64

	// Importance is the weight decoded from the stored vector.
	Importance float64
}

// UpsertText embeds content and stores it under id with the given importance.
func (ix *Index) UpsertText(ctx context.Context, id, content, meta string, importance float64) error {
	return UpsertDocumentText(ctx, ix.Store, ix.Embed, id, content, meta, importance)
}

// QueryText embeds the query text and returns up to k matches, most similar
// first, with the combined score, the importance-free semantic similarity,
// and the decoded importance reported separately. Zero-magnitude operands
// (degenerate embeddings) yield a zero for the affected similarity rather
// than an error.
func (ix *Index) QueryText(ctx context.Context, query string, k int) ([]Match, error) {
	if ix.Store == nil {
		return nil, fmt.Errorf("vecutil: Store is nil on Index")
	}
	if ix.Embed == nil {
		return nil, fmt.Errorf("vecutil: EmbedFunc is nil on Index")
	}

	qEmb, err := ix.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	docs, err := ix.Store.SimilaritySearch(ctx, qEmb, k)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	qVec := weight.EncodeQuery(qEmb)
	out := make([]Match, 0, len(docs))
	for _, d := range docs {
		stored := d.Embedding
		m := Match{
			ID:         d.ID,
			Content:    d.Content,
			Meta:       d.Metadata,
			Importance: d.Importance,
		}
		if len(stored) == len(qVec) {
			if score, err := vector.CosineSimilarity(qVec, stored); err == nil {
				m.Score = score
			}
			if semantic, err := vector.CosineSimilarity(qVec[:len(qVec)-1], stored[:len(stored)-1]); err == nil {
				m.Semantic = semantic
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// Reweight replaces the importance of a stored document without re-embedding
// its content.
func (ix *Index) Reweight(ctx context.Context, id string, importance float64) error {
	if ix.Store == nil {
		return fmt.Errorf("vecutil: Store is nil on Index")
	}
	return ix.Store.Reweight(ctx, id, importance)
}
