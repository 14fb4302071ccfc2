package vector

import (
	"context"
)

// Document represents a logical document stored with an importance-weighted
// vector.
type Document struct {
	// ID is the logical identifier of the document; it must be set on insert.
	ID string

	// Content holds the main text/body of the document.
	Content string

	// Metadata is an opaque JSON or structured payload associated with the
	// document, modeled as a raw string to avoid a dependency on a particular
	// JSON library.
	Metadata string

	// Embedding carries the raw embedding on writes. On reads it carries the
	// fixed-width stored vector instead (unit-norm prefix plus importance
	// slot), since the raw embedding is not retained.
	Embedding []float32

	// Importance is the ranking weight in [0, 1] folded into the stored
	// vector's trailing slot. Stores decode it back on reads.
	Importance float64
}

// Store defines the application-level API over importance-weighted vectors.
// Implementations in this module use SQLite or Postgres/pgvector for durable
// storage; the vector content itself is produced by the weight package.
type Store interface {
	// AddDocuments encodes each document's embedding together with its
	// importance and upserts the resulting stored vectors, returning the
	// document IDs in input order. A document whose ID already exists is
	// replaced wholesale, and a batch lands atomically.
	AddDocuments(ctx context.Context, docs []Document) ([]string, error)

	// SimilaritySearch ranks stored vectors against the raw query embedding
	// and returns up to k documents, most similar first. The query is encoded
	// with a neutral importance slot, so the stored weight influences ranking
	// only through the stored vector's geometry.
	SimilaritySearch(ctx context.Context, queryEmbedding []float32, k int) ([]Document, error)

	// Reweight replaces the importance of the stored vector for the given
	// document, rewriting the vector wholesale while preserving its semantic
	// direction. Reweighting an unknown ID is an error.
	Reweight(ctx context.Context, id string, importance float64) error

	// Remove deletes the document with the given ID. Removing an absent ID
	// is a no-op.
	Remove(ctx context.Context, id string) error
}
