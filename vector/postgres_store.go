package vector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/viant/weighted-vec/weight"
)

// PGStore implements Store over Postgres with the pgvector extension. The
// vector column is fixed-width, so the raw embedding dimension is declared up
// front and every write is validated against it. Ranking uses the native
// cosine distance operator (<=>), the same metric the SQLite backend computes
// through vec_cosine.
type PGStore struct {
	db  *sql.DB
	dim int
}

// NewPGStore creates a Postgres-backed Store for raw embeddings of dimension
// dim and ensures the pgvector extension and docs table exist.
func NewPGStore(db *sql.DB, dim int) (*PGStore, error) {
	if db == nil {
		return nil, fmt.Errorf("vector: db is nil")
	}
	if err := EnsurePGSchema(db, dim); err != nil {
		return nil, errors.Wrap(err, "failed to ensure pgvector schema")
	}
	return &PGStore{db: db, dim: dim}, nil
}

// AddDocuments encodes and upserts documents within a single transaction, so
// a batch either lands entirely or not at all. Embeddings must match the
// store's declared dimension so the encoded vectors fit the column width.
func (s *PGStore) AddDocuments(ctx context.Context, docs []Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	// Encode the whole batch before touching the database so validation
	// failures never open a transaction.
	ids := make([]string, 0, len(docs))
	vectors := make([]pgvector.Vector, 0, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("vector: Document.ID must be set in AddDocuments")
		}
		if len(d.Embedding) != s.dim {
			return nil, fmt.Errorf("vector: document %q embedding dimension %d, store expects %d", d.ID, len(d.Embedding), s.dim)
		}
		stored, err := weight.Encode(d.Embedding, d.Importance)
		if err != nil {
			return nil, fmt.Errorf("vector: document %q: %w", d.ID, err)
		}
		ids = append(ids, d.ID)
		vectors = append(vectors, pgvector.NewVector(stored))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO docs (id, content, meta, stored)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			content = EXCLUDED.content,
			meta = EXCLUDED.meta,
			stored = EXCLUDED.stored
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare upsert")
	}
	defer stmt.Close()

	for i, d := range docs {
		if _, err := stmt.ExecContext(ctx, d.ID, d.Content, d.Metadata, vectors[i]); err != nil {
			return nil, errors.Wrap(err, "failed to upsert document")
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit documents")
	}
	return ids, nil
}

// SimilaritySearch ranks stored vectors by cosine distance to the encoded
// query and returns up to k documents, most similar first.
func (s *PGStore) SimilaritySearch(ctx context.Context, queryEmbedding []float32, k int) ([]Document, error) {
	if k <= 0 {
		return nil, nil
	}
	if len(queryEmbedding) != s.dim {
		return nil, fmt.Errorf("vector: query embedding dimension %d, store expects %d", len(queryEmbedding), s.dim)
	}

	query := pgvector.NewVector(weight.EncodeQuery(queryEmbedding))

	// <=> computes cosine distance; ascending order puts the most similar
	// stored vector first.
	stmt := `
		SELECT id, content, meta, stored
		FROM docs
		ORDER BY stored <=> $1
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, stmt, query, k)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run similarity search")
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		var stored pgvector.Vector
		if err := rows.Scan(&d.ID, &d.Content, &d.Metadata, &stored); err != nil {
			return nil, errors.Wrap(err, "failed to scan document")
		}
		vec := stored.Slice()
		importance, err := weight.Importance(vec)
		if err != nil {
			return nil, fmt.Errorf("vector: document %q: %w", d.ID, err)
		}
		d.Embedding = vec
		d.Importance = importance
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Reweight loads the stored vector for the given document, replaces its
// importance slot, and writes the new vector back wholesale.
func (s *PGStore) Reweight(ctx context.Context, id string, importance float64) error {
	if id == "" {
		return fmt.Errorf("vector: Reweight called with empty id")
	}

	var stored pgvector.Vector
	err := s.db.QueryRowContext(ctx, `SELECT stored FROM docs WHERE id = $1`, id).Scan(&stored)
	if err == sql.ErrNoRows {
		return fmt.Errorf("vector: document %q not found", id)
	}
	if err != nil {
		return errors.Wrap(err, "failed to load stored vector")
	}

	reweighted, err := weight.Reweight(stored.Slice(), importance)
	if err != nil {
		return fmt.Errorf("vector: document %q: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx, `UPDATE docs SET stored = $1 WHERE id = $2`, pgvector.NewVector(reweighted), id)
	return errors.Wrap(err, "failed to update stored vector")
}

// Remove deletes a document by ID. Removing an absent ID is a no-op.
func (s *PGStore) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("vector: Remove called with empty id")
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM docs WHERE id = $1`, id)
	return errors.Wrap(err, "failed to delete document")
}

// Ensure PGStore satisfies the Store interface.
var _ Store = (*PGStore)(nil)
