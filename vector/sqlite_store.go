package vector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/weighted-vec/weight"
)

// SQLiteStore implements Store over a SQLite database. Stored vectors are
// kept as BLOBs and ranked with the vec_cosine SQL function, so callers must
// register the engine package's vector functions before opening connections
// that run SimilaritySearch.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed Store and ensures the docs schema
// exists in the provided database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("vector: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// AddDocuments encodes each document's embedding with its importance and
// upserts the resulting stored vectors: a document whose ID already exists
// is replaced wholesale. Document.ID must be non-empty.
func (s *SQLiteStore) AddDocuments(ctx context.Context, docs []Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO docs(id, content, meta, stored) VALUES(?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET content = excluded.content, meta = excluded.meta, stored = excluded.stored`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("vector: Document.ID must be set in AddDocuments")
		}
		stored, err := weight.Encode(d.Embedding, d.Importance)
		if err != nil {
			return nil, fmt.Errorf("vector: document %q: %w", d.ID, err)
		}
		blob, err := EncodeStored(stored)
		if err != nil {
			return nil, err
		}
		if _, err := stmt.ExecContext(ctx, d.ID, d.Content, d.Metadata, blob); err != nil {
			return nil, err
		}
		ids = append(ids, d.ID)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// SimilaritySearch encodes the raw query embedding with a neutral importance
// slot and returns up to k documents ordered by descending full-width cosine
// similarity. Each returned Document carries its stored vector and the
// decoded importance.
func (s *SQLiteStore) SimilaritySearch(ctx context.Context, queryEmbedding []float32, k int) ([]Document, error) {
	if k <= 0 {
		return nil, nil
	}
	if len(queryEmbedding) == 0 {
		return nil, fmt.Errorf("vector: empty query embedding")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	qBlob, err := EncodeStored(weight.EncodeQuery(queryEmbedding))
	if err != nil {
		return nil, err
	}

	// vec_cosine yields NULL for zero-magnitude operands; DESC ordering sinks
	// those rows below every scored match.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, meta, stored FROM docs ORDER BY vec_cosine(stored, ?) DESC LIMIT ?`,
		qBlob, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		var blob []byte
		if err := rows.Scan(&d.ID, &d.Content, &d.Metadata, &blob); err != nil {
			return nil, err
		}
		stored, err := DecodeStored(blob)
		if err != nil {
			return nil, err
		}
		importance, err := weight.Importance(stored)
		if err != nil {
			return nil, fmt.Errorf("vector: document %q: %w", d.ID, err)
		}
		d.Embedding = stored
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
func (s *SQLiteStore) Reweight(ctx context.Context, id string, importance float64) error {
	if id == "" {
		return fmt.Errorf("vector: Reweight called with empty id")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT stored FROM docs WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return fmt.Errorf("vector: document %q not found", id)
	}
	if err != nil {
		return err
	}
	stored, err := DecodeStored(blob)
	if err != nil {
		return err
	}
	reweighted, err := weight.Reweight(stored, importance)
	if err != nil {
		return fmt.Errorf("vector: document %q: %w", id, err)
	}
	newBlob, err := EncodeStored(reweighted)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE docs SET stored = ? WHERE id = ?`, newBlob, id)
	return err
}

// Remove deletes a document by ID from the docs table. Removing an absent
// ID is a no-op.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("vector: Remove called with empty id")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM docs WHERE id = ?`, id)
	return err
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
