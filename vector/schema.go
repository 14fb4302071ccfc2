package vector

import (
	"database/sql"
	"fmt"

	"github.com/viant/weighted-vec/weight"
)

const docsSchema = `
CREATE TABLE IF NOT EXISTS docs (
    id TEXT PRIMARY KEY,
    content TEXT,
    meta TEXT,
    stored BLOB
);
`

const indexStorageSchema = `
CREATE TABLE IF NOT EXISTS vector_index_storage (
    name TEXT PRIMARY KEY,
    data BLOB
);
`

// EnsureSchema creates the SQLite docs table and the index-blob storage table
// in the provided database if they do not already exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(docsSchema); err != nil {
		return err
	}
	_, err := db.Exec(indexStorageSchema)
	return err
}

// PGSchema returns the DDL for the Postgres docs table. The vector column
// width is weight.EffectiveDimension(dim) for a raw embedding dimension dim:
// one slot wider than the embedding, except at the cap.
func PGSchema(dim int) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS docs (
    id TEXT PRIMARY KEY,
    content TEXT,
    meta TEXT,
    stored vector(%d)
)`, weight.EffectiveDimension(dim))
}

// EnsurePGSchema creates the pgvector extension and the docs table for the
// given raw embedding dimension on a Postgres database.
func EnsurePGSchema(db *sql.DB, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("vector: invalid embedding dimension %d", dim)
	}
	if _, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return err
	}
	_, err := db.Exec(PGSchema(dim))
	return err
}
