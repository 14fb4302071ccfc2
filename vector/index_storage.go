package vector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/weighted-vec/index"
)

// SaveIndex serializes idx and upserts it into the vector_index_storage table
// under the given name, so a rebuilt in-memory index survives restarts.
func SaveIndex(ctx context.Context, db *sql.DB, name string, idx index.Index) error {
	if db == nil {
		return fmt.Errorf("vector: db is nil")
	}
	if name == "" {
		return fmt.Errorf("vector: index name is empty")
	}
	data, err := idx.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
INSERT INTO vector_index_storage(name, data) VALUES(?, ?)
ON CONFLICT(name) DO UPDATE SET data = excluded.data`, name, data)
	return err
}

// LoadIndex restores a previously saved index blob into idx. It returns an
// error if no blob exists under the given name.
func LoadIndex(ctx context.Context, db *sql.DB, name string, idx index.Index) error {
	if db == nil {
		return fmt.Errorf("vector: db is nil")
	}
	var data []byte
	err := db.QueryRowContext(ctx, `SELECT data FROM vector_index_storage WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return fmt.Errorf("vector: no persisted index named %q", name)
	}
	if err != nil {
		return err
	}
	return idx.UnmarshalBinary(data)
}
