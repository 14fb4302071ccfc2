package weightsync

import (
	"context"
	"database/sql"
	"fmt"
)

// StateTableDDL returns the DDL for the downstream sync-state table, which
// records the last SCN applied per dataset/shadow pair.
func StateTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS vec_sync_state (
    dataset_id   TEXT NOT NULL,
    shadow_table TEXT NOT NULL,
    last_scn     INTEGER NOT NULL,
    updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY(dataset_id, shadow_table)
);`
}

// FetchLogEntries reads change-log entries for the configured dataset and
// shadow table with SCN greater than afterSCN, oldest first. When
// cfg.BatchSize is positive at most that many entries are returned, so a
// consumer can drain the log in bounded batches. An empty logTable falls back
// to DefaultLogTable. The query uses ?-style placeholders and therefore
// targets SQLite-compatible drivers.
func FetchLogEntries(ctx context.Context, db *sql.DB, logTable string, cfg Config, afterSCN int64) ([]LogEntry, error) {
	if db == nil {
		return nil, fmt.Errorf("weightsync: db is nil")
	}
	if cfg.DatasetID == "" || cfg.ShadowTable == "" {
		return nil, fmt.Errorf("weightsync: Config.DatasetID and Config.ShadowTable must be set")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logTable == "" {
		logTable = DefaultLogTable
	}

	query := fmt.Sprintf(`SELECT dataset_id, shadow_table, scn, op, document_id, payload, created_at
FROM %s
WHERE dataset_id = ? AND shadow_table = ? AND scn > ?
ORDER BY scn`, logTable)
	args := []interface{}{cfg.DatasetID, cfg.ShadowTable, afterSCN}
	if cfg.BatchSize > 0 {
		query += ` LIMIT ?`
		args = append(args, cfg.BatchSize)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LogEntry
	for rows.Next() {
		var e LogEntry
		var created sql.NullTime
		if err := rows.Scan(&e.DatasetID, &e.ShadowTable, &e.SCN, &e.Op, &e.DocumentID, &e.Payload, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = created.Time
		out = append(out, e)
	}
	return out, rows.Err()
}

// SaveSyncState upserts the last applied SCN for a dataset/shadow pair on the
// downstream database.
func SaveSyncState(ctx context.Context, db *sql.DB, state SyncState) error {
	if db == nil {
		return fmt.Errorf("weightsync: db is nil")
	}
	if state.DatasetID == "" || state.ShadowTable == "" {
		return fmt.Errorf("weightsync: SyncState.DatasetID and SyncState.ShadowTable must be set")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := db.ExecContext(ctx, `INSERT INTO vec_sync_state(dataset_id, shadow_table, last_scn, updated_at)
VALUES(?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(dataset_id, shadow_table) DO UPDATE SET last_scn = excluded.last_scn, updated_at = CURRENT_TIMESTAMP`,
		state.DatasetID, state.ShadowTable, state.LastSCN)
	return err
}

// LoadSyncState returns the recorded sync state for a dataset/shadow pair. A
// pair that was never synchronized yields a zero LastSCN, which resumes the
// log from the beginning.
func LoadSyncState(ctx context.Context, db *sql.DB, datasetID, shadowTable string) (SyncState, error) {
	state := SyncState{DatasetID: datasetID, ShadowTable: shadowTable}
	if db == nil {
		return state, fmt.Errorf("weightsync: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	var updated sql.NullTime
	err := db.QueryRowContext(ctx,
		`SELECT last_scn, updated_at FROM vec_sync_state WHERE dataset_id = ? AND shadow_table = ?`,
		datasetID, shadowTable).Scan(&state.LastSCN, &updated)
	if err == sql.ErrNoRows {
		return state, nil
	}
	if err != nil {
		return state, err
	}
	state.UpdatedAt = updated.Time
	return state, nil
}
