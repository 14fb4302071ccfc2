package weightsync

import "time"

// Op names the change kinds captured in the log.
const (
	OpInsert   = "insert"
	OpUpdate   = "update"
	OpReweight = "reweight"
	OpDelete   = "delete"
)

// LogEntry mirrors a single row in the stored-vector change log on the
// upstream database. It conveys dataset-scoped document changes to
// downstream replicas.
type LogEntry struct {
	DatasetID   string
	ShadowTable string
	SCN         int64
	Op          string
	DocumentID  string
	Payload     []byte
	CreatedAt   time.Time
}

// SyncState describes the latest SCN applied locally for a given
// dataset/shadow pair on a downstream replica.
type SyncState struct {
	DatasetID   string
	ShadowTable string
	LastSCN     int64
	UpdatedAt   time.Time
}

// Config captures the settings needed to replay stored-vector changes from an
// upstream SQL database into a downstream replica.
type Config struct {
	// DatasetID identifies the dataset slice being synchronized.
	DatasetID string

	// ShadowTable is the fully-qualified shadow table name.
	ShadowTable string

	// BatchSize controls how many log entries to fetch/apply per sync
	// iteration.
	BatchSize int
}
