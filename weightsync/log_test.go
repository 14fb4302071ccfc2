package weightsync

import (
	"context"
	"database/sql"
	"testing"

	"github.com/viant/weighted-vec/engine"
)

func newLogDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := engine.Open(":memory:")
	if err != nil {
		t.Fatalf("engine.Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	stmts := []string{
		ShadowTableDDL("shadow_docs"),
		LogTableDDL(),
		SeqTableDDL(),
		StateTableDDL(),
	}
	stmts = append(stmts, SQLiteShadowLogTriggers("shadow_docs", "", "")...)
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q failed: %v", s, err)
		}
	}
	return db
}

func TestFetchLogEntries_CapturesChangeKinds(t *testing.T) {
	db := newLogDB(t)
	ctx := context.Background()

	if _, err := db.Exec(`INSERT INTO shadow_docs(dataset_id, id, content, meta, stored, importance)
		VALUES('ds', 'd1', 'hello', '{}', X'0000803F', 0.5)`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	// Stored vector and importance change, content and meta do not: the
	// trigger tags this as reweight.
	if _, err := db.Exec(`UPDATE shadow_docs SET stored = X'00000040', importance = 0.9 WHERE id = 'd1'`); err != nil {
		t.Fatalf("reweight update failed: %v", err)
	}
	if _, err := db.Exec(`UPDATE shadow_docs SET content = 'bye' WHERE id = 'd1'`); err != nil {
		t.Fatalf("content update failed: %v", err)
	}
	if _, err := db.Exec(`DELETE FROM shadow_docs WHERE id = 'd1'`); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	cfg := Config{DatasetID: "ds", ShadowTable: "shadow_docs"}
	entries, err := FetchLogEntries(ctx, db, "", cfg, 0)
	if err != nil {
		t.Fatalf("FetchLogEntries failed: %v", err)
	}
	wantOps := []string{OpInsert, OpReweight, OpUpdate, OpDelete}
	if len(entries) != len(wantOps) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(wantOps), entries)
	}
	for i, e := range entries {
		if e.Op != wantOps[i] {
			t.Fatalf("entry %d op = %q, want %q", i, e.Op, wantOps[i])
		}
		if e.SCN != int64(i+1) {
			t.Fatalf("entry %d scn = %d, want %d", i, e.SCN, i+1)
		}
		if e.DocumentID != "d1" || e.DatasetID != "ds" || e.ShadowTable != "shadow_docs" {
			t.Fatalf("entry %d has wrong identity: %+v", i, e)
		}
		if len(e.Payload) == 0 {
			t.Fatalf("entry %d has empty payload", i)
		}
	}
}

func TestFetchLogEntries_BatchAndResume(t *testing.T) {
	db := newLogDB(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := db.Exec(`INSERT INTO shadow_docs(dataset_id, id, content, meta, stored, importance)
			VALUES('ds', ?, 'doc', '{}', X'0000803F', 0.5)`, id); err != nil {
			t.Fatalf("insert %s failed: %v", id, err)
		}
	}

	cfg := Config{DatasetID: "ds", ShadowTable: "shadow_docs", BatchSize: 2}
	first, err := FetchLogEntries(ctx, db, "", cfg, 0)
	if err != nil {
		t.Fatalf("FetchLogEntries failed: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("batch size 2 returned %d entries", len(first))
	}

	rest, err := FetchLogEntries(ctx, db, "", cfg, first[len(first)-1].SCN)
	if err != nil {
		t.Fatalf("FetchLogEntries resume failed: %v", err)
	}
	if len(rest) != 1 || rest[0].DocumentID != "c" {
		t.Fatalf("resume returned %+v, want single entry for c", rest)
	}
}

func TestFetchLogEntries_Validation(t *testing.T) {
	db := newLogDB(t)
	if _, err := FetchLogEntries(context.Background(), db, "", Config{}, 0); err == nil {
		t.Fatalf("FetchLogEntries with empty config succeeded, want error")
	}
	if _, err := FetchLogEntries(context.Background(), nil, "", Config{DatasetID: "ds", ShadowTable: "shadow_docs"}, 0); err == nil {
		t.Fatalf("FetchLogEntries with nil db succeeded, want error")
	}
}

func TestSyncState_RoundTrip(t *testing.T) {
	db := newLogDB(t)
	ctx := context.Background()

	// Never-synced pair resumes from zero.
	state, err := LoadSyncState(ctx, db, "ds", "shadow_docs")
	if err != nil {
		t.Fatalf("LoadSyncState failed: %v", err)
	}
	if state.LastSCN != 0 {
		t.Fatalf("fresh LastSCN = %d, want 0", state.LastSCN)
	}

	state.LastSCN = 7
	if err := SaveSyncState(ctx, db, state); err != nil {
		t.Fatalf("SaveSyncState failed: %v", err)
	}
	state.LastSCN = 9
	if err := SaveSyncState(ctx, db, state); err != nil {
		t.Fatalf("SaveSyncState upsert failed: %v", err)
	}

	got, err := LoadSyncState(ctx, db, "ds", "shadow_docs")
	if err != nil {
		t.Fatalf("LoadSyncState failed: %v", err)
	}
	if got.LastSCN != 9 {
		t.Fatalf("LastSCN after save = %d, want 9", got.LastSCN)
	}
}
