package weightsync

import (
	"fmt"
	"strings"
)

const (
	// DefaultLogTable is the upstream change-log table that captures
	// row-level SCN events for stored vectors.
	DefaultLogTable = "vec_shadow_log"

	// DefaultSeqTable stores the next SCN per dataset on the upstream
	// database.
	DefaultSeqTable = "vec_dataset_scn"
)

// ShadowTableDDL returns the base DDL snippet for upstream shadow tables with
// SCN support. The stored column holds the encoded fixed-width vector and
// importance mirrors the weight folded into its trailing slot, so log
// consumers can read the weight without decoding the vector. The DDL assumes
// SQLite-compatible syntax; use PGShadowTableDDL for Postgres.
func ShadowTableDDL(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
    dataset_id TEXT NOT NULL,
    id         TEXT NOT NULL,
    content    TEXT,
    meta       TEXT,
    stored     BLOB,
    importance REAL NOT NULL DEFAULT 0,
    scn        INTEGER NOT NULL DEFAULT 0,
    archived   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY(dataset_id, id)
);`
}

// PGShadowTableDDL is the Postgres flavor of ShadowTableDDL; the stored
// column uses the pgvector type at the effective width chosen by the caller.
func PGShadowTableDDL(table string, effectiveDim int) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    dataset_id TEXT NOT NULL,
    id         TEXT NOT NULL,
    content    TEXT,
    meta       TEXT,
    stored     vector(%d),
    importance DOUBLE PRECISION NOT NULL DEFAULT 0,
    scn        BIGINT NOT NULL DEFAULT 0,
    archived   BOOLEAN NOT NULL DEFAULT FALSE,
    PRIMARY KEY(dataset_id, id)
);`, table, effectiveDim)
}

// LogTableDDL returns the DDL for the change-log table, which upstream
// databases populate via triggers whenever a shadow table changes.
func LogTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS vec_shadow_log (
    dataset_id   TEXT NOT NULL,
    shadow_table TEXT NOT NULL,
    scn          INTEGER NOT NULL,
    op           TEXT NOT NULL,
    document_id  TEXT NOT NULL,
    payload      BLOB NOT NULL,
    created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY(dataset_id, shadow_table, scn)
);`
}

// SeqTableDDL returns the DDL for tracking the next SCN per dataset.
func SeqTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS vec_dataset_scn (
    dataset_id TEXT PRIMARY KEY,
    next_scn   INTEGER NOT NULL
);`
}

// SQLiteShadowLogTriggers returns the trigger DDL statements required to
// capture inserts, updates, reweights, and deletes against a shadow table
// into the change log using SQLite syntax. The payload is serialized as JSON
// with a hex-encoded stored vector. An update that touches neither content
// nor meta is logged with op 'reweight', since replacing the stored vector
// wholesale is how importance changes reach the table.
func SQLiteShadowLogTriggers(shadowTable, seqTable, logTable string) []string {
	if seqTable == "" {
		seqTable = DefaultSeqTable
	}
	if logTable == "" {
		logTable = DefaultLogTable
	}
	base := sanitizeIdentifier(shadowTable)
	payload := func(alias string) string {
		return fmt.Sprintf(`json_object(
        'dataset_id', %[1]s.dataset_id,
        'id', %[1]s.id,
        'content', %[1]s.content,
        'meta', %[1]s.meta,
        'stored', lower(hex(%[1]s.stored)),
        'importance', %[1]s.importance,
        'scn', %[1]s.scn,
        'archived', %[1]s.archived
    )`, alias)
	}
	advance := func(alias string) string {
		return fmt.Sprintf(`INSERT INTO %[1]s(dataset_id, next_scn)
    VALUES (%[2]s.dataset_id, 1)
    ON CONFLICT(dataset_id) DO UPDATE SET next_scn = next_scn + 1;`, seqTable, alias)
	}
	scnExpr := func(alias string) string {
		return fmt.Sprintf(`(SELECT next_scn FROM %s WHERE dataset_id = %s.dataset_id)`, seqTable, alias)
	}

	insertTrig := fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS %s_ai AFTER INSERT ON %s
BEGIN
    %s
    INSERT INTO %s(dataset_id, shadow_table, scn, op, document_id, payload)
    VALUES (
        NEW.dataset_id,
        '%s',
        %s,
        'insert',
        NEW.id,
        %s
    );
END;`, base, shadowTable, advance("NEW"), logTable, shadowTable, scnExpr("NEW"), payload("NEW"))

	updateTrig := fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS %s_au AFTER UPDATE ON %s
BEGIN
    %s
    INSERT INTO %s(dataset_id, shadow_table, scn, op, document_id, payload)
    VALUES (
        NEW.dataset_id,
        '%s',
        %s,
        CASE WHEN NEW.content IS OLD.content AND NEW.meta IS OLD.meta THEN 'reweight' ELSE 'update' END,
        NEW.id,
        %s
    );
END;`, base, shadowTable, advance("NEW"), logTable, shadowTable, scnExpr("NEW"), payload("NEW"))

	deleteTrig := fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS %s_ad AFTER DELETE ON %s
BEGIN
    %s
    INSERT INTO %s(dataset_id, shadow_table, scn, op, document_id, payload)
    VALUES (
        OLD.dataset_id,
        '%s',
        %s,
        'delete',
        OLD.id,
        %s
    );
END;`, base, shadowTable, advance("OLD"), logTable, shadowTable, scnExpr("OLD"), payload("OLD"))

	return []string{insertTrig, updateTrig, deleteTrig}
}

// PostgresShadowLogTriggers returns the plpgsql trigger function and trigger
// definitions that populate the change log with JSON payloads and
// per-dataset SCNs, matching the pgvector-backed store. A single row-level
// trigger covers INSERT, UPDATE, and DELETE; the function distinguishes
// reweight-only updates the same way the SQLite flavor does.
func PostgresShadowLogTriggers(shadowTable, seqTable, logTable string) []string {
	if seqTable == "" {
		seqTable = DefaultSeqTable
	}
	if logTable == "" {
		logTable = DefaultLogTable
	}
	base := sanitizeIdentifier(shadowTable)

	fn := fmt.Sprintf(`CREATE OR REPLACE FUNCTION %[1]s_log() RETURNS trigger AS $$
DECLARE
    rec RECORD;
    op TEXT;
    scn BIGINT;
BEGIN
    IF TG_OP = 'DELETE' THEN
        rec := OLD;
        op := 'delete';
    ELSIF TG_OP = 'INSERT' THEN
        rec := NEW;
        op := 'insert';
    ELSE
        rec := NEW;
        IF NEW.content IS NOT DISTINCT FROM OLD.content AND NEW.meta IS NOT DISTINCT FROM OLD.meta THEN
            op := 'reweight';
        ELSE
            op := 'update';
        END IF;
    END IF;

    INSERT INTO %[2]s(dataset_id, next_scn)
    VALUES (rec.dataset_id, 1)
    ON CONFLICT (dataset_id) DO UPDATE SET next_scn = %[2]s.next_scn + 1;
    SELECT next_scn INTO scn FROM %[2]s WHERE dataset_id = rec.dataset_id;

    INSERT INTO %[3]s(dataset_id, shadow_table, scn, op, document_id, payload)
    VALUES (
        rec.dataset_id,
        '%[4]s',
        scn,
        op,
        rec.id,
        convert_to(jsonb_build_object(
            'dataset_id', rec.dataset_id,
            'id', rec.id,
            'content', rec.content,
            'meta', rec.meta,
            'stored', rec.stored::text,
            'importance', rec.importance,
            'scn', rec.scn,
            'archived', rec.archived
        )::text, 'UTF8')
    );
    RETURN rec;
END;
$$ LANGUAGE plpgsql;`, base, seqTable, logTable, shadowTable)

	trig := fmt.Sprintf(`CREATE TRIGGER %[1]s_log AFTER INSERT OR UPDATE OR DELETE ON %[2]s
FOR EACH ROW EXECUTE FUNCTION %[1]s_log();`, base, shadowTable)

	return []string{fn, trig}
}

func sanitizeIdentifier(name string) string {
	if name == "" {
		return ""
	}
	replacer := strings.NewReplacer(".", "_", "-", "_")
	return replacer.Replace(name)
}
