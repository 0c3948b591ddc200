package db

const (
	// SchemaV1 holds the tables for the kvstore component: the version
	// bookkeeping table and a single key/value table. Values are whole JSON
	// documents, replaced on every write.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS moodlog_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS kv_items (
    key VARCHAR(256) PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at REAL DEFAULT (unixepoch())
);
`
)
