package ledger

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS batches (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT,
    input_root TEXT NOT NULL,
    output_root TEXT NOT NULL,
    runs_processed INTEGER NOT NULL DEFAULT 0,
    runs_skipped INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
    pilot TEXT NOT NULL,
    file TEXT NOT NULL,
    status TEXT NOT NULL,
    out_csv TEXT,
    torque_median_nm REAL,
    torque_max_nm REAL,
    error TEXT,
    recorded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_batch ON runs(batch_id);
`
