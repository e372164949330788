// Package ledger persists batch outcomes in SQLite so past runs can be
// inspected after the fact (torquelab history).
//
// The database is an audit trail, not pipeline state: the batch appends one
// row per batch and one per run outcome, and nothing downstream depends on
// it. Ledger failures are reported to the caller to log and move past; they
// never fail a batch. Schema changes bump schemaVersion; the table is
// rebuilt rather than migrated.
package ledger
