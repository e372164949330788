package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"torquelab/internal/summary"
	"torquelab/internal/telemetry"
)

// Run statuses recorded per discovered run.
const (
	StatusProcessed = "processed"
	StatusSkipped   = "skipped"
)

// Store manages ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Batch is one recorded batch invocation.
type Batch struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	Finished      bool
	InputRoot     string
	OutputRoot    string
	RunsProcessed int
	RunsSkipped   int
}

// Run is one recorded run outcome.
type Run struct {
	BatchID        string
	Pilot          string
	File           string
	Status         string
	OutCSV         string
	TorqueMedianNm telemetry.Float
	TorqueMaxNm    telemetry.Float
	Error          string
}

// Open initializes or connects to the ledger database and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location backing the ledger.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	var version int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_info LIMIT 1`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_info (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		if _, err := s.db.ExecContext(ctx, `DROP TABLE runs; DROP TABLE batches; DROP TABLE schema_info`); err != nil {
			return fmt.Errorf("reset schema: %w", err)
		}
		return s.ensureSchema(ctx)
	}
	return nil
}

// BeginBatch records a new batch and returns its identifier.
func (s *Store) BeginBatch(ctx context.Context, inputRoot, outputRoot string) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO batches (id, started_at, input_root, output_root) VALUES (?, ?, ?, ?)`,
		id, now, inputRoot, outputRoot,
	)
	if err != nil {
		return "", fmt.Errorf("insert batch: %w", err)
	}
	return id, nil
}

// FinishBatch stamps the batch with its completion time and counters.
func (s *Store) FinishBatch(ctx context.Context, batchID string, processed, skipped int) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE batches SET finished_at = ?, runs_processed = ?, runs_skipped = ? WHERE id = ?`,
		now, processed, skipped, batchID,
	)
	if err != nil {
		return fmt.Errorf("finish batch: %w", err)
	}
	return nil
}

// RecordProcessed appends a processed-run row from its summary record.
func (s *Store) RecordProcessed(ctx context.Context, batchID string, record summary.Record) error {
	return s.insertRun(ctx, Run{
		BatchID:        batchID,
		Pilot:          record.Pilot,
		File:           record.File,
		Status:         StatusProcessed,
		OutCSV:         record.OutCSV,
		TorqueMedianNm: record.TorqueMedianNm,
		TorqueMaxNm:    record.TorqueMaxNm,
	})
}

// RecordSkipped appends a skipped-run row with the failure reason.
func (s *Store) RecordSkipped(ctx context.Context, batchID, pilot, file string, cause error) error {
	run := Run{BatchID: batchID, Pilot: pilot, File: file, Status: StatusSkipped}
	if cause != nil {
		run.Error = cause.Error()
	}
	return s.insertRun(ctx, run)
}

func (s *Store) insertRun(ctx context.Context, run Run) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (batch_id, pilot, file, status, out_csv, torque_median_nm, torque_max_nm, error, recorded_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.BatchID,
		run.Pilot,
		run.File,
		run.Status,
		nullableString(run.OutCSV),
		nullableFloat(run.TorqueMedianNm),
		nullableFloat(run.TorqueMaxNm),
		nullableString(run.Error),
		now,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecentBatches returns the most recently started batches, newest first.
func (s *Store) RecentBatches(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, started_at, finished_at, input_root, output_root, runs_processed, runs_skipped
         FROM batches ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var batch Batch
		var started string
		var finished sql.NullString
		if err := rows.Scan(&batch.ID, &started, &finished, &batch.InputRoot, &batch.OutputRoot, &batch.RunsProcessed, &batch.RunsSkipped); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batch.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished.Valid {
			batch.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished.String)
			batch.Finished = true
		}
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}

// BatchRuns returns the run outcomes recorded for one batch, in insertion
// order.
func (s *Store) BatchRuns(ctx context.Context, batchID string) ([]Run, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT batch_id, pilot, file, status, out_csv, torque_median_nm, torque_max_nm, error
         FROM runs WHERE batch_id = ? ORDER BY id`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var outCSV, errMsg sql.NullString
		var median, max sql.NullFloat64
		if err := rows.Scan(&run.BatchID, &run.Pilot, &run.File, &run.Status, &outCSV, &median, &max, &errMsg); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.OutCSV = outCSV.String
		run.Error = errMsg.String
		if median.Valid {
			run.TorqueMedianNm = telemetry.FloatFrom(median.Float64)
		}
		if max.Valid {
			run.TorqueMaxNm = telemetry.FloatFrom(max.Float64)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value telemetry.Float) any {
	if !value.Valid {
		return nil
	}
	return value.Float64
}
