package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"torquelab/internal/compare"
	"torquelab/internal/fileutil"
	"torquelab/internal/ledger"
	"torquelab/internal/logging"
	"torquelab/internal/plotting"
	"torquelab/internal/summary"
	"torquelab/internal/telemetry"
	"torquelab/internal/torque"
)

// ErrNoRuns reports that discovery found no run files at all. It is the only
// per-batch failure; anything per-run is recovered locally.
var ErrNoRuns = errors.New("no run files discovered under input root")

// LockFileName guards an output root against two concurrent batches
// interleaving writes.
const LockFileName = ".torquelab.lock"

// LedgerFileName is the SQLite audit trail under the output root.
const LedgerFileName = "torquelab.db"

// Processor runs batches over an input tree of pilot directories.
type Processor struct {
	inputRoot  string
	outputRoot string
	params     torque.Params
	logger     *slog.Logger
}

// New constructs a processor. The params are fixed for the lifetime of the
// processor; runs are processed strictly sequentially in discovery order.
func New(inputRoot, outputRoot string, params torque.Params, logger *slog.Logger) *Processor {
	return &Processor{
		inputRoot:  inputRoot,
		outputRoot: outputRoot,
		params:     params,
		logger:     logging.NewComponentLogger(logger, "batch"),
	}
}

// Result summarizes a completed batch.
type Result struct {
	BatchID     string
	Records     []summary.Record
	Processed   int
	Skipped     int
	SummaryPath string
}

type runRef struct {
	pilot string
	path  string
}

// Run executes the full pipeline: discovery, per-run normalization and
// persistence, summary, comparison overlays. Returns ErrNoRuns (with nothing
// written) when discovery comes up empty.
func (p *Processor) Run(ctx context.Context) (*Result, error) {
	runs, err := p.discover()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRuns, p.inputRoot)
	}
	p.logger.Info("discovered runs",
		logging.Args(logging.Int("count", len(runs)), logging.String("input_root", p.inputRoot))...)

	if err := os.MkdirAll(p.outputRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}

	lock := flock.New(filepath.Join(p.outputRoot, LockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("output root %s is locked by another batch", p.outputRoot)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	store := p.openLedger()
	defer store.Close()

	result := &Result{}
	if store != nil {
		batchID, err := store.BeginBatch(ctx, p.inputRoot, p.outputRoot)
		if err != nil {
			p.logger.Warn("ledger unavailable for this batch", logging.Args(logging.Error(err))...)
			store = nil
		} else {
			result.BatchID = batchID
		}
	}

	for _, run := range runs {
		record, err := p.processRun(run)
		if err != nil {
			p.logger.Warn("skipping run",
				logging.Args(
					logging.String("pilot", run.pilot),
					logging.String("file", run.path),
					logging.Error(err),
				)...)
			result.Skipped++
			if store != nil {
				if err := store.RecordSkipped(ctx, result.BatchID, run.pilot, run.path, err); err != nil {
					p.logger.Warn("ledger write failed", logging.Args(logging.Error(err))...)
				}
			}
			continue
		}
		result.Records = append(result.Records, record)
		result.Processed++
		if store != nil {
			if err := store.RecordProcessed(ctx, result.BatchID, record); err != nil {
				p.logger.Warn("ledger write failed", logging.Args(logging.Error(err))...)
			}
		}
	}

	result.SummaryPath = filepath.Join(p.outputRoot, summary.FileName)
	if err := summary.Write(result.Records, result.SummaryPath); err != nil {
		return nil, err
	}
	p.logger.Info("wrote summary",
		logging.Args(
			logging.Int("processed", result.Processed),
			logging.Int("skipped", result.Skipped),
			logging.String("path", result.SummaryPath),
		)...)

	if store != nil {
		if err := store.FinishBatch(ctx, result.BatchID, result.Processed, result.Skipped); err != nil {
			p.logger.Warn("ledger write failed", logging.Args(logging.Error(err))...)
		}
	}

	// Comparison overlays read what was just persisted, so this must run
	// after every per-run write has completed.
	aggregator := compare.New(p.outputRoot, p.logger)
	if err := aggregator.Run(); err != nil {
		return nil, err
	}

	return result, nil
}

// discover enumerates input_root/<pilot>/*.csv in sorted pilot-then-file
// order.
func (p *Processor) discover() ([]runRef, error) {
	pilotDirs, err := fileutil.Subdirs(p.inputRoot)
	if err != nil {
		return nil, fmt.Errorf("scan input root: %w", err)
	}
	var runs []runRef
	for _, dir := range pilotDirs {
		files, err := fileutil.CSVFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("scan pilot directory %s: %w", dir, err)
		}
		for _, file := range files {
			runs = append(runs, runRef{pilot: filepath.Base(dir), path: file})
		}
	}
	return runs, nil
}

// processRun is one self-contained read, normalize, persist cycle.
func (p *Processor) processRun(run runRef) (summary.Record, error) {
	frame, err := telemetry.ReadCSV(run.path)
	if err != nil {
		return summary.Record{}, err
	}

	normalized := torque.Normalize(frame, p.params)

	fileName := filepath.Base(run.path)
	outCSV := filepath.Join(p.outputRoot, "csv", run.pilot, fileName)
	if err := telemetry.WriteCSV(normalized, outCSV); err != nil {
		return summary.Record{}, err
	}

	stem := fileutil.Stem(run.path)
	times, _ := normalized.Derived(torque.ColTime)
	torques, _ := normalized.Derived(torque.ColTorque)
	plotPath := filepath.Join(p.outputRoot, "plots", run.pilot, stem+"_torque.png")
	plotErr := plotting.SaveRunPlot(plotPath, fmt.Sprintf("%s - %s", run.pilot, stem), plotting.Series{
		Time:   times,
		Torque: torques,
	})
	if plotErr != nil {
		// The normalized CSV is already on disk; a failed chart should not
		// discard the run.
		p.logger.Warn("failed to render run plot",
			logging.Args(logging.String("file", run.path), logging.Error(plotErr))...)
	}

	return summary.NewRecord(
		run.pilot,
		relativeTo(p.inputRoot, run.path),
		relativeTo(p.outputRoot, outCSV),
		torques,
	), nil
}

// openLedger opens the audit database; failure downgrades to running without
// a ledger.
func (p *Processor) openLedger() *ledger.Store {
	store, err := ledger.Open(filepath.Join(p.outputRoot, LedgerFileName))
	if err != nil {
		p.logger.Warn("ledger unavailable", logging.Args(logging.Error(err))...)
		return nil
	}
	return store
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
