package compare

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"torquelab/internal/classify"
	"torquelab/internal/fileutil"
	"torquelab/internal/logging"
	"torquelab/internal/plotting"
	"torquelab/internal/telemetry"
	"torquelab/internal/torque"
)

// ComparisonDirName is where overlays land under the output root.
const ComparisonDirName = "comparison_plots"

// Aggregator scans previously normalized outputs and renders per-test-type
// comparison overlays.
type Aggregator struct {
	outputRoot string
	logger     *slog.Logger
}

// New constructs an aggregator over the batch's output root.
func New(outputRoot string, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		outputRoot: outputRoot,
		logger:     logging.NewComponentLogger(logger, "compare"),
	}
}

// entry is one normalized run scheduled for an overlay.
type entry struct {
	pilot string // display name
	path  string
}

// Run groups normalized runs by test type and writes one overlay per type.
// Unknown-classified runs are excluded entirely. Per-series load failures are
// logged and skipped; only filesystem-level scan failures are returned.
func (a *Aggregator) Run() error {
	groups, err := a.collect()
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		a.logger.Info("no classified runs to compare")
		return nil
	}

	types := make([]string, 0, len(groups))
	for testType := range groups {
		types = append(types, string(testType))
	}
	sort.Strings(types)

	for _, testType := range types {
		entries := groups[classify.TestType(testType)]
		sortEntries(entries)

		series := a.loadSeries(entries)
		outPath := filepath.Join(a.outputRoot, ComparisonDirName, fmt.Sprintf("%s_Test_-_All_Pilots.png", testType))
		title := fmt.Sprintf("%s Test - All Pilots", testType)
		if err := plotting.SaveOverlayPlot(outPath, title, series); err != nil {
			a.logger.Warn("failed to render comparison overlay",
				logging.Args(logging.String("test_type", testType), logging.Error(err))...)
			continue
		}
		a.logger.Info("created comparison overlay",
			logging.Args(logging.String("test_type", testType), logging.Int("series", len(series)))...)
	}
	return nil
}

// sortEntries fixes series order, which drives both legend order and color
// assignment: display name first (collated), path as tie-break. Colors are
// assigned by sort position, not pilot identity, so the mapping may shift
// when the pilot set changes between batches.
func sortEntries(entries []entry) {
	collator := collate.New(language.English)
	sort.SliceStable(entries, func(i, j int) bool {
		if cmp := collator.CompareString(entries[i].pilot, entries[j].pilot); cmp != 0 {
			return cmp < 0
		}
		return entries[i].path < entries[j].path
	})
}

func (a *Aggregator) collect() (map[classify.TestType][]entry, error) {
	csvRoot := filepath.Join(a.outputRoot, "csv")
	pilotDirs, err := fileutil.Subdirs(csvRoot)
	if err != nil {
		return nil, fmt.Errorf("scan normalized outputs: %w", err)
	}

	groups := make(map[classify.TestType][]entry)
	for _, pilotDir := range pilotDirs {
		display := classify.DisplayName(filepath.Base(pilotDir))
		files, err := fileutil.CSVFiles(pilotDir)
		if err != nil {
			a.logger.Warn("skipping unreadable pilot directory",
				logging.Args(logging.String("dir", pilotDir), logging.Error(err))...)
			continue
		}
		for _, file := range files {
			testType := classify.ClassifyTestType(fileutil.Stem(file))
			if testType == classify.TestUnknown {
				continue
			}
			groups[testType] = append(groups[testType], entry{pilot: display, path: file})
		}
	}
	return groups, nil
}

// loadSeries re-reads the persisted time/torque columns for each entry,
// dropping entries that cannot be loaded.
func (a *Aggregator) loadSeries(entries []entry) []plotting.Series {
	series := make([]plotting.Series, 0, len(entries))
	for _, e := range entries {
		frame, err := telemetry.ReadCSV(e.path)
		if err != nil {
			a.logger.Warn("skipping comparison series",
				logging.Args(logging.String("file", e.path), logging.Error(err))...)
			continue
		}
		times, okTime := frame.FloatColumn(torque.ColTime)
		torques, okTorque := frame.FloatColumn(torque.ColTorque)
		if !okTime || !okTorque {
			a.logger.Warn("skipping comparison series without derived columns",
				logging.Args(logging.String("file", e.path))...)
			continue
		}
		series = append(series, plotting.Series{Name: e.pilot, Time: times, Torque: torques})
	}
	return series
}
