package compare

import (
	"os"
	"path/filepath"
	"testing"

	"torquelab/internal/classify"
	"torquelab/internal/logging"
	"torquelab/internal/testsupport"
)

const normalizedCSV = `timestamp,speed,power,time_s,speed_mps,power_w,torque4_nm
t0,10,100,0,4.4704,100,6.7
t1,10,100,1,4.4704,100,6.8
`

func writeNormalized(t *testing.T, outputRoot, pilot, name string) {
	t.Helper()
	testsupport.WriteRunCSV(t, filepath.Join(outputRoot, "csv"), pilot, name, normalizedCSV)
}

func TestCollectGroupsAndExcludesUnknown(t *testing.T) {
	outputRoot := t.TempDir()
	writeNormalized(t, outputRoot, "AndrewR Tests", "run_250W.csv")
	writeNormalized(t, outputRoot, "Maria Tests", "run_250W.csv")
	writeNormalized(t, outputRoot, "Maria Tests", "warmup_passive.csv")
	writeNormalized(t, outputRoot, "Maria Tests", "mystery.csv")

	aggregator := New(outputRoot, logging.NewNop())
	groups, err := aggregator.collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (250W, Passive): %v", len(groups), groups)
	}
	if got := len(groups[classify.Test250W]); got != 2 {
		t.Errorf("250W group has %d entries, want 2", got)
	}
	if got := len(groups[classify.TestPassive]); got != 1 {
		t.Errorf("Passive group has %d entries, want 1", got)
	}
	if _, ok := groups[classify.TestUnknown]; ok {
		t.Error("Unknown runs must not enter comparison groups")
	}
}

func TestCollectUsesDisplayNames(t *testing.T) {
	outputRoot := t.TempDir()
	writeNormalized(t, outputRoot, "AndrewR Tests", "run_150W.csv")

	aggregator := New(outputRoot, logging.NewNop())
	groups, err := aggregator.collect()
	if err != nil {
		t.Fatal(err)
	}
	entries := groups[classify.Test150W]
	if len(entries) != 1 || entries[0].pilot != "Andrew R" {
		t.Errorf("entries = %+v, want pilot display name \"Andrew R\"", entries)
	}
}

func TestLoadSeriesSkipsUnreadable(t *testing.T) {
	outputRoot := t.TempDir()
	writeNormalized(t, outputRoot, "Maria Tests", "run_200.csv")
	badPath := testsupport.WriteRunCSV(t, filepath.Join(outputRoot, "csv"), "Maria Tests", "bad_200.csv", "a,b\n\"broken\n")

	aggregator := New(outputRoot, logging.NewNop())
	series := aggregator.loadSeries([]entry{
		{pilot: "Maria", path: filepath.Join(outputRoot, "csv", "Maria Tests", "run_200.csv")},
		{pilot: "Maria", path: badPath},
	})
	if len(series) != 1 {
		t.Fatalf("got %d series, want 1 (unreadable skipped)", len(series))
	}
	if len(series[0].Time) != 2 {
		t.Errorf("series has %d samples, want 2", len(series[0].Time))
	}
}

func TestLoadSeriesSkipsMissingDerivedColumns(t *testing.T) {
	outputRoot := t.TempDir()
	path := testsupport.WriteRunCSV(t, filepath.Join(outputRoot, "csv"), "Maria Tests", "raw_200.csv", "timestamp,speed,power\nt0,10,100\n")

	aggregator := New(outputRoot, logging.NewNop())
	series := aggregator.loadSeries([]entry{{pilot: "Maria", path: path}})
	if len(series) != 0 {
		t.Errorf("raw (un-normalized) file should be skipped, got %d series", len(series))
	}
}

func TestRunWritesOverlayPerTestType(t *testing.T) {
	outputRoot := t.TempDir()
	writeNormalized(t, outputRoot, "AndrewR Tests", "run_250W.csv")
	writeNormalized(t, outputRoot, "Maria Tests", "run_250W.csv")
	writeNormalized(t, outputRoot, "Maria Tests", "coast_passive.csv")

	aggregator := New(outputRoot, logging.NewNop())
	if err := aggregator.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, name := range []string{"250W_Test_-_All_Pilots.png", "Passive_Test_-_All_Pilots.png"} {
		path := filepath.Join(outputRoot, ComparisonDirName, name)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("overlay %s missing: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("overlay %s is empty", name)
		}
	}
}

func TestRunWithNoNormalizedOutputs(t *testing.T) {
	aggregator := New(t.TempDir(), logging.NewNop())
	if err := aggregator.Run(); err != nil {
		t.Fatalf("empty output tree should not error: %v", err)
	}
}

func TestSortEntriesByDisplayNameThenPath(t *testing.T) {
	entries := []entry{
		{pilot: "Zarah Q", path: "/csv/ZarahQ Tests/run_150.csv"},
		{pilot: "Andrew R", path: "/csv/AndrewR Tests/run_150b.csv"},
		{pilot: "Andrew R", path: "/csv/AndrewR Tests/run_150a.csv"},
	}
	sortEntries(entries)

	want := []string{
		"/csv/AndrewR Tests/run_150a.csv",
		"/csv/AndrewR Tests/run_150b.csv",
		"/csv/ZarahQ Tests/run_150.csv",
	}
	for i, path := range want {
		if entries[i].path != path {
			t.Errorf("entries[%d] = %+v, want path %s", i, entries[i], path)
		}
	}
}
