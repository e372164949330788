package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"torquelab/internal/batch"
	"torquelab/internal/testsupport"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	want := map[string]bool{"process": false, "summary": false, "history": false, "config": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func writeTestConfig(t *testing.T, inputRoot, outputRoot string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "torquelab.toml")
	content := "input_root = " + tomlString(inputRoot) + "\n" +
		"output_root = " + tomlString(outputRoot) + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func tomlString(value string) string {
	return `"` + strings.ReplaceAll(value, `\`, `\\`) + `"`
}

func TestProcessEndToEnd(t *testing.T) {
	base := t.TempDir()
	inputRoot := filepath.Join(base, "input")
	outputRoot := filepath.Join(base, "outputs")
	testsupport.WriteRunCSV(t, inputRoot, "AndrewR Tests", "run_250W.csv", testsupport.SimpleRunCSV)
	cfgPath := writeTestConfig(t, inputRoot, outputRoot)

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--config", cfgPath})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputRoot, "summary.csv")); err != nil {
		t.Errorf("summary not written: %v", err)
	}
	if !strings.Contains(out.String(), "Processed 1 run(s)") {
		t.Errorf("output = %q", out.String())
	}
}

func TestProcessZeroInputFails(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, filepath.Join(base, "empty"), filepath.Join(base, "outputs"))

	root := newRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"--config", cfgPath})

	err := root.Execute()
	if !errors.Is(err, batch.ErrNoRuns) {
		t.Fatalf("err = %v, want ErrNoRuns", err)
	}
}

func TestSummaryCommandReadsSummary(t *testing.T) {
	base := t.TempDir()
	inputRoot := filepath.Join(base, "input")
	outputRoot := filepath.Join(base, "outputs")
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "pilot,file,out_csv,torque_median_nm,torque_max_nm\nMaria Tests,run.csv,csv/run.csv,1.5,2\n"
	if err := os.WriteFile(filepath.Join(outputRoot, "summary.csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := writeTestConfig(t, inputRoot, outputRoot)

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"summary", "--config", cfgPath})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Maria Tests") || !strings.Contains(out.String(), "1.500") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSummaryCommandWithoutSummaryFails(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, filepath.Join(base, "input"), filepath.Join(base, "outputs"))

	root := newRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"summary", "--config", cfgPath})

	if err := root.Execute(); err == nil {
		t.Error("summary without a prior batch should fail")
	}
}

func TestConfigShow(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, filepath.Join(base, "input"), filepath.Join(base, "outputs"))

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"config", "show", "--config", cfgPath})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"gear3_teeth:", "24", "wheel2_radius_inches:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q: %q", want, out.String())
		}
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"config", "init", "--path", target})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("sample config not written: %v", err)
	}

	// A second init without --overwrite must refuse.
	root = newRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err == nil {
		t.Error("init over an existing file should fail without --overwrite")
	}
}
