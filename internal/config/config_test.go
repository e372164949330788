package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, result, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Exists {
		t.Error("result.Exists should be false")
	}
	if result.LoadErr != nil {
		t.Errorf("missing file is not a load error: %v", result.LoadErr)
	}
	if cfg.Gear3Teeth != 24 || cfg.Gear4Teeth != 48 {
		t.Errorf("gear defaults = %d/%d, want 24/48", cfg.Gear3Teeth, cfg.Gear4Teeth)
	}
	if cfg.Wheel2RadiusInches != 5.906 {
		t.Errorf("radius default = %v, want 5.906", cfg.Wheel2RadiusInches)
	}
	if !strings.HasSuffix(cfg.InputRoot, "Power Output Data") {
		t.Errorf("input root default = %q", cfg.InputRoot)
	}
	if !strings.HasSuffix(cfg.OutputRoot, "outputs") {
		t.Errorf("output root default = %q", cfg.OutputRoot)
	}
}

func TestLoadUnparsableFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("gear3_teeth = ["), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, result, err := Load(path)
	if err != nil {
		t.Fatalf("unparsable config must not be fatal: %v", err)
	}
	if result.LoadErr == nil {
		t.Error("LoadErr should report the parse failure")
	}
	if cfg.Gear3Teeth != 24 {
		t.Errorf("gear3 = %d, want default 24 after parse failure", cfg.Gear3Teeth)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "torquelab.toml")
	content := `
input_root = "` + filepath.Join(dir, "data") + `"
gear3_teeth = 12
wheel2_radius_inches = 4.0

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, result, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !result.Exists || result.LoadErr != nil {
		t.Fatalf("unexpected result: %+v", result)
	}
	if cfg.Gear3Teeth != 12 {
		t.Errorf("gear3 = %d, want 12", cfg.Gear3Teeth)
	}
	// Unset keys keep their defaults.
	if cfg.Gear4Teeth != 48 {
		t.Errorf("gear4 = %d, want default 48", cfg.Gear4Teeth)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("format = %q, want default console", cfg.Logging.Format)
	}
}

func TestWheel2RadiusMeters(t *testing.T) {
	cfg := Default()
	want := 5.906 * 0.0254
	if got := cfg.Wheel2RadiusMeters(); got != want {
		t.Errorf("radius = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Gear3Teeth = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero gear3 teeth must validate (ratio is undefined, not an error): %v", err)
	}

	cfg = Default()
	cfg.Gear3Teeth = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative tooth count should fail validation")
	}

	cfg = Default()
	cfg.Wheel2RadiusInches = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero radius should fail validation")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, result, err := Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if result.LoadErr != nil {
		t.Fatalf("sample config should parse: %v", result.LoadErr)
	}
	if cfg.Gear3Teeth != 24 {
		t.Errorf("sample gear3 = %d, want 24", cfg.Gear3Teeth)
	}
}
