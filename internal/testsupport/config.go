// Package testsupport provides fixtures shared by package tests: temp-rooted
// configs, drivetrain parameters, and CSV run builders.
package testsupport

import (
	"path/filepath"
	"testing"

	"torquelab/internal/config"
	"torquelab/internal/torque"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.InputRoot = filepath.Join(base, "input")
	cfg.OutputRoot = filepath.Join(base, "outputs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithGeometry overrides the drivetrain geometry on the test config.
func WithGeometry(gear3, gear4 int, radiusInches float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Gear3Teeth = gear3
		cfg.Gear4Teeth = gear4
		cfg.Wheel2RadiusInches = radiusInches
	}
}

// Params returns the torque parameters the config resolves to.
func Params(cfg *config.Config) torque.Params {
	return torque.Params{
		Gear3Teeth:    cfg.Gear3Teeth,
		Gear4Teeth:    cfg.Gear4Teeth,
		Wheel2RadiusM: cfg.Wheel2RadiusMeters(),
	}
}
