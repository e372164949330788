package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// InchToMeter converts the configured wheel radius to SI before it reaches
// the pipeline.
const InchToMeter = 0.0254

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for torquelab.
type Config struct {
	InputRoot          string  `toml:"input_root"`
	OutputRoot         string  `toml:"output_root"`
	Gear3Teeth         int     `toml:"gear3_teeth"`
	Gear4Teeth         int     `toml:"gear4_teeth"`
	Wheel2RadiusInches float64 `toml:"wheel2_radius_inches"`
	Logging            Logging `toml:"logging"`
}

// Wheel2RadiusMeters returns the wheel radius in meters, the only unit the
// pipeline works in.
func (c *Config) Wheel2RadiusMeters() float64 {
	return c.Wheel2RadiusInches * InchToMeter
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/torquelab/config.toml")
}

// LoadResult reports how a configuration was obtained.
type LoadResult struct {
	Path   string
	Exists bool
	// LoadErr holds the parse or read error when the file existed but could
	// not be used; the returned config is pure defaults in that case.
	LoadErr error
}

// Load locates and parses a configuration file. A missing file yields
// defaults. A file that exists but cannot be read or parsed also yields
// defaults, with the failure recorded in LoadResult for the caller to log;
// only validation of the merged result is fatal.
func Load(path string) (*Config, LoadResult, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, LoadResult{}, err
	}
	result := LoadResult{Path: resolvedPath, Exists: exists}

	if exists {
		if loadErr := decodeFile(resolvedPath, &cfg); loadErr != nil {
			cfg = Default()
			result.LoadErr = loadErr
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, result, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, result, err
	}

	return &cfg, result, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs("torquelab.toml")
	if err != nil {
		return "", false, err
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	c.InputRoot = strings.TrimSpace(c.InputRoot)
	c.OutputRoot = strings.TrimSpace(c.OutputRoot)
	if c.InputRoot == "" {
		c.InputRoot = defaultInputRoot
	}
	if c.OutputRoot == "" {
		c.OutputRoot = defaultOutputRoot
	}
	if c.InputRoot, err = expandPath(c.InputRoot); err != nil {
		return err
	}
	if c.OutputRoot, err = expandPath(c.OutputRoot); err != nil {
		return err
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// EnsureOutputDirectories creates the output tree the batch writes into.
func (c *Config) EnsureOutputDirectories() error {
	for _, dir := range []string{
		c.OutputRoot,
		filepath.Join(c.OutputRoot, "csv"),
		filepath.Join(c.OutputRoot, "plots"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
