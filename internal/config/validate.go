package config

import (
	"errors"
	"strings"
)

// Validate ensures the configuration is usable. A gear3 tooth count of zero
// is accepted: the pipeline treats the resulting gear ratio as undefined
// rather than rejecting the whole batch.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputRoot) == "" {
		return errors.New("input_root must be set")
	}
	if strings.TrimSpace(c.OutputRoot) == "" {
		return errors.New("output_root must be set")
	}
	if c.Gear3Teeth < 0 {
		return errors.New("gear3_teeth must not be negative")
	}
	if c.Gear4Teeth < 0 {
		return errors.New("gear4_teeth must not be negative")
	}
	if c.Wheel2RadiusInches <= 0 {
		return errors.New("wheel2_radius_inches must be positive")
	}
	return nil
}
