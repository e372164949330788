package main

import (
	"fmt"

	"torquelab/internal/telemetry"
)

// formatTorque renders a nullable torque statistic for display; undefined
// values show as a dash.
func formatTorque(value telemetry.Float) string {
	if !value.Valid {
		return "-"
	}
	return fmt.Sprintf("%.3f", value.Float64)
}
