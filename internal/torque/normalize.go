package torque

import (
	"torquelab/internal/telemetry"
)

// MphToMps converts miles per hour to meters per second.
const MphToMps = 0.44704

// Derived column names appended to every normalized run.
const (
	ColTime   = "time_s"
	ColSpeed  = "speed_mps"
	ColPower  = "power_w"
	ColTorque = "torque4_nm"
)

// Input column names expected in raw runs. Absent columns are synthesized:
// timestamp as all-undefined, speed and power as all-zero.
const (
	colTimestamp = "timestamp"
	colSpeed     = "speed"
	colPower     = "power"
)

// Params is the drivetrain geometry a batch is computed for, immutable once
// constructed. Gear3Teeth may be zero; the gear ratio is then undefined and
// every torque sample with it.
type Params struct {
	Gear3Teeth    int
	Gear4Teeth    int
	Wheel2RadiusM float64
}

// Ratio returns the gear4/gear3 ratio, invalid when gear3 has no teeth.
func (p Params) Ratio() telemetry.Float {
	if p.Gear3Teeth == 0 {
		return telemetry.Float{}
	}
	return telemetry.FloatFrom(float64(p.Gear4Teeth) / float64(p.Gear3Teeth))
}

// Normalize returns a copy of the raw run with time_s, speed_mps, power_w,
// and torque4_nm columns attached. It is total over any tabular input:
// missing columns are synthesized, unparsable numbers coerce to zero, and a
// torque sample is undefined (never Inf or NaN) wherever speed is zero or the
// gear ratio is.
//
// The time base is elapsed seconds from the earliest parseable timestamp.
// Rows whose timestamp fails to parse keep an undefined time_s. When no row
// parses at all, the whole column falls back to the row ordinal instead; the
// fallback is deliberately all-or-nothing so partial parse failures stay
// visible as gaps rather than being silently patched row by row.
func Normalize(raw *telemetry.Frame, params Params) *telemetry.Frame {
	frame := raw.Clone()
	rows := frame.Len()

	frame.SetDerived(ColTime, deriveTime(frame))

	speed := make([]telemetry.Float, rows)
	power := make([]telemetry.Float, rows)
	speedCells, _ := frame.Column(colSpeed)
	powerCells, _ := frame.Column(colPower)
	for i := 0; i < rows; i++ {
		speed[i] = telemetry.FloatFrom(cellOrZero(speedCells, i) * MphToMps)
		power[i] = telemetry.FloatFrom(cellOrZero(powerCells, i))
	}
	frame.SetDerived(ColSpeed, speed)
	frame.SetDerived(ColPower, power)

	ratio := params.Ratio()
	torque := make([]telemetry.Float, rows)
	for i := 0; i < rows; i++ {
		torque[i] = torqueSample(power[i], speed[i], ratio, params.Wheel2RadiusM)
	}
	frame.SetDerived(ColTorque, torque)

	return frame
}

// torqueSample computes (power * ratio * radius) / speed for one row.
// Undefined whenever the ratio is undefined or speed is zero; division can
// therefore never raise or overflow into Inf.
func torqueSample(power, speed, ratio telemetry.Float, radiusM float64) telemetry.Float {
	if !ratio.Valid || !speed.Valid || speed.Float64 == 0 {
		return telemetry.Float{}
	}
	if !power.Valid {
		return telemetry.Float{}
	}
	return telemetry.FloatFrom(power.Float64 * ratio.Float64 * radiusM / speed.Float64)
}

func deriveTime(frame *telemetry.Frame) []telemetry.Float {
	rows := frame.Len()
	parsed := make([]telemetry.Float, rows)

	cells, hasColumn := frame.Column(colTimestamp)
	var t0 telemetry.Float
	if hasColumn {
		for i, cell := range cells {
			if v, ok := telemetry.ParseTimestamp(cell); ok {
				parsed[i] = telemetry.FloatFrom(v)
				if !t0.Valid || v < t0.Float64 {
					t0 = telemetry.FloatFrom(v)
				}
			}
		}
	}

	if !t0.Valid {
		// No row parsed (or the column is missing entirely): synthetic
		// uniform time base from the row ordinal.
		ordinal := make([]telemetry.Float, rows)
		for i := range ordinal {
			ordinal[i] = telemetry.FloatFrom(float64(i))
		}
		return ordinal
	}

	elapsed := make([]telemetry.Float, rows)
	for i, ts := range parsed {
		if ts.Valid {
			elapsed[i] = telemetry.FloatFrom(ts.Float64 - t0.Float64)
		}
	}
	return elapsed
}

func cellOrZero(cells []string, i int) float64 {
	if i >= len(cells) {
		return 0
	}
	return telemetry.ParseFloat(cells[i]).Or(0)
}
