package telemetry

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Float is a float64 that may be undefined. It mirrors sql.NullFloat64 but
// additionally refuses to hold NaN or infinities: arithmetic that would
// produce either yields an invalid value instead, so NaN can never leak into
// persisted outputs or statistics.
type Float struct {
	Float64 float64
	Valid   bool
}

// FloatFrom returns a valid Float, or an invalid one when v is NaN or Inf.
func FloatFrom(v float64) Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Float{}
	}
	return Float{Float64: v, Valid: true}
}

// ParseFloat converts a cell to a Float. Empty or unparsable cells are
// invalid.
func ParseFloat(cell string) Float {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return Float{}
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Float{}
	}
	return FloatFrom(v)
}

// Or returns the value when valid, otherwise the fallback.
func (f Float) Or(fallback float64) float64 {
	if f.Valid {
		return f.Float64
	}
	return fallback
}

// String formats the value for CSV output; invalid values render as an empty
// cell.
func (f Float) String() string {
	if !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.Float64, 'g', -1, 64)
}

// Median returns the median of the valid values, invalid when none are.
func Median(values []Float) Float {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Valid {
			valid = append(valid, v.Float64)
		}
	}
	if len(valid) == 0 {
		return Float{}
	}
	slices.Sort(valid)
	mid := len(valid) / 2
	if len(valid)%2 == 1 {
		return FloatFrom(valid[mid])
	}
	return FloatFrom((valid[mid-1] + valid[mid]) / 2)
}

// Max returns the maximum of the valid values, invalid when none are.
func Max(values []Float) Float {
	result := Float{}
	for _, v := range values {
		if !v.Valid {
			continue
		}
		if !result.Valid || v.Float64 > result.Float64 {
			result = v
		}
	}
	return result
}
