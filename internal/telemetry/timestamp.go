package telemetry

import (
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are the wall-clock formats seen in telemetry exports,
// tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"01/02/2006 15:04:05",
	"15:04:05.999999999",
	"15:04:05",
}

// ParseTimestamp converts a raw timestamp cell to seconds on an absolute
// scale. Bare numbers are taken as seconds directly; otherwise the known
// wall-clock layouts are tried. The second result is false when nothing
// matches.
//
// Only differences of these values are meaningful: the normalizer subtracts
// the run's minimum, so the epoch (Unix versus a layout's implied zero year)
// never shows up in outputs as long as a single run sticks to one format.
func ParseTimestamp(cell string) (float64, bool) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v, true
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return float64(ts.UnixNano()) / float64(time.Second), true
		}
	}
	return 0, false
}
