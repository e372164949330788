package classify

import (
	"strings"
	"unicode"
)

// TestType is the coarse classification of a run by commanded power level or
// passive mode.
type TestType string

const (
	Test250W    TestType = "250W"
	Test200W    TestType = "200W"
	Test150W    TestType = "150W"
	TestPassive TestType = "Passive"
	TestUnknown TestType = "Unknown"
)

// KnownTestTypes lists every classifiable type except Unknown, in comparison
// output order.
var KnownTestTypes = []TestType{Test150W, Test200W, Test250W, TestPassive}

// ClassifyTestType extracts the test type from a run identifier (usually a filename
// or file stem). Matching is a case-insensitive substring check with a fixed
// priority: 250, then 200, then 150, then passive. The presence of "passive"
// anywhere suppresses the wattage tokens, so "Run_250W_passive" classifies as
// Passive. A name carrying several wattage tokens resolves to the
// highest-priority one; that tie-break is deliberate, not numeric ordering.
func ClassifyTestType(runIdentifier string) TestType {
	lower := strings.ToLower(runIdentifier)
	passive := strings.Contains(lower, "passive")
	switch {
	case strings.Contains(lower, "250") && !passive:
		return Test250W
	case strings.Contains(lower, "200") && !passive:
		return Test200W
	case strings.Contains(lower, "150") && !passive:
		return Test150W
	case passive:
		return TestPassive
	default:
		return TestUnknown
	}
}

// DisplayName derives a pilot's display name from their directory name. A
// trailing " Tests" suffix is stripped, then a single trailing camel boundary
// is split: "AndrewR Tests" becomes "Andrew R". The heuristic applies once
// and only at the end of the name; it does not attempt general camel-case
// splitting because real pilot directories carry at most an appended surname
// initial.
func DisplayName(pilotDirName string) string {
	name := strings.TrimSpace(strings.TrimSuffix(pilotDirName, " Tests"))
	runes := []rune(name)
	if len(runes) > 1 {
		last, prev := runes[len(runes)-1], runes[len(runes)-2]
		if unicode.IsUpper(last) && unicode.IsLower(prev) {
			return string(runes[:len(runes)-1]) + " " + string(last)
		}
	}
	return name
}
