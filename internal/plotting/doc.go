// Package plotting renders the batch's PNG artifacts: one time-vs-torque
// line plot per run and one multi-series overlay per test type.
//
// Rendering is a sink for already-derived data. Undefined samples are
// filtered out before they reach the chart, so a plot never encodes NaN
// coordinates; a run whose torque column is entirely undefined produces an
// empty (but valid) chart.
package plotting
