// Package batch drives one end-to-end processing pass: discover run files
// per pilot, normalize each, persist CSVs and plots, accumulate the summary,
// then hand off to the comparison aggregator.
//
// The unit of failure isolation is one run. A file that cannot be loaded is
// logged and skipped; it neither aborts the batch nor appears in the summary.
// Only the zero-input condition (no run files discovered at all) is an
// overall failure, reported as ErrNoRuns before anything is written.
package batch
