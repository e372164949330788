// Package summary accumulates one record per successfully processed run and
// serializes the batch's summary.csv.
//
// Records are written in the order they were produced (pilot-then-file
// discovery order); the writer never re-sorts and never deduplicates, so the
// same filename under two pilots stays two rows.
package summary
