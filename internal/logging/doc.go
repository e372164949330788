// Package logging assembles the structured slog loggers used across
// torquelab commands and pipeline stages.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so pipeline code tags every line
// with the same field names. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
package logging
