// Package telemetry models one recorded test run as a tabular frame.
//
// A Frame preserves the raw CSV cells exactly as exported (telemetry exports
// are frequently partial or malformed, so nothing here rejects input) and
// carries derived numeric columns alongside them. Missing or unparsable
// numbers are represented as invalid Float values rather than NaN so that
// downstream statistics and plotting filter them explicitly.
package telemetry
