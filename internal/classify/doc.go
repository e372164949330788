// Package classify maps loosely structured file and directory names to
// structured labels: a run filename to its test type, and a pilot directory
// name to a display name. Both are pure string heuristics with documented,
// fixed tie-break behavior.
package classify
