// Package compare builds the cross-pilot comparison overlays.
//
// It is a second, independent read pass: it re-scans the normalized CSVs the
// batch persisted, groups them by classified test type, and renders one
// overlay chart per type with one series per run, labeled and ordered by
// pilot display name. Torque is never recomputed here; what was persisted is
// what gets plotted. A series that fails to load is skipped without
// disturbing the rest of its overlay.
package compare
