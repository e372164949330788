// Package torque derives the normalized time base and the gear-4 torque
// estimate for one run.
//
// Normalize is the single authoritative home of the torque formula and of the
// edge-case policy around it: malformed input degrades to defaults or to
// undefined values, never to an error, so every downstream stage is total.
package torque
