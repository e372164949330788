// Package config loads, defaults, and validates torquelab configuration.
//
// Configuration lives in a TOML file (torquelab.toml in the working directory
// or ~/.config/torquelab/config.toml). A missing or unparsable file is not
// fatal: the loader degrades to built-in defaults and reports the condition so
// callers can log a warning. Defaulting and unit conversion happen here, once,
// at the boundary; pipeline packages receive resolved values (the wheel radius
// reaches the core already converted to meters) and never read configuration
// state themselves.
package config
