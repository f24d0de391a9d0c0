// Package config loads, normalizes, and validates longbox configuration
// from TOML files, providing repository defaults for every tunable.
package config
