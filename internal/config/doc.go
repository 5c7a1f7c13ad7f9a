// Package config loads, normalizes, and validates shelfr configuration.
//
// Configuration is TOML with one section per subsystem. Load applies
// defaults, decodes the file when present, expands all path fields, and
// fails fast on invalid combinations (for example trumping enabled with
// no archive root).
package config
