// Package config loads, normalizes, and validates romclerk configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Scan extensions are canonicalized to
// lowercase dotted form, report and journal locations default to the log
// directory, and validation errors name the offending key.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and canonical log formats.
package config
