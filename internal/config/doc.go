// Package config loads, normalizes, and validates animeseries configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// ANIMESERIES_CATALOG_URL and ANIMESERIES_DATA_DIR. Paths that are left empty
// are derived from the data directory so a single setting relocates the
// database, checkpoint, lock file and logs together.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
