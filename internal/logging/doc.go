// Package logging assembles structured slog loggers and formatting helpers used
// across the consolidation engine and CLI.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so engine code automatically tags
// log lines with the run ID, the catalog external ID, and the per-record stage.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
