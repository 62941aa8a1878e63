// Package services defines shared utilities consumed by the consolidation
// engine and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, catalog external IDs, and stage
//     names for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (not found, persistence, malformed input) with errors.Is.
//
// Use these helpers when wiring new engine logic so operational behaviour
// (error handling, observability) stays uniform across the run.
package services
