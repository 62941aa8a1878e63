// Package preflight provides readiness checks for the filesystem paths and the
// catalog API that a consolidation run depends on.
//
// These checks run in two contexts:
//   - The consolidate command calls RunAll before taking the run lock and
//     refuses to start when a check fails.
//   - The CLI "animeseries preflight" command prints every result.
package preflight
