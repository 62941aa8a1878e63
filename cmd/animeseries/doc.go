// Package main hosts the animeseries CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration once, then hands off to
// the internal packages: consolidation runs, series browsing, checkpoint
// maintenance, configuration scaffolding and preflight checks.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
