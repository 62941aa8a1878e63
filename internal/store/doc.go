// Package store persists anime records and the series that group them in
// SQLite.
//
// The Store manages the database connection, schema initialization, busy
// retries, and the small set of lookups and mutations consolidation needs:
// anime by catalog id, series by id or title fragment, series membership, and
// aggregate updates. Relation edges and theme songs are stored in child tables
// and loaded with their anime.
//
// Schema changes bump schemaVersion in schema.go; an existing database with a
// different version is rejected rather than migrated.
package store
