// Package library persists the disc library in SQLite: one row per ripped
// disc, tracking its pipeline status and artifact paths.
//
// The database lives in the cache directory and is an index, not the source
// of truth; the rip directory's files are authoritative and the library can
// be dropped and rebuilt from them. Schema changes bump the version in
// schema.go and recreate the tables.
package library
