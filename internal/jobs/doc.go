// Package jobs persists completed rip jobs in SQLite and exposes the queries
// the console needs to browse and rename them.
//
// The ripper writes job records; the console reads them, filters the ones
// eligible for batch renaming, and updates their output path and manual title
// after a folder is renamed. Every update is a single UPDATE statement so a
// partially renamed batch never leaves a half-written record behind.
//
// Schema changes bump schemaVersion in schema.go; users recreate the database
// to adopt the new schema.
package jobs
