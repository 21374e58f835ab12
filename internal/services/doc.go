// Package services defines shared utilities consumed by the batch rename
// engine, the HTTP API, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp job IDs, operation names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (validation vs not found vs internal) with errors.Is.
//
// Use these helpers when wiring new entry points so error handling and
// observability stay uniform across transports.
package services
