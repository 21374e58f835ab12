// Package api defines wire-format types and services for the HTTP API and the
// CLI. It translates jobs and batch rename results into transport-friendly
// DTOs so front ends render them without coupling to internal types.
//
// DTOs use snake_case JSON tags to match the browser console that drives the
// batch rename workflow. Enums are exposed as lowercase strings and timestamps
// use RFC3339 with milliseconds.
package api
