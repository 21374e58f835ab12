// Package logging assembles structured slog loggers for the console.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so request handlers and the
// rename engine tag log lines with job IDs and correlation IDs. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
