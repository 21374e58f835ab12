// Package logs reads the ripconsole log file for the `ripconsole logs`
// command.
//
// Tail returns the last N lines that match a Filter together with the byte
// offset to resume from; Follow polls from that offset until the context is
// cancelled. Filters understand both the console and JSON handler formats
// written by internal/logging, so a rename batch or a single job can be
// traced without knowing which format the log was written in.
package logs
