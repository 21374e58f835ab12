// Package config loads, normalizes, and validates ripconsole configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// RIPCONSOLE_API_TOKEN. The Config type centralizes every knob the HTTP server
// and CLI need, so the job database location, log routing, and rename policy
// are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
