// Package config loads, normalizes, and validates stagecast configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for the
// platform session credentials. The Config type centralizes every knob the
// CLI and pipeline need: staging directories, ingest lines, retry and poll
// tuning, caption handling, and the result webhook.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
