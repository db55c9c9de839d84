// Package logging builds the slog loggers used across stagecast.
//
// It supports a human-readable console format and a JSON format, both
// selected through configuration. Attr helpers keep field names consistent
// between the pipeline stages, and NewNop supplies a discard logger for
// tests and optional dependencies.
package logging
