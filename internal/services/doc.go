// Package services defines shared utilities consumed by the pipeline stages
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and stage names for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     (validation vs transient vs terminal) for callers of the pipeline.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error handling, observability, retries) stays uniform across the pipeline.
package services
