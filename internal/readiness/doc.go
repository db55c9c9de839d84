// Package readiness polls the remote platform until a published asset has
// finished server-side processing.
//
// The poller is a small state machine: each attempt queries the remote
// status record and applies a configurable ready predicate to its numeric
// state field. A missing record counts as still processing; running out of
// attempts is graceful degradation, not an error.
package readiness
