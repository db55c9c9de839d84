// Package transfer drives the chunked upload of staged assets through an
// external transfer subsystem.
//
// The subsystem exposes a subscribe-then-start session emitting an ordered
// lifecycle event sequence; the executor consumes that sequence internally
// and converts it to a single result or terminal failure, retrying with a
// fresh session on each failed attempt. Callers never see the event
// abstraction.
package transfer
