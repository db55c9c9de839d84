// Package pipeline orchestrates a publication run end to end: staging
// directory discovery, metadata validation, the chunked transfer, and the
// detached post-transfer continuation that polls readiness, submits
// captions, and dispatches the outcome webhook.
package pipeline
