package transfer

import (
	"context"

	"stagecast/internal/creds"
	"stagecast/internal/media"
	"stagecast/internal/metadata"
)

// EventKind identifies a lifecycle event emitted by a transfer session.
type EventKind string

const (
	EventQueued          EventKind = "QUEUED"
	EventTransferring    EventKind = "TRANSFERRING"
	EventPreuploadFailed EventKind = "PREUPLOAD_FAILED"
	EventFailed          EventKind = "FAILED"
	EventComplete        EventKind = "COMPLETE"
)

// Event is one entry in a session's ordered lifecycle sequence. Exactly one
// terminal event (EventComplete, EventFailed, or EventPreuploadFailed) ends
// the sequence; Result is populated only on EventComplete.
type Event struct {
	Kind   EventKind
	Detail string
	Result *Result
}

// Terminal reports whether the event ends the session's sequence.
func (e Event) Terminal() bool {
	switch e.Kind {
	case EventComplete, EventFailed, EventPreuploadFailed:
		return true
	}
	return false
}

// Result carries the opaque remote identifiers returned on success.
type Result struct {
	// RemoteMediaID addresses the published asset for readiness polling and
	// caption attachment. Empty when the platform acknowledged the upload
	// without assigning an id yet.
	RemoteMediaID string
	// RemoteRef is the platform's user-facing reference, when provided.
	RemoteRef string
}

// Request bundles everything one transfer session needs.
type Request struct {
	Assets     []media.Asset
	Meta       metadata.Request
	Credential creds.Credential
	Line       string
}

// Session is one attempt of the underlying chunked-transfer protocol.
// Events returns the ordered lifecycle sequence; Start begins the transfer
// and returns once the sequence has ended or the transport failed.
type Session interface {
	Events() <-chan Event
	Start(ctx context.Context) error
}

// Client opens transfer sessions against the external subsystem. Each call
// returns a fresh session; partial chunks never carry across sessions.
type Client interface {
	NewSession(ctx context.Context, req Request) (Session, error)
}
