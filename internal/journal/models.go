package journal

import "time"

// Status tracks how far a publication run progressed.
type Status string

const (
	StatusStarted     Status = "started"
	StatusTransferred Status = "transferred"
	StatusFailed      Status = "failed"
	StatusReady       Status = "ready"
	StatusNotReady    Status = "not_ready"
	StatusCaptioned   Status = "captioned"
	StatusNotified    Status = "notified"
)

// Run is one recorded publication attempt.
type Run struct {
	ID            int64
	CorrelationID string
	Title         string
	ZoneID        int
	Status        Status
	RemoteMediaID string
	RemoteRef     string
	CaptionTracks int
	ErrorMessage  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
