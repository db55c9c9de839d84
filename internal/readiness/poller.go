package readiness

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stagecast/internal/creds"
	"stagecast/internal/logging"
	"stagecast/internal/services"
)

// Status is the remote processing record for a published asset.
type Status struct {
	// State is the platform's numeric processing state. Negative values
	// mean still processing.
	State int
	// Pages lists the part identifiers of the publication, populated once
	// the platform has indexed the asset.
	Pages []Page
}

// Page identifies one part of the published asset.
type Page struct {
	CID     int64
	Ordinal int
	Title   string
}

// StatusClient queries the remote platform for a media identifier's status.
// Implementations return services.ErrNotFound while the asset is not yet
// indexed.
type StatusClient interface {
	Query(ctx context.Context, remoteMediaID string, credential creds.Credential) (Status, error)
}

// Outcome is the poller's terminal state.
type Outcome int

const (
	// NotReady means the attempt budget ran out before the asset was ready.
	NotReady Outcome = iota
	// Ready means the asset is publicly addressable for further operations.
	Ready
	// Aborted means an unexpected error cut polling short.
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case Ready:
		return "ready"
	case NotReady:
		return "not_ready"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result pairs the outcome with the last status observed when Ready.
type Result struct {
	Outcome Outcome
	Status  Status
	Err     error
}

// Poller drives the readiness state machine with a bounded attempt budget.
type Poller struct {
	status      StatusClient
	maxAttempts int
	interval    time.Duration
	ready       func(state int) bool
	logger      *slog.Logger
}

// Option configures optional Poller behavior.
type Option func(*Poller)

// WithReadyPredicate overrides the default state >= 0 readiness check. The
// platform does not document every state value, so deployments can adjust
// the threshold without code changes.
func WithReadyPredicate(pred func(state int) bool) Option {
	return func(p *Poller) {
		if pred != nil {
			p.ready = pred
		}
	}
}

// NewPoller constructs a readiness poller. maxAttempts below 1 is clamped
// to 1; a negative interval is treated as zero.
func NewPoller(status StatusClient, maxAttempts int, interval time.Duration, logger *slog.Logger, opts ...Option) *Poller {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if interval < 0 {
		interval = 0
	}
	p := &Poller{
		status:      status,
		maxAttempts: maxAttempts,
		interval:    interval,
		ready:       func(state int) bool { return state >= 0 },
		logger:      logging.NewComponentLogger(logger, "readiness"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll queries the remote status until the asset is ready, the budget runs
// out, or an unexpected error aborts the loop.
func (p *Poller) Poll(ctx context.Context, remoteMediaID string, credential creds.Credential) Result {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		status, err := p.status.Query(ctx, remoteMediaID, credential)
		switch {
		case err == nil && p.ready(status.State):
			p.logger.Info("asset ready",
				logging.String(logging.FieldRemoteMediaID, remoteMediaID),
				logging.Int(logging.FieldAttempt, attempt),
				logging.Int("state", status.State),
			)
			return Result{Outcome: Ready, Status: status}
		case err == nil:
			p.logger.Debug("asset still processing",
				logging.String(logging.FieldRemoteMediaID, remoteMediaID),
				logging.Int(logging.FieldAttempt, attempt),
				logging.Int("state", status.State),
			)
		case errors.Is(err, services.ErrNotFound):
			// Not indexed yet; same as still processing.
			p.logger.Debug("asset not yet indexed",
				logging.String(logging.FieldRemoteMediaID, remoteMediaID),
				logging.Int(logging.FieldAttempt, attempt),
			)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return Result{Outcome: Aborted, Err: err}
		default:
			p.logger.Error("readiness poll aborted",
				logging.String(logging.FieldRemoteMediaID, remoteMediaID),
				logging.Int(logging.FieldAttempt, attempt),
				logging.Error(err),
			)
			return Result{Outcome: Aborted, Err: err}
		}

		if attempt < p.maxAttempts {
			if err := p.sleep(ctx); err != nil {
				return Result{Outcome: Aborted, Err: err}
			}
		}
	}

	p.logger.Warn("asset not ready within attempt budget",
		logging.String(logging.FieldRemoteMediaID, remoteMediaID),
		logging.Int("max_attempts", p.maxAttempts),
	)
	return Result{Outcome: NotReady}
}

func (p *Poller) sleep(ctx context.Context) error {
	if p.interval <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.interval):
		return nil
	}
}
