package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stagecast/internal/logging"
	"stagecast/internal/services"
)

// Executor retries the chunked transfer with a bounded budget. Each attempt
// opens a fresh session; a failed attempt never reuses partial chunks.
type Executor struct {
	client      Client
	maxAttempts int
	delay       time.Duration
	logger      *slog.Logger
}

// NewExecutor constructs a resilient transfer executor. maxAttempts below 1
// is clamped to 1; a negative delay is treated as zero.
func NewExecutor(client Client, maxAttempts int, delay time.Duration, logger *slog.Logger) *Executor {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if delay < 0 {
		delay = 0
	}
	return &Executor{
		client:      client,
		maxAttempts: maxAttempts,
		delay:       delay,
		logger:      logging.NewComponentLogger(logger, "transfer"),
	}
}

// Run drives the transfer to a single outcome: the result of the first
// successful attempt, or a terminal error carrying the last failure once
// the attempt budget is exhausted.
func (e *Executor) Run(ctx context.Context, req Request) (Result, error) {
	var lastErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		result, err := e.attempt(ctx, req)
		if err == nil {
			e.logger.Info("transfer complete",
				logging.Int(logging.FieldAttempt, attempt),
				logging.String(logging.FieldRemoteMediaID, result.RemoteMediaID),
			)
			return result, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{}, err
		}
		// Validation and configuration failures cannot succeed on retry.
		if services.IsHardFailure(err) {
			return Result{}, err
		}
		lastErr = err
		e.logger.Warn("transfer attempt failed",
			logging.Int(logging.FieldAttempt, attempt),
			logging.Int("max_attempts", e.maxAttempts),
			logging.Error(err),
		)
		if attempt < e.maxAttempts {
			if err := e.sleep(ctx); err != nil {
				return Result{}, err
			}
		}
	}
	return Result{}, services.Wrap(services.ErrTerminal, "transfer", "upload",
		fmt.Sprintf("%d attempts exhausted", e.maxAttempts), lastErr)
}

// attempt opens one session and consumes its lifecycle sequence to a single
// outcome. The event stream never escapes this method.
func (e *Executor) attempt(ctx context.Context, req Request) (Result, error) {
	session, err := e.client.NewSession(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("open transfer session: %w", err)
	}

	startErr := make(chan error, 1)
	go func() {
		startErr <- session.Start(ctx)
	}()

	var terminal *Event
	for event := range session.Events() {
		e.logger.Debug("transfer event",
			logging.String(logging.FieldEventType, string(event.Kind)),
			logging.String("detail", event.Detail),
		)
		if event.Terminal() {
			captured := event
			terminal = &captured
		}
	}

	if err := <-startErr; err != nil {
		return Result{}, fmt.Errorf("transfer transport: %w", err)
	}
	if terminal == nil {
		return Result{}, errors.New("transfer session ended without a terminal event")
	}

	switch terminal.Kind {
	case EventComplete:
		if terminal.Result == nil {
			return Result{}, errors.New("complete event carried no result")
		}
		return *terminal.Result, nil
	case EventPreuploadFailed:
		return Result{}, fmt.Errorf("preupload failed: %s", terminal.Detail)
	default:
		return Result{}, fmt.Errorf("transfer failed: %s", terminal.Detail)
	}
}

func (e *Executor) sleep(ctx context.Context) error {
	if e.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.delay):
		return nil
	}
}
