package readiness

import (
	"context"
	"errors"
	"testing"

	"stagecast/internal/creds"
	"stagecast/internal/logging"
	"stagecast/internal/services"
)

type scriptedStatus struct {
	responses []func() (Status, error)
	calls     int
}

func (s *scriptedStatus) Query(context.Context, string, creds.Credential) (Status, error) {
	if s.calls >= len(s.responses) {
		return Status{}, errors.New("no more scripted responses")
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp()
}

func processing() func() (Status, error) {
	return func() (Status, error) { return Status{State: -1}, nil }
}

func ready(state int) func() (Status, error) {
	return func() (Status, error) {
		return Status{State: state, Pages: []Page{{CID: 100, Ordinal: 1, Title: "P1"}}}, nil
	}
}

func TestPollerNotReadyAfterBudget(t *testing.T) {
	status := &scriptedStatus{responses: []func() (Status, error){
		processing(), processing(), processing(),
	}}
	poller := NewPoller(status, 3, 0, logging.NewNop())

	result := poller.Poll(context.Background(), "av1", creds.Credential{})
	if result.Outcome != NotReady {
		t.Fatalf("outcome = %v, want NotReady", result.Outcome)
	}
	if status.calls != 3 {
		t.Errorf("polls = %d, want 3", status.calls)
	}
}

func TestPollerReadyOnSecondAttempt(t *testing.T) {
	status := &scriptedStatus{responses: []func() (Status, error){
		processing(), ready(0),
	}}
	poller := NewPoller(status, 3, 0, logging.NewNop())

	result := poller.Poll(context.Background(), "av1", creds.Credential{})
	if result.Outcome != Ready {
		t.Fatalf("outcome = %v, want Ready", result.Outcome)
	}
	if status.calls != 2 {
		t.Errorf("polls = %d, want 2", status.calls)
	}
	if len(result.Status.Pages) != 1 || result.Status.Pages[0].CID != 100 {
		t.Errorf("ready result should carry the status pages, got %+v", result.Status)
	}
}

func TestPollerTreatsNotFoundAsProcessing(t *testing.T) {
	status := &scriptedStatus{responses: []func() (Status, error){
		func() (Status, error) { return Status{}, services.ErrNotFound },
		ready(1),
	}}
	poller := NewPoller(status, 3, 0, logging.NewNop())

	result := poller.Poll(context.Background(), "av1", creds.Credential{})
	if result.Outcome != Ready {
		t.Fatalf("outcome = %v, want Ready", result.Outcome)
	}
}

func TestPollerAbortsOnUnexpectedError(t *testing.T) {
	boom := errors.New("remote exploded")
	status := &scriptedStatus{responses: []func() (Status, error){
		func() (Status, error) { return Status{}, boom },
		ready(0),
	}}
	poller := NewPoller(status, 5, 0, logging.NewNop())

	result := poller.Poll(context.Background(), "av1", creds.Credential{})
	if result.Outcome != Aborted {
		t.Fatalf("outcome = %v, want Aborted", result.Outcome)
	}
	if !errors.Is(result.Err, boom) {
		t.Errorf("aborted result should carry the error, got %v", result.Err)
	}
	if status.calls != 1 {
		t.Errorf("polls = %d, want 1 (short-circuit)", status.calls)
	}
}

func TestPollerCustomReadyPredicate(t *testing.T) {
	status := &scriptedStatus{responses: []func() (Status, error){
		ready(0), ready(1),
	}}
	poller := NewPoller(status, 2, 0, logging.NewNop(),
		WithReadyPredicate(func(state int) bool { return state >= 1 }))

	result := poller.Poll(context.Background(), "av1", creds.Credential{})
	if result.Outcome != Ready {
		t.Fatalf("outcome = %v, want Ready", result.Outcome)
	}
	if status.calls != 2 {
		t.Errorf("polls = %d, want 2 (state 0 should not satisfy threshold 1)", status.calls)
	}
}
