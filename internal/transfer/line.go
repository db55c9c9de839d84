package transfer

import "stagecast/internal/services"

// LineSelector picks one ingestion endpoint from an ordered candidate list.
// Implementations may probe latency or load; the contract with the executor
// does not change.
type LineSelector interface {
	Select(candidates []string) (string, error)
}

// FirstLineSelector deterministically picks the first candidate.
type FirstLineSelector struct{}

func (FirstLineSelector) Select(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", services.Wrap(services.ErrConfiguration, "transfer", "select line", "no ingest lines configured", nil)
	}
	return candidates[0], nil
}
