package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"stagecast/internal/config"
	"stagecast/internal/logging"
)

const userAgent = "stagecast/0.1.0"

// Outcome is the JSON payload posted to the webhook.
type Outcome struct {
	CorrelationID string `json:"correlation_id"`
	RemoteMediaID string `json:"remote_media_id,omitempty"`
	RemoteRef     string `json:"remote_ref,omitempty"`
	Status        string `json:"status"`
	Ready         bool   `json:"ready"`
	CaptionTracks int    `json:"caption_tracks"`
	Error         string `json:"error,omitempty"`
	FinishedAt    string `json:"finished_at"`
}

// Dispatcher posts pipeline outcomes somewhere useful.
type Dispatcher interface {
	Dispatch(ctx context.Context, outcome Outcome)
}

// NewDispatcher builds a webhook dispatcher when a URL is configured and a
// no-op otherwise.
func NewDispatcher(cfg *config.Config, logger *slog.Logger) Dispatcher {
	url := strings.TrimSpace(cfg.Notify.WebhookURL)
	if url == "" {
		return noopDispatcher{}
	}
	timeout := time.Duration(cfg.Notify.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &webhookDispatcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logging.NewComponentLogger(logger, "notify"),
	}
}

type webhookDispatcher struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// Dispatch performs the single delivery attempt. Errors are logged, never
// returned; the pipeline result does not depend on the webhook.
func (d *webhookDispatcher) Dispatch(ctx context.Context, outcome Outcome) {
	if outcome.FinishedAt == "" {
		outcome.FinishedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if err := d.send(ctx, outcome); err != nil {
		d.logger.Warn("webhook delivery failed",
			logging.String(logging.FieldCorrelationID, outcome.CorrelationID),
			logging.Error(err),
		)
		return
	}
	d.logger.Info("webhook delivered",
		logging.String(logging.FieldCorrelationID, outcome.CorrelationID),
		logging.String("status", outcome.Status),
	)
}

func (d *webhookDispatcher) send(ctx context.Context, outcome Outcome) error {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(context.Context, Outcome) {}
