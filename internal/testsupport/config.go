package testsupport

import (
	"path/filepath"
	"testing"

	"stagecast/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test
// and complete platform credentials. It applies any provided options and
// creates the directories before returning.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StagingDir = filepath.Join(base, "staging")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Platform.SessionToken = "test-session"
	cfgVal.Platform.CSRFToken = "test-csrf"
	cfgVal.Platform.DeviceID = "test-device"
	cfgVal.Transfer.RetryDelaySeconds = 0
	cfgVal.Readiness.IntervalSeconds = 0

	cfg := &cfgVal
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure config directories: %v", err)
	}
	return cfg
}

// WithWebhook sets the outcome webhook endpoint on the test config.
func WithWebhook(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Notify.WebhookURL = url
	}
}

// WithCaptionsDisabled turns off caption submission on the test config.
func WithCaptionsDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Captions.Enabled = false
	}
}

// WithIngestLines overrides the candidate ingest lines on the test config.
func WithIngestLines(lines ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Platform.IngestLines = lines
	}
}
