package creds

import (
	"context"
	"strings"

	"stagecast/internal/config"
	"stagecast/internal/services"
)

// Credential carries the platform session fields every remote call needs.
type Credential struct {
	SessionToken string
	CSRFToken    string
	DeviceID     string
}

// Complete reports whether the fields required for publication are set.
// The device id is optional on the platform's upload path.
func (c Credential) Complete() bool {
	return strings.TrimSpace(c.SessionToken) != "" && strings.TrimSpace(c.CSRFToken) != ""
}

// Provider hands out a credential valid for the current session. Refresh is
// the provider's concern; the pipeline only asks for a usable credential.
type Provider interface {
	Valid(ctx context.Context) (Credential, error)
}

// StaticProvider serves a fixed credential read from configuration.
type StaticProvider struct {
	credential Credential
}

// NewStaticProvider builds a provider from configured platform settings.
func NewStaticProvider(cfg *config.Config) *StaticProvider {
	return &StaticProvider{
		credential: Credential{
			SessionToken: cfg.Platform.SessionToken,
			CSRFToken:    cfg.Platform.CSRFToken,
			DeviceID:     cfg.Platform.DeviceID,
		},
	}
}

func (p *StaticProvider) Valid(ctx context.Context) (Credential, error) {
	if !p.credential.Complete() {
		return Credential{}, services.Wrap(services.ErrConfiguration, "creds", "load credential",
			"platform session_token and csrf_token must be configured", nil)
	}
	return p.credential, nil
}
