package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlatform()
	c.normalizeTuning()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlatform() {
	if c.Platform.SessionToken == "" {
		if value, ok := os.LookupEnv("STAGECAST_SESSION_TOKEN"); ok {
			c.Platform.SessionToken = value
		}
	}
	if c.Platform.CSRFToken == "" {
		if value, ok := os.LookupEnv("STAGECAST_CSRF_TOKEN"); ok {
			c.Platform.CSRFToken = value
		}
	}
	if c.Platform.DeviceID == "" {
		if value, ok := os.LookupEnv("STAGECAST_DEVICE_ID"); ok {
			c.Platform.DeviceID = value
		}
	}

	c.Platform.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.Platform.APIBaseURL), "/")
	if c.Platform.APIBaseURL == "" {
		c.Platform.APIBaseURL = defaultAPIBaseURL
	}

	lines := make([]string, 0, len(c.Platform.IngestLines))
	for _, line := range c.Platform.IngestLines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, defaultIngestLines...)
	}
	c.Platform.IngestLines = lines
}

func (c *Config) normalizeTuning() {
	command := make([]string, 0, len(c.Transfer.Command))
	for _, part := range c.Transfer.Command {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			command = append(command, trimmed)
		}
	}
	if len(command) == 0 {
		command = append(command, defaultTransferCommand...)
	}
	c.Transfer.Command = command
	if c.Transfer.MaxAttempts <= 0 {
		c.Transfer.MaxAttempts = defaultTransferMaxAttempts
	}
	if c.Transfer.RetryDelaySeconds < 0 {
		c.Transfer.RetryDelaySeconds = defaultTransferRetryDelay
	}
	if c.Readiness.MaxAttempts <= 0 {
		c.Readiness.MaxAttempts = defaultReadinessMaxAttempts
	}
	if c.Readiness.IntervalSeconds < 0 {
		c.Readiness.IntervalSeconds = defaultReadinessInterval
	}
	if c.Notify.RequestTimeoutSeconds <= 0 {
		c.Notify.RequestTimeoutSeconds = defaultNotifyTimeout
	}
	if strings.TrimSpace(c.Captions.DefaultLanguage) == "" {
		c.Captions.DefaultLanguage = defaultCaptionLanguage
	}
	c.Notify.WebhookURL = strings.TrimSpace(c.Notify.WebhookURL)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
