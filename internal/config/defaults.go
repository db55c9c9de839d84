package config

const (
	defaultStagingDir = "~/.local/share/stagecast/staging"
	defaultLogDir     = "~/.local/share/stagecast/logs"

	defaultAPIBaseURL = "https://api.bilibili.com"

	defaultTransferMaxAttempts = 3
	defaultTransferRetryDelay  = 5

	defaultReadinessMaxAttempts = 5
	defaultReadinessInterval    = 15
	defaultReadyThreshold       = 0

	defaultCaptionLanguage = "en"

	defaultNotifyTimeout = 30

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Ingest lines observed on the platform's upload endpoint; the selector
// picks the first reachable entry.
var defaultIngestLines = []string{
	"upos-fs-gcs-bse.bilibili.com",
	"upos-fs-gcs-ali.bilibili.com",
}

// The uploader tool speaks the chunked transfer protocol and reports
// lifecycle events as JSON lines on stdout.
var defaultTransferCommand = []string{"stagecast-uploader"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Platform: Platform{
			APIBaseURL:  defaultAPIBaseURL,
			IngestLines: append([]string{}, defaultIngestLines...),
		},
		Transfer: Transfer{
			Command:           append([]string{}, defaultTransferCommand...),
			MaxAttempts:       defaultTransferMaxAttempts,
			RetryDelaySeconds: defaultTransferRetryDelay,
		},
		Readiness: Readiness{
			MaxAttempts:     defaultReadinessMaxAttempts,
			IntervalSeconds: defaultReadinessInterval,
			ReadyThreshold:  defaultReadyThreshold,
		},
		Captions: Captions{
			Enabled:         true,
			DefaultLanguage: defaultCaptionLanguage,
		},
		Notify: Notify{
			RequestTimeoutSeconds: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
