package captions

import (
	"context"
	"log/slog"

	"stagecast/internal/creds"
	"stagecast/internal/language"
	"stagecast/internal/logging"
	"stagecast/internal/media"
	"stagecast/internal/readiness"
)

// SubmitClient attaches one caption track to a published part.
type SubmitClient interface {
	Submit(ctx context.Context, partCID int64, lang string, body Body, credential creds.Credential) error
}

// Submitter parses the caption files of a staging directory and submits one
// track per detected language.
type Submitter struct {
	client          SubmitClient
	defaultLanguage string
	logger          *slog.Logger
}

// NewSubmitter constructs a caption submitter.
func NewSubmitter(client SubmitClient, defaultLanguage string, logger *slog.Logger) *Submitter {
	return &Submitter{
		client:          client,
		defaultLanguage: defaultLanguage,
		logger:          logging.NewComponentLogger(logger, "captions"),
	}
}

// SubmitAll processes every caption file discovered in the staging
// directory against the first page of the publication. Per-file errors are
// logged and skipped; they never abort the remaining files. The number of
// successfully submitted tracks is returned.
func (s *Submitter) SubmitAll(ctx context.Context, found media.Discovery, status readiness.Status, credential creds.Credential) int {
	if len(found.Captions) == 0 {
		return 0
	}
	if len(status.Pages) == 0 {
		s.logger.Warn("no page identifiers in remote status; captions skipped")
		return 0
	}

	// Captions attach to the first part only. Covering later parts would
	// need per-part caption files the staging convention does not define.
	target := status.Pages[0]
	if len(status.Pages) > 1 {
		s.logger.Warn("multi-part publication; only the first part will be captioned",
			logging.Int("parts", len(status.Pages)),
		)
	}

	submitted := 0
	for _, path := range found.Captions {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("caption submission interrupted", logging.Error(err))
			return submitted
		}
		if s.submitFile(ctx, path, target, credential) {
			submitted++
		}
	}
	return submitted
}

func (s *Submitter) submitFile(ctx context.Context, path string, target readiness.Page, credential creds.Credential) bool {
	cues, err := ParseSRT(path)
	if err != nil {
		s.logger.Warn("caption file unreadable", logging.String("file", path), logging.Error(err))
		return false
	}
	if len(cues) == 0 {
		s.logger.Warn("caption file produced no cues; skipped", logging.String("file", path))
		return false
	}

	track := Track{
		Language: language.FromFilename(path, s.defaultLanguage),
		Cues:     cues,
	}
	if err := s.client.Submit(ctx, target.CID, track.Language, NewBody(track), credential); err != nil {
		s.logger.Warn("caption submission failed",
			logging.String("file", path),
			logging.String("language", track.Language),
			logging.Error(err),
		)
		return false
	}

	s.logger.Info("caption track submitted",
		logging.String("language", track.Language),
		logging.Int("cues", len(cues)),
	)
	return true
}
