package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"stagecast/internal/captions"
	"stagecast/internal/config"
	"stagecast/internal/creds"
	"stagecast/internal/journal"
	"stagecast/internal/logging"
	"stagecast/internal/media"
	"stagecast/internal/metadata"
	"stagecast/internal/notify"
	"stagecast/internal/readiness"
	"stagecast/internal/services"
	"stagecast/internal/transfer"
)

const lockFileName = ".stagecast.lock"

// Deps bundles the collaborators an Orchestrator needs. Store may be nil;
// journal writes are then skipped.
type Deps struct {
	Config     *config.Config
	Logger     *slog.Logger
	Creds      creds.Provider
	Selector   transfer.LineSelector
	Executor   *transfer.Executor
	Poller     *readiness.Poller
	Submitter  *captions.Submitter
	Dispatcher notify.Dispatcher
	Store      *journal.Store
}

// Orchestrator runs the publication pipeline. The synchronous phase covers
// validation, line selection, and the transfer; readiness polling, caption
// submission, and the outcome webhook continue in the background.
type Orchestrator struct {
	cfg        *config.Config
	logger     *slog.Logger
	creds      creds.Provider
	selector   transfer.LineSelector
	executor   *transfer.Executor
	poller     *readiness.Poller
	submitter  *captions.Submitter
	dispatcher notify.Dispatcher
	store      *journal.Store
	runner     *Runner
}

// New validates the required collaborators and constructs an orchestrator.
func New(deps Deps) (*Orchestrator, error) {
	if deps.Config == nil || deps.Creds == nil || deps.Selector == nil || deps.Executor == nil {
		return nil, errors.New("pipeline requires config, credentials, line selector, and executor")
	}
	if deps.Poller == nil || deps.Submitter == nil || deps.Dispatcher == nil {
		return nil, errors.New("pipeline requires poller, submitter, and dispatcher")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		cfg:        deps.Config,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		creds:      deps.Creds,
		selector:   deps.Selector,
		executor:   deps.Executor,
		poller:     deps.Poller,
		submitter:  deps.Submitter,
		dispatcher: deps.Dispatcher,
		store:      deps.Store,
		runner:     NewRunner(logger),
	}, nil
}

// Wait blocks until every detached continuation has finished. Callers that
// exit right after Publish use this to let the background phase complete.
func (o *Orchestrator) Wait() {
	o.runner.Wait()
}

// Publish drives one publication run against a staging directory. It
// returns once the transfer has a single outcome; the post-transfer phase
// detaches into the background and never fails the caller.
func (o *Orchestrator) Publish(ctx context.Context, assetDir string, req metadata.Request) (transfer.Result, error) {
	correlationID, ok := services.CorrelationIDFromContext(ctx)
	if !ok {
		correlationID = uuid.NewString()
		ctx = services.WithCorrelationID(ctx, correlationID)
	}
	logger := o.logger.With(logging.String(logging.FieldCorrelationID, correlationID))

	lock := flock.New(filepath.Join(assetDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return transfer.Result{}, fmt.Errorf("acquire staging lock: %w", err)
	}
	if !locked {
		return transfer.Result{}, fmt.Errorf("staging directory %s is already being published", assetDir)
	}
	unlock := func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release staging lock", logging.Error(err))
		}
	}

	result, detached, err := o.publishLocked(ctx, logger, assetDir, req, unlock)
	if !detached {
		unlock()
	}
	return result, err
}

// publishLocked runs the synchronous phase. The returned bool reports
// whether a background continuation was launched; the continuation then
// owns the staging lock and releases it when it ends.
func (o *Orchestrator) publishLocked(ctx context.Context, logger *slog.Logger, assetDir string, req metadata.Request, unlock func()) (transfer.Result, bool, error) {
	correlationID, _ := services.CorrelationIDFromContext(ctx)

	found, err := media.Discover(assetDir)
	if err != nil {
		return transfer.Result{}, false, err
	}
	if len(found.Videos) == 0 {
		return transfer.Result{}, false, services.Wrap(services.ErrValidation, "pipeline", "discover assets",
			fmt.Sprintf("no video files in %s", assetDir), nil)
	}
	req = fillRequest(req, found)
	if len(req.Pages) != len(found.Videos) {
		return transfer.Result{}, false, services.Wrap(services.ErrValidation, "pipeline", "discover assets",
			fmt.Sprintf("%d pages declared for %d video files", len(req.Pages), len(found.Videos)), nil)
	}

	run := o.beginRun(ctx, correlationID, req)

	if err := metadata.ValidateStrict(req); err != nil {
		o.failRun(ctx, run, err)
		return transfer.Result{}, false, err
	}

	credential, err := o.creds.Valid(ctx)
	if err != nil {
		o.failRun(ctx, run, err)
		return transfer.Result{}, false, err
	}

	line, err := o.selector.Select(o.cfg.Platform.IngestLines)
	if err != nil {
		o.failRun(ctx, run, err)
		return transfer.Result{}, false, err
	}
	logger.Info("publication starting",
		logging.String("line", line),
		logging.Int("videos", len(found.Videos)),
		logging.Int("captions", len(found.Captions)),
	)

	result, err := o.executor.Run(ctx, transfer.Request{
		Assets:     collectAssets(found),
		Meta:       req,
		Credential: credential,
		Line:       line,
	})
	if err != nil {
		o.failRun(ctx, run, err)
		return transfer.Result{}, false, err
	}

	if run != nil {
		run.Status = journal.StatusTransferred
		run.RemoteMediaID = result.RemoteMediaID
		run.RemoteRef = result.RemoteRef
		o.updateRun(ctx, run)
	}

	if result.RemoteMediaID == "" {
		logger.Warn("transfer acknowledged without a remote media id; skipping readiness and captions")
		o.dispatcher.Dispatch(ctx, o.outcome(correlationID, result, journal.StatusTransferred, false, 0, ""))
		if run != nil && strings.TrimSpace(o.cfg.Notify.WebhookURL) != "" {
			run.Status = journal.StatusNotified
			o.updateRun(ctx, run)
		}
		return result, false, nil
	}

	bgCtx := context.WithoutCancel(ctx)
	o.runner.Go("publication "+correlationID, func() {
		defer unlock()
		o.continuePublication(bgCtx, logger, run, result, found, credential)
	})
	return result, true, nil
}

// continuePublication is the detached post-transfer phase. Nothing here
// propagates back to the caller; failures end up in the journal, the log,
// and the webhook payload.
func (o *Orchestrator) continuePublication(ctx context.Context, logger *slog.Logger, run *journal.Run, result transfer.Result, found media.Discovery, credential creds.Credential) {
	correlationID, _ := services.CorrelationIDFromContext(ctx)

	polled := o.poller.Poll(ctx, result.RemoteMediaID, credential)

	status := journal.StatusNotReady
	tracks := 0
	errMessage := ""
	switch polled.Outcome {
	case readiness.Ready:
		status = journal.StatusReady
		if o.cfg.Captions.Enabled && len(found.Captions) > 0 {
			tracks = o.submitter.SubmitAll(ctx, found, polled.Status, credential)
			if tracks > 0 {
				status = journal.StatusCaptioned
			}
		}
	case readiness.Aborted:
		status = journal.StatusFailed
		if polled.Err != nil {
			errMessage = polled.Err.Error()
		}
		logger.Error("readiness polling aborted", logging.Error(polled.Err))
	case readiness.NotReady:
		logger.Warn("asset did not become ready; captions deferred",
			logging.String(logging.FieldRemoteMediaID, result.RemoteMediaID))
	}

	if run != nil {
		run.Status = status
		run.CaptionTracks = tracks
		run.ErrorMessage = errMessage
		o.updateRun(ctx, run)
	}

	o.dispatcher.Dispatch(ctx, o.outcome(correlationID, result, status, polled.Outcome == readiness.Ready, tracks, errMessage))

	if run != nil && strings.TrimSpace(o.cfg.Notify.WebhookURL) != "" && status != journal.StatusFailed {
		run.Status = journal.StatusNotified
		o.updateRun(ctx, run)
	}
}

func (o *Orchestrator) outcome(correlationID string, result transfer.Result, status journal.Status, ready bool, tracks int, errMessage string) notify.Outcome {
	return notify.Outcome{
		CorrelationID: correlationID,
		RemoteMediaID: result.RemoteMediaID,
		RemoteRef:     result.RemoteRef,
		Status:        string(status),
		Ready:         ready,
		CaptionTracks: tracks,
		Error:         errMessage,
		FinishedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

func (o *Orchestrator) beginRun(ctx context.Context, correlationID string, req metadata.Request) *journal.Run {
	if o.store == nil {
		return nil
	}
	run, err := o.store.Begin(ctx, correlationID, req.Title, req.ZoneID)
	if err != nil {
		o.logger.Warn("journal write failed", logging.Error(err))
		return nil
	}
	return run
}

func (o *Orchestrator) failRun(ctx context.Context, run *journal.Run, cause error) {
	if run == nil {
		return
	}
	run.Status = journal.StatusFailed
	run.ErrorMessage = cause.Error()
	o.updateRun(ctx, run)
}

func (o *Orchestrator) updateRun(ctx context.Context, run *journal.Run) {
	if o.store == nil || run == nil {
		return
	}
	if err := o.store.Update(ctx, run); err != nil {
		o.logger.Warn("journal update failed", logging.Error(err))
	}
}

// fillRequest derives the pieces of the request the staging directory can
// supply: a cover fallback and one page per video when none were given.
func fillRequest(req metadata.Request, found media.Discovery) metadata.Request {
	if req.CoverRef == "" && found.Cover != nil {
		req.CoverRef = found.Cover.Path
	}
	if len(req.Pages) == 0 {
		for i, video := range found.Videos {
			name := filepath.Base(video.Path)
			name = strings.TrimSuffix(name, filepath.Ext(name))
			req.Pages = append(req.Pages, metadata.Page{Title: name, Ordinal: i + 1})
		}
	}
	return req
}

func collectAssets(found media.Discovery) []media.Asset {
	assets := make([]media.Asset, 0, len(found.Videos)+1)
	assets = append(assets, found.Videos...)
	if found.Cover != nil {
		assets = append(assets, *found.Cover)
	}
	return assets
}
