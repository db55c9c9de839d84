package pipeline

import (
	"fmt"
	"log/slog"
	"sync"

	"stagecast/internal/logging"
)

// Runner tracks detached background tasks and keeps their panics from
// crossing goroutine boundaries.
type Runner struct {
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewRunner constructs a task runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logging.NewComponentLogger(logger, "pipeline")}
}

// Go launches fn in the background. A panic inside fn is recovered and
// logged so one broken continuation cannot take the process down.
func (r *Runner) Go(name string, fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("background task panicked",
					logging.String("task", name),
					logging.Error(fmt.Errorf("%v", rec)),
				)
			}
		}()
		fn()
	}()
}

// Wait blocks until every launched task has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}
