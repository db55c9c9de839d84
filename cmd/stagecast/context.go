package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"stagecast/internal/captions"
	"stagecast/internal/config"
	"stagecast/internal/creds"
	"stagecast/internal/journal"
	"stagecast/internal/logging"
	"stagecast/internal/notify"
	"stagecast/internal/pipeline"
	"stagecast/internal/platform"
	"stagecast/internal/readiness"
	"stagecast/internal/transfer"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
	})
	return c.logger, c.loggerErr
}

// buildOrchestrator wires the full pipeline from configuration. The caller
// owns Close on the returned store.
func (c *commandContext) buildOrchestrator() (*pipeline.Orchestrator, *journal.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	client, err := transfer.NewToolClient(cfg.Transfer.Command)
	if err != nil {
		return nil, nil, err
	}
	store, err := journal.Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	api := platform.NewClient(cfg, logger)
	threshold := cfg.Readiness.ReadyThreshold
	orch, err := pipeline.New(pipeline.Deps{
		Config:   cfg,
		Logger:   logger,
		Creds:    creds.NewStaticProvider(cfg),
		Selector: transfer.FirstLineSelector{},
		Executor: transfer.NewExecutor(client, cfg.Transfer.MaxAttempts,
			time.Duration(cfg.Transfer.RetryDelaySeconds)*time.Second, logger),
		Poller: readiness.NewPoller(api, cfg.Readiness.MaxAttempts,
			time.Duration(cfg.Readiness.IntervalSeconds)*time.Second, logger,
			readiness.WithReadyPredicate(func(state int) bool { return state >= threshold })),
		Submitter:  captions.NewSubmitter(api, cfg.Captions.DefaultLanguage, logger),
		Dispatcher: notify.NewDispatcher(cfg, logger),
		Store:      store,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return orch, store, nil
}

// resolveAssetDir accepts either a path or a bare directory name under the
// configured staging root.
func (c *commandContext) resolveAssetDir(arg string) (string, error) {
	expanded, err := config.ExpandPath(arg)
	if err != nil {
		return "", err
	}
	if info, statErr := os.Stat(expanded); statErr == nil && info.IsDir() {
		return expanded, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.Paths.StagingDir, arg), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
