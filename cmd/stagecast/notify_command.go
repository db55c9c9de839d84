package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stagecast/internal/notify"
)

func newNotifyCommand(ctx *commandContext) *cobra.Command {
	notifyCmd := &cobra.Command{
		Use:   "notify",
		Short: "Webhook utilities",
	}
	notifyCmd.AddCommand(newNotifyTestCommand(ctx))
	return notifyCmd
}

func newNotifyTestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Send a test payload to the configured webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Notify.WebhookURL) == "" {
				return fmt.Errorf("notify.webhook_url is not configured")
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			dispatcher := notify.NewDispatcher(cfg, logger)
			dispatcher.Dispatch(cmd.Context(), notify.Outcome{
				CorrelationID: "notify-test",
				Status:        "test",
				FinishedAt:    time.Now().UTC().Format(time.RFC3339),
			})

			fmt.Fprintf(cmd.OutOrStdout(), "Test payload dispatched to %s (delivery failures are logged, not returned)\n", cfg.Notify.WebhookURL)
			return nil
		},
	}
}
