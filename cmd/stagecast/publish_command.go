package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stagecast/internal/metadata"
	"stagecast/internal/services"
)

// awaitCompletion blocks until the background continuation finishes or the
// signal context is cancelled. It reports whether the continuation
// completed.
func awaitCompletion(ctx context.Context, waiter interface{ Wait() }, out io.Writer) bool {
	done := make(chan struct{})
	go func() {
		waiter.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		fmt.Fprintln(out, "Interrupted; readiness, captions, and the webhook may not have finished.")
		return false
	}
}

func newPublishCommand(ctx *commandContext) *cobra.Command {
	var (
		title         string
		zone          int
		tags          []string
		description   string
		cover         string
		source        string
		noReprint     bool
		correlationID string
		wait          bool
	)

	cmd := &cobra.Command{
		Use:   "publish <dir>",
		Short: "Publish a staging directory to the platform",
		Long: "Validates the staged assets and metadata, uploads them through the " +
			"configured transfer tool, then polls readiness, submits captions, and " +
			"fires the outcome webhook.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assetDir, err := ctx.resolveAssetDir(args[0])
			if err != nil {
				return err
			}
			orch, store, err := ctx.buildOrchestrator()
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if correlationID != "" {
				runCtx = services.WithCorrelationID(runCtx, correlationID)
			}

			req := metadata.Request{
				ZoneID:            zone,
				Title:             title,
				Tags:              tags,
				Description:       description,
				CoverRef:          cover,
				DisallowReprint:   noReprint,
				SourceAttribution: source,
			}

			result, err := orch.Publish(runCtx, assetDir, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transfer complete: %s", result.RemoteMediaID)
			if result.RemoteRef != "" {
				fmt.Fprintf(out, " (%s)", result.RemoteRef)
			}
			fmt.Fprintln(out)

			if !wait {
				fmt.Fprintln(out, "Exiting without waiting; readiness, captions, and the webhook may not finish.")
				return nil
			}
			fmt.Fprintln(out, "Waiting for readiness, captions, and the webhook (Ctrl-C to stop early)...")
			awaitCompletion(runCtx, orch, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Publication title")
	cmd.Flags().IntVar(&zone, "zone", 0, "Platform zone (category) id")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Comma-separated publication tags")
	cmd.Flags().StringVar(&description, "desc", "", "Publication description")
	cmd.Flags().StringVar(&cover, "cover", "", "Cover image path (defaults to the first image in the directory)")
	cmd.Flags().StringVar(&source, "source", "", "Source attribution URL for reprinted content")
	cmd.Flags().BoolVar(&noReprint, "no-reprint", false, "Ask the platform to forbid re-publication")
	cmd.Flags().StringVar(&correlationID, "correlation-id", "", "Correlation id for logs, journal, and webhook (generated when empty)")
	cmd.Flags().BoolVar(&wait, "wait", true, "Wait for the post-transfer steps before exiting")

	return cmd
}
