package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"stagecast/internal/media"
	"stagecast/internal/metadata"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var (
		title       string
		zone        int
		tags        []string
		description string
		cover       string
	)

	cmd := &cobra.Command{
		Use:   "validate <dir>",
		Short: "Check a staging directory and metadata without publishing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assetDir, err := ctx.resolveAssetDir(args[0])
			if err != nil {
				return err
			}
			found, err := media.Discover(assetDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(found.Videos)+len(found.Captions)+1)
			for _, video := range found.Videos {
				rows = append(rows, []string{"video", filepath.Base(video.Path)})
			}
			if found.Cover != nil {
				rows = append(rows, []string{"cover", filepath.Base(found.Cover.Path)})
			}
			for _, caption := range found.Captions {
				rows = append(rows, []string{"caption", filepath.Base(caption)})
			}
			fmt.Fprintln(out, renderTable(out, []string{"ROLE", "FILE"}, rows, nil))

			if len(found.Videos) == 0 {
				fmt.Fprintln(out, "FAIL: no video files found")
				return fmt.Errorf("staging directory %s holds no publishable video", assetDir)
			}

			req := metadata.Request{
				ZoneID:      zone,
				Title:       title,
				Tags:        tags,
				Description: description,
				CoverRef:    cover,
			}
			if req.CoverRef == "" && found.Cover != nil {
				req.CoverRef = found.Cover.Path
			}
			violations := metadata.Validate(req)
			if len(violations) == 0 {
				fmt.Fprintln(out, "Metadata valid")
				return nil
			}
			for _, violation := range violations {
				fmt.Fprintf(out, "FAIL: %s\n", violation)
			}
			return fmt.Errorf("%d metadata violations", len(violations))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Publication title")
	cmd.Flags().IntVar(&zone, "zone", 0, "Platform zone (category) id")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Comma-separated publication tags")
	cmd.Flags().StringVar(&description, "desc", "", "Publication description")
	cmd.Flags().StringVar(&cover, "cover", "", "Cover image path")

	return cmd
}
