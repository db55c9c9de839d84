package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stagecast/internal/captions"
	"stagecast/internal/language"
)

func newCaptionsCommand(ctx *commandContext) *cobra.Command {
	captionsCmd := &cobra.Command{
		Use:   "captions",
		Short: "Caption utilities",
	}
	captionsCmd.AddCommand(newCaptionsParseCommand(ctx))
	return captionsCmd
}

func newCaptionsParseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file.srt>",
		Short: "Parse a caption file and show the cues that would be submitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cues, err := captions.ParseSRT(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			lang := language.FromFilename(args[0], cfg.Captions.DefaultLanguage)
			fmt.Fprintf(out, "Language: %s\n", lang)
			fmt.Fprintf(out, "Cues: %d\n", len(cues))
			if len(cues) == 0 {
				fmt.Fprintln(out, "File would be skipped: no well-formed cues")
				return nil
			}

			rows := make([][]string, 0, len(cues))
			for _, cue := range cues {
				rows = append(rows, []string{
					captions.FormatTimecode(cue.Start),
					captions.FormatTimecode(cue.End),
					cue.Text,
				})
			}
			fmt.Fprintln(out, renderTable(out, []string{"START", "END", "TEXT"}, rows, nil))
			return nil
		},
	}
}
