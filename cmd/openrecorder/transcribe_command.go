package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "transcribe [file...]",
		Short: "Transcribe recordings and store their transcripts",
		Long: `Transcribe one or more recordings through the configured transcription
service. Transcripts land in managed storage; language and duration are
recorded in the metadata database. Multiple files run sequentially under
the batch lock. With --folder, every supported recording under the folder
is transcribed instead of the listed files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}

			paths := args
			if folder != "" {
				if len(args) > 0 {
					return fmt.Errorf("pass either files or --folder, not both")
				}
				items, err := eng.scanner.Scan(cmd.Context(), folder)
				if err != nil {
					return err
				}
				for _, item := range items {
					paths = append(paths, item.Path)
				}
			}
			if len(paths) == 0 {
				return fmt.Errorf("nothing to transcribe")
			}

			meta, err := eng.openMetastore()
			if err != nil {
				return err
			}
			defer meta.Close()

			worker := eng.newTranscriber(meta)

			if len(paths) == 1 {
				result, err := worker.Single(cmd.Context(), paths[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Transcribed %s (%s, %s)\n",
					paths[0], result.Language, formatSeconds(result.Duration))
				return nil
			}

			results, err := worker.Batch(cmd.Context(), paths)
			if err != nil {
				return err
			}

			failed := 0
			for _, result := range results {
				if result.Err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAILED  %s: %v\n", result.Path, result.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "OK      %s (%s, %s)\n",
					result.Path, result.Transcript.Language, formatSeconds(result.Transcript.Duration))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d transcribed, %d failed\n", len(results)-failed, failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d transcriptions failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Transcribe every supported recording under this folder")
	return cmd
}
