package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	transcriptCmd := &cobra.Command{
		Use:   "transcript",
		Short: "Read and write transcripts for recordings",
	}

	transcriptCmd.AddCommand(newTranscriptShowCommand(ctx))
	transcriptCmd.AddCommand(newTranscriptSaveCommand(ctx))
	transcriptCmd.AddCommand(newTranscriptHasCommand(ctx))

	return transcriptCmd
}

func newTranscriptShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Print the transcript for a recording",
		Long: `Print the transcript for a recording. The managed transcript wins; a
legacy sidecar next to the original audio is read and migrated into
managed storage on the way.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			text, err := eng.resolver.Resolve(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newTranscriptSaveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "save <file> <transcript-file>",
		Short: "Store a transcript for a recording",
		Long: `Store transcript text for a recording into managed storage. Pass "-" as
the transcript file to read from stdin. Legacy sidecar files are never
written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			text, err := readTextArg(cmd, args[1])
			if err != nil {
				return err
			}
			if err := eng.resolver.Save(args[0], text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Transcript saved")
			return nil
		},
	}
}

func newTranscriptHasCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "has <file>",
		Short: "Report whether a recording has a transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), yesNo(eng.resolver.Has(args[0])))
			return nil
		},
	}
}

// readTextArg reads text from a file argument, or from stdin when the
// argument is "-".
func readTextArg(cmd *cobra.Command, arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", arg, err)
	}
	return string(data), nil
}
