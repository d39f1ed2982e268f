package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// transcriptText returns the transcript text for the argument: "-" reads raw
// text from stdin, anything else is a recording path whose transcript is
// resolved from storage.
func transcriptText(cmd *cobra.Command, eng *engine, arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return eng.resolver.Resolve(arg)
}

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <file>",
		Short: "Summarize a recording's transcript",
		Long: `Summarize a recording's transcript. Pass "-" to read transcript text from
stdin. Results are cached by transcript fingerprint; a cached summary is
returned without any service call.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			text, err := transcriptText(cmd, eng, args[0])
			if err != nil {
				return err
			}
			summary, err := eng.insights.Summarize(cmd.Context(), text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func newActionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "actions <file>",
		Short: "Recommend action items from a recording's transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			text, err := transcriptText(cmd, eng, args[0])
			if err != nil {
				return err
			}
			actions, err := eng.insights.RecommendActions(cmd.Context(), text)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), actions)
		},
	}
}

func newTopicsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "topics <file>",
		Short: "Extract key topics from a recording's transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			text, err := transcriptText(cmd, eng, args[0])
			if err != nil {
				return err
			}
			topics, err := eng.insights.ExtractKeyTopics(cmd.Context(), text)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), topics)
		},
	}
}

func newInsightsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "insights <file>",
		Short: "Derive summary, actions, and topics in one pass",
		Long: `Derive the complete insights record for a recording's transcript. Fields
already cached are reused; missing fields are fetched concurrently. The
call is all-or-nothing: a single field failure fails the whole call and
persists nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			text, err := transcriptText(cmd, eng, args[0])
			if err != nil {
				return err
			}
			record, err := eng.insights.GetInsights(cmd.Context(), text)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), record)
		},
	}
}
