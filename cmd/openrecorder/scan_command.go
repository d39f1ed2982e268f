package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"openrecorder/internal/library"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan <folder>",
		Short: "List audio recordings under a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}

			items, err := eng.scanner.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				if items == nil {
					items = []library.Item{}
				}
				return writeJSON(cmd.OutOrStdout(), items)
			}

			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recordings found")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					item.Name,
					formatOptionalSeconds(item.Duration),
					formatBytes(item.Size),
					formatUnixTime(item.MTime),
					item.Path,
				})
			}
			table := renderTable(
				[]string{"Name", "Duration", "Size", "Modified", "Path"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			fmt.Fprintf(cmd.OutOrStdout(), "%s recording(s)\n", strconv.Itoa(len(items)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
