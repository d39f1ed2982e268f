package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"openrecorder/internal/library"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var (
		presetFlag string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "stats <folder>",
		Short: "Show library analytics for a folder",
		Long: `Aggregate library analytics over the recordings under a folder: headline
counters, per-day activity, duration histogram, language and file-type
distributions, and the most recent recordings. The window preset bounds
items by modification time; "all" disables the bound.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := library.ParsePreset(presetFlag)
			if err != nil {
				return err
			}

			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}

			items, err := eng.scanner.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			meta, err := eng.openMetastore()
			if err != nil {
				return err
			}
			defer meta.Close()

			metaByPath, err := meta.MetaByPath(cmd.Context())
			if err != nil {
				return err
			}

			result := library.Aggregate(items, preset, time.Now().Unix(), metaByPath, eng.resolver.Has)

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			renderStats(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&presetFlag, "preset", string(library.PresetAll), "Time window: 7d, 30d, 90d, or all")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full analytics payload as JSON")
	return cmd
}

func renderStats(cmd *cobra.Command, result library.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Window: %s\n\n", result.Preset)

	kpiRows := [][]string{
		{"Recordings", strconv.FormatUint(result.KPIs.TotalRecordings, 10)},
		{"Total duration", formatSeconds(result.KPIs.TotalRecordingSeconds)},
		{"Transcribed", strconv.FormatUint(result.KPIs.TranscribedRecordings, 10)},
		{"Transcribed duration", formatSeconds(result.KPIs.TranscribedSeconds)},
		{"Coverage", formatPercent(result.KPIs.TranscriptionCoveragePct)},
	}
	fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, kpiRows, []columnAlignment{alignLeft, alignRight}))

	bucketRows := make([][]string, 0, len(result.DurationBuckets))
	for _, bucket := range result.DurationBuckets {
		bucketRows = append(bucketRows, []string{
			bucket.Label,
			strconv.FormatUint(bucket.Count, 10),
			formatSeconds(bucket.Seconds),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Duration", "Count", "Total"}, bucketRows, []columnAlignment{alignLeft, alignRight, alignRight}))

	if len(result.LanguageDistribution) > 0 {
		langRows := make([][]string, 0, len(result.LanguageDistribution))
		for _, lang := range result.LanguageDistribution {
			langRows = append(langRows, []string{
				languageDisplayName(lang.Language),
				strconv.FormatUint(lang.Count, 10),
				formatSeconds(lang.TranscribedSeconds),
			})
		}
		fmt.Fprintln(out, renderTable([]string{"Language", "Count", "Transcribed"}, langRows, []columnAlignment{alignLeft, alignRight, alignRight}))
	}

	if len(result.FileTypeDistribution) > 0 {
		typeRows := make([][]string, 0, len(result.FileTypeDistribution))
		for _, fileType := range result.FileTypeDistribution {
			typeRows = append(typeRows, []string{
				fileType.Ext,
				strconv.FormatUint(fileType.Count, 10),
				formatSeconds(fileType.Seconds),
			})
		}
		fmt.Fprintln(out, renderTable([]string{"Type", "Count", "Total"}, typeRows, []columnAlignment{alignLeft, alignRight, alignRight}))
	}

	if len(result.Recent) > 0 {
		recentRows := make([][]string, 0, len(result.Recent))
		for _, row := range result.Recent {
			recentRows = append(recentRows, []string{
				row.Name,
				formatOptionalSeconds(row.DurationSeconds),
				yesNo(row.HasTranscript),
				languageDisplayName(row.Language),
				formatUnixTime(row.MTimeUnix),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Recent", "Duration", "Transcript", "Language", "Modified"},
			recentRows,
			[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
		))
	}
}

// languageDisplayName turns a BCP 47 language code into its English display
// name, falling back to the raw code when it does not parse.
func languageDisplayName(code string) string {
	if code == "" || code == "unknown" {
		return "Unknown"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}
