package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bettrack/internal/engine"
)

func addPatternCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPatternsCmd(app))
}

func newPatternsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Mine profitable and losing patterns from bet history",
		Long: `Groups the bet history by weekday, odds range, competition, bet type, and
competition+type combinations, and surfaces groups whose win rate or ROI
stands out. Groups below the minimum sample size are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("store unavailable")
			}

			daysBack, _ := cmd.Flags().GetInt("days")
			minSample, _ := cmd.Flags().GetInt("min-sample")
			report, err := app.Engine.GetPatterns(cmd.Context(), daysBack, minSample)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(report)
			}
			displayPatterns(output, report)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "analysis window in days (0 = full history)")
	cmd.Flags().Int("min-sample", 0, "minimum group size to report (0 = configured default)")
	return cmd
}

func displayPatterns(output *Output, report *engine.PatternReport) {
	output.Bold("Detected Patterns")
	output.Printf("Records analyzed: %d\n\n", report.RecordCount)

	if len(report.Patterns) == 0 {
		output.Info("No patterns found above the minimum sample size")
		return
	}

	table := NewTable(output, "Pattern", "Samples", "Win Rate", "Avg ROI", "Confidence", "Level")
	for _, p := range report.Patterns {
		table.AddRow(
			p.Name,
			fmt.Sprintf("%d", p.SampleSize),
			fmt.Sprintf("%.1f%%", p.WinRate),
			output.FormatPercent(p.AvgROI),
			fmt.Sprintf("%.2f", p.Confidence),
			output.ColoredString(output.RiskColor(string(p.Level)), string(p.Level)),
		)
	}
	table.Render()
}
