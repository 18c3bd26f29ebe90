package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addReportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newReportCmd(app))
}

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run every analysis over one window",
		Long: `Runs risk analysis, pattern mining, strategy simulation and tipster
ranking concurrently and prints a combined report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("store unavailable")
			}

			daysBack, _ := cmd.Flags().GetInt("days")
			report, err := app.Engine.GetFullReport(cmd.Context(), daysBack)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(report)
			}

			displayRiskReport(output, report.Risk)
			output.Println()
			displayPatterns(output, report.Patterns)
			output.Println()
			displaySimulations(output, report.Simulations)
			output.Println()
			displayRanking(output, report.Ranking)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "analysis window in days (0 = full history)")
	return cmd
}
