package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bettrack/internal/engine"
	"bettrack/internal/store"
)

func addRiskCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newRiskCmd(app))
	rootCmd.AddCommand(newAlertsCmd(app))
}

func newRiskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Analyze betting behavior for risk signals",
		Long: `Computes behavioral risk metrics over the bet history: losing streaks,
stake escalation after losses, impulsive betting, odds discipline, and an
overall 0-10 risk score with recommendations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("store unavailable")
			}

			daysBack, _ := cmd.Flags().GetInt("days")
			log, _ := cmd.Flags().GetBool("log")

			report, err := app.Engine.GetRiskAnalysis(cmd.Context(), daysBack)
			if err != nil {
				return err
			}
			if log && len(report.Alerts) > 0 {
				stored, err := app.Engine.LogAlerts(cmd.Context(), report.Alerts)
				if err != nil {
					return err
				}
				report.Alerts = stored
			}

			if output.IsJSON() {
				return output.JSON(report)
			}
			displayRiskReport(output, report)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "analysis window in days (0 = full history)")
	cmd.Flags().Bool("log", false, "persist generated alerts to the alert log")
	return cmd
}

func displayRiskReport(output *Output, report *engine.RiskReport) {
	m := report.Metrics
	output.Bold("Risk Analysis")
	output.Printf("Records analyzed: %d", report.RecordCount)
	if report.Excluded > 0 {
		output.Printf(" (%s)", output.Yellow(fmt.Sprintf("%d malformed excluded", report.Excluded)))
	}
	output.Println()
	output.Println()

	output.Printf("Overall score:    %.1f/10 (%s)\n", m.OverallScore,
		output.ColoredString(output.RiskColor(string(m.Level)), string(m.Level)))
	output.Printf("Emotional score:  %.1f/10\n", m.EmotionalScore)
	output.Printf("Discipline score: %.1f/10\n", m.DisciplineScore)
	output.Println()

	table := NewTable(output, "Metric", "Value")
	table.AddRow("Current losing streak", fmt.Sprintf("%d", m.CurrentLosingStreak))
	table.AddRow("Max losing streak", fmt.Sprintf("%d", m.MaxLosingStreak))
	table.AddRow("Avg stake after loss", fmt.Sprintf("%.2f", m.AvgStakeAfterLoss))
	table.AddRow("Avg stake normal", fmt.Sprintf("%.2f", m.AvgStakeNormal))
	table.AddRow("Stake increase ratio", fmt.Sprintf("%.2fx", m.StakeIncreaseRatio))
	table.AddRow("Impulsive bets", fmt.Sprintf("%d", m.ImpulsiveBetCount))
	table.AddRow("High-odds bets", fmt.Sprintf("%d", m.HighOddsBetCount))
	table.AddRow("Bankroll at risk", fmt.Sprintf("%.1f%%", m.BankrollRiskPercent))
	table.Render()

	if len(report.Alerts) > 0 {
		output.Println()
		output.Bold("Alerts")
		for _, a := range report.Alerts {
			output.Printf("  [%s] %s (severity %.1f)\n",
				output.ColoredString(output.RiskColor(string(a.Level)), string(a.Level)),
				a.Message, a.Severity)
			if a.Recommendation != "" {
				output.Dim("    %s", a.Recommendation)
			}
		}
	}

	if len(report.Recommendations) > 0 {
		output.Println()
		output.Bold("Recommendations")
		for _, r := range report.Recommendations {
			output.Printf("  - %s\n", r)
		}
	}
}

func newAlertsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Manage the risk alert log",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List logged alerts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("store unavailable")
			}

			limit, _ := cmd.Flags().GetInt("limit")
			unacked, _ := cmd.Flags().GetBool("unacknowledged")

			alerts, err := app.Engine.RecentAlerts(cmd.Context(), store.AlertFilter{
				Limit:          limit,
				Unacknowledged: unacked,
			})
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(alerts)
			}
			if len(alerts) == 0 {
				output.Info("No alerts logged")
				return nil
			}

			table := NewTable(output, "ID", "Kind", "Level", "Severity", "Time", "Ack")
			for _, a := range alerts {
				ack := ""
				if a.Acknowledged {
					ack = "yes"
				}
				table.AddRow(a.ID[:8], string(a.Kind),
					output.ColoredString(output.RiskColor(string(a.Level)), string(a.Level)),
					fmt.Sprintf("%.1f", a.Severity),
					a.Timestamp.Format("2006-01-02 15:04"), ack)
			}
			table.Render()
			return nil
		},
	}
	listCmd.Flags().Int("limit", 20, "maximum alerts to show")
	listCmd.Flags().Bool("unacknowledged", false, "only show unacknowledged alerts")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "ack <alert-id>",
		Short: "Acknowledge a logged alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("store unavailable")
			}
			if err := app.Engine.AcknowledgeAlert(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success("Alert %s acknowledged", args[0])
			return nil
		},
	})

	return cmd
}
