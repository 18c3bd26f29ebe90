package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"bettrack/internal/models"
)

func addTipsterCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newTipstersCmd(app))
}

func newTipstersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tipsters",
		Short: "Track and rank tipsters",
	}

	cmd.AddCommand(newTipsterRankCmd(app))
	cmd.AddCommand(newTipsterCompareCmd(app))
	cmd.AddCommand(newTipsterTrendsCmd(app))
	cmd.AddCommand(newTipsterAddCmd(app))
	cmd.AddCommand(newTipsterListCmd(app))
	cmd.AddCommand(newTipsterRemoveCmd(app))
	return cmd
}

func newTipsterRankCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank tipsters by ROI",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("store unavailable")
			}

			daysBack, _ := cmd.Flags().GetInt("days")
			if daysBack == 0 {
				daysBack = app.Config.Tipsters.DaysBack
			}

			ranking, err := app.Engine.GetTipsterRanking(cmd.Context(), daysBack)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(ranking)
			}
			displayRanking(output, ranking)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "analysis window in days (default from config)")
	return cmd
}

func displayRanking(output *Output, ranking []models.TipsterStats) {
	output.Bold("Tipster Ranking")
	output.Println()

	if len(ranking) == 0 {
		output.Info("No tipsters with enough tips in the window")
		return
	}

	table := NewTable(output, "#", "Tipster", "Tips", "Win Rate", "ROI", "Profit", "PF", "Consistency", "Risk", "Verdict")
	for i, s := range ranking {
		pf := fmt.Sprintf("%.2f", s.ProfitFactor)
		if math.IsInf(s.ProfitFactor, 1) {
			pf = "inf"
		}
		table.AddRow(
			fmt.Sprintf("%d", i+1),
			s.Name,
			fmt.Sprintf("%d", s.TotalTips),
			fmt.Sprintf("%.1f%%", s.WinRate),
			output.FormatPercent(s.ROI),
			output.FormatProfit(s.TotalProfit),
			pf,
			fmt.Sprintf("%.0f", s.ConsistencyScore),
			output.ColoredString(output.RiskColor(string(s.Level)), string(s.Level)),
			s.Recommendation,
		)
	}
	table.Render()
}

func newTipsterCompareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <tipster-a> <tipster-b>",
		Short: "Compare two tipsters head to head",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("store unavailable")
			}

			daysBack, _ := cmd.Flags().GetInt("days")
			if daysBack == 0 {
				daysBack = app.Config.Tipsters.DaysBack
			}

			cmp, ok, err := app.Engine.CompareTipsters(cmd.Context(), daysBack, args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no bet history for one of the tipsters in the window")
			}
			if output.IsJSON() {
				return output.JSON(cmp)
			}

			output.Bold("Tipster Comparison: %s vs %s", cmp.TipsterA, cmp.TipsterB)
			output.Printf("Better ROI:         %s\n", cmp.BetterROI)
			output.Printf("Better win rate:    %s\n", cmp.BetterWinRate)
			output.Printf("Better consistency: %s\n", cmp.BetterConsistency)
			if cmp.OverallWinner != "" {
				output.Printf("Overall winner:     %s\n", output.Green(cmp.OverallWinner))
			}
			output.Println()
			output.Info("%s", cmp.Recommendation)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "analysis window in days (default from config)")
	return cmd
}

func newTipsterTrendsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends <tipster>",
		Short: "Show a tipster's form over time and by market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("store unavailable")
			}

			daysBack, _ := cmd.Flags().GetInt("days")
			if daysBack == 0 {
				daysBack = app.Config.Tipsters.DaysBack
			}

			trends, ok, err := app.Engine.GetTipsterTrends(cmd.Context(), daysBack, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no bet history for tipster %q in the window", args[0])
			}
			if output.IsJSON() {
				return output.JSON(trends)
			}

			output.Bold("Monthly form")
			monthly := NewTable(output, "Month", "Tips", "Win Rate", "ROI", "Profit")
			for _, m := range trends.Monthly {
				monthly.AddRow(m.Key, fmt.Sprintf("%d", m.Tips),
					fmt.Sprintf("%.1f%%", m.WinRate), output.FormatPercent(m.ROI),
					output.FormatProfit(m.Profit))
			}
			monthly.Render()

			output.Println()
			output.Bold("Best competitions")
			comps := NewTable(output, "Competition", "Tips", "Win Rate", "Profit")
			for _, c := range trends.BestCompetitions {
				comps.AddRow(c.Key, fmt.Sprintf("%d", c.Tips),
					fmt.Sprintf("%.1f%%", c.WinRate), output.FormatProfit(c.Profit))
			}
			comps.Render()

			output.Println()
			rf := trends.RecentForm
			output.Bold("Recent form (30 days)")
			output.Printf("Tips: %d, win rate: %.1f%%, ROI: %s, profit: %s\n",
				rf.Tips, rf.WinRate, output.FormatPercent(rf.ROI), output.FormatProfit(rf.Profit))
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "analysis window in days (default from config)")
	return cmd
}

func newTipsterAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a tipster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}

			description, _ := cmd.Flags().GetString("description")
			website, _ := cmd.Flags().GetString("website")
			telegram, _ := cmd.Flags().GetString("telegram")
			speciality, _ := cmd.Flags().GetString("speciality")

			t := &models.Tipster{
				Name:        args[0],
				Description: description,
				Website:     website,
				Telegram:    telegram,
				Speciality:  speciality,
				Active:      true,
			}
			if err := app.Store.SaveTipster(cmd.Context(), t); err != nil {
				return err
			}
			output.Success("Tipster %s registered (%s)", t.Name, t.ID)
			return nil
		},
	}
	cmd.Flags().String("description", "", "free-form description")
	cmd.Flags().String("website", "", "website URL")
	cmd.Flags().String("telegram", "", "telegram handle")
	cmd.Flags().String("speciality", "", "sport or market speciality")
	return cmd
}

func newTipsterListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered tipsters",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}

			all, _ := cmd.Flags().GetBool("all")
			tipsters, err := app.Store.GetTipsters(cmd.Context(), !all)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(tipsters)
			}
			if len(tipsters) == 0 {
				output.Info("No tipsters registered")
				return nil
			}

			table := NewTable(output, "ID", "Name", "Speciality", "Active", "Registered")
			for _, t := range tipsters {
				active := ""
				if t.Active {
					active = "yes"
				}
				table.AddRow(t.ID[:8], t.Name, t.Speciality, active,
					t.RegisteredAt.Format("2006-01-02"))
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "include inactive tipsters")
	return cmd
}

func newTipsterRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <tipster-id>",
		Short: "Remove a tipster from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}
			if err := app.Store.DeleteTipster(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success("Tipster %s removed", args[0])
			return nil
		},
	}
}
