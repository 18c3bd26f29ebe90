package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bettrack/internal/models"
	"bettrack/internal/store"
)

func addBetCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newBetsCmd(app))
}

func newBetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bets",
		Short: "Manage the bet history",
	}

	cmd.AddCommand(newBetAddCmd(app))
	cmd.AddCommand(newBetListCmd(app))
	cmd.AddCommand(newBetDeleteCmd(app))
	cmd.AddCommand(newBetImportCmd(app))
	cmd.AddCommand(newBetExportCmd(app))
	return cmd
}

func newBetAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a bet",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}

			stake, _ := cmd.Flags().GetFloat64("stake")
			odds, _ := cmd.Flags().GetFloat64("odds")
			outcomeFlag, _ := cmd.Flags().GetString("outcome")
			competition, _ := cmd.Flags().GetString("competition")
			betType, _ := cmd.Flags().GetString("type")
			tipsterName, _ := cmd.Flags().GetString("tipster")
			when, _ := cmd.Flags().GetString("time")

			if stake <= 0 {
				return fmt.Errorf("stake must be positive")
			}
			if odds <= 1 {
				return fmt.Errorf("odds must exceed 1.0")
			}
			outcome := models.Outcome(outcomeFlag)
			if !outcome.Valid() {
				return fmt.Errorf("unknown outcome %q", outcomeFlag)
			}

			timestamp := time.Now()
			if when != "" {
				parsed, err := time.Parse("2006-01-02 15:04", when)
				if err != nil {
					return fmt.Errorf("parsing time: %w", err)
				}
				timestamp = parsed
			}

			record := models.BetRecord{
				Timestamp:   timestamp,
				Stake:       stake,
				Odds:        odds,
				Outcome:     outcome,
				Competition: competition,
				BetType:     betType,
				Tipster:     tipsterName,
			}
			switch outcome {
			case models.OutcomeWon:
				record.Profit = stake * (odds - 1)
			case models.OutcomeLost:
				record.Profit = -stake
			}

			if err := app.Store.SaveBets(cmd.Context(), []models.BetRecord{record}); err != nil {
				return err
			}
			output.Success("Bet recorded: %.2f @ %.2f (%s)", stake, odds, outcome)
			return nil
		},
	}
	cmd.Flags().Float64("stake", 0, "amount staked")
	cmd.Flags().Float64("odds", 0, "decimal odds")
	cmd.Flags().String("outcome", "PENDING", "outcome (WON, LOST, VOID, PENDING)")
	cmd.Flags().String("competition", "", "competition name")
	cmd.Flags().String("type", "", "bet type")
	cmd.Flags().String("tipster", "", "tipster attribution")
	cmd.Flags().String("time", "", "bet time (YYYY-MM-DD HH:MM, default now)")
	cmd.MarkFlagRequired("stake")
	cmd.MarkFlagRequired("odds")
	return cmd
}

func newBetListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bet records",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}

			limit, _ := cmd.Flags().GetInt("limit")
			tipsterName, _ := cmd.Flags().GetString("tipster")
			competition, _ := cmd.Flags().GetString("competition")

			records, err := app.Store.GetBets(cmd.Context(), store.BetFilter{
				Tipster:     tipsterName,
				Competition: competition,
				Limit:       limit,
			})
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(records)
			}
			if len(records) == 0 {
				output.Info("No bets recorded")
				return nil
			}

			table := NewTable(output, "ID", "Time", "Stake", "Odds", "Outcome", "Profit", "Competition", "Type", "Tipster")
			for _, r := range records {
				table.AddRow(r.ID[:8], r.Timestamp.Format("2006-01-02 15:04"),
					fmt.Sprintf("%.2f", r.Stake), fmt.Sprintf("%.2f", r.Odds),
					string(r.Outcome), output.FormatProfit(r.Profit),
					r.Competition, r.BetType, r.Tipster)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Int("limit", 50, "maximum records to show")
	cmd.Flags().String("tipster", "", "filter by tipster")
	cmd.Flags().String("competition", "", "filter by competition")
	return cmd
}

func newBetDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <bet-id>",
		Short: "Delete a bet record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}
			if err := app.Store.DeleteBet(cmd.Context(), args[0]); err != nil {
				return err
			}
			output.Success("Bet %s deleted", args[0])
			return nil
		},
	}
}

func newBetImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import bets from a CSV file",
		Long: `Imports bet records from a CSV file with the columns id, timestamp,
stake, odds, outcome, profit, competition, bet_type, tipster. Malformed
rows are skipped and reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			summary, err := store.ImportCSV(cmd.Context(), app.Store, args[0], f)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(summary)
			}

			output.Success("Imported %d bets", summary.Imported)
			if summary.Skipped > 0 {
				output.Warning("Skipped %d malformed rows", summary.Skipped)
				for _, e := range summary.Errors {
					output.Dim("  %v", e)
				}
			}
			return nil
		},
	}
}

func newBetExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export the bet history to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store unavailable")
			}

			tipsterName, _ := cmd.Flags().GetString("tipster")

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := store.ExportCSV(cmd.Context(), app.Store, store.BetFilter{Tipster: tipsterName}, f)
			if err != nil {
				return err
			}
			output.Success("Exported %d bets to %s", n, args[0])
			return nil
		},
	}
	cmd.Flags().String("tipster", "", "filter by tipster")
	return cmd
}
