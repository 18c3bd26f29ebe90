package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bettrack/internal/errors"
	"bettrack/internal/models"
	"bettrack/internal/simulation"
)

func addSimulationCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newSimulateCmd(app))
}

func newSimulateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay bet history under different staking strategies",
		Long: `Replays the historical bet sequence under flat, percentage, Kelly,
Martingale and Fibonacci staking, and compares final bankroll, ROI,
drawdown and risk-adjusted returns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("store unavailable")
			}

			daysBack, _ := cmd.Flags().GetInt("days")
			strategyFlag, _ := cmd.Flags().GetString("strategy")

			var kinds []models.StrategyKind
			if strategyFlag != "" {
				for _, s := range strings.Split(strategyFlag, ",") {
					kind := models.StrategyKind(strings.ToUpper(strings.TrimSpace(s)))
					if !kind.Valid() {
						return fmt.Errorf("%w: %s", errors.ErrUnknownStrategy, s)
					}
					kinds = append(kinds, kind)
				}
			}

			results, err := app.Engine.RunSimulation(cmd.Context(), daysBack, kinds)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(results)
			}
			displaySimulations(output, results)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "analysis window in days (0 = full history)")
	cmd.Flags().String("strategy", "", "comma-separated strategies (FLAT,PERCENTAGE,KELLY,MARTINGALE,FIBONACCI)")

	cmd.AddCommand(newMonteCarloCmd(app))
	cmd.AddCommand(newValueCmd(app))
	return cmd
}

func newValueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Evaluate a single quoted bet",
		Long: `Compares your own win probability estimate against the bookmaker's
implied probability, and reports expected value and the Kelly stake
fraction for the quote.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			odds, _ := cmd.Flags().GetFloat64("odds")
			prob, _ := cmd.Flags().GetFloat64("prob")
			if odds <= 1 {
				return fmt.Errorf("odds must exceed 1.0")
			}
			if prob <= 0 || prob >= 1 {
				return fmt.Errorf("prob must be in (0, 1)")
			}

			implied := simulation.ImpliedProbability(odds)
			ev := simulation.ExpectedValue(prob, odds)
			kelly := simulation.KellyStake(prob, odds, app.Config.Simulation.KellyMaxFraction)

			if output.IsJSON() {
				return output.JSON(map[string]float64{
					"implied_probability": implied,
					"expected_value":      ev,
					"kelly_fraction":      kelly,
				})
			}

			output.Bold("Value Bet Check")
			output.Printf("Implied probability: %.1f%%\n", implied*100)
			output.Printf("Your estimate:       %.1f%%\n", prob*100)
			output.Printf("Expected value:      %s per unit staked\n", output.FormatProfit(ev))
			output.Printf("Kelly fraction:      %.1f%% of bankroll\n", kelly*100)
			if ev > 0 {
				output.Success("Positive expected value")
			} else {
				output.Warning("Negative expected value, no edge at these odds")
			}
			return nil
		},
	}
	cmd.Flags().Float64("odds", 0, "decimal odds quoted")
	cmd.Flags().Float64("prob", 0, "your win probability estimate (0-1)")
	cmd.MarkFlagRequired("odds")
	cmd.MarkFlagRequired("prob")
	return cmd
}

func displaySimulations(output *Output, results []models.SimulationResult) {
	output.Bold("Strategy Simulation")
	output.Println()

	table := NewTable(output, "Strategy", "Final Bankroll", "Profit", "ROI", "Win Rate", "Max DD", "Sharpe", "Bets")
	for _, r := range results {
		table.AddRow(
			r.StrategyName,
			fmt.Sprintf("%.2f", r.FinalBankroll),
			output.FormatProfit(r.TotalProfit),
			output.FormatPercent(r.ROI),
			fmt.Sprintf("%.1f%%", r.WinRate),
			fmt.Sprintf("%.1f%%", r.MaxDrawdown),
			fmt.Sprintf("%.2f", r.SharpeRatio),
			fmt.Sprintf("%d", r.TotalBets),
		)
	}
	table.Render()
}

func newMonteCarloCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Project future bankroll outcomes from the bet history",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Engine == nil {
				return fmt.Errorf("store unavailable")
			}

			daysBack, _ := cmd.Flags().GetInt("days")
			bets, _ := cmd.Flags().GetInt("bets")
			seed, _ := cmd.Flags().GetInt64("seed")
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			result, err := app.Engine.RunMonteCarlo(cmd.Context(), daysBack, bets, seed)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Monte Carlo Projection")
			output.Printf("Runs: %d, bets per run: %d, initial bankroll: %.2f\n\n",
				result.Runs, result.BetsPerRun, result.InitialBankroll)
			output.Printf("Median final:  %.2f\n", result.MedianFinal)
			output.Printf("5th pctile:    %.2f\n", result.P5Final)
			output.Printf("95th pctile:   %.2f\n", result.P95Final)
			ruin := fmt.Sprintf("%.1f%%", result.RuinProbability*100)
			if result.RuinProbability > 0.1 {
				ruin = output.Red(ruin)
			}
			output.Printf("Ruin risk:     %s\n", ruin)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "analysis window in days (0 = full history)")
	cmd.Flags().Int("bets", 100, "bets per simulated run")
	cmd.Flags().Int64("seed", 0, "random seed (0 = time-based)")
	return cmd
}
