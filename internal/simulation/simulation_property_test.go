package simulation

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"bettrack/internal/models"
)

// Property: for every strategy and arbitrary record sequence, the replay
// produces a trajectory of executed bets + 1 points, never stakes more than
// the bankroll holds, and never reports more wins than bets.
func TestProperty_ReplayInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	recordGen := gopter.CombineGens(
		gen.Float64Range(1, 200),
		gen.Float64Range(1.01, 15),
		gen.OneConstOf(models.OutcomeWon, models.OutcomeLost, models.OutcomeVoid, models.OutcomePending),
	).Map(func(values []interface{}) models.BetRecord {
		stake := values[0].(float64)
		odds := values[1].(float64)
		outcome := values[2].(models.Outcome)

		profit := 0.0
		switch outcome {
		case models.OutcomeWon:
			profit = stake * (odds - 1)
		case models.OutcomeLost:
			profit = -stake
		}
		return models.BetRecord{
			Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Stake:     stake,
			Odds:      odds,
			Outcome:   outcome,
			Profit:    profit,
		}
	})

	kinds := []models.StrategyKind{
		models.StrategyFlat,
		models.StrategyPercentage,
		models.StrategyKelly,
		models.StrategyMartingale,
		models.StrategyFibonacci,
	}

	properties.Property("trajectory has executed bets + 1 points", prop.ForAll(
		func(records []models.BetRecord) bool {
			sim := NewSimulator()
			for _, kind := range kinds {
				result, err := sim.Simulate(kind, records, DefaultParams())
				if err != nil {
					return false
				}
				if len(result.Bankroll) != result.TotalBets+1 {
					return false
				}
				if len(result.BetSizes) != result.TotalBets {
					return false
				}
			}
			return true
		},
		gen.SliceOf(recordGen),
	))

	properties.Property("wins never exceed bets, bankroll never negative", prop.ForAll(
		func(records []models.BetRecord) bool {
			sim := NewSimulator()
			for _, kind := range kinds {
				result, err := sim.Simulate(kind, records, DefaultParams())
				if err != nil {
					return false
				}
				if result.WinningBets > result.TotalBets || result.TotalBets > len(records) {
					return false
				}
				for _, v := range result.Bankroll {
					if v < 0 {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(recordGen),
	))

	properties.TestingRun(t)
}
