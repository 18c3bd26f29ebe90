package risk

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"bettrack/internal/models"
)

// Property: every score produced by Analyze stays inside its documented
// bounds for arbitrary record sequences.
func TestProperty_ScoreBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	recordGen := gopter.CombineGens(
		gen.Float64Range(1, 500),
		gen.Float64Range(1.01, 20),
		gen.OneConstOf(models.OutcomeWon, models.OutcomeLost, models.OutcomeVoid, models.OutcomePending),
		gen.IntRange(0, 120),
	).Map(func(values []interface{}) models.BetRecord {
		stake := values[0].(float64)
		odds := values[1].(float64)
		outcome := values[2].(models.Outcome)
		minutes := values[3].(int)

		profit := 0.0
		switch outcome {
		case models.OutcomeWon:
			profit = stake * (odds - 1)
		case models.OutcomeLost:
			profit = -stake
		}
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		return models.BetRecord{
			Timestamp: base.Add(time.Duration(minutes) * time.Minute),
			Stake:     stake,
			Odds:      odds,
			Outcome:   outcome,
			Profit:    profit,
		}
	})

	properties.Property("scores bounded on arbitrary input", prop.ForAll(
		func(records []models.BetRecord) bool {
			scorer := NewScorer(DefaultThresholds())
			metrics, _ := scorer.Analyze(records, time.Now())

			inRange := func(v float64) bool { return v >= 0 && v <= 10 }
			if !inRange(metrics.OverallScore) || !inRange(metrics.EmotionalScore) || !inRange(metrics.DisciplineScore) {
				return false
			}
			if metrics.CurrentLosingStreak < 0 || metrics.MaxLosingStreak < 0 {
				return false
			}
			if metrics.CurrentLosingStreak > len(records) || metrics.MaxLosingStreak > len(records) {
				return false
			}
			return metrics.StakeIncreaseRatio >= 0 && metrics.BankrollRiskPercent >= 0
		},
		gen.SliceOf(recordGen),
	))

	properties.Property("at most one alert per kind", prop.ForAll(
		func(records []models.BetRecord) bool {
			scorer := NewScorer(DefaultThresholds())
			_, alerts := scorer.Analyze(records, time.Now())

			seen := make(map[models.AlertKind]bool)
			for _, a := range alerts {
				if seen[a.Kind] {
					return false
				}
				seen[a.Kind] = true
				if a.Severity < 0 || a.Severity > 10 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(recordGen),
	))

	properties.TestingRun(t)
}
