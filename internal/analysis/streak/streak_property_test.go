package streak

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"bettrack/internal/models"
)

// Property: for any outcome sequence, per-record streak values are
// non-negative, never exceed the sequence length, and the current streak
// never exceeds the maximum.
func TestProperty_StreakBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	outcomeGen := gen.OneConstOf(
		models.OutcomeWon, models.OutcomeLost, models.OutcomeVoid, models.OutcomePending,
	)
	sequenceGen := gen.SliceOf(outcomeGen)
	policyGen := gen.OneConstOf(VoidResets, VoidSkips)

	properties.Property("streak values bounded by sequence length", prop.ForAll(
		func(outcomes []models.Outcome, policy VoidPolicy) bool {
			records := sequence(outcomes...)
			tracker := New(policy)

			for _, v := range tracker.LossStreaks(records) {
				if v < 0 || v > len(records) {
					return false
				}
			}
			for _, v := range tracker.WinStreaks(records) {
				if v < 0 || v > len(records) {
					return false
				}
			}
			return true
		},
		sequenceGen, policyGen,
	))

	properties.Property("current streak never exceeds max", prop.ForAll(
		func(outcomes []models.Outcome, policy VoidPolicy) bool {
			records := sequence(outcomes...)
			s := New(policy).Summarize(records)

			if s.Current < 0 || s.MaxWinStreak < 0 || s.MaxLossStreak < 0 {
				return false
			}
			switch s.Type {
			case models.StreakWin:
				return s.Current <= s.MaxWinStreak
			case models.StreakLoss:
				return s.Current <= s.MaxLossStreak
			default:
				return s.Current == 0
			}
		},
		sequenceGen, policyGen,
	))

	properties.TestingRun(t)
}
