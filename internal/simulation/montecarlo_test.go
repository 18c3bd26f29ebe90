package simulation

import (
	"testing"

	"bettrack/internal/errors"
	"bettrack/internal/models"
)

func monteCarloParams() MonteCarloParams {
	return MonteCarloParams{
		Runs:            200,
		BetsPerRun:      50,
		InitialBankroll: 1000,
		Stake:           50,
		Seed:            1,
	}
}

func TestMonteCarloRequiresSettledHistory(t *testing.T) {
	records := sequence(2.0,
		models.OutcomeWon, models.OutcomeLost, models.OutcomeWon,
		models.OutcomePending, models.OutcomeVoid)

	_, err := NewSimulator().MonteCarlo(records, monteCarloParams())
	if err != errors.ErrInsufficientData {
		t.Errorf("err = %v, want ErrInsufficientData with only 3 settled bets", err)
	}
}

func TestMonteCarloDeterministicForSeed(t *testing.T) {
	records := sequence(2.0,
		models.OutcomeWon, models.OutcomeWon, models.OutcomeWon, models.OutcomeWon,
		models.OutcomeWon, models.OutcomeWon, models.OutcomeLost, models.OutcomeLost,
		models.OutcomeLost, models.OutcomeLost)

	sim := NewSimulator()
	first, err := sim.MonteCarlo(records, monteCarloParams())
	if err != nil {
		t.Fatal(err)
	}
	second, err := sim.MonteCarlo(records, monteCarloParams())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("same seed produced different projections:\n%+v\n%+v", first, second)
	}
}

func TestMonteCarloResultShape(t *testing.T) {
	records := sequence(2.0,
		models.OutcomeWon, models.OutcomeWon, models.OutcomeWon, models.OutcomeWon,
		models.OutcomeWon, models.OutcomeWon, models.OutcomeLost, models.OutcomeLost,
		models.OutcomeLost, models.OutcomeLost)

	result, err := NewSimulator().MonteCarlo(records, monteCarloParams())
	if err != nil {
		t.Fatal(err)
	}
	if result.Runs != 200 || result.BetsPerRun != 50 {
		t.Errorf("run shape = %d runs x %d bets", result.Runs, result.BetsPerRun)
	}
	if result.P5Final > result.MedianFinal || result.MedianFinal > result.P95Final {
		t.Errorf("percentiles out of order: p5=%.0f median=%.0f p95=%.0f",
			result.P5Final, result.MedianFinal, result.P95Final)
	}
	if result.RuinProbability < 0 || result.RuinProbability > 1 {
		t.Errorf("RuinProbability = %.2f out of range", result.RuinProbability)
	}
}

func TestMonteCarloRejectsInvalidParams(t *testing.T) {
	params := monteCarloParams()
	params.Runs = 0
	if _, err := NewSimulator().MonteCarlo(nil, params); err == nil {
		t.Error("accepted zero runs")
	}
}
