package simulation

import (
	"math/rand"
	"sort"

	"bettrack/internal/errors"
	"bettrack/internal/models"
)

// MonteCarloParams configures a Monte Carlo bankroll projection.
type MonteCarloParams struct {
	Runs            int
	BetsPerRun      int
	InitialBankroll float64
	Stake           float64
	Seed            int64
}

// MonteCarlo projects future bankroll outcomes by resampling the win rate
// and average win/loss observed in the settled history. A fixed stake is
// used per bet; a run stops when the bankroll can no longer cover it.
func (s *Simulator) MonteCarlo(records []models.BetRecord, params MonteCarloParams) (models.MonteCarloResult, error) {
	if params.Runs <= 0 {
		return models.MonteCarloResult{}, errors.NewValidationError("Runs", params.Runs, "must be positive")
	}
	if params.BetsPerRun <= 0 {
		return models.MonteCarloResult{}, errors.NewValidationError("BetsPerRun", params.BetsPerRun, "must be positive")
	}
	if params.InitialBankroll <= 0 {
		return models.MonteCarloResult{}, errors.NewValidationError("InitialBankroll", params.InitialBankroll, "must be positive")
	}
	if params.Stake <= 0 {
		return models.MonteCarloResult{}, errors.NewValidationError("Stake", params.Stake, "must be positive")
	}

	winRate, avgWin, avgLoss, settled := historyModel(records)
	if settled < 10 {
		return models.MonteCarloResult{}, errors.ErrInsufficientData
	}

	rng := rand.New(rand.NewSource(params.Seed))
	finals := make([]float64, 0, params.Runs)
	ruined := 0
	for run := 0; run < params.Runs; run++ {
		bankroll := params.InitialBankroll
		for i := 0; i < params.BetsPerRun; i++ {
			if bankroll < params.Stake {
				ruined++
				break
			}
			if rng.Float64() < winRate {
				bankroll += params.Stake * avgWin
			} else {
				bankroll -= params.Stake * avgLoss
			}
		}
		finals = append(finals, bankroll)
	}
	sort.Float64s(finals)

	return models.MonteCarloResult{
		Runs:            params.Runs,
		BetsPerRun:      params.BetsPerRun,
		InitialBankroll: params.InitialBankroll,
		MedianFinal:     percentile(finals, 0.50),
		P5Final:         percentile(finals, 0.05),
		P95Final:        percentile(finals, 0.95),
		RuinProbability: float64(ruined) / float64(params.Runs),
	}, nil
}

// historyModel derives the per-unit-stake outcome model from settled bets:
// win rate, average win multiple, and average loss multiple.
func historyModel(records []models.BetRecord) (winRate, avgWin, avgLoss float64, settled int) {
	var wins, losses int
	var winSum, lossSum float64
	for _, r := range records {
		switch {
		case r.Won():
			wins++
			if r.Stake > 0 {
				winSum += r.Profit / r.Stake
			}
		case r.Lost():
			losses++
			lossSum += 1
		}
	}
	settled = wins + losses
	if settled == 0 {
		return 0, 0, 0, 0
	}
	winRate = float64(wins) / float64(settled)
	if wins > 0 {
		avgWin = winSum / float64(wins)
	}
	if losses > 0 {
		avgLoss = lossSum / float64(losses)
	}
	return winRate, avgWin, avgLoss, settled
}

// percentile returns the value at rank p of an ascending-sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}
