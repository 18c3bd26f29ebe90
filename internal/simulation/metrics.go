package simulation

import (
	"math"
	"sort"

	"bettrack/internal/models"
)

func buildResult(name string, initial, final float64, wins int, totalProfit float64, trajectory, betSizes []float64) models.SimulationResult {
	betsPlaced := len(betSizes)
	totalStaked := sum(betSizes)

	result := models.SimulationResult{
		StrategyName:    name,
		InitialBankroll: initial,
		FinalBankroll:   final,
		TotalProfit:     totalProfit,
		TotalBets:       betsPlaced,
		WinningBets:     wins,
		Bankroll:        trajectory,
		BetSizes:        betSizes,
		MaxDrawdown:     maxDrawdown(trajectory),
	}
	if initial > 0 {
		result.ROI = (final - initial) / initial * 100
	}
	if betsPlaced > 0 {
		result.WinRate = float64(wins) / float64(betsPlaced) * 100
		result.AvgBetSize = totalStaked / float64(betsPlaced)
		result.MinBetSize = betSizes[0]
		result.MaxBetSize = betSizes[0]
		for _, v := range betSizes {
			if v < result.MinBetSize {
				result.MinBetSize = v
			}
			if v > result.MaxBetSize {
				result.MaxBetSize = v
			}
		}
	}

	returns := periodReturns(trajectory)
	result.SharpeRatio = sharpeRatio(returns)
	result.SortinoRatio = sortinoRatio(returns)
	result.CalmarRatio = calmarRatio(returns, result.MaxDrawdown)
	result.ValueAtRisk = valueAtRisk(returns, 0.95)
	return result
}

// maxDrawdown is the largest peak-to-trough decline across the bankroll
// trajectory, expressed as a percentage of the peak.
func maxDrawdown(trajectory []float64) float64 {
	if len(trajectory) == 0 {
		return 0
	}
	peak := trajectory[0]
	worst := 0.0
	for _, v := range trajectory {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (peak - v) / peak * 100
			if dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

// periodReturns converts the bankroll trajectory into per-bet fractional
// returns.
func periodReturns(trajectory []float64) []float64 {
	if len(trajectory) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(trajectory)-1)
	for i := 1; i < len(trajectory); i++ {
		prev := trajectory[i-1]
		if prev == 0 {
			continue
		}
		returns = append(returns, (trajectory[i]-prev)/prev)
	}
	return returns
}

// sharpeRatio is the mean per-bet return over its standard deviation,
// with a zero risk-free rate.
func sharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := sum(returns) / float64(len(returns))
	sd := stdDev(returns, mean)
	if sd == 0 {
		return 0
	}
	return mean / sd
}

// sortinoRatio penalizes only downside deviation.
func sortinoRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := sum(returns) / float64(len(returns))
	var downSq float64
	var downs int
	for _, r := range returns {
		if r < 0 {
			downSq += r * r
			downs++
		}
	}
	if downs == 0 {
		return 0
	}
	downside := math.Sqrt(downSq / float64(len(returns)))
	if downside == 0 {
		return 0
	}
	return mean / downside
}

// calmarRatio is the cumulative return relative to the maximum drawdown.
func calmarRatio(returns []float64, maxDrawdownPct float64) float64 {
	if len(returns) == 0 || maxDrawdownPct == 0 {
		return 0
	}
	total := 0.0
	for _, r := range returns {
		total += r
	}
	return total * 100 / maxDrawdownPct
}

// valueAtRisk is the loss threshold at the given confidence over per-bet
// returns, reported as a positive percentage.
func valueAtRisk(returns []float64, confidence float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)
	idx := int(float64(len(sorted)) * (1 - confidence))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	v := sorted[idx] * 100
	if v < 0 {
		return -v
	}
	return 0
}

func sum(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total
}

func stdDev(vals []float64, mean float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sq float64
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(vals)))
}
