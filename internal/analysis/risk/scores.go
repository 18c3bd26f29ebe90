package risk

import (
	"math"

	"bettrack/internal/models"
)

// stakesAfterLosses splits stakes into bets placed immediately after a loss
// and all others, returning the mean of each group.
func stakesAfterLosses(records []models.BetRecord) (afterLoss, normal float64) {
	if len(records) < 2 {
		return 0, 0
	}

	var lossSum, lossN, normSum, normN float64
	for i := 1; i < len(records); i++ {
		if records[i-1].Lost() {
			lossSum += records[i].Stake
			lossN++
		} else {
			normSum += records[i].Stake
			normN++
		}
	}
	if lossN > 0 {
		afterLoss = lossSum / lossN
	}
	if normN > 0 {
		normal = normSum / normN
	}
	return afterLoss, normal
}

// StakeAfterLossRatio is the mean stake after a loss divided by the mean
// stake otherwise. Returns 1.0 when either group is empty.
func StakeAfterLossRatio(records []models.BetRecord) float64 {
	afterLoss, normal := stakesAfterLosses(records)
	if afterLoss == 0 || normal == 0 {
		return 1.0
	}
	return afterLoss / normal
}

// ImpulsiveBetCount counts bets placed within the impulsive window after a
// lost bet. Zero time gaps are excluded; they indicate batch-entered records.
func (s *Scorer) ImpulsiveBetCount(records []models.BetRecord) int {
	if len(records) < 2 {
		return 0
	}
	window := float64(s.thresholds.ImpulsiveTimeSeconds)
	count := 0
	for i := 1; i < len(records); i++ {
		if !records[i-1].Lost() {
			continue
		}
		gap := records[i].Timestamp.Sub(records[i-1].Timestamp).Seconds()
		if gap > 0 && gap < window {
			count++
		}
	}
	return count
}

func (s *Scorer) highOddsCount(records []models.BetRecord) int {
	count := 0
	for _, r := range records {
		if r.Odds > s.thresholds.HighOddsThreshold {
			count++
		}
	}
	return count
}

// BankrollRiskPercent estimates the share of bankroll risked by the largest
// stake. The bankroll itself is not tracked here, so it is estimated as
// max(20*maxStake, 50*avgStake).
func BankrollRiskPercent(records []models.BetRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var maxStake, sum float64
	for _, r := range records {
		if r.Stake > maxStake {
			maxStake = r.Stake
		}
		sum += r.Stake
	}
	avgStake := sum / float64(len(records))
	bankroll := math.Max(maxStake*20, avgStake*50)
	if bankroll == 0 {
		return 0
	}
	return maxStake / bankroll * 100
}

// stakeCV is the coefficient of variation of stake sizes.
func stakeCV(records []models.BetRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Stake
	}
	mean := sum / float64(len(records))
	if mean == 0 {
		return 0
	}
	var sq float64
	for _, r := range records {
		d := r.Stake - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(records)))
	return std / mean
}

// EmotionalScore scores emotionally driven betting from 0 to 10: stake
// variance, stake escalation after losses, impulsive frequency and high-odds
// chasing right after losses.
func (s *Scorer) EmotionalScore(records []models.BetRecord) float64 {
	if len(records) < 5 {
		return 0
	}

	score := math.Min(3.0, stakeCV(records)*2)

	afterLoss, normal := stakesAfterLosses(records)
	if normal > 0 {
		score += math.Min(3.0, (afterLoss/normal-1)*2)
	}

	impulsiveRatio := float64(s.ImpulsiveBetCount(records)) / float64(len(records))
	score += math.Min(2.0, impulsiveRatio*10)

	extremeAfterLoss := 0
	for i := 1; i < len(records); i++ {
		if records[i-1].Lost() && records[i].Odds > s.thresholds.HighOddsThreshold {
			extremeAfterLoss++
		}
	}
	score += math.Min(2.0, float64(extremeAfterLoss)/float64(len(records))*10)

	return clamp(score, 0, 10)
}

// DisciplineScore scores stake discipline from 0 to 10, mirroring the
// penalties of EmotionalScore plus a penalty for long losing streaks.
func (s *Scorer) DisciplineScore(records []models.BetRecord) float64 {
	if len(records) < 5 {
		return 5.0
	}

	score := 10.0
	score -= math.Min(3.0, stakeCV(records)*2)

	afterLoss, normal := stakesAfterLosses(records)
	if normal > 0 {
		score -= math.Min(3.0, math.Max(0, afterLoss/normal-1)*2)
	}

	impulsiveRatio := float64(s.ImpulsiveBetCount(records)) / float64(len(records))
	score -= math.Min(2.0, impulsiveRatio*10)

	maxLoss := s.tracker.MaxLossStreak(records)
	score -= math.Min(2.0, math.Max(0, float64(maxLoss-3))*0.5)

	return clamp(score, 0, 10)
}

// OverallScore combines the individual indicators into a 0-10 risk score.
func (s *Scorer) OverallScore(losingStreak int, stakeRatio float64, impulsive, highOdds int, emotional, discipline float64) float64 {
	score := math.Min(2.0, float64(losingStreak)*0.3)
	score += math.Min(2.5, math.Max(0, stakeRatio-1)*1.5)
	score += math.Min(1.5, float64(impulsive)*0.3)
	score += math.Min(1.0, float64(highOdds)*0.1)
	score += emotional * 0.2
	score += (10 - discipline) * 0.1
	return clamp(score, 0, 10)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
