package risk

import (
	"fmt"
	"math"
	"time"

	"bettrack/internal/models"
)

// alerts compares the metrics against the thresholds and emits at most one
// alert per kind.
func (s *Scorer) alerts(records []models.BetRecord, m models.RiskMetrics, asOf time.Time) []models.RiskAlert {
	var alerts []models.RiskAlert
	t := s.thresholds

	if m.CurrentLosingStreak >= t.MaxLosingStreak {
		level := models.RiskModerate
		if m.CurrentLosingStreak >= 7 {
			level = models.RiskHigh
		}
		alerts = append(alerts, models.RiskAlert{
			Kind:           models.AlertLossStreak,
			Level:          level,
			Message:        fmt.Sprintf("Current run of %d consecutive losses", m.CurrentLosingStreak),
			Recommendation: "Consider taking a break and reviewing your strategy",
			Data:           map[string]float64{"losing_streak": float64(m.CurrentLosingStreak)},
			Timestamp:      asOf,
			Severity:       math.Min(10, float64(m.CurrentLosingStreak)*1.5),
		})
	}

	if m.StakeIncreaseRatio >= t.StakeIncreaseRatio {
		level := models.RiskModerate
		if m.StakeIncreaseRatio >= 3.0 {
			level = models.RiskHigh
		}
		alerts = append(alerts, models.RiskAlert{
			Kind:           models.AlertHighStakeAfterLoss,
			Level:          level,
			Message:        fmt.Sprintf("Stakes %.1fx larger after losses", m.StakeIncreaseRatio),
			Recommendation: "Keep stakes consistent regardless of previous results",
			Data:           map[string]float64{"stake_ratio": m.StakeIncreaseRatio},
			Timestamp:      asOf,
			Severity:       math.Min(10, m.StakeIncreaseRatio*2),
		})
	}

	if runLen, runRatio, ok := s.progressiveIncrease(records); ok {
		level := models.RiskModerate
		if runLen >= 6 {
			level = models.RiskHigh
		}
		alerts = append(alerts, models.RiskAlert{
			Kind:           models.AlertProgressiveStakeIncrease,
			Level:          level,
			Message:        fmt.Sprintf("Stakes raised over %d consecutive bets (%.1fx total)", runLen, runRatio),
			Recommendation: "Escalating stakes compound losses; return to your base stake",
			Data:           map[string]float64{"run_length": float64(runLen), "run_ratio": runRatio},
			Timestamp:      asOf,
			Severity:       math.Min(10, runRatio*2),
		})
	}

	if m.ImpulsiveBetCount > t.ImpulsiveCountLimit {
		alerts = append(alerts, models.RiskAlert{
			Kind:           models.AlertImpulsiveBets,
			Level:          models.RiskModerate,
			Message:        fmt.Sprintf("%d bets placed impulsively", m.ImpulsiveBetCount),
			Recommendation: "Introduce a cooling-off period before placing the next bet",
			Data:           map[string]float64{"impulsive_count": float64(m.ImpulsiveBetCount)},
			Timestamp:      asOf,
			Severity:       math.Min(10, float64(m.ImpulsiveBetCount)*1.2),
		})
	}

	if m.BankrollRiskPercent > t.BankrollRiskPercent {
		level := models.RiskHigh
		if m.BankrollRiskPercent > 20 {
			level = models.RiskCritical
		}
		alerts = append(alerts, models.RiskAlert{
			Kind:           models.AlertPoorBankrollManagement,
			Level:          level,
			Message:        fmt.Sprintf("%.1f%% of bankroll risked on a single bet", m.BankrollRiskPercent),
			Recommendation: "Reduce stake sizes to at most 5% of bankroll",
			Data:           map[string]float64{"bankroll_risk": m.BankrollRiskPercent},
			Timestamp:      asOf,
			Severity:       math.Min(10, m.BankrollRiskPercent/2),
		})
	}

	if float64(m.HighOddsBetCount) > float64(len(records))*t.HighOddsShare {
		share := float64(m.HighOddsBetCount) / float64(len(records))
		alerts = append(alerts, models.RiskAlert{
			Kind:           models.AlertExcessiveOdds,
			Level:          models.RiskModerate,
			Message:        fmt.Sprintf("%d bets at very high odds", m.HighOddsBetCount),
			Recommendation: "Balance the portfolio with lower-risk selections",
			Data:           map[string]float64{"high_odds_count": float64(m.HighOddsBetCount)},
			Timestamp:      asOf,
			Severity:       math.Min(10, share*10),
		})
	}

	if m.EmotionalScore > t.EmotionalScoreLimit {
		alerts = append(alerts, models.RiskAlert{
			Kind:           models.AlertLossChasing,
			Level:          models.RiskHigh,
			Message:        "Emotional betting pattern detected",
			Recommendation: "Apply strict bankroll rules and only bet with a clear head",
			Data:           map[string]float64{"emotional_score": m.EmotionalScore},
			Timestamp:      asOf,
			Severity:       m.EmotionalScore,
		})
	}

	return alerts
}

// progressiveIncrease looks for the longest run of consecutive settled bets
// with strictly increasing stakes. The run is reported when it spans at least
// four bets and the total escalation reaches the stake-increase threshold.
func (s *Scorer) progressiveIncrease(records []models.BetRecord) (length int, ratio float64, ok bool) {
	bestLen, bestRatio := 0, 0.0
	runStart := -1
	for i, r := range records {
		if !r.Settled() || r.Stake <= 0 {
			runStart = -1
			continue
		}
		if runStart >= 0 && r.Stake > records[i-1].Stake {
			runLen := i - runStart + 1
			runRatio := r.Stake / records[runStart].Stake
			if runLen > bestLen || (runLen == bestLen && runRatio > bestRatio) {
				bestLen, bestRatio = runLen, runRatio
			}
		} else {
			runStart = i
		}
	}
	if bestLen >= 4 && bestRatio >= s.thresholds.StakeIncreaseRatio {
		return bestLen, bestRatio, true
	}
	return 0, 0, false
}
