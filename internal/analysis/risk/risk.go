// Package risk analyzes betting behavior and produces risk metrics and alerts.
//
// Analyze is a pure function of the record sequence, the thresholds and the
// analysis time: identical inputs produce identical outputs. Alert IDs are
// assigned by the persistence layer, not here.
package risk

import (
	"time"

	"bettrack/internal/analysis/streak"
	"bettrack/internal/models"
)

// Thresholds holds the configurable limits for alert generation.
type Thresholds struct {
	MaxLosingStreak      int
	StakeIncreaseRatio   float64
	HighOddsThreshold    float64
	BankrollRiskPercent  float64
	ImpulsiveTimeSeconds int
	HighOddsShare        float64
	EmotionalScoreLimit  float64
	ImpulsiveCountLimit  int
	VoidPolicy           streak.VoidPolicy
}

// DefaultThresholds returns the default risk thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxLosingStreak:      5,
		StakeIncreaseRatio:   2.0,
		HighOddsThreshold:    5.0,
		BankrollRiskPercent:  10.0,
		ImpulsiveTimeSeconds: 300,
		HighOddsShare:        0.3,
		EmotionalScoreLimit:  7.0,
		ImpulsiveCountLimit:  3,
		VoidPolicy:           streak.VoidResets,
	}
}

// Scorer computes behavioral risk metrics over a bet sequence.
type Scorer struct {
	thresholds Thresholds
	tracker    *streak.Tracker
}

// NewScorer creates a Scorer with the given thresholds.
func NewScorer(thresholds Thresholds) *Scorer {
	return &Scorer{
		thresholds: thresholds,
		tracker:    streak.New(thresholds.VoidPolicy),
	}
}

// Analyze computes a RiskMetrics snapshot and the alerts breached by it.
// asOf stamps the emitted alerts; it does not affect any metric.
func (s *Scorer) Analyze(records []models.BetRecord, asOf time.Time) (models.RiskMetrics, []models.RiskAlert) {
	if len(records) == 0 {
		return EmptyMetrics(), nil
	}

	metrics := s.metrics(records)
	alerts := s.alerts(records, metrics, asOf)
	return metrics, alerts
}

func (s *Scorer) metrics(records []models.BetRecord) models.RiskMetrics {
	currentLoss := 0
	if n, kind := s.tracker.Current(records); kind == models.StreakLoss {
		currentLoss = n
	}
	maxLoss := s.tracker.MaxLossStreak(records)

	afterLoss, normal := stakesAfterLosses(records)
	ratio := StakeAfterLossRatio(records)

	impulsive := s.ImpulsiveBetCount(records)
	highOdds := s.highOddsCount(records)
	bankrollRisk := BankrollRiskPercent(records)
	emotional := s.EmotionalScore(records)
	discipline := s.DisciplineScore(records)
	overall := s.OverallScore(currentLoss, ratio, impulsive, highOdds, emotional, discipline)

	return models.RiskMetrics{
		CurrentLosingStreak: currentLoss,
		MaxLosingStreak:     maxLoss,
		AvgStakeAfterLoss:   afterLoss,
		AvgStakeNormal:      normal,
		StakeIncreaseRatio:  ratio,
		ImpulsiveBetCount:   impulsive,
		HighOddsBetCount:    highOdds,
		BankrollRiskPercent: bankrollRisk,
		EmotionalScore:      emotional,
		DisciplineScore:     discipline,
		OverallScore:        overall,
		Level:               LevelFor(overall),
	}
}

// EmptyMetrics returns the neutral snapshot used when there is nothing to
// analyze: perfect discipline, zero risk.
func EmptyMetrics() models.RiskMetrics {
	return models.RiskMetrics{
		StakeIncreaseRatio: 1.0,
		DisciplineScore:    10.0,
		Level:              models.RiskLow,
	}
}

// LevelFor maps an overall risk score to a risk level.
func LevelFor(score float64) models.RiskLevel {
	switch {
	case score >= 8.0:
		return models.RiskCritical
	case score >= 6.0:
		return models.RiskHigh
	case score >= 3.0:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}
