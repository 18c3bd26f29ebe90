package models

import "time"

// AlertKind identifies a risk-behavior alert variant.
type AlertKind string

const (
	AlertLossStreak               AlertKind = "LOSS_STREAK"
	AlertHighStakeAfterLoss       AlertKind = "HIGH_STAKE_AFTER_LOSS"
	AlertProgressiveStakeIncrease AlertKind = "PROGRESSIVE_STAKE_INCREASE"
	AlertLossChasing              AlertKind = "LOSS_CHASING"
	AlertImpulsiveBets            AlertKind = "IMPULSIVE_BETS"
	AlertPoorBankrollManagement   AlertKind = "POOR_BANKROLL_MANAGEMENT"
	AlertExcessiveOdds            AlertKind = "EXCESSIVE_ODDS"
)

// RiskMetrics is a point-in-time snapshot of behavioral risk indicators.
// Every analysis run produces a fresh snapshot; nothing here is persisted
// as mutable state.
type RiskMetrics struct {
	CurrentLosingStreak int
	MaxLosingStreak     int
	AvgStakeAfterLoss   float64
	AvgStakeNormal      float64
	StakeIncreaseRatio  float64
	ImpulsiveBetCount   int
	HighOddsBetCount    int
	BankrollRiskPercent float64
	EmotionalScore      float64 // 0-10
	DisciplineScore     float64 // 0-10
	OverallScore        float64 // 0-10
	Level               RiskLevel
}

// RiskAlert is a derived fact emitted when a metric breaches its threshold.
// At most one alert per kind is produced per analysis run.
type RiskAlert struct {
	ID             string
	Kind           AlertKind
	Level          RiskLevel
	Message        string
	Recommendation string
	Data           map[string]float64
	Timestamp      time.Time
	Severity       float64 // 0-10
	Acknowledged   bool
}
