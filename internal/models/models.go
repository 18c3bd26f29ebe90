// Package models provides domain models for the betting analytics application.
package models

import (
	"time"
)

// Outcome represents the settled state of a bet.
type Outcome string

const (
	OutcomeWon     Outcome = "WON"
	OutcomeLost    Outcome = "LOST"
	OutcomeVoid    Outcome = "VOID"
	OutcomePending Outcome = "PENDING"
)

// Valid reports whether o is one of the four known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeWon, OutcomeLost, OutcomeVoid, OutcomePending:
		return true
	}
	return false
}

// RiskLevel classifies an overall risk assessment.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// StreakType identifies which kind of run is currently active.
type StreakType string

const (
	StreakWin  StreakType = "WIN"
	StreakLoss StreakType = "LOSS"
	StreakNone StreakType = "NONE"
)

// DefaultTipster is the advice-source label for the user's own bets.
const DefaultTipster = "self"

// BetRecord represents a single settled or pending bet.
// Profit is stake*(odds-1) when won, -stake when lost, 0 otherwise.
type BetRecord struct {
	ID          string
	Timestamp   time.Time
	Stake       float64
	Odds        float64
	Outcome     Outcome
	Profit      float64
	Competition string
	BetType     string
	Tipster     string
	CreatedAt   time.Time
}

// Won reports whether the bet was settled as a win.
func (b BetRecord) Won() bool { return b.Outcome == OutcomeWon }

// Lost reports whether the bet was settled as a loss.
func (b BetRecord) Lost() bool { return b.Outcome == OutcomeLost }

// Settled reports whether the bet has a final result.
func (b BetRecord) Settled() bool {
	return b.Outcome == OutcomeWon || b.Outcome == OutcomeLost
}

// ROI returns the bet's return on investment in percent.
func (b BetRecord) ROI() float64 {
	if b.Stake <= 0 {
		return 0
	}
	return b.Profit / b.Stake * 100
}

// Tipster represents a registered advice source.
type Tipster struct {
	ID           string
	Name         string
	Description  string
	Website      string
	Telegram     string
	Speciality   string
	Active       bool
	Notes        string
	RegisteredAt time.Time
}
