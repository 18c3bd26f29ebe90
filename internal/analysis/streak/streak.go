// Package streak computes win/loss streak statistics over a chronological
// sequence of bets. All passes are causal: the value reported for a record
// only depends on records up to and including it.
package streak

import (
	"bettrack/internal/models"
)

// VoidPolicy controls how Void and Pending bets interact with a running streak.
type VoidPolicy int

const (
	// VoidResets resets both counters on a Void or Pending bet. This matches
	// the historical behavior of the desktop application and is the default.
	VoidResets VoidPolicy = iota
	// VoidSkips leaves both counters untouched, treating the bet as if it
	// were not in the sequence.
	VoidSkips
)

// Tracker computes streak statistics under a fixed void policy.
type Tracker struct {
	policy VoidPolicy
}

// New creates a Tracker with the given void policy.
func New(policy VoidPolicy) *Tracker {
	return &Tracker{policy: policy}
}

// Summary aggregates the streak statistics of a full sequence.
type Summary struct {
	MaxWinStreak  int
	MaxLossStreak int
	Current       int
	Type          models.StreakType
}

// LossStreaks returns, per record, the losing streak active as of that record.
func (t *Tracker) LossStreaks(records []models.BetRecord) []int {
	streaks := make([]int, len(records))
	current := 0
	for i, r := range records {
		switch {
		case r.Lost():
			current++
		case r.Won():
			current = 0
		default:
			if t.policy == VoidResets {
				current = 0
			}
		}
		streaks[i] = current
	}
	return streaks
}

// WinStreaks returns, per record, the winning streak active as of that record.
func (t *Tracker) WinStreaks(records []models.BetRecord) []int {
	streaks := make([]int, len(records))
	current := 0
	for i, r := range records {
		switch {
		case r.Won():
			current++
		case r.Lost():
			current = 0
		default:
			if t.policy == VoidResets {
				current = 0
			}
		}
		streaks[i] = current
	}
	return streaks
}

// Current walks backward from the most recent record and returns the length
// and kind of the streak that is active right now.
func (t *Tracker) Current(records []models.BetRecord) (int, models.StreakType) {
	kind := models.StreakNone
	count := 0
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if !r.Settled() {
			if t.policy == VoidSkips {
				continue
			}
			break
		}
		switch kind {
		case models.StreakNone:
			if r.Won() {
				kind = models.StreakWin
			} else {
				kind = models.StreakLoss
			}
			count = 1
		case models.StreakWin:
			if !r.Won() {
				return count, kind
			}
			count++
		case models.StreakLoss:
			if !r.Lost() {
				return count, kind
			}
			count++
		}
	}
	return count, kind
}

// Summarize computes max win/loss streaks and the current streak in one pass.
func (t *Tracker) Summarize(records []models.BetRecord) Summary {
	var s Summary
	winRun, lossRun := 0, 0
	for _, r := range records {
		switch {
		case r.Won():
			winRun++
			lossRun = 0
		case r.Lost():
			lossRun++
			winRun = 0
		default:
			if t.policy == VoidResets {
				winRun, lossRun = 0, 0
			}
		}
		if winRun > s.MaxWinStreak {
			s.MaxWinStreak = winRun
		}
		if lossRun > s.MaxLossStreak {
			s.MaxLossStreak = lossRun
		}
	}
	s.Current, s.Type = t.Current(records)
	return s
}

// MaxLossStreak returns the longest losing streak in the sequence.
func (t *Tracker) MaxLossStreak(records []models.BetRecord) int {
	max := 0
	for _, v := range t.LossStreaks(records) {
		if v > max {
			max = v
		}
	}
	return max
}
