package risk

import (
	"testing"
	"time"

	"bettrack/internal/models"
)

func betAt(ts time.Time, stake, odds float64, outcome models.Outcome) models.BetRecord {
	profit := 0.0
	switch outcome {
	case models.OutcomeWon:
		profit = stake * (odds - 1)
	case models.OutcomeLost:
		profit = -stake
	}
	return models.BetRecord{
		Timestamp: ts,
		Stake:     stake,
		Odds:      odds,
		Outcome:   outcome,
		Profit:    profit,
	}
}

func hourlyBets(stakes []float64, outcomes []models.Outcome) []models.BetRecord {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	records := make([]models.BetRecord, len(stakes))
	for i := range stakes {
		records[i] = betAt(base.Add(time.Duration(i)*time.Hour), stakes[i], 2.0, outcomes[i])
	}
	return records
}

func TestAnalyzeEmptyInput(t *testing.T) {
	scorer := NewScorer(DefaultThresholds())
	metrics, alerts := scorer.Analyze(nil, time.Now())

	if metrics.DisciplineScore != 10.0 {
		t.Errorf("DisciplineScore = %.1f, want 10.0", metrics.DisciplineScore)
	}
	if metrics.StakeIncreaseRatio != 1.0 {
		t.Errorf("StakeIncreaseRatio = %.1f, want 1.0", metrics.StakeIncreaseRatio)
	}
	if metrics.Level != models.RiskLow {
		t.Errorf("Level = %s, want LOW", metrics.Level)
	}
	if len(alerts) != 0 {
		t.Errorf("got %d alerts, want 0", len(alerts))
	}
}

func TestAnalyzeSevenConsecutiveLosses(t *testing.T) {
	stakes := []float64{10, 10, 10, 10, 10, 10, 10}
	outcomes := make([]models.Outcome, 7)
	for i := range outcomes {
		outcomes[i] = models.OutcomeLost
	}

	scorer := NewScorer(DefaultThresholds())
	metrics, alerts := scorer.Analyze(hourlyBets(stakes, outcomes), time.Now())

	if metrics.CurrentLosingStreak != 7 {
		t.Fatalf("CurrentLosingStreak = %d, want 7", metrics.CurrentLosingStreak)
	}

	var lossAlert *models.RiskAlert
	for i := range alerts {
		if alerts[i].Kind == models.AlertLossStreak {
			if lossAlert != nil {
				t.Fatal("more than one LOSS_STREAK alert emitted")
			}
			lossAlert = &alerts[i]
		}
	}
	if lossAlert == nil {
		t.Fatal("no LOSS_STREAK alert emitted")
	}
	if lossAlert.Level != models.RiskHigh {
		t.Errorf("alert level = %s, want HIGH", lossAlert.Level)
	}
	// severity = min(10, 7*1.5)
	if lossAlert.Severity != 10 {
		t.Errorf("alert severity = %.1f, want 10", lossAlert.Severity)
	}
}

func TestStakeAfterLossRatio(t *testing.T) {
	tests := []struct {
		name     string
		stakes   []float64
		outcomes []models.Outcome
		want     float64
	}{
		{
			name:     "doubling after losses",
			stakes:   []float64{10, 20, 10, 20},
			outcomes: []models.Outcome{models.OutcomeLost, models.OutcomeWon, models.OutcomeLost, models.OutcomeWon},
			want:     2.0,
		},
		{
			name:     "no losses defaults to one",
			stakes:   []float64{10, 10, 10},
			outcomes: []models.Outcome{models.OutcomeWon, models.OutcomeWon, models.OutcomeWon},
			want:     1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StakeAfterLossRatio(hourlyBets(tt.stakes, tt.outcomes))
			if got != tt.want {
				t.Errorf("StakeAfterLossRatio = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestImpulsiveBetCount(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []models.BetRecord{
		betAt(base, 10, 2.0, models.OutcomeLost),
		// 2 minutes after a loss: impulsive
		betAt(base.Add(2*time.Minute), 10, 2.0, models.OutcomeLost),
		// 4 minutes after a loss: impulsive
		betAt(base.Add(6*time.Minute), 10, 2.0, models.OutcomeWon),
		// after a win: not impulsive regardless of gap
		betAt(base.Add(7*time.Minute), 10, 2.0, models.OutcomeLost),
		// an hour later: outside the window
		betAt(base.Add(time.Hour), 10, 2.0, models.OutcomeLost),
	}

	scorer := NewScorer(DefaultThresholds())
	if got := scorer.ImpulsiveBetCount(records); got != 2 {
		t.Errorf("ImpulsiveBetCount = %d, want 2", got)
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  models.RiskLevel
	}{
		{0, models.RiskLow},
		{2.9, models.RiskLow},
		{3.0, models.RiskModerate},
		{6.0, models.RiskHigh},
		{8.0, models.RiskCritical},
		{10, models.RiskCritical},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%.1f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	stakes := []float64{10, 20, 40, 80, 160, 10}
	outcomes := []models.Outcome{
		models.OutcomeLost, models.OutcomeLost, models.OutcomeLost,
		models.OutcomeLost, models.OutcomeWon, models.OutcomeLost,
	}
	records := hourlyBets(stakes, outcomes)
	asOf := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	scorer := NewScorer(DefaultThresholds())
	m1, a1 := scorer.Analyze(records, asOf)
	m2, a2 := scorer.Analyze(records, asOf)

	if m1 != m2 {
		t.Errorf("metrics differ across identical runs: %+v vs %+v", m1, m2)
	}
	if len(a1) != len(a2) {
		t.Fatalf("alert counts differ: %d vs %d", len(a1), len(a2))
	}
	for i := range a1 {
		if a1[i].Kind != a2[i].Kind || a1[i].Severity != a2[i].Severity {
			t.Errorf("alert %d differs: %+v vs %+v", i, a1[i], a2[i])
		}
	}
}
