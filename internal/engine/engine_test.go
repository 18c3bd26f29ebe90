package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bettrack/internal/config"
	"bettrack/internal/models"
	"bettrack/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, store.DataStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s, config.Default(), zerolog.Nop()), s
}

func seedBets(t *testing.T, s store.DataStore, records []models.BetRecord) {
	t.Helper()
	require.NoError(t, s.SaveBets(context.Background(), records))
}

func settledBet(daysAgo int, stake, odds float64, outcome models.Outcome, tipster string) models.BetRecord {
	profit := 0.0
	switch outcome {
	case models.OutcomeWon:
		profit = stake * (odds - 1)
	case models.OutcomeLost:
		profit = -stake
	}
	return models.BetRecord{
		Timestamp: time.Now().AddDate(0, 0, -daysAgo),
		Stake:     stake,
		Odds:      odds,
		Outcome:   outcome,
		Profit:    profit,
		Tipster:   tipster,
	}
}

func TestGetRiskAnalysisScreensMalformedRecords(t *testing.T) {
	e, s := newTestEngine(t)

	records := []models.BetRecord{
		settledBet(3, 25, 2.0, models.OutcomeWon, "alice"),
		settledBet(2, 25, 2.0, models.OutcomeLost, "alice"),
		{Timestamp: time.Now().AddDate(0, 0, -1), Stake: -5, Odds: 2.0, Outcome: models.OutcomeWon},
		{Timestamp: time.Now().AddDate(0, 0, -1), Stake: 10, Odds: 2.0, Outcome: "DRAW"},
	}
	seedBets(t, s, records)

	report, err := e.GetRiskAnalysis(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 2, report.RecordCount)
	assert.Equal(t, 2, report.Excluded)
	assert.NotZero(t, report.GeneratedAt)
}

func TestGetRiskAnalysisEmptyHistory(t *testing.T) {
	e, _ := newTestEngine(t)

	report, err := e.GetRiskAnalysis(context.Background(), 30)
	require.NoError(t, err)
	assert.Zero(t, report.RecordCount)
	assert.Empty(t, report.Alerts)
}

func TestLogAlertsAssignsIDs(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	alerts := []models.RiskAlert{{
		Kind:      models.AlertLossStreak,
		Level:     models.RiskHigh,
		Message:   "6 consecutive losses",
		Timestamp: time.Now(),
		Severity:  9,
	}}
	stored, err := e.LogAlerts(ctx, alerts)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.NotEmpty(t, stored[0].ID)

	recent, err := e.RecentAlerts(ctx, store.AlertFilter{Unacknowledged: true})
	require.NoError(t, err)
	require.Len(t, recent, 1)

	require.NoError(t, e.AcknowledgeAlert(ctx, stored[0].ID))
	recent, err = e.RecentAlerts(ctx, store.AlertFilter{Unacknowledged: true})
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRunSimulationDefaultsToAllStrategies(t *testing.T) {
	e, s := newTestEngine(t)

	var records []models.BetRecord
	for i := 0; i < 10; i++ {
		outcome := models.OutcomeWon
		if i%3 == 0 {
			outcome = models.OutcomeLost
		}
		records = append(records, settledBet(10-i, 20, 2.0, outcome, "alice"))
	}
	seedBets(t, s, records)

	results, err := e.RunSimulation(context.Background(), 30, nil)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestGetTipsterRankingWindow(t *testing.T) {
	e, s := newTestEngine(t)

	var records []models.BetRecord
	for i := 0; i < 12; i++ {
		records = append(records, settledBet(12-i, 10, 2.0, models.OutcomeWon, "alice"))
	}
	// Old history outside a 30-day window.
	for i := 0; i < 12; i++ {
		records = append(records, settledBet(90+i, 10, 2.0, models.OutcomeLost, "bob"))
	}
	seedBets(t, s, records)

	ranking, err := e.GetTipsterRanking(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, "alice", ranking[0].Name)
}

func TestGetPatternsMinSampleOverride(t *testing.T) {
	e, s := newTestEngine(t)

	var records []models.BetRecord
	for i := 0; i < 15; i++ {
		records = append(records, settledBet(15-i, 20, 2.0, models.OutcomeWon, "alice"))
	}
	seedBets(t, s, records)

	// Zero falls back to the configured minimum sample size.
	report, err := e.GetPatterns(context.Background(), 30, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Patterns)

	// A per-call override above the history size suppresses every group.
	report, err = e.GetPatterns(context.Background(), 30, 50)
	require.NoError(t, err)
	assert.Empty(t, report.Patterns)
}

func TestGetFullReport(t *testing.T) {
	e, s := newTestEngine(t)

	var records []models.BetRecord
	for i := 0; i < 12; i++ {
		outcome := models.OutcomeWon
		if i%4 == 0 {
			outcome = models.OutcomeLost
		}
		records = append(records, settledBet(12-i, 20, 2.0, outcome, "alice"))
	}
	seedBets(t, s, records)

	report, err := e.GetFullReport(context.Background(), 30)
	require.NoError(t, err)
	require.NotNil(t, report.Risk)
	require.NotNil(t, report.Patterns)
	assert.Len(t, report.Simulations, 5)
	assert.NotEmpty(t, report.Ranking)
}
