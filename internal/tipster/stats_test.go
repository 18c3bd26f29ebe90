package tipster

import (
	"math"
	"testing"
	"time"

	"bettrack/internal/analysis/streak"
	"bettrack/internal/models"
)

func tip(tipster string, day int, stake, odds float64, outcome models.Outcome) models.BetRecord {
	profit := 0.0
	switch outcome {
	case models.OutcomeWon:
		profit = stake * (odds - 1)
	case models.OutcomeLost:
		profit = -stake
	}
	return models.BetRecord{
		Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Stake:     stake,
		Odds:      odds,
		Outcome:   outcome,
		Profit:    profit,
		Tipster:   tipster,
	}
}

// run builds a chronological record with the given win pattern, one tip per day.
func run(tipster string, pattern string) []models.BetRecord {
	records := make([]models.BetRecord, 0, len(pattern))
	for i, c := range pattern {
		outcome := models.OutcomeLost
		if c == 'W' {
			outcome = models.OutcomeWon
		}
		records = append(records, tip(tipster, i, 10, 2.0, outcome))
	}
	return records
}

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(streak.VoidResets, 5)
}

func TestStatsForBasicAggregates(t *testing.T) {
	records := run("alice", "WWLWL")

	stats, ok := newTestAnalyzer().StatsFor("alice", records)
	if !ok {
		t.Fatal("StatsFor returned false for non-empty records")
	}
	if stats.TotalTips != 5 || stats.Wins != 3 || stats.Losses != 2 {
		t.Errorf("tips/wins/losses = %d/%d/%d, want 5/3/2", stats.TotalTips, stats.Wins, stats.Losses)
	}
	if stats.WinRate != 60 {
		t.Errorf("WinRate = %.1f, want 60", stats.WinRate)
	}
	// Staked 50, profit 3*10 - 2*10 = 10 -> ROI 20%.
	if math.Abs(stats.ROI-20) > 1e-9 {
		t.Errorf("ROI = %.2f, want 20", stats.ROI)
	}
	if stats.ActiveDays != 5 {
		t.Errorf("ActiveDays = %d, want 5", stats.ActiveDays)
	}
}

func TestStatsForEmpty(t *testing.T) {
	if _, ok := newTestAnalyzer().StatsFor("ghost", nil); ok {
		t.Error("StatsFor returned true for empty records")
	}
}

func TestProfitFactorNoLosses(t *testing.T) {
	stats, _ := newTestAnalyzer().StatsFor("alice", run("alice", "WWWWW"))
	if !math.IsInf(stats.ProfitFactor, 1) {
		t.Errorf("ProfitFactor = %v, want +Inf with no losing bets", stats.ProfitFactor)
	}
}

func TestProfitFactorMixed(t *testing.T) {
	// Wins pay 10 each at odds 2.0, losses cost 10 each.
	stats, _ := newTestAnalyzer().StatsFor("alice", run("alice", "WWWLL"))
	if math.Abs(stats.ProfitFactor-1.5) > 1e-9 {
		t.Errorf("ProfitFactor = %.2f, want 1.5", stats.ProfitFactor)
	}
}

func TestConsistencyScoreShortRecord(t *testing.T) {
	stats, _ := newTestAnalyzer().StatsFor("alice", run("alice", "WWLWLWLWL"))
	if stats.ConsistencyScore != 0 {
		t.Errorf("ConsistencyScore = %.1f for 9 tips, want 0", stats.ConsistencyScore)
	}
}

func TestConsistencyScorePerfectlyStable(t *testing.T) {
	// 15 tips in three identical five-tip periods: zero variance scores 100.
	stats, _ := newTestAnalyzer().StatsFor("alice", run("alice", "WWWLLWWWLLWWWLL"))
	if stats.ConsistencyScore != 100 {
		t.Errorf("ConsistencyScore = %.1f, want 100 for identical periods", stats.ConsistencyScore)
	}
}

func TestMaxDrawdownAfterPeak(t *testing.T) {
	// Peak +20 after two wins, then two losses take the curve back to 0.
	stats, _ := newTestAnalyzer().StatsFor("alice", run("alice", "WWLL"))
	if math.Abs(stats.MaxDrawdown-100) > 1e-9 {
		t.Errorf("MaxDrawdown = %.1f, want 100 (full giveback of the peak)", stats.MaxDrawdown)
	}
}

func TestRecommendAvoid(t *testing.T) {
	stats, _ := newTestAnalyzer().StatsFor("bob", run("bob", "LLLLLW"))
	if stats.Recommendation != "AVOID - unsatisfactory performance" {
		t.Errorf("Recommendation = %q", stats.Recommendation)
	}
	if stats.Level != models.RiskHigh {
		t.Errorf("Level = %s, want HIGH", stats.Level)
	}
}

func TestRankOrdersByROI(t *testing.T) {
	var records []models.BetRecord
	records = append(records, run("alice", "WWWLL")...) // ROI +20%
	records = append(records, run("bob", "WLLLL")...)   // ROI -60%
	records = append(records, run("carol", "WWWWL")...) // ROI +60%

	ranking := newTestAnalyzer().Rank(records)
	if len(ranking) != 3 {
		t.Fatalf("got %d ranked tipsters, want 3", len(ranking))
	}
	if ranking[0].Name != "carol" || ranking[1].Name != "alice" || ranking[2].Name != "bob" {
		t.Errorf("order = %s, %s, %s", ranking[0].Name, ranking[1].Name, ranking[2].Name)
	}
}

func TestRankExcludesShortRecords(t *testing.T) {
	var records []models.BetRecord
	records = append(records, run("alice", "WWWLL")...)
	records = append(records, run("newbie", "WW")...) // below the 5-tip minimum

	ranking := newTestAnalyzer().Rank(records)
	if len(ranking) != 1 || ranking[0].Name != "alice" {
		t.Fatalf("ranking = %+v, want only alice", ranking)
	}
}

func TestRankCreditsUnattributedBets(t *testing.T) {
	records := run("", "WWWLL")

	ranking := newTestAnalyzer().Rank(records)
	if len(ranking) != 1 || ranking[0].Name != models.DefaultTipster {
		t.Fatalf("unattributed bets not credited to %q: %+v", models.DefaultTipster, ranking)
	}
}

func TestCompareDeclaresWinner(t *testing.T) {
	var records []models.BetRecord
	records = append(records, run("alice", "WWWWL")...)
	records = append(records, run("bob", "LLLLW")...)

	cmp, ok := newTestAnalyzer().Compare("alice", "bob", records)
	if !ok {
		t.Fatal("Compare returned false")
	}
	if cmp.OverallWinner != "alice" {
		t.Errorf("OverallWinner = %q, want alice", cmp.OverallWinner)
	}
	if cmp.BetterROI != "alice" || cmp.BetterWinRate != "alice" {
		t.Errorf("BetterROI = %q, BetterWinRate = %q", cmp.BetterROI, cmp.BetterWinRate)
	}
}

func TestCompareTreatsNarrowGapAsTie(t *testing.T) {
	var records []models.BetRecord
	records = append(records, run("alice", "WWWLL")...)
	records = append(records, run("bob", "WWWLL")...)

	cmp, ok := newTestAnalyzer().Compare("alice", "bob", records)
	if !ok {
		t.Fatal("Compare returned false")
	}
	if cmp.OverallWinner != "" {
		t.Errorf("OverallWinner = %q, want tie", cmp.OverallWinner)
	}
	if cmp.Recommendation != "Both tipsters perform similarly. Consider diversifying across them." {
		t.Errorf("Recommendation = %q", cmp.Recommendation)
	}
}

func TestCompareUnknownTipster(t *testing.T) {
	if _, ok := newTestAnalyzer().Compare("alice", "ghost", run("alice", "WWWLL")); ok {
		t.Error("Compare returned true for a tipster with no records")
	}
}
