package patterns

import (
	"strings"
	"testing"
	"time"

	"bettrack/internal/models"
)

func betOn(ts time.Time, odds float64, won bool, competition, betType string) models.BetRecord {
	outcome := models.OutcomeLost
	profit := -10.0
	if won {
		outcome = models.OutcomeWon
		profit = 10 * (odds - 1)
	}
	return models.BetRecord{
		Timestamp:   ts,
		Stake:       10,
		Odds:        odds,
		Outcome:     outcome,
		Profit:      profit,
		Competition: competition,
		BetType:     betType,
	}
}

func TestDetectWeekdayPattern(t *testing.T) {
	// 2026-03-01 is a Sunday. 20 Sunday bets, 14 wins at odds 2.0.
	sunday := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	var records []models.BetRecord
	for i := 0; i < 20; i++ {
		records = append(records, betOn(sunday.Add(time.Duration(i)*time.Minute), 2.0, i < 14, "", ""))
	}

	found, err := NewMiner(5.0).Detect(records, 10)
	if err != nil {
		t.Fatal(err)
	}

	var sundayPattern *models.Pattern
	for i := range found {
		if found[i].Conditions["weekday"] == "Sunday" {
			sundayPattern = &found[i]
		}
	}
	if sundayPattern == nil {
		t.Fatal("no Sunday pattern detected")
	}
	if sundayPattern.SampleSize != 20 {
		t.Errorf("SampleSize = %d, want 20", sundayPattern.SampleSize)
	}
	if sundayPattern.WinRate != 70 {
		t.Errorf("WinRate = %.1f, want 70", sundayPattern.WinRate)
	}
	if sundayPattern.Level != models.RiskLow {
		t.Errorf("Level = %s, want LOW (win rate >= 60)", sundayPattern.Level)
	}
}

func TestDetectMinSampleSize(t *testing.T) {
	sunday := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	var records []models.BetRecord
	for i := 0; i < 9; i++ {
		records = append(records, betOn(sunday.Add(time.Duration(i)*time.Minute), 2.0, true, "", ""))
	}

	found, err := NewMiner(5.0).Detect(records, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 0 {
		t.Errorf("got %d patterns from 9 records with minSampleSize 10, want 0", len(found))
	}
}

func TestDetectRejectsInvalidMinSample(t *testing.T) {
	if _, err := NewMiner(5.0).Detect(nil, 0); err == nil {
		t.Error("Detect accepted minSampleSize 0")
	}
}

func TestDetectLosingGroupsExcluded(t *testing.T) {
	sunday := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	var records []models.BetRecord
	// 20 Sunday bets, 5 wins: negative ROI group.
	for i := 0; i < 20; i++ {
		records = append(records, betOn(sunday.Add(time.Duration(i)*time.Minute), 2.0, i < 5, "", ""))
	}

	found, err := NewMiner(5.0).Detect(records, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range found {
		if p.AvgROI <= 0 {
			t.Errorf("pattern %q reported with non-positive ROI %.1f", p.Name, p.AvgROI)
		}
	}
}

func TestDetectComboPattern(t *testing.T) {
	base := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	var records []models.BetRecord
	// Premier League over 2.5: 12 bets, 9 wins at odds 2.0 -> ROI 50%.
	for i := 0; i < 12; i++ {
		records = append(records, betOn(base.Add(time.Duration(i)*time.Hour), 2.0, i < 9, "Premier League", "Over 2.5"))
	}

	found, err := NewMiner(5.0).Detect(records, 10)
	if err != nil {
		t.Fatal(err)
	}

	var combo *models.Pattern
	for i := range found {
		if found[i].Conditions["competition"] != "" && found[i].Conditions["bet_type"] != "" {
			combo = &found[i]
		}
	}
	if combo == nil {
		t.Fatal("no combo pattern detected")
	}
	if !strings.Contains(combo.Name, "Premier League") {
		t.Errorf("combo name %q does not mention the competition", combo.Name)
	}
	if combo.SampleSize != 12 {
		t.Errorf("SampleSize = %d, want 12", combo.SampleSize)
	}
}

func TestDetectSortedByROI(t *testing.T) {
	base := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	var records []models.BetRecord
	for i := 0; i < 15; i++ {
		// high-ROI group at odds 3.0
		records = append(records, betOn(base.Add(time.Duration(i)*time.Hour), 3.0, i < 9, "League A", "1X2"))
	}
	for i := 0; i < 15; i++ {
		// lower-ROI group at odds 2.0
		records = append(records, betOn(base.AddDate(0, 0, 7).Add(time.Duration(i)*time.Hour), 2.0, i < 9, "League B", "1X2"))
	}

	found, err := NewMiner(5.0).Detect(records, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(found); i++ {
		if found[i].AvgROI > found[i-1].AvgROI {
			t.Fatalf("patterns not sorted by descending ROI at index %d", i)
		}
	}
}
