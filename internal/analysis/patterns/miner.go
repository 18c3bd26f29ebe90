// Package patterns mines the bet history for statistically filtered
// profitable patterns across single and combined dimensions.
package patterns

import (
	"fmt"
	"sort"
	"time"

	"bettrack/internal/errors"
	"bettrack/internal/models"
)

// oddsBucket is a half-open odds range [Min, Max).
type oddsBucket struct {
	Min  float64
	Max  float64
	Name string
}

// The five fixed odds buckets. The last one is unbounded above.
var oddsBuckets = []oddsBucket{
	{1.0, 1.5, "Very low odds"},
	{1.5, 2.0, "Low odds"},
	{2.0, 3.0, "Medium odds"},
	{3.0, 5.0, "High odds"},
	{5.0, 0, "Very high odds"},
}

// Miner detects profitable betting patterns.
type Miner struct {
	comboMinROI float64
}

// NewMiner creates a Miner. comboMinROI is the stricter ROI bar applied to
// combined-dimension groups.
func NewMiner(comboMinROI float64) *Miner {
	return &Miner{comboMinROI: comboMinROI}
}

// Detect returns the profitable patterns found in records, ranked by
// descending average ROI. Groups smaller than minSampleSize are rejected.
func (m *Miner) Detect(records []models.BetRecord, minSampleSize int) ([]models.Pattern, error) {
	if minSampleSize < 1 {
		return nil, errors.NewValidationError("minSampleSize", minSampleSize, "must be at least 1")
	}
	if len(records) == 0 {
		return nil, nil
	}

	var found []models.Pattern
	found = append(found, m.weekdayPatterns(records, minSampleSize)...)
	found = append(found, m.oddsPatterns(records, minSampleSize)...)
	found = append(found, m.fieldPatterns(records, minSampleSize, "competition", func(r models.BetRecord) string { return r.Competition })...)
	found = append(found, m.fieldPatterns(records, minSampleSize, "bet_type", func(r models.BetRecord) string { return r.BetType })...)
	found = append(found, m.comboPatterns(records, minSampleSize)...)

	// Ties keep grouping-iteration order.
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].AvgROI > found[j].AvgROI
	})
	return found, nil
}

func (m *Miner) weekdayPatterns(records []models.BetRecord, minSample int) []models.Pattern {
	groups := make(map[time.Weekday][]models.BetRecord)
	for _, r := range records {
		day := r.Timestamp.Weekday()
		groups[day] = append(groups[day], r)
	}

	var out []models.Pattern
	for day := time.Sunday; day <= time.Saturday; day++ {
		group := groups[day]
		if len(group) < minSample {
			continue
		}
		winRate, avgROI := groupStats(group)
		if avgROI <= 0 {
			continue
		}
		out = append(out, models.Pattern{
			Name:        fmt.Sprintf("Bets on %ss", day),
			Description: fmt.Sprintf("Profitable pattern for bets placed on %ss", day),
			Conditions:  map[string]string{"weekday": day.String()},
			SampleSize:  len(group),
			WinRate:     winRate,
			AvgROI:      avgROI,
			Confidence:  confidence(winRate),
			Level:       singleLevel(winRate),
		})
	}
	return out
}

func (m *Miner) oddsPatterns(records []models.BetRecord, minSample int) []models.Pattern {
	var out []models.Pattern
	for _, b := range oddsBuckets {
		var group []models.BetRecord
		for _, r := range records {
			if r.Odds >= b.Min && (b.Max == 0 || r.Odds < b.Max) {
				group = append(group, r)
			}
		}
		if len(group) < minSample {
			continue
		}
		winRate, avgROI := groupStats(group)
		if avgROI <= 0 {
			continue
		}
		rangeDesc := fmt.Sprintf("%.1f+", b.Min)
		conditions := map[string]string{"odds_min": fmt.Sprintf("%.1f", b.Min)}
		if b.Max > 0 {
			rangeDesc = fmt.Sprintf("%.1f-%.1f", b.Min, b.Max)
			conditions["odds_max"] = fmt.Sprintf("%.1f", b.Max)
		}
		out = append(out, models.Pattern{
			Name:        b.Name,
			Description: fmt.Sprintf("Profitable pattern in the %s odds range", rangeDesc),
			Conditions:  conditions,
			SampleSize:  len(group),
			WinRate:     winRate,
			AvgROI:      avgROI,
			Confidence:  confidence(winRate),
			Level:       singleLevel(winRate),
		})
	}
	return out
}

func (m *Miner) fieldPatterns(records []models.BetRecord, minSample int, field string, key func(models.BetRecord) string) []models.Pattern {
	groups := make(map[string][]models.BetRecord)
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		groups[k] = append(groups[k], r)
	}

	var out []models.Pattern
	for _, k := range sortedKeys(groups) {
		group := groups[k]
		if len(group) < minSample {
			continue
		}
		winRate, avgROI := groupStats(group)
		if avgROI <= 0 {
			continue
		}
		name := fmt.Sprintf("Competition: %s", k)
		desc := fmt.Sprintf("Profitable pattern for bets in %s", k)
		if field == "bet_type" {
			name = fmt.Sprintf("Bet type: %s", k)
			desc = fmt.Sprintf("Profitable pattern for %s bets", k)
		}
		out = append(out, models.Pattern{
			Name:        name,
			Description: desc,
			Conditions:  map[string]string{field: k},
			SampleSize:  len(group),
			WinRate:     winRate,
			AvgROI:      avgROI,
			Confidence:  confidence(winRate),
			Level:       singleLevel(winRate),
		})
	}
	return out
}

func (m *Miner) comboPatterns(records []models.BetRecord, minSample int) []models.Pattern {
	type combo struct{ competition, betType string }
	groups := make(map[combo][]models.BetRecord)
	for _, r := range records {
		if r.Competition == "" || r.BetType == "" {
			continue
		}
		k := combo{r.Competition, r.BetType}
		groups[k] = append(groups[k], r)
	}

	keys := make([]combo, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].competition != keys[j].competition {
			return keys[i].competition < keys[j].competition
		}
		return keys[i].betType < keys[j].betType
	})

	var out []models.Pattern
	for _, k := range keys {
		group := groups[k]
		if len(group) < minSample {
			continue
		}
		winRate, avgROI := groupStats(group)
		if avgROI <= m.comboMinROI {
			continue
		}
		out = append(out, models.Pattern{
			Name:        fmt.Sprintf("%s + %s", k.competition, k.betType),
			Description: fmt.Sprintf("Combined pattern: %s bets in %s", k.betType, k.competition),
			Conditions:  map[string]string{"competition": k.competition, "bet_type": k.betType},
			SampleSize:  len(group),
			WinRate:     winRate,
			AvgROI:      avgROI,
			Confidence:  confidence(winRate),
			Level:       comboLevel(winRate),
		})
	}
	return out
}

// groupStats returns the win rate (percent) and per-bet average ROI (percent)
// of a group.
func groupStats(group []models.BetRecord) (winRate, avgROI float64) {
	wins := 0
	var roiSum float64
	for _, r := range group {
		if r.Won() {
			wins++
		}
		roiSum += r.ROI()
	}
	n := float64(len(group))
	return float64(wins) / n * 100, roiSum / n
}

func confidence(winRate float64) float64 {
	c := winRate / 50
	if c > 1 {
		c = 1
	}
	return c
}

func singleLevel(winRate float64) models.RiskLevel {
	switch {
	case winRate > 60:
		return models.RiskLow
	case winRate > 45:
		return models.RiskModerate
	default:
		return models.RiskHigh
	}
}

func comboLevel(winRate float64) models.RiskLevel {
	switch {
	case winRate > 65:
		return models.RiskLow
	case winRate > 50:
		return models.RiskModerate
	default:
		return models.RiskHigh
	}
}

func sortedKeys(m map[string][]models.BetRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
