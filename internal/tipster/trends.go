package tipster

import (
	"sort"
	"time"

	"bettrack/internal/models"
)

// PeriodStats aggregates a tipster's results over one grouping bucket.
type PeriodStats struct {
	Key     string
	Tips    int
	Wins    int
	WinRate float64
	Profit  float64
	Stake   float64
	ROI     float64
}

// Trends is a tipster's form broken down over time and by market.
type Trends struct {
	Monthly          []PeriodStats
	BestCompetitions []PeriodStats
	BestBetTypes     []PeriodStats
	RecentForm       PeriodStats
}

// TrendsFor breaks a tipster's records down by month, competition, and bet
// type, and summarizes form in the 30 days before asOf. Records must be
// filtered to the tipster and sorted chronologically.
func (a *Analyzer) TrendsFor(records []models.BetRecord, asOf time.Time) (Trends, bool) {
	if len(records) == 0 {
		return Trends{}, false
	}

	trends := Trends{
		Monthly:          groupPeriods(records, func(r models.BetRecord) string { return r.Timestamp.Format("2006-01") }),
		BestCompetitions: topByProfit(groupPeriods(records, func(r models.BetRecord) string { return r.Competition }), 5),
		BestBetTypes:     topByProfit(groupPeriods(records, func(r models.BetRecord) string { return r.BetType }), 5),
	}

	cutoff := asOf.AddDate(0, 0, -30)
	var recent []models.BetRecord
	for _, r := range records {
		if !r.Timestamp.Before(cutoff) {
			recent = append(recent, r)
		}
	}
	trends.RecentForm = aggregate("recent", recent)
	return trends, true
}

func groupPeriods(records []models.BetRecord, keyFn func(models.BetRecord) string) []PeriodStats {
	groups := make(map[string][]models.BetRecord)
	for _, r := range records {
		k := keyFn(r)
		groups[k] = append(groups[k], r)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stats := make([]PeriodStats, 0, len(keys))
	for _, k := range keys {
		stats = append(stats, aggregate(k, groups[k]))
	}
	return stats
}

func topByProfit(stats []PeriodStats, n int) []PeriodStats {
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Profit > stats[j].Profit
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

func aggregate(key string, records []models.BetRecord) PeriodStats {
	p := PeriodStats{Key: key, Tips: len(records)}
	for _, r := range records {
		p.Profit += r.Profit
		p.Stake += r.Stake
		if r.Won() {
			p.Wins++
		}
	}
	if p.Tips > 0 {
		p.WinRate = float64(p.Wins) / float64(p.Tips) * 100
	}
	if p.Stake > 0 {
		p.ROI = p.Profit / p.Stake * 100
	}
	return p
}
