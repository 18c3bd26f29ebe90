package tipster

import (
	"fmt"
	"sort"

	"bettrack/internal/models"
)

// Rank computes stats for every tipster present in the records and returns
// them sorted by ROI, best first. Tipsters with fewer than the configured
// minimum number of tips are excluded. Ties on ROI keep a stable order by
// tipster name.
func (a *Analyzer) Rank(records []models.BetRecord) []models.TipsterStats {
	groups := groupByTipster(records)

	ranking := make([]models.TipsterStats, 0, len(groups))
	for _, name := range sortedNames(groups) {
		stats, ok := a.StatsFor(name, groups[name])
		if !ok || stats.TotalTips < a.minTips {
			continue
		}
		ranking = append(ranking, stats)
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].ROI > ranking[j].ROI
	})
	return ranking
}

// Compare scores two tipsters against each other. The composite score
// weighs ROI at 40% and win rate and consistency at 30% each; a score gap
// under five points is treated as a tie.
func (a *Analyzer) Compare(nameA, nameB string, records []models.BetRecord) (models.TipsterComparison, bool) {
	groups := groupByTipster(records)
	statsA, okA := a.StatsFor(nameA, groups[nameA])
	statsB, okB := a.StatsFor(nameB, groups[nameB])
	if !okA || !okB {
		return models.TipsterComparison{}, false
	}

	cmp := models.TipsterComparison{
		TipsterA:          nameA,
		TipsterB:          nameB,
		BetterROI:         pickBetter(nameA, nameB, statsA.ROI, statsB.ROI),
		BetterWinRate:     pickBetter(nameA, nameB, statsA.WinRate, statsB.WinRate),
		BetterConsistency: pickBetter(nameA, nameB, statsA.ConsistencyScore, statsB.ConsistencyScore),
	}

	scoreA := statsA.ROI*0.4 + statsA.WinRate*0.3 + statsA.ConsistencyScore*0.3
	scoreB := statsB.ROI*0.4 + statsB.WinRate*0.3 + statsB.ConsistencyScore*0.3

	if diff := scoreA - scoreB; diff > -5 && diff < 5 {
		cmp.OverallWinner = ""
		cmp.Recommendation = "Both tipsters perform similarly. Consider diversifying across them."
		return cmp, true
	}

	winner, winnerStats := nameA, statsA
	if scoreB > scoreA {
		winner, winnerStats = nameB, statsB
	}
	cmp.OverallWinner = winner
	cmp.Recommendation = fmt.Sprintf("%s is ahead with %.1f%% ROI and a %.1f%% win rate",
		winner, winnerStats.ROI, winnerStats.WinRate)
	return cmp, true
}

func pickBetter(nameA, nameB string, a, b float64) string {
	if a > b {
		return nameA
	}
	return nameB
}
