// Package tipster aggregates per-tipster track records, ranks tipsters, and
// compares them head to head.
package tipster

import (
	"math"
	"sort"

	"bettrack/internal/analysis/streak"
	"bettrack/internal/models"
)

// Analyzer computes tipster statistics from chronological bet records.
type Analyzer struct {
	tracker *streak.Tracker
	minTips int
}

// NewAnalyzer creates an Analyzer. minTips is the minimum track record
// length for a tipster to appear in rankings.
func NewAnalyzer(policy streak.VoidPolicy, minTips int) *Analyzer {
	if minTips < 1 {
		minTips = 1
	}
	return &Analyzer{tracker: streak.New(policy), minTips: minTips}
}

// StatsFor aggregates the full track record for one tipster. Records must
// already be filtered to the tipster and sorted chronologically. Returns
// false when the record set is empty.
func (a *Analyzer) StatsFor(name string, records []models.BetRecord) (models.TipsterStats, bool) {
	if len(records) == 0 {
		return models.TipsterStats{}, false
	}

	stats := models.TipsterStats{Name: name, TotalTips: len(records)}
	var oddsSum float64
	for _, r := range records {
		stats.TotalStake += r.Stake
		stats.TotalProfit += r.Profit
		oddsSum += r.Odds
		switch {
		case r.Won():
			stats.Wins++
		case r.Lost():
			stats.Losses++
		}
	}
	stats.WinRate = float64(stats.Wins) / float64(stats.TotalTips) * 100
	if stats.TotalStake > 0 {
		stats.ROI = stats.TotalProfit / stats.TotalStake * 100
	}
	stats.AvgOdds = oddsSum / float64(stats.TotalTips)

	sum := a.tracker.Summarize(records)
	stats.MaxWinStreak = sum.MaxWinStreak
	stats.MaxLossStreak = sum.MaxLossStreak
	stats.CurrentStreak = sum.Current
	stats.StreakType = sum.Type

	stats.LastTipDate = records[len(records)-1].Timestamp
	first := records[0].Timestamp
	stats.ActiveDays = int(stats.LastTipDate.Sub(first).Hours()/24) + 1
	if stats.ActiveDays > 0 {
		stats.TipsPerDay = float64(stats.TotalTips) / float64(stats.ActiveDays)
	}

	stats.ProfitFactor = profitFactor(records)
	stats.SharpeRatio = sharpeRatio(records)
	stats.MaxDrawdown = maxDrawdown(records)
	stats.ConsistencyScore = consistencyScore(records)
	stats.Level = classifyRisk(stats.WinRate, stats.ROI, stats.MaxDrawdown, stats.ConsistencyScore)
	stats.Recommendation = recommend(stats.WinRate, stats.ROI, stats.ConsistencyScore, stats.Level)
	return stats, true
}

// profitFactor is gross winnings over gross losses. A tipster with no
// losing bets has an infinite profit factor.
func profitFactor(records []models.BetRecord) float64 {
	var winnings, losses float64
	for _, r := range records {
		switch {
		case r.Won():
			winnings += r.Profit
		case r.Lost():
			losses += math.Abs(r.Profit)
		}
	}
	if losses == 0 {
		return math.Inf(1)
	}
	return winnings / losses
}

// sharpeRatio over per-bet returns (profit relative to stake).
func sharpeRatio(records []models.BetRecord) float64 {
	var returns []float64
	for _, r := range records {
		if r.Stake > 0 {
			returns = append(returns, r.Profit/r.Stake)
		}
	}
	if len(returns) < 2 {
		return 0
	}
	var total float64
	for _, v := range returns {
		total += v
	}
	mean := total / float64(len(returns))
	var sq float64
	for _, v := range returns {
		d := v - mean
		sq += d * d
	}
	sd := math.Sqrt(sq / float64(len(returns)))
	if sd == 0 {
		return 0
	}
	return mean / sd
}

// maxDrawdown walks the cumulative profit curve and returns the deepest
// decline from a running peak, as a percentage of that peak.
func maxDrawdown(records []models.BetRecord) float64 {
	cumulative := 0.0
	peak := 0.0
	worst := 0.0
	for _, r := range records {
		cumulative += r.Profit
		if cumulative > peak {
			peak = cumulative
		}
		if peak > 0 {
			dd := (peak - cumulative) / peak * 100
			if dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

// consistencyScore splits the track record into roughly ten periods and
// scores how stable the per-period ROI is, from 0 (erratic) to 100.
func consistencyScore(records []models.BetRecord) float64 {
	if len(records) < 10 {
		return 0
	}
	periodSize := len(records) / 10
	if periodSize < 5 {
		periodSize = 5
	}

	var periodROIs []float64
	for i := 0; i < len(records); i += periodSize {
		end := i + periodSize
		if end > len(records) {
			end = len(records)
		}
		period := records[i:end]
		if len(period) < 3 {
			continue
		}
		var profit, stake float64
		for _, r := range period {
			profit += r.Profit
			stake += r.Stake
		}
		if stake > 0 {
			periodROIs = append(periodROIs, profit/stake*100)
		}
	}
	if len(periodROIs) < 3 {
		return 0
	}

	var total float64
	for _, v := range periodROIs {
		total += v
	}
	mean := total / float64(len(periodROIs))
	var sq float64
	for _, v := range periodROIs {
		d := v - mean
		sq += d * d
	}
	sd := math.Sqrt(sq / float64(len(periodROIs)))
	if sd == 0 {
		return 100
	}
	score := 100 - (sd/math.Max(math.Abs(mean), 1))*50
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// classifyRisk buckets a tipster by an additive score: win rate weighs 25,
// ROI 30, drawdown 25, consistency 20.
func classifyRisk(winRate, roi, drawdown, consistency float64) models.RiskLevel {
	score := 0

	switch {
	case winRate >= 60:
		score += 25
	case winRate >= 50:
		score += 15
	case winRate >= 40:
		score += 5
	}

	switch {
	case roi >= 10:
		score += 30
	case roi >= 5:
		score += 20
	case roi >= 0:
		score += 10
	}

	switch {
	case drawdown <= 10:
		score += 25
	case drawdown <= 20:
		score += 15
	case drawdown <= 30:
		score += 5
	}

	switch {
	case consistency >= 70:
		score += 20
	case consistency >= 50:
		score += 15
	case consistency >= 30:
		score += 10
	}

	switch {
	case score >= 70:
		return models.RiskLow
	case score >= 40:
		return models.RiskModerate
	default:
		return models.RiskHigh
	}
}

func recommend(winRate, roi, consistency float64, level models.RiskLevel) string {
	switch {
	case roi >= 10 && winRate >= 55 && level == models.RiskLow:
		return "FOLLOW - excellent performance with low risk"
	case roi >= 5 && winRate >= 50 && consistency >= 50:
		return "FOLLOW - good performance with controlled risk"
	case roi >= 0 && winRate >= 45:
		return "WATCH - moderate performance, monitor progress"
	case roi < 0 || winRate < 40:
		return "AVOID - unsatisfactory performance"
	default:
		return "NEUTRAL - needs more data for a verdict"
	}
}

// groupByTipster splits records into per-tipster chronological slices.
// Records with an empty tipster field are credited to the default tipster.
func groupByTipster(records []models.BetRecord) map[string][]models.BetRecord {
	groups := make(map[string][]models.BetRecord)
	for _, r := range records {
		name := r.Tipster
		if name == "" {
			name = models.DefaultTipster
		}
		groups[name] = append(groups[name], r)
	}
	return groups
}

func sortedNames(groups map[string][]models.BetRecord) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
