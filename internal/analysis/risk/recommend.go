package risk

import "bettrack/internal/models"

// Recommendations builds the risk-management guidance shown with a report.
// Entries are deduplicated while preserving order so repeated runs over the
// same data render identically.
func Recommendations(m models.RiskMetrics, alerts []models.RiskAlert) []string {
	var recs []string

	switch m.Level {
	case models.RiskCritical:
		recs = append(recs,
			"Stop betting immediately and seek professional help",
			"Take a mandatory break of at least one week")
	case models.RiskHigh:
		recs = append(recs,
			"Significantly reduce stake sizes",
			"Apply strict bankroll management rules",
			"Consider a break of a few days")
	case models.RiskModerate:
		recs = append(recs,
			"Review and adjust your betting strategy",
			"Keep stakes consistent",
			"Avoid betting after consecutive losses")
	default:
		recs = append(recs,
			"Keep following the current strategy",
			"Maintain discipline and consistency")
	}

	for _, a := range alerts {
		switch a.Kind {
		case models.AlertLossStreak:
			recs = append(recs, "Adopt a pause rule after 3 consecutive losses")
		case models.AlertHighStakeAfterLoss, models.AlertProgressiveStakeIncrease:
			recs = append(recs, "Never raise stakes after a loss")
		case models.AlertImpulsiveBets:
			recs = append(recs, "Wait at least 30 minutes before the next bet")
		case models.AlertPoorBankrollManagement:
			recs = append(recs, "Size every bet from a fixed bankroll percentage")
		case models.AlertExcessiveOdds:
			recs = append(recs, "Limit long-odds bets to a small share of turnover")
		}
	}

	return dedupe(recs)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
