package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// TipsterStats aggregates a tipster's track record over an analysis window.
type TipsterStats struct {
	Name             string
	TotalTips        int
	Wins             int
	Losses           int
	WinRate          float64 // percent
	TotalStake       float64
	TotalProfit      float64
	ROI              float64 // percent
	AvgOdds          float64
	MaxWinStreak     int
	MaxLossStreak    int
	CurrentStreak    int
	StreakType       StreakType
	LastTipDate      time.Time
	ActiveDays       int
	TipsPerDay       float64
	ProfitFactor     float64 // +Inf when the tipster has no losses
	SharpeRatio      float64
	MaxDrawdown      float64 // percent
	ConsistencyScore float64 // 0-100
	Level            RiskLevel
	Recommendation   string
}

type tipsterStatsAlias TipsterStats

// MarshalJSON encodes ProfitFactor's +Inf sentinel as the string "inf",
// since JSON has no representation for infinity.
func (s TipsterStats) MarshalJSON() ([]byte, error) {
	out := struct {
		tipsterStatsAlias
		ProfitFactor interface{}
	}{tipsterStatsAlias: tipsterStatsAlias(s)}
	if math.IsInf(s.ProfitFactor, 1) {
		out.ProfitFactor = "inf"
	} else {
		out.ProfitFactor = s.ProfitFactor
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores ProfitFactor from either a number or "inf".
func (s *TipsterStats) UnmarshalJSON(data []byte) error {
	in := struct {
		*tipsterStatsAlias
		ProfitFactor json.RawMessage
	}{tipsterStatsAlias: (*tipsterStatsAlias)(s)}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in.ProfitFactor) == 0 {
		return nil
	}
	var f float64
	if err := json.Unmarshal(in.ProfitFactor, &f); err == nil {
		s.ProfitFactor = f
		return nil
	}
	var str string
	if err := json.Unmarshal(in.ProfitFactor, &str); err != nil || str != "inf" {
		return fmt.Errorf("invalid profit factor %s", in.ProfitFactor)
	}
	s.ProfitFactor = math.Inf(1)
	return nil
}

// TipsterComparison is the verdict of a pairwise tipster comparison.
type TipsterComparison struct {
	TipsterA          string
	TipsterB          string
	BetterROI         string
	BetterWinRate     string
	BetterConsistency string
	OverallWinner     string
	Recommendation    string
}
