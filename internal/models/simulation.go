package models

// StrategyKind identifies a bankroll-sizing algorithm.
type StrategyKind string

const (
	StrategyFlat       StrategyKind = "FLAT"
	StrategyPercentage StrategyKind = "PERCENTAGE"
	StrategyKelly      StrategyKind = "KELLY"
	StrategyMartingale StrategyKind = "MARTINGALE"
	StrategyFibonacci  StrategyKind = "FIBONACCI"
)

// Valid reports whether k names a known strategy.
func (k StrategyKind) Valid() bool {
	switch k {
	case StrategyFlat, StrategyPercentage, StrategyKelly, StrategyMartingale, StrategyFibonacci:
		return true
	}
	return false
}

// SimulationResult holds the outcome of replaying the bet history under a
// bankroll-sizing strategy. A partial replay (stopped when the bankroll could
// no longer cover the required stake) is a valid result.
type SimulationResult struct {
	StrategyName    string
	InitialBankroll float64
	FinalBankroll   float64
	TotalBets       int
	WinningBets     int
	TotalProfit     float64
	ROI             float64 // percent
	WinRate         float64 // percent
	MaxDrawdown     float64 // percent of peak
	SharpeRatio     float64
	SortinoRatio    float64
	CalmarRatio     float64
	ValueAtRisk     float64 // 95% historical VaR on per-bet returns
	AvgBetSize      float64
	MaxBetSize      float64
	MinBetSize      float64
	Bankroll        []float64 // trajectory, initial value first
	BetSizes        []float64
}

// MonteCarloResult summarizes a resampled bankroll simulation.
type MonteCarloResult struct {
	Runs            int
	BetsPerRun      int
	InitialBankroll float64
	MedianFinal     float64
	P5Final         float64
	P95Final        float64
	RuinProbability float64 // fraction of runs that hit zero
}
