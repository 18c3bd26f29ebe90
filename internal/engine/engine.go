// Package engine is the application facade: it loads bet history from the
// store, screens out malformed records, and drives the analysis, simulation
// and ranking components.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"bettrack/internal/analysis/patterns"
	"bettrack/internal/analysis/risk"
	"bettrack/internal/analysis/streak"
	"bettrack/internal/config"
	"bettrack/internal/logging"
	"bettrack/internal/models"
	"bettrack/internal/simulation"
	"bettrack/internal/store"
	"bettrack/internal/tipster"
)

// Engine wires the store to the analysis components.
type Engine struct {
	store     store.DataStore
	cfg       *config.Config
	log       zerolog.Logger
	scorer    *risk.Scorer
	miner     *patterns.Miner
	simulator *simulation.Simulator
	analyzer  *tipster.Analyzer
}

// New creates an Engine from a store and configuration.
func New(ds store.DataStore, cfg *config.Config, log zerolog.Logger) *Engine {
	policy := streak.VoidResets
	if !cfg.Risk.VoidResetsStreak {
		policy = streak.VoidSkips
	}

	thresholds := risk.Thresholds{
		MaxLosingStreak:      cfg.Risk.MaxLosingStreak,
		StakeIncreaseRatio:   cfg.Risk.StakeIncreaseRatio,
		HighOddsThreshold:    cfg.Risk.HighOddsThreshold,
		BankrollRiskPercent:  cfg.Risk.BankrollRiskPercent,
		ImpulsiveTimeSeconds: cfg.Risk.ImpulsiveTimeSeconds,
		HighOddsShare:        cfg.Risk.HighOddsShare,
		EmotionalScoreLimit:  cfg.Risk.EmotionalScoreLimit,
		ImpulsiveCountLimit:  cfg.Risk.ImpulsiveCountLimit,
		VoidPolicy:           policy,
	}

	return &Engine{
		store:     ds,
		cfg:       cfg,
		log:       logging.WithComponent(log, "engine"),
		scorer:    risk.NewScorer(thresholds),
		miner:     patterns.NewMiner(cfg.Patterns.ComboMinROI),
		simulator: simulation.NewSimulator(),
		analyzer:  tipster.NewAnalyzer(policy, cfg.Tipsters.MinTips),
	}
}

// RiskReport is the outcome of a behavioral risk analysis.
type RiskReport struct {
	Metrics         models.RiskMetrics
	Alerts          []models.RiskAlert
	Recommendations []string
	RecordCount     int
	Excluded        int
	GeneratedAt     time.Time
}

// GetRiskAnalysis analyzes betting behavior over the last daysBack days.
// Alerts are returned but not persisted; use LogAlerts for that.
func (e *Engine) GetRiskAnalysis(ctx context.Context, daysBack int) (*RiskReport, error) {
	records, excluded, err := e.loadRecords(ctx, daysBack, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	metrics, alerts := e.scorer.Analyze(records, now)
	report := &RiskReport{
		Metrics:         metrics,
		Alerts:          alerts,
		Recommendations: risk.Recommendations(metrics, alerts),
		RecordCount:     len(records),
		Excluded:        excluded,
		GeneratedAt:     now,
	}

	e.log.Info().
		Int("records", len(records)).
		Int("alerts", len(alerts)).
		Float64("overall_score", metrics.OverallScore).
		Str("level", string(metrics.Level)).
		Msg("risk analysis complete")
	return report, nil
}

// LogAlerts persists the alerts of a risk report to the alert log and
// returns them with their assigned IDs.
func (e *Engine) LogAlerts(ctx context.Context, alerts []models.RiskAlert) ([]models.RiskAlert, error) {
	stored, err := e.store.SaveAlerts(ctx, alerts)
	if err != nil {
		return nil, err
	}
	for _, a := range stored {
		e.log.Warn().
			Str("kind", string(a.Kind)).
			Str("level", string(a.Level)).
			Float64("severity", a.Severity).
			Msg(a.Message)
	}
	return stored, nil
}

// RecentAlerts lists logged alerts, newest first.
func (e *Engine) RecentAlerts(ctx context.Context, filter store.AlertFilter) ([]models.RiskAlert, error) {
	return e.store.RecentAlerts(ctx, filter)
}

// AcknowledgeAlert marks a logged alert as acknowledged.
func (e *Engine) AcknowledgeAlert(ctx context.Context, alertID string) error {
	return e.store.AcknowledgeAlert(ctx, alertID)
}

// PatternReport is the outcome of a pattern mining pass.
type PatternReport struct {
	Patterns    []models.Pattern
	RecordCount int
	Excluded    int
	GeneratedAt time.Time
}

// GetPatterns mines statistically interesting groupings from bet history.
// A minSampleSize of zero or less falls back to the configured default.
func (e *Engine) GetPatterns(ctx context.Context, daysBack, minSampleSize int) (*PatternReport, error) {
	if minSampleSize <= 0 {
		minSampleSize = e.cfg.Patterns.MinSampleSize
	}
	records, excluded, err := e.loadRecords(ctx, daysBack, "")
	if err != nil {
		return nil, err
	}

	found, err := e.miner.Detect(records, minSampleSize)
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Int("records", len(records)).
		Int("patterns", len(found)).
		Msg("pattern mining complete")
	return &PatternReport{
		Patterns:    found,
		RecordCount: len(records),
		Excluded:    excluded,
		GeneratedAt: time.Now(),
	}, nil
}

// RunSimulation replays the bet history under each requested strategy.
// When kinds is empty, all strategies are compared.
func (e *Engine) RunSimulation(ctx context.Context, daysBack int, kinds []models.StrategyKind) ([]models.SimulationResult, error) {
	records, _, err := e.loadRecords(ctx, daysBack, "")
	if err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		kinds = []models.StrategyKind{
			models.StrategyFlat,
			models.StrategyPercentage,
			models.StrategyKelly,
			models.StrategyMartingale,
			models.StrategyFibonacci,
		}
	}

	params := e.simulationParams()
	results, err := e.simulator.Compare(kinds, records, params)
	if err != nil {
		return nil, err
	}
	e.log.Info().
		Int("records", len(records)).
		Int("strategies", len(results)).
		Msg("simulation complete")
	return results, nil
}

// RunMonteCarlo projects future bankroll outcomes from the bet history.
func (e *Engine) RunMonteCarlo(ctx context.Context, daysBack, betsPerRun int, seed int64) (models.MonteCarloResult, error) {
	records, _, err := e.loadRecords(ctx, daysBack, "")
	if err != nil {
		return models.MonteCarloResult{}, err
	}
	return e.simulator.MonteCarlo(records, simulation.MonteCarloParams{
		Runs:            e.cfg.Simulation.MonteCarloRuns,
		BetsPerRun:      betsPerRun,
		InitialBankroll: e.cfg.Simulation.InitialBankroll,
		Stake:           e.cfg.Simulation.FlatStake,
		Seed:            seed,
	})
}

// GetTipsterRanking ranks every tipster in the analysis window by ROI.
func (e *Engine) GetTipsterRanking(ctx context.Context, daysBack int) ([]models.TipsterStats, error) {
	records, _, err := e.loadRecords(ctx, daysBack, "")
	if err != nil {
		return nil, err
	}
	ranking := e.analyzer.Rank(records)
	e.log.Info().
		Int("records", len(records)).
		Int("tipsters", len(ranking)).
		Msg("tipster ranking complete")
	return ranking, nil
}

// CompareTipsters scores two tipsters head to head over the window.
func (e *Engine) CompareTipsters(ctx context.Context, daysBack int, nameA, nameB string) (models.TipsterComparison, bool, error) {
	records, _, err := e.loadRecords(ctx, daysBack, "")
	if err != nil {
		return models.TipsterComparison{}, false, err
	}
	cmp, ok := e.analyzer.Compare(nameA, nameB, records)
	return cmp, ok, nil
}

// GetTipsterTrends breaks one tipster's form down over time and by market.
func (e *Engine) GetTipsterTrends(ctx context.Context, daysBack int, name string) (tipster.Trends, bool, error) {
	records, _, err := e.loadRecords(ctx, daysBack, name)
	if err != nil {
		return tipster.Trends{}, false, err
	}
	trends, ok := e.analyzer.TrendsFor(records, time.Now())
	return trends, ok, nil
}

func (e *Engine) simulationParams() simulation.Params {
	return simulation.Params{
		InitialBankroll:  e.cfg.Simulation.InitialBankroll,
		FlatStake:        e.cfg.Simulation.FlatStake,
		Percentage:       e.cfg.Simulation.Percentage,
		BaseBet:          e.cfg.Simulation.BaseBet,
		KellyMaxFraction: e.cfg.Simulation.KellyMaxFraction,
		MaxMultiplier:    e.cfg.Simulation.MaxMultiplier,
	}
}

// loadRecords fetches the window of bet history and screens out records
// with invalid stakes, odds, or outcomes. The excluded count is reported so
// callers can surface data quality problems instead of silently absorbing
// them.
func (e *Engine) loadRecords(ctx context.Context, daysBack int, tipsterName string) ([]models.BetRecord, int, error) {
	filter := store.BetFilter{Tipster: tipsterName}
	if daysBack > 0 {
		filter.StartDate = time.Now().AddDate(0, 0, -daysBack)
	}

	all, err := e.store.GetBets(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	records := make([]models.BetRecord, 0, len(all))
	excluded := 0
	for _, r := range all {
		if r.Stake <= 0 || r.Odds <= 1 || !r.Outcome.Valid() {
			excluded++
			continue
		}
		records = append(records, r)
	}
	if excluded > 0 {
		e.log.Warn().Int("excluded", excluded).Msg("malformed bet records excluded from analysis")
	}
	return records, excluded, nil
}
