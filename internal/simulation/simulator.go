// Package simulation replays the historical bet sequence under different
// bankroll-sizing strategies and reports risk-adjusted performance.
package simulation

import (
	"fmt"
	"math"
	"sync"

	"bettrack/internal/errors"
	"bettrack/internal/models"
)

// Params holds the strategy knobs shared by all simulations.
type Params struct {
	InitialBankroll  float64
	FlatStake        float64
	Percentage       float64
	BaseBet          float64
	KellyMaxFraction float64
	MaxMultiplier    int
}

// DefaultParams returns the default simulation parameters.
func DefaultParams() Params {
	return Params{
		InitialBankroll:  1000,
		FlatStake:        50,
		Percentage:       5,
		BaseBet:          25,
		KellyMaxFraction: 0.25,
		MaxMultiplier:    8,
	}
}

func (p Params) validate() error {
	if p.InitialBankroll <= 0 {
		return errors.NewValidationError("InitialBankroll", p.InitialBankroll, "must be positive")
	}
	if p.FlatStake <= 0 {
		return errors.NewValidationError("FlatStake", p.FlatStake, "must be positive")
	}
	if p.Percentage <= 0 || p.Percentage > 100 {
		return errors.NewValidationError("Percentage", p.Percentage, "must be in (0, 100]")
	}
	if p.BaseBet <= 0 {
		return errors.NewValidationError("BaseBet", p.BaseBet, "must be positive")
	}
	if p.KellyMaxFraction <= 0 || p.KellyMaxFraction > 1 {
		return errors.NewValidationError("KellyMaxFraction", p.KellyMaxFraction, "must be in (0, 1]")
	}
	if p.MaxMultiplier < 1 {
		return errors.NewValidationError("MaxMultiplier", p.MaxMultiplier, "must be at least 1")
	}
	return nil
}

// Simulator replays bet histories under bankroll-sizing strategies.
type Simulator struct{}

// NewSimulator creates a Simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Simulate replays records chronologically under the given strategy. The
// replay stops early when the bankroll can no longer cover the required
// stake, or the stake drops below one monetary unit; a partial replay is a
// valid result.
func (s *Simulator) Simulate(kind models.StrategyKind, records []models.BetRecord, params Params) (models.SimulationResult, error) {
	if err := params.validate(); err != nil {
		return models.SimulationResult{}, err
	}

	sz, name, err := newSizer(kind, records, params)
	if err != nil {
		return models.SimulationResult{}, err
	}

	bankroll := params.InitialBankroll
	trajectory := []float64{bankroll}
	var betSizes []float64
	wins := 0
	var totalProfit float64

	for _, r := range records {
		stake := sz.stake(bankroll, r)
		if stake < 1 || bankroll < stake {
			break
		}
		betSizes = append(betSizes, stake)
		bankroll -= stake

		switch {
		case r.Won():
			wins++
			bankroll += stake * r.Odds
			totalProfit += stake * (r.Odds - 1)
		case r.Lost():
			totalProfit -= stake
		default:
			// Void or pending: the stake comes back.
			bankroll += stake
		}
		sz.observe(r)
		trajectory = append(trajectory, bankroll)
	}

	return buildResult(name, params.InitialBankroll, bankroll, wins, totalProfit, trajectory, betSizes), nil
}

// Compare runs each strategy over the same record sequence. The strategies
// are independent and run concurrently.
func (s *Simulator) Compare(kinds []models.StrategyKind, records []models.BetRecord, params Params) ([]models.SimulationResult, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	for _, k := range kinds {
		if !k.Valid() {
			return nil, fmt.Errorf("%w: %s", errors.ErrUnknownStrategy, k)
		}
	}

	results := make([]models.SimulationResult, len(kinds))
	errs := make([]error, len(kinds))
	var wg sync.WaitGroup
	for i, kind := range kinds {
		wg.Add(1)
		go func(i int, kind models.StrategyKind) {
			defer wg.Done()
			results[i], errs[i] = s.Simulate(kind, records, params)
		}(i, kind)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// sizer yields the stake for the next bet and observes each settled outcome.
type sizer interface {
	stake(bankroll float64, r models.BetRecord) float64
	observe(r models.BetRecord)
}

func newSizer(kind models.StrategyKind, records []models.BetRecord, params Params) (sizer, string, error) {
	switch kind {
	case models.StrategyFlat:
		return &flatSizer{amount: params.FlatStake}, "Flat Betting", nil
	case models.StrategyPercentage:
		return &percentageSizer{pct: params.Percentage}, fmt.Sprintf("Percentage (%g%%)", params.Percentage), nil
	case models.StrategyKelly:
		return &kellySizer{
			winRates:    buildWinRateTable(records),
			maxFraction: params.KellyMaxFraction,
		}, "Kelly Criterion", nil
	case models.StrategyMartingale:
		return &martingaleSizer{
			baseBet:       params.BaseBet,
			maxMultiplier: float64(params.MaxMultiplier),
		}, "Martingale", nil
	case models.StrategyFibonacci:
		return &fibonacciSizer{baseBet: params.BaseBet}, "Fibonacci", nil
	default:
		return nil, "", fmt.Errorf("%w: %s", errors.ErrUnknownStrategy, kind)
	}
}

type flatSizer struct {
	amount float64
}

func (f *flatSizer) stake(float64, models.BetRecord) float64 { return f.amount }
func (f *flatSizer) observe(models.BetRecord)                {}

type percentageSizer struct {
	pct float64
}

func (p *percentageSizer) stake(bankroll float64, _ models.BetRecord) float64 {
	return bankroll * p.pct / 100
}
func (p *percentageSizer) observe(models.BetRecord) {}

// kellySizer sizes bets with the Kelly criterion using the historical win
// rate of each (competition, bet type) group as the probability estimate.
// The table is built once per run and never mutated.
type kellySizer struct {
	winRates    winRateTable
	maxFraction float64
}

func (k *kellySizer) stake(bankroll float64, r models.BetRecord) float64 {
	b := r.Odds - 1
	if b <= 0 {
		return 0
	}
	p := k.winRates.rate(r.Competition, r.BetType)
	q := 1 - p
	fraction := (b*p - q) / b
	if fraction < 0 {
		fraction = 0
	}
	if fraction > k.maxFraction {
		fraction = k.maxFraction
	}
	return bankroll * fraction
}
func (k *kellySizer) observe(models.BetRecord) {}

type martingaleSizer struct {
	baseBet           float64
	maxMultiplier     float64
	consecutiveLosses int
}

func (m *martingaleSizer) stake(float64, models.BetRecord) float64 {
	multiplier := math.Min(math.Pow(2, float64(m.consecutiveLosses)), m.maxMultiplier)
	return m.baseBet * multiplier
}

func (m *martingaleSizer) observe(r models.BetRecord) {
	switch {
	case r.Won():
		m.consecutiveLosses = 0
	case r.Lost():
		m.consecutiveLosses++
	}
}

// fibSequence is the fixed staking ladder used by the Fibonacci strategy.
var fibSequence = []float64{1, 1, 2, 3, 5, 8, 13, 21, 34, 55}

type fibonacciSizer struct {
	baseBet float64
	index   int
}

func (f *fibonacciSizer) stake(float64, models.BetRecord) float64 {
	return f.baseBet * fibSequence[f.index]
}

func (f *fibonacciSizer) observe(r models.BetRecord) {
	switch {
	case r.Won():
		f.index -= 2
		if f.index < 0 {
			f.index = 0
		}
	case r.Lost():
		if f.index < len(fibSequence)-1 {
			f.index++
		}
	}
}

// winRateTable is an immutable snapshot of historical win rates keyed by
// (competition, bet type).
type winRateTable struct {
	rates   map[string]float64
	overall float64
}

func buildWinRateTable(records []models.BetRecord) winRateTable {
	type tally struct{ wins, total int }
	tallies := make(map[string]tally)
	allWins, allTotal := 0, 0
	for _, r := range records {
		k := r.Competition + "\x00" + r.BetType
		t := tallies[k]
		t.total++
		allTotal++
		if r.Won() {
			t.wins++
			allWins++
		}
		tallies[k] = t
	}

	rates := make(map[string]float64, len(tallies))
	for k, t := range tallies {
		rates[k] = float64(t.wins) / float64(t.total)
	}
	overall := 0.0
	if allTotal > 0 {
		overall = float64(allWins) / float64(allTotal)
	}
	return winRateTable{rates: rates, overall: overall}
}

func (w winRateTable) rate(competition, betType string) float64 {
	if r, ok := w.rates[competition+"\x00"+betType]; ok {
		return r
	}
	return w.overall
}
