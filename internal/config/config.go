// Package config provides configuration management for the betting analytics application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"bettrack/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Risk       RiskConfig       `mapstructure:"risk"`
	Patterns   PatternConfig    `mapstructure:"patterns"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Tipsters   TipsterConfig    `mapstructure:"tipsters"`
	UI         UIConfig         `mapstructure:"ui"`
}

// RiskConfig holds the thresholds for behavioral risk analysis.
type RiskConfig struct {
	MaxLosingStreak      int     `mapstructure:"max_losing_streak"`
	StakeIncreaseRatio   float64 `mapstructure:"stake_increase_ratio"`
	HighOddsThreshold    float64 `mapstructure:"high_odds_threshold"`
	BankrollRiskPercent  float64 `mapstructure:"bankroll_risk_percent"`
	ImpulsiveTimeSeconds int     `mapstructure:"impulsive_time_seconds"`
	HighOddsShare        float64 `mapstructure:"high_odds_share"`
	EmotionalScoreLimit  float64 `mapstructure:"emotional_score_limit"`
	ImpulsiveCountLimit  int     `mapstructure:"impulsive_count_limit"`
	VoidResetsStreak     bool    `mapstructure:"void_resets_streak"`
}

// PatternConfig holds pattern mining configuration.
type PatternConfig struct {
	MinSampleSize int     `mapstructure:"min_sample_size"`
	ComboMinROI   float64 `mapstructure:"combo_min_roi"`
}

// SimulationConfig holds strategy simulation defaults.
type SimulationConfig struct {
	InitialBankroll  float64 `mapstructure:"initial_bankroll"`
	FlatStake        float64 `mapstructure:"flat_stake"`
	Percentage       float64 `mapstructure:"percentage"`
	BaseBet          float64 `mapstructure:"base_bet"`
	KellyMaxFraction float64 `mapstructure:"kelly_max_fraction"`
	MaxMultiplier    int     `mapstructure:"max_multiplier"`
	MonteCarloRuns   int     `mapstructure:"monte_carlo_runs"`
}

// TipsterConfig holds tipster ranking configuration.
type TipsterConfig struct {
	MinTips  int `mapstructure:"min_tips"`
	DaysBack int `mapstructure:"days_back"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// Default returns the configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Risk: RiskConfig{
			MaxLosingStreak:      5,
			StakeIncreaseRatio:   2.0,
			HighOddsThreshold:    5.0,
			BankrollRiskPercent:  10.0,
			ImpulsiveTimeSeconds: 300,
			HighOddsShare:        0.3,
			EmotionalScoreLimit:  7.0,
			ImpulsiveCountLimit:  3,
			VoidResetsStreak:     true,
		},
		Patterns: PatternConfig{
			MinSampleSize: 10,
			ComboMinROI:   5.0,
		},
		Simulation: SimulationConfig{
			InitialBankroll:  1000,
			FlatStake:        50,
			Percentage:       5,
			BaseBet:          25,
			KellyMaxFraction: 0.25,
			MaxMultiplier:    8,
			MonteCarloRuns:   1000,
		},
		Tipsters: TipsterConfig{
			MinTips:  10,
			DaysBack: 365,
		},
		UI: UIConfig{
			ColorEnabled: true,
			DateFormat:   "2006-01-02",
		},
	}
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/bettrack"
	}
	return filepath.Join(home, ".config", "bettrack")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("BETTRACK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.yaml: %w", err)
		}
		// Missing file is fine, defaults apply.
	} else if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Risk.MaxLosingStreak < 1 {
		return fmt.Errorf("%w: max_losing_streak must be at least 1", errors.ErrConfigInvalid)
	}
	if c.Risk.StakeIncreaseRatio < 1 {
		return fmt.Errorf("%w: stake_increase_ratio must be at least 1.0", errors.ErrConfigInvalid)
	}
	if c.Risk.HighOddsThreshold <= 1 {
		return fmt.Errorf("%w: high_odds_threshold must be greater than 1.0", errors.ErrConfigInvalid)
	}
	if c.Risk.ImpulsiveTimeSeconds <= 0 {
		return fmt.Errorf("%w: impulsive_time_seconds must be positive", errors.ErrConfigInvalid)
	}
	if c.Risk.HighOddsShare <= 0 || c.Risk.HighOddsShare > 1 {
		return fmt.Errorf("%w: high_odds_share must be in (0, 1]", errors.ErrConfigInvalid)
	}
	if c.Patterns.MinSampleSize < 1 {
		return fmt.Errorf("%w: min_sample_size must be at least 1", errors.ErrConfigInvalid)
	}
	if c.Simulation.InitialBankroll <= 0 {
		return fmt.Errorf("%w: initial_bankroll must be positive", errors.ErrConfigInvalid)
	}
	if c.Simulation.Percentage <= 0 || c.Simulation.Percentage > 100 {
		return fmt.Errorf("%w: percentage must be in (0, 100]", errors.ErrConfigInvalid)
	}
	if c.Simulation.KellyMaxFraction <= 0 || c.Simulation.KellyMaxFraction > 1 {
		return fmt.Errorf("%w: kelly_max_fraction must be in (0, 1]", errors.ErrConfigInvalid)
	}
	if c.Simulation.MaxMultiplier < 1 {
		return fmt.Errorf("%w: max_multiplier must be at least 1", errors.ErrConfigInvalid)
	}
	if c.Tipsters.MinTips < 1 {
		return fmt.Errorf("%w: min_tips must be at least 1", errors.ErrConfigInvalid)
	}
	return nil
}
