// Package config loads the process-wide, read-only tunables the core
// depends on: indicator periods, scoring weights, signal thresholds, and the
// acquisition layer's retry/rate-limit knobs. Loaded once at process start
// and never mutated afterward (see spec §5 shared-resource policy).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights holds the four scoring-model weights; must sum to 1.0 within tolerance.
type Weights struct {
	Trend       float64 `yaml:"trend"`
	Momentum    float64 `yaml:"momentum"`
	Volatility  float64 `yaml:"volatility"`
	RelStrength float64 `yaml:"rel_strength"`
}

// SignalThresholds holds the configurable thresholds consulted by the signal generator.
type SignalThresholds struct {
	RSIOverbought        float64 `yaml:"rsi_overbought"`
	RSIOversold          float64 `yaml:"rsi_oversold"`
	RSIExtremeOverbought float64 `yaml:"rsi_extreme_overbought"`
	RSIExtremeOversold   float64 `yaml:"rsi_extreme_oversold"`
	BBBreakout           float64 `yaml:"bb_breakout_proximity"` // e.g. 0.995 / 1.005
	VolumeSurge          float64 `yaml:"volume_surge_ratio"`
	GapThreshold         float64 `yaml:"gap_threshold"`
	ADXStrongTrend       float64 `yaml:"adx_strong_trend"`
}

// Config is the full set of recognized tunables from spec §6.2.
type Config struct {
	DataLookbackDays int   `yaml:"data_lookback_days"`
	MinRequiredRows  int   `yaml:"min_required_rows"`
	SMAPeriods       []int `yaml:"sma_periods"`
	ROCPeriods       []int `yaml:"roc_periods"`
	HVolPeriods      []int `yaml:"hvol_periods"`
	ZScorePeriods    []int `yaml:"zscore_periods"`

	RSIPeriod int `yaml:"rsi_period"`

	MACDFast   int `yaml:"macd_fast"`
	MACDSlow   int `yaml:"macd_slow"`
	MACDSignal int `yaml:"macd_signal"`

	ADXPeriod int `yaml:"adx_period"`
	ATRPeriod int `yaml:"atr_period"`

	BBPeriod int     `yaml:"bb_period"`
	BBStdDev float64 `yaml:"bb_std_dev"`

	VIXLow    float64 `yaml:"vix_low"`
	VIXMedium float64 `yaml:"vix_medium"`

	Weights          Weights          `yaml:"weights"`
	SignalThresholds SignalThresholds `yaml:"signal_thresholds"`

	RequestDelayMinSeconds float64 `yaml:"request_delay_min_seconds"`
	RequestDelayMaxSeconds float64 `yaml:"request_delay_max_seconds"`
	BatchSize              int     `yaml:"batch_size"`
	BatchDelayMinSeconds   float64 `yaml:"batch_delay_min_seconds"`
	BatchDelayMaxSeconds   float64 `yaml:"batch_delay_max_seconds"`
	TimeoutSeconds         int     `yaml:"timeout_seconds"`
	MaxRetries             int     `yaml:"max_retries"`

	VolatilityIndexTicker string `yaml:"volatility_index_ticker"`
	BroadMarketTicker     string `yaml:"broad_market_ticker"`
}

// Default returns the defaults named throughout spec.md §4 and §6.2.
func Default() Config {
	return Config{
		DataLookbackDays: 400,
		MinRequiredRows:  200,
		SMAPeriods:       []int{20, 50, 125, 200},
		ROCPeriods:       []int{10, 20, 60},
		HVolPeriods:      []int{20, 60},
		ZScorePeriods:    []int{20, 50, 125},

		RSIPeriod: 14,

		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,

		ADXPeriod: 14,
		ATRPeriod: 14,

		BBPeriod: 20,
		BBStdDev: 2.0,

		VIXLow:    15,
		VIXMedium: 25,

		Weights: Weights{
			Trend:       0.30,
			Momentum:    0.30,
			Volatility:  0.15,
			RelStrength: 0.25,
		},
		SignalThresholds: SignalThresholds{
			RSIOverbought:        70,
			RSIOversold:          30,
			RSIExtremeOverbought: 80,
			RSIExtremeOversold:   20,
			BBBreakout:           0.995,
			VolumeSurge:          2.0,
			GapThreshold:         0.02,
			ADXStrongTrend:       25,
		},

		RequestDelayMinSeconds: 0.5,
		RequestDelayMaxSeconds: 2.0,
		BatchSize:              10,
		BatchDelayMinSeconds:   3,
		BatchDelayMaxSeconds:   8,
		TimeoutSeconds:         30,
		MaxRetries:             3,

		VolatilityIndexTicker: "VIX",
		BroadMarketTicker:     "SPY",
	}
}

// Load reads a YAML file, merging over Default() so an incomplete config
// file still yields a usable, fully-populated Config.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate enforces the invariants the scoring and acquisition layers rely on.
func (c Config) Validate() error {
	sum := c.Weights.Trend + c.Weights.Momentum + c.Weights.Volatility + c.Weights.RelStrength
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.4f", sum)
	}
	if c.MinRequiredRows <= 0 {
		return fmt.Errorf("min_required_rows must be positive, got %d", c.MinRequiredRows)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.RequestDelayMinSeconds < 0 || c.RequestDelayMaxSeconds < c.RequestDelayMinSeconds {
		return fmt.Errorf("invalid request delay bounds [%.2f, %.2f]", c.RequestDelayMinSeconds, c.RequestDelayMaxSeconds)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative, got %d", c.MaxRetries)
	}
	return nil
}
