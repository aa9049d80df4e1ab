package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full bot configuration.
type Config struct {
	Market  MarketConfig  `yaml:"market"`
	Trading TradingConfig `yaml:"trading"`
	Risk    RiskConfig    `yaml:"risk"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// MarketConfig identifies the traded market.
type MarketConfig struct {
	ConditionID       string `yaml:"condition_id"`       // live market; empty means simulator
	YesTokenID        string `yaml:"yes_token_id"`
	NoTokenID         string `yaml:"no_token_id"`
	SettlementMinutes int    `yaml:"settlement_minutes"` // simulator window length
}

// TradingConfig controls entry and sizing.
type TradingConfig struct {
	EntryPriceMin      float64 `yaml:"entry_price_min"`
	EntryPriceMax      float64 `yaml:"entry_price_max"`
	DefaultOrderSize   float64 `yaml:"default_order_size"`
	RebalanceOrderSize float64 `yaml:"rebalance_order_size"`
	ImbalanceThreshold float64 `yaml:"imbalance_threshold"`
	TickIntervalMs     int     `yaml:"tick_interval_ms"`
}

// RiskConfig carries every stop-condition limit.
type RiskConfig struct {
	MaxTotalCapital         float64 `yaml:"max_total_capital"`
	MaxPosPerWindow         float64 `yaml:"max_pos_per_window"` // per side; combined cap is 2x
	MaxUnhedgedSeconds      int     `yaml:"max_unhedged_seconds"`
	MaxPairCost             float64 `yaml:"max_pair_cost"`
	SettlementBufferSeconds int     `yaml:"settlement_buffer_seconds"`

	// Reserved knobs carried for config compatibility; the evaluation order
	// deliberately never consults them (single-side loss stops contradict
	// the hedge strategy — see DESIGN.md).
	MaxLossRatio              float64 `yaml:"max_loss_ratio"`
	PairCostCheckDelaySeconds int     `yaml:"pair_cost_check_delay_seconds"`
}

// APIConfig holds the CLOB base URL for live book fetching.
type APIConfig struct {
	CLOBBase string `yaml:"clob_base"`
}

// StorageConfig controls where trade history is persisted.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path, or ":memory:"
}

// LogConfig controls log format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML config file and the .env file if present.
// Env values override YAML for the keys that map to them.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// TickInterval returns the tick cadence as a time.Duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Trading.TickIntervalMs) * time.Millisecond
}

// MaxUnhedged returns the unhedged-exposure limit as a time.Duration.
func (c *RiskConfig) MaxUnhedged() time.Duration {
	return time.Duration(c.MaxUnhedgedSeconds) * time.Second
}

// SettlementBuffer returns the pre-settlement cutoff as a time.Duration.
func (c *RiskConfig) SettlementBuffer() time.Duration {
	return time.Duration(c.SettlementBufferSeconds) * time.Second
}

// applyEnvOverrides overrides values from environment variables when set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("CONDITION_ID"); v != "" {
		cfg.Market.ConditionID = v
	}
}

// setDefaults fills in sensible values for anything the file left unset.
func setDefaults(cfg *Config) {
	if cfg.Market.SettlementMinutes <= 0 {
		cfg.Market.SettlementMinutes = 15
	}
	if cfg.Trading.EntryPriceMin <= 0 {
		cfg.Trading.EntryPriceMin = 0.35
	}
	if cfg.Trading.EntryPriceMax <= 0 {
		cfg.Trading.EntryPriceMax = 0.50
	}
	if cfg.Trading.DefaultOrderSize <= 0 {
		cfg.Trading.DefaultOrderSize = 100
	}
	if cfg.Trading.RebalanceOrderSize <= 0 {
		cfg.Trading.RebalanceOrderSize = 50
	}
	if cfg.Trading.ImbalanceThreshold <= 0 {
		cfg.Trading.ImbalanceThreshold = 0.2
	}
	if cfg.Trading.TickIntervalMs <= 0 {
		cfg.Trading.TickIntervalMs = 500
	}
	if cfg.Risk.MaxTotalCapital <= 0 {
		cfg.Risk.MaxTotalCapital = 1000
	}
	if cfg.Risk.MaxPosPerWindow <= 0 {
		cfg.Risk.MaxPosPerWindow = 300
	}
	if cfg.Risk.MaxUnhedgedSeconds <= 0 {
		cfg.Risk.MaxUnhedgedSeconds = 120
	}
	if cfg.Risk.MaxPairCost <= 0 {
		cfg.Risk.MaxPairCost = 0.98
	}
	if cfg.Risk.SettlementBufferSeconds <= 0 {
		cfg.Risk.SettlementBufferSeconds = 60
	}
	if cfg.Risk.MaxLossRatio <= 0 {
		cfg.Risk.MaxLossRatio = 0.1
	}
	if cfg.Risk.PairCostCheckDelaySeconds <= 0 {
		cfg.Risk.PairCostCheckDelaySeconds = 60
	}
	if cfg.API.CLOBBase == "" {
		cfg.API.CLOBBase = "https://clob.polymarket.com"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "hedgepair.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
