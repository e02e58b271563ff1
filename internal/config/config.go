// Package config provides configuration management for the simulation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"trader-network/internal/agents"
	apperrors "trader-network/internal/errors"
	"trader-network/internal/logging"
	"trader-network/internal/strategy"
)

// ConfigFileName is the base name of the TOML configuration file.
const ConfigFileName = "config"

// Config holds all application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation" json:"simulation"`
	Market     MarketConfig     `mapstructure:"market" json:"market"`
	Network    NetworkConfig    `mapstructure:"network" json:"network"`
	Agents     AgentsConfig     `mapstructure:"agents" json:"agents"`
	Trade      TradeConfig      `mapstructure:"trade" json:"trade"`
	Strategies []StrategyConfig `mapstructure:"strategies" json:"strategies"`
	Logging    LoggingConfig    `mapstructure:"logging" json:"logging"`
}

// SimulationConfig holds run-level settings.
type SimulationConfig struct {
	Seed       int64 `mapstructure:"seed" json:"seed"`
	Ticks      int   `mapstructure:"ticks" json:"ticks"`
	MinHistory int   `mapstructure:"min_history" json:"min_history"`
}

// MarketConfig holds the price process settings.
type MarketConfig struct {
	StartPrice float64 `mapstructure:"start_price" json:"start_price"`
	Volatility float64 `mapstructure:"volatility" json:"volatility"`
	Drift      float64 `mapstructure:"drift" json:"drift"`
}

// NetworkConfig holds the topology settings.
type NetworkConfig struct {
	Nodes     int     `mapstructure:"nodes" json:"nodes"`
	AvgDegree float64 `mapstructure:"avg_degree" json:"avg_degree"`
}

// AgentsConfig holds the initial agent state.
type AgentsConfig struct {
	InitialCapital float64 `mapstructure:"initial_capital" json:"initial_capital"`
	InitialWinRate float64 `mapstructure:"initial_win_rate" json:"initial_win_rate"`
	GenerosityRate float64 `mapstructure:"generosity_rate" json:"generosity_rate"`
}

// TradeConfig holds the trade-resolution multipliers.
type TradeConfig struct {
	UpperTrigger float64 `mapstructure:"upper_trigger" json:"upper_trigger"`
	LowerTrigger float64 `mapstructure:"lower_trigger" json:"lower_trigger"`
}

// StrategyConfig names a strategy and its options. Agents are assigned
// strategies round-robin in list order.
type StrategyConfig struct {
	Type   string             `mapstructure:"type" json:"type"`
	Params map[string]float64 `mapstructure:"params" json:"params,omitempty"`
}

// LoggingConfig mirrors logging.LogConfig.
type LoggingConfig struct {
	Level      string `mapstructure:"level" json:"level"`
	Console    bool   `mapstructure:"console" json:"console"`
	File       bool   `mapstructure:"file" json:"file"`
	FilePath   string `mapstructure:"file_path" json:"file_path"`
	MaxSize    int    `mapstructure:"max_size" json:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" json:"max_age"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trader-network"
	}
	return filepath.Join(home, ".config", "trader-network")
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults are static; a decode failure here is a programming error.
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("decoding default config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	log := logging.DefaultLogConfig()

	v.SetDefault("simulation.seed", 42)
	v.SetDefault("simulation.ticks", 100)
	v.SetDefault("simulation.min_history", 1)

	v.SetDefault("market.start_price", 100.0)
	v.SetDefault("market.volatility", 0.01)
	v.SetDefault("market.drift", 0.0)

	v.SetDefault("network.nodes", 10)
	v.SetDefault("network.avg_degree", 3.0)

	v.SetDefault("agents.initial_capital", 100.0)
	v.SetDefault("agents.initial_win_rate", 0.0)
	v.SetDefault("agents.generosity_rate", 0.5)

	v.SetDefault("trade.upper_trigger", agents.DefaultUpperTrigger)
	v.SetDefault("trade.lower_trigger", agents.DefaultLowerTrigger)

	v.SetDefault("strategies", []map[string]interface{}{{"type": "random"}})

	v.SetDefault("logging.level", log.Level)
	v.SetDefault("logging.console", log.Console)
	v.SetDefault("logging.file", log.File)
	v.SetDefault("logging.file_path", log.FilePath)
	v.SetDefault("logging.max_size", log.MaxSize)
	v.SetDefault("logging.max_backups", log.MaxBackups)
	v.SetDefault("logging.max_age", log.MaxAge)
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config file is not an error: built-in defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config.toml: %w", err)
	}

	// A .env file in the working directory is optional.
	_ = godotenv.Load()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TRADERS_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("TRADERS_SEED", v, "must be an integer")
		}
		cfg.Simulation.Seed = seed
	}
	if v := os.Getenv("TRADERS_NODES"); v != "" {
		nodes, err := strconv.Atoi(v)
		if err != nil {
			return apperrors.NewValidationError("TRADERS_NODES", v, "must be an integer")
		}
		cfg.Network.Nodes = nodes
	}
	if v := os.Getenv("TRADERS_TICKS"); v != "" {
		ticks, err := strconv.Atoi(v)
		if err != nil {
			return apperrors.NewValidationError("TRADERS_TICKS", v, "must be an integer")
		}
		cfg.Simulation.Ticks = ticks
	}
	if v := os.Getenv("TRADERS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

// Validate validates the configuration. All violations are reported together.
func (c *Config) Validate() error {
	var errs []error
	add := func(field string, value interface{}, msg string) {
		errs = append(errs, apperrors.NewValidationError(field, value, msg))
	}

	if c.Simulation.Ticks < 0 {
		add("simulation.ticks", c.Simulation.Ticks, "must be non-negative")
	}
	if c.Simulation.MinHistory < 1 {
		add("simulation.min_history", c.Simulation.MinHistory, "must be at least 1")
	}
	if c.Market.StartPrice <= 0 {
		add("market.start_price", c.Market.StartPrice, "must be positive")
	}
	if c.Network.Nodes < 1 {
		add("network.nodes", c.Network.Nodes, "must be at least 1")
	}
	if c.Network.AvgDegree < 0 {
		add("network.avg_degree", c.Network.AvgDegree, "must be non-negative")
	}
	if c.Agents.GenerosityRate < 0 || c.Agents.GenerosityRate > 1 {
		add("agents.generosity_rate", c.Agents.GenerosityRate, "must be between 0 and 1")
	}
	if c.Trade.UpperTrigger <= 0 {
		add("trade.upper_trigger", c.Trade.UpperTrigger, "must be positive")
	}
	if c.Trade.LowerTrigger < 0 {
		add("trade.lower_trigger", c.Trade.LowerTrigger, "must be non-negative")
	}
	if len(c.Strategies) == 0 {
		add("strategies", len(c.Strategies), "at least one strategy is required")
	}
	for i, s := range c.Strategies {
		if _, err := strategy.NewConfig(s.Type, s.Params); err != nil {
			add(fmt.Sprintf("strategies[%d]", i), s.Type, err.Error())
		}
	}

	return apperrors.Join(errs...)
}

// StrategyConfigs resolves the configured strategies.
func (c *Config) StrategyConfigs() ([]strategy.Config, error) {
	out := make([]strategy.Config, 0, len(c.Strategies))
	for i, s := range c.Strategies {
		sc, err := strategy.NewConfig(s.Type, s.Params)
		if err != nil {
			return nil, apperrors.Wrapf(err, "strategies[%d]", i)
		}
		out = append(out, sc)
	}
	return out, nil
}

// Thresholds returns the trade-resolution multipliers.
func (c *Config) Thresholds() agents.Thresholds {
	return agents.Thresholds{Upper: c.Trade.UpperTrigger, Lower: c.Trade.LowerTrigger}
}

// LogConfig converts the logging section for the logging package.
func (c *Config) LogConfig() logging.LogConfig {
	return logging.LogConfig{
		Level:      c.Logging.Level,
		Console:    c.Logging.Console,
		File:       c.Logging.File,
		FilePath:   c.Logging.FilePath,
		MaxSize:    c.Logging.MaxSize,
		MaxBackups: c.Logging.MaxBackups,
		MaxAge:     c.Logging.MaxAge,
	}
}
