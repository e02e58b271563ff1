package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trader Network Simulation Configuration

[simulation]
# Random seed; the same seed and config reproduce a run exactly
seed = 42
# Number of ticks to run
ticks = 100
# Minimum price history length required before a tick may run
min_history = 1

[market]
# Initial asset price
start_price = 100.0
# Annualised volatility of the price process
volatility = 0.01
# Annualised drift of the price process
drift = 0.0

[network]
# Number of traders (one per node)
nodes = 10
# Expected node degree of the random graph
avg_degree = 3.0

[agents]
initial_capital = 100.0
initial_win_rate = 0.0
# Probability that a trader shares capital after trading (0.0 - 1.0)
generosity_rate = 0.5

[trade]
# A trade triggers once price >= upper_trigger * memory
upper_trigger = 1.001
# ... or once price <= lower_trigger * memory
lower_trigger = 0.009

# Strategies are assigned to traders round-robin.
# Types: random, rsi, sma, bollinger
[[strategies]]
type = "random"

# [[strategies]]
# type = "rsi"
# [strategies.params]
# period = 14
# lower_threshold = 30
# upper_threshold = 70

[logging]
# Level: debug, info, warn, error
level = "info"
console = true
file = false
# Defaults to ~/.config/trader-network/logs/traders.log
# file_path = "/var/log/traders.log"
max_size = 100
max_backups = 7
max_age = 30
`

// ConfigPath returns the config file location inside configDir.
func ConfigPath(configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return filepath.Join(configDir, ConfigFileName+".toml")
}

// WriteTemplate writes the commented default config to configDir. An
// existing file is left alone unless force is set.
func WriteTemplate(configDir string, force bool) (string, error) {
	path := ConfigPath(configDir)
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return path, fmt.Errorf("writing config template: %w", err)
	}
	return path, nil
}
