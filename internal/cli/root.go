// Package cli provides the command-line interface for the simulation.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trader-network/internal/config"
	"trader-network/internal/logging"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-01"
)

// App holds the application dependencies.
type App struct {
	ConfigDir string
	Config    *config.Config
	Logger    zerolog.Logger
	debug     bool
}

// loadConfig reads the config directory selected by --config and rebuilds
// the logger from its logging section.
func (a *App) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.ConfigDir)
	if err != nil {
		return nil, err
	}
	a.Config = cfg

	logCfg := cfg.LogConfig()
	if a.debug {
		logCfg.Level = "debug"
	}
	a.Logger = logging.NewLoggerWithConfig(logCfg)
	return cfg, nil
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(logger zerolog.Logger) *cobra.Command {
	app := &App{Logger: logger}

	rootCmd := &cobra.Command{
		Use:   "traders",
		Short: "Agent-based trader network simulation",
		Long: `traders simulates a network of trader agents buying and selling against a
geometric Brownian motion price series. Agents that win trades attract capital
from generous neighbours; agents that run out of capital drop out.

Use 'traders config init' to write a commented config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.ConfigDir, _ = cmd.Flags().GetString("config")
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				app.debug = true
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trader-network)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newRunCmd(app))
	rootCmd.AddCommand(newSweepCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("traders v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
			return nil
		},
	}
}
