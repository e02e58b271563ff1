package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"trader-network/internal/config"
	apperrors "trader-network/internal/errors"
	"trader-network/pkg/utils"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View, validate and initialise the simulation configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(cfg)
			}
			showConfig(output, cfg)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			path := config.ConfigPath(app.ConfigDir)
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			_, err := app.loadConfig()
			if output.IsJSON() {
				resp := map[string]interface{}{"valid": err == nil}
				if err != nil {
					resp["errors"] = validationMessages(err)
				}
				if jerr := output.JSON(resp); jerr != nil {
					return jerr
				}
				return err
			}
			if err != nil {
				output.Error("Configuration validation failed")
				for _, msg := range validationMessages(err) {
					output.Printf("  - %s\n", msg)
				}
				return err
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config file with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			force, _ := cmd.Flags().GetBool("force")
			path, err := config.WriteTemplate(app.ConfigDir, force)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Success("✓ Wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	cmd.AddCommand(initCmd)

	return cmd
}

// validationMessages flattens a joined validation error into one line per
// field.
func validationMessages(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, validationMessages(e)...)
		}
		return out
	}
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return []string{fmt.Sprintf("%s: %s", verr.Field, verr.Message)}
	}
	return []string{err.Error()}
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Simulation")
	output.Printf("  Seed:            %d\n", cfg.Simulation.Seed)
	output.Printf("  Ticks:           %d\n", cfg.Simulation.Ticks)
	output.Printf("  Min History:     %d\n", cfg.Simulation.MinHistory)
	output.Println()

	output.Bold("Market")
	output.Printf("  Start Price:     %s\n", utils.FormatPrice(cfg.Market.StartPrice))
	output.Printf("  Volatility:      %g\n", cfg.Market.Volatility)
	output.Printf("  Drift:           %g\n", cfg.Market.Drift)
	output.Println()

	output.Bold("Network")
	output.Printf("  Nodes:           %d\n", cfg.Network.Nodes)
	output.Printf("  Avg Degree:      %g\n", cfg.Network.AvgDegree)
	output.Println()

	output.Bold("Agents")
	output.Printf("  Capital:         %s\n", utils.FormatPrice(cfg.Agents.InitialCapital))
	output.Printf("  Win Rate:        %g\n", cfg.Agents.InitialWinRate)
	output.Printf("  Generosity:      %g\n", cfg.Agents.GenerosityRate)
	output.Printf("  Upper Trigger:   %g\n", cfg.Trade.UpperTrigger)
	output.Printf("  Lower Trigger:   %g\n", cfg.Trade.LowerTrigger)
	output.Println()

	output.Bold("Strategies")
	if strategies, err := cfg.StrategyConfigs(); err == nil {
		for i, s := range strategies {
			output.Printf("  %d. %-10s period=%d lower=%g upper=%g k=%g\n",
				i+1, s.Type, s.Params.Period, s.Params.LowerThreshold, s.Params.UpperThreshold, s.Params.K)
		}
	}
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  File:            %v (%s)\n", cfg.Logging.File, cfg.Logging.FilePath)
}
