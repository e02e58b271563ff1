package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"trader-network/internal/config"
	"trader-network/internal/models"
	"trader-network/internal/simulation"
	"trader-network/pkg/utils"
)

// runReport is the JSON shape of `traders run`.
type runReport struct {
	Summary simulation.Summary     `json:"summary"`
	History []models.TickStats     `json:"history,omitempty"`
	Agents  []models.AgentSnapshot `json:"agents,omitempty"`
}

// addSimulationFlags registers the overrides shared by run and sweep.
func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("ticks", 0, "number of ticks (default from config)")
	cmd.Flags().Int("nodes", 0, "number of traders (default from config)")
	cmd.Flags().Float64("avg-degree", -1, "average network degree (default from config)")
	cmd.Flags().Float64("volatility", -1, "price volatility (default from config)")
	cmd.Flags().Float64("generosity", -1, "generosity rate in [0,1] (default from config)")
	cmd.Flags().Int("min-history", 0, "minimum history before a tick may run (default from config)")
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("ticks") {
		cfg.Simulation.Ticks, _ = flags.GetInt("ticks")
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("nodes") {
		cfg.Network.Nodes, _ = flags.GetInt("nodes")
	}
	if flags.Changed("avg-degree") {
		cfg.Network.AvgDegree, _ = flags.GetFloat64("avg-degree")
	}
	if flags.Changed("volatility") {
		cfg.Market.Volatility, _ = flags.GetFloat64("volatility")
	}
	if flags.Changed("generosity") {
		cfg.Agents.GenerosityRate, _ = flags.GetFloat64("generosity")
	}
	if flags.Changed("min-history") {
		cfg.Simulation.MinHistory, _ = flags.GetInt("min-history")
	}
	return cfg.Validate()
}

func newRunCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation",
		Long: `Run one seeded simulation and print its summary.

Flags override the config file and environment. A run that halts for lack of
price history still prints its summary and then exits with an error.`,
		Example: `  traders run --ticks 250 --seed 7
  traders run --nodes 50 --history --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			if err := applyFlagOverrides(cmd, cfg); err != nil {
				return err
			}

			model, summary, runErr := simulation.RunConfig(cmd.Context(), cfg, app.Logger)
			if model == nil {
				return runErr
			}

			output := NewOutput(cmd)
			showHistory, _ := cmd.Flags().GetBool("history")
			showAgents, _ := cmd.Flags().GetBool("agents")

			if output.IsJSON() {
				report := runReport{Summary: summary}
				if showHistory {
					report.History = model.History()
				}
				if showAgents {
					report.Agents = model.Agents()
				}
				if err := output.JSON(report); err != nil {
					return err
				}
				return runErr
			}

			printSummary(output, summary)
			if showHistory {
				output.Println()
				printHistory(output, model.History())
			}
			if showAgents {
				output.Println()
				printAgents(output, model.Agents())
			}
			if runErr != nil {
				output.Warning("Simulation halted: %v", runErr)
			}
			return runErr
		},
	}

	addSimulationFlags(cmd)
	cmd.Flags().Int64("seed", 0, "random seed (default from config)")
	cmd.Flags().Bool("history", false, "include the per-tick state counts")
	cmd.Flags().Bool("agents", false, "include the final agent table")
	return cmd
}

func newSweepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the same configuration across several seeds",
		Example: `  traders sweep --seeds 1,2,3,4
  traders sweep --seeds 10,20 --ticks 500 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			if err := applyFlagOverrides(cmd, cfg); err != nil {
				return err
			}
			seeds, _ := cmd.Flags().GetInt64Slice("seeds")
			if len(seeds) == 0 {
				seeds = []int64{cfg.Simulation.Seed}
			}

			results, err := simulation.Sweep(cmd.Context(), cfg, seeds, app.Logger)
			if err != nil {
				return err
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(results)
			}
			printSweep(output, results)
			return nil
		},
	}

	addSimulationFlags(cmd)
	cmd.Flags().Int64Slice("seeds", nil, "comma-separated seeds (default: the config seed)")
	return cmd
}

func printSummary(output *Output, s simulation.Summary) {
	lines := []string{
		fmt.Sprintf("Seed:          %d", s.Seed),
		fmt.Sprintf("Ticks:         %d", s.Ticks),
		fmt.Sprintf("Status:        %s", s.Status),
		fmt.Sprintf("Price:         %s -> %s (%s)", utils.FormatPrice(s.StartPrice), utils.FormatPrice(s.FinalPrice),
			utils.FormatPercent(utils.PercentChange(s.StartPrice, s.FinalPrice))),
		fmt.Sprintf("With capital:  %d", s.WithCapital),
		fmt.Sprintf("Zero capital:  %d", s.ZeroCapital),
		fmt.Sprintf("Total capital: %s", utils.FormatNumber(s.TotalCapital, 2)),
	}
	if s.Best != nil {
		lines = append(lines, fmt.Sprintf("Best agent:    #%d %s (win rate %g, capital %s)",
			s.Best.ID, s.Best.Strategy, s.Best.WinRate, utils.FormatNumber(s.Best.Capital, 2)))
	}
	output.Box("Run "+s.RunID, lines)
}

func printHistory(output *Output, rows []models.TickStats) {
	table := make([][]string, len(rows))
	for i, r := range rows {
		table[i] = []string{
			strconv.Itoa(r.Tick),
			utils.FormatPrice(r.Price),
			strconv.Itoa(r.WithCapital),
			strconv.Itoa(r.ZeroCapital),
		}
	}
	output.Table([]string{"TICK", "PRICE", simulation.ReporterWithCapital, simulation.ReporterZeroCapital}, table)
}

func printAgents(output *Output, agents []models.AgentSnapshot) {
	table := make([][]string, len(agents))
	for i, a := range agents {
		table[i] = []string{
			strconv.Itoa(a.ID),
			a.Strategy,
			a.StateName,
			utils.FormatNumber(a.Capital, 2),
			strconv.FormatFloat(a.WinRate, 'f', -1, 64),
		}
	}
	output.Table([]string{"ID", "STRATEGY", "STATE", "CAPITAL", "WINS"}, table)
}

func printSweep(output *Output, results []simulation.Summary) {
	table := make([][]string, len(results))
	for i, s := range results {
		table[i] = []string{
			strconv.FormatInt(s.Seed, 10),
			s.Status,
			utils.FormatPrice(s.FinalPrice),
			strconv.Itoa(s.WithCapital),
			strconv.Itoa(s.ZeroCapital),
			utils.FormatNumber(s.TotalCapital, 2),
		}
	}
	output.Table([]string{"SEED", "STATUS", "FINAL PRICE", "WITH", "ZERO", "TOTAL CAPITAL"}, table)
}
