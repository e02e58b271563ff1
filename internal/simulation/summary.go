package simulation

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"trader-network/internal/config"
	apperrors "trader-network/internal/errors"
	"trader-network/internal/models"
)

// Summary describes a finished run.
type Summary struct {
	RunID        string                `json:"run_id"`
	Seed         int64                 `json:"seed"`
	Ticks        int                   `json:"ticks"`
	Status       string                `json:"status"`
	HaltReason   string                `json:"halt_reason,omitempty"`
	StartPrice   float64               `json:"start_price"`
	FinalPrice   float64               `json:"final_price"`
	ZeroCapital  int                   `json:"zero_capital"`
	WithCapital  int                   `json:"with_capital"`
	TotalCapital float64               `json:"total_capital"`
	Best         *models.AgentSnapshot `json:"best_agent,omitempty"`
}

// Summarize reports the model's current state.
func (m *Model) Summarize() Summary {
	prices := m.series.Snapshot()
	s := Summary{
		RunID:       m.runID,
		Seed:        m.seed,
		Ticks:       m.tick,
		Status:      m.status.String(),
		StartPrice:  prices.At(0),
		FinalPrice:  prices.Last(),
		ZeroCapital: CountZeroCapital(m.traders),
		WithCapital: CountWithCapital(m.traders),
	}
	if m.haltErr != nil {
		s.HaltReason = m.haltErr.Error()
	}

	for _, a := range m.Agents() {
		s.TotalCapital += a.Capital
		if s.Best == nil || a.WinRate > s.Best.WinRate ||
			(a.WinRate == s.Best.WinRate && a.Capital > s.Best.Capital) {
			best := a
			s.Best = &best
		}
	}
	return s
}

// RunConfig builds a model from cfg, runs its configured ticks, and returns
// the summary. A halt is reported in the summary as well as the error.
func RunConfig(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Model, Summary, error) {
	m, err := New(cfg, logger)
	if err != nil {
		return nil, Summary{}, err
	}
	err = m.Run(ctx, cfg.Simulation.Ticks)
	return m, m.Summarize(), err
}

// Sweep runs one independent model per seed in parallel and returns the
// summaries sorted by seed. Halted runs are not errors here; their summaries
// carry the halt reason. Only cancellation or invalid config fails the sweep.
func Sweep(ctx context.Context, cfg *config.Config, seeds []int64, logger zerolog.Logger) ([]Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]Summary, len(seeds))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i, seed := range seeds {
		runCfg := *cfg
		runCfg.Simulation.Seed = seed
		eg.Go(func() error {
			_, summary, err := RunConfig(egCtx, &runCfg, logger)
			if err != nil && !isHalt(err) {
				return err
			}
			results[i] = summary
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool { return results[a].Seed < results[b].Seed })
	return results, nil
}

func isHalt(err error) bool {
	return apperrors.Is(err, apperrors.ErrInsufficientHistory) || apperrors.Is(err, apperrors.ErrModelHalted)
}
