// Package simulation drives the trader network: it owns the price series,
// builds the agents on the network topology, and advances them one tick at
// a time.
package simulation

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"trader-network/internal/agents"
	"trader-network/internal/config"
	apperrors "trader-network/internal/errors"
	"trader-network/internal/logging"
	"trader-network/internal/market"
	"trader-network/internal/models"
	"trader-network/internal/network"
)

// Status is the model's lifecycle state.
type Status int

const (
	StatusUninitialized Status = iota
	StatusRunning
	StatusHalted
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "RUNNING"
	case StatusHalted:
		return "HALTED"
	default:
		return "UNINITIALIZED"
	}
}

// Model is one seeded simulation run. It is not safe for concurrent use;
// every tick runs to completion before the next begins.
type Model struct {
	runID      string
	seed       int64
	minHistory int
	logger     zerolog.Logger

	rng       *rand.Rand
	process   *market.PriceProcess
	series    *market.Series
	graph     *network.Graph
	traders   []*agents.Trader
	collector *Collector

	tick    int
	status  Status
	haltErr error
}

// New builds a running model from cfg. The same config and seed always
// produce the same run.
func New(cfg *config.Config, logger zerolog.Logger) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strategies, err := cfg.StrategyConfigs()
	if err != nil {
		return nil, err
	}

	m := &Model{
		runID:      uuid.NewString(),
		seed:       cfg.Simulation.Seed,
		minHistory: cfg.Simulation.MinHistory,
		rng:        rand.New(rand.NewSource(cfg.Simulation.Seed)),
		series:     market.NewSeries(cfg.Market.StartPrice),
		collector:  NewCollector(),
	}
	m.logger = logging.WithSeed(logging.WithRun(logger, m.runID), m.seed)
	m.process = market.NewPriceProcess(cfg.Market.Volatility, cfg.Market.Drift, m.rng)
	m.graph = network.FromAverageDegree(cfg.Network.Nodes, cfg.Network.AvgDegree, m.rng)

	snap := m.series.Snapshot()
	nodes := m.graph.Nodes()
	m.traders = make([]*agents.Trader, len(nodes))
	for i, node := range nodes {
		m.traders[i] = agents.NewTrader(agents.TraderConfig{
			ID:             node,
			Capital:        cfg.Agents.InitialCapital,
			WinRate:        cfg.Agents.InitialWinRate,
			GenerosityRate: cfg.Agents.GenerosityRate,
			Strategy:       strategies[i%len(strategies)],
			Thresholds:     cfg.Thresholds(),
		}, snap)
	}
	for i, node := range nodes {
		ids := m.graph.Neighbors(node)
		neighbors := make([]*agents.Trader, len(ids))
		for j, id := range ids {
			neighbors[j] = m.traders[id]
		}
		m.traders[i].SetNeighbors(neighbors)
	}

	warmup := 0
	for _, sc := range strategies {
		if n := sc.MinHistory(); n > warmup {
			warmup = n
		}
	}

	m.status = StatusRunning
	m.collector.Collect(0, snap.Last(), m.traders)

	m.logger.Info().
		Int("nodes", len(nodes)).
		Int("edges", m.graph.EdgeCount()).
		Int("warmup", warmup).
		Float64("start_price", snap.Last()).
		Msg("Model initialized")

	return m, nil
}

// Step advances the model by one tick.
func (m *Model) Step() error {
	switch m.status {
	case StatusRunning:
	case StatusHalted:
		return apperrors.NewSimulationError(m.tick, "step", apperrors.ErrModelHalted)
	default:
		return apperrors.NewSimulationError(m.tick, "step", apperrors.ErrModelNotRunning)
	}

	if n := m.series.Len(); n < m.minHistory {
		err := apperrors.NewSimulationError(m.tick+1, "step",
			fmt.Errorf("%w: have %d prices, need %d", apperrors.ErrInsufficientHistory, n, m.minHistory))
		m.halt(err)
		return err
	}

	price := m.process.Next(m.series.Last())
	m.series.Append(price)
	m.tick++

	snap := m.series.Snapshot()
	for _, t := range m.traders {
		t.Observe(snap)
	}

	for _, i := range m.rng.Perm(len(m.traders)) {
		t := m.traders[i]
		res := t.Step(m.rng)
		if res.Skipped {
			logging.LogInactive(m.logger, m.tick, t.Snapshot())
			continue
		}
		if res.Trade.Applied() {
			logging.LogTrade(m.logger, m.tick, t.Snapshot(), res.Trade)
		}
		if res.Share != nil {
			logging.LogShare(m.logger, m.tick, t.Snapshot(), *res.Share)
		}
	}

	for _, t := range m.traders {
		t.ResetMemory(price)
	}

	logging.LogTick(m.logger, m.collector.Collect(m.tick, price, m.traders))
	return nil
}

// Run advances the model up to ticks times. It stops early when ctx is
// cancelled or the model halts.
func (m *Model) Run(ctx context.Context, ticks int) error {
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) halt(err error) {
	m.status = StatusHalted
	m.haltErr = err
	logging.LogHalt(m.logger, m.tick, err)
}

// RunID returns the run identifier.
func (m *Model) RunID() string { return m.runID }

// Seed returns the seed the model was built with.
func (m *Model) Seed() int64 { return m.seed }

// Tick returns the number of completed ticks.
func (m *Model) Tick() int { return m.tick }

// Status returns the lifecycle state.
func (m *Model) Status() Status { return m.status }

// HaltErr returns the reason the model halted, or nil.
func (m *Model) HaltErr() error { return m.haltErr }

// Prices returns a read-only view of the price series.
func (m *Model) Prices() market.Snapshot { return m.series.Snapshot() }

// Topology returns the network the agents are bound to.
func (m *Model) Topology() network.Topology { return m.graph }

// Traders returns the agents in node order.
func (m *Model) Traders() []*agents.Trader {
	return append([]*agents.Trader(nil), m.traders...)
}

// Agents returns a snapshot of every agent in node order.
func (m *Model) Agents() []models.AgentSnapshot {
	out := make([]models.AgentSnapshot, len(m.traders))
	for i, t := range m.traders {
		out[i] = t.Snapshot()
	}
	return out
}

// History returns the collected per-tick statistics.
func (m *Model) History() []models.TickStats { return m.collector.Rows() }

// Collector returns the model's data collector.
func (m *Model) Collector() *Collector { return m.collector }
