// Package agents provides the trader agents of the network simulation:
// their state, trade resolution, and capital sharing.
package agents

import (
	"trader-network/internal/market"
	"trader-network/internal/models"
	"trader-network/internal/strategy"
)

// RandomSource is the uniform random stream an agent draws from.
type RandomSource interface {
	Float64() float64
}

// TraderConfig holds the construction parameters of a Trader.
type TraderConfig struct {
	ID             int
	Capital        float64
	WinRate        float64
	GenerosityRate float64
	Strategy       strategy.Config
	Thresholds     Thresholds
}

// Trader is one agent bound to a network node. Capital and state change only
// through setCapital so the state always matches the capital's sign.
type Trader struct {
	id          int
	capital     float64
	state       models.TraderState
	winRate     float64
	priceMemory float64
	prices      market.Snapshot
	strategy    strategy.Config
	generosity  float64
	thresholds  Thresholds
	neighbors   []*Trader
}

// NewTrader creates a trader anchored to the given price history.
func NewTrader(cfg TraderConfig, prices market.Snapshot) *Trader {
	t := &Trader{
		id:          cfg.ID,
		winRate:     cfg.WinRate,
		priceMemory: prices.Last(),
		prices:      prices,
		strategy:    cfg.Strategy,
		generosity:  cfg.GenerosityRate,
		thresholds:  cfg.Thresholds,
	}
	if t.thresholds == (Thresholds{}) {
		t.thresholds = DefaultThresholds()
	}
	t.setCapital(cfg.Capital)
	return t
}

// SetNeighbors fixes the trader's neighbourhood. It is called once while the
// model is built.
func (t *Trader) SetNeighbors(neighbors []*Trader) {
	t.neighbors = append([]*Trader(nil), neighbors...)
}

func (t *Trader) setCapital(capital float64) {
	t.capital = capital
	t.state = models.StateFor(capital)
}

func (t *Trader) adjustCapital(delta float64) {
	t.setCapital(t.capital + delta)
}

// Observe hands the trader the price history for the coming step.
func (t *Trader) Observe(prices market.Snapshot) {
	t.prices = prices
}

// ResetMemory anchors future trade comparisons to price.
func (t *Trader) ResetMemory(price float64) {
	t.priceMemory = price
}

func (t *Trader) ID() int { return t.id }
func (t *Trader) Capital() float64 { return t.capital }
func (t *Trader) State() models.TraderState { return t.state }
func (t *Trader) WinRate() float64 { return t.winRate }
func (t *Trader) PriceMemory() float64 { return t.priceMemory }
func (t *Trader) GenerosityRate() float64 { return t.generosity }
func (t *Trader) Strategy() strategy.Config { return t.strategy }
func (t *Trader) Prices() market.Snapshot { return t.prices }
func (t *Trader) Active() bool { return t.state == models.HasCapital }

// Neighbors returns a copy of the trader's neighbourhood.
func (t *Trader) Neighbors() []*Trader {
	return append([]*Trader(nil), t.neighbors...)
}

// Snapshot returns a read-only copy of the trader's observable fields.
func (t *Trader) Snapshot() models.AgentSnapshot {
	return models.AgentSnapshot{
		ID:          t.id,
		Capital:     t.capital,
		State:       t.state,
		StateName:   t.state.String(),
		WinRate:     t.winRate,
		PriceMemory: t.priceMemory,
		Strategy:    t.strategy.String(),
	}
}

// StepResult reports what a trader did during one step.
type StepResult struct {
	TraderID int
	Skipped  bool // out of capital, nothing happened
	Signal   models.Signal
	Trade    models.TradeOutcome
	Share    *models.ShareEvent
}

// Step runs the trader's per-tick behaviour: a zero-capital trader does
// nothing; otherwise it trades on its strategy's signal and, if still
// holding capital, may share some with its best neighbour.
func (t *Trader) Step(rng RandomSource) StepResult {
	result := StepResult{TraderID: t.id}
	if !t.Active() {
		result.Skipped = true
		return result
	}

	result.Signal = strategy.Signal(t.prices.Prices(), t.strategy, rng)
	result.Trade = Resolve(t, result.Signal)

	if t.Active() {
		if ev, ok := ShareCapital(t, rng); ok {
			result.Share = &ev
		}
	}
	return result
}
