// Package models provides domain models for the trader network simulation.
package models

import (
	"fmt"
	"strings"
)

// Signal is the trinary trade decision produced by a strategy.
type Signal int

const (
	SignalHold Signal = iota
	SignalBuy
	SignalSell
)

func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "BUY"
	case SignalSell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// StrategyType identifies one of the built-in trading heuristics.
type StrategyType string

const (
	StrategyRandom    StrategyType = "random"
	StrategyRSI       StrategyType = "rsi"
	StrategySMA       StrategyType = "sma"
	StrategyBollinger StrategyType = "bollinger"
)

// StrategyTypes lists every supported strategy in a stable order.
func StrategyTypes() []StrategyType {
	return []StrategyType{StrategyRandom, StrategyRSI, StrategySMA, StrategyBollinger}
}

// ParseStrategyType converts a configuration string to a StrategyType.
func ParseStrategyType(s string) (StrategyType, error) {
	t := StrategyType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range StrategyTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown strategy type %q", s)
}

// TraderState is derived from the sign of an agent's capital.
type TraderState int

const (
	ZeroCapital TraderState = iota
	HasCapital
)

func (s TraderState) String() string {
	if s == HasCapital {
		return "HAS_CAPITAL"
	}
	return "ZERO_CAPITAL"
}

// StateFor returns the state implied by a capital balance.
func StateFor(capital float64) TraderState {
	if capital > 0 {
		return HasCapital
	}
	return ZeroCapital
}

// Trigger names the threshold that resolved a trade.
type Trigger string

const (
	TriggerNone  Trigger = ""
	TriggerUpper Trigger = "UPPER"
	TriggerLower Trigger = "LOWER"
)

// TradeOutcome describes what the trade resolver applied to an agent.
type TradeOutcome struct {
	Signal  Signal
	Trigger Trigger
	Index   int     // index in the price history that fired, -1 if none
	Price   float64 // price at Index
	Delta   float64 // signed change applied to capital
	Won     bool
}

// Applied reports whether the outcome mutated the agent.
func (o TradeOutcome) Applied() bool {
	return o.Trigger != TriggerNone
}

// ShareEvent records a capital transfer between neighbours.
type ShareEvent struct {
	From   int
	To     int
	Amount float64
}

// TickStats is one row of collected aggregate metrics.
type TickStats struct {
	Tick        int     `json:"tick"`
	Price       float64 `json:"price"`
	ZeroCapital int     `json:"zero_capital"`
	WithCapital int     `json:"with_capital"`
}

// AgentSnapshot is a read-only view of an agent for observers.
type AgentSnapshot struct {
	ID          int         `json:"id"`
	Capital     float64     `json:"capital"`
	State       TraderState `json:"-"`
	StateName   string      `json:"state"`
	WinRate     float64     `json:"win_rate"`
	PriceMemory float64     `json:"price_memory"`
	Strategy    string      `json:"strategy"`
}
