// Package market provides the synthetic price process and the shared,
// append-only price series.
package market

import (
	"math"
)

// TradingDaysPerYear sets the GBM time step dt = 1/252.
const TradingDaysPerYear = 252

// NormalSource draws standard-normal variates.
type NormalSource interface {
	NormFloat64() float64
}

// PriceProcess advances a price by one geometric Brownian motion step.
type PriceProcess struct {
	Volatility float64
	Drift      float64
	rng        NormalSource
}

// NewPriceProcess creates a price process drawing shocks from rng.
func NewPriceProcess(volatility, drift float64, rng NormalSource) *PriceProcess {
	return &PriceProcess{
		Volatility: volatility,
		Drift:      drift,
		rng:        rng,
	}
}

// Next returns the price following previous.
func (p *PriceProcess) Next(previous float64) float64 {
	return NextPrice(previous, p.Volatility, p.Drift, p.rng)
}

// NextPrice applies one GBM step:
//
//	new = previous * exp((drift - 0.5*volatility^2)*dt + volatility*sqrt(dt)*Z)
func NextPrice(previous, volatility, drift float64, rng NormalSource) float64 {
	dt := 1.0 / TradingDaysPerYear
	z := rng.NormFloat64()
	return previous * math.Exp((drift-0.5*volatility*volatility)*dt+volatility*math.Sqrt(dt)*z)
}
