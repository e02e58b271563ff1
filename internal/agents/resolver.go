package agents

import (
	"trader-network/internal/models"
)

// Thresholds are the multipliers of the price memory that resolve a trade.
// A price at or above memory*Upper fires the upper trigger; a price at or
// below memory*Lower fires the lower trigger.
type Thresholds struct {
	Upper float64
	Lower float64
}

// Default trade-resolution multipliers.
// TODO: confirm the lower multiplier with the model owners; 0.009 needs a
// ~99% drop and is likely meant to be 0.999.
const (
	DefaultUpperTrigger = 1.001
	DefaultLowerTrigger = 0.009
)

// DefaultThresholds returns the default trade-resolution multipliers.
func DefaultThresholds() Thresholds {
	return Thresholds{Upper: DefaultUpperTrigger, Lower: DefaultLowerTrigger}
}

// Resolve settles a Buy or Sell signal for t by scanning its price history
// from the oldest entry forward and applying the first index that crosses
// either threshold. Hold, or no crossing at all, leaves t unchanged.
//
//	Buy:  upper -> capital += price-memory, win
//	      lower -> capital -= memory-price
//	Sell: upper -> capital -= price-memory
//	      lower -> capital += memory-price, win
func Resolve(t *Trader, signal models.Signal) models.TradeOutcome {
	outcome := models.TradeOutcome{Signal: signal, Index: -1}
	if signal == models.SignalHold {
		return outcome
	}

	memory := t.priceMemory
	upper := memory * t.thresholds.Upper
	lower := memory * t.thresholds.Lower

	for i := 0; i < t.prices.Len(); i++ {
		price := t.prices.At(i)

		switch {
		case upper <= price:
			outcome.Trigger = models.TriggerUpper
			if signal == models.SignalBuy {
				outcome.Delta = price - memory
				outcome.Won = true
			} else {
				outcome.Delta = -(price - memory)
			}
		case lower >= price:
			outcome.Trigger = models.TriggerLower
			if signal == models.SignalBuy {
				outcome.Delta = -(memory - price)
			} else {
				outcome.Delta = memory - price
				outcome.Won = true
			}
		default:
			continue
		}

		outcome.Index = i
		outcome.Price = price
		break
	}

	if !outcome.Applied() {
		return outcome
	}

	t.adjustCapital(outcome.Delta)
	if outcome.Won {
		t.winRate++
	}
	return outcome
}
