package agents

import (
	"trader-network/internal/models"
)

const (
	// FullShareCeiling is the capital at or below which a share hands over everything.
	FullShareCeiling = 1.0
	// PartialShareFraction is the fraction shared above FullShareCeiling.
	PartialShareFraction = 0.01
)

// BestNeighbor returns the neighbour with the strictly highest win rate.
// Ties keep the earliest neighbour; a win rate of zero never qualifies.
func BestNeighbor(t *Trader) *Trader {
	var best *Trader
	maxWinRate := 0.0
	for _, n := range t.neighbors {
		if n == t {
			continue
		}
		if n.winRate > maxWinRate {
			maxWinRate = n.winRate
			best = n
		}
	}
	return best
}

// ShareAmount returns how much of capital a share event transfers.
func ShareAmount(capital float64) float64 {
	if capital <= FullShareCeiling {
		return capital
	}
	return capital * PartialShareFraction
}

// ShareCapital lets a capital-holding trader give part of its capital to its
// best-performing neighbour with probability equal to its generosity rate.
func ShareCapital(t *Trader, rng RandomSource) (models.ShareEvent, bool) {
	if !t.Active() {
		return models.ShareEvent{}, false
	}

	beneficiary := BestNeighbor(t)
	if beneficiary == nil {
		return models.ShareEvent{}, false
	}
	if rng.Float64() >= t.generosity {
		return models.ShareEvent{}, false
	}

	amount := ShareAmount(t.capital)
	t.adjustCapital(-amount)
	beneficiary.adjustCapital(amount)

	return models.ShareEvent{From: t.id, To: beneficiary.id, Amount: amount}, true
}
