package indicators

import (
	"fmt"
)

// Bands holds one Bollinger Bands reading.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// PercentB locates price relative to the bands (0 at lower, 1 at upper).
func (b Bands) PercentB(price float64) float64 {
	width := b.Upper - b.Lower
	if width == 0 {
		return 0.5
	}
	return (price - b.Lower) / width
}

// BollingerBands calculates Bollinger Bands.
type BollingerBands struct {
	period    int
	stdDevMul float64
}

// NewBollingerBands creates a new Bollinger Bands indicator.
func NewBollingerBands(period int, stdDevMul float64) *BollingerBands {
	return &BollingerBands{
		period:    period,
		stdDevMul: stdDevMul,
	}
}

func (b *BollingerBands) Name() string {
	return fmt.Sprintf("BollingerBands_%d_%.1f", b.period, b.stdDevMul)
}

func (b *BollingerBands) Period() int {
	return b.period
}

// Calculate returns the bands over the trailing Period prices, the most
// recent price included.
func (b *BollingerBands) Calculate(prices []float64) (Bands, error) {
	if b.period <= 0 || b.stdDevMul <= 0 {
		return Bands{}, ErrInvalidPeriod
	}
	if len(prices) < b.period {
		return Bands{}, ErrInsufficientData
	}

	window := tail(prices, b.period)
	sma := mean(window)
	sd := stdDev(window)

	return Bands{
		Upper:  sma + b.stdDevMul*sd,
		Middle: sma,
		Lower:  sma - b.stdDevMul*sd,
	}, nil
}
