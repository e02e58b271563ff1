package indicators

import (
	"fmt"
)

// RSI calculates the Relative Strength Index over the trailing window of
// price changes using a simple average of gains and losses.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI_%d", r.period)
}

// Period returns the number of price changes averaged.
func (r *RSI) Period() int {
	return r.period
}

// MinPoints is the shortest history the indicator accepts.
func (r *RSI) MinPoints() int {
	return r.period + 1
}

// Calculate returns the RSI at the most recent price.
func (r *RSI) Calculate(prices []float64) (float64, error) {
	if r.period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(prices) < r.MinPoints() {
		return 0, ErrInsufficientData
	}

	window := tail(prices, r.period+1)

	var gains, losses float64
	for i := 1; i < len(window); i++ {
		change := window[i] - window[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(r.period)
	avgLoss := losses / float64(r.period)

	if avgLoss == 0 {
		return 100, nil
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), nil
}
