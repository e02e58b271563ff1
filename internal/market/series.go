package market

import (
	"sync"
)

// Series is the process-wide price history. It is append-only: prices are
// never modified or removed once recorded.
type Series struct {
	mu     sync.RWMutex
	prices []float64
}

// NewSeries creates a series seeded with a single price.
func NewSeries(seed float64) *Series {
	return &Series{prices: []float64{seed}}
}

// NewSeriesFrom creates a series holding a copy of prices.
func NewSeriesFrom(prices []float64) *Series {
	cp := make([]float64, len(prices))
	copy(cp, prices)
	return &Series{prices: cp}
}

// Append records the next price.
func (s *Series) Append(price float64) {
	s.mu.Lock()
	s.prices = append(s.prices, price)
	s.mu.Unlock()
}

// Len returns the number of recorded prices.
func (s *Series) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prices)
}

// Last returns the most recent price, or 0 for an empty series.
func (s *Series) Last() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.prices) == 0 {
		return 0
	}
	return s.prices[len(s.prices)-1]
}

// Snapshot returns a read-only view of the history as of now.
func (s *Series) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Capping capacity makes an append on the view copy instead of
	// writing into the series' backing array.
	return Snapshot{prices: s.prices[:len(s.prices):len(s.prices)]}
}

// Snapshot is an immutable view over a prefix of the series.
type Snapshot struct {
	prices []float64
}

// NewSnapshot wraps prices in a snapshot. The slice must not be mutated afterwards.
func NewSnapshot(prices []float64) Snapshot {
	return Snapshot{prices: prices[:len(prices):len(prices)]}
}

// Len returns the number of prices in the view.
func (v Snapshot) Len() int {
	return len(v.prices)
}

// At returns the price at index i.
func (v Snapshot) At(i int) float64 {
	return v.prices[i]
}

// Last returns the most recent price in the view, or 0 if empty.
func (v Snapshot) Last() float64 {
	if len(v.prices) == 0 {
		return 0
	}
	return v.prices[len(v.prices)-1]
}

// Values returns a copy of the prices.
func (v Snapshot) Values() []float64 {
	cp := make([]float64, len(v.prices))
	copy(cp, v.prices)
	return cp
}

// Prices exposes the view's backing slice without copying. Callers must
// treat it as read-only.
func (v Snapshot) Prices() []float64 {
	return v.prices
}
