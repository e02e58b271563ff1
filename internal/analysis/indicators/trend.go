package indicators

import (
	"fmt"
)

// SMA calculates Simple Moving Average.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

func (s *SMA) Name() string {
	return fmt.Sprintf("SMA_%d", s.period)
}

func (s *SMA) Period() int {
	return s.period
}

// Calculate returns the mean of the last Period prices.
func (s *SMA) Calculate(prices []float64) (float64, error) {
	if s.period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(prices) < s.period {
		return 0, ErrInsufficientData
	}
	return mean(tail(prices, s.period)), nil
}

// Series returns the rolling SMA for every index; entries before the
// first full window are zero.
func (s *SMA) Series(prices []float64) ([]float64, error) {
	if s.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(prices) < s.period {
		return nil, ErrInsufficientData
	}

	result := make([]float64, len(prices))
	for i := s.period - 1; i < len(prices); i++ {
		result[i] = mean(prices[i-s.period+1 : i+1])
	}
	return result, nil
}
