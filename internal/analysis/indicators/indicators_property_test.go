package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// priceSliceGen generates strictly positive price histories.
func priceSliceGen(minLen, maxLen int) gopter.Gen {
	return gen.SliceOfN(maxLen, gen.Float64Range(1.0, 1000.0)).Map(func(prices []float64) []float64 {
		for len(prices) < minLen {
			if len(prices) == 0 {
				prices = append(prices, 100.0)
				continue
			}
			prices = append(prices, prices[len(prices)-1])
		}
		return prices
	})
}

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	return gopter.NewProperties(parameters)
}

func TestProperty_RSIWithinBounds(t *testing.T) {
	properties := newProperties()

	properties.Property("RSI values are within [0, 100]", prop.ForAll(
		func(prices []float64) bool {
			v, err := NewRSI(14).Calculate(prices)
			if err != nil {
				return false
			}
			return v >= 0 && v <= 100
		},
		priceSliceGen(15, 60),
	))

	properties.TestingRun(t)
}

func TestProperty_BollingerBandsOrdering(t *testing.T) {
	properties := newProperties()

	properties.Property("Bollinger Bands: Lower <= Middle <= Upper", prop.ForAll(
		func(prices []float64) bool {
			bands, err := NewBollingerBands(20, 2.0).Calculate(prices)
			if err != nil {
				return false
			}
			return bands.Lower <= bands.Middle && bands.Middle <= bands.Upper
		},
		priceSliceGen(20, 60),
	))

	properties.TestingRun(t)
}

func TestProperty_SMAIsAverageOfPrices(t *testing.T) {
	properties := newProperties()

	properties.Property("SMA is the arithmetic mean of the trailing window", prop.ForAll(
		func(prices []float64) bool {
			period := 10
			sma := NewSMA(period)
			v, err := sma.Calculate(prices)
			if err != nil {
				return false
			}
			series, err := sma.Series(prices)
			if err != nil {
				return false
			}
			expected := mean(prices[len(prices)-period:])
			return math.Abs(v-expected) < 1e-9 && math.Abs(series[len(series)-1]-v) < 1e-9
		},
		priceSliceGen(10, 40),
	))

	properties.TestingRun(t)
}

func TestRSI(t *testing.T) {
	tests := []struct {
		name    string
		prices  []float64
		period  int
		want    float64
		wantErr error
	}{
		{"only gains saturates", []float64{1, 2, 3, 4}, 3, 100, nil},
		{"only losses", []float64{4, 3, 2, 1}, 3, 0, nil},
		{"balanced", []float64{10, 11, 10, 11, 10}, 4, 50, nil},
		{"flat saturates", []float64{5, 5, 5}, 2, 100, nil},
		{"too short", []float64{1, 2, 3}, 3, 0, ErrInsufficientData},
		{"bad period", []float64{1, 2, 3}, 0, 0, ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRSI(tt.period).Calculate(tt.prices)
			if err != tt.wantErr {
				t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Calculate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRSIUsesTrailingWindowOnly(t *testing.T) {
	// A large early drop must not influence a 2-period RSI over the last three points.
	prices := []float64{100, 10, 11, 12}
	got, err := NewRSI(2).Calculate(prices)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if got != 100 {
		t.Errorf("Calculate() = %v, want 100", got)
	}
}

func TestBollingerBands(t *testing.T) {
	bands, err := NewBollingerBands(4, 2).Calculate([]float64{0, 2, 4, 2, 4, 2, 4})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if bands.Middle != 3 {
		t.Errorf("Middle = %v, want 3", bands.Middle)
	}
	if bands.Upper != 5 || bands.Lower != 1 {
		t.Errorf("bands = %+v, want upper 5 lower 1", bands)
	}
	if got := bands.PercentB(3); got != 0.5 {
		t.Errorf("PercentB(3) = %v, want 0.5", got)
	}

	if _, err := NewBollingerBands(5, 2).Calculate([]float64{1, 2}); err != ErrInsufficientData {
		t.Errorf("short history error = %v, want %v", err, ErrInsufficientData)
	}
	if _, err := NewBollingerBands(5, 0).Calculate([]float64{1, 2, 3, 4, 5}); err != ErrInvalidPeriod {
		t.Errorf("zero multiplier error = %v, want %v", err, ErrInvalidPeriod)
	}
}
