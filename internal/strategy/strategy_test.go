package strategy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trader-network/internal/errors"
	"trader-network/internal/models"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func mustConfig(t *testing.T, name string, raw map[string]float64) Config {
	t.Helper()
	cfg, err := NewConfig(name, raw)
	require.NoError(t, err)
	return cfg
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestNewConfigDefaults(t *testing.T) {
	rsi := mustConfig(t, "RSI", nil)
	assert.Equal(t, models.StrategyRSI, rsi.Type)
	assert.Equal(t, Params{Period: 14, LowerThreshold: 30, UpperThreshold: 70}, rsi.Params)
	assert.Equal(t, 15, rsi.MinHistory())

	sma := mustConfig(t, "sma", nil)
	assert.Equal(t, 28, sma.Params.Period)
	assert.Equal(t, 29, sma.MinHistory())

	bb := mustConfig(t, "bollinger", map[string]float64{"k": 1.5})
	assert.Equal(t, Params{Period: 20, K: 1.5}, bb.Params)
	assert.Equal(t, 20, bb.MinHistory())

	random := mustConfig(t, "random", map[string]float64{"period": 3})
	assert.Equal(t, 0, random.MinHistory())
}

func TestNewConfigRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		stype  string
		raw    map[string]float64
		target error
	}{
		{"unknown type", "macd", nil, apperrors.ErrUnknownStrategy},
		{"fractional period", "sma", map[string]float64{"period": 2.5}, apperrors.ErrInvalidParameter},
		{"zero period", "rsi", map[string]float64{"period": 0}, apperrors.ErrInvalidParameter},
		{"negative k", "bollinger", map[string]float64{"k": -1}, apperrors.ErrInvalidParameter},
		{"unknown option", "sma", map[string]float64{"window": 5}, apperrors.ErrInvalidParameter},
		{"inverted thresholds", "rsi", map[string]float64{"lower_threshold": 80}, apperrors.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.stype, tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestSignal(t *testing.T) {
	rsi := mustConfig(t, "rsi", map[string]float64{"period": 3})
	sma := mustConfig(t, "sma", map[string]float64{"period": 3})
	bb := mustConfig(t, "bollinger", nil)

	tests := []struct {
		name    string
		cfg     Config
		history []float64
		want    models.Signal
	}{
		{"rsi overbought", rsi, []float64{1, 2, 3, 4}, models.SignalSell},
		{"rsi oversold", rsi, []float64{4, 3, 2, 1}, models.SignalBuy},
		{"rsi neutral", rsi, []float64{10, 11, 10, 11}, models.SignalHold},
		{"rsi flat saturates to sell", rsi, []float64{5, 5, 5, 5}, models.SignalSell},
		{"rsi short", rsi, []float64{1, 2, 3}, models.SignalHold},
		{"sma above", sma, []float64{1, 2, 3, 10}, models.SignalBuy},
		{"sma below", sma, []float64{5, 5, 5, 1}, models.SignalSell},
		{"sma equal", sma, []float64{3, 3, 3, 3}, models.SignalHold},
		{"sma short", sma, []float64{1, 2, 3}, models.SignalHold},
		{"bollinger below band", bb, append(repeat(100, 19), 50), models.SignalBuy},
		{"bollinger above band", bb, append(repeat(100, 19), 150), models.SignalSell},
		{"bollinger flat", bb, repeat(100, 20), models.SignalHold},
		{"bollinger short", bb, repeat(100, 19), models.SignalHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Signal(tt.history, tt.cfg, constSource(0.9)))
		})
	}
}

func TestRandomSignalFollowsSource(t *testing.T) {
	cfg := mustConfig(t, "random", nil)
	assert.Equal(t, models.SignalBuy, Signal(nil, cfg, constSource(0.1)))
	assert.Equal(t, models.SignalSell, Signal(nil, cfg, constSource(0.7)))
}

func TestProperty_RandomNeverHolds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	cfg, _ := NewConfig("random", nil)

	properties.Property("random strategy never returns Hold", prop.ForAll(
		func(seed int64, history []float64) bool {
			rng := rand.New(rand.NewSource(seed))
			return Signal(history, cfg, rng) != models.SignalHold
		},
		gen.Int64(),
		gen.SliceOf(gen.Float64Range(1, 500)),
	))

	properties.TestingRun(t)
}

func TestProperty_ShortHistoryHolds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("windowed strategies hold below their minimum window", prop.ForAll(
		func(typeIdx int, period int, history []float64) bool {
			types := []string{"rsi", "sma", "bollinger"}
			cfg, err := NewConfig(types[typeIdx], map[string]float64{"period": float64(period)})
			if err != nil {
				return false
			}
			if len(history) >= cfg.MinHistory() {
				history = history[:cfg.MinHistory()-1]
			}
			return Signal(history, cfg, constSource(0.1)) == models.SignalHold
		},
		gen.IntRange(0, 2),
		gen.IntRange(1, 40),
		gen.SliceOf(gen.Float64Range(1, 500)),
	))

	properties.TestingRun(t)
}
