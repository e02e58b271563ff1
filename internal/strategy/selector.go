package strategy

import (
	"trader-network/internal/analysis/indicators"
	"trader-network/internal/models"
)

// RandomSource is the subset of *rand.Rand the selector draws from.
type RandomSource interface {
	Float64() float64
}

// Signal evaluates the configured heuristic against the price history.
// Short histories yield Hold for every strategy except Random, which never holds.
func Signal(history []float64, cfg Config, rng RandomSource) models.Signal {
	switch cfg.Type {
	case models.StrategyRandom:
		return randomSignal(rng)
	case models.StrategyRSI:
		return rsiSignal(history, cfg.Params)
	case models.StrategySMA:
		return smaSignal(history, cfg.Params)
	case models.StrategyBollinger:
		return bollingerSignal(history, cfg.Params)
	default:
		return models.SignalHold
	}
}

func randomSignal(rng RandomSource) models.Signal {
	if rng.Float64() < 0.5 {
		return models.SignalBuy
	}
	return models.SignalSell
}

func rsiSignal(history []float64, p Params) models.Signal {
	rsi, err := indicators.NewRSI(p.Period).Calculate(history)
	if err != nil {
		return models.SignalHold
	}

	switch {
	case rsi < p.LowerThreshold:
		return models.SignalBuy
	case rsi > p.UpperThreshold:
		return models.SignalSell
	default:
		return models.SignalHold
	}
}

func smaSignal(history []float64, p Params) models.Signal {
	if len(history) < p.Period+1 {
		return models.SignalHold
	}

	current := history[len(history)-1]
	// Average of the Period prices preceding the current one.
	avg, err := indicators.NewSMA(p.Period).Calculate(history[:len(history)-1])
	if err != nil {
		return models.SignalHold
	}

	switch {
	case current > avg:
		return models.SignalBuy
	case current < avg:
		return models.SignalSell
	default:
		return models.SignalHold
	}
}

func bollingerSignal(history []float64, p Params) models.Signal {
	bands, err := indicators.NewBollingerBands(p.Period, p.K).Calculate(history)
	if err != nil {
		return models.SignalHold
	}

	current := history[len(history)-1]
	switch {
	case current < bands.Lower:
		return models.SignalBuy
	case current > bands.Upper:
		return models.SignalSell
	default:
		return models.SignalHold
	}
}
