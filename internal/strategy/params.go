// Package strategy maps a price history to a trade signal using one of the
// built-in heuristics.
package strategy

import (
	"math"

	apperrors "trader-network/internal/errors"
	"trader-network/internal/models"
)

// Default strategy parameters.
const (
	DefaultRSIPeriod         = 14
	DefaultRSILowerThreshold = 30.0
	DefaultRSIUpperThreshold = 70.0
	DefaultSMAPeriod         = 28
	DefaultBollingerPeriod   = 20
	DefaultBollingerK        = 2.0
)

// Parameter names accepted in a strategy's params map.
const (
	ParamPeriod         = "period"
	ParamLowerThreshold = "lower_threshold"
	ParamUpperThreshold = "upper_threshold"
	ParamK              = "k"
)

// Params holds the resolved parameters for a strategy. Fields that do not
// apply to the strategy type are ignored.
type Params struct {
	Period         int
	LowerThreshold float64
	UpperThreshold float64
	K              float64
}

// Config binds a strategy type to its parameters.
type Config struct {
	Type   models.StrategyType
	Params Params
}

// DefaultParams returns the defaults for a strategy type.
func DefaultParams(t models.StrategyType) Params {
	switch t {
	case models.StrategyRSI:
		return Params{
			Period:         DefaultRSIPeriod,
			LowerThreshold: DefaultRSILowerThreshold,
			UpperThreshold: DefaultRSIUpperThreshold,
		}
	case models.StrategySMA:
		return Params{Period: DefaultSMAPeriod}
	case models.StrategyBollinger:
		return Params{Period: DefaultBollingerPeriod, K: DefaultBollingerK}
	default:
		return Params{}
	}
}

// NewConfig resolves a strategy name and raw option map into a Config,
// applying defaults for missing options.
func NewConfig(name string, raw map[string]float64) (Config, error) {
	t, err := models.ParseStrategyType(name)
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrUnknownStrategy, err.Error())
	}

	p := DefaultParams(t)
	for key, value := range raw {
		switch key {
		case ParamPeriod:
			if t == models.StrategyRandom {
				continue
			}
			if value < 1 || value != math.Trunc(value) {
				return Config{}, apperrors.Wrapf(apperrors.ErrInvalidParameter, "%s.%s must be a positive integer, got %v", t, key, value)
			}
			p.Period = int(value)
		case ParamLowerThreshold:
			p.LowerThreshold = value
		case ParamUpperThreshold:
			p.UpperThreshold = value
		case ParamK:
			if value <= 0 {
				return Config{}, apperrors.Wrapf(apperrors.ErrInvalidParameter, "%s.%s must be positive, got %v", t, key, value)
			}
			p.K = value
		default:
			return Config{}, apperrors.Wrapf(apperrors.ErrInvalidParameter, "%s does not accept option %q", t, key)
		}
	}

	if t == models.StrategyRSI && p.LowerThreshold >= p.UpperThreshold {
		return Config{}, apperrors.Wrapf(apperrors.ErrInvalidParameter,
			"rsi lower_threshold (%v) must be below upper_threshold (%v)", p.LowerThreshold, p.UpperThreshold)
	}

	return Config{Type: t, Params: p}, nil
}

// MinHistory returns the number of prices a strategy needs before it can
// produce anything other than Hold.
func (c Config) MinHistory() int {
	switch c.Type {
	case models.StrategyRSI, models.StrategySMA:
		return c.Params.Period + 1
	case models.StrategyBollinger:
		return c.Params.Period
	default:
		return 0
	}
}

func (c Config) String() string {
	return string(c.Type)
}
