package agents

import (
	"math/rand"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trader-network/internal/market"
	"trader-network/internal/models"
	"trader-network/internal/strategy"
)

func newPropertyParams() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())
	return parameters
}

func bareTrader(id int, capital float64, prices []float64) *Trader {
	cfg, _ := strategy.NewConfig("random", nil)
	return NewTrader(TraderConfig{ID: id, Capital: capital, GenerosityRate: 1, Strategy: cfg}, market.NewSnapshot(prices))
}

func TestProperty_ResolveWinRateAsymmetry(t *testing.T) {
	properties := gopter.NewProperties(newPropertyParams())

	properties.Property("win rate moves only on Buy-upper and Sell-lower", prop.ForAll(
		func(capital, memory float64, prices []float64, buy bool) bool {
			tr := bareTrader(0, capital, []float64{memory})
			tr.Observe(market.NewSnapshot(prices))

			signal := models.SignalSell
			if buy {
				signal = models.SignalBuy
			}
			before := tr.WinRate()
			out := Resolve(tr, signal)
			gained := tr.WinRate() - before

			switch {
			case !out.Applied():
				return gained == 0 && tr.Capital() == capital
			case signal == models.SignalBuy && out.Trigger == models.TriggerLower,
				signal == models.SignalSell && out.Trigger == models.TriggerUpper:
				return gained == 0 && out.Delta <= 0
			default:
				return gained == 1 && out.Delta >= 0
			}
		},
		gen.Float64Range(-50, 500),
		gen.Float64Range(1, 200),
		gen.SliceOf(gen.Float64Range(0.01, 400)),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestProperty_StateTracksCapital(t *testing.T) {
	properties := gopter.NewProperties(newPropertyParams())

	properties.Property("state is HasCapital iff capital > 0 after every step", prop.ForAll(
		func(seed int64, capitals []float64, steps int) bool {
			if len(capitals) == 0 {
				return true
			}
			rng := rand.New(rand.NewSource(seed))
			series := market.NewSeries(100)
			traders := make([]*Trader, len(capitals))
			for i, c := range capitals {
				traders[i] = bareTrader(i, c, series.Snapshot().Prices())
			}
			for i, tr := range traders {
				tr.SetNeighbors([]*Trader{traders[(i+1)%len(traders)]})
			}

			for s := 0; s < steps; s++ {
				series.Append(market.NextPrice(series.Last(), 0.5, 0, rng))
				snap := series.Snapshot()
				for _, tr := range traders {
					tr.Observe(snap)
					tr.Step(rng)
				}
				for _, tr := range traders {
					tr.ResetMemory(snap.Last())
					if (tr.State() == models.HasCapital) != (tr.Capital() > 0) {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
		gen.SliceOfN(6, gen.Float64Range(0, 3)),
		gen.IntRange(1, 30),
	))

	properties.TestingRun(t)
}

func TestProperty_ShareBoundedAndConserving(t *testing.T) {
	properties := gopter.NewProperties(newPropertyParams())

	properties.Property("shares never exceed capital, conserve the total, and pick the strict maximum", prop.ForAll(
		func(capital float64, winRates []float64) bool {
			giver := bareTrader(0, capital, []float64{100})
			neighbors := make([]*Trader, len(winRates))
			for i, w := range winRates {
				neighbors[i] = bareTrader(i+1, 1, []float64{100})
				neighbors[i].winRate = w
			}
			giver.SetNeighbors(neighbors)

			total := capital
			for _, n := range neighbors {
				total += n.Capital()
			}

			ev, ok := ShareCapital(giver, constSource(0))
			if !ok {
				return BestNeighbor(giver) == nil
			}
			if ev.Amount > capital || ev.Amount <= 0 {
				return false
			}

			after := giver.Capital()
			var receiver *Trader
			for _, n := range neighbors {
				after += n.Capital()
				if n.ID() == ev.To {
					receiver = n
				}
			}
			if receiver == nil {
				return false
			}
			for _, n := range neighbors {
				if n.WinRate() > receiver.WinRate() {
					return false
				}
				if n.WinRate() == receiver.WinRate() && n.ID() < receiver.ID() {
					return false
				}
			}
			diff := after - total
			return diff < 1e-9 && diff > -1e-9
		},
		gen.Float64Range(0.01, 1000),
		gen.SliceOf(gen.IntRange(0, 5).Map(func(v int) float64 { return float64(v) })),
	))

	properties.TestingRun(t)
}
