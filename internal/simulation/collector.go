package simulation

import (
	"trader-network/internal/agents"
	"trader-network/internal/models"
)

// Reporter names.
const (
	ReporterZeroCapital = "Zero_Capital"
	ReporterWithCapital = "With_Capital"
)

// Reporter is a pure query over the agent collection.
type Reporter func(traders []*agents.Trader) int

// CountZeroCapital counts agents in the ZeroCapital state.
func CountZeroCapital(traders []*agents.Trader) int {
	n := 0
	for _, t := range traders {
		if t.State() == models.ZeroCapital {
			n++
		}
	}
	return n
}

// CountWithCapital counts agents in the HasCapital state.
func CountWithCapital(traders []*agents.Trader) int {
	n := 0
	for _, t := range traders {
		if t.State() == models.HasCapital {
			n++
		}
	}
	return n
}

// Collector records the model-level reporters once after initialization and
// once after every tick.
type Collector struct {
	reporters map[string]Reporter
	rows      []models.TickStats
}

// NewCollector creates a collector with the two state-count reporters.
func NewCollector() *Collector {
	return &Collector{
		reporters: map[string]Reporter{
			ReporterZeroCapital: CountZeroCapital,
			ReporterWithCapital: CountWithCapital,
		},
	}
}

// Reporter looks up a reporter by name.
func (c *Collector) Reporter(name string) (Reporter, bool) {
	r, ok := c.reporters[name]
	return r, ok
}

// Collect evaluates the reporters and appends a row.
func (c *Collector) Collect(tick int, price float64, traders []*agents.Trader) models.TickStats {
	row := models.TickStats{
		Tick:        tick,
		Price:       price,
		ZeroCapital: c.reporters[ReporterZeroCapital](traders),
		WithCapital: c.reporters[ReporterWithCapital](traders),
	}
	c.rows = append(c.rows, row)
	return row
}

// Rows returns a copy of the collected table in tick order.
func (c *Collector) Rows() []models.TickStats {
	return append([]models.TickStats(nil), c.rows...)
}

// Column returns one reporter's values in tick order.
func (c *Collector) Column(name string) []int {
	out := make([]int, 0, len(c.rows))
	for _, r := range c.rows {
		switch name {
		case ReporterZeroCapital:
			out = append(out, r.ZeroCapital)
		case ReporterWithCapital:
			out = append(out, r.WithCapital)
		default:
			return nil
		}
	}
	return out
}
