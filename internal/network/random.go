package network

// UniformSource draws uniform values in [0, 1).
type UniformSource interface {
	Float64() float64
}

// ErdosRenyi builds a G(n, p) random graph: every unordered pair of nodes is
// joined independently with probability p.
func ErdosRenyi(n int, p float64, rng UniformSource) *Graph {
	g := NewGraph(n)
	if p <= 0 {
		return g
	}
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if p >= 1 || rng.Float64() < p {
				_ = g.AddEdge(u, v)
			}
		}
	}
	return g
}

// FromAverageDegree builds a G(n, p) graph with p = avgDegree / n.
func FromAverageDegree(n int, avgDegree float64, rng UniformSource) *Graph {
	if n <= 0 {
		return NewGraph(0)
	}
	return ErdosRenyi(n, avgDegree/float64(n), rng)
}
