package network

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphEdges(t *testing.T) {
	g := NewGraph(4)
	require.NoError(t, g.AddEdge(0, 2))
	require.NoError(t, g.AddEdge(2, 0))
	require.NoError(t, g.AddEdge(1, 1))
	require.NoError(t, g.AddEdge(3, 2))
	assert.Error(t, g.AddEdge(0, 4))

	assert.Equal(t, []int{0, 1, 2, 3}, g.Nodes())
	assert.Equal(t, []int{0, 3}, g.Neighbors(2))
	assert.Empty(t, g.Neighbors(1))
	assert.Nil(t, g.Neighbors(9))
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, 2, g.Degree(2))
}

func TestErdosRenyiExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	empty := ErdosRenyi(5, 0, rng)
	assert.Equal(t, 0, empty.EdgeCount())

	complete := ErdosRenyi(5, 1, rng)
	assert.Equal(t, 10, complete.EdgeCount())
	for _, n := range complete.Nodes() {
		assert.Equal(t, 4, complete.Degree(n))
		assert.NotContains(t, complete.Neighbors(n), n)
	}
}

func TestErdosRenyiDeterministic(t *testing.T) {
	a := FromAverageDegree(30, 3, rand.New(rand.NewSource(7)))
	b := FromAverageDegree(30, 3, rand.New(rand.NewSource(7)))
	for _, n := range a.Nodes() {
		assert.Equal(t, a.Neighbors(n), b.Neighbors(n))
	}
}

func TestFromAverageDegreeRoughlyMatches(t *testing.T) {
	g := FromAverageDegree(400, 4, rand.New(rand.NewSource(42)))
	avg := 2 * float64(g.EdgeCount()) / 400
	// Expected mean degree is p*(n-1) = 3.99.
	assert.InDelta(t, 4.0, avg, 0.8)
}

func TestFromAverageDegreeNoNodes(t *testing.T) {
	g := FromAverageDegree(0, 3, rand.New(rand.NewSource(1)))
	assert.Empty(t, g.Nodes())
}
