// Package network provides the trader topology: a fixed undirected graph
// whose nodes each host one agent.
package network

import (
	"fmt"
	"sort"
)

// Topology is the contract the simulation consumes.
type Topology interface {
	Nodes() []int
	Neighbors(node int) []int
}

// Graph is a simple undirected graph without self-loops or parallel edges.
type Graph struct {
	n   int
	adj []map[int]struct{}
}

// NewGraph creates a graph with nodes 0..n-1 and no edges.
func NewGraph(n int) *Graph {
	adj := make([]map[int]struct{}, n)
	for i := range adj {
		adj[i] = make(map[int]struct{})
	}
	return &Graph{n: n, adj: adj}
}

// AddEdge connects u and v. Self-loops and duplicates are ignored.
func (g *Graph) AddEdge(u, v int) error {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return fmt.Errorf("edge (%d, %d) out of range for %d nodes", u, v, g.n)
	}
	if u == v {
		return nil
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	return nil
}

// Nodes returns the node ids in ascending order.
func (g *Graph) Nodes() []int {
	nodes := make([]int, g.n)
	for i := range nodes {
		nodes[i] = i
	}
	return nodes
}

// Neighbors returns the neighbours of node in ascending order.
func (g *Graph) Neighbors(node int) []int {
	if node < 0 || node >= g.n {
		return nil
	}
	out := make([]int, 0, len(g.adj[node]))
	for v := range g.adj[node] {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Degree returns the number of neighbours of node.
func (g *Graph) Degree(node int) int {
	if node < 0 || node >= g.n {
		return 0
	}
	return len(g.adj[node])
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, m := range g.adj {
		total += len(m)
	}
	return total / 2
}
