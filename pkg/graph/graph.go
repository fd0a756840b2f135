// Package graph provides the immutable undirected interaction network the
// simulation runs on, along with the preferential-attachment generator that
// builds it.
package graph

// Graph is an undirected graph over nodes 0..n-1 stored as adjacency lists.
// It is structurally immutable once built: generators and constructors in this
// package are the only writers, and none of them escape a *Graph before the
// structure is complete.
type Graph struct {
	adj   [][]int
	edges int
}

// newGraph allocates an edgeless graph with n nodes.
func newGraph(n int) *Graph {
	return &Graph{adj: make([][]int, n)}
}

// addEdge inserts an undirected edge between u and v.
// Callers must not create self-loops or duplicate edges.
func (g *Graph) addEdge(u, v int) {
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	g.edges++
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges in the graph.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Degree returns the number of neighbors of the given node.
func (g *Graph) Degree(id int) int {
	return len(g.adj[id])
}

// Neighbors returns the adjacency list of the given node. The returned slice
// is a read-only view into the graph; callers must not modify it.
func (g *Graph) Neighbors(id int) []int {
	return g.adj[id]
}

// NewRing builds a cycle over n nodes (each node adjacent to its two ring
// neighbors). With n = 2 the result is a single edge. Useful for small
// hand-constructed scenarios.
func NewRing(n int) *Graph {
	g := newGraph(n)
	if n < 2 {
		return g
	}
	if n == 2 {
		g.addEdge(0, 1)
		return g
	}
	for i := 0; i < n; i++ {
		g.addEdge(i, (i+1)%n)
	}
	return g
}

// NewIsolated builds a graph of n nodes with no edges.
func NewIsolated(n int) *Graph {
	return newGraph(n)
}

// NewFromEdges builds a graph over n nodes from an explicit edge list.
func NewFromEdges(n int, edges [][2]int) *Graph {
	g := newGraph(n)
	for _, e := range edges {
		g.addEdge(e[0], e[1])
	}
	return g
}
