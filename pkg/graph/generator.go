package graph

import (
	"math/rand"
)

// Generate builds a connected undirected graph over n nodes using
// Barabási–Albert preferential attachment: starting from a clique over the
// first m nodes, each subsequent node attaches to m distinct existing nodes
// chosen with probability proportional to their current degree.
//
// The resulting degree distribution is heavy-tailed: a few hubs accumulate
// most of the attachment mass while the bulk of nodes stay near degree m.
//
// All randomness comes from rng, so the same seed reproduces the same graph.
// Returns ErrInvalidParameter when n or m is non-positive or m >= n.
func Generate(n, m int, rng *rand.Rand) (*Graph, error) {
	if n <= 0 {
		return nil, invalidParamf("population size %d must be positive", n)
	}
	if m <= 0 {
		return nil, invalidParamf("attachment parameter %d must be positive", m)
	}
	if m >= n {
		return nil, invalidParamf("attachment parameter %d must be below population size %d", m, n)
	}

	g := newGraph(n)

	// Seed clique over the first m nodes. For m = 1 this is a single
	// edgeless node; the first attachment below falls back to a uniform
	// choice among existing nodes.
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			g.addEdge(i, j)
		}
	}

	// Degree-proportional sampling via the repeated-endpoints list: every
	// edge contributes both endpoints, so drawing an index uniformly picks
	// a node with probability degree/2E.
	endpoints := make([]int, 0, 2*(m*(m-1)/2+(n-m)*m))
	for i := 0; i < m; i++ {
		for range g.adj[i] {
			endpoints = append(endpoints, i)
		}
	}

	chosen := make([]int, 0, m)
	for v := m; v < n; v++ {
		chosen = chosen[:0]
		for len(chosen) < m {
			var candidate int
			if len(endpoints) == 0 {
				// Only reachable while the seed set has no edges (m = 1).
				candidate = rng.Intn(v)
			} else {
				candidate = endpoints[rng.Intn(len(endpoints))]
			}
			if containsNode(chosen, candidate) {
				continue
			}
			chosen = append(chosen, candidate)
		}
		for _, u := range chosen {
			g.addEdge(v, u)
			endpoints = append(endpoints, v, u)
		}
	}

	return g, nil
}

// containsNode reports whether id is already among the chosen attachment
// targets. Linear scan: m is small.
func containsNode(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
