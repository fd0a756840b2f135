package graph

import (
	"errors"
	"math/rand"
	"testing"
)

// isConnected checks connectivity with a BFS from node 0
func isConnected(g *Graph) bool {
	n := g.NodeCount()
	if n == 0 {
		return true
	}
	visited := make([]bool, n)
	queue := []int{0}
	visited[0] = true
	count := 1
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, nb := range g.Neighbors(current) {
			if !visited[nb] {
				visited[nb] = true
				count++
				queue = append(queue, nb)
			}
		}
	}
	return count == n
}

// TestGenerate_InvalidParameters tests parameter validation
func TestGenerate_InvalidParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	cases := []struct {
		name string
		n, m int
	}{
		{"zero population", 0, 2},
		{"negative population", -5, 2},
		{"zero attachment", 10, 0},
		{"negative attachment", 10, -1},
		{"attachment equals population", 10, 10},
		{"attachment exceeds population", 10, 11},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.n, tc.m, rng)
			if err == nil {
				t.Fatalf("Expected error for n=%d m=%d", tc.n, tc.m)
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

// TestGenerate_Shape tests node count, edge count, and connectivity
func TestGenerate_Shape(t *testing.T) {
	n, m := 200, 3
	g, err := Generate(n, m, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if g.NodeCount() != n {
		t.Errorf("Expected %d nodes, got %d", n, g.NodeCount())
	}

	// Seed clique contributes m(m-1)/2 edges, every later node adds m
	wantEdges := m*(m-1)/2 + (n-m)*m
	if g.EdgeCount() != wantEdges {
		t.Errorf("Expected %d edges, got %d", wantEdges, g.EdgeCount())
	}

	if !isConnected(g) {
		t.Error("Expected generated graph to be connected")
	}

	// Every node added after the seed set attaches to m distinct nodes
	for i := m; i < n; i++ {
		if g.Degree(i) < m {
			t.Errorf("Node %d: expected degree >= %d, got %d", i, m, g.Degree(i))
		}
	}
}

// TestGenerate_HeavyTail checks that attachment concentrates on hubs
func TestGenerate_HeavyTail(t *testing.T) {
	n, m := 1000, 3
	g, err := Generate(n, m, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	maxDegree := 0
	for i := 0; i < n; i++ {
		if g.Degree(i) > maxDegree {
			maxDegree = g.Degree(i)
		}
	}

	// Mean degree is ~2m; preferential attachment should produce at least
	// one hub far above it.
	meanDegree := 2 * g.EdgeCount() / n
	if maxDegree < 4*meanDegree {
		t.Errorf("Expected a hub with degree >= %d, max degree is %d", 4*meanDegree, maxDegree)
	}
}

// TestGenerate_MinimalAttachment tests the m=1 fallback path
func TestGenerate_MinimalAttachment(t *testing.T) {
	g, err := Generate(50, 1, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if g.EdgeCount() != 49 {
		t.Errorf("Expected 49 edges, got %d", g.EdgeCount())
	}
	if !isConnected(g) {
		t.Error("Expected connected graph with m=1")
	}
}

// TestGenerate_Deterministic tests seed reproducibility
func TestGenerate_Deterministic(t *testing.T) {
	g1, err := Generate(100, 2, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	g2, err := Generate(100, 2, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i := 0; i < 100; i++ {
		n1, n2 := g1.Neighbors(i), g2.Neighbors(i)
		if len(n1) != len(n2) {
			t.Fatalf("Node %d: degree mismatch %d vs %d", i, len(n1), len(n2))
		}
		for j := range n1 {
			if n1[j] != n2[j] {
				t.Fatalf("Node %d: adjacency mismatch at %d: %d vs %d", i, j, n1[j], n2[j])
			}
		}
	}
}
