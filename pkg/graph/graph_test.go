package graph

import (
	"testing"
)

// TestNewRing_Adjacency tests ring construction
func TestNewRing_Adjacency(t *testing.T) {
	g := NewRing(4)

	if g.NodeCount() != 4 {
		t.Fatalf("Expected 4 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 4 {
		t.Errorf("Expected 4 edges, got %d", g.EdgeCount())
	}
	for i := 0; i < 4; i++ {
		if g.Degree(i) != 2 {
			t.Errorf("Node %d: expected degree 2, got %d", i, g.Degree(i))
		}
	}

	// Node 1 must be adjacent to 0 and 2
	nbrs := g.Neighbors(1)
	seen := map[int]bool{}
	for _, nb := range nbrs {
		seen[nb] = true
	}
	if !seen[0] || !seen[2] {
		t.Errorf("Node 1: expected neighbors {0, 2}, got %v", nbrs)
	}
}

// TestNewRing_TwoNodes tests the degenerate two-node ring
func TestNewRing_TwoNodes(t *testing.T) {
	g := NewRing(2)

	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", g.EdgeCount())
	}
	if g.Degree(0) != 1 || g.Degree(1) != 1 {
		t.Errorf("Expected both degrees 1, got %d and %d", g.Degree(0), g.Degree(1))
	}
}

// TestNewRing_SingleNode tests that a one-node ring has no self-loop
func TestNewRing_SingleNode(t *testing.T) {
	g := NewRing(1)

	if g.EdgeCount() != 0 {
		t.Errorf("Expected 0 edges, got %d", g.EdgeCount())
	}
	if g.Degree(0) != 0 {
		t.Errorf("Expected degree 0, got %d", g.Degree(0))
	}
}

// TestNewIsolated tests the edgeless graph constructor
func TestNewIsolated(t *testing.T) {
	g := NewIsolated(5)

	if g.NodeCount() != 5 {
		t.Fatalf("Expected 5 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("Expected 0 edges, got %d", g.EdgeCount())
	}
	for i := 0; i < 5; i++ {
		if len(g.Neighbors(i)) != 0 {
			t.Errorf("Node %d: expected no neighbors, got %v", i, g.Neighbors(i))
		}
	}
}

// TestNewFromEdges tests explicit edge-list construction
func TestNewFromEdges(t *testing.T) {
	g := NewFromEdges(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})

	if g.EdgeCount() != 3 {
		t.Errorf("Expected 3 edges, got %d", g.EdgeCount())
	}
	if g.Degree(1) != 2 {
		t.Errorf("Node 1: expected degree 2, got %d", g.Degree(1))
	}
	if g.Degree(0) != 1 {
		t.Errorf("Node 0: expected degree 1, got %d", g.Degree(0))
	}
}
