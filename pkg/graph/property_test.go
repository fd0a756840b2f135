package graph

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestGeneratorInvariants uses property-based testing to verify invariants
// that must hold for any valid generator input.
func TestGeneratorInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	// Property 1: degree sum equals twice the edge count
	properties.Property("degree sum is twice the edge count", prop.ForAll(
		func(n, m int, seed int64) bool {
			if m >= n {
				m = n - 1
			}
			g, err := Generate(n, m, rand.New(rand.NewSource(seed)))
			if err != nil {
				return false
			}
			degreeSum := 0
			for i := 0; i < g.NodeCount(); i++ {
				degreeSum += g.Degree(i)
			}
			return degreeSum == 2*g.EdgeCount()
		},
		gen.IntRange(2, 120),
		gen.IntRange(1, 10),
		gen.Int64(),
	))

	// Property 2: generated graphs are connected
	properties.Property("generated graphs are connected", prop.ForAll(
		func(n, m int, seed int64) bool {
			if m >= n {
				m = n - 1
			}
			g, err := Generate(n, m, rand.New(rand.NewSource(seed)))
			if err != nil {
				return false
			}
			return isConnected(g)
		},
		gen.IntRange(2, 120),
		gen.IntRange(1, 10),
		gen.Int64(),
	))

	// Property 3: no self-loops in the adjacency lists
	properties.Property("no self-loops", prop.ForAll(
		func(n, m int, seed int64) bool {
			if m >= n {
				m = n - 1
			}
			g, err := Generate(n, m, rand.New(rand.NewSource(seed)))
			if err != nil {
				return false
			}
			for i := 0; i < g.NodeCount(); i++ {
				for _, nb := range g.Neighbors(i) {
					if nb == i {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(2, 120),
		gen.IntRange(1, 10),
		gen.Int64(),
	))

	// Property 4: adjacency is symmetric
	properties.Property("adjacency is symmetric", prop.ForAll(
		func(n, m int, seed int64) bool {
			if m >= n {
				m = n - 1
			}
			g, err := Generate(n, m, rand.New(rand.NewSource(seed)))
			if err != nil {
				return false
			}
			for i := 0; i < g.NodeCount(); i++ {
				for _, nb := range g.Neighbors(i) {
					found := false
					for _, back := range g.Neighbors(nb) {
						if back == i {
							found = true
							break
						}
					}
					if !found {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(2, 120),
		gen.IntRange(1, 10),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
