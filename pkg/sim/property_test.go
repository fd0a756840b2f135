package sim

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestSeriesInvariants uses property-based testing to verify invariants of
// the adoption-count series that must hold for any run.
func TestSeriesInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)

	runSeries := func(n, iterations int, p float64, seed int64) *Result {
		cfg := DefaultConfig()
		cfg.PopulationSize = n
		cfg.AttachmentM = 2
		cfg.TechnologyCount = 2
		cfg.EarlyAdoptersPerTech = 1
		cfg.SwitchingProbability = p
		cfg.Iterations = iterations
		cfg = cfg.WithSeed(seed)

		engine, err := New(cfg)
		if err != nil {
			return nil
		}
		result, err := engine.Run(context.Background())
		if err != nil {
			return nil
		}
		return result
	}

	// Property 1: series length is iterations + 1 and totals never exceed
	// the population
	properties.Property("series length and bounded totals", prop.ForAll(
		func(n, iterations int, p float64, seed int64) bool {
			result := runSeries(n, iterations, p, seed)
			if result == nil {
				return false
			}
			if len(result.Series) != iterations+1 {
				return false
			}
			for _, snap := range result.Series {
				if snap.Total() > n {
					return false
				}
			}
			return true
		},
		gen.IntRange(4, 60),
		gen.IntRange(0, 200),
		gen.Float64Range(0, 1),
		gen.Int64(),
	))

	// Property 2: the post-seeding snapshot holds exactly one early adopter
	// per technology
	properties.Property("post-seeding counts", prop.ForAll(
		func(n, iterations int, p float64, seed int64) bool {
			result := runSeries(n, iterations, p, seed)
			if result == nil {
				return false
			}
			first := result.Series[0]
			for _, count := range first.Counts {
				if count != 1 {
					return false
				}
			}
			return first.Total() == 2
		},
		gen.IntRange(4, 60),
		gen.IntRange(0, 50),
		gen.Float64Range(0, 1),
		gen.Int64(),
	))

	// Property 3: one agent per step means every per-technology count moves
	// by at most one between consecutive snapshots, and totals never shrink
	properties.Property("single-touch step deltas", prop.ForAll(
		func(n, iterations int, p float64, seed int64) bool {
			result := runSeries(n, iterations, p, seed)
			if result == nil {
				return false
			}
			for i := 1; i < len(result.Series); i++ {
				prev, cur := result.Series[i-1], result.Series[i]
				if cur.Total() < prev.Total() {
					return false
				}
				for tech := range cur.Counts {
					delta := cur.Counts[tech] - prev.Counts[tech]
					if delta < -1 || delta > 1 {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(4, 60),
		gen.IntRange(0, 200),
		gen.Float64Range(0, 1),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
