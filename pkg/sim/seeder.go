package sim

import (
	"fmt"
	"math/rand"

	"github.com/dd0wney/cluso-diffusion/pkg/agents"
)

// SeedEarlyAdopters assigns each of techCount technologies to perTech agents
// chosen uniformly at random without replacement across the whole population.
// Selections never overlap across technologies: a random permutation is
// consumed front to back, so every early-adopter slot holds a distinct agent
// and each agent receives at most one technology.
func SeedEarlyAdopters(pool *agents.Pool, techCount, perTech int, rng *rand.Rand) error {
	need := techCount * perTech
	if need > pool.Size() {
		return setupError("Seed", "",
			fmt.Errorf("%w: need %d distinct early adopters, population is %d",
				ErrInsufficientPopulation, need, pool.Size()))
	}

	perm := rng.Perm(pool.Size())
	idx := 0
	for tech := 0; tech < techCount; tech++ {
		for i := 0; i < perTech; i++ {
			pool.Set(perm[idx], agents.Technology(tech))
			idx++
		}
	}
	return nil
}
