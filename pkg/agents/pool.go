package agents

import (
	"github.com/dd0wney/cluso-diffusion/pkg/graph"
)

// Pool wraps the interaction network with one technology slot per node and
// keeps per-technology adopter counts in sync incrementally, so snapshots are
// O(K) instead of an O(N) scan.
//
// Set is the single mutation entry point; the at-most-one-technology
// invariant is enforced there and nowhere else. A Pool belongs to exactly one
// simulation run and is never accessed concurrently.
type Pool struct {
	g        *graph.Graph
	techs    []Technology
	counts   []int
	assigned int
}

// NewPool creates a pool over the given network with techCount technologies,
// all agents starting Unassigned.
func NewPool(g *graph.Graph, techCount int) *Pool {
	techs := make([]Technology, g.NodeCount())
	for i := range techs {
		techs[i] = Unassigned
	}
	return &Pool{
		g:      g,
		techs:  techs,
		counts: make([]int, techCount),
	}
}

// Size returns the number of agents in the pool.
func (p *Pool) Size() int {
	return len(p.techs)
}

// TechnologyCount returns the number of competing technologies.
func (p *Pool) TechnologyCount() int {
	return len(p.counts)
}

// Neighbors returns the agent ids adjacent to the given agent. The slice is
// a read-only view backed by the shared graph.
func (p *Pool) Neighbors(id int) []int {
	return p.g.Neighbors(id)
}

// Degree returns the number of neighbors of the given agent.
func (p *Pool) Degree(id int) int {
	return p.g.Degree(id)
}

// Get returns the agent's current technology, or Unassigned.
func (p *Pool) Get(id int) Technology {
	return p.techs[id]
}

// Set overwrites the agent's technology slot. tech must be a valid
// technology index; agents never transition back to Unassigned.
func (p *Pool) Set(id int, tech Technology) {
	old := p.techs[id]
	if old == tech {
		return
	}
	if old == Unassigned {
		p.assigned++
	} else {
		p.counts[old]--
	}
	p.counts[tech]++
	p.techs[id] = tech
}

// CountByTechnology returns the current adopter count per technology,
// indexed by technology. The returned slice is a copy.
func (p *Pool) CountByTechnology() []int {
	counts := make([]int, len(p.counts))
	copy(counts, p.counts)
	return counts
}

// AdopterTotal returns the number of agents holding any technology.
func (p *Pool) AdopterTotal() int {
	return p.assigned
}
