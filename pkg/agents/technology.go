// Package agents holds the mutable per-agent technology state layered over
// the immutable interaction network. Agent identity and adjacency live in the
// graph; this package owns only the technology slot per node, so agents never
// hold references to each other.
package agents

import "fmt"

// Technology identifies one of the competing technologies by index.
// Unassigned marks an agent that has not adopted anything yet.
type Technology int

// Unassigned is the zero-adoption state. Agents start here and never return
// once they adopt: switching always replaces one technology with another.
const Unassigned Technology = -1

// String returns a short display label for the technology.
func (t Technology) String() string {
	if t == Unassigned {
		return "unassigned"
	}
	return fmt.Sprintf("technology-%d", int(t)+1)
}
