package sim

// Snapshot is one entry of the adoption-count series: the per-technology
// adopter counts observed after a given iteration. Index 0 is the
// post-seeding state.
type Snapshot struct {
	Iteration int   `json:"iteration"`
	Counts    []int `json:"counts"` // indexed by technology
}

// Count returns the adopter count for the given technology index.
func (s Snapshot) Count(tech int) int {
	return s.Counts[tech]
}

// Total returns the number of adopters across all technologies. Agents still
// unassigned are not counted, so the total is at most the population size.
func (s Snapshot) Total() int {
	total := 0
	for _, c := range s.Counts {
		total += c
	}
	return total
}

// Recorder accumulates the adoption-count series, append-only, one snapshot
// per iteration plus the initial post-seeding state. It imposes no
// aggregation or smoothing.
//
// Observers registered with Observe see each snapshot as it is appended,
// which is how the live feed and the TUI stream a run in progress.
type Recorder struct {
	snaps     []Snapshot
	observers []func(Snapshot)
}

// NewRecorder creates a recorder sized for the given number of iterations.
func NewRecorder(iterations int) *Recorder {
	return &Recorder{snaps: make([]Snapshot, 0, iterations+1)}
}

// Observe registers a callback invoked synchronously for every appended
// snapshot. Must be called before the run starts.
func (r *Recorder) Observe(fn func(Snapshot)) {
	r.observers = append(r.observers, fn)
}

// Append records the counts for the given iteration. The slice is copied.
func (r *Recorder) Append(iteration int, counts []int) {
	snap := Snapshot{Iteration: iteration, Counts: make([]int, len(counts))}
	copy(snap.Counts, counts)
	r.snaps = append(r.snaps, snap)
	for _, fn := range r.observers {
		fn(snap)
	}
}

// Len returns the number of recorded snapshots.
func (r *Recorder) Len() int {
	return len(r.snaps)
}

// At returns the snapshot at the given index.
func (r *Recorder) At(i int) Snapshot {
	return r.snaps[i]
}

// Series returns the full ordered series. The returned slice is the
// recorder's backing store; callers must treat it as read-only.
func (r *Recorder) Series() []Snapshot {
	return r.snaps
}
