// Package sim implements the diffusion simulation core: configuration, early
// adopter seeding, the per-step adoption/switching dynamics, and the
// adoption-count time series handed to visualizers and exporters.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/dd0wney/cluso-diffusion/pkg/agents"
	"github.com/dd0wney/cluso-diffusion/pkg/graph"
	"github.com/dd0wney/cluso-diffusion/pkg/logging"
	"github.com/dd0wney/cluso-diffusion/pkg/metrics"
	"github.com/dd0wney/cluso-diffusion/pkg/validation"
)

// Engine drives the adoption dynamics over one agent pool. An Engine owns
// its network, pool, and random source exclusively; it is strictly
// sequential and must not be shared across goroutines. Parallel parameter
// sweeps run one Engine per goroutine with fully isolated state.
type Engine struct {
	cfg     Config
	seed    int64
	network *graph.Graph
	pool    *agents.Pool
	rng     *rand.Rand
	rec     *Recorder
	logger  logging.Logger
	metrics *metrics.Registry

	holders []int // scratch buffer for technology-holding neighbors
}

// Result is what a completed (or cancelled) run hands back to the caller.
type Result struct {
	Config   Config        `json:"config"`
	Seed     int64         `json:"seed"`
	Series   []Snapshot    `json:"series"`
	Duration time.Duration `json:"duration_ns"`
}

// Final returns the last snapshot of the series.
func (r *Result) Final() Snapshot {
	return r.Series[len(r.Series)-1]
}

// New builds a fully wired engine from the configuration: it validates,
// generates the preferential-attachment network, wraps it in an agent pool,
// and seeds the early adopters. A single random source, created from the
// config seed, is threaded through generation, seeding, and the step loop,
// so an identical config with an identical seed reproduces the run bit for
// bit.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed()
	rng := rand.New(rand.NewSource(seed))

	network, err := graph.Generate(cfg.PopulationSize, cfg.AttachmentM, rng)
	if err != nil {
		return nil, setupError("Generate", "AttachmentM", err)
	}

	pool := agents.NewPool(network, cfg.TechnologyCount)
	if err := SeedEarlyAdopters(pool, cfg.TechnologyCount, cfg.EarlyAdoptersPerTech, rng); err != nil {
		return nil, err
	}

	return &Engine{
		cfg:     cfg,
		seed:    seed,
		network: network,
		pool:    pool,
		rng:     rng,
		rec:     NewRecorder(cfg.Iterations),
		logger:  logging.Nop{},
	}, nil
}

// NewFromPool builds an engine over a caller-constructed pool and random
// source, skipping network generation and seeding. Population-level config
// fields are ignored in favor of the pool's actual shape. Intended for
// hand-built scenarios.
func NewFromPool(cfg Config, pool *agents.Pool, rng *rand.Rand) (*Engine, error) {
	cv := validation.NewConfigValidator("SimulationConfig").
		NonNegative("Iterations", cfg.Iterations).
		RangeFloat("SwitchingProbability", cfg.SwitchingProbability, 0, 1)
	if err := cv.Validate(); err != nil {
		return nil, setupError("Validate", "", fmt.Errorf("%w: %v", ErrInvalidParameter, err))
	}
	return &Engine{
		cfg:    cfg,
		seed:   cfg.Seed(),
		pool:   pool,
		rng:    rng,
		rec:    NewRecorder(cfg.Iterations),
		logger: logging.Nop{},
	}, nil
}

// SetLogger replaces the engine's logger. Must be called before Run.
func (e *Engine) SetLogger(l logging.Logger) {
	e.logger = l
}

// SetMetrics attaches a metrics registry updated during the run.
func (e *Engine) SetMetrics(m *metrics.Registry) {
	e.metrics = m
}

// Pool returns the engine's agent pool for read-only inspection.
func (e *Engine) Pool() *agents.Pool {
	return e.pool
}

// Network returns the generated interaction network, or nil for engines
// built with NewFromPool.
func (e *Engine) Network() *graph.Graph {
	return e.network
}

// Recorder returns the engine's series recorder, e.g. to register snapshot
// observers before the run.
func (e *Engine) Recorder() *Recorder {
	return e.rec
}

// Run executes the configured number of iterations and returns the recorded
// series. The only cancellation point is between iterations: on context
// cancellation the partial series up to the last completed step is returned
// along with the context error, and the pool is left in a consistent state.
//
// With zero iterations the series holds only the post-seeding snapshot.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	e.logger.Info("simulation starting",
		logging.Population(e.pool.Size()),
		logging.Probability(e.cfg.SwitchingProbability),
		logging.Int("iterations", e.cfg.Iterations),
		logging.Seed(e.seed),
	)

	e.rec.Append(0, e.pool.CountByTechnology())

	for i := 1; i <= e.cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			e.logger.Warn("simulation cancelled", logging.Iteration(i-1))
			return e.result(start), ctx.Err()
		default:
		}

		e.step()
		e.rec.Append(i, e.pool.CountByTechnology())
		if e.metrics != nil {
			e.metrics.RecordStep()
		}
	}

	res := e.result(start)
	if e.metrics != nil {
		e.metrics.UpdateAdopterCounts(res.Final().Counts)
		e.metrics.RecordRun("completed", res.Duration)
	}
	e.logger.Info("simulation finished",
		logging.Int("snapshots", e.rec.Len()),
		logging.Int("adopters", res.Final().Total()),
		logging.Duration("elapsed", res.Duration),
	)
	return res, nil
}

func (e *Engine) result(start time.Time) *Result {
	return &Result{
		Config:   e.cfg,
		Seed:     e.seed,
		Series:   e.rec.Series(),
		Duration: time.Since(start),
	}
}

// step touches a single agent chosen uniformly from the full population and
// applies the adoption or switching rule. Agents with no neighbors can never
// change state; that is expected, not an error.
func (e *Engine) step() {
	id := e.rng.Intn(e.pool.Size())
	if cur := e.pool.Get(id); cur == agents.Unassigned {
		e.adopt(id)
	} else {
		e.reconsider(id, cur)
	}
}

// adopt applies the initial-adoption rule: choose uniformly among the
// neighbor agents that hold a technology and copy that neighbor's choice. No
// technology-holding neighbor means no change this step.
func (e *Engine) adopt(id int) {
	holders := e.holders[:0]
	for _, nb := range e.pool.Neighbors(id) {
		if e.pool.Get(nb) != agents.Unassigned {
			holders = append(holders, nb)
		}
	}
	e.holders = holders
	if len(holders) == 0 {
		return
	}
	chosen := holders[e.rng.Intn(len(holders))]
	e.pool.Set(id, e.pool.Get(chosen))
}

// reconsider applies the switching rule: with the configured probability the
// agent looks at one uniformly chosen neighbor and switches iff that
// neighbor holds a different technology. The agent never reverts to
// Unassigned.
func (e *Engine) reconsider(id int, cur agents.Technology) {
	if e.rng.Float64() >= e.cfg.SwitchingProbability {
		return
	}
	nbrs := e.pool.Neighbors(id)
	if len(nbrs) == 0 {
		return
	}
	nb := nbrs[e.rng.Intn(len(nbrs))]
	if next := e.pool.Get(nb); next != agents.Unassigned && next != cur {
		e.pool.Set(id, next)
	}
}
