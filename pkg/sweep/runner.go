// Package sweep runs batches of independent simulations across a range of
// switching probabilities. Every run gets its own network, agent pool, and
// random source; no state crosses runs, so they parallelize freely.
package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-diffusion/pkg/logging"
	"github.com/dd0wney/cluso-diffusion/pkg/metrics"
	"github.com/dd0wney/cluso-diffusion/pkg/sim"
)

// Run is the outcome of one parameter point in a sweep.
type Run struct {
	ID                   string      `json:"id"`
	SwitchingProbability float64     `json:"switching_probability"`
	Seed                 int64       `json:"seed"`
	Result               *sim.Result `json:"result,omitempty"`
	Err                  error       `json:"-"`
}

// Runner executes sweeps from a base configuration.
type Runner struct {
	base    sim.Config
	workers int
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewRunner creates a sweep runner. workers caps concurrent runs; values
// below 1 mean a single worker.
func NewRunner(base sim.Config, workers int) *Runner {
	return &Runner{
		base:    base,
		workers: workers,
		logger:  logging.Nop{},
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l logging.Logger) {
	r.logger = l
}

// SetMetrics attaches a metrics registry tracking in-flight runs.
func (r *Runner) SetMetrics(m *metrics.Registry) {
	r.metrics = m
}

// Sweep runs one simulation per switching probability and returns the runs
// in input order. Each run's seed is derived from the base config seed and
// the run index, keeping the whole sweep reproducible from a single seed.
// Setup failures and cancellations are reported per run in Run.Err; Sweep
// itself only fails on an empty probability list.
func (r *Runner) Sweep(ctx context.Context, probabilities []float64) ([]Run, error) {
	if len(probabilities) == 0 {
		return nil, fmt.Errorf("sweep requires at least one switching probability")
	}

	baseSeed := r.base.Seed()
	runs := make([]Run, len(probabilities))

	pool := newWorkerPool(r.workers)
	for i, p := range probabilities {
		i, p := i, p
		runs[i] = Run{
			ID:                   uuid.NewString(),
			SwitchingProbability: p,
			Seed:                 baseSeed + int64(i),
		}
		pool.submit(func() {
			runs[i].Result, runs[i].Err = r.runOne(ctx, runs[i])
		})
	}
	pool.wait()

	return runs, nil
}

func (r *Runner) runOne(ctx context.Context, run Run) (result *sim.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("run %s panicked: %v", run.ID, rec)
		}
	}()

	cfg := r.base.WithSeed(run.Seed)
	cfg.SwitchingProbability = run.SwitchingProbability

	engine, err := sim.New(cfg)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(r.logger.With(logging.RunID(run.ID)))

	if r.metrics != nil {
		r.metrics.SweepRunsInFlight.Inc()
		defer r.metrics.SweepRunsInFlight.Dec()
	}

	start := time.Now()
	result, err = engine.Run(ctx)
	r.logger.Info("sweep run finished",
		logging.RunID(run.ID),
		logging.Probability(run.SwitchingProbability),
		logging.Duration("elapsed", time.Since(start)),
		logging.Error(err),
	)
	return result, err
}
