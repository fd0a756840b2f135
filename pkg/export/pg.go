package export

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/cluso-diffusion/pkg/sim"
)

// PGSink persists run results to PostgreSQL: one row per run plus one row
// per snapshot per technology, so downstream tooling can chart market share
// straight from SQL.
type PGSink struct {
	pool *pgxpool.Pool
}

// NewPGSink connects to the database and ensures the schema exists.
func NewPGSink(ctx context.Context, databaseURL string) (*PGSink, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGSink{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

func (s *PGSink) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS diffusion_runs (
			id TEXT PRIMARY KEY,
			population_size INT NOT NULL,
			attachment_m INT NOT NULL,
			technology_count INT NOT NULL,
			early_adopters_per_technology INT NOT NULL,
			switching_probability DOUBLE PRECISION NOT NULL,
			iterations INT NOT NULL,
			seed BIGINT NOT NULL,
			duration_ms BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS diffusion_samples (
			run_id TEXT NOT NULL REFERENCES diffusion_runs(id) ON DELETE CASCADE,
			iteration INT NOT NULL,
			technology INT NOT NULL,
			adopters INT NOT NULL,
			PRIMARY KEY (run_id, iteration, technology)
		);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// StoreResult writes one run and its full series under the given run ID.
func (s *PGSink) StoreResult(ctx context.Context, runID string, result *sim.Result) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO diffusion_runs
			(id, population_size, attachment_m, technology_count,
			 early_adopters_per_technology, switching_probability,
			 iterations, seed, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		runID,
		result.Config.PopulationSize,
		result.Config.AttachmentM,
		result.Config.TechnologyCount,
		result.Config.EarlyAdoptersPerTech,
		result.Config.SwitchingProbability,
		result.Config.Iterations,
		result.Seed,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to store run %s: %w", runID, err)
	}

	batch := &pgx.Batch{}
	for _, snap := range result.Series {
		for tech, count := range snap.Counts {
			batch.Queue(`
				INSERT INTO diffusion_samples (run_id, iteration, technology, adopters)
				VALUES ($1, $2, $3, $4)
			`, runID, snap.Iteration, tech, count)
		}
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to store samples for run %s: %w", runID, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *PGSink) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (s *PGSink) Close() error {
	s.pool.Close()
	return nil
}
