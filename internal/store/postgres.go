package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS bandplan_runs (
	run_id       UUID PRIMARY KEY,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	bands        TEXT[] NOT NULL DEFAULT '{}',
	scenarios    INT NOT NULL,
	band_errors  INT NOT NULL DEFAULT 0,
	pareto_front TEXT[] NOT NULL DEFAULT '{}',
	result       JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS bandplan_scenario_scores (
	run_id          UUID NOT NULL REFERENCES bandplan_runs(run_id) ON DELETE CASCADE,
	scenario        TEXT NOT NULL,
	rank            INT NOT NULL,
	total_cost      DOUBLE PRECISION NOT NULL,
	bit             DOUBLE PRECISION NOT NULL,
	dominance_count INT NOT NULL,
	pareto          BOOLEAN NOT NULL,
	PRIMARY KEY (run_id, scenario)
);`

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const runColumns = `run_id, created_at, bands, scenarios, band_errors, pareto_front`

// SaveRun writes the run and its per-scenario scores in one transaction.
func (s *PostgresStore) SaveRun(ctx context.Context, run *Run, scores []ScenarioScore) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO bandplan_runs (run_id, bands, scenarios, band_errors, pareto_front, result)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		run.ID, run.Bands, run.Scenarios, run.BandErrors, run.ParetoFront, []byte(run.Payload),
	).Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, sc := range scores {
		batch.Queue(`
			INSERT INTO bandplan_scenario_scores (run_id, scenario, rank, total_cost, bit, dominance_count, pareto)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			run.ID, sc.Scenario, sc.Rank, sc.TotalCost, sc.Bit, sc.DominanceCount, sc.Pareto)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert scenario scores: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	r := &Run{}
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT `+runColumns+`, result
		FROM bandplan_runs WHERE run_id = $1`, id,
	).Scan(&r.ID, &r.CreatedAt, &r.Bands, &r.Scenarios, &r.BandErrors, &r.ParetoFront, &payload)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.Payload = payload
	return r, nil
}

// ListRuns returns run summaries, newest first, without payloads.
func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]*Run, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+runColumns+`
		FROM bandplan_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r := &Run{}
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Bands, &r.Scenarios, &r.BandErrors, &r.ParetoFront); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *PostgresStore) GetScenarioScores(ctx context.Context, runID uuid.UUID) ([]ScenarioScore, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT run_id, scenario, rank, total_cost, bit, dominance_count, pareto
		FROM bandplan_scenario_scores WHERE run_id = $1
		ORDER BY rank`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []ScenarioScore
	for rows.Next() {
		var sc ScenarioScore
		if err := rows.Scan(&sc.RunID, &sc.Scenario, &sc.Rank, &sc.TotalCost, &sc.Bit, &sc.DominanceCount, &sc.Pareto); err != nil {
			return nil, err
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}
