package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Run is a persisted evaluation. Payload holds the full JSON result.
type Run struct {
	ID          uuid.UUID       `json:"run_id"`
	CreatedAt   time.Time       `json:"created_at"`
	Bands       []string        `json:"bands"`
	Scenarios   int             `json:"scenarios"`
	BandErrors  int             `json:"band_errors"`
	ParetoFront []string        `json:"pareto_front"`
	Payload     json.RawMessage `json:"result,omitempty"`
}

type RunFilter struct {
	Limit  int
	Offset int
}

type ScenarioScore struct {
	RunID          uuid.UUID `json:"run_id"`
	Scenario       string    `json:"scenario"`
	Rank           int       `json:"rank"`
	TotalCost      float64   `json:"total_cost"`
	Bit            float64   `json:"bit"`
	DominanceCount int       `json:"dominance_count"`
	Pareto         bool      `json:"pareto"`
}

type Store interface {
	EnsureSchema(ctx context.Context) error

	SaveRun(ctx context.Context, run *Run, scores []ScenarioScore) error
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
	GetScenarioScores(ctx context.Context, runID uuid.UUID) ([]ScenarioScore, error)

	Close() error
}
