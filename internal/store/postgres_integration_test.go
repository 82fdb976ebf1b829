//go:build integration

package store

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE bandplan_runs CASCADE")
		s.Close()
	})

	return s
}

func TestSaveAndGetRun(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	run := &Run{
		ID:          uuid.New(),
		Bands:       []string{"C", "L"},
		Scenarios:   2,
		ParetoFront: []string{"A"},
		Payload:     json.RawMessage(`{"run_id":"x"}`),
	}
	scores := []ScenarioScore{
		{Scenario: "A", Rank: 1, TotalCost: 10, Bit: 1e-9, Pareto: true},
		{Scenario: "B", Rank: 2, TotalCost: 12, Bit: 2e-9, DominanceCount: 1},
	}

	if err := s.SaveRun(ctx, run, scores); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if run.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected run, got nil")
	}
	if len(got.Bands) != 2 || got.ParetoFront[0] != "A" {
		t.Errorf("unexpected run %+v", got)
	}
	if len(got.Payload) == 0 {
		t.Error("expected payload")
	}

	gotScores, err := s.GetScenarioScores(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetScenarioScores failed: %v", err)
	}
	if len(gotScores) != 2 || gotScores[0].Scenario != "A" || !gotScores[0].Pareto {
		t.Errorf("unexpected scores %+v", gotScores)
	}

	runs, err := s.ListRuns(ctx, RunFilter{})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Payload != nil {
		t.Errorf("expected one summary without payload, got %+v", runs)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := setupTestDB(t)
	got, err := s.GetRun(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing run, got %+v", got)
	}
}
