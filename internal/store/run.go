package store

import (
	"encoding/json"
	"fmt"

	"github.com/MikeSquared-Agency/Bandplan/internal/evaluation"
)

// NewRun converts an evaluation result into its persisted form.
func NewRun(res *evaluation.Result) (*Run, []ScenarioScore, error) {
	payload, err := json.Marshal(res)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal result: %w", err)
	}

	run := &Run{
		ID:          res.RunID,
		CreatedAt:   res.StartedAt,
		Bands:       make([]string, 0, len(res.Transponders)),
		Scenarios:   len(res.Ranking),
		BandErrors:  len(res.BandErrors),
		ParetoFront: res.FrontIDs(),
		Payload:     payload,
	}
	for _, bg := range res.Transponders {
		run.Bands = append(run.Bands, bg.Band)
	}

	front := make(map[string]bool, len(res.ParetoFront))
	for _, s := range res.ParetoFront {
		front[s.Scenario] = true
	}
	scores := make([]ScenarioScore, len(res.Ranking))
	for i, r := range res.Ranking {
		scores[i] = ScenarioScore{
			RunID:          res.RunID,
			Scenario:       r.Scenario,
			Rank:           i + 1,
			TotalCost:      r.TotalCost,
			Bit:            r.Bit,
			DominanceCount: r.DominanceCount,
			Pareto:         front[r.Scenario],
		}
	}
	return run, scores, nil
}
