package costing

import (
	"errors"
	"fmt"

	"github.com/MikeSquared-Agency/Bandplan/internal/catalog"
)

// ErrZeroCapacity is returned when a band's cost would be divided by a
// missing or zero capacity.
var ErrZeroCapacity = errors.New("zero capacity")

// ZeroCapacityError identifies the scenario and band lacking capacity.
type ZeroCapacityError struct {
	Scenario string
	Band     string
}

func (e *ZeroCapacityError) Error() string {
	return fmt.Sprintf("scenario %s band %s: %v", e.Scenario, e.Band, ErrZeroCapacity)
}

func (e *ZeroCapacityError) Unwrap() error { return ErrZeroCapacity }

// ScenarioMetric pairs a scenario's total cost with its cost per bit.
// Both are lower-is-better.
type ScenarioMetric struct {
	Scenario  string  `json:"scenario"`
	TotalCost float64 `json:"total_cost"`
	Bit       float64 `json:"bit"`
}

// Normalize sums cost/capacity over the scenario's bands. The shared-medium
// entry carries no throughput and is never divided.
func Normalize(cost ScenarioCost, capacity catalog.Capacity) (ScenarioMetric, error) {
	m := ScenarioMetric{Scenario: cost.Scenario, TotalCost: cost.TotalCost}
	for _, b := range cost.Bands {
		if b.Band == catalog.SharedMediumBand {
			continue
		}
		c := capacity[b.Band]
		if c == 0 {
			return ScenarioMetric{}, &ZeroCapacityError{Scenario: cost.Scenario, Band: b.Band}
		}
		m.Bit += b.Cost / c
	}
	return m, nil
}
