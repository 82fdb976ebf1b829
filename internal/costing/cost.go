package costing

import (
	"github.com/MikeSquared-Agency/Bandplan/internal/catalog"
)

// BandCost is the relative cost attributed to one band.
type BandCost struct {
	Band string  `json:"band"`
	Cost float64 `json:"cost"`
}

// ScenarioCost is the relative deployment cost of one scenario. Bands are
// kept in order of first appearance in the plan.
type ScenarioCost struct {
	Scenario  string     `json:"scenario"`
	TotalCost float64    `json:"total_cost"`
	Bands     []BandCost `json:"bands"`
}

// Band returns the cost attributed to band.
func (s ScenarioCost) Band(band string) (float64, bool) {
	for _, b := range s.Bands {
		if b.Band == band {
			return b.Cost, true
		}
	}
	return 0, false
}

// Unfolded reports whether the shared-medium cost is still listed on its own.
// That happens only when no equipment spans two bands.
func (s ScenarioCost) Unfolded() bool {
	_, ok := s.Band(catalog.SharedMediumBand)
	return ok
}

// Aggregate prices a scenario plan. Equipment without rates is skipped and a
// band without a rate costs nothing. The shared-medium cost is folded into
// the scenario's second band, see FoldSharedMedium.
func Aggregate(sc catalog.Scenario, rates catalog.CostRates) ScenarioCost {
	res := ScenarioCost{Scenario: sc.ID}
	index := make(map[string]int)
	var secondBand string

	for _, line := range sc.Equipment {
		if _, ok := rates[line.Equipment]; !ok {
			continue
		}
		for i, bq := range line.Bands {
			rate, _ := rates.Rate(line.Equipment, bq.Band)
			cost := bq.Quantity * rate
			res.TotalCost += cost

			if j, ok := index[bq.Band]; ok {
				res.Bands[j].Cost += cost
			} else {
				index[bq.Band] = len(res.Bands)
				res.Bands = append(res.Bands, BandCost{Band: bq.Band, Cost: cost})
			}

			if i == 1 {
				secondBand = bq.Band
			}
		}
	}

	res.Bands = FoldSharedMedium(res.Bands, secondBand)
	return res
}

// FoldSharedMedium moves the shared-medium cost onto secondBand, the band
// found at position 1 of the last equipment line that had one. Without a
// shared-medium entry or a second band the input is returned as is. The
// input slice is never modified.
func FoldSharedMedium(bands []BandCost, secondBand string) []BandCost {
	if secondBand == "" {
		return bands
	}
	fiber := -1
	for i, b := range bands {
		if b.Band == catalog.SharedMediumBand {
			fiber = i
			break
		}
	}
	if fiber < 0 {
		return bands
	}

	shared := bands[fiber].Cost
	out := make([]BandCost, 0, len(bands)-1)
	for _, b := range bands {
		if b.Band == secondBand {
			b.Cost += shared
		}
		if b.Band == catalog.SharedMediumBand {
			continue
		}
		out = append(out, b)
	}
	return out
}
