package scoring

import "sort"

// Candidate is a scenario scored on the two minimized objectives.
type Candidate struct {
	Scenario  string  `json:"scenario"`
	TotalCost float64 `json:"total_cost"`
	Bit       float64 `json:"bit"`
}

// RankedScenario is a candidate with the number of scenarios dominating it.
type RankedScenario struct {
	Scenario       string  `json:"scenario"`
	TotalCost      float64 `json:"total_cost"`
	Bit            float64 `json:"bit"`
	DominanceCount int     `json:"dominance_count"`
}

// ComputeFrontier returns the Pareto-optimal candidates in input order.
// A candidate is dominated if another candidate is <= on cost and bit and
// strictly lower on at least one.
// O(n^2) dominance check.
func ComputeFrontier(candidates []Candidate) []Candidate {
	var frontier []Candidate
	for i := range candidates {
		dominated := false
		for j := range candidates {
			if i == j {
				continue
			}
			if Dominates(candidates[j], candidates[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, candidates[i])
		}
	}
	return frontier
}

// Dominates returns true if a dominates b. Both objectives are lower-is-better.
func Dominates(a, b Candidate) bool {
	if a.TotalCost > b.TotalCost || a.Bit > b.Bit {
		return false
	}
	return a.TotalCost < b.TotalCost || a.Bit < b.Bit
}

// DominanceCount returns how many other candidates dominate candidates[i].
func DominanceCount(i int, candidates []Candidate) int {
	n := 0
	for j := range candidates {
		if i != j && Dominates(candidates[j], candidates[i]) {
			n++
		}
	}
	return n
}

// Rank orders candidates by ascending dominance count. Ties keep input order.
func Rank(candidates []Candidate) []RankedScenario {
	ranked := make([]RankedScenario, len(candidates))
	for i, c := range candidates {
		ranked[i] = RankedScenario{
			Scenario:       c.Scenario,
			TotalCost:      c.TotalCost,
			Bit:            c.Bit,
			DominanceCount: DominanceCount(i, candidates),
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].DominanceCount < ranked[b].DominanceCount
	})
	return ranked
}

// Front returns the ranked scenarios no other scenario dominates, in input order.
func Front(candidates []Candidate) []RankedScenario {
	frontier := ComputeFrontier(candidates)
	out := make([]RankedScenario, len(frontier))
	for i, c := range frontier {
		out[i] = RankedScenario{Scenario: c.Scenario, TotalCost: c.TotalCost, Bit: c.Bit}
	}
	return out
}
