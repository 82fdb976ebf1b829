package eligibility

import (
	"github.com/MikeSquared-Agency/Bandplan/internal/catalog"
	"github.com/MikeSquared-Agency/Bandplan/internal/measurement"
)

// Decision records one measured-vs-required comparison.
type Decision struct {
	Band         string  `json:"band"`
	Transponder  string  `json:"transponder"`
	Channels     int     `json:"channels"`
	MeasuredGSNR float64 `json:"measured_gsnr"`
	RequiredGSNR float64 `json:"required_gsnr"`
	Eligible     bool    `json:"eligible"`
}

// Entry is a transponder configuration that meets its GSNR requirement.
type Entry struct {
	Band         string  `json:"band"`
	Transponder  string  `json:"transponder"`
	MeasuredGSNR float64 `json:"measured_gsnr"`
	RequiredGSNR float64 `json:"required_gsnr"`
	Modulation   string  `json:"modulation"`
	DataRate     int     `json:"data_rate"`
	Channels     int     `json:"channels"`
	Capacity     int     `json:"capacity"`
}

// BandEligibility holds the eligible entries of one band in group order.
type BandEligibility struct {
	Band    string  `json:"band"`
	Entries []Entry `json:"entries"`
}

// Result is the output of Filter.
type Result struct {
	Bands     []BandEligibility `json:"bands"`
	Decisions []Decision        `json:"decisions"`
}

// Filter compares each measured transponder group against its requirement.
// Groups without a requirement are skipped without a decision, and bands
// with no eligible entry are left out of Bands.
func Filter(bands []measurement.BandGroups, reqs catalog.Requirements) Result {
	var res Result
	for _, bg := range bands {
		var entries []Entry
		for _, g := range bg.Groups {
			req, ok := reqs[g.Transponder]
			if !ok {
				continue
			}
			eligible := g.GSNR >= req.GSNRRequired
			res.Decisions = append(res.Decisions, Decision{
				Band:         bg.Band,
				Transponder:  g.Transponder,
				Channels:     g.Channels,
				MeasuredGSNR: g.GSNR,
				RequiredGSNR: req.GSNRRequired,
				Eligible:     eligible,
			})
			if !eligible {
				continue
			}
			entries = append(entries, Entry{
				Band:         bg.Band,
				Transponder:  g.Transponder,
				MeasuredGSNR: g.GSNR,
				RequiredGSNR: req.GSNRRequired,
				Modulation:   req.Modulation,
				DataRate:     req.DataRate,
				Channels:     g.Channels,
				Capacity:     req.DataRate * g.Channels,
			})
		}
		if len(entries) > 0 {
			res.Bands = append(res.Bands, BandEligibility{Band: bg.Band, Entries: entries})
		}
	}
	return res
}

// Band returns the eligible entries for band.
func (r Result) Band(band string) ([]Entry, bool) {
	for _, b := range r.Bands {
		if b.Band == band {
			return b.Entries, true
		}
	}
	return nil, false
}

// EligibleCount is the number of eligible entries across all bands.
func (r Result) EligibleCount() int {
	n := 0
	for _, b := range r.Bands {
		n += len(b.Entries)
	}
	return n
}

// TotalCapacity sums the capacity of every eligible entry in band.
func (r Result) TotalCapacity(band string) int {
	entries, _ := r.Band(band)
	total := 0
	for _, e := range entries {
		total += e.Capacity
	}
	return total
}
