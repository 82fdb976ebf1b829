package catalog

import (
	"errors"
	"fmt"
)

const (
	// SharedMediumEquipment is the pseudo-equipment carrying the fibre cost.
	SharedMediumEquipment = "Average"
	// SharedMediumBand is the band key under which fibre distance is priced.
	SharedMediumBand = "Fiber"
)

// ErrInvalid is wrapped by every catalog validation failure.
var ErrInvalid = errors.New("invalid catalog")

// Requirement is the minimum GSNR a transponder needs and what it delivers.
type Requirement struct {
	GSNRRequired float64 `yaml:"gsnr_required" json:"gsnr_required"`
	Modulation   string  `yaml:"modulation" json:"modulation"`
	DataRate     int     `yaml:"data_rate" json:"data_rate"` // Gb/s
}

// Requirements is keyed by transponder id ("TR1", "TR2", ...).
type Requirements map[string]Requirement

// CostRates is keyed by equipment type, then band.
type CostRates map[string]map[string]float64

// Rate returns the unit cost of equipment in band.
func (c CostRates) Rate(equipment, band string) (float64, bool) {
	bands, ok := c[equipment]
	if !ok {
		return 0, false
	}
	v, ok := bands[band]
	return v, ok
}

// Capacity maps band to bit-rate capacity for one scenario.
type Capacity map[string]float64

// BandQuantity is one (band, quantity) entry of an equipment line.
// For the shared medium the quantity is a distance.
type BandQuantity struct {
	Band     string  `json:"band"`
	Quantity float64 `json:"quantity"`

	link bool
}

// EquipmentLine lists the per-band quantities of one equipment type.
// Band order is significant to the cost model.
type EquipmentLine struct {
	Equipment string         `json:"equipment"`
	Bands     []BandQuantity `json:"bands"`
}

// Scenario is one candidate expansion plan.
type Scenario struct {
	ID        string          `json:"id"`
	Equipment []EquipmentLine `json:"equipment"`
	Capacity  Capacity        `json:"capacity"`
}

// Catalog bundles every static table an evaluation needs. It is read-only
// once built.
type Catalog struct {
	LinkDistance float64      `json:"link_distance"`
	Transponders Requirements `json:"transponders"`
	CostRates    CostRates    `json:"cost_rates"`
	Scenarios    []Scenario   `json:"scenarios"`
}

// Scenario looks up a scenario by id.
func (c *Catalog) Scenario(id string) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// Validate checks the cross-table consistency required before costing.
func (c *Catalog) Validate() error {
	if c.LinkDistance < 0 {
		return fmt.Errorf("%w: negative link distance %v", ErrInvalid, c.LinkDistance)
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("%w: no scenarios", ErrInvalid)
	}
	for id, req := range c.Transponders {
		if req.DataRate <= 0 {
			return fmt.Errorf("%w: transponder %s: data rate must be positive", ErrInvalid, id)
		}
	}

	seen := make(map[string]bool, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if s.ID == "" {
			return fmt.Errorf("%w: scenario without id", ErrInvalid)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate scenario %s", ErrInvalid, s.ID)
		}
		seen[s.ID] = true

		if len(s.Capacity) == 0 {
			return fmt.Errorf("%w: scenario %s: no capacity table", ErrInvalid, s.ID)
		}
		for _, line := range s.Equipment {
			if _, ok := c.CostRates[line.Equipment]; !ok {
				return fmt.Errorf("%w: scenario %s: no cost rates for equipment %q", ErrInvalid, s.ID, line.Equipment)
			}
			for _, bq := range line.Bands {
				if bq.Quantity < 0 {
					return fmt.Errorf("%w: scenario %s: negative quantity for %s/%s", ErrInvalid, s.ID, line.Equipment, bq.Band)
				}
			}
		}
	}
	return nil
}
