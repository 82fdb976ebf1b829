package catalog

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// linkKeyword as a quantity stands for the configured link distance.
const linkKeyword = "link"

type fileCatalog struct {
	LinkDistance *float64     `yaml:"link_distance"`
	Transponders Requirements `yaml:"transponders"`
	CostRates    CostRates    `yaml:"cost_rates"`
	Scenarios    scenarioList `yaml:"scenarios"`
}

type fileScenario struct {
	Equipment equipmentList `yaml:"equipment"`
	Capacity  Capacity      `yaml:"capacity"`
}

// scenarioList, equipmentList and bandList decode YAML mappings while
// keeping document order. Duplicate keys are rejected.
type scenarioList []Scenario

type equipmentList []EquipmentLine

type bandList []BandQuantity

// Load reads a catalog from a YAML file. linkDistance is used unless the
// file sets link_distance itself.
func Load(path string, linkDistance float64) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, linkDistance)
}

// Parse decodes catalog YAML. Quantities written as "link" resolve to the
// link distance.
func Parse(data []byte, linkDistance float64) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		LinkDistance: linkDistance,
		Transponders: fc.Transponders,
		CostRates:    fc.CostRates,
		Scenarios:    []Scenario(fc.Scenarios),
	}
	if fc.LinkDistance != nil {
		c.LinkDistance = *fc.LinkDistance
	}
	if c.Transponders == nil {
		c.Transponders = Requirements{}
	}
	if c.CostRates == nil {
		c.CostRates = CostRates{}
	}

	for i := range c.Scenarios {
		for j := range c.Scenarios[i].Equipment {
			bands := c.Scenarios[i].Equipment[j].Bands
			for k := range bands {
				if bands[k].link {
					bands[k].Quantity = c.LinkDistance
					bands[k].link = false
				}
			}
		}
	}
	return c, nil
}

func (l *scenarioList) UnmarshalYAML(node *yaml.Node) error {
	return eachPair(node, func(key string, value *yaml.Node) error {
		var fs fileScenario
		if err := value.Decode(&fs); err != nil {
			return fmt.Errorf("scenario %s: %w", key, err)
		}
		*l = append(*l, Scenario{
			ID:        key,
			Equipment: []EquipmentLine(fs.Equipment),
			Capacity:  fs.Capacity,
		})
		return nil
	})
}

func (l *equipmentList) UnmarshalYAML(node *yaml.Node) error {
	return eachPair(node, func(key string, value *yaml.Node) error {
		var bands bandList
		if err := value.Decode(&bands); err != nil {
			return fmt.Errorf("equipment %s: %w", key, err)
		}
		*l = append(*l, EquipmentLine{Equipment: key, Bands: []BandQuantity(bands)})
		return nil
	})
}

func (l *bandList) UnmarshalYAML(node *yaml.Node) error {
	return eachPair(node, func(key string, value *yaml.Node) error {
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("band %s: line %d: expected a number", key, value.Line)
		}
		if value.Value == linkKeyword {
			*l = append(*l, BandQuantity{Band: key, link: true})
			return nil
		}
		q, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return fmt.Errorf("band %s: line %d: %w", key, value.Line, err)
		}
		*l = append(*l, BandQuantity{Band: key, Quantity: q})
		return nil
	})
}

func eachPair(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if seen[key.Value] {
			return fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)
		}
		seen[key.Value] = true
		if err := fn(key.Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
