package catalog

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Marshal renders c in the format Parse reads. Shared-medium quantities
// equal to the link distance are written as "link".
func Marshal(c *Catalog) ([]byte, error) {
	scenarios := make(scenarioList, len(c.Scenarios))
	for i, sc := range c.Scenarios {
		lines := make([]EquipmentLine, len(sc.Equipment))
		for j, line := range sc.Equipment {
			bands := make([]BandQuantity, len(line.Bands))
			for k, bq := range line.Bands {
				bq.link = line.Equipment == SharedMediumEquipment &&
					bq.Band == SharedMediumBand &&
					bq.Quantity != 0 && bq.Quantity == c.LinkDistance
				bands[k] = bq
			}
			lines[j] = EquipmentLine{Equipment: line.Equipment, Bands: bands}
		}
		scenarios[i] = Scenario{ID: sc.ID, Equipment: lines, Capacity: sc.Capacity}
	}

	distance := c.LinkDistance
	out, err := yaml.Marshal(fileCatalog{
		LinkDistance: &distance,
		Transponders: c.Transponders,
		CostRates:    c.CostRates,
		Scenarios:    scenarios,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	return out, nil
}

func (l scenarioList) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, sc := range l {
		var v yaml.Node
		if err := v.Encode(fileScenario{Equipment: equipmentList(sc.Equipment), Capacity: sc.Capacity}); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.ID, err)
		}
		node.Content = append(node.Content, scalar(sc.ID), &v)
	}
	return node, nil
}

func (l equipmentList) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, line := range l {
		bands := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
		for _, bq := range line.Bands {
			v := strconv.FormatFloat(bq.Quantity, 'g', -1, 64)
			if bq.link {
				v = linkKeyword
			}
			bands.Content = append(bands.Content, scalar(bq.Band), scalar(v))
		}
		node.Content = append(node.Content, scalar(line.Equipment), bands)
	}
	return node, nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}
