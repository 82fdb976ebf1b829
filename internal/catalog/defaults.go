package catalog

// DefaultLinkDistance is the length of the studied link, in km.
const DefaultLinkDistance = 837

// Default returns the reference tables of the C+L/S expansion study. Plans
// whose name ends in F deploy a new fibre of linkDistance.
func Default(linkDistance float64) *Catalog {
	return &Catalog{
		LinkDistance: linkDistance,
		Transponders: Requirements{
			"TR1": {GSNRRequired: 9.8, Modulation: "PM-QPSK", DataRate: 100},
			"TR2": {GSNRRequired: 16.55, Modulation: "PM-16QAM", DataRate: 200},
			"TR3": {GSNRRequired: 16.55, Modulation: "PM-16QAM", DataRate: 400},
			"TR4": {GSNRRequired: 22.5, Modulation: "PM-64QAM", DataRate: 400},
			"TR5": {GSNRRequired: 16.55, Modulation: "PM-16QAM", DataRate: 800},
			"TR6": {GSNRRequired: 19.5, Modulation: "PM-32QAM", DataRate: 800},
			"TR7": {GSNRRequired: 22.5, Modulation: "PM-64QAM", DataRate: 800},
		},
		CostRates: CostRates{
			"Amplifier":           {"C": 1, "C1": 1, "L": 1.2, "S1": 1.8, "S2": 1.8},
			"Mux/Demux":           {"C": 0.4, "C1": 0.4, "L": 0.4, "S1": 0.4, "S2": 0.4},
			"WSS":                 {"C": 5, "C1": 5, "L": 6, "S1": 9, "S2": 9},
			"Transponder":         {"C": 36, "C1": 36, "L": 43.2, "S1": 64.8, "S2": 64.8},
			SharedMediumEquipment: {SharedMediumBand: 0.5},
		},
		Scenarios: []Scenario{
			twoBand("A", "L", plan{0, 13, 6, 8, 2, 2, 240, 288}, 0, 12e12, 28.8e12),
			twoBand("B", "L", plan{0, 13, 6, 8, 2, 2, 240, 320}, 0, 24e12, 16e12),
			twoBand("C", "L", plan{0, 13, 6, 4, 2, 2, 240, 160}, 0, 24e12, 16e12),
			twoBand("D", "L", plan{0, 13, 4, 8, 2, 2, 126, 300}, 0, 25.2e12, 15e12),
			twoBand("E", "L", plan{0, 13, 4, 4, 2, 2, 126, 160}, 0, 25.2e12, 16e12),
			twoBand("F", "S1", plan{0, 13, 8, 8, 2, 2, 252, 296}, 0, 25.2e12, 14.8e12),
			twoBand("G", "S2", plan{0, 13, 6, 8, 2, 2, 240, 320}, 0, 24e12, 16e12),
			twoBand("H", "S1", plan{0, 13, 4, 8, 2, 2, 126, 296}, 0, 25.2e12, 14.8e12),
			twoBand("I", "S2", plan{0, 13, 4, 8, 2, 2, 126, 296}, 0, 25.2e12, 14.8e12),
			twoBand("JF", "C1", plan{0, 13, 6, 4, 2, 2, 240, 160}, linkDistance, 24e12, 16e12),
			twoBand("KF", "C1", plan{0, 13, 4, 2, 2, 2, 126, 74}, linkDistance, 25.2e12, 14.8e12),
			twoBand("LF", "L", plan{0, 13, 6, 4, 2, 2, 240, 160}, linkDistance, 24e12, 16e12),
			twoBand("MF", "L", plan{0, 13, 4, 8, 2, 2, 126, 300}, linkDistance, 25.2e12, 15e12),
			twoBand("NF", "L", plan{0, 13, 4, 4, 2, 2, 126, 160}, linkDistance, 25.2e12, 16e12),
			twoBand("OF", "S1", plan{0, 13, 4, 8, 2, 2, 126, 296}, linkDistance, 25.2e12, 14.8e12),
			twoBand("PF", "S2", plan{0, 13, 4, 8, 2, 2, 126, 296}, linkDistance, 25.2e12, 14.8e12),
		},
	}
}

// plan holds C/extra quantities for amplifiers, mux/demux, WSS and
// transponders, in that order.
type plan [8]float64

func twoBand(id, extra string, p plan, fiber, capC, capExtra float64) Scenario {
	pair := func(c, x float64) []BandQuantity {
		return []BandQuantity{{Band: "C", Quantity: c}, {Band: extra, Quantity: x}}
	}
	return Scenario{
		ID: id,
		Equipment: []EquipmentLine{
			{Equipment: "Amplifier", Bands: pair(p[0], p[1])},
			{Equipment: "Mux/Demux", Bands: pair(p[2], p[3])},
			{Equipment: "WSS", Bands: pair(p[4], p[5])},
			{Equipment: "Transponder", Bands: pair(p[6], p[7])},
			{Equipment: SharedMediumEquipment, Bands: []BandQuantity{{Band: SharedMediumBand, Quantity: fiber}}},
		},
		// The shared-medium placeholder of 1 is never divided by.
		Capacity: Capacity{"C": capC, extra: capExtra, SharedMediumBand: 1},
	}
}
