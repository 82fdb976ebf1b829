package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Bandplan/internal/costing"
	"github.com/MikeSquared-Agency/Bandplan/internal/eligibility"
	"github.com/MikeSquared-Agency/Bandplan/internal/evaluation"
	"github.com/MikeSquared-Agency/Bandplan/internal/scoring"
)

func sampleResult() *evaluation.Result {
	return &evaluation.Result{
		BandErrors: []evaluation.BandError{{Band: "S2", Source: "bandS2.txt", Error: "line 4: bad gsnr"}},
		Eligibility: eligibility.Result{
			Bands: []eligibility.BandEligibility{{
				Band: "C",
				Entries: []eligibility.Entry{
					{Band: "C", Transponder: "TR1", MeasuredGSNR: 18.4, RequiredGSNR: 9.8, Modulation: "PM-QPSK", DataRate: 100, Channels: 64, Capacity: 6400},
					{Band: "C", Transponder: "TR3", MeasuredGSNR: 17, RequiredGSNR: 16.55, Modulation: "PM-16QAM", DataRate: 400, Channels: 10, Capacity: 4000},
				},
			}},
		},
		Costs: []costing.ScenarioCost{
			{Scenario: "A", TotalCost: 21133.8, Bands: []costing.BandCost{{Band: "C", Cost: 8652.4}, {Band: "L", Cost: 12481.4}}},
		},
		Metrics: []costing.ScenarioMetric{{Scenario: "A", TotalCost: 21133.8, Bit: 1.15e-09}},
		Ranking: []scoring.RankedScenario{
			{Scenario: "A", TotalCost: 21133.8, Bit: 1.15e-09},
			{Scenario: "B", TotalCost: 30000, Bit: 2e-09, DominanceCount: 1},
		},
		ParetoFront: []scoring.RankedScenario{{Scenario: "A", TotalCost: 21133.8, Bit: 1.15e-09}},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult()))
	out := buf.String()

	for _, want := range []string{
		"Available transponders:",
		"Band C:",
		"TR3",
		"total capacity: 10400 Gb/s",
		"band S2 skipped (bandS2.txt): line 4: bad gsnr",
		"Scenario A: total relative cost = 21133.80  [C=8652.40 L=12481.40]",
		"Scenario A - Bit: 1.15e-09",
		"Scenario: B, Dominance Count: 1",
		"Scenario A: Total Cost = 21133.8, BIT = 1.15e-09",
	} {
		assert.Contains(t, out, want)
	}

	// Sections appear in pipeline order.
	idx := func(s string) int { return strings.Index(out, s) }
	assert.Less(t, idx("Available transponders"), idx("Relative cost per scenario"))
	assert.Less(t, idx("Relative cost per bit"), idx("Scenarios by dominance"))
	assert.Less(t, idx("Scenarios by dominance"), idx("Pareto front"))
}

func TestWriteNoEligibleTransponders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &evaluation.Result{}))
	assert.Contains(t, buf.String(), "no transponder meets its GSNR requirement")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReturnsWriteError(t *testing.T) {
	err := Write(failingWriter{}, sampleResult())
	require.Error(t, err)
	assert.Equal(t, "disk full", err.Error())
}
