package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MikeSquared-Agency/Bandplan/internal/evaluation"
)

var rule = strings.Repeat("#", 100)

// Write renders the human-readable evaluation report.
func Write(w io.Writer, res *evaluation.Result) error {
	r := &writer{w: w}

	r.section("Available transponders")
	if len(res.Eligibility.Bands) == 0 {
		r.printf("  no transponder meets its GSNR requirement\n")
	}
	for _, b := range res.Eligibility.Bands {
		r.printf("Band %s:\n", b.Band)
		tw := tabwriter.NewWriter(r, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  Transponder\tChannels\tGSNR\tRequired\tModulation\tRate (Gb/s)\tCapacity (Gb/s)")
		for _, e := range b.Entries {
			fmt.Fprintf(tw, "  %s\t%d\t%.2f\t%.2f\t%s\t%d\t%d\n",
				e.Transponder, e.Channels, e.MeasuredGSNR, e.RequiredGSNR, e.Modulation, e.DataRate, e.Capacity)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		r.printf("  total capacity: %d Gb/s\n", res.Eligibility.TotalCapacity(b.Band))
	}
	for _, be := range res.BandErrors {
		r.printf("  band %s skipped (%s): %s\n", be.Band, be.Source, be.Error)
	}

	r.section("Relative cost per scenario")
	for _, c := range res.Costs {
		parts := make([]string, len(c.Bands))
		for i, b := range c.Bands {
			parts[i] = fmt.Sprintf("%s=%.2f", b.Band, b.Cost)
		}
		r.printf("Scenario %s: total relative cost = %.2f  [%s]\n", c.Scenario, c.TotalCost, strings.Join(parts, " "))
	}

	r.section("Relative cost per bit")
	for _, m := range res.Metrics {
		r.printf("Scenario %s - Bit: %v\n", m.Scenario, m.Bit)
	}

	r.section("Scenarios by dominance (best to worst)")
	for _, s := range res.Ranking {
		r.printf("Scenario: %s, Dominance Count: %d\n", s.Scenario, s.DominanceCount)
	}

	r.section("Pareto front")
	for _, s := range res.ParetoFront {
		r.printf("Scenario %s: Total Cost = %v, BIT = %v\n", s.Scenario, s.TotalCost, s.Bit)
	}
	r.printf("\n%s\n", rule)
	return r.err
}

// writer remembers the first write error so the report body stays linear.
type writer struct {
	w   io.Writer
	err error
}

func (r *writer) Write(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.w.Write(p)
	r.err = err
	return n, err
}

func (r *writer) printf(format string, args ...interface{}) {
	fmt.Fprintf(r, format, args...)
}

func (r *writer) section(title string) {
	r.printf("\n%s\n\n%s:\n\n", rule, title)
}
