package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Bandplan/internal/catalog"
	"github.com/MikeSquared-Agency/Bandplan/internal/costing"
	"github.com/MikeSquared-Agency/Bandplan/internal/eligibility"
	"github.com/MikeSquared-Agency/Bandplan/internal/hermes"
	"github.com/MikeSquared-Agency/Bandplan/internal/measurement"
	"github.com/MikeSquared-Agency/Bandplan/internal/metrics"
	"github.com/MikeSquared-Agency/Bandplan/internal/scoring"
)

// BandError records a band that could not be measured. Other bands are
// still evaluated.
type BandError struct {
	Band   string `json:"band"`
	Source string `json:"source,omitempty"`
	Error  string `json:"error"`
}

// Result is the structured outcome of one evaluation run.
type Result struct {
	RunID        uuid.UUID                `json:"run_id"`
	StartedAt    time.Time                `json:"started_at"`
	Duration     time.Duration            `json:"duration"`
	Transponders []measurement.BandGroups `json:"transponders"`
	BandErrors   []BandError              `json:"band_errors,omitempty"`
	Eligibility  eligibility.Result       `json:"eligibility"`
	Costs        []costing.ScenarioCost   `json:"costs"`
	Metrics      []costing.ScenarioMetric `json:"metrics"`
	Ranking      []scoring.RankedScenario `json:"ranking"`
	ParetoFront  []scoring.RankedScenario `json:"pareto_front"`
}

// FrontIDs lists the scenario ids on the Pareto front.
func (r *Result) FrontIDs() []string {
	ids := make([]string, len(r.ParetoFront))
	for i, s := range r.ParetoFront {
		ids[i] = s.Scenario
	}
	return ids
}

// Evaluator runs the full evaluation against one catalog. The publisher and
// collector are optional.
type Evaluator struct {
	catalog   *catalog.Catalog
	publisher hermes.Client
	metrics   *metrics.Collector
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an Evaluator.
func New(c *catalog.Catalog, publisher hermes.Client, m *metrics.Collector, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		catalog:   c,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// Run evaluates the measured bands and every catalog scenario. Band
// failures are recorded in the result; catalog and capacity errors abort the
// run before ranking.
func (e *Evaluator) Run(ctx context.Context, inputs []measurement.BandInput) (*Result, error) {
	return e.execute(ctx, inputs, nil)
}

// RunFiles reads each band report and evaluates it. A file that cannot be
// read is recorded as a band error and the run goes on.
func (e *Evaluator) RunFiles(ctx context.Context, paths []string) (*Result, error) {
	var inputs []measurement.BandInput
	var failed []BandError
	for _, path := range paths {
		in, err := measurement.ReadBandFile(path)
		if err != nil {
			failed = append(failed, BandError{Band: in.Band, Source: path, Error: err.Error()})
			continue
		}
		inputs = append(inputs, in)
	}
	return e.execute(ctx, inputs, failed)
}

func (e *Evaluator) execute(ctx context.Context, inputs []measurement.BandInput, failed []BandError) (*Result, error) {
	res := &Result{RunID: uuid.New(), StartedAt: e.now()}
	logger := e.logger.With("run_id", res.RunID.String())

	for _, be := range failed {
		logger.Error("band file unreadable", "band", be.Band, "source", be.Source, "error", be.Error)
		e.addBandError(logger, res, be)
	}

	if err := e.run(ctx, logger, res, inputs); err != nil {
		res.Duration = e.now().Sub(res.StartedAt)
		e.metrics.ObserveRun("error", res.Duration)
		e.publish(logger, hermes.SubjectRunFailed(res.RunID.String()), hermes.RunFailedEvent{
			RunID:     res.RunID.String(),
			Error:     err.Error(),
			Timestamp: e.now(),
		})
		return nil, err
	}

	res.Duration = e.now().Sub(res.StartedAt)
	e.metrics.ObserveRun("ok", res.Duration)
	e.publish(logger, hermes.SubjectRunCompleted(res.RunID.String()), hermes.RunCompletedEvent{
		RunID:       res.RunID.String(),
		Bands:       len(res.Transponders),
		Scenarios:   len(res.Ranking),
		ParetoFront: res.FrontIDs(),
		DurationMs:  res.Duration.Milliseconds(),
		Timestamp:   e.now(),
	})
	logger.Info("evaluation complete",
		"bands", len(res.Transponders),
		"band_errors", len(res.BandErrors),
		"scenarios", len(res.Ranking),
		"pareto_front", res.FrontIDs(),
	)
	return res, nil
}

func (e *Evaluator) run(ctx context.Context, logger *slog.Logger, res *Result, inputs []measurement.BandInput) error {
	if err := e.catalog.Validate(); err != nil {
		return err
	}

	e.measure(logger, res, inputs)
	if err := ctx.Err(); err != nil {
		return err
	}

	res.Eligibility = eligibility.Filter(res.Transponders, e.catalog.Transponders)
	e.reportDecisions(logger, res)

	candidates := make([]scoring.Candidate, 0, len(e.catalog.Scenarios))
	for _, sc := range e.catalog.Scenarios {
		cost := costing.Aggregate(sc, e.catalog.CostRates)
		if cost.Unfolded() {
			logger.Warn("shared-medium cost left unfolded: no equipment spans two bands", "scenario", sc.ID)
		}
		m, err := costing.Normalize(cost, sc.Capacity)
		if err != nil {
			return fmt.Errorf("normalize: %w", err)
		}
		logger.Debug("scenario costed", "scenario", sc.ID, "total_cost", cost.TotalCost, "bit", m.Bit)

		res.Costs = append(res.Costs, cost)
		res.Metrics = append(res.Metrics, m)
		candidates = append(candidates, scoring.Candidate{Scenario: m.Scenario, TotalCost: m.TotalCost, Bit: m.Bit})
	}

	res.Ranking = scoring.Rank(candidates)
	res.ParetoFront = scoring.Front(candidates)

	if e.metrics != nil {
		e.metrics.ScenariosEvaluated.Set(float64(len(res.Ranking)))
		e.metrics.ParetoFrontSize.Set(float64(len(res.ParetoFront)))
	}
	return nil
}

func (e *Evaluator) measure(logger *slog.Logger, res *Result, inputs []measurement.BandInput) {
	for _, in := range inputs {
		bg, stats, err := measurement.Aggregate(in)
		if e.metrics != nil {
			e.metrics.SkippedLines.WithLabelValues(in.Band).Add(float64(stats.Skipped))
		}
		if err != nil {
			logger.Error("band measurement failed", "band", in.Band, "source", in.Source, "error", err)
			e.addBandError(logger, res, BandError{Band: in.Band, Source: in.Source, Error: err.Error()})
			continue
		}
		logger.Info("band measured",
			"band", in.Band,
			"records", stats.Records,
			"skipped", stats.Skipped,
			"transponders", len(bg.Groups),
		)
		if len(bg.Groups) == 0 {
			continue
		}
		res.Transponders = append(res.Transponders, bg)
	}
}

func (e *Evaluator) addBandError(logger *slog.Logger, res *Result, be BandError) {
	res.BandErrors = append(res.BandErrors, be)
	e.publish(logger, hermes.SubjectRunBandFailed(res.RunID.String()), hermes.BandFailedEvent{
		RunID:  res.RunID.String(),
		Band:   be.Band,
		Source: be.Source,
		Error:  be.Error,
	})
}

func (e *Evaluator) reportDecisions(logger *slog.Logger, res *Result) {
	for _, d := range res.Eligibility.Decisions {
		logger.Info("transponder decision",
			"band", d.Band,
			"transponder", d.Transponder,
			"channels", d.Channels,
			"gsnr", d.MeasuredGSNR,
			"gsnr_required", d.RequiredGSNR,
			"eligible", d.Eligible,
		)
		e.publish(logger, hermes.SubjectRunEligibility(res.RunID.String()), hermes.EligibilityDecisionEvent{
			RunID:        res.RunID.String(),
			Band:         d.Band,
			Transponder:  d.Transponder,
			Channels:     d.Channels,
			MeasuredGSNR: d.MeasuredGSNR,
			RequiredGSNR: d.RequiredGSNR,
			Eligible:     d.Eligible,
		})
	}

	if e.metrics == nil {
		return
	}
	for _, bg := range res.Transponders {
		entries, _ := res.Eligibility.Band(bg.Band)
		e.metrics.EligibleTransponders.WithLabelValues(bg.Band).Set(float64(len(entries)))
	}
}

func (e *Evaluator) publish(logger *slog.Logger, subject string, event interface{}) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(subject, event); err != nil {
		logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
