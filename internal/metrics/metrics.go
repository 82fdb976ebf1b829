package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the evaluation metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	Runs                 *prometheus.CounterVec
	RunDuration          prometheus.Histogram
	SkippedLines         *prometheus.CounterVec
	EligibleTransponders *prometheus.GaugeVec
	ScenariosEvaluated   prometheus.Gauge
	ParetoFrontSize      prometheus.Gauge
}

// NewCollector registers the evaluation metrics against reg, defaulting to
// the global registry when reg is nil. Registering twice on the same
// registry reuses the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.Runs, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bandplan_runs_total",
		Help: "Evaluation runs, labeled by outcome.",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if c.RunDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bandplan_run_duration_seconds",
		Help:    "Wall time of an evaluation run.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})); err != nil {
		return nil, err
	}
	if c.SkippedLines, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bandplan_skipped_lines_total",
		Help: "Measurement lines that were not channel records, per band.",
	}, []string{"band"})); err != nil {
		return nil, err
	}
	if c.EligibleTransponders, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bandplan_eligible_transponders",
		Help: "Transponders meeting their GSNR requirement in the last run, per band.",
	}, []string{"band"})); err != nil {
		return nil, err
	}
	if c.ScenariosEvaluated, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bandplan_scenarios_evaluated",
		Help: "Scenarios ranked in the last run.",
	})); err != nil {
		return nil, err
	}
	if c.ParetoFrontSize, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bandplan_pareto_front_size",
		Help: "Scenarios on the Pareto front in the last run.",
	})); err != nil {
		return nil, err
	}
	return c, nil
}

// ObserveRun records the outcome and duration of one run.
func (c *Collector) ObserveRun(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.Runs.WithLabelValues(outcome).Inc()
	c.RunDuration.Observe(d.Seconds())
}

// Handler serves the collector's registry.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return col, nil
}
