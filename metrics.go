package orbel

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects evaluation and solver statistics.
type Metrics struct {
	evaluations      *prometheus.CounterVec
	nonConvergences  prometheus.Counter
	degenerate       prometheus.Counter
	solverIterations prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg, unless reg is nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orbel",
				Name:      "evaluations_total",
				Help:      "Number of state evaluations, by view and outcome",
			},
			[]string{"view", "outcome"},
		),
		nonConvergences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orbel",
			Name:      "kepler_nonconvergence_total",
			Help:      "Number of Kepler solves which hit the iteration cap",
		}),
		degenerate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orbel",
			Name:      "degenerate_geometry_total",
			Help:      "Number of evaluations with an undefined line of nodes",
		}),
		solverIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orbel",
			Name:      "kepler_iterations",
			Help:      "Newton-Raphson iterations per Kepler solve",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 20, 50},
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.evaluations, m.nonConvergences, m.degenerate, m.solverIterations} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observe(view View, ev *Evaluation, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.evaluations.WithLabelValues(view.String(), "invalid").Inc()
		return
	}
	m.evaluations.WithLabelValues(view.String(), "ok").Inc()
	m.solverIterations.Observe(float64(ev.Solution.Iterations))
	if !ev.Solution.Converged {
		m.nonConvergences.Inc()
	}
	if ev.Frame.Degenerate {
		m.degenerate.Inc()
	}
}
