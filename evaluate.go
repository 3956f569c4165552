package orbel

import (
	"fmt"
	"math"
	"strings"

	kitlog "github.com/go-kit/log"
)

// View selects how the two-body state is expressed.
type View uint8

const (
	// Relative keeps the primary fixed at the focus (the origin).
	Relative View = iota + 1
	// Absolute puts the barycenter at the origin.
	Absolute
)

func (v View) String() string {
	switch v {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	}
	return fmt.Sprintf("view(%d)", uint8(v))
}

// ParseView returns the view from its name.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "relative", "rel":
		return Relative, nil
	case "absolute", "abs", "barycentric":
		return Absolute, nil
	}
	return 0, fmt.Errorf("unknown view '%s'", s)
}

// StateVectors are positions (AU) and velocities (AU/yr) in the reference frame.
// In the Relative view Body1 is the origin and Body2 equals Relative; in the Absolute view
// m1·Body1 + m2·Body2 = 0 and Body2 - Body1 = Relative.
type StateVectors struct {
	Relative, RelativeVelocity []float64
	Body1, Body1Velocity       []float64
	Body2, Body2Velocity       []float64
}

// Evaluation is the full result of an evaluation at a given time.
type Evaluation struct {
	Time      float64 // elapsed years
	View      View
	Anomalies AnomalyTriple
	Solution  KeplerSolution
	State     StateVectors
	Frame     OrientationFrame
	// Warnings holds non-fatal conditions (ErrSolverNonConvergence, ErrDegenerateGeometry).
	Warnings []error
}

// Evaluator evaluates two-body states. It holds no mutable state and is safe for
// concurrent use.
type Evaluator struct {
	solver         KeplerSolver
	logger         kitlog.Logger
	metrics        *Metrics
	omegaIsPrimary bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used to report solver warnings.
func WithLogger(l kitlog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = l
	}
}

// WithMetrics records every evaluation in m.
func WithMetrics(m *Metrics) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// WithSolver overrides the DefaultKeplerSolver. A solver without a positive tolerance and
// iteration cap is ignored.
func WithSolver(k KeplerSolver) Option {
	return func(e *Evaluator) {
		e.solver = k
	}
}

// WithOmegaIsPrimary declares that ω is the argument of periapsis of the primary, which is
// the convention of some binary star catalogs: the relative orbit then uses ω + π.
func WithOmegaIsPrimary(primary bool) Option {
	return func(e *Evaluator) {
		e.omegaIsPrimary = primary
	}
}

// NewEvaluator returns an evaluator with the default solver and a nop logger.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{solver: DefaultKeplerSolver, logger: kitlog.NewNopLogger()}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = kitlog.NewNopLogger()
	}
	return e
}

// kepler returns the configured solver, or DefaultKeplerSolver if it cannot iterate.
func (ev *Evaluator) kepler() KeplerSolver {
	if ev.solver.MaxIterations <= 0 || !(ev.solver.Tolerance > 0) {
		return DefaultKeplerSolver
	}
	return ev.solver
}

func (ev *Evaluator) log(keyvals ...interface{}) {
	if ev.logger == nil {
		return
	}
	ev.logger.Log(keyvals...)
}

var defaultEvaluator = NewEvaluator()

// Evaluate uses the default evaluator, cf. Evaluator.Evaluate.
func Evaluate(el OrbitalElements, m MassPair, t float64, view View) (*Evaluation, error) {
	return defaultEvaluator.Evaluate(el, m, t, view)
}

// Frame returns the orientation frame used for these elements, honoring WithOmegaIsPrimary.
func (ev *Evaluator) Frame(el OrbitalElements) OrientationFrame {
	ω := el.ω
	if ev.omegaIsPrimary {
		ω += math.Pi
	}
	return NewOrientationFrame(el.i, ω, el.Ω)
}

// Evaluate returns the state of the system after t years (t may be negative).
// Any input outside of its domain returns an ErrInvalidElements error and no evaluation.
func (ev *Evaluator) Evaluate(el OrbitalElements, m MassPair, t float64, view View) (*Evaluation, error) {
	rslt, err := ev.evaluate(el, m, t, view)
	ev.metrics.observe(view, rslt, err)
	return rslt, err
}

func (ev *Evaluator) evaluate(el OrbitalElements, m MassPair, t float64, view View) (*Evaluation, error) {
	if err := el.Validate(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, invalid("t", t, "is not finite")
	}
	if view != Relative && view != Absolute {
		return nil, invalid("view", float64(view), "is unknown")
	}

	M := MeanAnomalyAt(el.a, m.Total(), el.M0, t)
	anomalies, sol := NewAnomalyTriple(M, el.e, ev.kepler())
	rslt := &Evaluation{Time: t, View: view, Anomalies: anomalies, Solution: sol, Frame: ev.Frame(el)}
	if err := sol.Err(); err != nil {
		ev.log("level", "warning", "subsys", "kepler", "t", t, "M", M, "e", el.e, "err", err)
		rslt.Warnings = append(rslt.Warnings, err)
	}
	if rslt.Frame.Degenerate {
		rslt.Warnings = append(rslt.Warnings, fmt.Errorf("%w: line of nodes undefined for i=%f", ErrDegenerateGeometry, Rad2deg(el.i)))
	}

	R := rslt.Frame.ToReference(PlanePosition(el.a, el.e, anomalies.True))
	V := rslt.Frame.ToReference(PlaneVelocity(el.a, el.e, anomalies.True, m.Mu()))
	s := StateVectors{Relative: R, RelativeVelocity: V}
	switch view {
	case Relative:
		s.Body1, s.Body1Velocity = []float64{0, 0, 0}, []float64{0, 0, 0}
		s.Body2 = append([]float64(nil), R...)
		s.Body2Velocity = append([]float64(nil), V...)
	case Absolute:
		s.Body1, s.Body2 = m.Decompose(R)
		s.Body1Velocity, s.Body2Velocity = m.Decompose(V)
	}
	rslt.State = s
	return rslt, nil
}
