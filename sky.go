package orbel

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SkyPoint is a position on the plane of the sky. The reference x axis points north, the y
// axis points east and +z is the line of sight.
type SkyPoint struct {
	East, North float64
}

// SkyProjection projects a reference frame vector onto the plane of the sky.
func SkyProjection(v []float64) SkyPoint {
	return SkyPoint{East: v[1], North: v[0]}
}

// LineOfSight returns the component of v along the line of sight, e.g. the radial velocity
// when v is a velocity.
func LineOfSight(v []float64) float64 {
	return v[2]
}

// Sky returns the sky-plane positions of both bodies.
func (e *Evaluation) Sky() (body1, body2 SkyPoint) {
	return SkyProjection(e.State.Body1), SkyProjection(e.State.Body2)
}

// ExtentRadius returns the largest separation reached on the relative orbit, which is
// what a renderer needs to size its axes.
func ExtentRadius(el OrbitalElements) float64 {
	return el.Apoapsis()
}

// NodeAnomalies returns the true anomalies of the ascending and descending nodes for the
// argument of periapsis ω.
func NodeAnomalies(ω float64) (asc, desc float64) {
	return WrapAngle(-ω), WrapAngle(math.Pi - ω)
}

// relativeAt returns the relative position at true anomaly ν in the reference frame.
func relativeAt(el OrbitalElements, f OrientationFrame, ν float64) []float64 {
	return f.ToReference(PlanePosition(el.a, el.e, ν))
}

func (ev *Evaluator) effectiveω(el OrbitalElements) float64 {
	if ev.omegaIsPrimary {
		return WrapAngle(el.ω + math.Pi)
	}
	return el.ω
}

// PeriapsisPoint returns the position of the periapsis on the relative orbit.
func (ev *Evaluator) PeriapsisPoint(el OrbitalElements) []float64 {
	return relativeAt(el, ev.Frame(el), 0)
}

// NodePoints returns the positions of the ascending and descending nodes on the relative
// orbit. Both lie in the reference plane; ok is false when the line of nodes is undefined.
func (ev *Evaluator) NodePoints(el OrbitalElements) (asc, desc []float64, ok bool) {
	f := ev.Frame(el)
	if f.Degenerate {
		return nil, nil, false
	}
	νAsc, νDesc := NodeAnomalies(ev.effectiveω(el))
	return relativeAt(el, f, νAsc), relativeAt(el, f, νDesc), true
}

// OmegaArc returns n points of the relative orbit going from the ascending node to the
// periapsis in the direction of motion, i.e. the arc spanned by ω.
func (ev *Evaluator) OmegaArc(el OrbitalElements, n int) [][]float64 {
	ω := ev.effectiveω(el)
	if n < 2 || ω < angleε {
		return nil
	}
	f := ev.Frame(el)
	νAsc, _ := NodeAnomalies(ω)
	θs := floats.Span(make([]float64, n), 0, ω)
	pts := make([][]float64, n)
	for k, θ := range θs {
		pts[k] = relativeAt(el, f, νAsc+θ)
	}
	return pts
}

// NodeArc returns n points in the reference plane at the given radius, from the x axis
// (north) to the ascending node, i.e. the arc spanned by Ω.
func NodeArc(Ω, radius float64, n int) [][]float64 {
	Ω = WrapAngle(Ω)
	if n < 2 || Ω < angleε {
		return nil
	}
	θs := floats.Span(make([]float64, n), 0, Ω)
	pts := make([][]float64, n)
	for k, θ := range θs {
		s, c := math.Sincos(θ)
		pts[k] = []float64{radius * c, radius * s, 0}
	}
	return pts
}

// InclinationWedge returns the rim of the wedge between the reference plane and the orbital
// plane, rotating about the line of nodes from 0 to i. The wedge apex is the origin.
// It returns nil when the line of nodes is undefined.
func InclinationWedge(f OrientationFrame, i, radius float64, n int) [][]float64 {
	if f.Degenerate || n < 2 {
		return nil
	}
	k := []float64{0, 0, 1}
	e1 := unit(cross(f.N, k))
	e2 := cross(f.N, e1)
	θs := floats.Span(make([]float64, n), 0, i)
	pts := make([][]float64, n)
	for j, θ := range θs {
		s, c := math.Sincos(θ)
		pts[j] = []float64{
			radius * (c*e1[0] + s*e2[0]),
			radius * (c*e1[1] + s*e2[1]),
			radius * (c*e1[2] + s*e2[2]),
		}
	}
	return pts
}

// OrbitCurve is a closed polyline of the orbit(s), the first point being the periapsis.
type OrbitCurve struct {
	Relative     [][]float64
	Body1, Body2 [][]float64 // barycentric orbits, only set in the Absolute view
}

// Curve samples n points (n >= 2) of the orbit in true anomaly.
func (ev *Evaluator) Curve(el OrbitalElements, m MassPair, view View, n int) (OrbitCurve, error) {
	if err := el.Validate(); err != nil {
		return OrbitCurve{}, err
	}
	if err := m.Validate(); err != nil {
		return OrbitCurve{}, err
	}
	if n < 2 {
		return OrbitCurve{}, invalid("samples", float64(n), "must be at least 2")
	}
	if view != Relative && view != Absolute {
		return OrbitCurve{}, invalid("view", float64(view), "is unknown")
	}
	f := ev.Frame(el)
	c := OrbitCurve{Relative: make([][]float64, n)}
	if view == Absolute {
		c.Body1 = make([][]float64, n)
		c.Body2 = make([][]float64, n)
	}
	for k, ν := range floats.Span(make([]float64, n), 0, twoPi) {
		c.Relative[k] = relativeAt(el, f, ν)
		if view == Absolute {
			c.Body1[k], c.Body2[k] = m.Decompose(c.Relative[k])
		}
	}
	return c, nil
}
