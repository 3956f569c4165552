package orbel

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestSkyProjection(t *testing.T) {
	v := []float64{1, 2, 3}
	if p := SkyProjection(v); p.East != 2 || p.North != 1 {
		t.Fatalf("projection is %+v", p)
	}
	if LineOfSight(v) != 3 {
		t.Fatal("incorrect line of sight component")
	}
	rslt, err := Evaluate(mustElementsDeg(1, 0, 90, 0, 90, 0), MassPair{1, 1}, 0, Absolute)
	if err != nil {
		t.Fatal(err)
	}
	// The node is due east, so is the periapsis of a circular orbit with ω = 0.
	s1, s2 := rslt.Sky()
	if !scalar.EqualWithinAbs(s1.East, -0.5, 1e-12) || !scalar.EqualWithinAbs(s2.East, 0.5, 1e-12) {
		t.Fatalf("body1=%+v body2=%+v", s1, s2)
	}
	if !scalar.EqualWithinAbs(s1.North, 0, 1e-12) || !scalar.EqualWithinAbs(s2.North, 0, 1e-12) {
		t.Fatalf("body1=%+v body2=%+v", s1, s2)
	}
}

func TestNodes(t *testing.T) {
	asc, desc := NodeAnomalies(math.Pi / 2)
	if !scalar.EqualWithinAbs(asc, 3*math.Pi/2, 1e-15) || !scalar.EqualWithinAbs(desc, math.Pi/2, 1e-15) {
		t.Fatalf("asc=%f desc=%f", asc, desc)
	}
	ev := NewEvaluator()
	el := mustElementsDeg(1, 0.5, 45, 90, 90, 0)
	f := el.Frame()
	ascPt, descPt, ok := ev.NodePoints(el)
	if !ok {
		t.Fatal("nodes should be defined")
	}
	if !scalar.EqualWithinAbs(ascPt[2], 0, 1e-12) || !scalar.EqualWithinAbs(descPt[2], 0, 1e-12) {
		t.Fatalf("nodes are not in the reference plane: %v %v", ascPt, descPt)
	}
	if !vectorsEqual(unit(ascPt), f.N) || !vectorsEqual(unit(descPt), scale(-1, f.N)) {
		t.Fatalf("nodes are not on the line of nodes: %v %v (N=%v)", ascPt, descPt, f.N)
	}
	// The secondary rises through the reference plane at the ascending node.
	νAsc, _ := NodeAnomalies(el.ArgPeriapsis())
	if v := f.ToReference(PlaneVelocity(1, 0.5, νAsc, 1)); v[2] <= 0 {
		t.Fatalf("velocity at the ascending node is %v", v)
	}
	if _, _, ok := ev.NodePoints(mustElementsDeg(1, 0.5, 0, 90, 90, 0)); ok {
		t.Fatal("nodes should be undefined for an equatorial orbit")
	}
}

func TestPeriapsisPointAndOmegaArc(t *testing.T) {
	ev := NewEvaluator()
	el := mustElementsDeg(2, 0.4, 30, 60, 10, 0)
	peri := ev.PeriapsisPoint(el)
	if !scalar.EqualWithinAbs(norm(peri), el.Periapsis(), 1e-12) || !vectorsEqual(unit(peri), el.Frame().P) {
		t.Fatalf("periapsis at %v", peri)
	}
	arc := ev.OmegaArc(el, 20)
	if len(arc) != 20 {
		t.Fatalf("got %d points", len(arc))
	}
	asc, _, _ := ev.NodePoints(el)
	if !vectorsEqual(arc[0], asc) || !vectorsEqual(arc[19], peri) {
		t.Fatalf("arc goes from %v to %v", arc[0], arc[19])
	}
	if ev.OmegaArc(mustElementsDeg(2, 0.4, 30, 0, 10, 0), 20) != nil {
		t.Fatal("no arc expected when ω = 0")
	}
	if ev.OmegaArc(el, 1) != nil {
		t.Fatal("an arc needs at least two points")
	}
}

func TestNodeArc(t *testing.T) {
	arc := NodeArc(math.Pi/2, 2, 3)
	exp := [][]float64{{2, 0, 0}, {math.Sqrt2, math.Sqrt2, 0}, {0, 2, 0}}
	for k := range exp {
		if !vectorsEqual(arc[k], exp[k]) {
			t.Fatalf("point #%d is %v instead of %v", k, arc[k], exp[k])
		}
	}
	if NodeArc(2*math.Pi, 2, 3) != nil {
		t.Fatal("no arc expected when Ω = 0")
	}
}

func TestInclinationWedge(t *testing.T) {
	i := Deg2rad(40)
	f := NewOrientationFrame(i, 0, math.Pi/2)
	wedge := InclinationWedge(f, i, 3, 5)
	if len(wedge) != 5 {
		t.Fatalf("got %d points", len(wedge))
	}
	for k, p := range wedge {
		if !scalar.EqualWithinAbs(norm(p), 3, 1e-12) {
			t.Fatalf("point #%d not on the rim: %v", k, p)
		}
		if !scalar.EqualWithinAbs(dot(p, f.N), 0, 1e-12) {
			t.Fatalf("point #%d not perpendicular to the line of nodes: %v", k, p)
		}
	}
	if !scalar.EqualWithinAbs(wedge[0][2], 0, 1e-12) {
		t.Fatalf("the wedge should start in the reference plane: %v", wedge[0])
	}
	if !scalar.EqualWithinAbs(dot(wedge[4], f.W), 0, 1e-12) {
		t.Fatalf("the wedge should end in the orbital plane: %v", wedge[4])
	}
	if InclinationWedge(NewOrientationFrame(0, 0, 0), 0, 3, 5) != nil {
		t.Fatal("no wedge expected for a degenerate frame")
	}
}

func TestCurve(t *testing.T) {
	ev := NewEvaluator()
	el := mustElementsDeg(1.5, 0.6, 70, 200, 300, 0)
	m := MassPair{1, 0.25}
	c, err := ev.Curve(el, m, Absolute, 73)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Relative) != 73 || len(c.Body1) != 73 || len(c.Body2) != 73 {
		t.Fatal("incorrect number of points")
	}
	if !vectorsEqual(c.Relative[0], ev.PeriapsisPoint(el)) || !vectorsEqual(c.Relative[0], c.Relative[72]) {
		t.Fatal("the curve should start and end at the periapsis")
	}
	for k, r := range c.Relative {
		if n := norm(r); n > ExtentRadius(el)+1e-12 {
			t.Fatalf("point #%d beyond the extent radius: %f", k, n)
		}
		if !vectorsEqual(c.Body2[k], scale(0.8, r)) {
			t.Fatalf("point #%d: body2 is %v", k, c.Body2[k])
		}
	}
	rel, err := ev.Curve(el, m, Relative, 10)
	if err != nil || rel.Body1 != nil || rel.Body2 != nil {
		t.Fatalf("relative curve: %+v %v", rel, err)
	}
	if _, err := ev.Curve(el, m, Relative, 1); !errors.Is(err, ErrInvalidElements) {
		t.Fatalf("expected ErrInvalidElements, got %v", err)
	}
	if _, err := ev.Curve(el, MassPair{}, Relative, 10); !errors.Is(err, ErrInvalidElements) {
		t.Fatalf("expected ErrInvalidElements, got %v", err)
	}
}
