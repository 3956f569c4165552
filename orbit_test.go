package orbel

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"pgregory.net/rapid"
)

func TestOrbitalElementsValidation(t *testing.T) {
	for _, tc := range []struct {
		field   string
		a, e, i float64
	}{
		{"a", 0, 0.1, 0},
		{"a", -1, 0.1, 0},
		{"a", math.Inf(1), 0.1, 0},
		{"e", 1, 1, 0},
		{"e", 1, 1.5, 0},
		{"e", 1, -0.1, 0},
		{"e", 1, math.NaN(), 0},
		{"i", 1, 0.1, math.NaN()},
	} {
		_, err := NewOrbitalElements(tc.a, tc.e, tc.i, 0, 0, 0)
		if !errors.Is(err, ErrInvalidElements) {
			t.Fatalf("expected ErrInvalidElements for a=%f e=%f i=%f, got %v", tc.a, tc.e, tc.i, err)
		}
		var ierr *InvalidElementsError
		if !errors.As(err, &ierr) || ierr.Field != tc.field {
			t.Fatalf("expected the error to be about %s, got %v", tc.field, err)
		}
	}
	if err := (OrbitalElements{}).Validate(); !errors.Is(err, ErrInvalidElements) {
		t.Fatal("the zero value should be invalid")
	}
	el, err := NewOrbitalElements(1, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("circular equatorial orbit should be valid: %s", err)
	}
	if err := el.Validate(); err != nil {
		t.Fatalf("unexpected error %s", err)
	}
}

func TestOrbitalElementsCanonical(t *testing.T) {
	el := mustElementsDeg(2, 0.3, 270, 30, 40, 400)
	if !scalar.EqualWithinAbs(Rad2deg(el.Inclination()), 90, 1e-9) {
		t.Fatalf("i=%f", Rad2deg(el.Inclination()))
	}
	if !scalar.EqualWithinAbs(Rad2deg(el.ArgPeriapsis()), 210, 1e-9) || !scalar.EqualWithinAbs(Rad2deg(el.AscendingNode()), 220, 1e-9) {
		t.Fatalf("ω=%f Ω=%f", Rad2deg(el.ArgPeriapsis()), Rad2deg(el.AscendingNode()))
	}
	if !scalar.EqualWithinAbs(Rad2deg(el.MeanAnomaly0()), 40, 1e-9) {
		t.Fatalf("M0=%f", Rad2deg(el.MeanAnomaly0()))
	}
	raw := NewOrientationFrame(Deg2rad(270), Deg2rad(30), Deg2rad(40))
	if !mat.EqualApprox(raw.Rotation(), el.Frame().Rotation(), 1e-12) {
		t.Fatal("canonicalization changed the geometry")
	}
	neg := mustElementsDeg(2, 0.3, -30, 10, 20, 0)
	if !scalar.EqualWithinAbs(Rad2deg(neg.Inclination()), 30, 1e-9) {
		t.Fatalf("i=%f", Rad2deg(neg.Inclination()))
	}
	if !mat.EqualApprox(NewOrientationFrame(Deg2rad(-30), Deg2rad(10), Deg2rad(20)).Rotation(), neg.Frame().Rotation(), 1e-12) {
		t.Fatal("canonicalization of a negative inclination changed the geometry")
	}
}

func TestOrbitalElementsCanonicalProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		i := rapid.Float64Range(-720, 720).Draw(t, "i")
		ω := rapid.Float64Range(-720, 720).Draw(t, "ω")
		Ω := rapid.Float64Range(-720, 720).Draw(t, "Ω")
		el := mustElementsDeg(1, 0.5, i, ω, Ω, 0)
		if el.Inclination() < 0 || el.Inclination() > math.Pi {
			t.Fatalf("i=%f out of [0, π]", el.Inclination())
		}
		for _, a := range []float64{el.ArgPeriapsis(), el.AscendingNode(), el.MeanAnomaly0()} {
			if a < 0 || a >= 2*math.Pi {
				t.Fatalf("angle %f out of [0, 2π)", a)
			}
		}
		raw := NewOrientationFrame(i*deg2rad, ω*deg2rad, Ω*deg2rad)
		if !mat.EqualApprox(raw.Rotation(), el.Frame().Rotation(), 1e-9) {
			t.Fatal("canonicalization changed the geometry")
		}
	})
}

func TestOrbitalElementsShape(t *testing.T) {
	el := mustElementsDeg(2, 0.5, 10, 20, 30, 0)
	if el.SemiParameter() != 1.5 || el.Periapsis() != 1 || el.Apoapsis() != 3 {
		t.Fatalf("p=%f rp=%f ra=%f", el.SemiParameter(), el.Periapsis(), el.Apoapsis())
	}
	if el.RNorm(0) != el.Periapsis() || !scalar.EqualWithinAbs(el.RNorm(math.Pi), el.Apoapsis(), 1e-12) {
		t.Fatal("RNorm does not match the apsides")
	}
	if !scalar.EqualWithinAbs(Rad2deg(el.Tildeω()), 50, 1e-9) {
		t.Fatalf("ϖ=%f", Rad2deg(el.Tildeω()))
	}
	if el.Retrograde() || !mustElementsDeg(1, 0, 120, 0, 0, 0).Retrograde() {
		t.Fatal("incorrect direction of motion")
	}
	if el.String() == "" {
		t.Fatal("empty string")
	}
}

func TestPlanePosition(t *testing.T) {
	if r := PlanePosition(1, 0.5, 0); !vectorsEqual(r, []float64{0.5, 0, 0}) {
		t.Fatalf("periapsis at %v", r)
	}
	if r := PlanePosition(1, 0.5, math.Pi); !vectorsEqual(r, []float64{-1.5, 0, 0}) {
		t.Fatalf("apoapsis at %v", r)
	}
	if r := PlanePosition(2, 0, math.Pi/2); !vectorsEqual(r, []float64{0, 2, 0}) {
		t.Fatalf("circular orbit at %v", r)
	}
}

func TestPlaneVelocity(t *testing.T) {
	μ := GravitationalConstant
	if v := PlaneVelocity(1, 0, 0, μ); !vectorsEqual(v, []float64{0, 2 * math.Pi, 0}) {
		t.Fatalf("the Earth should move at 2π AU/yr, got %v", v)
	}
	for _, e := range []float64{0, 0.3, 0.8} {
		for ν := 0.0; ν < 2*math.Pi; ν += 0.3 {
			r := PlanePosition(1.7, e, ν)
			v := PlaneVelocity(1.7, e, ν, μ)
			// vis-viva
			if exp := μ * (2/norm(r) - 1/1.7); !scalar.EqualWithinRel(dot(v, v), exp, 1e-12) {
				t.Fatalf("v²=%f instead of %f (e=%f ν=%f)", dot(v, v), exp, e, ν)
			}
			// angular momentum is constant
			if h := cross(r, v)[2]; !scalar.EqualWithinRel(h, math.Sqrt(μ*1.7*(1-e*e)), 1e-12) {
				t.Fatalf("h=%f (e=%f ν=%f)", h, e, ν)
			}
		}
	}
}

func TestOrbitalElementsEquals(t *testing.T) {
	a := mustElementsDeg(1, 0.2, 10, 20, 30, 0)
	if !a.Equals(mustElementsDeg(1, 0.2, 10, 20, 30, 180)) {
		t.Fatal("the phase should not matter")
	}
	if a.Equals(mustElementsDeg(1, 0.2, 10, 25, 30, 0)) {
		t.Fatal("ω differs")
	}
	if a.Equals(mustElementsDeg(1.1, 0.2, 10, 20, 30, 0)) {
		t.Fatal("a differs")
	}
	if !mustElementsDeg(1, 0, 10, 20, 30, 0).Equals(mustElementsDeg(1, 0, 10, 80, 30, 0)) {
		t.Fatal("ω is irrelevant on circular orbits")
	}
	if !mustElementsDeg(1, 0.2, 10, 359.9999, 30, 0).Equals(mustElementsDeg(1, 0.2, 10, 0, 30, 0)) {
		t.Fatal("angles should be compared modulo 2π")
	}
}

func TestStartFromTrueAnomaly(t *testing.T) {
	el := StartFromTrueAnomaly(mustElementsDeg(1, 0.6, 10, 20, 30, 0), Deg2rad(100))
	if ok, err := anglesEqual(MeanToTrue(el.MeanAnomaly0(), el.Eccentricity()), Deg2rad(100)); !ok {
		t.Fatal(err)
	}
}
