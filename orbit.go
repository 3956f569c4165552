package orbel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	eccentricityε = 5e-5
	angleε        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
	distanceε     = 1e-9                         // in AU
)

// OrbitalElements defines an elliptical orbit via its classical elements. It is an immutable
// value: build it with NewOrbitalElements or NewOrbitalElementsDeg, which canonicalize
// the angles and validate the shape.
type OrbitalElements struct {
	a, e, i, ω, Ω, M0 float64
}

// NewOrbitalElements returns the canonical elements (angles in radians).
// The inclination is brought into [0, π]; when this flips the plane, Ω and ω are
// rotated by π so that the geometry is unchanged.
func NewOrbitalElements(a, e, i, ω, Ω, M0 float64) (OrbitalElements, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{{"a", a}, {"e", e}, {"i", i}, {"ω", ω}, {"Ω", Ω}, {"M0", M0}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return OrbitalElements{}, invalid(v.name, v.val, "is not finite")
		}
	}
	if a <= 0 {
		return OrbitalElements{}, invalid("a", a, "must be strictly positive")
	}
	if e < 0 || e >= 1 {
		return OrbitalElements{}, invalid("e", e, "must be in [0, 1) (parabolic and hyperbolic orbits are not supported)")
	}
	i = WrapAngle(i)
	if i > math.Pi {
		i = twoPi - i
		ω += math.Pi
		Ω += math.Pi
	}
	return OrbitalElements{a, e, i, WrapAngle(ω), WrapAngle(Ω), WrapAngle(M0)}, nil
}

// NewOrbitalElementsDeg is NewOrbitalElements with angles in degrees.
func NewOrbitalElementsDeg(a, e, i, ω, Ω, M0 float64) (OrbitalElements, error) {
	return NewOrbitalElements(a, e, i*deg2rad, ω*deg2rad, Ω*deg2rad, M0*deg2rad)
}

// StartFromTrueAnomaly returns a copy of the elements whose starting mean anomaly
// corresponds to the true anomaly ν0.
func StartFromTrueAnomaly(o OrbitalElements, ν0 float64) OrbitalElements {
	o.M0 = TrueToMean(ν0, o.e)
	return o
}

// Validate checks that the elements are in their domain. The zero value is invalid.
func (o OrbitalElements) Validate() error {
	if o.a <= 0 || math.IsNaN(o.a) || math.IsInf(o.a, 0) {
		return invalid("a", o.a, "must be strictly positive")
	}
	if o.e < 0 || o.e >= 1 || math.IsNaN(o.e) {
		return invalid("e", o.e, "must be in [0, 1)")
	}
	return nil
}

// SemiMajorAxis returns a.
func (o OrbitalElements) SemiMajorAxis() float64 { return o.a }

// Eccentricity returns e.
func (o OrbitalElements) Eccentricity() float64 { return o.e }

// Inclination returns i in [0, π].
func (o OrbitalElements) Inclination() float64 { return o.i }

// ArgPeriapsis returns ω.
func (o OrbitalElements) ArgPeriapsis() float64 { return o.ω }

// AscendingNode returns Ω.
func (o OrbitalElements) AscendingNode() float64 { return o.Ω }

// MeanAnomaly0 returns the mean anomaly at t = 0.
func (o OrbitalElements) MeanAnomaly0() float64 { return o.M0 }

// SemiParameter returns the semi-latus rectum p.
func (o OrbitalElements) SemiParameter() float64 {
	return o.a * (1 - o.e*o.e)
}

// Apoapsis returns the apoapsis distance.
func (o OrbitalElements) Apoapsis() float64 {
	return o.a * (1 + o.e)
}

// Periapsis returns the periapsis distance.
func (o OrbitalElements) Periapsis() float64 {
	return o.a * (1 - o.e)
}

// Tildeω returns the longitude of periapsis.
func (o OrbitalElements) Tildeω() float64 {
	return WrapAngle(o.ω + o.Ω)
}

// Retrograde returns whether the motion is clockwise as seen from +z.
func (o OrbitalElements) Retrograde() bool {
	return o.i > math.Pi/2
}

// Frame returns the orientation frame of these elements.
func (o OrbitalElements) Frame() OrientationFrame {
	return NewOrientationFrame(o.i, o.ω, o.Ω)
}

// RNorm returns the orbital radius at the true anomaly ν.
func (o OrbitalElements) RNorm(ν float64) float64 {
	return o.SemiParameter() / (1 + o.e*math.Cos(ν))
}

// PlanePosition returns the perifocal (PQW) position at true anomaly ν, with the periapsis
// along the first axis. No rotation is applied.
func PlanePosition(a, e, ν float64) []float64 {
	sinν, cosν := math.Sincos(ν)
	r := a * (1 - e*e) / (1 + e*cosν)
	return []float64{r * cosν, r * sinν, 0}
}

// PlaneVelocity returns the perifocal (PQW) velocity at true anomaly ν for the gravitational
// parameter μ.
func PlaneVelocity(a, e, ν, μ float64) []float64 {
	sinν, cosν := math.Sincos(ν)
	h := math.Sqrt(μ / (a * (1 - e*e)))
	return []float64{-h * sinν, h * (e + cosν), 0}
}

// String implements the stringer interface (hence the value receiver)
func (o OrbitalElements) String() string {
	return fmt.Sprintf("a=%.4f e=%.4f i=%.3f Ω=%.3f ω=%.3f M0=%.3f", o.a, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ω), Rad2deg(o.M0))
}

// Equals returns whether two sets of elements describe the same orbit, regardless of phase.
func (o OrbitalElements) Equals(o1 OrbitalElements) bool {
	if !scalar.EqualWithinAbs(o.a, o1.a, distanceε) || !scalar.EqualWithinAbs(o.e, o1.e, eccentricityε) {
		return false
	}
	if !anglesClose(o.i, o1.i) || !anglesClose(o.Ω, o1.Ω) {
		return false
	}
	// ω is undefined on circular orbits.
	return o.e < eccentricityε || anglesClose(o.ω, o1.ω)
}

func anglesClose(a, b float64) bool {
	diff := math.Abs(WrapAngle(a) - WrapAngle(b))
	return diff < angleε || math.Abs(diff-twoPi) < angleε
}
