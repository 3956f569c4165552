package orbel

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	deg2rad = math.Pi / 180
	twoPi   = 2 * math.Pi
)

// norm returns the norm of a given vector which is supposed to be 3x1.
func norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// unit returns the unit vector of a given vector.
func unit(a []float64) (b []float64) {
	n := norm(a)
	if scalar.EqualWithinAbs(n, 0, 1e-12) {
		return []float64{0, 0, 0}
	}
	b = make([]float64, len(a))
	for i, val := range a {
		b[i] = val / n
	}
	return
}

// cross performs the cross product.
func cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]}
}

// scale returns s*v in a new slice.
func scale(s float64, v []float64) []float64 {
	o := make([]float64, len(v))
	for i, val := range v {
		o[i] = s * val
	}
	return o
}

// WrapAngle returns the provided angle (in radians) wrapped into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		// -tiny + 2π rounds up to 2π
		a = 0
	}
	return a
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	return WrapAngle(a * deg2rad)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	return math.Mod(WrapAngle(a)/deg2rad, 360)
}
