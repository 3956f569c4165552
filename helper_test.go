package orbel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func vectorsEqual(a, b []float64) bool {
	return vectorsEqualWithin(a, b, 1e-9)
}

func vectorsEqualWithin(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !scalar.EqualWithinAbsOrRel(a[i], b[i], tol, tol) {
			return false
		}
	}
	return true
}

// anglesEqual returns whether two angles in radians are equal, modulo 2π.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Mod(math.Abs(a-b), 2*math.Pi)
	if diff < 1e-9 || 2*math.Pi-diff < 1e-9 {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10f degrees", Rad2deg(diff))
}

// dot performs the inner product via mat/BLAS.
func dot(a, b []float64) float64 {
	return mat.Dot(mat.NewVecDense(len(a), a), mat.NewVecDense(len(b), b))
}

func mustElementsDeg(a, e, i, ω, Ω, M0 float64) OrbitalElements {
	el, err := NewOrbitalElementsDeg(a, e, i, ω, Ω, M0)
	if err != nil {
		panic(err)
	}
	return el
}
