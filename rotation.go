package orbel

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// degenerateε is the threshold on |sin i| below which the line of nodes is undefined.
	degenerateε = 1e-12
)

// R3R1R3 performs a 3-1-3 Euler parameter rotation.
// This is the passive (frame) rotation; its transpose maps PQW to the reference frame.
// From Schaub and Junkins.
func R3R1R3(θ1, θ2, θ3 float64) *mat.Dense {
	sθ1, cθ1 := math.Sincos(θ1)
	sθ2, cθ2 := math.Sincos(θ2)
	sθ3, cθ3 := math.Sincos(θ3)
	return mat.NewDense(3, 3, []float64{cθ3*cθ1 - sθ3*cθ2*sθ1, cθ3*sθ1 + sθ3*cθ2*cθ1, sθ3 * sθ2,
		-sθ3*cθ1 - cθ3*cθ2*sθ1, -sθ3*sθ1 + cθ3*cθ2*cθ1, cθ3 * sθ2,
		sθ2 * sθ1, -sθ2 * cθ1, cθ2})
}

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v []float64) []float64 {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(len(v), v))
	return []float64{rVec.AtVec(0), rVec.AtVec(1), rVec.AtVec(2)}
}

// OrientationFrame is the orbital frame expressed in the reference frame, where x points
// north, y points east and z is the line of sight.
type OrientationFrame struct {
	P []float64 // periapsis direction
	Q []float64 // semi-latus rectum direction
	W []float64 // orbit normal
	N []float64 // ascending node direction
	// Degenerate is set when the orbital plane is the reference plane: N is then the x axis.
	Degenerate bool
	rot        *mat.Dense
}

// NewOrientationFrame returns the frame for the inclination i, the argument of periapsis ω
// and the longitude of the ascending node Ω (all in radians).
// The rotation is Rz(Ω)·Rx(i)·Rz(ω), applied right to left.
func NewOrientationFrame(i, ω, Ω float64) OrientationFrame {
	rot := mat.DenseCopyOf(R3R1R3(Ω, i, ω).T())
	f := OrientationFrame{
		P:   []float64{rot.At(0, 0), rot.At(1, 0), rot.At(2, 0)},
		Q:   []float64{rot.At(0, 1), rot.At(1, 1), rot.At(2, 1)},
		W:   []float64{rot.At(0, 2), rot.At(1, 2), rot.At(2, 2)},
		rot: rot,
	}
	if math.Abs(math.Sin(i)) < degenerateε {
		f.Degenerate = true
		f.N = []float64{1, 0, 0}
	} else {
		f.N = unit(cross([]float64{0, 0, 1}, f.W))
	}
	return f
}

// Rotation returns a copy of the PQW to reference frame rotation matrix.
func (f OrientationFrame) Rotation() *mat.Dense {
	return mat.DenseCopyOf(f.rot)
}

// ToReference rotates a perifocal (PQW) vector into the reference frame.
func (f OrientationFrame) ToReference(v []float64) []float64 {
	return MxV33(f.rot, v)
}
