package orbel

import (
	"fmt"
	"math"
)

// MassPair holds the masses of the primary (m1) and of the secondary (m2), in solar masses.
type MassPair struct {
	M1, M2 float64
}

// Validate returns an ErrInvalidElements error unless both masses are strictly positive.
func (m MassPair) Validate() error {
	if !(m.M1 > 0) || math.IsInf(m.M1, 0) {
		return invalid("m1", m.M1, "must be strictly positive")
	}
	if !(m.M2 > 0) || math.IsInf(m.M2, 0) {
		return invalid("m2", m.M2, "must be strictly positive")
	}
	return nil
}

// Total returns m1 + m2.
func (m MassPair) Total() float64 {
	return m.M1 + m.M2
}

// Fractions returns q1 = m2/(m1+m2) and q2 = m1/(m1+m2), whose sum is one.
func (m MassPair) Fractions() (q1, q2 float64) {
	total := m.Total()
	q1 = m.M2 / total
	q2 = m.M1 / total
	return
}

// Decompose splits the relative vector (body 2 minus body 1) into the barycentric vectors
// of each body. The same split applies to velocities.
func (m MassPair) Decompose(rel []float64) (body1, body2 []float64) {
	q1, q2 := m.Fractions()
	return scale(-q1, rel), scale(q2, rel)
}

// Mu returns the gravitational parameter of the relative orbit, in AU³/yr².
func (m MassPair) Mu() float64 {
	return GravitationalConstant * m.Total()
}

func (m MassPair) String() string {
	return fmt.Sprintf("m1=%.4f m2=%.4f", m.M1, m.M2)
}
