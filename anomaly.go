package orbel

import (
	"fmt"
	"math"
)

// AnomalyTriple holds the mean, eccentric and true anomalies of a body, all in [0, 2π).
type AnomalyTriple struct {
	Mean, Eccentric, True float64
}

// NewAnomalyTriple solves the triple from the mean anomaly with the provided solver.
func NewAnomalyTriple(M, e float64, k KeplerSolver) (AnomalyTriple, KeplerSolution) {
	sol := k.Solve(M, e)
	return AnomalyTriple{WrapAngle(M), sol.E, EccentricToTrue(sol.E, e)}, sol
}

func (a AnomalyTriple) String() string {
	return fmt.Sprintf("M=%.3f E=%.3f ν=%.3f", Rad2deg(a.Mean), Rad2deg(a.Eccentric), Rad2deg(a.True))
}

// EccentricToTrue converts the eccentric anomaly to the true anomaly.
func EccentricToTrue(E, e float64) float64 {
	if e == 0 {
		return WrapAngle(E)
	}
	sinE2, cosE2 := math.Sincos(E / 2)
	return WrapAngle(2 * math.Atan2(math.Sqrt(1+e)*sinE2, math.Sqrt(1-e)*cosE2))
}

// TrueToEccentric converts the true anomaly to the eccentric anomaly.
func TrueToEccentric(ν, e float64) float64 {
	if e == 0 {
		return WrapAngle(ν)
	}
	sinν2, cosν2 := math.Sincos(ν / 2)
	return WrapAngle(2 * math.Atan2(math.Sqrt(1-e)*sinν2, math.Sqrt(1+e)*cosν2))
}

// EccentricToMean evaluates Kepler's equation.
func EccentricToMean(E, e float64) float64 {
	return WrapAngle(E - e*math.Sin(E))
}

// MeanToEccentric is a shortcut to SolveKepler which discards the convergence details.
func MeanToEccentric(M, e float64) float64 {
	return SolveKepler(M, e).E
}

// MeanToTrue converts the mean anomaly to the true anomaly.
func MeanToTrue(M, e float64) float64 {
	return EccentricToTrue(MeanToEccentric(M, e), e)
}

// TrueToMean converts the true anomaly to the mean anomaly.
func TrueToMean(ν, e float64) float64 {
	return EccentricToMean(TrueToEccentric(ν, e), e)
}
