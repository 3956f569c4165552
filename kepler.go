package orbel

import (
	"fmt"
	"math"
)

const (
	// highEccentricity is the eccentricity above which Newton is seeded with π.
	highEccentricity = 0.8
)

// DefaultKeplerSolver is the solver used by SolveKepler and by the default Evaluator.
var DefaultKeplerSolver = KeplerSolver{Tolerance: 1e-12, MaxIterations: 50}

// KeplerSolver solves Kepler's equation M = E - e sin(E) with Newton-Raphson.
type KeplerSolver struct {
	Tolerance     float64 // on |E_{n+1} - E_n|, in radians
	MaxIterations int
}

// KeplerSolution is the outcome of a solve. When Converged is false, E is the last
// iterate and should be treated as approximate.
type KeplerSolution struct {
	E          float64
	Iterations int
	Converged  bool
}

// Err returns ErrSolverNonConvergence (wrapped with the details) if the solution did not converge.
func (s KeplerSolution) Err() error {
	if s.Converged {
		return nil
	}
	return fmt.Errorf("%w after %d iterations (E=%f)", ErrSolverNonConvergence, s.Iterations, s.E)
}

// SolveKepler returns the eccentric anomaly in [0, 2π) for the mean anomaly M (any real)
// and the eccentricity e (0 <= e < 1) with the DefaultKeplerSolver.
func SolveKepler(M, e float64) KeplerSolution {
	return DefaultKeplerSolver.Solve(M, e)
}

// Solve implements the solver. The caller is responsible for checking 0 <= e < 1.
func (k KeplerSolver) Solve(M, e float64) KeplerSolution {
	M = WrapAngle(M)
	if e == 0 {
		return KeplerSolution{E: M, Converged: true}
	}
	// Solve on [0, π] and mirror: M(2π-E) = 2π - M(E).
	mirrored := M > math.Pi
	if mirrored {
		M = twoPi - M
	}
	E := M
	if e > highEccentricity {
		E = math.Pi
	}
	sol := KeplerSolution{}
	for sol.Iterations < k.MaxIterations {
		sol.Iterations++
		sinE, cosE := math.Sincos(E)
		ΔE := (E - e*sinE - M) / (1 - e*cosE)
		E -= ΔE
		if math.Abs(ΔE) < k.Tolerance {
			sol.Converged = true
			break
		}
	}
	if mirrored {
		E = twoPi - E
	}
	sol.E = WrapAngle(E)
	return sol
}
