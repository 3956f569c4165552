package orbel

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Unit system: distances in AU, masses in solar masses and time in Julian years.
// With these units Kepler's third law reads T² = a³/(m1+m2).
const (
	// GravitationalConstant is G in AU³ M☉⁻¹ yr⁻².
	GravitationalConstant = 4 * math.Pi * math.Pi
	// JulianYear is the number of days in a Julian year.
	JulianYear = 365.25
)

// Period returns the orbital period in years for the semi-major axis a (AU) and the
// total mass (solar masses).
func Period(a, totalMass float64) float64 {
	return math.Sqrt(a * a * a / totalMass)
}

// MeanMotion returns the mean motion in radians per year.
func MeanMotion(a, totalMass float64) float64 {
	return twoPi / Period(a, totalMass)
}

// MeanAnomalyAt returns the mean anomaly in [0, 2π) after t years, given the mean
// anomaly M0 at t = 0. The time may be negative to play backwards.
func MeanAnomalyAt(a, totalMass, M0, t float64) float64 {
	return WrapAngle(M0 + MeanMotion(a, totalMass)*t)
}

// YearsToDuration converts a number of Julian years to a time.Duration.
func YearsToDuration(years float64) time.Duration {
	return time.Duration(years * JulianYear * 24 * float64(time.Hour))
}

// DurationToYears converts a time.Duration to Julian years.
func DurationToYears(d time.Duration) float64 {
	return d.Hours() / 24 / JulianYear
}

// ElapsedYears returns the time elapsed between the epoch and the provided instant in
// Julian years, using Julian dates so that leap years do not skew the phase.
func ElapsedYears(epoch, at time.Time) float64 {
	return (julian.TimeToJD(at) - julian.TimeToJD(epoch)) / JulianYear
}
