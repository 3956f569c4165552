package orbel

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

// Scenario is the content of a scenario file. Angles in the file are in degrees.
//
//	[orbit]
//	sma = 1.0       # AU
//	ecc = 0.5
//	inc = 45.0
//	argPeri = 90.0
//	RAAN = 90.0
//	mAnomaly = 0.0  # or tAnomaly for a starting true anomaly
//	omegaIsPrimary = false
//	[masses]
//	m1 = 1.6        # solar masses
//	m2 = 0.8
//	[time]
//	epoch = 2451545.0            # JDE or a timestamp
//	at = 2020-01-01T00:00:00Z    # JDE or a timestamp; otherwise `elapsed` years
//	elapsed = 0.0
//	[view]
//	mode = "absolute"
//	[trajectory]
//	samples = 360
//	span = 0.0      # years, zero means one period
//	workers = 0
//	output = "trajectory.csv"
//	[solver]
//	tolerance = 1e-12
//	maxIterations = 50
//	[animation]
//	speed = 0.25    # simulated years per second
type Scenario struct {
	System
	View           View
	OmegaIsPrimary bool
	Epoch, At      time.Time // zero when unset
	Elapsed        float64   // years, used unless both Epoch and At are set
	Samples        int
	Span           float64
	Workers        int
	Output         string
	Solver         KeplerSolver
	Speed          float64
}

// ElapsedYears returns the simulated time at which the scenario should be evaluated.
func (s Scenario) ElapsedYears() float64 {
	if !s.Epoch.IsZero() && !s.At.IsZero() {
		return ElapsedYears(s.Epoch, s.At)
	}
	return s.Elapsed
}

// Evaluator returns an evaluator configured for this scenario.
func (s Scenario) Evaluator(opts ...Option) *Evaluator {
	opts = append([]Option{WithSolver(s.Solver), WithOmegaIsPrimary(s.OmegaIsPrimary)}, opts...)
	return NewEvaluator(opts...)
}

// LoadScenario reads a scenario file (any format supported by viper, chosen from the
// extension). Every key may be overridden by an ORBEL_ environment variable, e.g.
// ORBEL_ORBIT_ECC=0.3.
func LoadScenario(path string) (Scenario, error) {
	v := newScenarioViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return scenarioFromViper(v)
}

// ReadScenario reads a scenario in the provided format ("toml", "yaml", "json", ...).
func ReadScenario(r io.Reader, format string) (Scenario, error) {
	v := newScenarioViper()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return Scenario{}, err
	}
	return scenarioFromViper(v)
}

func newScenarioViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ORBEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("orbit.sma", 1.0)
	v.SetDefault("orbit.ecc", 0.5)
	v.SetDefault("orbit.inc", 45.0)
	v.SetDefault("orbit.argPeri", 90.0)
	v.SetDefault("orbit.RAAN", 90.0)
	v.SetDefault("masses.m1", 1.6)
	v.SetDefault("masses.m2", 0.8)
	v.SetDefault("view.mode", "relative")
	v.SetDefault("trajectory.samples", 360)
	v.SetDefault("solver.tolerance", DefaultKeplerSolver.Tolerance)
	v.SetDefault("solver.maxIterations", DefaultKeplerSolver.MaxIterations)
	v.SetDefault("animation.speed", 0.25)
	return v
}

func scenarioFromViper(v *viper.Viper) (Scenario, error) {
	el, err := NewOrbitalElementsDeg(
		v.GetFloat64("orbit.sma"),
		v.GetFloat64("orbit.ecc"),
		v.GetFloat64("orbit.inc"),
		v.GetFloat64("orbit.argPeri"),
		v.GetFloat64("orbit.RAAN"),
		v.GetFloat64("orbit.mAnomaly"))
	if err != nil {
		return Scenario{}, err
	}
	if v.IsSet("orbit.tAnomaly") {
		el = StartFromTrueAnomaly(el, Deg2rad(v.GetFloat64("orbit.tAnomaly")))
	}
	masses := MassPair{v.GetFloat64("masses.m1"), v.GetFloat64("masses.m2")}
	if err := masses.Validate(); err != nil {
		return Scenario{}, err
	}
	view, err := ParseView(v.GetString("view.mode"))
	if err != nil {
		return Scenario{}, err
	}
	s := Scenario{
		System:         System{el, masses},
		View:           view,
		OmegaIsPrimary: v.GetBool("orbit.omegaIsPrimary"),
		Epoch:          confReadJDEorTime(v, "time.epoch"),
		At:             confReadJDEorTime(v, "time.at"),
		Elapsed:        v.GetFloat64("time.elapsed"),
		Samples:        v.GetInt("trajectory.samples"),
		Span:           v.GetFloat64("trajectory.span"),
		Workers:        v.GetInt("trajectory.workers"),
		Output:         v.GetString("trajectory.output"),
		Solver:         KeplerSolver{v.GetFloat64("solver.tolerance"), v.GetInt("solver.maxIterations")},
		Speed:          v.GetFloat64("animation.speed"),
	}
	if s.Solver.Tolerance <= 0 || s.Solver.MaxIterations <= 0 {
		return Scenario{}, fmt.Errorf("solver tolerance and max iterations must be positive (got %g, %d)", s.Solver.Tolerance, s.Solver.MaxIterations)
	}
	return s, nil
}

// confReadJDEorTime reads a key which is either a Julian date or a timestamp.
func confReadJDEorTime(v *viper.Viper, key string) (dt time.Time) {
	if !v.IsSet(key) {
		return
	}
	jde := v.GetFloat64(key)
	if jde == 0 {
		dt = v.GetTime(key)
	} else {
		dt = julian.JDToTime(jde)
	}
	return dt.UTC()
}
