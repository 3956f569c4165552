package orbel

import (
	"sync"
	"time"
)

// System is a snapshot of everything the engine needs besides the time.
type System struct {
	Elements OrbitalElements
	Masses   MassPair
}

// Evaluate evaluates the system with the default evaluator.
func (s System) Evaluate(t float64, view View) (*Evaluation, error) {
	return Evaluate(s.Elements, s.Masses, t, view)
}

// KeepPhase returns next.Elements with its starting mean anomaly shifted such that the true
// anomaly at time t is the same as the one of prev at that time. This avoids jumps when the
// user edits the shape or the masses while the animation is running.
func KeepPhase(prev, next System, t float64) (OrbitalElements, error) {
	for _, s := range []System{prev, next} {
		if err := s.Elements.Validate(); err != nil {
			return OrbitalElements{}, err
		}
		if err := s.Masses.Validate(); err != nil {
			return OrbitalElements{}, err
		}
	}
	pEl, nEl := prev.Elements, next.Elements
	ν := MeanToTrue(MeanAnomalyAt(pEl.a, prev.Masses.Total(), pEl.M0, t), pEl.e)
	M := TrueToMean(ν, nEl.e)
	nEl.M0 = WrapAngle(M - MeanMotion(nEl.a, next.Masses.Total())*t)
	return nEl, nil
}

// Clock tracks the elapsed simulated time, in years, of an animation. The engine itself is
// stateless: pausing freezes the clock and resetting brings it back to zero.
// A Clock is safe for concurrent use.
type Clock struct {
	mu       sync.Mutex
	now      func() time.Time
	running  bool
	anchor   time.Time // wall time of the last rebase
	base     float64   // elapsed years at anchor
	speed    float64   // simulated years per wall-clock second
	reversed bool
}

// NewClock returns a stopped clock at t = 0 which advances `speed` simulated years per second.
func NewClock(speed float64) *Clock {
	return newClockWithSource(speed, time.Now)
}

func newClockWithSource(speed float64, now func() time.Time) *Clock {
	c := &Clock{now: now}
	c.SetSpeed(speed)
	return c
}

func (c *Clock) elapsedLocked() float64 {
	if !c.running {
		return c.base
	}
	dt := c.now().Sub(c.anchor).Seconds() * c.speed
	if c.reversed {
		dt = -dt
	}
	return c.base + dt
}

func (c *Clock) rebaseLocked() {
	c.base = c.elapsedLocked()
	c.anchor = c.now()
}

// Elapsed returns the current simulated time in years.
func (c *Clock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

// Running returns whether the clock is advancing.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Start resumes the clock. It is a no-op if the clock is already running.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.anchor = c.now()
	c.running = true
}

// Stop pauses the clock.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebaseLocked()
	c.running = false
}

// Reset brings the clock back to t = 0 without changing whether it runs.
func (c *Clock) Reset() {
	c.Seek(0)
}

// Seek sets the simulated time.
func (c *Clock) Seek(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = t
	c.anchor = c.now()
}

// SetSpeed changes the number of simulated years per second; negative speeds are treated as zero.
func (c *Clock) SetSpeed(speed float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebaseLocked()
	if speed < 0 {
		speed = 0
	}
	c.speed = speed
}

// SetReversed plays the animation backwards when true.
func (c *Clock) SetReversed(reversed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebaseLocked()
	c.reversed = reversed
}
