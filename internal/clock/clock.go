// Package clock paces a fixed-step simulation against wall-clock time.
package clock

import (
	"math"
	"time"
)

// DefaultMaxSteps bounds how many steps a single tick may apply, so a slow
// frame cannot trigger an ever-growing catch-up.
const DefaultMaxSteps = 300

// stepGuard absorbs representation error when elapsed is an exact multiple
// of dt, e.g. 10*dt/dt evaluating to 9.999999999999998.
const stepGuard = 1e-9

// State is the last processed time, in seconds since the clock's origin.
// It only moves in whole steps.
type State struct {
	Last float64
}

// Advance returns how many steps of dt fit between s.Last and now, capped at
// maxSteps, and the state moved forward by exactly that many steps. Time that
// does not fill a whole step, or exceeds the cap, stays pending.
func Advance(s State, now, dt float64, maxSteps int) (State, int) {
	if dt <= 0 || maxSteps <= 0 {
		return s, 0
	}
	elapsed := now - s.Last
	if elapsed <= 0 {
		return s, 0
	}
	ratio := elapsed / dt
	steps := math.Floor(ratio + stepGuard*math.Max(1, ratio))
	if steps > float64(maxSteps) {
		steps = float64(maxSteps)
	}
	n := int(steps)
	s.Last += float64(n) * dt
	return s, n
}

// AdvanceAndRender applies Advance, calls step once per step taken, then calls
// render once. It is meant to be driven by an external tick source.
func AdvanceAndRender(s State, now, dt float64, maxSteps int, step func(dt float64), render func()) State {
	next, n := Advance(s, now, dt, maxSteps)
	for range n {
		step(dt)
	}
	if render != nil {
		render()
	}
	return next
}

// Clock binds a State to a wall-clock origin.
type Clock struct {
	origin   time.Time
	state    State
	dt       float64
	maxSteps int
}

// New returns a clock that starts counting at origin with step size dt.
// maxSteps <= 0 selects DefaultMaxSteps.
func New(origin time.Time, dt float64, maxSteps int) Clock {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return Clock{origin: origin, dt: dt, maxSteps: maxSteps}
}

// Tick applies every whole step that is due at now and reports how many ran
// and whether the cap cut the catch-up short.
func (c *Clock) Tick(now time.Time, step func(dt float64)) (int, bool) {
	var n int
	c.state, n = Advance(c.state, now.Sub(c.origin).Seconds(), c.dt, c.maxSteps)
	for range n {
		step(c.dt)
	}
	return n, n == c.maxSteps
}

// Reset restarts the clock at origin with nothing processed.
func (c *Clock) Reset(origin time.Time) {
	c.origin = origin
	c.state = State{}
}

// State returns the current clock state.
func (c *Clock) State() State { return c.state }

// Step returns the fixed step size.
func (c *Clock) Step() float64 { return c.dt }

// Behind returns how far the processed time trails now.
func (c *Clock) Behind(now time.Time) time.Duration {
	lag := now.Sub(c.origin).Seconds() - c.state.Last
	if lag < 0 {
		return 0
	}
	return time.Duration(lag * float64(time.Second))
}
