// Package wave integrates the 1D wave equation on a string with clamped ends.
package wave

import (
	"fmt"

	"github.com/olivier-w/vibra/internal/grid"
)

// State reports whether a String has been stepped yet.
type State uint8

const (
	Initialized State = iota
	Stepped
)

func (s State) String() string {
	if s == Stepped {
		return "stepped"
	}
	return "initialized"
}

// String holds the displacement field of a vibrating string. The field is
// padded with one ghost point at each end, so for N grid points it has N+2
// entries. Padded indices 0, 1, N and N+1 are held at their initial values.
//
// String is not safe for concurrent use; the animation loop owns it.
type String struct {
	x       []float64
	spacing []float64 // local grid spacing, one per grid point

	curr []float64 // y
	prev []float64 // y_prev, overwritten in place with the next field
	init []float64 // padded y0

	c     float64
	alpha float64
	steps int
}

// NewString creates a string at rest in shape y0 over the grid x, with wave
// speed c and damping alpha (0 for none). x and y0 are copied.
func NewString(x, y0 []float64, c, alpha float64) (*String, error) {
	if len(x) != len(y0) {
		return nil, fmt.Errorf("grid has %d points but profile has %d", len(x), len(y0))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("grid needs at least 2 points, got %d", len(x))
	}
	s := &String{
		x:       append([]float64(nil), x...),
		spacing: grid.Gradient(x),
		init:    pad(y0),
		c:       c,
		alpha:   alpha,
	}
	s.curr = append([]float64(nil), s.init...)
	s.prev = append([]float64(nil), s.init...)
	return s, nil
}

func pad(y []float64) []float64 {
	out := make([]float64, len(y)+2)
	out[0] = y[0]
	copy(out[1:], y)
	out[len(out)-1] = y[len(y)-1]
	return out
}

// StableStep returns the time step used for a grid x and wave speed c. It
// sits at half the CFL limit dx/c.
func StableStep(x []float64, c float64) float64 {
	if len(x) < 2 || c <= 0 {
		return 0
	}
	dx := x[1] - x[0]
	return min(0.5*dx/c, 0.99*dx/c)
}

// Step advances the field by dt with the explicit leapfrog scheme.
//
// dt must satisfy the CFL condition c*dt <= dx for the local grid spacing.
// Step does not check it; a larger dt makes the field diverge.
func (s *String) Step(dt float64) {
	n := len(s.x)
	y, yp := s.curr, s.prev
	cdt := s.c * dt

	// yp[i] is only read at i before being written, so the new field can
	// replace the previous one in place.
	if s.alpha == 0 {
		for i := 1; i <= n; i++ {
			r := cdt / s.spacing[i-1]
			r *= r
			yp[i] = 2*y[i] - yp[i] + r*(y[i+1]-2*y[i]+y[i-1])
		}
	} else {
		a := 2 - s.alpha*dt
		b := 1 - 0.5*s.alpha*dt
		for i := 1; i <= n; i++ {
			r := cdt / s.spacing[i-1]
			r *= r
			yp[i] = a*y[i] - b*yp[i] + r*(y[i+1]-2*y[i]+y[i-1])
		}
	}
	s.curr, s.prev = yp, y

	s.clampEnds()
	s.steps++
}

func (s *String) clampEnds() {
	last := len(s.curr) - 1
	s.curr[0] = s.init[0]
	s.curr[1] = s.init[1]
	s.curr[last-1] = s.init[last-1]
	s.curr[last] = s.init[last]
}

// Displacement returns the interior field, one value per grid point. The
// slice is a view into the live field, valid until the next Step, and must
// not be modified.
func (s *String) Displacement() []float64 {
	return s.curr[1 : len(s.curr)-1]
}

// Grid returns the positions the field is sampled at.
func (s *String) Grid() []float64 { return s.x }

// Steps returns how many times Step has been called.
func (s *String) Steps() int { return s.steps }

// State reports whether the string has been stepped.
func (s *String) State() State {
	if s.steps == 0 {
		return Initialized
	}
	return Stepped
}

// Time returns the simulated time after the steps taken so far with dt.
func (s *String) Time(dt float64) float64 { return float64(s.steps) * dt }
