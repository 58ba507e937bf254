package wave

import (
	"math"
	"testing"

	"github.com/olivier-w/vibra/internal/grid"
	"github.com/olivier-w/vibra/internal/profile"
)

func newTestString(t *testing.T, kind profile.Kind, n int, c, alpha float64) (*String, []float64) {
	t.Helper()
	x := grid.Linspace(0, 1, n)
	y0, _, err := profile.Build(kind, x, 1, 0.1, "")
	if err != nil {
		t.Fatalf("profile.Build error = %v", err)
	}
	s, err := NewString(x, y0, c, alpha)
	if err != nil {
		t.Fatalf("NewString error = %v", err)
	}
	return s, x
}

func TestNewStringPadsWithGhostPoints(t *testing.T) {
	s, err := NewString([]float64{0, 0.5, 1}, []float64{1, 2, 3}, 1, 0)
	if err != nil {
		t.Fatalf("NewString error = %v", err)
	}
	want := []float64{1, 1, 2, 3, 3}
	for i := range want {
		if s.curr[i] != want[i] || s.prev[i] != want[i] || s.init[i] != want[i] {
			t.Fatalf("padded[%d] = %v/%v/%v, want %v", i, s.curr[i], s.prev[i], s.init[i], want[i])
		}
	}
	if got := s.Displacement(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Displacement() = %v, want [1 2 3]", got)
	}
	if s.State() != Initialized {
		t.Fatalf("State() = %v, want initialized", s.State())
	}
}

func TestNewStringRejectsMismatchedInput(t *testing.T) {
	if _, err := NewString([]float64{0, 1}, []float64{0}, 1, 0); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
	if _, err := NewString([]float64{0}, []float64{0}, 1, 0); err == nil {
		t.Fatal("expected error for a single point grid")
	}
}

func TestStepKeepsBoundaryValues(t *testing.T) {
	for _, alpha := range []float64{0, 0.5, 20} {
		s, x := newTestString(t, profile.Triangular, 64, 100, alpha)
		dt := StableStep(x, 100)
		last := len(s.init) - 1
		for step := range 500 {
			s.Step(dt)
			for _, i := range []int{0, 1, last - 1, last} {
				if s.curr[i] != s.init[i] {
					t.Fatalf("alpha=%v step %d: padded[%d] = %v, want %v", alpha, step, i, s.curr[i], s.init[i])
				}
			}
		}
		if s.State() != Stepped || s.Steps() != 500 {
			t.Fatalf("state = %v after %d steps", s.State(), s.Steps())
		}
	}
}

func TestFirstStepMatchesLeapfrogFormula(t *testing.T) {
	x := []float64{0, 0.25, 0.5, 0.75, 1}
	y0 := []float64{0, 1, 2, 1, 0}
	s, err := NewString(x, y0, 1, 0)
	if err != nil {
		t.Fatalf("NewString error = %v", err)
	}
	dt := 0.125
	s.Step(dt)

	// r = (1*0.125/0.25)^2 = 0.25; zero initial velocity gives
	// y_new = y + r*lap.
	got := s.Displacement()
	if math.Abs(got[1]-(1+0.25*(2-2*1+0))) > 1e-15 {
		t.Fatalf("y[1] = %v", got[1])
	}
	if math.Abs(got[2]-(2+0.25*(1-4+1))) > 1e-15 {
		t.Fatalf("y[2] = %v", got[2])
	}
}

// referenceSteps runs the damped leapfrog update on freshly allocated arrays
// with the spacing written out by hand: central differences inside, one-sided
// at the ends.
func referenceSteps(x, y0 []float64, c, alpha, dt float64, steps int) []float64 {
	n := len(x)
	h := make([]float64, n)
	h[0] = x[1] - x[0]
	h[n-1] = x[n-1] - x[n-2]
	for i := 1; i < n-1; i++ {
		h[i] = (x[i+1] - x[i-1]) / 2
	}

	y := make([]float64, n+2)
	y[0], y[n+1] = y0[0], y0[n-1]
	copy(y[1:], y0)
	init := append([]float64(nil), y...)
	prev := append([]float64(nil), y...)

	for range steps {
		next := make([]float64, n+2)
		for i := 1; i <= n; i++ {
			r := (c * dt / h[i-1]) * (c * dt / h[i-1])
			next[i] = (2-alpha*dt)*y[i] - (1-0.5*alpha*dt)*prev[i] + r*(y[i+1]-2*y[i]+y[i-1])
		}
		for _, k := range []int{0, 1, n, n + 1} {
			next[k] = init[k]
		}
		prev, y = y, next
	}
	return y[1 : n+1]
}

func TestDampedStepsMatchReferenceOnNonUniformGrid(t *testing.T) {
	x := []float64{0, 0.1, 0.3, 0.6, 0.8, 1}
	y0 := make([]float64, len(x))
	for i, xi := range x {
		y0[i] = 0.1 * xi * (1 - xi) * (1 + xi)
	}
	const c, dt, steps = 1.0, 0.04, 12

	for _, alpha := range []float64{0, 0.5, 3} {
		s, err := NewString(x, y0, c, alpha)
		if err != nil {
			t.Fatalf("NewString error = %v", err)
		}
		for range steps {
			s.Step(dt)
		}
		want := referenceSteps(x, y0, c, alpha, dt, steps)
		got := s.Displacement()
		for i := range want {
			if math.Abs(got[i]-want[i]) > 1e-12 {
				t.Fatalf("alpha=%g: y[%d] = %.15g, want %.15g", alpha, i, got[i], want[i])
			}
		}
	}
}

func TestDampingNeverAmplifies(t *testing.T) {
	const steps = 1024
	peak := func(alpha float64) float64 {
		s, x := newTestString(t, profile.Fundamental, 65, 1, alpha)
		dt := StableStep(x, 1)
		var m float64
		for i := range steps {
			s.Step(dt)
			if i < steps/2 {
				continue
			}
			for _, v := range s.Displacement() {
				m = max(m, math.Abs(v))
			}
		}
		return m
	}

	undamped := peak(0)
	for _, alpha := range []float64{0.05, 0.5, 5} {
		if damped := peak(alpha); damped > undamped {
			t.Fatalf("alpha=%v peak %v exceeds undamped peak %v", alpha, damped, undamped)
		}
	}
	if damped := peak(0.5); damped > 0.9*undamped {
		t.Fatalf("expected visible decay, damped peak %v vs undamped %v", damped, undamped)
	}
}

func TestUndampedFundamentalStaysBounded(t *testing.T) {
	s, x := newTestString(t, profile.Fundamental, 65, 1, 0)
	dt := StableStep(x, 1)
	for range 4096 {
		s.Step(dt)
	}
	for i, v := range s.Displacement() {
		if math.IsNaN(v) || math.Abs(v) > 0.11 {
			t.Fatalf("y[%d] = %v, expected bounded by the initial amplitude", i, v)
		}
	}
}

func TestStableStep(t *testing.T) {
	x := grid.Linspace(0, 1, 11)
	if got, want := StableStep(x, 2), 0.5*0.1/2; math.Abs(got-want) > 1e-15 {
		t.Fatalf("StableStep = %v, want %v", got, want)
	}
	if got := StableStep(x, 0); got != 0 {
		t.Fatalf("StableStep with c=0 = %v, want 0", got)
	}
}
