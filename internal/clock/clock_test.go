package clock

import (
	"testing"
	"time"
)

// A variable, not a constant, so expected values round the same way as Advance.
var dt = 1.0 / 25500

func TestAdvanceAppliesWholeSteps(t *testing.T) {
	next, steps := Advance(State{}, 10*dt, dt, DefaultMaxSteps)
	if steps != 10 {
		t.Fatalf("steps = %d, want 10", steps)
	}
	if next.Last != 10*dt {
		t.Fatalf("Last = %v, want %v", next.Last, 10*dt)
	}
}

func TestAdvanceMovesByStepsNotElapsed(t *testing.T) {
	s := State{Last: 1}
	next, steps := Advance(s, 1+10.5*dt, dt, DefaultMaxSteps)
	if steps != 10 {
		t.Fatalf("steps = %d, want 10", steps)
	}
	if want := 1 + 10*dt; next.Last != want {
		t.Fatalf("Last = %v, want %v (leftover half step must stay pending)", next.Last, want)
	}

	// The pending half step completes on the next tick.
	next, steps = Advance(next, 1+11*dt, dt, DefaultMaxSteps)
	if steps != 1 {
		t.Fatalf("steps = %d, want 1", steps)
	}
}

func TestAdvanceCapsCatchUp(t *testing.T) {
	s := State{}
	now := 10000 * dt
	for tick := 1; tick <= 3; tick++ {
		var steps int
		s, steps = Advance(s, now, dt, DefaultMaxSteps)
		if steps != DefaultMaxSteps {
			t.Fatalf("tick %d: steps = %d, want %d", tick, steps, DefaultMaxSteps)
		}
		if want := float64(tick*DefaultMaxSteps) * dt; s.Last < want*(1-1e-12) || s.Last > want*(1+1e-12) {
			t.Fatalf("tick %d: Last = %v, want %v", tick, s.Last, want)
		}
	}
}

func TestAdvanceIgnoresNonPositiveInput(t *testing.T) {
	s := State{Last: 5}
	if next, steps := Advance(s, 4, dt, 300); steps != 0 || next != s {
		t.Fatalf("clock moved backwards: %+v, %d", next, steps)
	}
	if next, steps := Advance(s, 6, 0, 300); steps != 0 || next != s {
		t.Fatalf("dt=0 advanced: %+v, %d", next, steps)
	}
	if next, steps := Advance(s, 6, dt, 0); steps != 0 || next != s {
		t.Fatalf("maxSteps=0 advanced: %+v, %d", next, steps)
	}
}

func TestAdvanceAndRenderStepsThenRendersOnce(t *testing.T) {
	var calls []string
	next := AdvanceAndRender(State{}, 3*dt, dt, DefaultMaxSteps,
		func(got float64) {
			if got != dt {
				t.Fatalf("step called with %v, want %v", got, dt)
			}
			calls = append(calls, "step")
		},
		func() { calls = append(calls, "render") },
	)
	want := []string{"step", "step", "step", "render"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
	if next.Last != 3*dt {
		t.Fatalf("Last = %v, want %v", next.Last, 3*dt)
	}
}

func TestClockTickReportsCap(t *testing.T) {
	origin := time.Unix(1000, 0)
	c := New(origin, 0.001, 5)

	count := 0
	steps, capped := c.Tick(origin.Add(3*time.Millisecond), func(float64) { count++ })
	if steps != 3 || capped || count != 3 {
		t.Fatalf("Tick = %d, %v (count %d), want 3 uncapped", steps, capped, count)
	}

	steps, capped = c.Tick(origin.Add(time.Second), func(float64) { count++ })
	if steps != 5 || !capped || count != 8 {
		t.Fatalf("Tick = %d, %v (count %d), want 5 capped", steps, capped, count)
	}
	if lag := c.Behind(origin.Add(time.Second)); lag < 990*time.Millisecond {
		t.Fatalf("Behind = %v, expected the capped clock to trail", lag)
	}

	c.Reset(origin.Add(time.Second))
	if c.State() != (State{}) {
		t.Fatalf("State after Reset = %+v", c.State())
	}
}

func TestNewDefaultsMaxSteps(t *testing.T) {
	c := New(time.Now(), dt, 0)
	if c.maxSteps != DefaultMaxSteps {
		t.Fatalf("maxSteps = %d, want %d", c.maxSteps, DefaultMaxSteps)
	}
}
