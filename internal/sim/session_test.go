package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/olivier-w/vibra/internal/config"
	"github.com/olivier-w/vibra/internal/profile"
)

func testParams() config.Params {
	p := config.Default()
	p.Points = 64
	p.Modes = 8
	p.AudioDuration = 0.05
	p.SampleRate = 8000
	return p
}

func TestNewFailsFastOnUnknownKind(t *testing.T) {
	p := testParams()
	p.Kind = "sawtooth"
	if _, err := New(p); !errors.Is(err, profile.ErrUnknownKind) {
		t.Fatalf("New error = %v, want ErrUnknownKind", err)
	}
}

func TestNewReportsBadExpression(t *testing.T) {
	p := testParams()
	p.Kind = "custom"
	p.Equation = "d0/0"
	_, err := New(p)
	var exprErr *profile.ExprError
	if !errors.As(err, &exprErr) || exprErr.Kind != profile.ExprZeroDivision {
		t.Fatalf("New error = %v, want zero-division ExprError", err)
	}
}

func TestNewProducesConfiguredAudio(t *testing.T) {
	s, err := New(testParams())
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if got, want := len(s.Audio()), 400; got != want {
		t.Fatalf("len(Audio()) = %d, want %d", got, want)
	}
	var peak float64
	for _, v := range s.Audio() {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	if math.Abs(peak-1) > 1e-6 {
		t.Fatalf("audio peak = %v, want 1", peak)
	}
	if len(s.Coefficients()) != 9 || s.Coefficients()[0] != 0 {
		t.Fatalf("Coefficients() = %v", s.Coefficients())
	}
	if s.Excitation() != 0.25 {
		t.Fatalf("Excitation() = %v, want 0.25", s.Excitation())
	}
}

func TestStepAndReset(t *testing.T) {
	s, err := New(testParams())
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	start := s.Peak()
	if math.Abs(start-s.Params.Amplitude) > 1e-2 {
		t.Fatalf("initial Peak() = %v, want about %v", start, s.Params.Amplitude)
	}

	for range 50 {
		s.Step(s.Dt())
	}
	if s.SimTime() != 50*s.Dt() {
		t.Fatalf("SimTime() = %v, want %v", s.SimTime(), 50*s.Dt())
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset error = %v", err)
	}
	if s.Wave().Steps() != 0 {
		t.Fatalf("Steps() after reset = %d", s.Wave().Steps())
	}
	got := s.Displacement()
	for i, v := range s.Initial() {
		if got[i] != v {
			t.Fatalf("displacement[%d] = %v after reset, want %v", i, got[i], v)
		}
	}
}

func TestLimitIsScaledAmplitude(t *testing.T) {
	s, err := New(testParams())
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if math.Abs(s.Limit()-0.12) > 1e-12 {
		t.Fatalf("Limit() = %v, want 0.12", s.Limit())
	}
}
