// Package sim assembles one simulation run: the initial profile, the
// integrator and the synthesized audio that goes with it.
package sim

import (
	"fmt"
	"log"
	"math"

	"github.com/olivier-w/vibra/internal/config"
	"github.com/olivier-w/vibra/internal/grid"
	"github.com/olivier-w/vibra/internal/modal"
	"github.com/olivier-w/vibra/internal/profile"
	"github.com/olivier-w/vibra/internal/wave"
)

// Session is a prepared run. Its audio and profile are fixed at creation;
// only the string advances.
type Session struct {
	Params config.Params

	x      []float64
	y0     []float64
	x0     float64
	dt     float64
	coeffs []float64
	audio  []float32

	str *wave.String
}

// New builds everything a run needs, in order, and stops at the first
// failure. Nothing is played or drawn here.
func New(p config.Params) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	x := grid.Linspace(0, p.Length, p.Points)
	y0, x0, err := profile.Build(p.ProfileKind(), x, p.Length, p.Amplitude, p.Equation)
	if err != nil {
		return nil, fmt.Errorf("initial profile: %w", err)
	}

	str, err := wave.NewString(x, y0, p.Speed, p.Damping)
	if err != nil {
		return nil, fmt.Errorf("string: %w", err)
	}
	dt := wave.StableStep(x, p.Speed)

	fine := grid.Linspace(0, p.Length, modal.FineSamples)
	coeffs := modal.Coefficients(fine, grid.Interp(fine, x, y0), p.Length, p.Modes)

	audio, err := modal.Synthesize(coeffs, modal.Voice{
		Length:     p.Length,
		Speed:      p.Speed,
		Duration:   p.AudioDuration,
		SampleRate: p.SampleRate,
		Excitation: x0,
		Damping:    p.Damping,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	log.Printf("session: init=%s N=%d dt=%.3e alpha=%g modes=%d audio=%d samples",
		p.Kind, p.Points, dt, p.Damping, p.Modes, len(audio))

	return &Session{
		Params: p,
		x:      x,
		y0:     y0,
		x0:     x0,
		dt:     dt,
		coeffs: coeffs,
		audio:  audio,
		str:    str,
	}, nil
}

// Wave returns the integrator. It is replaced by Reset.
func (s *Session) Wave() *wave.String { return s.str }

// Step advances the string by one time step of size dt.
func (s *Session) Step(dt float64) { s.str.Step(dt) }

// Displacement returns the current interior displacement. See
// wave.String.Displacement for its lifetime.
func (s *Session) Displacement() []float64 { return s.str.Displacement() }

// Grid returns the spatial sample positions.
func (s *Session) Grid() []float64 { return s.x }

// Initial returns the initial profile.
func (s *Session) Initial() []float64 { return s.y0 }

// Dt returns the integrator time step.
func (s *Session) Dt() float64 { return s.dt }

// Excitation returns the point on the string the audio is heard at.
func (s *Session) Excitation() float64 { return s.x0 }

// Coefficients returns the modal amplitudes, index 0 unused.
func (s *Session) Coefficients() []float64 { return s.coeffs }

// Audio returns the normalized mono buffer. Callers must not modify it.
func (s *Session) Audio() []float32 { return s.audio }

// SimTime returns how much simulated time the string has covered.
func (s *Session) SimTime() float64 { return s.str.Time(s.dt) }

// Limit returns the fixed half-height of the plot, 1.2 d0.
func (s *Session) Limit() float64 { return 1.2 * s.Params.Amplitude }

// Reset puts the string back to its initial profile at rest.
func (s *Session) Reset() error {
	str, err := wave.NewString(s.x, s.y0, s.Params.Speed, s.Params.Damping)
	if err != nil {
		return fmt.Errorf("string: %w", err)
	}
	s.str = str
	log.Printf("session: restart")
	return nil
}

// Peak returns the largest absolute displacement currently on the string.
func (s *Session) Peak() float64 {
	var peak float64
	for _, v := range s.str.Displacement() {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}
