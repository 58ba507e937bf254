package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/olivier-w/vibra/internal/profile"
)

// Parameter bounds accepted on the command line.
const (
	MinLength = 1e-3
	MaxLength = 100.0
	MaxSpeed  = 5000.0
	MinPoints = 3

	// MaxAudioSamples bounds AudioDuration*SampleRate so the synthesized
	// signal fits comfortably in memory.
	MaxAudioSamples = 1 << 25
	MaxSampleRate   = 192000
)

// Views lists the visualizer names accepted by -view.
var Views = []string{"braille", "trace", "graph", "probe"}

// Params are the physical and runtime settings of one simulation run.
type Params struct {
	Length        float64 // L, metres
	Speed         float64 // c, wave speed
	Damping       float64 // alpha
	Amplitude     float64 // d0, initial peak displacement
	Points        int     // N, spatial samples
	Modes         int     // modes used for the audio
	AudioDuration float64 // seconds of synthesized audio
	SampleRate    int     // fs
	FPS           int     // redraw rate
	Kind          string  // initial condition name
	Equation      string  // custom profile expression, used when Kind is "custom"
	View          string  // initial visualizer name
	LogFile       string  // debug log destination; empty discards logs
}

// Default returns the settings the simulator starts with when no flags are
// given.
func Default() Params {
	return Params{
		Length:        1.0,
		Speed:         100.0,
		Damping:       0.0,
		Amplitude:     0.1,
		Points:        256,
		Modes:         60,
		AudioDuration: 60.0,
		SampleRate:    44100,
		FPS:           30,
		Kind:          profile.Triangular.String(),
		View:          "braille",
	}
}

// Parse reads command-line flags into Params and validates them.
func Parse(name string, args []string, stderr io.Writer) (Params, error) {
	p := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Float64Var(&p.Length, "L", p.Length, "string length")
	fs.Float64Var(&p.Speed, "c", p.Speed, "wave speed")
	fs.Float64Var(&p.Damping, "alpha", p.Damping, "damping coefficient (0 = undamped)")
	fs.Float64Var(&p.Amplitude, "d0", p.Amplitude, "initial amplitude")
	fs.IntVar(&p.Points, "N", p.Points, "number of spatial samples")
	fs.IntVar(&p.Modes, "modes", p.Modes, "eigenmodes used to synthesize audio")
	fs.Float64Var(&p.AudioDuration, "audio-duration", p.AudioDuration, "seconds of audio to synthesize")
	fs.IntVar(&p.SampleRate, "fs", p.SampleRate, "audio sample rate in Hz")
	fs.IntVar(&p.FPS, "fps", p.FPS, "redraw rate")
	fs.StringVar(&p.Kind, "init", p.Kind, "initial condition: "+kindNames())
	fs.StringVar(&p.Equation, "equation", p.Equation, "custom initial profile as a function of x (with L, d0), e.g. \"d0*sin(pi*x/L)^3\"")
	fs.StringVar(&p.View, "view", p.View, "initial view: "+strings.Join(Views, ", "))
	fs.StringVar(&p.LogFile, "log", p.LogFile, "write debug logs to this file")

	if err := fs.Parse(args); err != nil {
		return Params{}, err
	}
	if fs.NArg() > 0 {
		return Params{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func kindNames() string {
	kinds := profile.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

// Validate reports every setting that is out of range.
func (p Params) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	check(p.Length >= MinLength && p.Length <= MaxLength, "L must be in [%g, %g], got %g", MinLength, MaxLength, p.Length)
	check(p.Speed > 0 && p.Speed <= MaxSpeed, "c must be in (0, %g], got %g", MaxSpeed, p.Speed)
	check(finite(p.Damping) && p.Damping >= 0, "alpha must be finite and not negative, got %g", p.Damping)
	check(finite(p.Amplitude) && p.Amplitude > 0, "d0 must be finite and positive, got %g", p.Amplitude)
	check(p.Points >= MinPoints, "N must be at least %d, got %d", MinPoints, p.Points)
	check(p.Modes >= 0, "modes must not be negative, got %d", p.Modes)
	check(finite(p.AudioDuration) && p.AudioDuration > 0, "audio-duration must be finite and positive, got %g", p.AudioDuration)
	check(p.SampleRate > 0 && p.SampleRate <= MaxSampleRate, "fs must be in (0, %d], got %d", MaxSampleRate, p.SampleRate)
	if finite(p.AudioDuration) && p.AudioDuration > 0 && p.SampleRate > 0 {
		check(p.AudioDuration*float64(p.SampleRate) <= MaxAudioSamples,
			"audio-duration*fs must not exceed %d samples, got %.0f", MaxAudioSamples, p.AudioDuration*float64(p.SampleRate))
	}
	check(p.FPS > 0, "fps must be positive, got %d", p.FPS)
	check(slices.Contains(Views, p.View), "view must be one of %s, got %q", strings.Join(Views, ", "), p.View)

	kind, err := profile.ParseKind(p.Kind)
	if err != nil {
		errs = append(errs, err)
	} else if kind == profile.Custom && strings.TrimSpace(p.Equation) == "" {
		errs = append(errs, errors.New("init=custom requires -equation"))
	}
	return errors.Join(errs...)
}

// ProfileKind returns the parsed initial condition. Call Validate first.
func (p Params) ProfileKind() profile.Kind {
	k, _ := profile.ParseKind(p.Kind)
	return k
}
