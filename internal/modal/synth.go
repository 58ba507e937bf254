package modal

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// normEpsilon keeps normalization finite for a silent signal.
const normEpsilon = 1e-12

// minChunk is the smallest slice of the time axis handed to one worker.
const minChunk = 4096

// maxSamples caps a single render so the sample count fits an int32.
const maxSamples = math.MaxInt32

// Voice describes where and how a string is listened to.
type Voice struct {
	Length     float64 // string length L
	Speed      float64 // wave speed c
	Duration   float64 // seconds of audio to render
	SampleRate int
	Excitation float64 // pickup position on the string, in [0, L]
	Damping    float64 // alpha; 0 disables the decay envelope
}

// Samples returns the number of samples Synthesize produces for v.
func (v Voice) Samples() int {
	return int(math.Round(v.Duration * float64(v.SampleRate)))
}

func (v Voice) validate() error {
	var errs []error
	if v.Length <= 0 {
		errs = append(errs, errors.New("string length must be positive"))
	}
	if v.SampleRate <= 0 {
		errs = append(errs, errors.New("sample rate must be positive"))
	}
	for _, f := range []struct {
		name string
		val  float64
	}{
		{"string length", v.Length},
		{"wave speed", v.Speed},
		{"duration", v.Duration},
		{"excitation point", v.Excitation},
		{"damping", v.Damping},
	} {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %g", f.name, f.val))
		}
	}
	if v.Duration < 0 {
		errs = append(errs, errors.New("duration must not be negative"))
	} else if v.SampleRate > 0 && v.Duration*float64(v.SampleRate) > maxSamples {
		errs = append(errs, fmt.Errorf("duration %gs at %d Hz exceeds %d samples", v.Duration, v.SampleRate, maxSamples))
	}
	return errors.Join(errs...)
}

type partial struct {
	amp   float64
	omega float64
}

// Synthesize renders the standing-wave sum of the modes in B as heard at
// v.Excitation:
//
//	s(t) = exp(-alpha t) * sum_n B[n] sin(n pi x0/L) cos(n pi c t/L)
//
// normalized to its own peak. Loudness is therefore relative: any non-silent
// input peaks at 1 regardless of the physical amplitude.
func Synthesize(B []float64, v Voice) ([]float32, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}
	n := v.Samples()
	out := make([]float32, n)
	if n == 0 {
		return out, nil
	}

	var partials []partial
	for m := 1; m < len(B); m++ {
		k := float64(m) * math.Pi / v.Length
		amp := B[m] * math.Sin(k*v.Excitation)
		if amp == 0 {
			continue
		}
		partials = append(partials, partial{amp: amp, omega: k * v.Speed})
	}
	if len(partials) == 0 {
		return out, nil
	}

	signal := make([]float64, n)
	workers := runtime.GOMAXPROCS(0)
	chunk := max((n+workers-1)/workers, minChunk)
	peaks := make([]float64, (n+chunk-1)/chunk)

	var g errgroup.Group
	g.SetLimit(workers)
	for w := range peaks {
		lo := w * chunk
		hi := min(lo+chunk, n)
		g.Go(func() error {
			peaks[w] = render(signal[lo:hi], lo, partials, v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var peak float64
	for _, p := range peaks {
		peak = max(peak, p)
	}
	scale := 1 / (peak + normEpsilon)
	for i, s := range signal {
		out[i] = float32(s * scale)
	}
	return out, nil
}

// render fills dst with samples first, first+1, ... and returns the largest
// absolute value written.
func render(dst []float64, first int, partials []partial, v Voice) float64 {
	rate := float64(v.SampleRate)
	var peak float64
	for i := range dst {
		t := float64(first+i) / rate
		var s float64
		for _, p := range partials {
			s += p.amp * math.Cos(p.omega*t)
		}
		if v.Damping > 0 {
			s *= math.Exp(-v.Damping * t)
		}
		dst[i] = s
		peak = max(peak, math.Abs(s))
	}
	return peak
}
