// Package modal decomposes a string's initial shape into its sine eigenmodes
// and turns the modal amplitudes back into sound.
package modal

import "math"

// FineSamples is how densely the initial profile is resampled before
// projection, independent of the simulation grid.
const FineSamples = 4000

// Coefficients projects the profile f, sampled at the increasing positions x
// over [0, L], onto the first modes sine eigenmodes sin(n*pi*x/L).
//
// The result has modes+1 entries; index 0 is always zero so that B[n]
// belongs to mode n.
func Coefficients(x, f []float64, L float64, modes int) []float64 {
	if modes < 0 {
		modes = 0
	}
	B := make([]float64, modes+1)
	if len(x) < 2 || len(f) != len(x) || L <= 0 {
		return B
	}
	g := make([]float64, len(x))
	for n := 1; n <= modes; n++ {
		k := float64(n) * math.Pi / L
		for i, xi := range x {
			g[i] = f[i] * math.Sin(k*xi)
		}
		B[n] = 2 / L * trapz(g, x)
	}
	return B
}

// trapz integrates y over x with the trapezoidal rule, accumulating with
// Neumaier compensation so thousands of small panels do not lose precision.
func trapz(y, x []float64) float64 {
	var sum, comp float64
	for i := 1; i < len(x); i++ {
		panel := 0.5 * (y[i] + y[i-1]) * (x[i] - x[i-1])
		t := sum + panel
		if math.Abs(sum) >= math.Abs(panel) {
			comp += (sum - t) + panel
		} else {
			comp += (panel - t) + sum
		}
		sum = t
	}
	return sum + comp
}
