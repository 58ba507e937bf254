package grid

import "sort"

// Linspace returns n evenly spaced samples over [start, stop], both
// endpoints included.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range n {
		out[i] = start + float64(i)*step
	}
	// Pin the last sample so accumulated rounding never overshoots stop.
	out[n-1] = stop
	return out
}

// Interp linearly interpolates fp, sampled at the increasing positions xp,
// at each query position in xq. Queries outside [xp[0], xp[len-1]] take the
// nearest end value.
func Interp(xq, xp, fp []float64) []float64 {
	out := make([]float64, len(xq))
	n := len(xp)
	if n == 0 || len(fp) != n {
		return out
	}
	for i, q := range xq {
		switch {
		case q <= xp[0]:
			out[i] = fp[0]
		case q >= xp[n-1]:
			out[i] = fp[n-1]
		default:
			// First index with xp[j] > q; q lies in [xp[j-1], xp[j]).
			j := sort.SearchFloat64s(xp, q)
			if j < n && xp[j] == q {
				out[i] = fp[j]
				continue
			}
			x0, x1 := xp[j-1], xp[j]
			t := (q - x0) / (x1 - x0)
			out[i] = fp[j-1] + t*(fp[j]-fp[j-1])
		}
	}
	return out
}

// Gradient returns the local sample spacing at each position: central
// differences inside, one-sided differences at the two ends.
func Gradient(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	switch n {
	case 0:
		return out
	case 1:
		out[0] = 0
		return out
	}
	out[0] = x[1] - x[0]
	out[n-1] = x[n-1] - x[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (x[i+1] - x[i-1]) / 2
	}
	return out
}
