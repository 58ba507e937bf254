package visualizer

// Visualizer renders the string displacement as terminal art. Values are
// drawn against a fixed range of [-limit, limit].
type Visualizer interface {
	Name() string
	Update(y []float64, limit float64, width, height int)
	View() string
}

// Recorder is a Visualizer that keeps a time series. Record is called once
// per animation frame whether or not the view is on screen, so switching to
// it never shows a gap.
type Recorder interface {
	Record(y []float64)
}

// Modes returns all available visualizers. reference is the initial profile
// drawn behind the live trace, and probe the grid index whose history the
// probe view follows.
func Modes(reference []float64, probe int) []Visualizer {
	return []Visualizer{
		NewBraille(),
		NewTrace(reference),
		NewGraph(),
		NewProbe(probe, 0),
	}
}

// Index returns the position of the visualizer called name in modes, or -1.
func Index(modes []Visualizer, name string) int {
	for i, v := range modes {
		if v.Name() == name {
			return i
		}
	}
	return -1
}

// resample linearly interpolates y onto n evenly spaced columns spanning the
// whole string, so both fixed ends land on the first and last column.
func resample(y []float64, n int) []float64 {
	out := make([]float64, n)
	if len(y) == 0 || n == 0 {
		return out
	}
	if len(y) == 1 || n == 1 {
		for i := range out {
			out[i] = y[0]
		}
		return out
	}
	scale := float64(len(y)-1) / float64(n-1)
	for i := range out {
		pos := float64(i) * scale
		lo := int(pos)
		if lo >= len(y)-1 {
			out[i] = y[len(y)-1]
			continue
		}
		t := pos - float64(lo)
		out[i] = y[lo]*(1-t) + y[lo+1]*t
	}
	return out
}

// level maps v in [-limit, limit] to [0, 1], clamping outside values.
func level(v, limit float64) float64 {
	if limit <= 0 {
		return 0.5
	}
	return clamp01((v/limit + 1) / 2)
}
