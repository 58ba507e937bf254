package visualizer

import (
	"math"
	"strings"
)

// Trace plots the live string (●) over its initial profile (·), with the
// rest line through the middle. Where the two cross it draws ✦.
type Trace struct {
	reference []float64
	output    string
	profile   colorProfile
}

// NewTrace creates a trace view. reference may be nil.
func NewTrace(reference []float64) *Trace {
	return &Trace{
		reference: reference,
		profile:   currentColorProfile(),
	}
}

func (w *Trace) Name() string { return "trace" }

const (
	maskLive  uint8 = 1
	maskRef   uint8 = 2
	maskCross uint8 = 3
	maskAxis  uint8 = 4
)

func (w *Trace) Update(y []float64, limit float64, width, height int) {
	if len(y) < 2 || width < 4 || height < 1 {
		w.output = ""
		return
	}

	cols := width - 2
	if cols < 8 {
		cols = 8
	}
	if limit <= 0 {
		limit = 1
	}

	live := resample(y, cols)
	var ref []float64
	if len(w.reference) >= 2 {
		ref = resample(w.reference, cols)
	}

	mask := make([][]uint8, height)
	for r := range height {
		mask[r] = make([]uint8, cols)
	}

	mid := ampToRow(0, height)
	for c := range cols {
		mask[mid][c] = maskAxis
	}

	if ref != nil {
		prev := ampToRow(ref[0]/limit, height)
		for c := 1; c < cols; c++ {
			cur := ampToRow(ref[c]/limit, height)
			drawLineMask(mask, c-1, prev, c, cur, maskRef)
			prev = cur
		}
	}
	prev := ampToRow(live[0]/limit, height)
	for c := 1; c < cols; c++ {
		cur := ampToRow(live[c]/limit, height)
		drawLineMask(mask, c-1, prev, c, cur, maskLive)
		prev = cur
	}

	var out strings.Builder
	color := newANSIState()
	den := cols - 1
	if den < 1 {
		den = 1
	}

	for r := range height {
		if r > 0 {
			out.WriteByte('\n')
		}
		for c := range cols {
			switch mask[r][c] {
			case maskLive:
				if w.profile != colorNone {
					col := rgbFromHSV(0.53+0.04*math.Sin(float64(c)*0.22), 0.7, 0.95)
					color.set(&out, col)
				}
				out.WriteRune('●')
			case maskRef:
				if w.profile != colorNone {
					color.set(&out, rgbFromHSV(0.88, 0.35, 0.55))
				}
				out.WriteRune('·')
			case maskCross:
				if w.profile != colorNone {
					color.set(&out, colorRGB{R: 255, G: 248, B: 190})
				}
				out.WriteRune('✦')
			case maskAxis:
				if w.profile != colorNone {
					fade := 0.15 + 0.15*float64(c)/float64(den)
					color.set(&out, rgbFromHSV(0.6, 0.2, fade))
				}
				out.WriteRune('─')
			default:
				out.WriteByte(' ')
			}
		}
		color.reset(&out)
	}

	w.output = out.String()
}

// ampToRow maps amp in [-1, 1] to a row, top row for +1.
func ampToRow(amp float64, height int) int {
	if height <= 1 {
		return 0
	}
	amp = clamp01((amp + 1) / 2)
	span := height - 1
	row := int(math.Round((1 - amp) * float64(span)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func drawLineMask(mask [][]uint8, x0, y0, x1, y1 int, bit uint8) {
	maxY := len(mask)
	if maxY == 0 {
		return
	}
	maxX := len(mask[0])

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		if y0 >= 0 && y0 < maxY && x0 >= 0 && x0 < maxX {
			cur := mask[y0][x0]
			switch {
			case cur == 0 || cur == maskAxis || cur == bit:
				mask[y0][x0] = bit
			default:
				mask[y0][x0] = maskCross
			}
		}

		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (w *Trace) View() string {
	return w.output
}
