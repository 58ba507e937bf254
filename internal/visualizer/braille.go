package visualizer

import (
	"math"
	"strings"
)

// Braille renders the string as a thin line using Unicode Braille
// characters. Each cell is a 2x4 dot grid, giving 2x horizontal and 4x
// vertical resolution.
type Braille struct {
	output  string
	profile colorProfile
}

func NewBraille() *Braille {
	return &Braille{profile: currentColorProfile()}
}

func (b *Braille) Name() string { return "braille" }

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

func (b *Braille) Update(y []float64, limit float64, width, height int) {
	if height < 1 {
		height = 1
	}
	cols := width - 2
	if cols < 2 {
		cols = 2
	}

	dotCols := cols * 2
	dotRows := height * 4
	vals := resample(y, dotCols)

	dots := make([][]bool, dotRows)
	for r := range dots {
		dots[r] = make([]bool, dotCols)
	}
	toRow := func(v float64) int {
		return int(math.Round((1 - level(v, limit)) * float64(dotRows-1)))
	}

	if len(y) > 0 {
		prev := toRow(vals[0])
		for dc := range dotCols {
			cur := toRow(vals[dc])
			lo, hi := prev, cur
			if lo > hi {
				lo, hi = hi, lo
			}
			// Fill the vertical run so steep slopes stay connected.
			for r := lo; r <= hi; r++ {
				dots[r][dc] = true
			}
			prev = cur
		}
	}

	color := newANSIState()
	var out strings.Builder
	for row := range height {
		if row > 0 {
			out.WriteByte('\n')
		}
		for col := range cols {
			var pattern uint
			for dx := range 2 {
				for dy := range 4 {
					if dots[row*4+dy][col*2+dx] {
						pattern |= 1 << brailleBits[dx][dy]
					}
				}
			}
			if pattern != 0 && b.profile != colorNone {
				mag := math.Abs(vals[col*2]) / math.Max(limit, 1e-12)
				color.set(&out, heatColor(0.2+0.8*mag))
			}
			out.WriteRune(rune(0x2800 + pattern))
		}
		color.reset(&out)
	}

	b.output = out.String()
}

func (b *Braille) View() string {
	return b.output
}
