package visualizer

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

type colorProfile = termenv.Profile

const colorNone = termenv.Ascii

type colorRGB struct {
	R uint8
	G uint8
	B uint8
}

func (c colorRGB) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	profileOnce sync.Once
	profile     colorProfile
	seqCache    sync.Map
)

// currentColorProfile detects the terminal's colour support once, honouring
// NO_COLOR and CLICOLOR_FORCE.
func currentColorProfile() colorProfile {
	profileOnce.Do(func() {
		profile = termenv.EnvColorProfile()
	})
	return profile
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func lerpColor(a, b colorRGB, t float64) colorRGB {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return colorRGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

func rgbFromHSV(h, s, v float64) colorRGB {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	s, v = clamp01(s), clamp01(v)
	channel := func(n float64) uint8 {
		k := math.Mod(n+h*6, 6)
		return uint8(255 * (v - v*s*math.Max(0, math.Min(k, math.Min(4-k, 1)))))
	}
	return colorRGB{R: channel(5), G: channel(3), B: channel(1)}
}

// amplitudePalette runs from a string at rest to one at full swing.
var amplitudePalette = []colorRGB{
	{R: 40, G: 60, B: 140},
	{R: 0, G: 170, B: 230},
	{R: 140, G: 240, B: 220},
	{R: 255, G: 225, B: 120},
	{R: 255, G: 120, B: 70},
}

// heatColor maps t in [0, 1] onto amplitudePalette.
func heatColor(t float64) colorRGB {
	t = clamp01(t)
	span := float64(len(amplitudePalette) - 1)
	i := int(t * span)
	if i >= len(amplitudePalette)-1 {
		return amplitudePalette[len(amplitudePalette)-1]
	}
	return lerpColor(amplitudePalette[i], amplitudePalette[i+1], t*span-float64(i))
}

// ansiState writes a colour sequence only when the colour changes.
type ansiState struct {
	profile colorProfile
	current uint32
}

func newANSIState() ansiState {
	return ansiState{profile: currentColorProfile(), current: ^uint32(0)}
}

func (s *ansiState) set(sb *strings.Builder, c colorRGB) {
	if s.profile == colorNone {
		return
	}
	key := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if key == s.current {
		return
	}
	sb.WriteString(colorSequence(s.profile, c))
	s.current = key
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.profile == colorNone || s.current == ^uint32(0) {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	s.current = ^uint32(0)
}

// colorSequence returns the SGR sequence for c, degraded to what profile
// supports.
func colorSequence(p colorProfile, c colorRGB) string {
	key := uint32(p)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	var seq string
	if col := p.Color(c.hex()); col != nil {
		if params := col.Sequence(false); params != "" {
			seq = termenv.CSI + params + "m"
		}
	}
	seqCache.Store(key, seq)
	return seq
}
