package visualizer

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// Meter spring tuning; damping below 1 lets attacks overshoot slightly.
const (
	meterFrequency = 9.0
	meterDamping   = 0.9
)

// Meter shows how much of the initial amplitude the string still carries,
// as a spring-smoothed bar with a decaying peak hold.
type Meter struct {
	spring harmonica.Spring
	level  float64 // spring position
	speed  float64 // spring velocity
	peak   float64
	output string
}

// NewMeter creates a meter animated at fps.
func NewMeter(fps int) *Meter {
	if fps <= 0 {
		fps = 30
	}
	return &Meter{spring: harmonica.NewSpring(harmonica.FPS(fps), meterFrequency, meterDamping)}
}

// Level returns the smoothed level in [0, 1].
func (m *Meter) Level() float64 { return clamp01(m.level) }

// Update moves the meter toward amp/full and renders a bar of width cells.
func (m *Meter) Update(amp, full float64, width int) {
	target := 0.0
	if full > 0 {
		target = clamp01(amp / full)
	}
	m.level, m.speed = m.spring.Update(m.level, m.speed, target)
	lvl := clamp01(m.level)

	const peakDecay = 0.01
	if lvl > m.peak {
		m.peak = lvl
	} else {
		m.peak = math.Max(0, m.peak-peakDecay)
	}

	barWidth := width - 10 // "amp " prefix + " 100%" suffix
	if barWidth < 10 {
		barWidth = 10
	}
	m.output = fmt.Sprintf("amp %s %3.0f%%", renderBar(lvl, m.peak, barWidth), 100*lvl)
}

// Reset drops the meter back to zero.
func (m *Meter) Reset() {
	m.level, m.speed, m.peak = 0, 0, 0
}

func renderBar(level, peakLevel float64, width int) string {
	filled := int(level * float64(width))
	peakPos := int(peakLevel * float64(width))
	if peakPos >= width {
		peakPos = width - 1
	}

	bar := make([]rune, width)
	profile := currentColorProfile()
	var sb strings.Builder
	color := newANSIState()
	for i := range width {
		if i < filled {
			bar[i] = '█'
		} else if i == peakPos && peakPos > 0 {
			bar[i] = '│'
		} else {
			bar[i] = '─'
		}
	}

	if profile == colorNone {
		return string(bar)
	}

	for i, ch := range bar {
		switch {
		case ch == '│':
			color.set(&sb, colorRGB{R: 255, G: 252, B: 210})
		case i < width*6/10:
			color.set(&sb, colorRGB{R: 60, G: 224, B: 116})
		case i < width*8/10:
			color.set(&sb, colorRGB{R: 240, G: 198, B: 72})
		default:
			color.set(&sb, colorRGB{R: 242, G: 96, B: 86})
		}
		sb.WriteRune(ch)
	}
	color.reset(&sb)
	return sb.String()
}

func (m *Meter) View() string {
	return m.output
}
