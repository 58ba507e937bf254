package visualizer

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestRGBFromHSVHues(t *testing.T) {
	cases := []struct {
		h    float64
		want colorRGB
	}{
		{0, colorRGB{R: 255}},
		{0.5, colorRGB{G: 255, B: 255}},
		{-0.5, colorRGB{G: 255, B: 255}},
		{1, colorRGB{R: 255}},
	}
	for _, tc := range cases {
		if got := rgbFromHSV(tc.h, 1, 1); got != tc.want {
			t.Fatalf("rgbFromHSV(%v) = %+v, want %+v", tc.h, got, tc.want)
		}
	}
	if got := rgbFromHSV(0.4, 0, 1); got != (colorRGB{R: 255, G: 255, B: 255}) {
		t.Fatalf("zero saturation = %+v, want white", got)
	}
}

func TestHeatColorEnds(t *testing.T) {
	if heatColor(-1) != amplitudePalette[0] {
		t.Fatal("expected first palette entry below 0")
	}
	if heatColor(2) != amplitudePalette[len(amplitudePalette)-1] {
		t.Fatal("expected last palette entry above 1")
	}
}

func TestColorSequenceTrueColor(t *testing.T) {
	seq := colorSequence(termenv.TrueColor, colorRGB{R: 1, G: 2, B: 3})
	if seq != "\x1b[38;2;1;2;3m" {
		t.Fatalf("sequence = %q", seq)
	}
	if colorSequence(termenv.Ascii, colorRGB{R: 1}) != "" {
		t.Fatal("expected no sequence without colour support")
	}
	if !strings.HasPrefix(colorSequence(termenv.ANSI256, colorRGB{R: 200}), "\x1b[38;5;") {
		t.Fatal("expected 256-colour sequence")
	}
}
