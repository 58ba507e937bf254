package profile

import (
	"fmt"
	"math"
	"strings"
)

// Kind names an initial displacement shape.
type Kind uint8

const (
	Triangular Kind = iota
	Fundamental
	Harmonic
	Custom
)

// peakAt is where the triangular pluck reaches d0, as a fraction of L.
const peakAt = 0.8

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{Triangular, Fundamental, Harmonic, Custom}
}

func (k Kind) String() string {
	switch k {
	case Triangular:
		return "triangular"
	case Fundamental:
		return "fundamental"
	case Harmonic:
		return "harmonic"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a name such as "triangular" to its Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "triangular":
		return Triangular, nil
	case "fundamental":
		return Fundamental, nil
	case "harmonic":
		return Harmonic, nil
	case "custom":
		return Custom, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Build evaluates the initial displacement over the grid x of a string of
// length L and returns it with the point where the audio is picked up.
// expr is only consulted for Custom.
func Build(kind Kind, x []float64, L, d0 float64, expr string) ([]float64, float64, error) {
	y := make([]float64, len(x))
	switch kind {
	case Triangular:
		peak := peakAt * L
		for i, xi := range x {
			if xi <= peak {
				y[i] = d0 / peak * xi
			} else {
				y[i] = -d0 / ((1 - peakAt) * L) * (xi - L)
			}
		}
		return y, 0.25 * L, nil

	case Fundamental:
		for i, xi := range x {
			y[i] = d0 * math.Sin(math.Pi*xi/L)
		}
		return y, 0.5 * L, nil

	case Harmonic:
		for i, xi := range x {
			y[i] = d0 * math.Sin(2*math.Pi*xi/L)
		}
		return y, 0.25 * L, nil

	case Custom:
		e, err := Compile(expr)
		if err != nil {
			return nil, 0, err
		}
		y, err = e.Eval(x, L, d0)
		if err != nil {
			return nil, 0, err
		}
		return y, 0.5 * L, nil
	}
	return nil, 0, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}
