package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/olivier-w/vibra/internal/grid"
)

const tol = 1e-12

func TestBuildReturnsGridSizedProfiles(t *testing.T) {
	for _, L := range []float64{0.5, 1, 7.5} {
		x := grid.Linspace(0, L, 101)
		for _, kind := range []Kind{Triangular, Fundamental, Harmonic} {
			y, x0, err := Build(kind, x, L, 0.1, "")
			if err != nil {
				t.Fatalf("Build(%s, L=%v) error = %v", kind, L, err)
			}
			if len(y) != len(x) {
				t.Fatalf("Build(%s) len = %d, want %d", kind, len(y), len(x))
			}
			if math.IsNaN(y[0]) || math.IsInf(y[0], 0) || math.IsNaN(y[len(y)-1]) || math.IsInf(y[len(y)-1], 0) {
				t.Fatalf("Build(%s) boundary values not finite: %v, %v", kind, y[0], y[len(y)-1])
			}
			if x0 < 0 || x0 > L {
				t.Fatalf("Build(%s) excitation point %v outside [0, %v]", kind, x0, L)
			}
		}
	}
}

func TestTriangularPeakAndEnds(t *testing.T) {
	x := grid.Linspace(0, 1, 11) // 0.8 is a grid point
	y, x0, err := Build(Triangular, x, 1, 0.1, "")
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if math.Abs(y[8]-0.1) > tol {
		t.Fatalf("y(0.8) = %v, want 0.1", y[8])
	}
	if math.Abs(y[0]) > tol || math.Abs(y[10]) > tol {
		t.Fatalf("ends = %v, %v, want 0", y[0], y[10])
	}
	if math.Abs(y[4]-0.05) > tol {
		t.Fatalf("y(0.4) = %v, want 0.05 on the rising ramp", y[4])
	}
	if x0 != 0.25 {
		t.Fatalf("x0 = %v, want 0.25", x0)
	}
}

func TestFundamentalShape(t *testing.T) {
	x := grid.Linspace(0, 1, 11)
	y, x0, err := Build(Fundamental, x, 1, 0.1, "")
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	if math.Abs(y[5]-0.1) > tol {
		t.Fatalf("y(0.5) = %v, want 0.1", y[5])
	}
	if math.Abs(y[0]) > tol || math.Abs(y[10]) > tol {
		t.Fatalf("ends = %v, %v, want 0", y[0], y[10])
	}
	if x0 != 0.5 {
		t.Fatalf("x0 = %v, want 0.5", x0)
	}
}

func TestHarmonicShape(t *testing.T) {
	x := grid.Linspace(0, 2, 9)
	y, x0, err := Build(Harmonic, x, 2, 0.2, "")
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	// x = 0.5 is a quarter of the length: sin(pi/2).
	if math.Abs(y[2]-0.2) > tol || math.Abs(y[6]+0.2) > tol {
		t.Fatalf("harmonic extrema = %v, %v, want 0.2, -0.2", y[2], y[6])
	}
	if x0 != 0.5 {
		t.Fatalf("x0 = %v, want 0.5", x0)
	}
}

func TestCustomProfileEvaluatesOverGrid(t *testing.T) {
	x := grid.Linspace(0, 1, 5)
	y, x0, err := Build(Custom, x, 1, 0.1, "d0*sin(pi*x/L)")
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	want, _, _ := Build(Fundamental, x, 1, 0.1, "")
	for i := range want {
		if math.Abs(y[i]-want[i]) > tol {
			t.Fatalf("y[%d] = %v, want %v", i, y[i], want[i])
		}
	}
	if x0 != 0.5 {
		t.Fatalf("x0 = %v, want 0.5", x0)
	}
}

func TestCustomProfileDoesNotAliasGrid(t *testing.T) {
	x := grid.Linspace(0, 1, 4)
	y, _, err := Build(Custom, x, 1, 0.1, "x")
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}
	y[1] = 42
	if x[1] == 42 {
		t.Fatal("custom profile shares storage with the grid")
	}
}

func TestUnknownKind(t *testing.T) {
	if _, err := ParseKind("sawtooth"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("ParseKind error = %v, want ErrUnknownKind", err)
	}
	_, _, err := Build(Kind(99), grid.Linspace(0, 1, 3), 1, 0.1, "")
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("Build error = %v, want ErrUnknownKind", err)
	}
}

func TestParseKindRoundTrips(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", k, err)
		}
		if got != k {
			t.Fatalf("ParseKind(%q) = %v", k, got)
		}
	}
	if got, err := ParseKind("  Fundamental "); err != nil || got != Fundamental {
		t.Fatalf("ParseKind is not case/space tolerant: %v, %v", got, err)
	}
}

func TestCustomExpressionDiagnostics(t *testing.T) {
	x := grid.Linspace(0, 1, 8)
	tests := []struct {
		expr string
		kind ExprErrorKind
	}{
		{"1/0", ExprZeroDivision},
		{"x/(x-x)", ExprZeroDivision},
		{"mod(x, 0)", ExprZeroDivision},
		{"y", ExprUnresolvedName},
		{"foo(x)", ExprUnresolvedName},
		{"sin(", ExprSyntax},
		{"x +* 2", ExprSyntax},
		{"x $ 2", ExprSyntax},
		{"", ExprSyntax},
		{"(x", ExprSyntax},
		{"d0", ExprType},
		{"2*L", ExprType},
		{"sin", ExprType},
		{"x(2)", ExprType},
		{"pow(x)", ExprType},
		{"log(x)", ExprNonFinite},
		{"sqrt(x-1)", ExprNonFinite},
	}
	for _, tt := range tests {
		_, _, err := Build(Custom, x, 1, 0.1, tt.expr)
		if err == nil {
			t.Fatalf("%q: expected error", tt.expr)
		}
		if !errors.Is(err, ErrInvalidExpression) {
			t.Fatalf("%q: error %v does not wrap ErrInvalidExpression", tt.expr, err)
		}
		var exprErr *ExprError
		if !errors.As(err, &exprErr) {
			t.Fatalf("%q: error %T is not *ExprError", tt.expr, err)
		}
		if exprErr.Kind != tt.kind {
			t.Fatalf("%q: kind = %v, want %v (%v)", tt.expr, exprErr.Kind, tt.kind, err)
		}
	}
}

func TestCompileRejectsDeepNesting(t *testing.T) {
	src := ""
	for range maxDepth + 5 {
		src += "("
	}
	src += "x"
	for range maxDepth + 5 {
		src += ")"
	}
	_, err := Compile(src)
	var exprErr *ExprError
	if !errors.As(err, &exprErr) || exprErr.Kind != ExprSyntax {
		t.Fatalf("Compile deep nesting error = %v, want syntax error", err)
	}
}
