package profile

import (
	"math"
)

// value is either a scalar or one number per grid point.
type value struct {
	vec []float64
	s   float64
}

func scalar(v float64) value { return value{s: v} }

func (v value) isVec() bool { return v.vec != nil }

func (v value) at(i int) float64 {
	if v.vec != nil {
		return v.vec[i]
	}
	return v.s
}

type env struct {
	x     []float64
	L, d0 float64
}

type node interface {
	eval(e *env) (value, error)
}

type numNode struct{ v float64 }

type varNode struct{ name string }

type unaryNode struct {
	op byte
	x  node
}

type binaryNode struct {
	op   byte
	pos  int
	l, r node
}

type callNode struct {
	name string
	fn   function
	pos  int
	args []node
}

type function struct {
	arity int
	f1    func(float64) float64
	f2    func(a, b float64) float64
	// divides marks functions whose second argument must be non-zero.
	divides bool
}

var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
}

var functions = map[string]function{
	"sin":    {arity: 1, f1: math.Sin},
	"cos":    {arity: 1, f1: math.Cos},
	"tan":    {arity: 1, f1: math.Tan},
	"asin":   {arity: 1, f1: math.Asin},
	"acos":   {arity: 1, f1: math.Acos},
	"atan":   {arity: 1, f1: math.Atan},
	"arcsin": {arity: 1, f1: math.Asin},
	"arccos": {arity: 1, f1: math.Acos},
	"arctan": {arity: 1, f1: math.Atan},
	"sinh":   {arity: 1, f1: math.Sinh},
	"cosh":   {arity: 1, f1: math.Cosh},
	"tanh":   {arity: 1, f1: math.Tanh},
	"exp":    {arity: 1, f1: math.Exp},
	"log":    {arity: 1, f1: math.Log},
	"log10":  {arity: 1, f1: math.Log10},
	"log2":   {arity: 1, f1: math.Log2},
	"sqrt":   {arity: 1, f1: math.Sqrt},
	"abs":    {arity: 1, f1: math.Abs},
	"floor":  {arity: 1, f1: math.Floor},
	"ceil":   {arity: 1, f1: math.Ceil},
	"sign":   {arity: 1, f1: sign},
	"pow":    {arity: 2, f2: math.Pow},
	"atan2":  {arity: 2, f2: math.Atan2},
	"min":    {arity: 2, f2: math.Min},
	"max":    {arity: 2, f2: math.Max},
	"mod":    {arity: 2, f2: floorMod, divides: true},
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return v // keeps 0, -0 and NaN
}

// floorMod takes the sign of the divisor, like Python's % operator.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// Eval evaluates the expression at every grid point. The result must depend
// on x and be finite everywhere.
func (e *Expr) Eval(x []float64, L, d0 float64) ([]float64, error) {
	xs := x
	if xs == nil {
		xs = []float64{}
	}
	v, err := e.root.eval(&env{x: xs, L: L, d0: d0})
	if err != nil {
		return nil, err
	}
	if !v.isVec() {
		return nil, exprErrorf(ExprType, -1, "expression evaluates to a single number, expected one value per grid point (does it use x?)")
	}
	if len(v.vec) != len(x) {
		return nil, exprErrorf(ExprType, -1, "expression produced %d values for %d grid points", len(v.vec), len(x))
	}
	for i, y := range v.vec {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, exprErrorf(ExprNonFinite, -1, "value %v at x=%g", y, x[i])
		}
	}
	out := make([]float64, len(v.vec))
	copy(out, v.vec)
	return out, nil
}

func (n *numNode) eval(*env) (value, error) { return scalar(n.v), nil }

func (n *varNode) eval(e *env) (value, error) {
	switch n.name {
	case "x":
		return value{vec: e.x}, nil
	case "L":
		return scalar(e.L), nil
	default:
		return scalar(e.d0), nil
	}
}

func (n *unaryNode) eval(e *env) (value, error) {
	v, err := n.x.eval(e)
	if err != nil {
		return value{}, err
	}
	if n.op == '+' {
		return v, nil
	}
	return apply1(v, func(a float64) float64 { return -a }), nil
}

func (n *binaryNode) eval(e *env) (value, error) {
	l, err := n.l.eval(e)
	if err != nil {
		return value{}, err
	}
	r, err := n.r.eval(e)
	if err != nil {
		return value{}, err
	}
	switch n.op {
	case '+':
		return apply2(l, r, func(a, b float64) float64 { return a + b }), nil
	case '-':
		return apply2(l, r, func(a, b float64) float64 { return a - b }), nil
	case '*':
		return apply2(l, r, func(a, b float64) float64 { return a * b }), nil
	case '/':
		if hasZero(r) {
			return value{}, exprErrorf(ExprZeroDivision, n.pos, "division by zero")
		}
		return apply2(l, r, func(a, b float64) float64 { return a / b }), nil
	default:
		return apply2(l, r, math.Pow), nil
	}
}

func (n *callNode) eval(e *env) (value, error) {
	args := make([]value, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(e)
		if err != nil {
			return value{}, err
		}
		args[i] = v
	}
	if n.fn.arity == 1 {
		return apply1(args[0], n.fn.f1), nil
	}
	if n.fn.divides && hasZero(args[1]) {
		return value{}, exprErrorf(ExprZeroDivision, n.pos, "%s with a zero divisor", n.describe())
	}
	return apply2(args[0], args[1], n.fn.f2), nil
}

func hasZero(v value) bool {
	if !v.isVec() {
		return v.s == 0
	}
	for _, b := range v.vec {
		if b == 0 {
			return true
		}
	}
	return false
}

func apply1(v value, f func(float64) float64) value {
	if !v.isVec() {
		return scalar(f(v.s))
	}
	out := make([]float64, len(v.vec))
	for i, a := range v.vec {
		out[i] = f(a)
	}
	return value{vec: out}
}

func apply2(l, r value, f func(a, b float64) float64) value {
	if !l.isVec() && !r.isVec() {
		return scalar(f(l.s, r.s))
	}
	n := len(l.vec)
	if !l.isVec() {
		n = len(r.vec)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = f(l.at(i), r.at(i))
	}
	return value{vec: out}
}
