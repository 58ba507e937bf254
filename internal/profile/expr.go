package profile

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a compiled custom profile expression. Its only inputs are the grid
// vector x and the scalars L and d0.
type Expr struct {
	src  string
	root node
}

// maxDepth bounds parser recursion for pathological inputs like "((((...".
const maxDepth = 200

// Compile parses src and resolves every name it references. Anything outside
// the grammar, or any name outside the fixed table, is rejected here.
func Compile(src string) (*Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, exprErrorf(ExprSyntax, 0, "empty expression")
	}
	root, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, exprErrorf(ExprSyntax, t.pos, "unexpected %s", t)
	}
	return &Expr{src: src, root: root}, nil
}

func (e *Expr) String() string { return e.src }

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return strconv.Quote(t.text)
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			start := i
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				i++
			}
			if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
				j := i + 1
				if j < len(src) && (src[j] == '+' || src[j] == '-') {
					j++
				}
				if j < len(src) && isDigit(src[j]) {
					i = j
					for i < len(src) && isDigit(src[i]) {
						i++
					}
				}
			}
			text := src[start:i]
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, exprErrorf(ExprSyntax, start, "malformed number %q", text)
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: v, pos: start})
		case c == '_' || isLetter(c):
			start := i
			for i < len(src) && (src[i] == '_' || isDigit(src[i]) || isLetter(src[i])) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: src[start:i], pos: start})
		case c == '*' && i+1 < len(src) && src[i+1] == '*':
			toks = append(toks, token{kind: tokOp, text: "^", pos: i})
			i += 2
		case strings.IndexByte("+-*/^", c) >= 0:
			toks = append(toks, token{kind: tokOp, text: string(c), pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++
		default:
			return nil, exprErrorf(ExprSyntax, i, "unexpected character %q", rune(c))
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

type parser struct {
	toks  []token
	i     int
	depth int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) isOp(ops string) bool {
	t := p.peek()
	return t.kind == tokOp && strings.Contains(ops, t.text)
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > maxDepth {
		return exprErrorf(ExprSyntax, pos, "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// sum := product (("+" | "-") product)*
func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.isOp("+-") {
		op := p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op.text[0], pos: op.pos, l: left, r: right}
	}
	return left, nil
}

// product := unary (("*" | "/") unary)*
func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*/") {
		op := p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op.text[0], pos: op.pos, l: left, r: right}
	}
	return left, nil
}

// unary := ("+" | "-") unary | power
func (p *parser) parseUnary() (node, error) {
	if p.isOp("+-") {
		op := p.next()
		if err := p.enter(op.pos); err != nil {
			return nil, err
		}
		defer p.leave()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: op.text[0], x: x}, nil
	}
	return p.parsePower()
}

// power := primary ("^" unary)?
//
// The exponent is parsed as unary, so "2^-1" works and "a^b^c" groups to the
// right. "-x^2" is "-(x^2)".
func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	op := p.next()
	if err := p.enter(op.pos); err != nil {
		return nil, err
	}
	defer p.leave()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &binaryNode{op: '^', pos: op.pos, l: base, r: exp}, nil
}

func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return &numNode{v: t.num}, nil

	case tokLParen:
		if err := p.enter(t.pos); err != nil {
			return nil, err
		}
		defer p.leave()
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, exprErrorf(ExprSyntax, closing.pos, "expected \")\", found %s", closing)
		}
		return inner, nil

	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.parseCall(t)
		}
		if v, ok := constants[t.text]; ok {
			return &numNode{v: v}, nil
		}
		if isVariable(t.text) {
			return &varNode{name: t.text}, nil
		}
		if _, ok := functions[t.text]; ok {
			return nil, exprErrorf(ExprType, t.pos, "function %s used without arguments", t.text)
		}
		return nil, exprErrorf(ExprUnresolvedName, t.pos, "name %q is not defined", t.text)
	}
	return nil, exprErrorf(ExprSyntax, t.pos, "unexpected %s", t)
}

func (p *parser) parseCall(name token) (node, error) {
	fn, ok := functions[name.text]
	if !ok {
		if _, isConst := constants[name.text]; isConst || isVariable(name.text) {
			return nil, exprErrorf(ExprType, name.pos, "%s is not callable", name.text)
		}
		return nil, exprErrorf(ExprUnresolvedName, name.pos, "function %q is not defined", name.text)
	}
	open := p.next()
	if err := p.enter(open.pos); err != nil {
		return nil, err
	}
	defer p.leave()

	var args []node
	if p.peek().kind != tokRParen {
		for {
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if closing := p.next(); closing.kind != tokRParen {
		return nil, exprErrorf(ExprSyntax, closing.pos, "expected \")\" to close call to %s, found %s", name.text, closing)
	}
	if len(args) != fn.arity {
		return nil, exprErrorf(ExprType, name.pos, "%s takes %d argument(s), got %d", name.text, fn.arity, len(args))
	}
	return &callNode{name: name.text, fn: fn, pos: name.pos, args: args}, nil
}

func isVariable(name string) bool {
	switch name {
	case "x", "L", "d0":
		return true
	}
	return false
}

// describe is used in diagnostics that refer to a whole call.
func (c *callNode) describe() string {
	return fmt.Sprintf("%s(...)", c.name)
}
