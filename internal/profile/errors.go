package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is returned for an initial-condition name Build does not know.
	ErrUnknownKind = errors.New("unknown profile kind")

	// ErrInvalidExpression is the sentinel every *ExprError unwraps to.
	ErrInvalidExpression = errors.New("invalid expression")
)

// ExprErrorKind classifies why a custom expression was rejected.
type ExprErrorKind uint8

const (
	ExprSyntax ExprErrorKind = iota
	ExprUnresolvedName
	ExprType
	ExprZeroDivision
	ExprNonFinite
)

func (k ExprErrorKind) String() string {
	switch k {
	case ExprSyntax:
		return "syntax error"
	case ExprUnresolvedName:
		return "unresolved name"
	case ExprType:
		return "type error"
	case ExprZeroDivision:
		return "division by zero"
	case ExprNonFinite:
		return "non-finite value"
	default:
		return "expression error"
	}
}

// ExprError describes a rejected custom expression.
type ExprError struct {
	Kind ExprErrorKind
	Pos  int // byte offset into the source, -1 when not tied to a position
	Msg  string
}

func (e *ExprError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s: %s at offset %d: %s", ErrInvalidExpression, e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidExpression, e.Kind, e.Msg)
}

func (e *ExprError) Unwrap() error { return ErrInvalidExpression }

func exprErrorf(kind ExprErrorKind, pos int, format string, args ...any) *ExprError {
	return &ExprError{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
