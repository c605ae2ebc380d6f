package types

import (
	"fmt"

	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/token"
)

// TypeError is a user-facing type mismatch. Span points at the offending
// expression when the caller knows it.
type TypeError struct {
	Code diag.Code
	Msg  string
	Span token.Span
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Diagnostic converts the error for a sink.
func (e *TypeError) Diagnostic() *diag.Diagnostic {
	return diag.NewError(e.Code, e.Msg, e.Span)
}

func mismatch(lhs, rhs Type, span token.Span) *TypeError {
	return &TypeError{
		Code: diag.E0020,
		Msg:  fmt.Sprintf("Expected '%s' type, got '%s' type.", lhs, rhs),
		Span: span,
	}
}

func modifierMismatch(lhs, rhs Type, span token.Span) *TypeError {
	return &TypeError{
		Code: diag.E0021,
		Msg:  fmt.Sprintf("Expected '%s' type, got '%s' type. Their modifiers differ.", lhs, rhs),
		Span: span,
	}
}

func badCast(from, to Type, span token.Span) *TypeError {
	return &TypeError{
		Code: diag.E0032,
		Msg:  fmt.Sprintf("Cannot cast type '%s' to '%s'. Types are incompatible for cast.", from, to),
		Span: span,
	}
}
