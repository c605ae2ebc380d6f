package linter

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

// EventType labels what an expression does with a name.
type EventType int

const (
	Read      EventType = iota
	Mutate              // ++ or -- applied to a reference
	Call                // direct call of a named function
	Construct           // struct constructor
	Access              // struct field read through a property
	EnumUse             // enum field value
	Unhandled           // expression the linter does not know
)

// UseEvent records a single use of Name. Field is set for Access and
// EnumUse events.
type UseEvent struct {
	Name  string
	Field string
	Kind  EventType
	Span  token.Span
}

// collectEvents walks an expression tree and returns every use it finds, in
// source order. It never looks into statements.
func collectEvents(expr ast.Expression) []UseEvent {
	var evs []UseEvent
	ast.Inspect(expr, func(n ast.Node) bool {
		switch e := n.(type) {
		// Leaves without names.
		case *ast.Integer, *ast.Float, *ast.Boolean, *ast.Char, *ast.Str, *ast.NullPtr:

		case *ast.Reference:
			evs = append(evs, UseEvent{Name: e.Name, Kind: Read, Span: e.Sp})

		case *ast.UnaryOp:
			if ref, ok := e.Expr.(*ast.Reference); ok && e.Op.IsMutating() {
				evs = append(evs, UseEvent{Name: ref.Name, Kind: Mutate, Span: e.Sp})
			}

		case *ast.Call:
			evs = append(evs, UseEvent{Name: e.Name, Kind: Call, Span: e.Sp})

		case *ast.Constructor:
			evs = append(evs, UseEvent{Name: e.Name, Kind: Construct, Span: e.Sp})

		case *ast.Property:
			if st, ok := types.StructFields(e.Source.Type()); ok {
				evs = append(evs, UseEvent{Name: st.Name, Field: e.Name, Kind: Access, Span: e.Sp})
			}

		case *ast.EnumValue:
			evs = append(evs, UseEvent{Name: e.Enum, Field: e.Name, Kind: EnumUse, Span: e.Sp})

		// Nodes that only carry sub expressions.
		case *ast.FixedArray, *ast.Array, *ast.Index, *ast.BinaryOp, *ast.Group,
			*ast.DirectRef, *ast.Deref, *ast.As, *ast.Indirect, *ast.AsmValue,
			*ast.Builtin, *ast.Load, *ast.Write, *ast.Address, *ast.Alloc:

		default:
			evs = append(evs, UseEvent{Name: fmt.Sprintf("%T", n), Kind: Unhandled, Span: n.Span()})
			return false
		}
		return true
	})
	return evs
}
