package ast

import (
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

// Low-level instructions work on raw pointers and skip assignability.

// LLI binds the result of a low-level instruction to a name.
type LLI struct {
	Name  string
	Kind  types.Type
	Value Expression
	Sp    token.Span
}

func (n *LLI) statementNode()   {}
func (n *LLI) Span() token.Span { return n.Sp }
func (n *LLI) Type() types.Type { return types.Void }

// Load reads a Kind through the pointer Source.
type Load struct {
	Source Expression
	Kind   types.Type
	Sp     token.Span
}

func (n *Load) expressionNode()  {}
func (n *Load) Span() token.Span { return n.Sp }
func (n *Load) Type() types.Type { return n.Kind }

// Write stores Value as WriteType through Source and yields a null pointer.
type Write struct {
	Source    Expression
	WriteType types.Type
	Value     Expression
	Sp        token.Span
}

func (n *Write) expressionNode()  {}
func (n *Write) Span() token.Span { return n.Sp }
func (n *Write) Type() types.Type { return types.OpaquePtr }

// Address computes a pointer from Source with caller supplied indexes.
type Address struct {
	Source  Expression
	Indexes []Expression
	Kind    types.Type
	Sp      token.Span
}

func (n *Address) expressionNode()  {}
func (n *Address) Span() token.Span { return n.Sp }
func (n *Address) Type() types.Type { return n.Kind }

type AllocSite int

const (
	AllocStack AllocSite = iota
	AllocHeap
	AllocStatic
)

func (s AllocSite) String() string {
	switch s {
	case AllocHeap:
		return "heap"
	case AllocStatic:
		return "static"
	}
	return "stack"
}

// Alloc reserves storage for Of and yields a pointer to it.
type Alloc struct {
	Site  AllocSite
	Of    types.Type
	Attrs Attributes
	Sp    token.Span
}

func (n *Alloc) expressionNode()  {}
func (n *Alloc) Span() token.Span { return n.Sp }
func (n *Alloc) Type() types.Type { return types.NewPtr(n.Of) }
