package ast

import (
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

// Block holds statements and expression statements in source order.
type Block struct {
	Stmts []Node
	Sp    token.Span
}

func (n *Block) statementNode()   {}
func (n *Block) Span() token.Span { return n.Sp }
func (n *Block) Type() types.Type { return types.Void }

// Local declares a function local. Value is nil for undefined locals.
type Local struct {
	Name  string
	Kind  types.Type
	Value Expression
	Attrs Attributes
	Meta  LocalMetadata
	Sp    token.Span
}

func (n *Local) statementNode()   {}
func (n *Local) Span() token.Span { return n.Sp }
func (n *Local) Type() types.Type { return n.Kind }

// Const is a constant, global when Meta.Global is set.
type Const struct {
	Name  string
	Kind  types.Type
	Value Expression
	Attrs Attributes
	Meta  ConstantMetadata
	Sp    token.Span
}

func (n *Const) statementNode()   {}
func (n *Const) declarationNode() {}
func (n *Const) Span() token.Span { return n.Sp }
func (n *Const) Type() types.Type { return n.Kind }

// Static is a static variable. Value is nil when uninitialized.
type Static struct {
	Name  string
	Kind  types.Type
	Value Expression
	Attrs Attributes
	Meta  StaticMetadata
	Sp    token.Span
}

func (n *Static) statementNode()   {}
func (n *Static) declarationNode() {}
func (n *Static) Span() token.Span { return n.Sp }
func (n *Static) Type() types.Type { return n.Kind }

// Mut assigns Value to the storage behind Source.
type Mut struct {
	Source Expression
	Value  Expression
	Sp     token.Span
}

func (n *Mut) statementNode()   {}
func (n *Mut) Span() token.Span { return n.Sp }
func (n *Mut) Type() types.Type { return types.Void }

type If struct {
	Cond  Expression
	Block *Block
	Elifs []*Elif
	Else  *Else
	Sp    token.Span
}

func (n *If) statementNode()   {}
func (n *If) Span() token.Span { return n.Sp }
func (n *If) Type() types.Type { return types.Void }

type Elif struct {
	Cond  Expression
	Block *Block
	Sp    token.Span
}

func (n *Elif) statementNode()   {}
func (n *Elif) Span() token.Span { return n.Sp }
func (n *Elif) Type() types.Type { return types.Void }

type Else struct {
	Block *Block
	Sp    token.Span
}

func (n *Else) statementNode()   {}
func (n *Else) Span() token.Span { return n.Sp }
func (n *Else) Type() types.Type { return types.Void }

type While struct {
	Cond  Expression
	Block *Block
	Sp    token.Span
}

func (n *While) statementNode()   {}
func (n *While) Span() token.Span { return n.Sp }
func (n *While) Type() types.Type { return types.Void }

// For is `for local; cond; actions { block }`.
type For struct {
	Local   *Local
	Cond    Expression
	Actions Expression
	Block   *Block
	Sp      token.Span
}

func (n *For) statementNode()   {}
func (n *For) Span() token.Span { return n.Sp }
func (n *For) Type() types.Type { return types.Void }

type Loop struct {
	Block *Block
	Sp    token.Span
}

func (n *Loop) statementNode()   {}
func (n *Loop) Span() token.Span { return n.Sp }
func (n *Loop) Type() types.Type { return types.Void }

type Break struct{ Sp token.Span }

func (n *Break) statementNode()   {}
func (n *Break) Span() token.Span { return n.Sp }
func (n *Break) Type() types.Type { return types.Void }

type Continue struct{ Sp token.Span }

func (n *Continue) statementNode()   {}
func (n *Continue) Span() token.Span { return n.Sp }
func (n *Continue) Type() types.Type { return types.Void }

// BreakAll leaves every enclosing loop of the current function.
type BreakAll struct{ Sp token.Span }

func (n *BreakAll) statementNode()   {}
func (n *BreakAll) Span() token.Span { return n.Sp }
func (n *BreakAll) Type() types.Type { return types.Void }

// ContinueAll jumps to the next iteration of the outermost loop.
type ContinueAll struct{ Sp token.Span }

func (n *ContinueAll) statementNode()   {}
func (n *ContinueAll) Span() token.Span { return n.Sp }
func (n *ContinueAll) Type() types.Type { return types.Void }

// Return. Expr is nil for `return;`.
type Return struct {
	Expr Expression
	Sp   token.Span
}

func (n *Return) statementNode()   {}
func (n *Return) Span() token.Span { return n.Sp }
func (n *Return) Type() types.Type {
	if n.Expr == nil {
		return types.Void
	}
	return n.Expr.Type()
}

type Unreachable struct{ Sp token.Span }

func (n *Unreachable) statementNode()   {}
func (n *Unreachable) Span() token.Span { return n.Sp }
func (n *Unreachable) Type() types.Type { return types.Void }
