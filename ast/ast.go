package ast

import (
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

// The base Node interface. Every node knows where it came from and the type
// the parser resolved for it; statements report void.
type Node interface {
	Span() token.Span
	Type() types.Type
}

// All expression nodes implement this
type Expression interface {
	Node
	expressionNode()
}

// All statement nodes implement this
type Statement interface {
	Node
	statementNode()
}

// Declarations are the statements allowed at the top of a file.
type Declaration interface {
	Statement
	declarationNode()
}

// File is one compilation unit as handed over by the parser.
type File struct {
	Name  string
	Nodes []Node
}

// Literals

type Integer struct {
	Kind   types.Type
	Value  uint64
	Signed bool // Value holds a negative number in two's complement
	Sp     token.Span
}

func (n *Integer) expressionNode()  {}
func (n *Integer) Span() token.Span { return n.Sp }
func (n *Integer) Type() types.Type { return n.Kind }

type Float struct {
	Kind   types.Type
	Value  float64
	Signed bool
	Sp     token.Span
}

func (n *Float) expressionNode()  {}
func (n *Float) Span() token.Span { return n.Sp }
func (n *Float) Type() types.Type { return n.Kind }

type Boolean struct {
	Value bool
	Sp    token.Span
}

func (n *Boolean) expressionNode()  {}
func (n *Boolean) Span() token.Span { return n.Sp }
func (n *Boolean) Type() types.Type { return types.Bool }

type Char struct {
	Value byte
	Sp    token.Span
}

func (n *Char) expressionNode()  {}
func (n *Char) Span() token.Span { return n.Sp }
func (n *Char) Type() types.Type { return types.Char }

// Str is a string literal. It lowers to a private constant holding the bytes
// plus a terminating NUL, so its type is a pointer to that array.
type Str struct {
	Value string
	Sp    token.Span
}

func (n *Str) expressionNode()  {}
func (n *Str) Span() token.Span { return n.Sp }
func (n *Str) Type() types.Type {
	return types.NewPtr(types.NewFixedArray(types.Char, uint32(len(n.Value)+1)))
}

type NullPtr struct {
	Sp token.Span
}

func (n *NullPtr) expressionNode()  {}
func (n *NullPtr) Span() token.Span { return n.Sp }
func (n *NullPtr) Type() types.Type { return types.OpaquePtr }

// Aggregates

type FixedArray struct {
	Kind  types.Type
	Items []Expression
	Sp    token.Span
}

func (n *FixedArray) expressionNode()  {}
func (n *FixedArray) Span() token.Span { return n.Sp }
func (n *FixedArray) Type() types.Type { return n.Kind }

// Array is a dynamically sized array literal.
type Array struct {
	Kind  types.Type
	Items []Expression
	Sp    token.Span
}

func (n *Array) expressionNode()  {}
func (n *Array) Span() token.Span { return n.Sp }
func (n *Array) Type() types.Type { return n.Kind }

type ConstructorField struct {
	Name  string
	Value Expression
	Index uint32
}

// Constructor builds a struct value. Args are in field order.
type Constructor struct {
	Name string
	Args []ConstructorField
	Kind types.Type
	Sp   token.Span
}

func (n *Constructor) expressionNode()  {}
func (n *Constructor) Span() token.Span { return n.Sp }
func (n *Constructor) Type() types.Type { return n.Kind }

type Index struct {
	Source  Expression
	Indexes []Expression
	Meta    IndexMetadata
	Kind    types.Type
	Sp      token.Span
}

func (n *Index) expressionNode()  {}
func (n *Index) Span() token.Span { return n.Sp }
func (n *Index) Type() types.Type { return n.Kind }

// Property reads field Index of the struct behind Source.
type Property struct {
	Source Expression
	Name   string
	Index  uint32
	Meta   PropertyMetadata
	Kind   types.Type
	Sp     token.Span
}

func (n *Property) expressionNode()  {}
func (n *Property) Span() token.Span { return n.Sp }
func (n *Property) Type() types.Type { return n.Kind }

// Operators

type BinaryOp struct {
	Left  Expression
	Op    token.TokenType
	Right Expression
	Kind  types.Type
	Sp    token.Span
}

func (n *BinaryOp) expressionNode()  {}
func (n *BinaryOp) Span() token.Span { return n.Sp }
func (n *BinaryOp) Type() types.Type { return n.Kind }

type UnaryOp struct {
	Op   token.TokenType
	Expr Expression
	Pre  bool
	Kind types.Type
	Sp   token.Span
}

func (n *UnaryOp) expressionNode()  {}
func (n *UnaryOp) Span() token.Span { return n.Sp }
func (n *UnaryOp) Type() types.Type { return n.Kind }

type Group struct {
	Expr Expression
	Sp   token.Span
}

func (n *Group) expressionNode()  {}
func (n *Group) Span() token.Span { return n.Sp }
func (n *Group) Type() types.Type { return n.Expr.Type() }

// References

type Reference struct {
	Name string
	Meta ReferenceMetadata
	Kind types.Type
	Sp   token.Span
}

func (n *Reference) expressionNode()  {}
func (n *Reference) Span() token.Span { return n.Sp }
func (n *Reference) Type() types.Type { return n.Kind }

// DirectRef yields the storage of Expr instead of its value.
type DirectRef struct {
	Expr Expression
	Kind types.Type
	Sp   token.Span
}

func (n *DirectRef) expressionNode()  {}
func (n *DirectRef) Span() token.Span { return n.Sp }
func (n *DirectRef) Type() types.Type { return n.Kind }

type Deref struct {
	Value Expression
	Kind  types.Type
	Sp    token.Span
}

func (n *Deref) expressionNode()  {}
func (n *Deref) Span() token.Span { return n.Sp }
func (n *Deref) Type() types.Type { return n.Kind }

// As is an explicit cast of From to Cast.
type As struct {
	From Expression
	Cast types.Type
	Meta CastMetadata
	Sp   token.Span
}

func (n *As) expressionNode()  {}
func (n *As) Span() token.Span { return n.Sp }
func (n *As) Type() types.Type { return n.Cast }

type Call struct {
	Name string
	Args []Expression
	Kind types.Type
	Sp   token.Span
}

func (n *Call) expressionNode()  {}
func (n *Call) Span() token.Span { return n.Sp }
func (n *Call) Type() types.Type { return n.Kind }

// Indirect calls through a function pointer.
type Indirect struct {
	Function Expression
	Args     []Expression
	Kind     types.Type
	Sp       token.Span
}

func (n *Indirect) expressionNode()  {}
func (n *Indirect) Span() token.Span { return n.Sp }
func (n *Indirect) Type() types.Type { return n.Kind }

type EnumValue struct {
	Enum  string
	Name  string
	Value Expression
	Kind  types.Type
	Sp    token.Span
}

func (n *EnumValue) expressionNode()  {}
func (n *EnumValue) Span() token.Span { return n.Sp }
func (n *EnumValue) Type() types.Type { return n.Kind }

// AsmValue is an inline assembler expression.
type AsmValue struct {
	Assembler   string
	Constraints string
	Args        []Expression
	Attrs       Attributes
	Kind        types.Type
	Sp          token.Span
}

func (n *AsmValue) expressionNode()  {}
func (n *AsmValue) Span() token.Span { return n.Sp }
func (n *AsmValue) Type() types.Type { return n.Kind }
