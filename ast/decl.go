package ast

import (
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

type FunctionParameter struct {
	Name     string
	Kind     types.Type
	Position uint32
	Meta     FunctionParameterMetadata
	Sp       token.Span
}

func (n *FunctionParameter) Span() token.Span { return n.Sp }
func (n *FunctionParameter) Type() types.Type { return n.Kind }

// Function is a function definition, or a prototype when Body is nil.
type Function struct {
	Name   string
	Params []*FunctionParameter
	Ret    types.Type
	Body   *Block
	Attrs  Attributes
	Sp     token.Span
}

func (n *Function) statementNode()   {}
func (n *Function) declarationNode() {}
func (n *Function) Span() token.Span { return n.Sp }
func (n *Function) Type() types.Type { return n.Signature() }

// Signature is the function's type.
func (n *Function) Signature() types.Fn {
	return types.NewFn(paramTypes(n.Params), n.Ret, types.FnModifiers{Ignore: n.Attrs.HasIgnore()})
}

// IsPrototype reports a declaration without a body.
func (n *Function) IsPrototype() bool { return n.Body == nil }

func paramTypes(params []*FunctionParameter) []types.Type {
	out := make([]types.Type, 0, len(params))
	for _, p := range params {
		out = append(out, p.Kind)
	}
	return out
}

// AssemblerFunction is a function whose body is inline assembly.
type AssemblerFunction struct {
	Name        string
	Assembler   string
	Constraints string
	Params      []*FunctionParameter
	Ret         types.Type
	Attrs       Attributes
	Sp          token.Span
}

func (n *AssemblerFunction) statementNode()   {}
func (n *AssemblerFunction) declarationNode() {}
func (n *AssemblerFunction) Span() token.Span { return n.Sp }
func (n *AssemblerFunction) Type() types.Type { return n.Signature() }

func (n *AssemblerFunction) Signature() types.Fn {
	return types.NewFn(paramTypes(n.Params), n.Ret, types.FnModifiers{})
}

// Intrinsic binds Name to the LLVM intrinsic External.
type Intrinsic struct {
	Name     string
	External string
	Params   []types.Type
	Ret      types.Type
	Attrs    Attributes
	Sp       token.Span
}

func (n *Intrinsic) statementNode()   {}
func (n *Intrinsic) declarationNode() {}
func (n *Intrinsic) Span() token.Span { return n.Sp }
func (n *Intrinsic) Type() types.Type { return n.Signature() }

func (n *Intrinsic) Signature() types.Fn {
	return types.NewFn(n.Params, n.Ret, types.FnModifiers{Ignore: n.Attrs.HasIgnore()})
}

type StructField struct {
	Name  string
	Kind  types.Type
	Index uint32
	Sp    token.Span
}

type Struct struct {
	Name   string
	Fields []StructField
	Mods   types.StructModifiers
	Attrs  Attributes
	Sp     token.Span
}

func (n *Struct) statementNode()   {}
func (n *Struct) declarationNode() {}
func (n *Struct) Span() token.Span { return n.Sp }
func (n *Struct) Type() types.Type {
	fields := make([]types.Type, 0, len(n.Fields))
	for _, f := range n.Fields {
		fields = append(fields, f.Kind)
	}
	return types.NewStruct(n.Name, fields, n.Mods)
}

type EnumField struct {
	Name  string
	Kind  types.Type
	Value Expression
	Sp    token.Span
}

type Enum struct {
	Name   string
	Fields []EnumField
	Attrs  Attributes
	Sp     token.Span
}

func (n *Enum) statementNode()   {}
func (n *Enum) declarationNode() {}
func (n *Enum) Span() token.Span { return n.Sp }
func (n *Enum) Type() types.Type { return types.Void }

// CustomType is a named alias for Kind.
type CustomType struct {
	Name  string
	Kind  types.Type
	Attrs Attributes
	Sp    token.Span
}

func (n *CustomType) statementNode()   {}
func (n *CustomType) declarationNode() {}
func (n *CustomType) Span() token.Span { return n.Sp }
func (n *CustomType) Type() types.Type { return n.Kind }

// GlobalAssembler is module level assembly.
type GlobalAssembler struct {
	Asm string
	Sp  token.Span
}

func (n *GlobalAssembler) statementNode()   {}
func (n *GlobalAssembler) declarationNode() {}
func (n *GlobalAssembler) Span() token.Span { return n.Sp }
func (n *GlobalAssembler) Type() types.Type { return types.Void }
