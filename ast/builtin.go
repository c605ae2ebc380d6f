package ast

import (
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

type BuiltinOp int

const (
	MemSet BuiltinOp = iota
	MemMove
	MemCpy
	Halloc
	SizeOf
	AlignOf
	AbiSizeOf
	BitSizeOf
	AbiAlignOf
)

var builtinNames = [...]string{
	MemSet:     "memset",
	MemMove:    "memmove",
	MemCpy:     "memcpy",
	Halloc:     "halloc",
	SizeOf:     "sizeof",
	AlignOf:    "alignof",
	AbiSizeOf:  "abi_sizeof",
	BitSizeOf:  "bit_sizeof",
	AbiAlignOf: "abi_alignof",
}

func (b BuiltinOp) String() string {
	if b >= 0 && int(b) < len(builtinNames) {
		return builtinNames[b]
	}
	return "builtin"
}

// IsMemory reports the builtins that take pointer operands.
func (b BuiltinOp) IsMemory() bool {
	return b == MemSet || b == MemMove || b == MemCpy
}

// Builtin is a compiler provided operation.
//
//	memset:          Args = dst, value, size
//	memmove, memcpy: Args = dst, src, size
//	the rest:        Of is the queried or allocated type
type Builtin struct {
	Op   BuiltinOp
	Args []Expression
	Of   types.Type
	Kind types.Type
	Sp   token.Span
}

func (n *Builtin) expressionNode()  {}
func (n *Builtin) Span() token.Span { return n.Sp }
func (n *Builtin) Type() types.Type { return n.Kind }
