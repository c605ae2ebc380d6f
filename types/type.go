package types

import (
	"fmt"
	"strings"

	"github.com/thrush-lang/thrushc/token"
)

type Kind int

const (
	VoidKind Kind = iota
	BoolKind
	CharKind

	S8Kind
	S16Kind
	S32Kind
	S64Kind
	SSizeKind

	U8Kind
	U16Kind
	U32Kind
	U64Kind
	U128Kind
	USizeKind

	F32Kind
	F64Kind
	F128Kind
	FX86_80Kind
	FPPC128Kind

	AddrKind

	ConstKind
	PtrKind
	StructKind
	FixedArrayKind
	ArrayKind
	FnKind
)

var primNames = [...]string{
	VoidKind:    "void",
	BoolKind:    "bool",
	CharKind:    "char",
	S8Kind:      "s8",
	S16Kind:     "s16",
	S32Kind:     "s32",
	S64Kind:     "s64",
	SSizeKind:   "ssize",
	U8Kind:      "u8",
	U16Kind:     "u16",
	U32Kind:     "u32",
	U64Kind:     "u64",
	U128Kind:    "u128",
	USizeKind:   "usize",
	F32Kind:     "f32",
	F64Kind:     "f64",
	F128Kind:    "f128",
	FX86_80Kind: "fx86_80",
	FPPC128Kind: "fppc_128",
	AddrKind:    "memory address",
}

// IsPrim reports whether k is a leaf kind carried by Prim.
func (k Kind) IsPrim() bool {
	return k >= VoidKind && k <= AddrKind
}

func (k Kind) String() string {
	if k.IsPrim() {
		return primNames[k]
	}
	switch k {
	case ConstKind:
		return "const"
	case PtrKind:
		return "ptr"
	case StructKind:
		return "struct"
	case FixedArrayKind:
		return "fixed array"
	case ArrayKind:
		return "array"
	case FnKind:
		return "fn"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Type is the closed set of Thrush types. Values are immutable; composite
// constructors copy the slices they are given.
type Type interface {
	Kind() Kind
	String() string
	Span() token.Span
}

// Leaf singletons. They carry no span.
var (
	Void  Type = Prim{K: VoidKind}
	Bool  Type = Prim{K: BoolKind}
	Char  Type = Prim{K: CharKind}
	S8    Type = Prim{K: S8Kind}
	S16   Type = Prim{K: S16Kind}
	S32   Type = Prim{K: S32Kind}
	S64   Type = Prim{K: S64Kind}
	SSize Type = Prim{K: SSizeKind}
	U8    Type = Prim{K: U8Kind}
	U16   Type = Prim{K: U16Kind}
	U32   Type = Prim{K: U32Kind}
	U64   Type = Prim{K: U64Kind}
	U128  Type = Prim{K: U128Kind}
	USize Type = Prim{K: USizeKind}
	F32   Type = Prim{K: F32Kind}
	F64   Type = Prim{K: F64Kind}
	F128  Type = Prim{K: F128Kind}
	FX86  Type = Prim{K: FX86_80Kind}
	FPPC  Type = Prim{K: FPPC128Kind}
	Addr  Type = Prim{K: AddrKind}

	// OpaquePtr is the untyped pointer `ptr`.
	OpaquePtr Type = Ptr{}
)

// Prim is a leaf type: integers, floats, bool, char, addr and void.
type Prim struct {
	K  Kind
	Sp token.Span
}

func (p Prim) Kind() Kind       { return p.K }
func (p Prim) String() string   { return p.K.String() }
func (p Prim) Span() token.Span { return p.Sp }

// WithSpan returns a copy of the leaf type located at sp.
func (p Prim) WithSpan(sp token.Span) Prim {
	p.Sp = sp
	return p
}

type Const struct {
	Inner Type
	Sp    token.Span
}

func NewConst(inner Type) Const { return Const{Inner: inner} }

func (c Const) Kind() Kind       { return ConstKind }
func (c Const) String() string   { return "const " + c.Inner.String() }
func (c Const) Span() token.Span { return c.Sp }

// Ptr is a pointer. A nil Elem is the opaque pointer.
type Ptr struct {
	Elem Type
	Sp   token.Span
}

func NewPtr(elem Type) Ptr { return Ptr{Elem: elem} }

func (p Ptr) Kind() Kind       { return PtrKind }
func (p Ptr) Span() token.Span { return p.Sp }

func (p Ptr) String() string {
	if p.Elem == nil {
		return "ptr"
	}
	return "ptr[" + p.Elem.String() + "]"
}

// Typed reports whether the pointer carries an element type.
func (p Ptr) Typed() bool { return p.Elem != nil }

type StructModifiers struct {
	Packed bool
}

type Struct struct {
	Name   string
	Fields []Type
	Mods   StructModifiers
	Sp     token.Span
}

func NewStruct(name string, fields []Type, mods StructModifiers) Struct {
	return Struct{Name: name, Fields: append([]Type(nil), fields...), Mods: mods}
}

func (s Struct) Kind() Kind       { return StructKind }
func (s Struct) Span() token.Span { return s.Sp }

func (s Struct) String() string {
	var sb strings.Builder
	sb.WriteString("struct ")
	sb.WriteString(s.Name)
	sb.WriteString(" {")
	for _, f := range s.Fields {
		sb.WriteByte(' ')
		sb.WriteString(f.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

type FixedArray struct {
	Elem Type
	Size uint32
	Sp   token.Span
}

func NewFixedArray(elem Type, size uint32) FixedArray {
	return FixedArray{Elem: elem, Size: size}
}

func (a FixedArray) Kind() Kind       { return FixedArrayKind }
func (a FixedArray) Span() token.Span { return a.Sp }

func (a FixedArray) String() string {
	return fmt.Sprintf("array[%s; %d]", a.Elem, a.Size)
}

// Array is a dynamically sized array.
type Array struct {
	Elem Type
	Sp   token.Span
}

func NewArray(elem Type) Array { return Array{Elem: elem} }

func (a Array) Kind() Kind       { return ArrayKind }
func (a Array) Span() token.Span { return a.Sp }
func (a Array) String() string   { return "array[" + a.Elem.String() + "]" }

// FnModifiers. Ignore marks a variadic tail the checker does not count.
type FnModifiers struct {
	Ignore bool
}

type Fn struct {
	Params []Type
	Ret    Type
	Mods   FnModifiers
	Sp     token.Span
}

func NewFn(params []Type, ret Type, mods FnModifiers) Fn {
	return Fn{Params: append([]Type(nil), params...), Ret: ret, Mods: mods}
}

func (f Fn) Kind() Kind       { return FnKind }
func (f Fn) Span() token.Span { return f.Sp }

func (f Fn) String() string {
	return fmt.Sprintf("Fn[%s] -> %s", typesStr(f.Params), f.Ret)
}

func typesStr(types []Type) string {
	if len(types) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, t := range types {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

// EqualTypes compares two type lists element-wise.
func EqualTypes(left []Type, right []Type) bool {
	if len(left) != len(right) {
		return false
	}

	for i, l := range left {
		if !Equal(l, right[i]) {
			return false
		}
	}

	return true
}

// Equal performs structural equality with a dispatcher by Kind. Spans are
// ignored. A nil type only equals nil.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	cmp := typeComparer(a.Kind())
	return cmp(a, b)
}

func typeComparer(k Kind) func(a, b Type) bool {
	switch k {
	case ConstKind:
		return eqConst
	case PtrKind:
		return eqPtr
	case StructKind:
		return eqStruct
	case FixedArrayKind:
		return eqFixedArray
	case ArrayKind:
		return eqArray
	case FnKind:
		return eqFn
	default:
		// leaves are equal once their kinds are
		return func(a, b Type) bool { return true }
	}
}

func eqConst(a, b Type) bool {
	return Equal(a.(Const).Inner, b.(Const).Inner)
}

func eqPtr(a, b Type) bool {
	return Equal(a.(Ptr).Elem, b.(Ptr).Elem)
}

func eqStruct(a, b Type) bool {
	as, bs := a.(Struct), b.(Struct)
	return as.Name == bs.Name && as.Mods == bs.Mods && EqualTypes(as.Fields, bs.Fields)
}

func eqFixedArray(a, b Type) bool {
	af, bf := a.(FixedArray), b.(FixedArray)
	return af.Size == bf.Size && Equal(af.Elem, bf.Elem)
}

func eqArray(a, b Type) bool {
	return Equal(a.(Array).Elem, b.(Array).Elem)
}

func eqFn(a, b Type) bool {
	af, bf := a.(Fn), b.(Fn)
	return af.Mods == bf.Mods && Equal(af.Ret, bf.Ret) && EqualTypes(af.Params, bf.Params)
}
