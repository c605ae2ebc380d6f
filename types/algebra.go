package types

// Deref strips one typed pointer or const layer.
func Deref(t Type) Type {
	switch v := t.(type) {
	case Ptr:
		if v.Elem != nil {
			return v.Elem
		}
	case Const:
		return v.Inner
	}
	return t
}

// Unconst strips every const layer.
func Unconst(t Type) Type {
	for {
		c, ok := t.(Const)
		if !ok {
			return t
		}
		t = c.Inner
	}
}

// TypeWithDepth descends depth levels through arrays, consts and typed
// pointers. It stops early at the first type with no inner type.
func TypeWithDepth(t Type, depth int) Type {
	for ; depth > 0; depth-- {
		inner := innerType(t)
		if inner == nil {
			return t
		}
		t = inner
	}
	return t
}

func innerType(t Type) Type {
	switch v := t.(type) {
	case FixedArray:
		return v.Elem
	case Array:
		return v.Elem
	case Const:
		return v.Inner
	case Ptr:
		return v.Elem
	}
	return nil
}

// ArrayBase returns the element type of a dynamic array, seeing through const
// and typed pointers.
func ArrayBase(t Type) Type {
	switch v := t.(type) {
	case Array:
		return v.Elem
	case Const:
		return ArrayBase(v.Inner)
	case Ptr:
		if v.Elem != nil {
			return ArrayBase(v.Elem)
		}
	}
	return t
}

func FixedArrayBase(t Type) Type {
	switch v := t.(type) {
	case FixedArray:
		return v.Elem
	case Const:
		return FixedArrayBase(v.Inner)
	case Ptr:
		if v.Elem != nil {
			return FixedArrayBase(v.Elem)
		}
	}
	return t
}

// StructFields finds the struct behind t. ok is false when there is none.
func StructFields(t Type) (Struct, bool) {
	switch v := t.(type) {
	case Struct:
		return v, true
	case Const:
		return StructFields(v.Inner)
	case Ptr:
		if v.Elem != nil {
			return StructFields(v.Elem)
		}
	}
	return Struct{}, false
}

// Ref is the type of a reference to a value of type t.
func Ref(t Type) Type {
	if IsPtrLike(t) {
		return t
	}
	return Ptr{Elem: t, Sp: t.Span()}
}

// Narrow swaps the signedness of an integer of the same width. u128 has no
// signed counterpart and stays as is.
func Narrow(t Type) Type {
	sp := t.Span()
	switch t.Kind() {
	case S8Kind:
		return Prim{K: U8Kind, Sp: sp}
	case S16Kind:
		return Prim{K: U16Kind, Sp: sp}
	case S32Kind:
		return Prim{K: U32Kind, Sp: sp}
	case S64Kind:
		return Prim{K: U64Kind, Sp: sp}
	case SSizeKind:
		return Prim{K: USizeKind, Sp: sp}
	case U8Kind:
		return Prim{K: S8Kind, Sp: sp}
	case U16Kind:
		return Prim{K: S16Kind, Sp: sp}
	case U32Kind:
		return Prim{K: S32Kind, Sp: sp}
	case U64Kind:
		return Prim{K: S64Kind, Sp: sp}
	case USizeKind:
		return Prim{K: SSizeKind, Sp: sp}
	}
	return t
}

// BitWidth is the storage width of an integer, float, bool or char leaf, and
// 0 for everything else. Pointer-sized integers report 64.
func BitWidth(t Type) int {
	switch t.Kind() {
	case BoolKind:
		return 1
	case CharKind, S8Kind, U8Kind:
		return 8
	case S16Kind, U16Kind:
		return 16
	case S32Kind, U32Kind, F32Kind:
		return 32
	case S64Kind, U64Kind, SSizeKind, USizeKind, F64Kind:
		return 64
	case FX86_80Kind:
		return 80
	case U128Kind, F128Kind, FPPC128Kind:
		return 128
	}
	return 0
}
