package types

// numericRank orders the numeric leaves for promotion. Higher wins.
var numericRank = map[Kind]int{
	BoolKind:    1,
	CharKind:    2,
	U8Kind:      3,
	U16Kind:     4,
	U32Kind:     5,
	U64Kind:     6,
	USizeKind:   7,
	U128Kind:    8,
	S8Kind:      9,
	S16Kind:     10,
	S32Kind:     11,
	S64Kind:     12,
	SSizeKind:   13,
	F32Kind:     14,
	F64Kind:     15,
	FX86_80Kind: 16,
	F128Kind:    17,
	FPPC128Kind: 18,
}

// Precompute returns the type a binary operation on a and b is evaluated
// in. Floats dominate integers and signed dominates unsigned. Const layers
// are dropped first; identical kinds and non-numeric operands yield a.
func Precompute(a, b Type) Type {
	a, b = Unconst(a), Unconst(b)
	ra, okA := numericRank[a.Kind()]
	rb, okB := numericRank[b.Kind()]
	if !okA || !okB || ra >= rb {
		return a
	}
	return b
}

// Hierarchy ranks a type for array element inference.
func Hierarchy(t Type) int {
	switch v := t.(type) {
	case Const:
		return Hierarchy(v.Inner)
	case Ptr:
		if v.Elem != nil {
			return Hierarchy(v.Elem)
		}
		return 20
	}

	switch k := t.Kind(); k {
	case VoidKind:
		return 0
	case BoolKind:
		return 1
	case CharKind:
		return 2
	case S8Kind, S16Kind, S32Kind, S64Kind, SSizeKind:
		return 3 + int(k-S8Kind)
	case U8Kind, U16Kind, U32Kind, U64Kind, U128Kind, USizeKind:
		return 8 + int(k-U8Kind)
	case F32Kind, F64Kind, F128Kind, FX86_80Kind, FPPC128Kind:
		return 14 + int(k-F32Kind)
	case AddrKind:
		return 19
	case FixedArrayKind:
		return 21
	case ArrayKind:
		return 22
	case FnKind:
		return 23
	case StructKind:
		return 24
	}
	return 0
}

// InferArrayElement picks the highest ranked item type. The first item wins
// ties; an empty list is void.
func InferArrayElement(items []Type) Type {
	if len(items) == 0 {
		return Void
	}
	best := items[0]
	rank := Hierarchy(best)
	for _, t := range items[1:] {
		if r := Hierarchy(t); r > rank {
			best, rank = t, r
		}
	}
	return best
}
