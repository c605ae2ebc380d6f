package types

import "github.com/thrush-lang/thrushc/token"

// widening lists, per target kind, the kinds that convert into it implicitly.
var widening = map[Kind][]Kind{
	S16Kind:   {S8Kind},
	S32Kind:   {S16Kind, S8Kind},
	S64Kind:   {S32Kind, S16Kind, S8Kind},
	SSizeKind: {S64Kind, S32Kind, S16Kind, S8Kind},
	U16Kind:   {U8Kind},
	U32Kind:   {U16Kind, U8Kind},
	U64Kind:   {U32Kind, U16Kind, U8Kind},
	U128Kind:  {U64Kind, U32Kind, U16Kind, U8Kind},
	USizeKind: {U64Kind, U32Kind, U16Kind, U8Kind},
	F64Kind:   {F32Kind},
	F128Kind:  {F64Kind, F32Kind},
}

// CheckAssign reports whether a value of type rhs may be stored where lhs is
// expected. literal relaxes signed targets so unsigned literals of the same
// or a smaller width are accepted.
func CheckAssign(lhs, rhs Type, literal bool, span token.Span) *TypeError {
	return checkAssign(lhs, rhs, literal, span, lhs, rhs)
}

// top holds the outermost operands so nested mismatches report the full
// types.
func checkAssign(lhs, rhs Type, literal bool, span token.Span, topL, topR Type) *TypeError {
	if Equal(lhs, rhs) {
		return nil
	}

	if l, ok := lhs.(Const); ok {
		if r, ok := rhs.(Const); ok {
			return checkAssign(l.Inner, r.Inner, literal, span, topL, topR)
		}
		return checkAssign(l.Inner, rhs, literal, span, topL, topR)
	}
	if r, ok := rhs.(Const); ok && IsValue(r.Inner) {
		// reading a constant value yields a plain copy
		return checkAssign(lhs, r.Inner, literal, span, topL, topR)
	}

	if lhs.Kind().IsPrim() && rhs.Kind().IsPrim() {
		if primAssignable(lhs.Kind(), rhs.Kind(), literal) {
			return nil
		}
		return mismatch(topL, topR, span)
	}

	if lhs.Kind() != rhs.Kind() {
		return mismatch(topL, topR, span)
	}

	switch l := lhs.(type) {
	case Ptr:
		r := rhs.(Ptr)
		if l.Elem != nil && r.Elem != nil {
			return checkAssign(l.Elem, r.Elem, false, span, topL, topR)
		}
		return nil

	case FixedArray:
		r := rhs.(FixedArray)
		if l.Size != r.Size {
			return mismatch(topL, topR, span)
		}
		return checkAssign(l.Elem, r.Elem, literal, span, topL, topR)

	case Array:
		return checkAssign(l.Elem, rhs.(Array).Elem, literal, span, topL, topR)

	case Struct:
		r := rhs.(Struct)
		if l.Name != r.Name || len(l.Fields) != len(r.Fields) {
			return mismatch(topL, topR, span)
		}
		if l.Mods != r.Mods {
			return modifierMismatch(topL, topR, span)
		}
		for i, f := range l.Fields {
			if err := checkAssign(f, r.Fields[i], false, span, topL, topR); err != nil {
				return err
			}
		}
		return nil

	case Fn:
		r := rhs.(Fn)
		if len(l.Params) != len(r.Params) || !Equal(l.Ret, r.Ret) {
			return mismatch(topL, topR, span)
		}
		if l.Mods != r.Mods {
			return modifierMismatch(topL, topR, span)
		}
		for i, p := range l.Params {
			if err := checkAssign(p, r.Params[i], false, span, topL, topR); err != nil {
				return err
			}
		}
		return nil
	}

	return mismatch(topL, topR, span)
}

func primAssignable(l, r Kind, literal bool) bool {
	if l == r {
		return true
	}
	for _, k := range widening[l] {
		if k == r {
			return true
		}
	}
	if literal && isSignedKind(l) && isUnsignedKind(r) {
		return BitWidth(Prim{K: r}) <= BitWidth(Prim{K: l})
	}
	return false
}

func isSignedKind(k Kind) bool   { return k >= S8Kind && k <= SSizeKind }
func isUnsignedKind(k Kind) bool { return k >= U8Kind && k <= USizeKind }
