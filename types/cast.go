package types

import "github.com/thrush-lang/thrushc/token"

// CheckCast decides whether a value of type from may be cast to to.
// allocated is set when the operand has storage, which enables casts by
// reference. The returned error, if any, is located at span.
func CheckCast(to, from Type, allocated bool, span token.Span) *TypeError {
	if castable(to, from, allocated) {
		return nil
	}
	return badCast(from, to, span)
}

func castable(to, from Type, allocated bool) bool {
	if c, ok := from.(Const); ok {
		return castable(to, c.Inner, allocated)
	}

	if c, ok := to.(Const); ok {
		return castable(c.Inner, from, allocated)
	}

	if IsStruct(from) {
		// by-reference only, even to the same struct
		return allocated && (IsPtr(to) || IsAddr(to))
	}

	if Equal(to, from) {
		return true
	}

	switch {
	case IsInteger(from) && IsInteger(to):
		return true
	case IsFloat(from) && IsFloat(to):
		return floatCastable(to, from)
	case IsInteger(from) && IsFloat(to), IsFloat(from) && IsInteger(to):
		return true
	case IsBool(from) && IsInteger(to):
		return true
	}

	if IsPtr(from) || IsAddr(from) {
		switch {
		case IsInteger(to), IsPtr(to), IsAddr(to):
			return true
		case IsArray(to):
			return allocated
		case IsFn(to):
			return allocated && IsOpaquePtr(from)
		}
		return false
	}

	if IsPtr(to) || IsAddr(to) {
		return allocated && (IsNumeric(from) || IsArray(from) || IsFixedArray(from) || IsFn(from))
	}

	return false
}

// FX86_80 and FPPC128 have layouts of their own and only cast to themselves.
func floatCastable(to, from Type) bool {
	exotic := func(k Kind) bool { return k == FX86_80Kind || k == FPPC128Kind }
	if exotic(to.Kind()) || exotic(from.Kind()) {
		return to.Kind() == from.Kind()
	}
	return true
}
