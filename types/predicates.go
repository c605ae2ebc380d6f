package types

func IsSigned(t Type) bool {
	k := t.Kind()
	return k >= S8Kind && k <= SSizeKind
}

func IsUnsigned(t Type) bool {
	k := t.Kind()
	return k >= U8Kind && k <= USizeKind
}

// IsInteger includes char, which lowers to an 8-bit integer.
func IsInteger(t Type) bool {
	return IsSigned(t) || IsUnsigned(t) || t.Kind() == CharKind
}

func IsFloat(t Type) bool {
	k := t.Kind()
	return k >= F32Kind && k <= FPPC128Kind
}

func IsBool(t Type) bool { return t.Kind() == BoolKind }
func IsChar(t Type) bool { return t.Kind() == CharKind }
func IsAddr(t Type) bool { return t.Kind() == AddrKind }
func IsPtr(t Type) bool  { return t.Kind() == PtrKind }

func IsNumeric(t Type) bool {
	return IsInteger(t) || IsFloat(t) || IsBool(t)
}

// IsTypedPtr reports a pointer that carries an element type.
func IsTypedPtr(t Type) bool {
	p, ok := t.(Ptr)
	return ok && p.Elem != nil
}

func IsOpaquePtr(t Type) bool {
	p, ok := t.(Ptr)
	return ok && p.Elem == nil
}

// IsPtrLike covers everything that lowers to an LLVM pointer.
func IsPtrLike(t Type) bool {
	switch t.Kind() {
	case PtrKind, AddrKind, ArrayKind, FnKind:
		return true
	}
	return false
}

func IsStruct(t Type) bool {
	switch v := t.(type) {
	case Struct:
		return true
	case Const:
		return IsStruct(v.Inner)
	}
	return false
}

func IsPtrStruct(t Type) bool {
	switch v := t.(type) {
	case Ptr:
		return v.Elem != nil && (v.Elem.Kind() == StructKind || IsPtrStruct(v.Elem))
	case Const:
		return IsPtrStruct(v.Inner)
	}
	return false
}

func IsArray(t Type) bool      { return t.Kind() == ArrayKind }
func IsFixedArray(t Type) bool { return t.Kind() == FixedArrayKind }

func IsPtrFixedArray(t Type) bool {
	p, ok := t.(Ptr)
	if !ok || p.Elem == nil {
		return false
	}
	return p.Elem.Kind() == FixedArrayKind || IsPtrFixedArray(p.Elem)
}

func IsConst(t Type) bool { return t.Kind() == ConstKind }
func IsFn(t Type) bool    { return t.Kind() == FnKind }

// IsVoid sees through const and typed pointers.
func IsVoid(t Type) bool {
	switch v := t.(type) {
	case Const:
		return IsVoid(v.Inner)
	case Ptr:
		return v.Elem != nil && IsVoid(v.Elem)
	}
	return t.Kind() == VoidKind
}

// ContainsVoid reports a void anywhere in the type tree, function return
// types excepted.
func ContainsVoid(t Type) bool {
	switch v := t.(type) {
	case Const:
		return ContainsVoid(v.Inner)
	case Ptr:
		return v.Elem != nil && ContainsVoid(v.Elem)
	case FixedArray:
		return ContainsVoid(v.Elem)
	case Array:
		return ContainsVoid(v.Elem)
	case Struct:
		for _, f := range v.Fields {
			if ContainsVoid(f) {
				return true
			}
		}
		return false
	case Fn:
		for _, p := range v.Params {
			if ContainsVoid(p) {
				return true
			}
		}
		return false
	}
	return t.Kind() == VoidKind
}

// IsValue reports types held by value rather than behind a pointer.
func IsValue(t Type) bool {
	if c, ok := t.(Const); ok {
		return IsValue(c.Inner)
	}
	return IsNumeric(t) || IsFixedArray(t) || t.Kind() == StructKind
}

func IsConstValue(t Type) bool {
	c, ok := t.(Const)
	return ok && IsValue(c.Inner)
}
