package ast

// IsConstantValue reports whether e can be evaluated at compile time: literals,
// references to constants, and pure arithmetic, casts and aggregates built
// from them.
func IsConstantValue(e Expression) bool {
	switch n := e.(type) {
	case *Integer, *Float, *Boolean, *Char, *Str, *NullPtr:
		return true
	case *Reference:
		return n.Meta.IsConstant()
	case *Group:
		return IsConstantValue(n.Expr)
	case *BinaryOp:
		return IsConstantValue(n.Left) && IsConstantValue(n.Right)
	case *UnaryOp:
		return !n.Op.IsMutating() && IsConstantValue(n.Expr)
	case *As:
		return IsConstantValue(n.From)
	case *FixedArray:
		return allConstant(n.Items)
	case *Constructor:
		for _, arg := range n.Args {
			if !IsConstantValue(arg.Value) {
				return false
			}
		}
		return true
	case *EnumValue:
		return true
	case *DirectRef:
		return IsConstantValue(n.Expr)
	case *Builtin:
		switch n.Op {
		case SizeOf, AlignOf, AbiSizeOf, BitSizeOf, AbiAlignOf:
			return true
		}
	}
	return false
}

func allConstant(items []Expression) bool {
	for _, it := range items {
		if !IsConstantValue(it) {
			return false
		}
	}
	return true
}

// IsLiteral reports a literal value, possibly negated or parenthesized.
// Literals get relaxed signedness rules on assignment.
func IsLiteral(e Expression) bool {
	switch n := e.(type) {
	case *Integer, *Float, *Boolean, *Char:
		return true
	case *Group:
		return IsLiteral(n.Expr)
	case *UnaryOp:
		return !n.Op.IsMutating() && IsLiteral(n.Expr)
	}
	return false
}

// IsAllocated reports whether e denotes storage that can be addressed.
func IsAllocated(e Expression) bool {
	switch n := e.(type) {
	case *Reference:
		return n.Meta.Allocated
	case *Property:
		return n.Meta.Allocated
	case *Index:
		return true
	case *Group:
		return IsAllocated(n.Expr)
	case *Deref:
		return true
	}
	return false
}
