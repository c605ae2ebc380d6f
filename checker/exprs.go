package checker

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

// untyped builds the error that ends a declaration whose expression has no
// computable type.
func (tc *TypeChecker) untyped(e ast.Expression) error {
	if ref, ok := e.(*ast.Reference); ok {
		return diag.NewError(diag.E0028, fmt.Sprintf("Reference '%s' is not defined.", ref.Name), ref.Sp)
	}
	return diag.NewBugSkip("Type checking", fmt.Sprintf("Expression %T has no type.", e), e.Span(), 1)
}

func (tc *TypeChecker) checkExprs(exprs []ast.Expression) error {
	for _, e := range exprs {
		if err := tc.checkExpr(e); err != nil {
			return err
		}
	}
	return nil
}

func (tc *TypeChecker) checkExpr(e ast.Expression) error {
	if e.Type() == nil {
		return tc.untyped(e)
	}

	switch n := e.(type) {
	case *ast.Integer, *ast.Float, *ast.Boolean, *ast.Char, *ast.Str, *ast.NullPtr:
		return nil

	case *ast.FixedArray:
		return tc.checkItems(types.FixedArrayBase(n.Kind), n.Items)
	case *ast.Array:
		return tc.checkItems(types.ArrayBase(n.Kind), n.Items)
	case *ast.Constructor:
		return tc.checkConstructor(n)
	case *ast.Index:
		return tc.checkIndex(n)
	case *ast.Property:
		src := n.Source.Type()
		if src != nil && !types.IsStruct(src) && !types.IsPtrStruct(src) {
			tc.errorf(diag.E0019, n.Source.Span(), "Expected struct reference, got '%s' type.", src)
		}
		return tc.checkExpr(n.Source)

	case *ast.BinaryOp:
		if err := tc.checkExpr(n.Left); err != nil {
			return err
		}
		if err := tc.checkExpr(n.Right); err != nil {
			return err
		}
		tc.checkBinary(n)
		return nil
	case *ast.UnaryOp:
		if err := tc.checkExpr(n.Expr); err != nil {
			return err
		}
		tc.checkUnary(n)
		return nil
	case *ast.Group:
		return tc.checkExpr(n.Expr)

	case *ast.Reference:
		return nil
	case *ast.DirectRef:
		return tc.checkExpr(n.Expr)
	case *ast.Deref:
		v := n.Value.Type()
		if v != nil && !types.IsPtr(v) && !types.IsConst(v) && !types.IsArray(v) {
			tc.errorf(diag.E0019, n.Value.Span(), "Expected 'ptr[T]', 'ptr', 'const T' or 'array[T]' type, got '%s' type.", v)
		}
		return tc.checkExpr(n.Value)
	case *ast.As:
		if err := tc.checkExpr(n.From); err != nil {
			return err
		}
		allocated := n.Meta.Allocated || ast.IsAllocated(n.From)
		tc.report(types.CheckCast(n.Cast, n.From.Type(), allocated, n.Sp))
		return nil
	case *ast.Call:
		return tc.checkCall(n)
	case *ast.Indirect:
		return tc.checkIndirect(n)
	case *ast.EnumValue:
		if n.Value != nil {
			return tc.checkExpr(n.Value)
		}
		return nil
	case *ast.AsmValue:
		return tc.checkExprs(n.Args)
	case *ast.Builtin:
		return tc.checkBuiltin(n)

	case *ast.Load:
		return tc.checkLoad(n)
	case *ast.Write:
		return tc.checkWrite(n)
	case *ast.Address:
		return tc.checkAddress(n)
	case *ast.Alloc:
		return nil

	default:
		tc.bug(e.Span(), "Expression not caught: %T", e)
		return nil
	}
}

func (tc *TypeChecker) checkItems(base types.Type, items []ast.Expression) error {
	for _, it := range items {
		if it.Type() == nil {
			return tc.untyped(it)
		}
		tc.assign(base, it)
		if err := tc.checkExpr(it); err != nil {
			return err
		}
	}
	return nil
}

func (tc *TypeChecker) checkConstructor(c *ast.Constructor) error {
	st, ok := tc.Table.Struct(c.Name)
	if !ok {
		tc.errorf(diag.E0028, c.Sp, "Structure '%s' is not defined.", c.Name)
		return nil
	}

	switch {
	case len(c.Args) > len(st.Fields):
		tc.errorf(diag.E0026, c.Sp, "Expected %d fields, got %d.", len(st.Fields), len(c.Args))
	case len(c.Args) < len(st.Fields):
		tc.errorf(diag.E0027, c.Sp, "Expected %d fields, got %d.", len(st.Fields), len(c.Args))
	}

	for i, arg := range c.Args {
		if arg.Value.Type() == nil {
			return tc.untyped(arg.Value)
		}
		if i < len(st.Fields) {
			tc.assign(st.Fields[i].Kind, arg.Value)
		}
		if err := tc.checkExpr(arg.Value); err != nil {
			return err
		}
	}
	return nil
}

func (tc *TypeChecker) checkIndex(n *ast.Index) error {
	src := n.Source.Type()
	if src == nil {
		return tc.untyped(n.Source)
	}
	base := types.Deref(src)
	if types.IsConst(src) {
		src = base
		base = types.Deref(src)
	}

	indexable := types.IsTypedPtr(src) || types.IsArray(src) || types.IsFixedArray(src)
	if !indexable {
		tc.errorf(diag.E0019, n.Source.Span(), "Expected 'ptr[T]', 'array[T]' or 'array[T; N]' type, got '%s' type.", n.Source.Type())
	}
	if types.IsPtr(src) && types.IsPtr(base) && len(n.Indexes) > 1 {
		tc.errorf(diag.E0019, n.Sp, "A pointer to a pointer can only be indexed once.")
	}

	for _, idx := range n.Indexes {
		if idx.Type() == nil {
			return tc.untyped(idx)
		}
		if !types.IsInteger(types.Deref(idx.Type())) {
			tc.errorf(diag.E0020, idx.Span(), "Expected integer type for the index, got '%s' type.", idx.Type())
		}
	}

	if err := tc.checkExpr(n.Source); err != nil {
		return err
	}
	return tc.checkExprs(n.Indexes)
}

func (tc *TypeChecker) operationError(n *ast.BinaryOp, l, r types.Type) {
	tc.errorf(diag.E0030, n.Sp, "Operation '%s' is not supported between '%s' and '%s' types.", n.Op, l, r)
}

func (tc *TypeChecker) checkBinary(n *ast.BinaryOp) {
	l, r := stripConst(n.Left.Type()), stripConst(n.Right.Type())
	if l == nil || r == nil {
		return
	}

	switch {
	case n.Op.IsArithmetic():
		if types.IsNumeric(l) && types.IsNumeric(r) {
			return
		}
		// pointer arithmetic
		if (n.Op == token.ADD || n.Op == token.SUB) && types.IsPtrLike(l) && types.IsInteger(r) {
			return
		}
	case n.Op.IsBitwise():
		if (types.IsInteger(l) || types.IsBool(l)) && (types.IsInteger(r) || types.IsBool(r)) {
			return
		}
	case n.Op.IsLogical():
		if types.IsBool(l) && types.IsBool(r) {
			return
		}
	case n.Op.IsComparison():
		if types.IsNumeric(l) && types.IsNumeric(r) {
			return
		}
		if (n.Op == token.EQL || n.Op == token.NEQ) && types.IsPtrLike(l) && types.IsPtrLike(r) {
			return
		}
	}
	tc.operationError(n, n.Left.Type(), n.Right.Type())
}

func stripConst(t types.Type) types.Type {
	if c, ok := t.(types.Const); ok {
		return c.Inner
	}
	return t
}

func (tc *TypeChecker) checkUnary(n *ast.UnaryOp) {
	t := stripConst(n.Expr.Type())
	if t == nil {
		return
	}

	ok := false
	switch n.Op {
	case token.NOT:
		ok = types.IsBool(t)
	case token.BNOT:
		ok = types.IsInteger(t) || types.IsBool(t)
	case token.SUB:
		ok = types.IsInteger(t) || types.IsFloat(t)
	case token.INC, token.DEC:
		ok = types.IsInteger(t) || types.IsFloat(t)
		if ok && !mutable(n.Expr) {
			tc.errorf(diag.E0019, n.Expr.Span(), "The reference must be marked as mutable.")
		}
	}
	if !ok {
		tc.errorf(diag.E0030, n.Sp, "Operation '%s' is not supported for '%s' type.", n.Op, n.Expr.Type())
	}
}

// checkArgs validates a call against a signature.
func (tc *TypeChecker) checkArgs(sig types.Fn, args []ast.Expression, span token.Span) error {
	switch {
	case len(args) < len(sig.Params):
		tc.errorf(diag.E0022, span, "Expected %d arguments, got %d.", len(sig.Params), len(args))
	case len(args) > len(sig.Params) && !sig.Mods.Ignore:
		tc.errorf(diag.E0023, span, "Expected %d arguments, got %d.", len(sig.Params), len(args))
	}

	for i, arg := range args {
		if arg.Type() == nil {
			return tc.untyped(arg)
		}
		if i < len(sig.Params) {
			tc.assign(sig.Params[i], arg)
		}
	}
	return tc.checkExprs(args)
}

func (tc *TypeChecker) checkCall(c *ast.Call) error {
	fn, ok := tc.Table.Func(c.Name)
	if !ok {
		tc.bug(c.Sp, "Function '%s' was not declared before use.", c.Name)
		return tc.checkExprs(c.Args)
	}
	return tc.checkArgs(fn.Sig, c.Args, c.Sp)
}

func (tc *TypeChecker) checkIndirect(c *ast.Indirect) error {
	ft := c.Function.Type()
	if ft == nil {
		return tc.untyped(c.Function)
	}
	sig, ok := stripConst(ft).(types.Fn)
	if !ok {
		tc.errorf(diag.E0019, c.Function.Span(), "Expected 'Fn[..] -> T' type, got '%s' type.", ft)
		return tc.checkExpr(c.Function)
	}
	if err := tc.checkExpr(c.Function); err != nil {
		return err
	}
	return tc.checkArgs(sig, c.Args, c.Sp)
}
