package checker

import (
	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/types"
)

const expectedRawPtr = "Expected 'ptr[T]', 'ptr' or 'addr' type, got '%s' type."

func rawPtr(t types.Type) bool {
	t = stripConst(t)
	return types.IsPtr(t) || types.IsAddr(t)
}

// checkRawSource validates the pointer operand shared by load, write and
// address.
func (tc *TypeChecker) checkRawSource(src ast.Expression) (types.Type, error) {
	t := src.Type()
	if t == nil {
		return nil, tc.untyped(src)
	}
	if !rawPtr(t) {
		tc.errorf(diag.E0019, src.Span(), expectedRawPtr, t)
	}
	return t, tc.checkExpr(src)
}

func (tc *TypeChecker) checkLoad(n *ast.Load) error {
	_, err := tc.checkRawSource(n.Source)
	return err
}

func (tc *TypeChecker) checkWrite(n *ast.Write) error {
	if _, err := tc.checkRawSource(n.Source); err != nil {
		return err
	}
	if n.Value.Type() == nil {
		return tc.untyped(n.Value)
	}
	tc.assign(n.WriteType, n.Value)
	return tc.checkExpr(n.Value)
}

func (tc *TypeChecker) checkAddress(n *ast.Address) error {
	src, err := tc.checkRawSource(n.Source)
	if err != nil {
		return err
	}

	src = stripConst(src)
	switch {
	case types.IsOpaquePtr(src):
		tc.errorf(diag.E0019, n.Source.Span(), "An untyped 'ptr' cannot be addressed. Cast it to a typed pointer first.")
	case types.IsTypedPtr(src) && !types.IsPtrStruct(src) && !types.IsPtrFixedArray(src):
		tc.errorf(diag.E0019, n.Source.Span(), "Expected a pointer to a struct or a fixed array, got '%s' type.", src)
	}

	for _, idx := range n.Indexes {
		if idx.Type() == nil {
			return tc.untyped(idx)
		}
		if !types.IsUnsigned(stripConst(idx.Type())) {
			tc.errorf(diag.E0020, idx.Span(), "Expected unsigned integer type for the index, got '%s' type.", idx.Type())
		}
	}
	return tc.checkExprs(n.Indexes)
}

func (tc *TypeChecker) checkBuiltin(b *ast.Builtin) error {
	if !b.Op.IsMemory() {
		// halloc and the layout queries accept any type
		return nil
	}
	if len(b.Args) != 3 {
		tc.bug(b.Sp, "Builtin '%s' expects 3 operands, got %d.", b.Op, len(b.Args))
		return nil
	}
	for _, a := range b.Args {
		if a.Type() == nil {
			return tc.untyped(a)
		}
	}

	dst, second, size := b.Args[0], b.Args[1], b.Args[2]
	if !rawPtr(dst.Type()) {
		tc.errorf(diag.E0019, dst.Span(), expectedRawPtr, dst.Type())
	}

	if b.Op == ast.MemSet {
		if !types.IsInteger(stripConst(second.Type())) {
			tc.errorf(diag.E0020, second.Span(), "Expected 'u8' type, got '%s' type.", second.Type())
		}
	} else if !rawPtr(second.Type()) {
		tc.errorf(diag.E0019, second.Span(), expectedRawPtr, second.Type())
	}

	if !types.IsUnsigned(stripConst(size.Type())) {
		tc.errorf(diag.E0020, size.Span(), "Expected 'u64' type, got '%s' type.", size.Type())
	}

	return tc.checkExprs(b.Args)
}
