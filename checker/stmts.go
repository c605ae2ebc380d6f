package checker

import (
	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/symbols"
	"github.com/thrush-lang/thrushc/types"
)

func (tc *TypeChecker) checkBlock(b *ast.Block) error {
	tc.Table.BeginScope()
	defer tc.Table.EndScope()

	for _, s := range b.Stmts {
		if err := tc.checkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (tc *TypeChecker) checkStmt(n ast.Node) error {
	switch s := n.(type) {
	case *ast.Block:
		return tc.checkBlock(s)
	case *ast.Local:
		return tc.checkLocal(s)
	case *ast.Const:
		return tc.checkConst(s)
	case *ast.Static:
		return tc.checkStatic(s)
	case *ast.LLI:
		tc.Table.Declare(s.Name, symbols.Symbol{Category: symbols.LLI, Type: s.Kind, Span: s.Sp})
		return tc.checkExpr(s.Value)
	case *ast.Mut:
		return tc.checkMut(s)
	case *ast.If:
		return tc.checkIf(s)
	case *ast.While:
		if err := tc.checkCond(s.Cond); err != nil {
			return err
		}
		return tc.checkBlock(s.Block)
	case *ast.For:
		return tc.checkFor(s)
	case *ast.Loop:
		return tc.checkBlock(s.Block)
	case *ast.Break, *ast.Continue, *ast.BreakAll, *ast.ContinueAll, *ast.Unreachable:
		// loop placement is the analyzer's job
		return nil
	case *ast.Return:
		return tc.checkReturn(s)
	case ast.Expression:
		return tc.checkExpr(s)
	default:
		tc.bug(n.Span(), "Statement not caught: %T", n)
		return nil
	}
}

func (tc *TypeChecker) checkLocal(l *ast.Local) error {
	sym := symbols.Symbol{
		Category:  symbols.Local,
		Type:      l.Kind,
		Mutable:   l.Meta.Mutable,
		Undefined: l.Meta.Undefined,
		Span:      l.Sp,
	}
	if !tc.Table.Declare(l.Name, sym) {
		tc.errorf(diag.E0004, l.Sp, "Local '%s' is already declared in this scope.", l.Name)
	}

	if types.ContainsVoid(l.Kind) {
		tc.errorf(diag.E0019, l.Sp, voidNotValue)
	}

	if l.Value == nil || l.Meta.Undefined {
		return nil
	}
	if l.Value.Type() == nil {
		return tc.untyped(l.Value)
	}
	tc.assign(l.Kind, l.Value)
	return tc.checkExpr(l.Value)
}

// constKind is the type a constant initializer is checked against.
func constKind(t types.Type) types.Type {
	if types.IsConst(t) {
		return t
	}
	return types.NewConst(t)
}

func (tc *TypeChecker) checkConst(c *ast.Const) error {
	if !c.Meta.Global {
		tc.Table.Declare(c.Name, symbols.Symbol{Category: symbols.Constant, Type: c.Kind, Span: c.Sp})
	}
	if types.ContainsVoid(c.Kind) {
		tc.errorf(diag.E0019, c.Sp, voidNotValue)
	}
	if c.Value == nil {
		tc.bug(c.Sp, "Constant '%s' has no value.", c.Name)
		return nil
	}
	return tc.checkConstant(constKind(c.Kind), c.Value)
}

func (tc *TypeChecker) checkStatic(s *ast.Static) error {
	if !s.Meta.Global {
		tc.Table.Declare(s.Name, symbols.Symbol{Category: symbols.Static, Type: s.Kind, Mutable: s.Meta.Mutable, Span: s.Sp})
	}
	if types.ContainsVoid(s.Kind) {
		tc.errorf(diag.E0019, s.Sp, voidNotValue)
	}
	if s.Value == nil {
		return nil
	}
	return tc.checkConstant(s.Kind, s.Value)
}

// checkConstant runs the type check and, independently, the constant check.
func (tc *TypeChecker) checkConstant(expected types.Type, value ast.Expression) error {
	if value.Type() == nil {
		return tc.untyped(value)
	}
	tc.assign(expected, value)
	if !ast.IsConstantValue(value) {
		tc.errorf(diag.E0006, value.Span(), "Expected a valid constant value or reference to a constant value.")
	}
	return tc.checkExpr(value)
}

func (tc *TypeChecker) checkCond(cond ast.Expression) error {
	if cond.Type() == nil {
		return tc.untyped(cond)
	}
	if !types.IsBool(types.Deref(cond.Type())) {
		tc.errorf(diag.E0020, cond.Span(), "Expected 'bool' type, got '%s' type.", cond.Type())
	}
	return tc.checkExpr(cond)
}

func (tc *TypeChecker) checkIf(s *ast.If) error {
	if err := tc.checkCond(s.Cond); err != nil {
		return err
	}
	if err := tc.checkBlock(s.Block); err != nil {
		return err
	}
	for _, elif := range s.Elifs {
		if err := tc.checkCond(elif.Cond); err != nil {
			return err
		}
		if err := tc.checkBlock(elif.Block); err != nil {
			return err
		}
	}
	if s.Else != nil {
		return tc.checkBlock(s.Else.Block)
	}
	return nil
}

func (tc *TypeChecker) checkFor(s *ast.For) error {
	tc.Table.BeginScope()
	defer tc.Table.EndScope()

	if s.Local != nil {
		if err := tc.checkLocal(s.Local); err != nil {
			return err
		}
	}
	if s.Cond != nil {
		if err := tc.checkCond(s.Cond); err != nil {
			return err
		}
	}
	if s.Actions != nil {
		if err := tc.checkExpr(s.Actions); err != nil {
			return err
		}
	}
	return tc.checkBlock(s.Block)
}

func (tc *TypeChecker) checkReturn(r *ast.Return) error {
	if tc.retType == nil {
		tc.errorf(diag.E0018, r.Sp, "Return statement outside of a function.")
		return nil
	}

	if r.Expr == nil {
		if !types.IsVoid(tc.retType) {
			tc.errorf(diag.E0020, r.Sp, "Expected '%s' type, got 'void' type.", tc.retType)
		}
		return nil
	}
	if r.Expr.Type() == nil {
		return tc.untyped(r.Expr)
	}
	tc.assign(tc.retType, r.Expr)
	return tc.checkExpr(r.Expr)
}

// mutable reports whether the target of an assignment was declared mutable.
// Targets reached through a pointer are always writable.
func mutable(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.Reference:
		return n.Meta.Mutable || types.IsPtr(n.Kind)
	case *ast.Index:
		return n.Meta.Mutable || types.IsPtr(n.Source.Type())
	case *ast.Property:
		return mutable(n.Source) || types.IsPtr(n.Source.Type())
	case *ast.Group:
		return mutable(n.Expr)
	}
	return true
}

func (tc *TypeChecker) checkMut(m *ast.Mut) error {
	target, value := m.Source.Type(), m.Value.Type()
	if target == nil {
		return tc.untyped(m.Source)
	}
	if value == nil {
		return tc.untyped(m.Value)
	}

	if !mutable(m.Source) {
		tc.errorf(diag.E0019, m.Source.Span(), "The reference must be marked as mutable.")
	}

	switch {
	case !types.IsPtr(target):
		tc.assign(types.Deref(target), m.Value)
	case types.IsPtrLike(value):
		tc.assign(target, m.Value)
	default:
		// writing a value through the pointer
		tc.assign(types.Deref(target), m.Value)
	}

	if err := tc.checkExpr(m.Source); err != nil {
		return err
	}
	return tc.checkExpr(m.Value)
}
