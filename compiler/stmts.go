package compiler

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

// compileBlock lowers a block in its own scope. Statements after a
// terminator are dead and not emitted.
func (c *Context) compileBlock(b *ast.Block) {
	c.BeginScope()
	for _, s := range b.Stmts {
		if c.terminated() {
			break
		}
		c.compileStmt(s)
	}
	c.EndScope()
}

func (c *Context) compileStmt(n ast.Node) {
	switch s := n.(type) {
	case *ast.Block:
		c.compileBlock(s)
	case *ast.Local:
		c.compileLocal(s)
	case *ast.Const:
		c.compileLocalConst(s)
	case *ast.Static:
		c.compileLocalStatic(s)
	case *ast.LLI:
		c.compileLLIStmt(s)
	case *ast.Mut:
		c.compileMut(s)

	case *ast.If:
		c.compileIf(s)
	case *ast.While:
		c.compileWhile(s)
	case *ast.Loop:
		c.compileLoop(s)
	case *ast.For:
		c.compileFor(s)
	case *ast.Break:
		c.Builder.CreateBr(c.BreakTarget())
	case *ast.Continue:
		c.Builder.CreateBr(c.ContinueTarget())
	case *ast.BreakAll:
		c.Builder.CreateBr(c.BreakAllTarget())
	case *ast.ContinueAll:
		c.Builder.CreateBr(c.ContinueAllTarget())

	case *ast.Return:
		c.compileReturn(s)
	case *ast.Unreachable:
		c.Builder.CreateUnreachable()

	case *ast.Struct, *ast.Enum, *ast.CustomType:
		// types only, nothing to emit
	case ast.Expression:
		c.compileExpr(s)
	default:
		c.abort(fmt.Sprintf("Statement '%T' could not be compiled.", n), spanOf(n), 1)
	}
}

// compileLocal allocates the local and stores its initializer. Struct and
// array literals build in place through the anchor, which makes the store
// unnecessary. The name is bound only after the initializer so it still
// sees any shadowed outer binding.
func (c *Context) compileLocal(n *ast.Local) {
	sym := c.NewLocal(n.Name, n.Kind, n.Attrs, n.Sp)
	sym.Volatile = n.Meta.Volatile

	if n.Value != nil {
		var v llvm.Value
		anchored := false
		if isAggregate(n.Kind) && anchorable(n.Value) {
			anchored = c.WithAnchor(sym.Ptr, func() { v = c.compileExpr(n.Value) })
		} else {
			v = c.compileExpr(n.Value)
		}
		if !anchored {
			v = c.coerce(v, n.Value.Type(), n.Kind)
			c.storeValue(v, sym.Ptr, n.Kind, sym.Volatile)
		}
	}
	c.Put(sym)
}

func (c *Context) compileLocalConst(n *ast.Const) {
	name := localGlobalName(c.Function().Name, "const", n.Name)
	global := c.constGlobal(name, n.Kind, c.compileConstant(n.Value, n.Kind), llvm.PrivateLinkage)
	global.SetThreadLocal(n.Meta.ThreadLocal)
	c.Put(&SymbolAllocated{
		Name:     n.Name,
		Site:     ConstantAllocated,
		Ptr:      global,
		Type:     n.Kind,
		Volatile: n.Meta.Volatile,
		Span:     n.Sp,
	})
}

func (c *Context) compileLocalStatic(n *ast.Static) {
	name := localGlobalName(c.Function().Name, "static", n.Name)
	c.Put(c.staticGlobal(name, n, llvm.InternalLinkage))
}

// compileMut stores into the storage Source names. Assigning a plain value
// to a typed pointer writes through the pointer.
func (c *Context) compileMut(n *ast.Mut) {
	target := constless(n.Source.Type())
	valueType := n.Value.Type()

	var dest llvm.Value
	t := target
	if p, ok := target.(types.Ptr); ok && p.Typed() && !types.IsPtrLike(constless(valueType)) {
		dest = c.compileExpr(n.Source)
		t = p.Elem
	} else {
		dest = c.compileAddress(n.Source)
	}

	v := c.coerce(c.compileExpr(n.Value), valueType, t)
	c.storeValue(v, dest, t, c.volatile(n.Source))
}

func (c *Context) volatile(e ast.Expression) bool {
	ref, ok := e.(*ast.Reference)
	if !ok {
		return false
	}
	sym, ok := c.Lookup(ref.Name)
	return ok && sym.Volatile
}

func (c *Context) compileReturn(n *ast.Return) {
	if n.Expr == nil {
		c.Builder.CreateRetVoid()
		return
	}
	ret := c.returnType()
	v := c.coerce(c.compileExpr(n.Expr), n.Expr.Type(), ret)
	c.Builder.CreateRet(c.byValue(v, ret))
}
