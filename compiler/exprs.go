package compiler

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

// compileExpr lowers an expression to its value. Aggregates held by value
// come back as the address of their storage.
func (c *Context) compileExpr(e ast.Expression) llvm.Value {
	switch n := e.(type) {
	case *ast.Integer, *ast.Float, *ast.Boolean, *ast.Char, *ast.NullPtr:
		return c.compileConstant(n, n.Type())
	case *ast.Str:
		return c.compileStr(n)
	case *ast.Group:
		return c.compileExpr(n.Expr)

	case *ast.BinaryOp:
		return c.compileBinary(n)
	case *ast.UnaryOp:
		return c.compileUnary(n)

	case *ast.Reference:
		return c.compileReference(n)
	case *ast.DirectRef:
		return c.compileAddress(n.Expr)
	case *ast.Deref:
		ptr := c.compileExpr(n.Value)
		if isAggregate(n.Kind) {
			return ptr
		}
		return c.load(ptr, n.Kind, false, "")
	case *ast.Property:
		addr, elem := c.propertyAddress(n)
		return c.loadElement(addr, n.Kind, elem)
	case *ast.Index:
		addr, elem := c.indexAddress(n)
		return c.loadElement(addr, n.Kind, elem)

	case *ast.As:
		return c.convert(c.compileExpr(n.From), n.From.Type(), n.Cast, n.Sp)
	case *ast.Call:
		return c.compileCall(n)
	case *ast.Indirect:
		return c.compileIndirect(n)
	case *ast.AsmValue:
		return c.compileAsmValue(n)

	case *ast.Constructor:
		return c.compileConstructor(n)
	case *ast.FixedArray:
		return c.compileFixedArray(n)
	case *ast.Array:
		return c.compileArray(n)
	case *ast.EnumValue:
		return c.compileConstant(n.Value, n.Kind)
	case *ast.Builtin:
		return c.compileBuiltin(n)

	case *ast.Alloc, *ast.Load, *ast.Write, *ast.Address:
		return c.compileLLI(n)
	}

	c.abort(fmt.Sprintf("Expression '%T' could not be compiled.", e), spanOf(e), 1)
	return llvm.Value{}
}

func spanOf(n ast.Node) token.Span {
	if n == nil {
		return zeroSpan
	}
	return n.Span()
}

func (c *Context) compileReference(n *ast.Reference) llvm.Value {
	sym, ok := c.Lookup(n.Name)
	if !ok {
		c.abort(fmt.Sprintf("Could not find reference '%s'.", n.Name), n.Sp, 1)
	}
	if sym.Site == FuncAllocated {
		return sym.Value
	}
	return sym.GetValue(c)
}

// compileAddress lowers an expression that names storage to the address of
// that storage.
func (c *Context) compileAddress(e ast.Expression) llvm.Value {
	switch n := e.(type) {
	case *ast.Group:
		return c.compileAddress(n.Expr)
	case *ast.Reference:
		sym, ok := c.Lookup(n.Name)
		if !ok {
			c.abort(fmt.Sprintf("Could not find reference '%s'.", n.Name), n.Sp, 1)
		}
		return sym.GetPtr()
	case *ast.Deref:
		return c.compileExpr(n.Value)
	case *ast.Property:
		addr, _ := c.propertyAddress(n)
		return addr
	case *ast.Index:
		addr, _ := c.indexAddress(n)
		return addr
	}
	if t := e.Type(); t != nil && (types.IsPtrLike(constless(t)) || isAggregate(t)) {
		return c.compileExpr(e)
	}
	c.abort(fmt.Sprintf("Expression '%T' has no address.", e), spanOf(e), 1)
	return llvm.Value{}
}

// aggregateAddress lowers an aggregate expression and makes sure the result
// is an address, spilling first class values to the stack.
func (c *Context) aggregateAddress(e ast.Expression) llvm.Value {
	v := c.compileExpr(e)
	if v.Type().TypeKind() == llvm.PointerTypeKind {
		return v
	}
	tmp := c.entryAlloca(v.Type(), "spill")
	c.Builder.CreateStore(v, tmp)
	return tmp
}

// loadElement finishes an Index or Property. The address itself is the
// result when the node asks for a pointer to the element, or when the
// element is an aggregate.
func (c *Context) loadElement(addr llvm.Value, kind, elem types.Type) llvm.Value {
	if p, ok := constless(kind).(types.Ptr); ok && p.Typed() && types.Equal(constless(p.Elem), constless(elem)) {
		return addr
	}
	if isAggregate(kind) {
		return addr
	}
	return c.load(addr, kind, false, "")
}

// propertyAddress returns the address of the field n reads and its type.
func (c *Context) propertyAddress(n *ast.Property) (llvm.Value, types.Type) {
	src := constless(n.Source.Type())
	st, ok := types.StructFields(src)
	if !ok || int(n.Index) >= len(st.Fields) {
		c.abort(fmt.Sprintf("Property '%s' is not a struct field.", n.Name), n.Sp, 1)
	}

	var base llvm.Value
	if isAggregate(src) {
		base = c.aggregateAddress(n.Source)
	} else {
		base = c.compileExpr(n.Source)
		// follow pointers to pointers down to the struct
		for {
			p, ok := src.(types.Ptr)
			if !ok || !p.Typed() {
				break
			}
			inner := constless(p.Elem)
			if _, isPtr := inner.(types.Ptr); !isPtr {
				break
			}
			base = c.load(base, inner, false, "")
			src = inner
		}
	}

	field := c.Builder.CreateStructGEP(c.LLVMType(st), base, int(n.Index), "")
	return c.must(field, "a field access", n.Sp), st.Fields[n.Index]
}

// indexAddress walks every index of n and returns the final address with
// the element type.
func (c *Context) indexAddress(n *ast.Index) (llvm.Value, types.Type) {
	src := constless(n.Source.Type())
	var ptr llvm.Value
	if isAggregate(src) {
		ptr = c.aggregateAddress(n.Source)
		src = types.NewPtr(src)
	} else {
		ptr = c.compileExpr(n.Source)
	}

	var elem types.Type
	for i, e := range n.Indexes {
		ptr, elem = c.IndexGEP(ptr, src, c.compileExpr(e))
		if i == len(n.Indexes)-1 {
			break
		}
		if isAggregate(elem) {
			src = types.NewPtr(elem)
		} else {
			ptr = c.load(ptr, elem, false, "")
			src = elem
		}
	}
	if elem == nil {
		c.abort("Index without indexes.", n.Sp, 1)
	}
	return ptr, elem
}

// coerce adapts a scalar to the type its destination expects. Everything
// else is passed through.
func (c *Context) coerce(v llvm.Value, from, to types.Type) llvm.Value {
	if from == nil || to == nil {
		return v
	}
	f, t := constless(from), constless(to)
	if types.Equal(f, t) || isAggregate(f) || isAggregate(t) {
		return v
	}
	scalar := func(t types.Type) bool { return types.IsNumeric(t) || types.IsPtrLike(t) }
	if scalar(f) && scalar(t) {
		return c.convert(v, f, t, to.Span())
	}
	return v
}

func (c *Context) compileArgs(sig types.Fn, args []ast.Expression) []llvm.Value {
	out := make([]llvm.Value, 0, len(args))
	for i, arg := range args {
		v := c.compileExpr(arg)
		t := arg.Type()
		if i < len(sig.Params) {
			v = c.coerce(v, t, sig.Params[i])
			t = sig.Params[i]
		}
		out = append(out, c.byValue(v, t))
	}
	return out
}

func (c *Context) compileCall(n *ast.Call) llvm.Value {
	sym, ok := c.funcs[n.Name]
	if !ok {
		c.abort(fmt.Sprintf("Could not find function '%s'.", n.Name), n.Sp, 1)
	}
	sig := sym.Type.(types.Fn)
	args := c.compileArgs(sig, n.Args)

	call := c.Builder.CreateCall(c.fnType(sig), sym.Value, args, "")
	c.must(call, "a call to '"+n.Name+"'", n.Sp)
	if !sym.Value.IsAFunction().IsNil() {
		call.SetInstructionCallConv(sym.Value.FunctionCallConv())
	}
	return call
}

func (c *Context) compileIndirect(n *ast.Indirect) llvm.Value {
	sig, ok := constless(n.Function.Type()).(types.Fn)
	if !ok {
		c.abort(fmt.Sprintf("Indirect call through '%s'.", n.Function.Type()), n.Sp, 1)
	}
	fn := c.compileExpr(n.Function)
	args := c.compileArgs(sig, n.Args)
	return c.must(c.Builder.CreateCall(c.fnType(sig), fn, args, ""), "an indirect call", n.Sp)
}

func (c *Context) compileAsmValue(n *ast.AsmValue) llvm.Value {
	params := make([]types.Type, 0, len(n.Args))
	for _, a := range n.Args {
		params = append(params, a.Type())
	}
	sig := types.NewFn(params, n.Kind, types.FnModifiers{})
	fnTy := c.fnType(sig)
	asm := c.inlineAsm(fnTy, n.Assembler, n.Constraints, n.Attrs)
	args := c.compileArgs(sig, n.Args)
	return c.must(c.Builder.CreateCall(fnTy, asm, args, ""), "an assembler value", n.Sp)
}

// compileStr emits the bytes of a string literal as a private constant and
// returns its address.
func (c *Context) compileStr(n *ast.Str) llvm.Value {
	value := c.LLVM.ConstString(n.Value, true)
	name := fmt.Sprintf("str.%d", c.strCount)
	c.strCount++

	global := llvm.AddGlobal(c.Module, value.Type(), name)
	global.SetInitializer(value)
	global.SetLinkage(llvm.PrivateLinkage)
	global.SetUnnamedAddr(true)
	global.SetGlobalConstant(true)
	return global
}
