package compiler

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/options"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

var functionAttrs = map[ast.AttrKind]string{
	ast.AttrHot:          "hot",
	ast.AttrNoInline:     "noinline",
	ast.AttrInlineHint:   "inlinehint",
	ast.AttrAlwaysInline: "alwaysinline",
}

// callConventions maps @convention names to LLVM calling convention ids.
var callConventions = map[string]llvm.CallConv{
	"C":             llvm.CCallConv,
	"fast":          llvm.FastCallConv,
	"cold":          llvm.ColdCallConv,
	"Haskell":       10,
	"Erlang":        11,
	"AnyReg":        13,
	"weakReg":       14,
	"strongReg":     15,
	"Swift":         16,
	"tail":          18,
	"SwiftTail":     20,
	"PreserveNone":  21,
	"X86StdCall":    64,
	"X86FastCall":   65,
	"X86ThisCall":   70,
	"X86_64_SysV":   78,
	"Win64":         79,
	"X86VectorCall": 80,
	"X86RegCall":    92,
}

func linkage(attrs ast.Attributes) llvm.Linkage {
	if attrs.HasPublic() || attrs.HasExtern() {
		return llvm.ExternalLinkage
	}
	return llvm.InternalLinkage
}

func (c *Context) enumAttr(name string) llvm.Attribute {
	return c.LLVM.CreateEnumAttribute(llvm.AttributeKindID(name), 0)
}

// applyFunctionAttrs adds the attributes and calling convention of attrs to
// fn, plus the size attributes the optimization level asks for.
func (c *Context) applyFunctionAttrs(fn llvm.Value, attrs ast.Attributes) {
	for _, a := range attrs {
		if name, ok := functionAttrs[a.Kind]; ok {
			fn.AddFunctionAttr(c.enumAttr(name))
		}
	}
	if conv, ok := attrs.Convention(); ok {
		cc, known := callConventions[conv]
		if !known {
			c.abort(fmt.Sprintf("Unknown calling convention '%s'.", conv), zeroSpan, 1)
		}
		fn.SetFunctionCallConv(cc)
	}
	switch c.Opts.Build.OptLevel {
	case options.OptSize:
		fn.AddFunctionAttr(c.enumAttr("optsize"))
	case options.OptZize:
		fn.AddFunctionAttr(c.enumAttr("optsize"))
		fn.AddFunctionAttr(c.enumAttr("minsize"))
	}
}

func (c *Context) declareIntrinsic(n *ast.Intrinsic) {
	sig := n.Signature()
	fn := c.Module.NamedFunction(n.External)
	if fn.IsNil() {
		fn = llvm.AddFunction(c.Module, n.External, c.fnType(sig))
	}
	c.funcs[n.Name] = &SymbolAllocated{Name: n.Name, Site: FuncAllocated, Value: fn, Type: sig, Span: n.Sp}
}

// declareFunction adds the function or prototype to the module. Bodies are
// lowered once every declaration exists.
func (c *Context) declareFunction(n *ast.Function) {
	sig := n.Signature()
	name := symbolName(n.Name, n.Attrs)
	fn := llvm.AddFunction(c.Module, name, c.fnType(sig))

	switch {
	case n.IsPrototype(), n.Name == "main":
		fn.SetLinkage(llvm.ExternalLinkage)
	default:
		fn.SetLinkage(linkage(n.Attrs))
	}
	for i, p := range n.Params {
		fn.Param(i).SetName(p.Name)
	}
	c.applyFunctionAttrs(fn, n.Attrs)

	c.funcs[n.Name] = &SymbolAllocated{Name: n.Name, Site: FuncAllocated, Value: fn, Type: sig, Span: n.Sp}
}

// declareAsmFunction wraps the assembly in a function whose body forwards
// the parameters to it.
func (c *Context) declareAsmFunction(n *ast.AssemblerFunction) {
	sig := n.Signature()
	fnTy := c.fnType(sig)
	fn := llvm.AddFunction(c.Module, asmFunctionName(n.Name, n.Attrs), fnTy)
	fn.SetLinkage(linkage(n.Attrs))
	c.applyFunctionAttrs(fn, n.Attrs)

	asm := c.inlineAsm(fnTy, n.Assembler, n.Constraints, n.Attrs)

	saved := c.Builder.GetInsertBlock()
	entry := c.LLVM.AddBasicBlock(fn, "entry")
	c.Builder.SetInsertPointAtEnd(entry)
	call := c.Builder.CreateCall(fnTy, asm, fn.Params(), "")
	if sig.Ret == nil || types.IsVoid(sig.Ret) {
		c.Builder.CreateRetVoid()
	} else {
		c.Builder.CreateRet(call)
	}
	if !saved.IsNil() {
		c.Builder.SetInsertPointAtEnd(saved)
	}

	c.funcs[n.Name] = &SymbolAllocated{Name: n.Name, Site: FuncAllocated, Value: fn, Type: sig, Span: n.Sp}
}

func (c *Context) inlineAsm(fnTy llvm.Type, asm, constraints string, attrs ast.Attributes) llvm.Value {
	dialect := llvm.InlineAsmDialectATT
	if attrs.AsmSyntax() == "Intel" {
		dialect = llvm.InlineAsmDialectIntel
	}
	return llvm.InlineAsm(fnTy, asm, constraints,
		attrs.Has(ast.AttrAsmSideEffects),
		attrs.Has(ast.AttrAsmAlignStack),
		dialect,
		attrs.Has(ast.AttrAsmThrow),
	)
}

func (c *Context) constGlobal(name string, kind types.Type, value llvm.Value, l llvm.Linkage) llvm.Value {
	global := llvm.AddGlobal(c.Module, c.LLVMType(kind), name)
	global.SetInitializer(value)
	global.SetLinkage(l)
	global.SetGlobalConstant(true)
	global.SetAlignment(c.alignment(kind))
	return global
}

func (c *Context) compileGlobalConst(n *ast.Const) {
	l := llvm.PrivateLinkage
	if n.Attrs.HasPublic() {
		l = llvm.ExternalLinkage
	}
	name := symbolName(n.Name, n.Attrs)
	global := c.constGlobal(name, n.Kind, c.compileConstant(n.Value, n.Kind), l)
	global.SetThreadLocal(n.Meta.ThreadLocal)

	c.globals[n.Name] = &SymbolAllocated{
		Name:     n.Name,
		Site:     ConstantAllocated,
		Ptr:      global,
		Type:     n.Kind,
		Volatile: n.Meta.Volatile,
		Span:     n.Sp,
	}
}

func (c *Context) compileGlobalStatic(n *ast.Static) {
	c.globals[n.Name] = c.staticGlobal(symbolName(n.Name, n.Attrs), n, linkage(n.Attrs))
}

// staticGlobal emits the storage of a static. External statics are only
// declared; uninitialized ones start zeroed.
func (c *Context) staticGlobal(name string, n *ast.Static, l llvm.Linkage) *SymbolAllocated {
	ty := c.LLVMType(n.Kind)
	global := llvm.AddGlobal(c.Module, ty, name)
	global.SetAlignment(c.alignment(n.Kind))
	global.SetThreadLocal(n.Meta.ThreadLocal)

	switch {
	case n.Meta.External:
		global.SetLinkage(llvm.ExternalLinkage)
	case n.Meta.Uninitialized || n.Value == nil:
		global.SetLinkage(l)
		global.SetInitializer(llvm.ConstNull(ty))
	default:
		global.SetLinkage(l)
		global.SetInitializer(c.compileConstant(n.Value, n.Kind))
	}
	if !n.Meta.External {
		global.SetGlobalConstant(!n.Meta.Mutable)
	}

	return &SymbolAllocated{
		Name:     n.Name,
		Site:     StaticAllocated,
		Ptr:      global,
		Type:     n.Kind,
		Volatile: n.Meta.Volatile,
		Span:     n.Sp,
	}
}

// compileFunctionBody lowers the body of a declared function. Parameters are
// spilled to the entry block so they can be addressed and assigned.
func (c *Context) compileFunctionBody(n *ast.Function) {
	sym, ok := c.funcs[n.Name]
	if !ok {
		c.abort(fmt.Sprintf("Function '%s' was not declared.", n.Name), n.Sp, 1)
	}
	fn := sym.Value
	c.function = sym
	defer func() { c.function = nil }()

	entry := c.LLVM.AddBasicBlock(fn, "entry")
	c.Builder.SetInsertPointAtEnd(entry)

	c.beginFuncScope()
	for i, p := range n.Params {
		slot := c.entryAlloca(c.LLVMType(p.Kind), "param."+p.Name)
		slot.SetAlignment(c.alignment(p.Kind))
		c.store(fn.Param(i), slot, p.Kind, false)
		c.Put(&SymbolAllocated{Name: p.Name, Site: ParamAllocated, Ptr: slot, Type: p.Kind, Span: p.Sp})
	}

	c.compileBlock(n.Body)
	if !c.terminated() {
		if n.Ret == nil || types.IsVoid(n.Ret) {
			c.Builder.CreateRetVoid()
		} else {
			c.Builder.CreateUnreachable()
		}
	}
	c.EndScope()
}
