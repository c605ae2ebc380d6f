package compiler

import (
	"errors"

	"github.com/thrush-lang/thrushc/ast"
	"tinygo.org/x/go-llvm"
)

// declaration categories, lowered in this order so that every body sees
// every declaration.
const (
	catIntrinsic = iota
	catAsmFunction
	catFunction
	catConst
	catStatic
	catCount
)

func category(n ast.Node) (int, bool) {
	switch n.(type) {
	case *ast.Intrinsic:
		return catIntrinsic, true
	case *ast.AssemblerFunction:
		return catAsmFunction, true
	case *ast.Function:
		return catFunction, true
	case *ast.Const:
		return catConst, true
	case *ast.Static:
		return catStatic, true
	}
	return 0, false
}

// Compile lowers a checked file into c.Module. Declarations go first, by
// category and in source order within one; function bodies follow, and the
// module level assembly is attached last.
//
// A backend bug is reported to the sink and ends the process through
// c.Exit. When Exit returns, Compile returns ErrAborted.
func Compile(c *Context, file *ast.File) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, ErrAborted) {
				err = ErrAborted
				return
			}
			panic(r)
		}
	}()

	var decls [catCount][]ast.Node
	for _, n := range file.Nodes {
		if cat, ok := category(n); ok {
			decls[cat] = append(decls[cat], n)
		}
	}

	for _, n := range decls[catIntrinsic] {
		c.declareIntrinsic(n.(*ast.Intrinsic))
	}
	for _, n := range decls[catAsmFunction] {
		c.declareAsmFunction(n.(*ast.AssemblerFunction))
	}
	for _, n := range decls[catFunction] {
		c.declareFunction(n.(*ast.Function))
	}
	for _, n := range decls[catConst] {
		c.compileGlobalConst(n.(*ast.Const))
	}
	for _, n := range decls[catStatic] {
		c.compileGlobalStatic(n.(*ast.Static))
	}

	for _, n := range decls[catFunction] {
		if fn := n.(*ast.Function); !fn.IsPrototype() {
			c.compileFunctionBody(fn)
		}
	}

	for _, n := range file.Nodes {
		if g, ok := n.(*ast.GlobalAssembler); ok {
			c.Module.SetInlineAsm(g.Asm)
		}
	}
	return nil
}

// Verify runs the LLVM verifier over the module.
func (c *Context) Verify() error {
	return llvm.VerifyModule(c.Module, llvm.ReturnStatusAction)
}
