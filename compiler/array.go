package compiler

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

// anchorable reports the initializers that can build straight into the
// storage of a local.
func anchorable(e ast.Expression) bool {
	for {
		g, ok := e.(*ast.Group)
		if !ok {
			break
		}
		e = g.Expr
	}
	switch e.(type) {
	case *ast.Constructor, *ast.FixedArray:
		return true
	}
	return false
}

// target returns the anchor when one is free, or a fresh stack temporary.
func (c *Context) target(ty llvm.Type, name string) llvm.Value {
	if ptr, ok := c.claimAnchor(); ok {
		return ptr
	}
	return c.entryAlloca(ty, name)
}

func (c *Context) compileConstructor(n *ast.Constructor) llvm.Value {
	st, ok := types.StructFields(n.Kind)
	if !ok {
		c.abort(fmt.Sprintf("Constructor of '%s' is not a struct.", n.Name), n.Sp, 1)
	}
	ty := c.LLVMType(st)
	ptr := c.target(ty, "struct.tmp")

	for _, arg := range n.Args {
		i := int(arg.Index)
		if i >= len(st.Fields) {
			c.abort(fmt.Sprintf("Field '%s' is out of range.", arg.Name), n.Sp, 1)
		}
		field := c.must(c.Builder.CreateStructGEP(ty, ptr, i, ""), "a field address", n.Sp)
		ft := st.Fields[i]
		v := c.coerce(c.compileExpr(arg.Value), arg.Value.Type(), ft)
		c.storeValue(v, field, ft, false)
	}
	return ptr
}

func (c *Context) compileFixedArray(n *ast.FixedArray) llvm.Value {
	arr, ok := constless(n.Kind).(types.FixedArray)
	if !ok {
		c.abort(fmt.Sprintf("Fixed array literal of type '%s'.", n.Kind), n.Sp, 1)
	}
	ty := c.LLVMType(arr)
	ptr := c.target(ty, "array.tmp")
	c.fillItems(ptr, types.NewPtr(arr), arr.Elem, n.Items, ty)
	return ptr
}

// compileArray lowers a dynamic array literal into a stack slot sized to its
// items and returns the address of the first one.
func (c *Context) compileArray(n *ast.Array) llvm.Value {
	elem := types.ArrayBase(n.Kind)
	arr := types.NewFixedArray(elem, uint32(len(n.Items)))
	ty := c.LLVMType(arr)
	ptr := c.entryAlloca(ty, "array.tmp")
	c.fillItems(ptr, types.NewPtr(arr), elem, n.Items, ty)
	return ptr
}

func (c *Context) fillItems(ptr llvm.Value, source, elem types.Type, items []ast.Expression, ty llvm.Type) {
	if len(items) == 0 {
		c.Builder.CreateStore(llvm.ConstNull(ty), ptr)
		return
	}
	i64 := c.LLVM.Int64Type()
	for i, it := range items {
		addr, _ := c.IndexGEP(ptr, source, llvm.ConstInt(i64, uint64(i), false))
		v := c.coerce(c.compileExpr(it), it.Type(), elem)
		c.storeValue(v, addr, elem, false)
	}
}
