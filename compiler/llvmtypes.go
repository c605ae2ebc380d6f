package compiler

import (
	"fmt"

	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

// ptrType is the opaque pointer every pointer-like type lowers to.
func (c *Context) ptrType() llvm.Type {
	return llvm.PointerType(c.LLVM.Int8Type(), 0)
}

// LLVMType maps a Thrush type to its LLVM representation.
func (c *Context) LLVMType(t types.Type) llvm.Type {
	switch v := t.(type) {
	case types.Const:
		return c.LLVMType(v.Inner)
	case types.Ptr, types.Array, types.Fn:
		return c.ptrType()
	case types.FixedArray:
		return llvm.ArrayType(c.LLVMType(v.Elem), int(v.Size))
	case types.Struct:
		return c.structType(v)
	}

	switch t.Kind() {
	case types.VoidKind:
		return c.LLVM.VoidType()
	case types.BoolKind:
		return c.LLVM.Int1Type()
	case types.CharKind, types.S8Kind, types.U8Kind:
		return c.LLVM.Int8Type()
	case types.S16Kind, types.U16Kind:
		return c.LLVM.Int16Type()
	case types.S32Kind, types.U32Kind:
		return c.LLVM.Int32Type()
	case types.S64Kind, types.U64Kind, types.SSizeKind, types.USizeKind:
		return c.LLVM.Int64Type()
	case types.U128Kind:
		return c.LLVM.IntType(128)
	case types.F32Kind:
		return c.LLVM.FloatType()
	case types.F64Kind:
		return c.LLVM.DoubleType()
	case types.F128Kind:
		return c.LLVM.FP128Type()
	case types.FX86_80Kind:
		return c.LLVM.X86FP80Type()
	case types.FPPC128Kind:
		return c.LLVM.PPCFP128Type()
	case types.AddrKind:
		return c.ptrType()
	}

	c.abort(fmt.Sprintf("Unknown type '%s' to lower.", t), t.Span(), 1)
	return llvm.Type{}
}

// structType lowers a struct. Named structs become identified types created
// once per module; anonymous ones stay literal.
func (c *Context) structType(s types.Struct) llvm.Type {
	if s.Name == "" {
		return c.LLVM.StructType(c.llvmTypes(s.Fields), s.Mods.Packed)
	}
	if st, ok := c.structs[s.Name]; ok {
		return st
	}
	st := c.LLVM.StructCreateNamed(s.Name)
	// registered before the body so self references through pointers resolve
	c.structs[s.Name] = st
	st.StructSetBody(c.llvmTypes(s.Fields), s.Mods.Packed)
	return st
}

func (c *Context) llvmTypes(ts []types.Type) []llvm.Type {
	out := make([]llvm.Type, 0, len(ts))
	for _, t := range ts {
		out = append(out, c.LLVMType(t))
	}
	return out
}

// fnType lowers a signature. An ignore modifier makes it variadic.
func (c *Context) fnType(sig types.Fn) llvm.Type {
	ret := c.LLVM.VoidType()
	if sig.Ret != nil {
		ret = c.LLVMType(sig.Ret)
	}
	return llvm.FunctionType(ret, c.llvmTypes(sig.Params), sig.Mods.Ignore)
}

// alignment is the ABI alignment in bytes used on loads and stores.
func (c *Context) alignment(t types.Type) int {
	return c.Target.ABITypeAlignment(c.LLVMType(t))
}

func (c *Context) allocSize(t types.Type) uint64 {
	return c.Target.TypeAllocSize(c.LLVMType(t))
}
