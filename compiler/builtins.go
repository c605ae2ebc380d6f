package compiler

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

var memoryBuiltins = map[ast.BuiltinOp]string{
	ast.MemSet:  MEMSET,
	ast.MemMove: MEMMOVE,
	ast.MemCpy:  MEMCPY,
}

func (c *Context) compileBuiltin(n *ast.Builtin) llvm.Value {
	if v, ok := c.queryBuiltin(n); ok {
		return v
	}

	switch n.Op {
	case ast.Halloc:
		return c.heapAlloc(n.Of, "halloc")
	case ast.MemSet, ast.MemMove, ast.MemCpy:
		if len(n.Args) != 3 {
			c.abort(fmt.Sprintf("Builtin '%s' takes 3 arguments, got %d.", n.Op, len(n.Args)), n.Sp, 1)
		}
		fn := memoryBuiltins[n.Op]
		params := c.GetFnType(fn).ParamTypes()
		args := make([]llvm.Value, 0, 3)
		for i, a := range n.Args {
			v := c.compileExpr(a)
			if p := params[i]; p.TypeKind() == llvm.IntegerTypeKind {
				v = c.convert(v, a.Type(), intOfWidth(p.IntTypeWidth()), n.Sp)
			}
			args = append(args, v)
		}
		return c.callC(fn, args, "")
	}

	c.abort(fmt.Sprintf("Builtin '%s' could not be compiled.", n.Op), n.Sp, 1)
	return llvm.Value{}
}

// queryBuiltin answers the type queries from the target data. They are
// always constants.
func (c *Context) queryBuiltin(n *ast.Builtin) (llvm.Value, bool) {
	var size uint64
	switch n.Op {
	case ast.SizeOf:
		size = c.Target.TypeStoreSize(c.LLVMType(n.Of))
	case ast.AbiSizeOf:
		size = c.Target.TypeAllocSize(c.LLVMType(n.Of))
	case ast.BitSizeOf:
		size = c.Target.TypeSizeInBits(c.LLVMType(n.Of))
	case ast.AlignOf:
		size = uint64(c.Target.PrefTypeAlignment(c.LLVMType(n.Of)))
	case ast.AbiAlignOf:
		size = uint64(c.Target.ABITypeAlignment(c.LLVMType(n.Of)))
	default:
		return llvm.Value{}, false
	}
	kind := n.Kind
	if kind == nil || !types.IsInteger(constless(kind)) {
		kind = types.U64
	}
	return llvm.ConstInt(c.LLVMType(kind), size, false), true
}

func intOfWidth(bits int) types.Type {
	switch bits {
	case 8:
		return types.U8
	case 16:
		return types.U16
	case 32:
		return types.U32
	}
	return types.U64
}
