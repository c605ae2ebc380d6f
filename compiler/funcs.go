package compiler

import (
	"fmt"
	"maps"
	"slices"

	"tinygo.org/x/go-llvm"
)

const (
	MALLOC  = "malloc"
	FREE    = "free"
	MEMSET  = "memset"
	MEMCPY  = "memcpy"
	MEMMOVE = "memmove"
)

// GetFnType returns the LLVM function type of a libc helper the generated
// code calls.
func (c *Context) GetFnType(name string) llvm.Type {
	ptr := c.ptrType()
	i64 := c.LLVM.Int64Type()
	switch name {
	case MALLOC:
		return llvm.FunctionType(ptr, []llvm.Type{i64}, false)
	case FREE:
		return llvm.FunctionType(c.LLVM.VoidType(), []llvm.Type{ptr}, false)
	case MEMSET:
		return llvm.FunctionType(ptr, []llvm.Type{ptr, c.LLVM.Int32Type(), i64}, false)
	case MEMCPY, MEMMOVE:
		return llvm.FunctionType(ptr, []llvm.Type{ptr, ptr, i64}, false)
	default:
		c.abort(fmt.Sprintf("Unknown C function '%s'.", name), zeroSpan, 1)
		return llvm.Type{}
	}
}

// GetCFunc declares the libc helper on first use.
func (c *Context) GetCFunc(name string) (llvm.Type, llvm.Value) {
	fnType := c.GetFnType(name)
	fn := c.Module.NamedFunction(name)
	if fn.IsNil() {
		fn = llvm.AddFunction(c.Module, name, fnType)
	}

	return fnType, fn
}

func (c *Context) callC(name string, args []llvm.Value, result string) llvm.Value {
	fnType, fn := c.GetCFunc(name)
	return c.Builder.CreateCall(fnType, fn, args, result)
}

func sortedNames[T any](m map[string]T) []string {
	return slices.Sorted(maps.Keys(m))
}
