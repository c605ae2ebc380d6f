package compiler

import (
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

// IndexGEP computes the address of element idx of the value at ptr, whose
// type is sourceType, and returns it with the element type.
//
// Aggregates held by value, directly or behind a typed pointer, are indexed
// as [0, idx] on the aggregate. Plain pointers step over elements with a
// single i64 index, bytes when the pointer is opaque. Anything else falls
// back to [0, idx] with a 32-bit index.
func (c *Context) IndexGEP(ptr llvm.Value, sourceType types.Type, idx llvm.Value) (llvm.Value, types.Type) {
	i32 := c.LLVM.Int32Type()
	zero := llvm.ConstInt(i32, 0, false)

	src := constless(sourceType)
	if p, ok := src.(types.Ptr); ok && p.Typed() && isAggregate(p.Elem) {
		src = constless(p.Elem)
	}

	switch v := src.(type) {
	case types.FixedArray:
		// GEP indexes are signed; narrow unsigned ones must be widened first
		idx = c.resizeIndex(idx, c.LLVM.Int64Type())
		gep := c.Builder.CreateInBoundsGEP(c.LLVMType(v), ptr, []llvm.Value{zero, idx}, "")
		return c.must(gep, "an array index", zeroSpan), v.Elem
	case types.Struct:
		// struct members only take i32 indexes
		idx = c.resizeIndex(idx, i32)
		gep := c.Builder.CreateInBoundsGEP(c.LLVMType(v), ptr, []llvm.Value{zero, idx}, "")
		return c.must(gep, "a struct index", zeroSpan), structElem(v, idx)
	case types.Ptr:
		elem := v.Elem
		if elem == nil {
			elem = types.U8
		}
		return c.stepGEP(ptr, elem, idx), elem
	case types.Array:
		return c.stepGEP(ptr, v.Elem, idx), v.Elem
	}
	if types.IsAddr(src) {
		return c.stepGEP(ptr, types.U8, idx), types.U8
	}

	idx32 := c.resizeIndex(idx, i32)
	gep := c.Builder.CreateInBoundsGEP(c.LLVMType(src), ptr, []llvm.Value{zero, idx32}, "")
	return c.must(gep, "an index", zeroSpan), types.TypeWithDepth(src, 1)
}

func (c *Context) stepGEP(ptr llvm.Value, elem types.Type, idx llvm.Value) llvm.Value {
	i64 := c.resizeIndex(idx, c.LLVM.Int64Type())
	gep := c.Builder.CreateInBoundsGEP(c.LLVMType(elem), ptr, []llvm.Value{i64}, "")
	return c.must(gep, "a pointer offset", zeroSpan)
}

// resizeIndex zero extends or truncates an index to ty. Indexes are never
// negative once they reach code generation.
func (c *Context) resizeIndex(idx llvm.Value, ty llvm.Type) llvm.Value {
	from := idx.Type().IntTypeWidth()
	to := ty.IntTypeWidth()
	switch {
	case from < to:
		return c.Builder.CreateZExt(idx, ty, "")
	case from > to:
		return c.Builder.CreateTrunc(idx, ty, "")
	}
	return idx
}

// structElem is the field a constant index selects, or the first field when
// the index is not known at compile time.
func structElem(s types.Struct, idx llvm.Value) types.Type {
	if len(s.Fields) == 0 {
		return types.Void
	}
	if idx.IsConstant() {
		if i := idx.ZExtValue(); i < uint64(len(s.Fields)) {
			return s.Fields[i]
		}
	}
	return s.Fields[0]
}
