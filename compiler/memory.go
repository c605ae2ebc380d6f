package compiler

import (
	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

// entryAlloca places an alloca at the top of the entry block so stack slots
// are created once per call, whatever block asked for them.
func (c *Context) entryAlloca(ty llvm.Type, name string) llvm.Value {
	current := c.Builder.GetInsertBlock()
	if current.IsNil() {
		c.abort("No insertion block for a stack allocation.", zeroSpan, 1)
	}
	entry := current.Parent().EntryBasicBlock()
	first := entry.FirstInstruction()

	if first.IsNil() {
		c.Builder.SetInsertPointAtEnd(entry)
	} else {
		c.Builder.SetInsertPointBefore(first)
	}

	alloca := c.Builder.CreateAlloca(ty, name)
	c.Builder.SetInsertPointAtEnd(current)
	return alloca
}

// heapAlloc calls malloc for one value of type t.
func (c *Context) heapAlloc(t types.Type, name string) llvm.Value {
	size := llvm.ConstInt(c.LLVM.Int64Type(), c.allocSize(t), false)
	return c.callC(MALLOC, []llvm.Value{size}, name)
}

func (c *Context) free(ptr llvm.Value) {
	c.callC(FREE, []llvm.Value{ptr}, "")
}

// NewLocal allocates the storage of a local. @heap locals live in malloc'd
// memory, the rest in the entry block.
func (c *Context) NewLocal(name string, kind types.Type, attrs ast.Attributes, span token.Span) *SymbolAllocated {
	site := StackAllocated
	storage := "local." + name
	var ptr llvm.Value
	if attrs.HasHeap() {
		site = HeapAllocated
		ptr = c.must(c.heapAlloc(kind, storage), "the heap storage of local '"+name+"'", span)
	} else {
		ptr = c.must(c.entryAlloca(c.LLVMType(kind), storage), "the stack storage of local '"+name+"'", span)
		ptr.SetAlignment(c.alignment(kind))
	}

	return &SymbolAllocated{
		Name: name,
		Site: site,
		Ptr:  ptr,
		Type: kind,
		Span: span,
	}
}

// AllocAnon reserves unnamed storage for one kind at the given site and
// returns its address.
func (c *Context) AllocAnon(site AllocSite, kind types.Type, name string) llvm.Value {
	switch site {
	case StackAllocated:
		return c.entryAlloca(c.LLVMType(kind), name)
	case HeapAllocated:
		return c.heapAlloc(kind, name)
	case StaticAllocated:
		ty := c.LLVMType(kind)
		global := llvm.AddGlobal(c.Module, ty, name)
		global.SetLinkage(llvm.InternalLinkage)
		global.SetInitializer(llvm.ConstNull(ty))
		global.SetAlignment(c.alignment(kind))
		return global
	}
	c.abort("Unsupported allocation site '"+site.String()+"'.", zeroSpan, 1)
	return llvm.Value{}
}

// load reads a t through ptr with its ABI alignment.
func (c *Context) load(ptr llvm.Value, t types.Type, volatile bool, name string) llvm.Value {
	inst := c.Builder.CreateLoad(c.LLVMType(t), ptr, name)
	inst.SetAlignment(c.alignment(t))
	if volatile {
		inst.SetVolatile(true)
	}
	return inst
}

func (c *Context) store(v, ptr llvm.Value, t types.Type, volatile bool) llvm.Value {
	inst := c.Builder.CreateStore(v, ptr)
	inst.SetAlignment(c.alignment(t))
	if volatile {
		inst.SetVolatile(true)
	}
	return inst
}

// storeValue writes a lowered value of type t into ptr. Aggregates handed
// around by address are copied with memcpy.
func (c *Context) storeValue(v, ptr llvm.Value, t types.Type, volatile bool) {
	if isAggregate(t) && v.Type().TypeKind() == llvm.PointerTypeKind {
		size := llvm.ConstInt(c.LLVM.Int64Type(), c.allocSize(t), false)
		c.callC(MEMCPY, []llvm.Value{ptr, v, size}, "")
		return
	}
	c.store(v, ptr, t, volatile)
}

// byValue turns an aggregate handed around by address into a first class
// value, for calls and returns.
func (c *Context) byValue(v llvm.Value, t types.Type) llvm.Value {
	if isAggregate(t) && v.Type().TypeKind() == llvm.PointerTypeKind {
		return c.load(v, t, false, "")
	}
	return v
}
