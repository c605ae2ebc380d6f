package compiler

import (
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

// AllocSite says where the value behind a symbol lives.
type AllocSite int

const (
	StackAllocated AllocSite = iota
	HeapAllocated
	StaticAllocated
	ConstantAllocated
	ParamAllocated

	// bindings without storage of their own
	LLIAllocated
	FuncAllocated
)

func (s AllocSite) String() string {
	switch s {
	case HeapAllocated:
		return "heap"
	case StaticAllocated:
		return "static"
	case ConstantAllocated:
		return "constant"
	case LLIAllocated:
		return "lli"
	case ParamAllocated:
		return "parameter"
	case FuncAllocated:
		return "function"
	}
	return "stack"
}

// SymbolAllocated binds a name to LLVM storage. Ptr is the address of the
// storage and is nil for bindings held in a register (llis and functions),
// which keep the value itself in Value. Parameters are spilled to the entry
// block so they have storage. The handle does not own the storage.
type SymbolAllocated struct {
	Name     string
	Site     AllocSite
	Ptr      llvm.Value
	Value    llvm.Value
	Type     types.Type
	Volatile bool
	Span     token.Span
}

func (s *SymbolAllocated) HasStorage() bool {
	return !s.Ptr.IsNil()
}

// GetPtr returns the storage address. For a register binding of pointer type
// the value itself is the address.
func (s *SymbolAllocated) GetPtr() llvm.Value {
	if s.HasStorage() {
		return s.Ptr
	}
	return s.Value
}

// Load reads the symbol's current value.
func (s *SymbolAllocated) Load(c *Context) llvm.Value {
	if !s.HasStorage() {
		return s.Value
	}
	return c.load(s.Ptr, s.Type, s.Volatile, "")
}

// GetValue is Load, except that aggregates held by value in storage are
// handed out by address.
func (s *SymbolAllocated) GetValue(c *Context) llvm.Value {
	if s.HasStorage() && isAggregate(s.Type) {
		return s.Ptr
	}
	return s.Load(c)
}

// Store writes v into the symbol's storage. Register bindings cannot be
// written.
func (s *SymbolAllocated) Store(c *Context, v llvm.Value) {
	if !s.HasStorage() {
		c.abort("Cannot store into '"+s.Name+"', it has no storage.", s.Span, 1)
	}
	c.store(v, s.Ptr, s.Type, s.Volatile)
}

// GEP indexes into the symbol as Index does on its storage.
func (s *SymbolAllocated) GEP(c *Context, idx llvm.Value) (llvm.Value, types.Type) {
	if s.HasStorage() && isAggregate(s.Type) {
		return c.IndexGEP(s.Ptr, types.NewPtr(s.Type), idx)
	}
	return c.IndexGEP(s.Load(c), s.Type, idx)
}

// GEPStruct returns the address of field i of the struct behind the symbol.
func (s *SymbolAllocated) GEPStruct(c *Context, i int) (llvm.Value, types.Type) {
	st, ok := types.StructFields(s.Type)
	if !ok || i < 0 || i >= len(st.Fields) {
		c.abort("Field access on '"+s.Name+"' is not a struct field.", s.Span, 1)
	}
	base := s.GetPtr()
	if s.HasStorage() && !isAggregate(s.Type) {
		// a pointer to the struct stored in the slot
		base = s.Load(c)
	}
	field := c.Builder.CreateStructGEP(c.LLVMType(st), base, i, s.Name+".field")
	return field, st.Fields[i]
}

// isAggregate reports types held by value that lower to LLVM aggregates.
func isAggregate(t types.Type) bool {
	switch constless(t).(type) {
	case types.FixedArray, types.Struct:
		return true
	}
	return false
}

func constless(t types.Type) types.Type {
	for {
		c, ok := t.(types.Const)
		if !ok {
			return t
		}
		t = c.Inner
	}
}
