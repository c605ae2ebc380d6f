package compiler

import (
	"github.com/thrush-lang/thrushc/symbols"
)

// BeginScope opens a block scope.
func (c *Context) BeginScope() {
	symbols.PushScope(&c.scopes, symbols.BlockScope)
}

// beginFuncScope opens the scope of a function body. Lookups stop there.
func (c *Context) beginFuncScope() {
	symbols.PushScope(&c.scopes, symbols.FuncScope)
}

// EndScope closes the innermost scope, freeing its heap locals first when
// control can still reach the end of the block.
func (c *Context) EndScope() {
	if len(c.scopes) == 1 {
		c.abort("Scope stack underflow.", zeroSpan, 1)
	}
	if c.Opts.Codegen.HeapFreeOnScopeExit && !c.terminated() {
		c.freeScope(c.scopes[len(c.scopes)-1])
	}
	symbols.PopScope(&c.scopes)
}

// Depth is the number of open scopes, the global one included.
func (c *Context) Depth() int {
	return len(c.scopes)
}

func (c *Context) freeScope(scope symbols.Scope[*SymbolAllocated]) {
	for _, name := range sortedNames(scope.Elems) {
		if sym := scope.Elems[name]; sym.Site == HeapAllocated {
			c.free(sym.Ptr)
		}
	}
}

// Put binds sym in the innermost scope.
func (c *Context) Put(sym *SymbolAllocated) {
	symbols.Put(c.scopes, sym.Name, sym)
}

// Lookup resolves a name: scoped symbols up to the function boundary, then
// global constants and statics, then functions.
func (c *Context) Lookup(name string) (*SymbolAllocated, bool) {
	if sym, ok := symbols.Get(c.scopes, name); ok {
		return sym, true
	}
	if sym, ok := c.globals[name]; ok {
		return sym, true
	}
	sym, ok := c.funcs[name]
	return sym, ok
}

func (c *Context) mustLookup(name string, what string) *SymbolAllocated {
	sym, ok := c.Lookup(name)
	if !ok {
		c.abort("Could not find "+what+" '"+name+"'.", zeroSpan, 1)
	}
	return sym
}
