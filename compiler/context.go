package compiler

import (
	"os"

	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/options"
	"github.com/thrush-lang/thrushc/symbols"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

// Context owns the LLVM state of one compilation unit. It is not safe for
// concurrent use; compile units in parallel with one Context each.
type Context struct {
	LLVM    llvm.Context
	Module  llvm.Module
	Builder llvm.Builder
	Target  llvm.TargetData
	Opts    *options.Options
	Sink    diag.Sink

	// Exit terminates the process after a backend bug. Tests replace it.
	Exit func(code int)

	scopes  []symbols.Scope[*SymbolAllocated]
	globals map[string]*SymbolAllocated // global constants and statics
	funcs   map[string]*SymbolAllocated
	structs map[string]llvm.Type // named struct types
	loops   []loopTargets
	anchor  *PointerAnchor

	function *SymbolAllocated // function whose body is being lowered
	strCount int
}

func NewContext(llctx llvm.Context, name string, opts *options.Options, sink diag.Sink) *Context {
	if opts == nil {
		opts = options.Default()
	}
	if sink == nil {
		sink = diag.NewCollector()
	}

	module := llctx.NewModule(name)
	if opts.Build.DataLayout != "" {
		module.SetDataLayout(opts.Build.DataLayout)
	}
	if opts.Build.TargetTriple != "" {
		module.SetTarget(opts.Build.TargetTriple)
	}
	ident := llctx.MDNode([]llvm.Metadata{llctx.MDString(options.Ident())})
	module.AddNamedMetadataOperand("llvm.ident", ident)

	return &Context{
		LLVM:    llctx,
		Module:  module,
		Builder: llctx.NewBuilder(),
		Target:  llvm.NewTargetData(opts.Build.DataLayout),
		Opts:    opts,
		Sink:    sink,
		Exit:    os.Exit,
		scopes:  []symbols.Scope[*SymbolAllocated]{symbols.NewScope[*SymbolAllocated](symbols.BlockScope)},
		globals: make(map[string]*SymbolAllocated),
		funcs:   make(map[string]*SymbolAllocated),
		structs: make(map[string]llvm.Type),
	}
}

// Dispose releases the builder and target data. The module stays alive and
// belongs to the caller.
func (c *Context) Dispose() {
	c.Builder.Dispose()
	c.Target.Dispose()
}

// GenerateIR returns the textual IR of the module.
func (c *Context) GenerateIR() string {
	return c.Module.String()
}

// Function returns the function being lowered. It aborts outside of one.
func (c *Context) Function() *SymbolAllocated {
	if c.function == nil {
		c.abort("No function is being compiled.", zeroSpan, 1)
	}
	return c.function
}

func (c *Context) returnType() types.Type {
	sig, ok := c.Function().Type.(types.Fn)
	if !ok {
		return types.Void
	}
	return sig.Ret
}

// addBlock appends a basic block to the current function.
func (c *Context) addBlock(name string) llvm.BasicBlock {
	return c.LLVM.AddBasicBlock(c.Function().Value, name)
}

// terminated reports whether the insertion block already ends in a
// terminator, so nothing more may be appended to it.
func (c *Context) terminated() bool {
	bb := c.Builder.GetInsertBlock()
	if bb.IsNil() {
		return true
	}
	last := bb.LastInstruction()
	return !last.IsNil() && !last.IsATerminatorInst().IsNil()
}

// branchIfOpen closes the insertion block with a jump to dest unless it is
// already terminated.
func (c *Context) branchIfOpen(dest llvm.BasicBlock) {
	if !c.terminated() {
		c.Builder.CreateBr(dest)
	}
}
