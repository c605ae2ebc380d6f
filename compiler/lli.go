package compiler

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

var lliSites = map[ast.AllocSite]AllocSite{
	ast.AllocStack:  StackAllocated,
	ast.AllocHeap:   HeapAllocated,
	ast.AllocStatic: StaticAllocated,
}

// compileLLI lowers the low-level instructions. They work on raw addresses
// and never go through the anchor.
func (c *Context) compileLLI(e ast.Expression) llvm.Value {
	switch n := e.(type) {
	case *ast.Alloc:
		name := ""
		if n.Site == ast.AllocStatic {
			name = "lli.static"
		}
		return c.AllocAnon(lliSites[n.Site], n.Of, name)

	case *ast.Load:
		ptr := c.compileExpr(n.Source)
		return c.load(ptr, n.Kind, false, "")

	case *ast.Write:
		ptr := c.compileExpr(n.Source)
		v := c.coerce(c.compileExpr(n.Value), n.Value.Type(), n.WriteType)
		c.storeValue(v, ptr, n.WriteType, false)
		return llvm.ConstPointerNull(c.ptrType())

	case *ast.Address:
		base := c.compileExpr(n.Source)
		elem := types.U8
		if p, ok := constless(n.Source.Type()).(types.Ptr); ok && p.Typed() {
			elem = p.Elem
		}
		indexes := make([]llvm.Value, 0, len(n.Indexes))
		for _, idx := range n.Indexes {
			indexes = append(indexes, c.compileExpr(idx))
		}
		gep := c.Builder.CreateInBoundsGEP(c.LLVMType(elem), base, indexes, "")
		return c.must(gep, "an address", n.Sp)
	}

	c.abort(fmt.Sprintf("Low-level instruction '%T' could not be compiled.", e), spanOf(e), 1)
	return llvm.Value{}
}

// compileLLIStmt binds the result of a low-level instruction to a name.
func (c *Context) compileLLIStmt(n *ast.LLI) {
	v := c.compileExpr(n.Value)
	c.Put(&SymbolAllocated{
		Name:  n.Name,
		Site:  LLIAllocated,
		Value: v,
		Type:  n.Kind,
		Span:  n.Sp,
	})
}
