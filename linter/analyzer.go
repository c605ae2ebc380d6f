package linter

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/options"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

const (
	refNoAddress   = "An reference with memory address was expected. Try to allocate it."
	valueNoAddress = "An value with memory address was expected, got '%s'. Try to allocate it."
)

// Analyzer reports the structural errors the type checker leaves out. Its
// errors block code generation.
type Analyzer struct {
	File  *ast.File
	Opts  *options.Options
	Diags []*diag.Diagnostic

	// set once the first global assembler is seen
	globalAsm bool
	// number of enclosing loops in the current function
	loopDepth int
}

func NewAnalyzer(file *ast.File, opts *options.Options) *Analyzer {
	if opts == nil {
		opts = options.Default()
	}
	return &Analyzer{
		File:  file,
		Opts:  opts,
		Diags: []*diag.Diagnostic{},
	}
}

func (a *Analyzer) Check() []*diag.Diagnostic {
	for _, n := range a.File.Nodes {
		a.analyzeDecl(n)
	}
	return a.Diags
}

func (a *Analyzer) errorf(code diag.Code, span token.Span, format string, args ...any) {
	a.Diags = append(a.Diags, diag.NewError(code, fmt.Sprintf(format, args...), span))
}

func (a *Analyzer) analyzeDecl(n ast.Node) {
	switch d := n.(type) {
	case *ast.GlobalAssembler:
		if a.globalAsm {
			a.errorf(diag.E0005, d.Sp, "Global assembler is already defined before. One per file is expected. Remove one.")
			return
		}
		a.globalAsm = true

	case *ast.AssemblerFunction:
		if len(d.Params) > a.Opts.Checks.MaxParams {
			a.errorf(diag.E0036, d.Sp, "Too many parameters for the assembler function. Package them in structures or use them through pointers.")
		}

	case *ast.Function:
		if len(d.Params) > a.Opts.Checks.MaxParams {
			a.errorf(diag.E0036, d.Sp, "Too many parameters for the function. Package them in structures or use them through pointers.")
		}
		if d.IsPrototype() {
			return
		}
		saved := a.loopDepth
		a.loopDepth = 0
		a.analyzeStmt(d.Body)
		a.loopDepth = saved

	case *ast.Enum:
		// the type checker owns the constant check; only descend here
		for _, f := range d.Fields {
			a.analyzeExpr(f.Value)
		}

	default:
		a.analyzeStmt(n)
	}
}

func (a *Analyzer) analyzeStmt(n ast.Node) {
	switch s := n.(type) {
	case *ast.Block:
		for _, st := range s.Stmts {
			a.analyzeStmt(st)
		}
	case *ast.Const:
		a.analyzeExpr(s.Value)
	case *ast.Static:
		a.analyzeExpr(s.Value)
	case *ast.Local:
		a.analyzeExpr(s.Value)
	case *ast.LLI:
		a.analyzeExpr(s.Value)
	case *ast.If:
		a.analyzeExpr(s.Cond)
		a.analyzeStmt(s.Block)
		for _, e := range s.Elifs {
			a.analyzeExpr(e.Cond)
			a.analyzeStmt(e.Block)
		}
		if s.Else != nil {
			a.analyzeStmt(s.Else.Block)
		}
	case *ast.For:
		if s.Local != nil {
			a.analyzeStmt(s.Local)
		}
		a.analyzeExpr(s.Cond)
		a.analyzeExpr(s.Actions)
		a.loop(s.Block)
	case *ast.While:
		a.analyzeExpr(s.Cond)
		a.loop(s.Block)
	case *ast.Loop:
		a.loop(s.Block)
	case *ast.Break, *ast.Continue, *ast.BreakAll, *ast.ContinueAll:
		if a.loopDepth == 0 {
			a.errorf(diag.E0017, n.Span(), "Only loop controlers can be inside a loop. The instruction inside a loop was expected. Reposition it inside a loop.")
		}
	case *ast.Mut:
		a.addressable(s.Source, s.Source.Span())
		a.analyzeExpr(s.Source)
		a.analyzeExpr(s.Value)
	case *ast.Return:
		a.analyzeExpr(s.Expr)
	case ast.Expression:
		a.analyzeExpr(s)
	}
}

func (a *Analyzer) loop(b *ast.Block) {
	a.loopDepth++
	a.analyzeStmt(b)
	a.loopDepth--
}

// addressable checks that source names storage that can be written to or
// addressed.
func (a *Analyzer) addressable(source ast.Expression, span token.Span) {
	if ref, ok := source.(*ast.Reference); ok && !ref.Meta.Allocated {
		a.errorf(diag.E0007, span, refNoAddress)
		return
	}
	if t := source.Type(); t != nil && !ast.IsAllocated(source) && types.IsValue(t) {
		a.errorf(diag.E0008, span, valueNoAddress, t)
	}
}

// analyzeExpr looks for Deref and DirectRef of values that have no storage.
func (a *Analyzer) analyzeExpr(e ast.Expression) {
	if e == nil {
		return
	}
	ast.Inspect(e, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.Deref:
			if t := x.Value.Type(); t != nil && types.IsValue(t) && !ast.IsAllocated(x.Value) {
				a.errorf(diag.E0008, x.Sp, valueNoAddress, t)
			}
		case *ast.DirectRef:
			if ref, ok := x.Expr.(*ast.Reference); ok && !ref.Meta.Allocated {
				a.errorf(diag.E0007, x.Sp, refNoAddress)
			} else if t := x.Expr.Type(); !ok && t != nil && types.IsValue(t) && !ast.IsAllocated(x.Expr) {
				a.errorf(diag.E0008, x.Sp, valueNoAddress, t)
			}
		}
		return true
	})
}
