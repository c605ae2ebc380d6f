package checker

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/symbols"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

const voidNotValue = "The void type is not a value. It cannot contain a value. The type it represents contains it. Remove it."

// TypeChecker verifies every node of a file against the types the parser
// resolved. It never mutates the tree and keeps going after user errors.
type TypeChecker struct {
	File  *ast.File
	Table *symbols.Table
	Diags []*diag.Diagnostic

	// return type of the function being walked, nil outside of functions
	retType types.Type
}

func New(file *ast.File) *TypeChecker {
	return &TypeChecker{
		File:  file,
		Table: symbols.NewTable(),
		Diags: []*diag.Diagnostic{},
	}
}

// Check runs the pass and returns the errors and compiler bugs found, in
// source order.
func (tc *TypeChecker) Check() []*diag.Diagnostic {
	tc.declareTop()
	for _, n := range tc.File.Nodes {
		if err := tc.checkDecl(n); err != nil {
			tc.halt(err, n.Span())
		}
	}
	return tc.Diags
}

func (tc *TypeChecker) Errors() []*diag.Diagnostic { return tc.filter(diag.Error) }
func (tc *TypeChecker) Bugs() []*diag.Diagnostic   { return tc.filter(diag.Bug) }

func (tc *TypeChecker) filter(sev diag.Severity) []*diag.Diagnostic {
	var out []*diag.Diagnostic
	for _, d := range tc.Diags {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// halt records the error that stopped a declaration.
func (tc *TypeChecker) halt(err error, span token.Span) {
	if d, ok := err.(*diag.Diagnostic); ok {
		tc.Diags = append(tc.Diags, d)
		return
	}
	tc.Diags = append(tc.Diags, diag.NewBug("Type checking", err.Error(), span))
}

func (tc *TypeChecker) errorf(code diag.Code, span token.Span, format string, args ...any) {
	tc.Diags = append(tc.Diags, diag.NewError(code, fmt.Sprintf(format, args...), span))
}

func (tc *TypeChecker) report(err *types.TypeError) {
	if err != nil {
		tc.Diags = append(tc.Diags, err.Diagnostic())
	}
}

// bug records a compiler bug attributed to the caller of bug.
func (tc *TypeChecker) bug(span token.Span, format string, args ...any) {
	tc.Diags = append(tc.Diags, diag.NewBugSkip("Type checking", fmt.Sprintf(format, args...), span, 1))
}

// assign checks value against the expected type, locating errors at the
// value.
func (tc *TypeChecker) assign(expected types.Type, value ast.Expression) {
	tc.report(types.CheckAssign(expected, value.Type(), ast.IsLiteral(value), value.Span()))
}

// declareTop forward-declares everything visible from any function body.
func (tc *TypeChecker) declareTop() {
	for _, n := range tc.File.Nodes {
		switch d := n.(type) {
		case *ast.Function:
			tc.Table.DeclareFunc(d.Name, symbols.Func{Kind: symbols.Function, Sig: d.Signature(), Attrs: d.Attrs, Span: d.Sp})
		case *ast.AssemblerFunction:
			tc.Table.DeclareFunc(d.Name, symbols.Func{Kind: symbols.AsmFunction, Sig: d.Signature(), Attrs: d.Attrs, Span: d.Sp})
		case *ast.Intrinsic:
			tc.Table.DeclareFunc(d.Name, symbols.Func{Kind: symbols.Intrinsic, Sig: d.Signature(), Attrs: d.Attrs, Span: d.Sp})
		case *ast.Struct:
			tc.Table.DeclareStruct(d.Name, symbols.Struct{Fields: d.Fields, Mods: d.Mods, Attrs: d.Attrs, Span: d.Sp})
		case *ast.Enum:
			tc.Table.DeclareEnum(d.Name, symbols.Enum{Fields: d.Fields, Attrs: d.Attrs, Span: d.Sp})
		case *ast.CustomType:
			tc.Table.DeclareAlias(d.Name, d.Kind)
		case *ast.Const:
			tc.Table.DeclareGlobal(d.Name, symbols.Symbol{Category: symbols.Constant, Type: d.Kind, Span: d.Sp})
		case *ast.Static:
			tc.Table.DeclareGlobal(d.Name, symbols.Symbol{Category: symbols.Static, Type: d.Kind, Mutable: d.Meta.Mutable, Span: d.Sp})
		}
	}
}

func (tc *TypeChecker) checkDecl(n ast.Node) error {
	switch d := n.(type) {
	case *ast.Function:
		return tc.checkFunction(d)
	case *ast.AssemblerFunction:
		tc.checkParams(d.Params)
		return nil
	case *ast.Intrinsic:
		for _, p := range d.Params {
			if types.ContainsVoid(p) {
				tc.errorf(diag.E0019, d.Sp, voidNotValue)
			}
		}
		return nil
	case *ast.Struct:
		for _, f := range d.Fields {
			if types.ContainsVoid(f.Kind) {
				tc.errorf(diag.E0019, f.Sp, voidNotValue)
			}
		}
		return nil
	case *ast.Enum:
		return tc.checkEnum(d)
	case *ast.Const:
		return tc.checkConst(d)
	case *ast.Static:
		return tc.checkStatic(d)
	case *ast.CustomType, *ast.GlobalAssembler:
		return nil
	default:
		tc.bug(n.Span(), "Declaration not caught: %T", n)
		return nil
	}
}

func (tc *TypeChecker) checkParams(params []*ast.FunctionParameter) {
	for _, p := range params {
		if types.ContainsVoid(p.Kind) {
			tc.errorf(diag.E0019, p.Sp, voidNotValue)
		}
	}
}

func (tc *TypeChecker) checkFunction(fn *ast.Function) error {
	tc.checkParams(fn.Params)
	if fn.IsPrototype() {
		return nil
	}

	tc.Table.BeginFunction()
	defer tc.Table.EndScope()
	for _, p := range fn.Params {
		tc.Table.Declare(p.Name, symbols.Symbol{Category: symbols.Parameter, Type: p.Kind, Mutable: p.Meta.Mutable, Span: p.Sp})
	}

	tc.retType = fn.Ret
	defer func() { tc.retType = nil }()

	return tc.checkBlock(fn.Body)
}

func (tc *TypeChecker) checkEnum(e *ast.Enum) error {
	for _, f := range e.Fields {
		if f.Value == nil {
			continue
		}
		if f.Value.Type() == nil {
			return tc.untyped(f.Value)
		}
		tc.assign(f.Kind, f.Value)
		if !ast.IsConstantValue(f.Value) {
			tc.errorf(diag.E0006, f.Value.Span(), "Expected a valid constant value or reference to a constant value.")
		}
		if err := tc.checkExpr(f.Value); err != nil {
			return err
		}
	}
	return nil
}
