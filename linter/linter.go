package linter

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/symbols"
	"github.com/thrush-lang/thrushc/token"
)

// usage tracks one declared name. Code is the warning emitted when the name
// is never used.
type usage struct {
	Code    diag.Code
	Span    token.Span
	Used    bool
	Mutable bool
	Mutated bool
	Exempt  bool
}

// aggregate is a struct or enum whose fields are tracked one by one.
type aggregate struct {
	usage
	FieldCode diag.Code
	Fields    map[string]*usage
}

// Linter reports unused and never mutated symbols. It only produces
// warnings, plus compiler bugs for names the parser should have resolved.
type Linter struct {
	File  *ast.File
	Diags []*diag.Diagnostic

	scopes    []symbols.Scope[*usage]
	globals   map[string]*usage
	functions map[string]*usage
	structs   map[string]*aggregate
	enums     map[string]*aggregate
}

func NewLinter(file *ast.File) *Linter {
	return &Linter{
		File:      file,
		Diags:     []*diag.Diagnostic{},
		scopes:    []symbols.Scope[*usage]{symbols.NewScope[*usage](symbols.BlockScope)},
		globals:   make(map[string]*usage),
		functions: make(map[string]*usage),
		structs:   make(map[string]*aggregate),
		enums:     make(map[string]*aggregate),
	}
}

// Check walks the file and returns the warnings and bugs found.
func (l *Linter) Check() []*diag.Diagnostic {
	l.declareForward()
	for _, n := range l.File.Nodes {
		l.lintDecl(n)
	}
	l.globalWarnings()
	return l.Diags
}

func (l *Linter) Warnings() []*diag.Diagnostic {
	var out []*diag.Diagnostic
	for _, d := range l.Diags {
		if d.Severity == diag.Warning {
			out = append(out, d)
		}
	}
	return out
}

func (l *Linter) bug(span token.Span, title, format string, args ...any) {
	l.Diags = append(l.Diags, diag.NewBugSkip(title, fmt.Sprintf(format, args...), span, 1))
}

func (l *Linter) declareForward() {
	for _, n := range l.File.Nodes {
		switch d := n.(type) {
		case *ast.Static:
			l.globals[d.Name] = &usage{Code: diag.W0009, Span: d.Sp, Exempt: exempt(d.Attrs)}
		case *ast.Const:
			l.globals[d.Name] = &usage{Code: diag.W0010, Span: d.Sp, Exempt: exempt(d.Attrs)}
		case *ast.Function:
			l.functions[d.Name] = &usage{Code: diag.W0017, Span: d.Sp, Exempt: exempt(d.Attrs) || d.Name == "main"}
		case *ast.AssemblerFunction:
			l.functions[d.Name] = &usage{Code: diag.W0011, Span: d.Sp, Exempt: exempt(d.Attrs)}
		case *ast.Intrinsic:
			l.functions[d.Name] = &usage{Code: diag.W0014, Span: d.Sp, Exempt: exempt(d.Attrs)}
		case *ast.Struct:
			agg := &aggregate{
				usage:     usage{Code: diag.W0015, Span: d.Sp, Exempt: exempt(d.Attrs)},
				FieldCode: diag.W0016,
				Fields:    make(map[string]*usage, len(d.Fields)),
			}
			for _, f := range d.Fields {
				agg.Fields[f.Name] = &usage{Code: diag.W0016, Span: f.Sp}
			}
			l.structs[d.Name] = agg
		case *ast.Enum:
			agg := &aggregate{
				usage:     usage{Code: diag.W0012, Span: d.Sp, Exempt: exempt(d.Attrs)},
				FieldCode: diag.W0013,
				Fields:    make(map[string]*usage, len(d.Fields)),
			}
			for _, f := range d.Fields {
				agg.Fields[f.Name] = &usage{Code: diag.W0013, Span: f.Sp}
			}
			l.enums[d.Name] = agg
		}
	}
}

func exempt(attrs ast.Attributes) bool {
	return attrs.HasPublic() || attrs.HasExtern()
}

func (l *Linter) lintDecl(n ast.Node) {
	switch d := n.(type) {
	case *ast.Function:
		if d.IsPrototype() {
			return
		}
		symbols.PushScope(&l.scopes, symbols.FuncScope)
		for _, p := range d.Params {
			symbols.Put(l.scopes, p.Name, &usage{Code: diag.W0008, Span: p.Sp})
		}
		l.lintBlock(d.Body)
		l.report(symbols.PopScope(&l.scopes))
	case *ast.Const:
		l.lintExpr(d.Value)
	case *ast.Static:
		l.lintExpr(d.Value)
	case *ast.Enum:
		for _, f := range d.Fields {
			l.lintExpr(f.Value)
		}
	}
}

func (l *Linter) lintBlock(b *ast.Block) {
	symbols.PushScope(&l.scopes, symbols.BlockScope)
	for _, s := range b.Stmts {
		l.lintStmt(s)
	}
	l.report(symbols.PopScope(&l.scopes))
}

func (l *Linter) lintStmt(n ast.Node) {
	switch s := n.(type) {
	case *ast.Block:
		l.lintBlock(s)
	case *ast.Local:
		l.declare(s.Name, &usage{Code: diag.W0005, Span: s.Sp, Mutable: s.Meta.Mutable})
		l.lintExpr(s.Value)
	case *ast.Const:
		l.declare(s.Name, &usage{Code: diag.W0010, Span: s.Sp})
		l.lintExpr(s.Value)
	case *ast.Static:
		l.declare(s.Name, &usage{Code: diag.W0009, Span: s.Sp})
		l.lintExpr(s.Value)
	case *ast.LLI:
		l.declare(s.Name, &usage{Code: diag.W0007, Span: s.Sp})
		l.lintExpr(s.Value)
	case *ast.Mut:
		if ref, ok := s.Source.(*ast.Reference); ok {
			l.markMutated(ref.Name)
		}
		l.lintExpr(s.Source)
		l.lintExpr(s.Value)
	case *ast.If:
		l.lintExpr(s.Cond)
		l.lintBlock(s.Block)
		for _, e := range s.Elifs {
			l.lintExpr(e.Cond)
			l.lintBlock(e.Block)
		}
		if s.Else != nil {
			l.lintBlock(s.Else.Block)
		}
	case *ast.While:
		l.lintExpr(s.Cond)
		l.lintBlock(s.Block)
	case *ast.Loop:
		l.lintBlock(s.Block)
	case *ast.For:
		symbols.PushScope(&l.scopes, symbols.BlockScope)
		if s.Local != nil {
			l.lintStmt(s.Local)
		}
		l.lintExpr(s.Cond)
		l.lintExpr(s.Actions)
		l.lintBlock(s.Block)
		l.report(symbols.PopScope(&l.scopes))
	case *ast.Return:
		l.lintExpr(s.Expr)
	case *ast.Break, *ast.Continue, *ast.BreakAll, *ast.ContinueAll, *ast.Unreachable,
		*ast.Struct, *ast.CustomType:
	case ast.Expression:
		l.lintExpr(s)
	default:
		l.bug(n.Span(), "Statement not caught", "Statement '%T' could not be caught for processing.", n)
	}
}

func (l *Linter) declare(name string, u *usage) {
	symbols.Put(l.scopes, name, u)
}

func (l *Linter) lintExpr(e ast.Expression) {
	if e == nil {
		return
	}
	for _, ev := range collectEvents(e) {
		l.apply(ev)
	}
}

func (l *Linter) apply(ev UseEvent) {
	switch ev.Kind {
	case Read:
		l.markUsed(ev.Name)
	case Mutate:
		l.markMutated(ev.Name)
	case Call:
		fn, ok := l.functions[ev.Name]
		if !ok {
			l.bug(ev.Span, "Call not caught", "Could not get named function '%s'.", ev.Name)
			return
		}
		fn.Used = true
	case Construct:
		st, ok := l.structs[ev.Name]
		if !ok {
			l.bug(ev.Span, "Structure not caught", "Could not get named struct with name '%s'.", ev.Name)
			return
		}
		st.Used = true
	case Access:
		// Anonymous or foreign struct types have nothing to mark.
		if st, ok := l.structs[ev.Name]; ok {
			st.Used = true
			if f, ok := st.Fields[ev.Field]; ok {
				f.Used = true
			}
		}
	case EnumUse:
		en, ok := l.enums[ev.Name]
		if !ok {
			l.bug(ev.Span, "Enum value not caught", "Could not get the enum of the field '%s'.", ev.Field)
			return
		}
		en.Used = true
		if f, ok := en.Fields[ev.Field]; ok {
			f.Used = true
		}
	case Unhandled:
		l.bug(ev.Span, "Expression not caught", "Expression '%s' could not be caught for processing.", ev.Name)
	}
}

// lookup resolves name the same way the parser does: innermost scope up to
// the function boundary, then globals, then functions used as values.
func (l *Linter) lookup(name string) (*usage, bool) {
	if u, ok := symbols.Get(l.scopes, name); ok {
		return u, true
	}
	if u, ok := l.globals[name]; ok {
		return u, true
	}
	u, ok := l.functions[name]
	return u, ok
}

func (l *Linter) markUsed(name string) {
	if u, ok := l.lookup(name); ok {
		u.Used = true
	}
}

func (l *Linter) markMutated(name string) {
	if u, ok := l.lookup(name); ok {
		u.Used = true
		u.Mutated = true
	}
}

// report emits the warnings for a scope that was just left.
func (l *Linter) report(scope symbols.Scope[*usage]) {
	var warns []*diag.Diagnostic
	for name, u := range scope.Elems {
		switch {
		case !u.Used:
			warns = append(warns, notUsed(u.Code, name, u.Span))
		case u.Mutable && !u.Mutated:
			warns = append(warns, diag.NewWarning(diag.W0018,
				fmt.Sprintf("'%s' is declared mutable but never mutated.", name), u.Span))
		}
	}
	l.add(warns)
}

func (l *Linter) globalWarnings() {
	var warns []*diag.Diagnostic
	for _, table := range []map[string]*usage{l.globals, l.functions} {
		for name, u := range table {
			if !u.Used && !u.Exempt {
				warns = append(warns, notUsed(u.Code, name, u.Span))
			}
		}
	}
	for _, table := range []map[string]*aggregate{l.structs, l.enums} {
		for name, agg := range table {
			if agg.Exempt {
				continue
			}
			if !agg.Used {
				warns = append(warns, notUsed(agg.Code, name, agg.Span))
				continue
			}
			for field, u := range agg.Fields {
				if !u.Used {
					warns = append(warns, notUsed(agg.FieldCode, field, u.Span))
				}
			}
		}
	}
	l.add(warns)
}

func notUsed(code diag.Code, name string, span token.Span) *diag.Diagnostic {
	return diag.NewWarning(code, fmt.Sprintf("'%s' not used.", name), span)
}

// add appends a batch ordered by position, so map iteration never shows in
// the output.
func (l *Linter) add(warns []*diag.Diagnostic) {
	slices.SortStableFunc(warns, func(a, b *diag.Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Span.Start, b.Span.Start),
			cmp.Compare(a.Code, b.Code),
			cmp.Compare(a.Msg, b.Msg),
		)
	})
	l.Diags = append(l.Diags, warns...)
}
