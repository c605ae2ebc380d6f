package symbols

import (
	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

// Category tells scoped symbols apart.
type Category int

const (
	Local Category = iota
	Constant
	Static
	LLI
	Parameter
)

func (c Category) String() string {
	switch c {
	case Constant:
		return "constant"
	case Static:
		return "static"
	case LLI:
		return "lli"
	case Parameter:
		return "parameter"
	}
	return "local"
}

// Symbol is what the front end knows about a named value.
type Symbol struct {
	Category  Category
	Type      types.Type
	Mutable   bool
	Undefined bool
	Span      token.Span
}

// FuncKind separates the callable declarations sharing one namespace.
type FuncKind int

const (
	Function FuncKind = iota
	AsmFunction
	Intrinsic
)

type Func struct {
	Kind  FuncKind
	Sig   types.Fn
	Attrs ast.Attributes
	Span  token.Span
}

type Struct struct {
	Fields []ast.StructField
	Mods   types.StructModifiers
	Attrs  ast.Attributes
	Span   token.Span
}

// Type returns the struct as a type.
func (s Struct) Type(name string) types.Struct {
	fields := make([]types.Type, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, f.Kind)
	}
	return types.NewStruct(name, fields, s.Mods)
}

type Enum struct {
	Fields []ast.EnumField
	Attrs  ast.Attributes
	Span   token.Span
}

// Table is the front-end symbol table. Function bodies live in a stack of
// scopes; globals live in flat maps for the whole unit.
type Table struct {
	scopes []Scope[Symbol]

	globals   map[string]Symbol
	functions map[string]Func
	structs   map[string]Struct
	enums     map[string]Enum
	aliases   map[string]types.Type
}

func NewTable() *Table {
	return &Table{
		scopes:    []Scope[Symbol]{NewScope[Symbol](BlockScope)},
		globals:   make(map[string]Symbol),
		functions: make(map[string]Func),
		structs:   make(map[string]Struct),
		enums:     make(map[string]Enum),
		aliases:   make(map[string]types.Type),
	}
}

// BeginFunction opens the parameter scope of a function body.
func (t *Table) BeginFunction() { PushScope(&t.scopes, FuncScope) }

func (t *Table) BeginScope() { PushScope(&t.scopes, BlockScope) }

func (t *Table) EndScope() { PopScope(&t.scopes) }

// Depth counts open scopes, the global one excluded.
func (t *Table) Depth() int { return len(t.scopes) - 1 }

// InFunction reports whether a function body is being walked.
func (t *Table) InFunction() bool {
	for _, s := range t.scopes {
		if s.ScopeKind == FuncScope {
			return true
		}
	}
	return false
}

// Declare binds a scoped symbol. It reports false when the innermost scope
// already has name.
func (t *Table) Declare(name string, sym Symbol) bool {
	if InCurrent(t.scopes, name) {
		return false
	}
	Put(t.scopes, name, sym)
	return true
}

func (t *Table) DeclareGlobal(name string, sym Symbol) bool {
	if _, ok := t.globals[name]; ok {
		return false
	}
	t.globals[name] = sym
	return true
}

// Lookup resolves a value name, innermost scope first, then globals.
func (t *Table) Lookup(name string) (Symbol, bool) {
	if sym, ok := Get(t.scopes, name); ok {
		return sym, true
	}
	sym, ok := t.globals[name]
	return sym, ok
}

func (t *Table) DeclareFunc(name string, fn Func) bool {
	if _, ok := t.functions[name]; ok {
		return false
	}
	t.functions[name] = fn
	return true
}

func (t *Table) Func(name string) (Func, bool) {
	fn, ok := t.functions[name]
	return fn, ok
}

func (t *Table) DeclareStruct(name string, s Struct) bool {
	if _, ok := t.structs[name]; ok {
		return false
	}
	t.structs[name] = s
	return true
}

func (t *Table) Struct(name string) (Struct, bool) {
	s, ok := t.structs[name]
	return s, ok
}

func (t *Table) DeclareEnum(name string, e Enum) bool {
	if _, ok := t.enums[name]; ok {
		return false
	}
	t.enums[name] = e
	return true
}

func (t *Table) Enum(name string) (Enum, bool) {
	e, ok := t.enums[name]
	return e, ok
}

// DeclareAlias registers a custom type name.
func (t *Table) DeclareAlias(name string, typ types.Type) bool {
	if _, ok := t.aliases[name]; ok {
		return false
	}
	t.aliases[name] = typ
	return true
}

// ResolveType maps a type name to a type: reserved names first, then
// aliases, then structs.
func (t *Table) ResolveType(name string) (types.Type, bool) {
	if typ, ok := types.Lookup(name); ok {
		return typ, true
	}
	if typ, ok := t.aliases[name]; ok {
		return typ, true
	}
	if s, ok := t.structs[name]; ok {
		return s.Type(name), true
	}
	return nil, false
}
