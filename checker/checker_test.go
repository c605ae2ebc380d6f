package checker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

func span(line int) token.Span {
	return token.NewSpan("test.th", line, 1, line*10, line*10+5)
}

func u32(v uint64, line int) *ast.Integer {
	return &ast.Integer{Kind: types.U32, Value: v, Sp: span(line)}
}

func fn(name string, ret types.Type, stmts ...ast.Node) *ast.Function {
	return &ast.Function{Name: name, Ret: ret, Body: &ast.Block{Stmts: stmts}, Sp: span(1)}
}

func check(nodes ...ast.Node) *TypeChecker {
	tc := New(&ast.File{Name: "test.th", Nodes: nodes})
	tc.Check()
	return tc
}

func codes(ds []*diag.Diagnostic) []diag.Code {
	out := []diag.Code{}
	for _, d := range ds {
		out = append(out, d.Code)
	}
	return out
}

func TestStringIntoInteger(t *testing.T) {
	init := &ast.Str{Value: "hello", Sp: span(3)}
	tc := check(fn("main", types.Void,
		&ast.Local{Name: "x", Kind: types.U32, Value: init, Sp: span(2)},
	))

	errs := tc.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diag.E0020, errs[0].Code)
	assert.Equal(t, init.Sp, errs[0].Span)
	assert.Equal(t, "Expected 'u32' type, got 'ptr[array[char; 6]]' type.", errs[0].Msg)
}

func TestErrorsAccumulateAcrossFunctions(t *testing.T) {
	bad := func(name string) *ast.Function {
		return fn(name, types.Void,
			&ast.Local{Name: "x", Kind: types.U8, Value: &ast.Float{Kind: types.F32, Value: 1.5}},
			&ast.Local{Name: "ok", Kind: types.U8, Value: &ast.Integer{Kind: types.U8, Value: 1}},
		)
	}
	tc := check(bad("a"), bad("b"), bad("c"))

	want := []diag.Code{diag.E0020, diag.E0020, diag.E0020}
	if diff := cmp.Diff(want, codes(tc.Errors())); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestConstantExpressions(t *testing.T) {
	sum := &ast.BinaryOp{Left: u32(2, 1), Op: token.ADD, Right: u32(3, 1), Kind: types.U32}
	call := &ast.Call{Name: "some_function", Kind: types.U32, Sp: span(4)}

	tc := check(
		&ast.Const{Name: "N", Kind: types.U32, Value: sum, Meta: ast.ConstantMetadata{Global: true}},
		fn("some_function", types.U32, &ast.Return{Expr: u32(1, 3)}),
		&ast.Const{Name: "M", Kind: types.U32, Value: call, Meta: ast.ConstantMetadata{Global: true}},
	)

	errs := tc.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diag.E0006, errs[0].Code)
	assert.Equal(t, call.Sp, errs[0].Span)
}

func TestStaticWithoutValueSkipsConstantCheck(t *testing.T) {
	tc := check(
		&ast.Static{Name: "S", Kind: types.U64, Meta: ast.StaticMetadata{Global: true, Uninitialized: true, Mutable: true}},
		&ast.Static{Name: "T", Kind: types.U64, Value: &ast.Call{Name: "f", Kind: types.U64}, Meta: ast.StaticMetadata{Global: true}},
		&ast.Function{Name: "f", Ret: types.U64},
	)
	assert.Equal(t, []diag.Code{diag.E0006}, codes(tc.Errors()))
}

func TestVoidLocal(t *testing.T) {
	tc := check(fn("main", types.Void,
		&ast.Local{Name: "v", Kind: types.NewPtr(types.Void), Meta: ast.LocalMetadata{Undefined: true}},
	))
	errs := tc.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diag.E0019, errs[0].Code)
	assert.Contains(t, errs[0].Msg, "The void type is not a value")
}

func TestReturn(t *testing.T) {
	tests := []struct {
		name string
		ret  types.Type
		stmt *ast.Return
		want []diag.Code
	}{
		{"matching", types.U32, &ast.Return{Expr: u32(1, 2)}, []diag.Code{}},
		{"widening", types.U64, &ast.Return{Expr: u32(1, 2)}, []diag.Code{}},
		{"mismatch", types.Bool, &ast.Return{Expr: u32(1, 2)}, []diag.Code{diag.E0020}},
		{"bare in void", types.Void, &ast.Return{}, []diag.Code{}},
		{"bare in non-void", types.S32, &ast.Return{}, []diag.Code{diag.E0020}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := check(fn("f", tt.ret, tt.stmt))
			assert.Equal(t, tt.want, codes(tc.Errors()))
		})
	}
}

func TestReturnOutsideFunction(t *testing.T) {
	tc := New(&ast.File{})
	require.NoError(t, tc.checkStmt(&ast.Return{Sp: span(1)}))
	require.Len(t, tc.Diags, 1)
	assert.Equal(t, diag.E0018, tc.Diags[0].Code)
}

func TestCastError(t *testing.T) {
	cast := &ast.As{From: &ast.Boolean{Value: true}, Cast: types.F64, Sp: span(5)}
	tc := check(fn("main", types.Void,
		&ast.Local{Name: "f", Kind: types.F64, Value: cast},
	))
	errs := tc.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diag.E0032, errs[0].Code)
	assert.Equal(t, span(5), errs[0].Span)
	assert.Equal(t, "Cannot cast type 'bool' to 'f64'. Types are incompatible for cast.", errs[0].Msg)
}

func TestConditionsMustBeBool(t *testing.T) {
	tc := check(fn("main", types.Void,
		&ast.While{Cond: u32(1, 2), Block: &ast.Block{}},
		&ast.If{Cond: &ast.Boolean{Value: true}, Block: &ast.Block{}, Elifs: []*ast.Elif{{Cond: u32(0, 3), Block: &ast.Block{}}}},
	))
	assert.Equal(t, []diag.Code{diag.E0020, diag.E0020}, codes(tc.Errors()))
}

func TestCallArguments(t *testing.T) {
	callee := &ast.Function{
		Name:   "add",
		Params: []*ast.FunctionParameter{{Name: "a", Kind: types.U32}, {Name: "b", Kind: types.U32}},
		Ret:    types.U32,
	}
	printf := &ast.Function{
		Name:   "printf",
		Params: []*ast.FunctionParameter{{Name: "fmt", Kind: types.OpaquePtr}},
		Ret:    types.S32,
		Attrs:  ast.Attributes{{Kind: ast.AttrIgnore}},
	}

	tests := []struct {
		name string
		call *ast.Call
		want []diag.Code
	}{
		{"exact", &ast.Call{Name: "add", Args: []ast.Expression{u32(1, 1), u32(2, 1)}, Kind: types.U32}, []diag.Code{}},
		{"missing", &ast.Call{Name: "add", Args: []ast.Expression{u32(1, 1)}, Kind: types.U32}, []diag.Code{diag.E0022}},
		{"extra", &ast.Call{Name: "add", Args: []ast.Expression{u32(1, 1), u32(2, 1), u32(3, 1)}, Kind: types.U32}, []diag.Code{diag.E0023}},
		{"wrong type", &ast.Call{Name: "add", Args: []ast.Expression{u32(1, 1), &ast.Boolean{}}, Kind: types.U32}, []diag.Code{diag.E0020}},
		{"variadic", &ast.Call{Name: "printf", Args: []ast.Expression{&ast.NullPtr{}, u32(1, 1), u32(2, 1)}, Kind: types.S32}, []diag.Code{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := check(callee, printf, fn("main", types.Void, tt.call))
			assert.Equal(t, tt.want, codes(tc.Errors()))
		})
	}
}

func TestUnknownCalleeIsBug(t *testing.T) {
	tc := check(fn("main", types.Void, &ast.Call{Name: "ghost", Kind: types.Void}))
	require.Empty(t, tc.Errors())
	bugs := tc.Bugs()
	require.Len(t, bugs, 1)
	assert.Equal(t, "exprs.go", bugs[0].GoFile)
}

func TestConstructorFields(t *testing.T) {
	point := &ast.Struct{Name: "Point", Fields: []ast.StructField{{Name: "x", Kind: types.S32}, {Name: "y", Kind: types.S32}}}
	st := point.Type()
	s32 := func(v uint64) *ast.Integer { return &ast.Integer{Kind: types.S32, Value: v} }

	tests := []struct {
		name string
		args []ast.ConstructorField
		want []diag.Code
	}{
		{"complete", []ast.ConstructorField{{Name: "x", Value: s32(1)}, {Name: "y", Value: s32(2)}}, []diag.Code{}},
		{"missing", []ast.ConstructorField{{Name: "x", Value: s32(1)}}, []diag.Code{diag.E0027}},
		{"too many", []ast.ConstructorField{{Value: s32(1)}, {Value: s32(2)}, {Value: s32(3)}}, []diag.Code{diag.E0026}},
		{"wrong field type", []ast.ConstructorField{{Name: "x", Value: s32(1)}, {Name: "y", Value: &ast.Float{Kind: types.F64}}}, []diag.Code{diag.E0020}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctor := &ast.Constructor{Name: "Point", Args: tt.args, Kind: st}
			tc := check(point, fn("main", types.Void, &ast.Local{Name: "p", Kind: st, Value: ctor}))
			assert.Equal(t, tt.want, codes(tc.Errors()))
		})
	}
}

func TestIndexAndDeref(t *testing.T) {
	pp := types.NewPtr(types.NewPtr(types.U8))
	ref := func(name string, typ types.Type) *ast.Reference {
		return &ast.Reference{Name: name, Kind: typ, Meta: ast.ReferenceMetadata{Allocated: true}}
	}
	idx := func(v uint64) *ast.Integer { return &ast.Integer{Kind: types.U64, Value: v} }

	tests := []struct {
		name string
		expr ast.Expression
		want []diag.Code
	}{
		{"fixed array", &ast.Index{Source: ref("a", types.NewFixedArray(types.S32, 4)), Indexes: []ast.Expression{idx(1)}, Kind: types.NewPtr(types.S32)}, []diag.Code{}},
		{"ptr to ptr twice", &ast.Index{Source: ref("p", pp), Indexes: []ast.Expression{idx(1), idx(2)}, Kind: types.NewPtr(types.U8)}, []diag.Code{diag.E0019}},
		{"ptr to ptr once", &ast.Index{Source: ref("p", pp), Indexes: []ast.Expression{idx(1)}, Kind: types.NewPtr(types.U8)}, []diag.Code{}},
		{"integer source", &ast.Index{Source: ref("n", types.S32), Indexes: []ast.Expression{idx(1)}, Kind: types.S32}, []diag.Code{diag.E0019}},
		{"float index", &ast.Index{Source: ref("a", types.NewArray(types.S32)), Indexes: []ast.Expression{&ast.Float{Kind: types.F32}}, Kind: types.S32}, []diag.Code{diag.E0020}},
		{"deref pointer", &ast.Deref{Value: ref("p", pp), Kind: types.NewPtr(types.U8)}, []diag.Code{}},
		{"deref integer", &ast.Deref{Value: ref("n", types.S32), Kind: types.S32}, []diag.Code{diag.E0019}},
		{"property of integer", &ast.Property{Source: ref("n", types.S32), Name: "x", Kind: types.S32}, []diag.Code{diag.E0019}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := check(fn("main", types.Void, tt.expr))
			assert.Equal(t, tt.want, codes(tc.Errors()))
		})
	}
}

func TestMutRequiresMutable(t *testing.T) {
	imm := &ast.Reference{Name: "x", Kind: types.S32, Meta: ast.ReferenceMetadata{Allocated: true}}
	mut := &ast.Reference{Name: "y", Kind: types.S32, Meta: ast.ReferenceMetadata{Allocated: true, Mutable: true}}
	val := &ast.Integer{Kind: types.S32, Value: 3}

	tc := check(fn("main", types.Void,
		&ast.Mut{Source: imm, Value: val},
		&ast.Mut{Source: mut, Value: val},
		&ast.Mut{Source: mut, Value: &ast.Boolean{}},
	))
	assert.Equal(t, []diag.Code{diag.E0019, diag.E0020}, codes(tc.Errors()))
}

func TestLowLevelInstructions(t *testing.T) {
	point := types.NewStruct("P", []types.Type{types.S32}, types.StructModifiers{})
	ptr := &ast.Reference{Name: "p", Kind: types.NewPtr(point), Meta: ast.ReferenceMetadata{Allocated: true}}
	opaque := &ast.Reference{Name: "o", Kind: types.OpaquePtr, Meta: ast.ReferenceMetadata{Allocated: true}}
	num := &ast.Reference{Name: "n", Kind: types.S32, Meta: ast.ReferenceMetadata{Allocated: true}}
	u := func(v uint64) *ast.Integer { return &ast.Integer{Kind: types.U32, Value: v} }

	tests := []struct {
		name string
		expr ast.Expression
		want []diag.Code
	}{
		{"load", &ast.Load{Source: opaque, Kind: types.S32}, []diag.Code{}},
		{"load from integer", &ast.Load{Source: num, Kind: types.S32}, []diag.Code{diag.E0019}},
		{"write", &ast.Write{Source: opaque, WriteType: types.S32, Value: &ast.Integer{Kind: types.S32}}, []diag.Code{}},
		{"write mismatch", &ast.Write{Source: opaque, WriteType: types.S32, Value: &ast.Boolean{}}, []diag.Code{diag.E0020}},
		{"address struct", &ast.Address{Source: ptr, Indexes: []ast.Expression{u(0), u(0)}, Kind: types.OpaquePtr}, []diag.Code{}},
		{"address opaque", &ast.Address{Source: opaque, Indexes: []ast.Expression{u(0)}, Kind: types.OpaquePtr}, []diag.Code{diag.E0019}},
		{"address signed index", &ast.Address{Source: ptr, Indexes: []ast.Expression{&ast.Integer{Kind: types.S32}}, Kind: types.OpaquePtr}, []diag.Code{diag.E0020}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := check(fn("main", types.Void, tt.expr))
			assert.Equal(t, tt.want, codes(tc.Errors()))
		})
	}
}

func TestMemoryBuiltins(t *testing.T) {
	dst := &ast.Reference{Name: "d", Kind: types.OpaquePtr, Meta: ast.ReferenceMetadata{Allocated: true}}
	size := &ast.Integer{Kind: types.U64, Value: 16}

	tc := check(fn("main", types.Void,
		&ast.Builtin{Op: ast.MemCpy, Args: []ast.Expression{dst, dst, size}, Kind: types.OpaquePtr},
		&ast.Builtin{Op: ast.MemSet, Args: []ast.Expression{dst, &ast.Integer{Kind: types.U8}, size}, Kind: types.OpaquePtr},
		&ast.Builtin{Op: ast.MemMove, Args: []ast.Expression{dst, dst, &ast.Integer{Kind: types.S64, Value: 1}}, Kind: types.OpaquePtr},
		&ast.Builtin{Op: ast.SizeOf, Of: types.S64, Kind: types.U64},
	))
	assert.Equal(t, []diag.Code{diag.E0020}, codes(tc.Errors()))
}

func TestUndefinedReferenceHaltsDeclaration(t *testing.T) {
	dangling := &ast.Reference{Name: "ghost", Sp: span(2)}
	tc := check(
		fn("a", types.Void,
			&ast.Local{Name: "x", Kind: types.S32, Value: dangling},
			&ast.Local{Name: "y", Kind: types.S32, Value: &ast.Boolean{}},
		),
		fn("b", types.Void, &ast.Local{Name: "z", Kind: types.S32, Value: &ast.Boolean{}}),
	)

	// the second local of a is never reached, b still is
	assert.Equal(t, []diag.Code{diag.E0028, diag.E0020}, codes(tc.Errors()))
	assert.Equal(t, 0, tc.Table.Depth(), "scopes are balanced after a halted declaration")
}

func TestStatementInExpressionPosition(t *testing.T) {
	tc := check(fn("main", types.Void, &ast.FunctionParameter{Name: "p", Kind: types.S32}))
	require.Empty(t, tc.Errors())
	bugs := tc.Bugs()
	require.Len(t, bugs, 1)
	assert.Equal(t, "stmts.go", bugs[0].GoFile)
	assert.Contains(t, bugs[0].Msg, "Statement not caught")
}

func TestEnumFields(t *testing.T) {
	tc := check(&ast.Enum{Name: "Color", Fields: []ast.EnumField{
		{Name: "Red", Kind: types.U8, Value: &ast.Integer{Kind: types.U8, Value: 0}},
		{Name: "Green", Kind: types.U8, Value: &ast.Float{Kind: types.F32}},
		{Name: "Blue", Kind: types.U8, Value: &ast.Call{Name: "f", Kind: types.U8}},
	}}, &ast.Function{Name: "f", Ret: types.U8})

	assert.Equal(t, []diag.Code{diag.E0020, diag.E0006}, codes(tc.Errors()))
}
