package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/options"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

type captured struct {
	diags []*diag.Diagnostic
}

func (c *captured) Report(d *diag.Diagnostic) { c.diags = append(c.diags, d) }

// newTestContext returns a context whose Exit does not end the process, so
// aborts surface as an ErrAborted panic.
func newTestContext(t *testing.T, opts *options.Options) (*Context, *captured) {
	t.Helper()
	llctx := llvm.NewContext()
	t.Cleanup(llctx.Dispose)

	sink := &captured{}
	c := NewContext(llctx, t.Name(), opts, sink)
	c.Exit = func(int) {}
	t.Cleanup(c.Dispose)
	return c, sink
}

// enterFunction declares fn and positions the builder in its entry block
// with its parameters bound, as compileFunctionBody does.
func enterFunction(t *testing.T, c *Context, fn *ast.Function) llvm.Value {
	t.Helper()
	c.declareFunction(fn)
	sym := c.funcs[fn.Name]
	c.function = sym
	entry := c.LLVM.AddBasicBlock(sym.Value, "entry")
	c.Builder.SetInsertPointAtEnd(entry)
	c.beginFuncScope()
	return sym.Value
}

func param(name string, kind types.Type) *ast.FunctionParameter {
	return &ast.FunctionParameter{Name: name, Kind: kind}
}

func s32(v uint64) *ast.Integer { return &ast.Integer{Kind: types.S32, Value: v} }

func mainReturning(stmts ...ast.Node) *ast.Function {
	return &ast.Function{
		Name: "main",
		Ret:  types.S32,
		Body: &ast.Block{Stmts: append(stmts, &ast.Return{Expr: s32(0)})},
	}
}

func compileIR(t *testing.T, opts *options.Options, nodes ...ast.Node) string {
	t.Helper()
	c, sink := newTestContext(t, opts)
	err := Compile(c, &ast.File{Name: t.Name(), Nodes: nodes})
	require.NoError(t, err, "diagnostics: %v", sink.diags)
	require.NoError(t, c.Verify())
	return c.GenerateIR()
}

func TestHeapLocalConstructorBuildsInPlace(t *testing.T) {
	point := types.NewStruct("Point", []types.Type{types.S32, types.S32}, types.StructModifiers{})
	local := &ast.Local{
		Name:  "p",
		Kind:  point,
		Attrs: ast.Attributes{{Kind: ast.AttrHeap}},
		Value: &ast.Constructor{
			Name: "Point",
			Kind: point,
			Args: []ast.ConstructorField{
				{Name: "x", Value: s32(1), Index: 0},
				{Name: "y", Value: s32(2), Index: 1},
			},
		},
	}

	ir := compileIR(t, nil, mainReturning(&ast.Block{Stmts: []ast.Node{local}}))

	assert.Contains(t, ir, "@malloc(")
	assert.Contains(t, ir, "%local.p = ")
	assert.Contains(t, ir, "@free(")
	assert.NotContains(t, ir, "alloca %Point")
	assert.NotContains(t, ir, "store %Point")
}

func TestHeapLocalNotFreedWhenDisabled(t *testing.T) {
	opts := options.Default()
	opts.Codegen.HeapFreeOnScopeExit = false
	local := &ast.Local{Name: "n", Kind: types.S64, Attrs: ast.Attributes{{Kind: ast.AttrHeap}}}

	ir := compileIR(t, opts, mainReturning(&ast.Block{Stmts: []ast.Node{local}}))

	assert.Contains(t, ir, "@malloc(")
	assert.NotContains(t, ir, "@free(")
}

func TestIndexGEP(t *testing.T) {
	arr := types.NewFixedArray(types.S32, 4)
	c, _ := newTestContext(t, nil)
	fn := enterFunction(t, c, &ast.Function{
		Name:   "index",
		Params: []*ast.FunctionParameter{param("p", types.NewPtr(arr)), param("q", types.OpaquePtr)},
		Ret:    types.Void,
		Body:   &ast.Block{},
	})
	i64 := c.LLVM.Int64Type()

	_, elem := c.IndexGEP(fn.Param(0), types.NewPtr(arr), llvm.ConstInt(i64, 1, false))
	assert.Equal(t, types.S32, elem)

	_, elem = c.IndexGEP(fn.Param(1), types.OpaquePtr, llvm.ConstInt(i64, 3, false))
	assert.Equal(t, types.U8, elem)

	ir := c.GenerateIR()
	assert.Contains(t, ir, "[4 x i32], ptr %p, i32 0, i64 1")
	assert.Contains(t, ir, "i8, ptr %q, i64 3")
}

func TestIndexWidensNarrowUnsignedIndexes(t *testing.T) {
	buf := types.NewFixedArray(types.U8, 65536)
	tests := []struct {
		name  string
		index ast.Expression
		want  string
		wrong string
	}{
		{"u8", &ast.Integer{Kind: types.U8, Value: 200}, "i32 0, i64 200", "i8 -56"},
		{"char", &ast.Char{Value: 255}, "i32 0, i64 255", "i8 -1"},
		{"u16", &ast.Integer{Kind: types.U16, Value: 40000}, "i32 0, i64 40000", "i16 -25536"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read := &ast.Local{
				Name: "x",
				Kind: types.U8,
				Value: &ast.Index{
					Source:  &ast.Reference{Name: "buf", Kind: buf, Meta: ast.ReferenceMetadata{Allocated: true}},
					Indexes: []ast.Expression{tt.index},
					Kind:    types.U8,
				},
			}

			ir := compileIR(t, nil, mainReturning(&ast.Local{Name: "buf", Kind: buf}, read))

			assert.Contains(t, ir, "getelementptr inbounds [65536 x i8], ptr %local.buf, "+tt.want)
			assert.NotContains(t, ir, tt.wrong)
		})
	}

	t.Run("runtime u8", func(t *testing.T) {
		at := &ast.Function{
			Name:   "at",
			Params: []*ast.FunctionParameter{param("i", types.U8)},
			Ret:    types.U8,
			Body: &ast.Block{Stmts: []ast.Node{
				&ast.Local{Name: "buf", Kind: buf},
				&ast.Return{Expr: &ast.Index{
					Source:  &ast.Reference{Name: "buf", Kind: buf, Meta: ast.ReferenceMetadata{Allocated: true}},
					Indexes: []ast.Expression{&ast.Reference{Name: "i", Kind: types.U8}},
					Kind:    types.U8,
				}},
			}},
		}

		ir := compileIR(t, nil, at)

		assert.Contains(t, ir, "zext i8 ")
		assert.Regexp(t, `getelementptr inbounds \[65536 x i8\], ptr %local\.buf, i32 0, i64 %\d+`, ir)
	})
}

func TestPointerArithmeticStepsOverPointee(t *testing.T) {
	offset := func(name string, kind types.Type, op token.TokenType) *ast.Function {
		p := &ast.Reference{Name: "p", Kind: kind}
		return &ast.Function{
			Name:   name,
			Params: []*ast.FunctionParameter{param("p", kind)},
			Ret:    kind,
			Body: &ast.Block{Stmts: []ast.Node{
				&ast.Return{Expr: &ast.BinaryOp{Left: p, Op: op, Right: s32(1), Kind: kind}},
			}},
		}
	}
	words := types.NewPtr(types.U32)

	ir := compileIR(t, nil,
		offset("next", words, token.ADD),
		offset("prev", words, token.SUB),
		offset("byte", types.OpaquePtr, token.ADD),
	)

	assert.Regexp(t, `getelementptr inbounds i32, ptr %\d+, i64 1\b`, ir)
	assert.Regexp(t, `getelementptr inbounds i32, ptr %\d+, i64 -1\b`, ir)
	assert.Regexp(t, `getelementptr inbounds i8, ptr %\d+, i64 1\b`, ir)
	assert.Equal(t, 1, strings.Count(ir, "getelementptr inbounds i8,"), "only the opaque pointer steps bytes")
}

func TestConvert(t *testing.T) {
	c, _ := newTestContext(t, nil)
	fn := enterFunction(t, c, &ast.Function{
		Name:   "conv",
		Params: []*ast.FunctionParameter{param("a", types.S32), param("b", types.F64), param("u", types.U8)},
		Ret:    types.Void,
		Body:   &ast.Block{},
	})
	a, b, u := fn.Param(0), fn.Param(1), fn.Param(2)

	tests := []struct {
		name string
		run  func()
		want string
	}{
		{"sext", func() { c.convert(a, types.S32, types.S64, zeroSpan) }, "sext i32 %a to i64"},
		{"zext", func() { c.convert(u, types.U8, types.U32, zeroSpan) }, "zext i8 %u to i32"},
		{"trunc", func() { c.convert(a, types.S32, types.S8, zeroSpan) }, "trunc i32 %a to i8"},
		{"sitofp", func() { c.convert(a, types.S32, types.F32, zeroSpan) }, "sitofp i32 %a to float"},
		{"uitofp", func() { c.convert(u, types.U8, types.F64, zeroSpan) }, "uitofp i8 %u to double"},
		{"fptosi", func() { c.convert(b, types.F64, types.S32, zeroSpan) }, "fptosi double %b to i32"},
		{"fptrunc", func() { c.convert(b, types.F64, types.F32, zeroSpan) }, "fptrunc double %b to float"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.run()
			assert.Contains(t, c.GenerateIR(), tt.want)
		})
	}
}

func TestConvertRejectsAggregates(t *testing.T) {
	c, sink := newTestContext(t, nil)
	fn := enterFunction(t, c, &ast.Function{
		Name:   "bad",
		Params: []*ast.FunctionParameter{param("a", types.S32)},
		Ret:    types.Void,
		Body:   &ast.Block{},
	})
	point := types.NewStruct("P", []types.Type{types.S32}, types.StructModifiers{})

	assert.PanicsWithValue(t, ErrAborted, func() {
		c.convert(fn.Param(0), types.S32, point, zeroSpan)
	})
	require.Len(t, sink.diags, 1)
	assert.Equal(t, diag.BackendBug, sink.diags[0].Severity)
}

func TestTypeQueries(t *testing.T) {
	c, _ := newTestContext(t, nil)
	tests := []struct {
		op   ast.BuiltinOp
		of   types.Type
		want uint64
	}{
		{ast.SizeOf, types.S64, 8},
		{ast.AbiSizeOf, types.S32, 4},
		{ast.BitSizeOf, types.S16, 16},
		{ast.AbiAlignOf, types.S32, 4},
		{ast.SizeOf, types.NewFixedArray(types.U8, 3), 3},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			v, ok := c.queryBuiltin(&ast.Builtin{Op: tt.op, Of: tt.of, Kind: types.U64})
			require.True(t, ok)
			assert.Equal(t, tt.want, v.ZExtValue())
		})
	}

	_, ok := c.queryBuiltin(&ast.Builtin{Op: ast.Halloc, Of: types.S32})
	assert.False(t, ok)
}

func TestScopeBalance(t *testing.T) {
	c, sink := newTestContext(t, nil)
	require.Equal(t, 1, c.Depth())

	c.BeginScope()
	c.BeginScope()
	assert.Equal(t, 3, c.Depth())
	c.EndScope()
	c.EndScope()
	assert.Equal(t, 1, c.Depth())

	assert.PanicsWithValue(t, ErrAborted, func() { c.EndScope() })
	require.Len(t, sink.diags, 1)
	assert.Equal(t, "compiler_test.go", sink.diags[0].GoFile)
}

func TestLoopTargets(t *testing.T) {
	c, sink := newTestContext(t, nil)
	enterFunction(t, c, &ast.Function{Name: "loops", Ret: types.Void, Body: &ast.Block{}})

	outerEnd, outerNext := c.addBlock("outer.end"), c.addBlock("outer.next")
	innerEnd, innerNext := c.addBlock("inner.end"), c.addBlock("inner.next")

	c.PushLoop(outerEnd, outerNext)
	c.PushLoop(innerEnd, innerNext)
	assert.Equal(t, 2, c.LoopDepth())
	assert.Equal(t, innerEnd, c.BreakTarget())
	assert.Equal(t, innerNext, c.ContinueTarget())
	assert.Equal(t, outerEnd, c.BreakAllTarget())
	assert.Equal(t, outerNext, c.ContinueAllTarget())

	c.PopLoop()
	assert.Equal(t, outerEnd, c.BreakTarget())
	c.PopLoop()
	assert.Zero(t, c.LoopDepth())

	assert.PanicsWithValue(t, ErrAborted, func() { c.BreakTarget() })
	require.Len(t, sink.diags, 1)
	assert.Equal(t, "compiler_test.go", sink.diags[0].GoFile)
}

func TestBreakOutsideLoopAborts(t *testing.T) {
	c, sink := newTestContext(t, nil)
	exited := -1
	c.Exit = func(code int) { exited = code }

	err := Compile(c, &ast.File{Nodes: []ast.Node{mainReturning(&ast.Break{})}})

	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, 1, exited)
	require.Len(t, sink.diags, 1)
	assert.Equal(t, "stmts.go", sink.diags[0].GoFile)
	assert.Contains(t, sink.diags[0].Msg, "outside of a loop")
}

func TestAnchorRestored(t *testing.T) {
	c, _ := newTestContext(t, nil)
	outer := llvm.ConstPointerNull(c.ptrType())

	triggered := c.WithAnchor(outer, func() {
		inner := c.WithAnchor(outer, func() {
			_, ok := c.claimAnchor()
			assert.True(t, ok)
			_, ok = c.claimAnchor()
			assert.False(t, ok, "an anchor is claimed once")
		})
		assert.True(t, inner)
	})
	assert.False(t, triggered)
	assert.Nil(t, c.anchor)
}

func TestControlFlowBlocks(t *testing.T) {
	cond := &ast.Boolean{Value: true}
	loopBody := &ast.Block{Stmts: []ast.Node{
		&ast.If{
			Cond:  cond,
			Block: &ast.Block{Stmts: []ast.Node{&ast.Break{}}},
			Else:  &ast.Else{Block: &ast.Block{Stmts: []ast.Node{&ast.Continue{}}}},
		},
	}}

	ir := compileIR(t, nil, mainReturning(
		&ast.While{Cond: cond, Block: loopBody},
		&ast.Loop{Block: &ast.Block{Stmts: []ast.Node{&ast.BreakAll{}}}},
	))

	for _, label := range []string{"while.cond:", "while.body:", "while.end:", "if.then:", "if.else:", "loop.body:", "loop.end:"} {
		assert.Contains(t, ir, label)
	}
}

func TestForLoopRunsActionsOnContinue(t *testing.T) {
	i := &ast.Reference{Name: "i", Kind: types.S32}
	forLoop := &ast.For{
		Local:   &ast.Local{Name: "i", Kind: types.S32, Value: s32(0), Meta: ast.LocalMetadata{Mutable: true}},
		Cond:    &ast.BinaryOp{Left: i, Op: token.LSS, Right: s32(10), Kind: types.Bool},
		Actions: &ast.UnaryOp{Op: token.INC, Expr: i, Kind: types.S32},
		Block:   &ast.Block{Stmts: []ast.Node{&ast.Continue{}}},
	}

	ir := compileIR(t, nil, mainReturning(forLoop))

	assert.Contains(t, ir, "icmp slt i32")
	assert.Contains(t, ir, "add i32")
	actions := strings.Index(ir, "for.actions:")
	require.Positive(t, actions)
	assert.Contains(t, ir[:actions], "br label %for.actions", "continue jumps to the actions")
}

func TestDeclarationOrderAndLinkage(t *testing.T) {
	ir := compileIR(t, nil,
		&ast.Const{Name: "LIMIT", Kind: types.S32, Value: s32(7), Meta: ast.ConstantMetadata{Global: true}},
		&ast.Static{Name: "counter", Kind: types.S64, Meta: ast.StaticMetadata{Global: true, Mutable: true, Uninitialized: true}},
		&ast.Function{Name: "puts", Params: []*ast.FunctionParameter{param("s", types.OpaquePtr)}, Ret: types.S32, Attrs: ast.Attributes{{Kind: ast.AttrPublic}}},
		&ast.Function{
			Name:  "helper",
			Ret:   types.S32,
			Attrs: ast.Attributes{{Kind: ast.AttrHot}, {Kind: ast.AttrConvention, Value: "fast"}},
			Body: &ast.Block{Stmts: []ast.Node{
				&ast.Return{Expr: &ast.Reference{Name: "LIMIT", Kind: types.S32, Meta: ast.ReferenceMetadata{Kind: ast.RefConstant}}},
			}},
		},
		mainReturning(&ast.Call{Name: "helper", Kind: types.S32}),
		&ast.GlobalAssembler{Asm: ".globl thrush_marker"},
	)

	assert.Contains(t, ir, "@LIMIT = private constant i32 7")
	assert.Contains(t, ir, "@counter = internal global i64 0")
	assert.Contains(t, ir, "declare i32 @puts(ptr")
	assert.Contains(t, ir, "define internal fastcc i32 @helper()")
	assert.Contains(t, ir, "call fastcc i32 @helper()")
	assert.Contains(t, ir, "define i32 @main()")
	assert.Contains(t, ir, "module asm \".globl thrush_marker\"")
	assert.True(t, strings.Index(ir, "@helper()") < strings.Index(ir, "@main()"))
}
