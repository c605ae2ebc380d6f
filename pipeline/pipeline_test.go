package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/options"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

func s32(v uint64) *ast.Integer { return &ast.Integer{Kind: types.S32, Value: v} }

func mainFile(name string, stmts ...ast.Node) *ast.File {
	body := append(stmts, &ast.Return{Expr: s32(0)})
	return &ast.File{Name: name, Nodes: []ast.Node{
		&ast.Function{Name: "main", Ret: types.S32, Body: &ast.Block{Stmts: body}},
	}}
}

func badFile(name string) *ast.File {
	return mainFile(name, &ast.Local{Name: "x", Kind: types.U8, Value: &ast.Float{Kind: types.F32, Value: 1.5}})
}

func TestRunProducesVerifiedModule(t *testing.T) {
	llctx := llvm.NewContext()
	defer llctx.Dispose()

	col := diag.NewCollector()
	module, err := Run(llctx, mainFile("ok.th"), nil, col)

	require.NoError(t, err)
	assert.False(t, col.Failed())
	assert.Contains(t, module.String(), "define i32 @main()")
}

func TestRunStopsOnErrors(t *testing.T) {
	llctx := llvm.NewContext()
	defer llctx.Dispose()

	col := diag.NewCollector()
	module, err := Run(llctx, badFile("bad.th"), nil, col)

	require.ErrorIs(t, err, ErrCompileFailed)
	assert.True(t, module.IsNil())
	assert.Equal(t, []diag.Code{diag.E0020}, codesOf(col.Errors()))
}

func TestNonConstantInitializerReportedOnce(t *testing.T) {
	llctx := llvm.NewContext()
	defer llctx.Dispose()

	u32 := &ast.Integer{Kind: types.U32, Value: 7}
	file := mainFile("const.th")
	file.Nodes = append([]ast.Node{
		&ast.Function{Name: "some_function", Ret: types.U32, Body: &ast.Block{Stmts: []ast.Node{&ast.Return{Expr: u32}}}},
		&ast.Const{
			Name:  "M",
			Kind:  types.U32,
			Value: &ast.Call{Name: "some_function", Kind: types.U32},
			Meta:  ast.ConstantMetadata{Global: true},
		},
	}, file.Nodes...)

	col := diag.NewCollector()
	module, err := Run(llctx, file, nil, col)

	require.ErrorIs(t, err, ErrCompileFailed)
	assert.True(t, module.IsNil())
	n := 0
	for _, code := range codesOf(col.Errors()) {
		if code == diag.E0006 {
			n++
		}
	}
	assert.Equal(t, 1, n, "errors: %v", codesOf(col.Errors()))
}

func TestWarningsAsErrors(t *testing.T) {
	unused := &ast.Local{Name: "a", Kind: types.S32, Value: s32(1)}

	tests := []struct {
		name   string
		strict bool
		fails  bool
	}{
		{"warnings allowed", false, false},
		{"warnings rejected", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llctx := llvm.NewContext()
			defer llctx.Dispose()

			opts := options.Default()
			opts.Checks.WarningsAsErrors = tt.strict
			col := diag.NewCollector()
			_, err := Run(llctx, mainFile("warn.th", unused), opts, col)

			assert.NotEmpty(t, col.Warnings())
			if tt.fails {
				assert.ErrorIs(t, err, ErrCompileFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLintCanBeDisabled(t *testing.T) {
	llctx := llvm.NewContext()
	defer llctx.Dispose()

	opts := options.Default()
	opts.Checks.Lint = false
	col := diag.NewCollector()
	_, err := Run(llctx, mainFile("quiet.th", &ast.Local{Name: "a", Kind: types.S32, Value: s32(1)}), opts, col)

	require.NoError(t, err)
	assert.Empty(t, col.Warnings())
}

func TestRunAllKeepsInputOrder(t *testing.T) {
	files := []*ast.File{mainFile("a.th"), badFile("b.th"), mainFile("c.th")}

	col := diag.NewCollector()
	results := RunAll(files, nil, col)

	var names []string
	for _, r := range results {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff([]string{"a.th", "b.th", "c.th"}, names); diff != "" {
		t.Errorf("result order mismatch (-want +got):\n%s", diff)
	}

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrCompileFailed)
	assert.Empty(t, results[1].IR)
	assert.NoError(t, results[2].Err)
	assert.Contains(t, results[2].IR, "@main")
	assert.True(t, Failed(results))
	assert.Equal(t, []diag.Code{diag.E0020}, codesOf(col.Errors()))
}

func codesOf(ds []*diag.Diagnostic) []diag.Code {
	out := []diag.Code{}
	for _, d := range ds {
		out = append(out, d.Code)
	}
	return out
}
