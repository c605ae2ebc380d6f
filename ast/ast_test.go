package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
)

func lit(v uint64) *Integer {
	return &Integer{Kind: types.U32, Value: v}
}

func TestIsConstantValue(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want bool
	}{
		{"literal", lit(2), true},
		{"string", &Str{Value: "hi"}, true},
		{"arithmetic", &BinaryOp{Left: lit(2), Op: token.ADD, Right: lit(3), Kind: types.U32}, true},
		{"grouped negation", &Group{Expr: &UnaryOp{Op: token.SUB, Expr: lit(1), Pre: true, Kind: types.U32}}, true},
		{"increment", &UnaryOp{Op: token.INC, Expr: lit(1), Kind: types.U32}, false},
		{"constant reference", &Reference{Name: "N", Meta: ReferenceMetadata{Kind: RefConstant}, Kind: types.U32}, true},
		{"local reference", &Reference{Name: "x", Meta: ReferenceMetadata{Allocated: true}, Kind: types.U32}, false},
		{"call", &Call{Name: "some_function", Kind: types.U32}, false},
		{"cast of literal", &As{From: lit(1), Cast: types.U8}, true},
		{"array", &FixedArray{Items: []Expression{lit(1), lit(2)}}, true},
		{"array with call", &FixedArray{Items: []Expression{lit(1), &Call{Name: "f"}}}, false},
		{"constructor", &Constructor{Name: "P", Args: []ConstructorField{{Name: "x", Value: lit(1)}}}, true},
		{"sizeof", &Builtin{Op: SizeOf, Of: types.S64, Kind: types.U64}, true},
		{"memcpy", &Builtin{Op: MemCpy, Kind: types.Void}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConstantValue(tt.expr))
		})
	}
}

func TestIsLiteral(t *testing.T) {
	assert.True(t, IsLiteral(lit(1)))
	assert.True(t, IsLiteral(&Group{Expr: &UnaryOp{Op: token.SUB, Expr: lit(1), Kind: types.U32}}))
	assert.False(t, IsLiteral(&Str{Value: "x"}))
	assert.False(t, IsLiteral(&Reference{Name: "x", Kind: types.U32}))
}

func TestAttributes(t *testing.T) {
	attrs := Attributes{
		{Kind: AttrHeap},
		{Kind: AttrExtern, Value: "puts"},
		{Kind: AttrConvention, Value: "fast"},
	}
	assert.True(t, attrs.HasHeap())
	assert.False(t, attrs.HasPublic())

	name, ok := attrs.ExternName()
	require.True(t, ok)
	assert.Equal(t, "puts", name)

	conv, ok := attrs.Convention()
	require.True(t, ok)
	assert.Equal(t, "fast", conv)

	assert.Equal(t, "AT&T", attrs.AsmSyntax())
	_, ok = Attributes{{Kind: AttrExtern}}.ExternName()
	assert.False(t, ok)
}

func TestStrType(t *testing.T) {
	s := &Str{Value: "hello"}
	assert.Equal(t, "ptr[array[char; 6]]", s.Type().String())
}

func TestFunctionSignature(t *testing.T) {
	fn := &Function{
		Name: "printf",
		Params: []*FunctionParameter{
			{Name: "fmt", Kind: types.NewPtr(types.Char)},
		},
		Ret:   types.S32,
		Attrs: Attributes{{Kind: AttrIgnore}},
	}
	sig := fn.Signature()
	assert.True(t, sig.Mods.Ignore)
	assert.Equal(t, "Fn[ptr[char]] -> s32", sig.String())
	assert.True(t, fn.IsPrototype())
}
