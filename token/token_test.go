package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenClasses(t *testing.T) {
	tests := []struct {
		tok        TokenType
		arithmetic bool
		bitwise    bool
		logical    bool
		comparison bool
		mutating   bool
	}{
		{ADD, true, false, false, false, false},
		{REM, true, false, false, false, false},
		{SHL, false, true, false, false, false},
		{LOR, false, false, true, false, false},
		{EQL, false, false, false, true, false},
		{GEQ, false, false, false, true, false},
		{INC, false, false, false, false, true},
		{NOT, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.tok.String(), func(t *testing.T) {
			assert.Equal(t, tt.arithmetic, tt.tok.IsArithmetic())
			assert.Equal(t, tt.bitwise, tt.tok.IsBitwise())
			assert.Equal(t, tt.logical, tt.tok.IsLogical())
			assert.Equal(t, tt.comparison, tt.tok.IsComparison())
			assert.Equal(t, tt.mutating, tt.tok.IsMutating())
		})
	}
}

func TestTokenStringUnknown(t *testing.T) {
	assert.Equal(t, "token(999)", TokenType(999).String())
}

func TestSpanMerge(t *testing.T) {
	a := NewSpan("main.th", 1, 5, 4, 10)
	b := NewSpan("main.th", 1, 2, 1, 6)

	got := a.Merge(b)
	assert.Equal(t, 1, got.Start)
	assert.Equal(t, 10, got.End)
	assert.Equal(t, 2, got.Column)
	assert.Equal(t, a, a.Merge(Span{}))
	assert.Equal(t, "main.th:1:5", a.String())
}
