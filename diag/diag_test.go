package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrush-lang/thrushc/token"
)

func TestCollectorFailed(t *testing.T) {
	c := NewCollector()
	c.Report(NewWarning(W0005, "'x' is never used", token.Span{}))
	require.False(t, c.Failed())

	c.Report(NewError(E0020, "Expected 'u8' type, got 'f32' type.", token.Span{}))
	require.True(t, c.Failed())
	assert.Len(t, c.Errors(), 1)
	assert.Len(t, c.Warnings(), 1)
	assert.Equal(t, []Code{W0005, E0020}, c.Codes())
}

func TestBugRecordsCaller(t *testing.T) {
	d := NewBug("Type checking", "unexpected node", token.Span{})
	assert.Equal(t, Bug, d.Severity)
	assert.Equal(t, "diag_test.go", d.GoFile)
	assert.NotZero(t, d.GoLine)
	assert.True(t, d.Internal())
}

func TestMultiSink(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	s := Multi(a, b)
	s.Report(NewError(E0028, "unknown", token.Span{}))
	assert.Len(t, a.Diags, 1)
	assert.Len(t, b.Diags, 1)
}

func TestPrinterFormat(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	d := NewError(E0032, "Cannot cast type 'bool' to 'f64'. Types are incompatible for cast.", token.NewSpan("a.th", 3, 7, 20, 30))
	d.Note = "use an integer"
	p.Report(d)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "ERROR[E0032] INCOMPATIBLE TYPE CAST"))
	assert.Contains(t, out, "--> a.th:3:7")
	assert.Contains(t, out, "note: use an integer")
}

func TestCodeTitle(t *testing.T) {
	assert.Equal(t, "MISMATCHED TYPES", E0020.Title())
	assert.Equal(t, "E9999", Code("E9999").Title())
	assert.True(t, W0018.IsWarning())
	assert.False(t, E0018.IsWarning())
}
