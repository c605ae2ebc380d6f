package compiler

import (
	"errors"
	"fmt"

	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/token"
	"tinygo.org/x/go-llvm"
)

// ErrAborted is the panic value raised when Exit returns after a backend
// bug, which only happens when tests replace Exit.
var ErrAborted = errors.New("compiler: backend aborted")

var zeroSpan token.Span

// Abort reports a backend bug attributed to the caller and ends the process.
// It never returns.
func (c *Context) Abort(msg string, span token.Span) {
	c.abort(msg, span, 1)
}

// abort is Abort for helpers. skip counts frames above the direct caller of
// abort.
func (c *Context) abort(msg string, span token.Span, skip int) {
	c.Sink.Report(diag.NewBackendBug(msg, span, skip+1))
	c.Exit(1)
	panic(ErrAborted)
}

// must aborts when the builder handed back a nil value.
func (c *Context) must(v llvm.Value, what string, span token.Span) llvm.Value {
	if v.IsNil() {
		c.abort(fmt.Sprintf("Failed to build %s.", what), span, 1)
	}
	return v
}
