package diag

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/thrush-lang/thrushc/token"
)

// Severity separates user mistakes from compiler defects. Bug and BackendBug
// always fail a compilation; Warning never does.
type Severity int

const (
	Warning Severity = iota
	Error
	Bug
	BackendBug
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Bug:
		return "compiler bug"
	case BackendBug:
		return "backend bug"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic is one reported issue. GoFile/GoLine record where inside the
// compiler a bug was detected; they are empty for user diagnostics.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Title    string
	Msg      string
	Note     string
	Span     token.Span
	GoFile   string
	GoLine   int
}

func (d *Diagnostic) Error() string {
	if d.Code != "" {
		return fmt.Sprintf("%s: %s[%s]: %s", d.Span, d.Severity, d.Code, d.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Msg)
}

// Internal reports whether the diagnostic blames the compiler rather than
// the source program.
func (d *Diagnostic) Internal() bool {
	return d.Severity == Bug || d.Severity == BackendBug
}

func NewError(code Code, msg string, span token.Span) *Diagnostic {
	return &Diagnostic{Severity: Error, Code: code, Title: code.Title(), Msg: msg, Span: span}
}

func NewWarning(code Code, msg string, span token.Span) *Diagnostic {
	return &Diagnostic{Severity: Warning, Code: code, Title: code.Title(), Msg: msg, Span: span}
}

// NewBug builds a compiler-bug diagnostic stamped with the caller's file and
// line.
func NewBug(title, msg string, span token.Span) *Diagnostic {
	return newInternal(Bug, title, msg, span, 2)
}

// NewBugSkip is NewBug for helpers that report on behalf of their caller.
// skip counts extra stack frames above the direct caller.
func NewBugSkip(title, msg string, span token.Span, skip int) *Diagnostic {
	return newInternal(Bug, title, msg, span, skip+2)
}

// NewBackendBug is NewBug for the code generator. skip counts stack frames
// above the caller, so helpers can attribute the bug to their own caller.
func NewBackendBug(msg string, span token.Span, skip int) *Diagnostic {
	return newInternal(BackendBug, "Backend bug", msg, span, skip+2)
}

func newInternal(sev Severity, title, msg string, span token.Span, skip int) *Diagnostic {
	d := &Diagnostic{Severity: sev, Title: title, Msg: msg, Span: span}
	if _, file, line, ok := runtime.Caller(skip); ok {
		d.GoFile = filepath.Base(file)
		d.GoLine = line
	}
	return d
}

// Sink receives diagnostics in the order the passes produce them.
type Sink interface {
	Report(d *Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d *Diagnostic)

func (f SinkFunc) Report(d *Diagnostic) { f(d) }

// Multi fans a diagnostic out to every sink.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(d *Diagnostic) {
		for _, s := range sinks {
			s.Report(d)
		}
	})
}

// Collector keeps every diagnostic in memory.
type Collector struct {
	Diags []*Diagnostic
}

func NewCollector() *Collector {
	return &Collector{Diags: []*Diagnostic{}}
}

func (c *Collector) Report(d *Diagnostic) {
	c.Diags = append(c.Diags, d)
}

func (c *Collector) filter(sev Severity) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range c.Diags {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

func (c *Collector) Errors() []*Diagnostic   { return c.filter(Error) }
func (c *Collector) Warnings() []*Diagnostic { return c.filter(Warning) }
func (c *Collector) Bugs() []*Diagnostic     { return c.filter(Bug) }

// Failed reports whether anything other than warnings was collected.
func (c *Collector) Failed() bool {
	for _, d := range c.Diags {
		if d.Severity != Warning {
			return true
		}
	}
	return false
}

// Codes returns the codes of all collected diagnostics in order.
func (c *Collector) Codes() []Code {
	codes := make([]Code, 0, len(c.Diags))
	for _, d := range c.Diags {
		codes = append(codes, d.Code)
	}
	return codes
}
