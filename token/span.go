package token

import "fmt"

// Span is a range of source text. Line and Column are 1-based and point at
// the first character; Start and End are byte offsets.
type Span struct {
	File   string
	Line   int
	Column int
	Start  int
	End    int
}

func NewSpan(file string, line, column, start, end int) Span {
	return Span{File: file, Line: line, Column: column, Start: start, End: end}
}

// IsZero reports whether the span carries no location, which is the case for
// types synthesised by the compiler itself.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Merge returns the smallest span covering both s and o.
func (s Span) Merge(o Span) Span {
	if s.IsZero() {
		return o
	}
	if o.IsZero() {
		return s
	}
	out := s
	if o.Start < out.Start {
		out.Start, out.Line, out.Column = o.Start, o.Line, o.Column
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}
