package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

var (
	errorStyle   = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	warningStyle = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	bugStyle     = pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	locStyle     = pterm.NewStyle(pterm.FgLightBlue)
	noteStyle    = pterm.NewStyle(pterm.FgLightGreen)
)

// Printer renders diagnostics for humans. It is a Sink so the passes can
// stream into it directly.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter writes to w. Colour is only used when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{w: w, color: color}
}

func (p *Printer) style(s *pterm.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Sprint(text)
}

// Format returns the rendered form of d without writing it.
func (p *Printer) Format(d *Diagnostic) string {
	var b strings.Builder

	var head string
	switch d.Severity {
	case Warning:
		head = p.style(warningStyle, "WARNING")
	case Error:
		head = p.style(errorStyle, "ERROR")
	default:
		head = p.style(bugStyle, strings.ToUpper(d.Severity.String()))
	}

	title := d.Title
	if title == "" {
		title = d.Code.Title()
	}
	if d.Code != "" {
		fmt.Fprintf(&b, "%s[%s] %s\n", head, d.Code, title)
	} else {
		fmt.Fprintf(&b, "%s %s\n", head, title)
	}

	if !d.Span.IsZero() {
		fmt.Fprintf(&b, "  --> %s\n", p.style(locStyle, d.Span.String()))
	}
	fmt.Fprintf(&b, "  %s\n", d.Msg)
	if d.Note != "" {
		fmt.Fprintf(&b, "  %s %s\n", p.style(noteStyle, "note:"), d.Note)
	}
	if d.GoFile != "" {
		fmt.Fprintf(&b, "  detected at %s:%d\n", d.GoFile, d.GoLine)
	}
	return b.String()
}

func (p *Printer) Report(d *Diagnostic) {
	fmt.Fprint(p.w, p.Format(d))
}

// Print writes every collected diagnostic, warnings first.
func (p *Printer) Print(c *Collector) {
	for _, d := range c.Warnings() {
		p.Report(d)
	}
	for _, d := range c.Diags {
		if d.Severity != Warning {
			p.Report(d)
		}
	}
}
