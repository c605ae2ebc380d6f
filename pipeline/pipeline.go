// Package pipeline runs the passes of one compilation unit in order: type
// checking, analysis, linting and code generation.
package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/checker"
	"github.com/thrush-lang/thrushc/compiler"
	"github.com/thrush-lang/thrushc/diag"
	"github.com/thrush-lang/thrushc/linter"
	"github.com/thrush-lang/thrushc/options"
	"tinygo.org/x/go-llvm"
)

// ErrCompileFailed is returned when a unit has errors or compiler bugs, or
// warnings while they are treated as errors. Code is never generated then.
var ErrCompileFailed = errors.New("compilation failed")

// Run checks file and lowers it into a new module of llctx. Diagnostics go
// to sink, which may be nil.
func Run(llctx llvm.Context, file *ast.File, opts *options.Options, sink diag.Sink) (llvm.Module, error) {
	if opts == nil {
		opts = options.Default()
	}
	col := diag.NewCollector()
	report := diag.Sink(col)
	if sink != nil {
		report = diag.Multi(col, sink)
	}

	for _, d := range checker.New(file).Check() {
		report.Report(d)
	}
	for _, d := range linter.NewAnalyzer(file, opts).Check() {
		report.Report(d)
	}
	if opts.Checks.Lint {
		for _, d := range linter.NewLinter(file).Check() {
			report.Report(d)
		}
	}

	if col.Failed() {
		return llvm.Module{}, fmt.Errorf("%s: %d error(s): %w", file.Name, len(col.Diags)-len(col.Warnings()), ErrCompileFailed)
	}
	if opts.Checks.WarningsAsErrors && len(col.Warnings()) > 0 {
		return llvm.Module{}, fmt.Errorf("%s: %d warning(s) treated as errors: %w", file.Name, len(col.Warnings()), ErrCompileFailed)
	}

	c := compiler.NewContext(llctx, file.Name, opts, report)
	defer c.Dispose()
	if err := compiler.Compile(c, file); err != nil {
		return llvm.Module{}, fmt.Errorf("%s: %w", file.Name, err)
	}
	if opts.Build.Verify {
		if err := c.Verify(); err != nil {
			return llvm.Module{}, fmt.Errorf("%s: invalid module: %w", file.Name, err)
		}
	}
	return c.Module, nil
}

// Result is the outcome of one unit compiled by RunAll.
type Result struct {
	Name        string
	IR          string
	Diagnostics []*diag.Diagnostic
	Err         error
}

// RunAll compiles every file in parallel, each in an LLVM context of its
// own, and returns the results in input order. Diagnostics are replayed
// into sink unit by unit once all of them are done.
func RunAll(files []*ast.File, opts *options.Options, sink diag.Sink) []Result {
	results := make([]Result, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = runIsolated(file, opts)
		}()
	}
	wg.Wait()

	if sink != nil {
		for _, r := range results {
			for _, d := range r.Diagnostics {
				sink.Report(d)
			}
		}
	}
	return results
}

func runIsolated(file *ast.File, opts *options.Options) Result {
	llctx := llvm.NewContext()
	defer llctx.Dispose()

	col := diag.NewCollector()
	r := Result{Name: file.Name}
	module, err := Run(llctx, file, opts, col)
	if err == nil {
		r.IR = module.String()
	}
	r.Diagnostics = col.Diags
	r.Err = err
	return r
}

// Failed reports whether any result carries an error.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
