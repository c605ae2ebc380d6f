package compiler

import (
	"strings"

	"github.com/thrush-lang/thrushc/ast"
)

const (
	ASM_PREFIX = "__asm_fn_" // assembler functions
	SEP        = "."         // joins the parts of a function local global
)

// symbolName is the LLVM name of a declaration: the @extern name when one is
// given, the source name otherwise.
func symbolName(name string, attrs ast.Attributes) string {
	if ext, ok := attrs.ExternName(); ok {
		return ext
	}
	return name
}

func asmFunctionName(name string, attrs ast.Attributes) string {
	if ext, ok := attrs.ExternName(); ok {
		return ext
	}
	return ASM_PREFIX + name
}

// localGlobalName names the global backing a constant or static declared
// inside a function, e.g. main.const.limit.
func localGlobalName(fn, kind, name string) string {
	return strings.Join([]string{fn, kind, name}, SEP)
}
