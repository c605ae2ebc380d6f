package compiler

import (
	"tinygo.org/x/go-llvm"
)

// loopTargets are the blocks break and continue jump to for one loop.
type loopTargets struct {
	Break    llvm.BasicBlock
	Continue llvm.BasicBlock
}

func (c *Context) PushLoop(breakBB, continueBB llvm.BasicBlock) {
	c.loops = append(c.loops, loopTargets{Break: breakBB, Continue: continueBB})
}

func (c *Context) PopLoop() {
	if len(c.loops) == 0 {
		c.abort("Loop control stack underflow.", zeroSpan, 1)
	}
	c.loops = c.loops[:len(c.loops)-1]
}

// LoopDepth is the number of loops being lowered.
func (c *Context) LoopDepth() int {
	return len(c.loops)
}

func (c *Context) innermost() loopTargets {
	if len(c.loops) == 0 {
		c.abort("Loop control used outside of a loop.", zeroSpan, 2)
	}
	return c.loops[len(c.loops)-1]
}

func (c *Context) outermost() loopTargets {
	if len(c.loops) == 0 {
		c.abort("Loop control used outside of a loop.", zeroSpan, 2)
	}
	return c.loops[0]
}

func (c *Context) BreakTarget() llvm.BasicBlock    { return c.innermost().Break }
func (c *Context) ContinueTarget() llvm.BasicBlock { return c.innermost().Continue }

// BreakAllTarget leaves the outermost loop of the function.
func (c *Context) BreakAllTarget() llvm.BasicBlock { return c.outermost().Break }

// ContinueAllTarget starts the next iteration of the outermost loop.
func (c *Context) ContinueAllTarget() llvm.BasicBlock { return c.outermost().Continue }
