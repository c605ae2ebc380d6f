package compiler

import (
	"github.com/thrush-lang/thrushc/ast"
)

type branch struct {
	Cond  ast.Expression
	Block *ast.Block
}

// compileIf lowers an if/elif/else chain. Every condition falls through to
// the next one; bodies that stay open jump to a shared merge block.
func (c *Context) compileIf(n *ast.If) {
	merge := c.addBlock("if.merge")

	branches := []branch{{n.Cond, n.Block}}
	for _, e := range n.Elifs {
		branches = append(branches, branch{e.Cond, e.Block})
	}

	for _, br := range branches {
		cond := c.compileExpr(br.Cond)
		then := c.addBlock("if.then")
		next := c.addBlock("if.else")
		c.Builder.CreateCondBr(cond, then, next)

		c.Builder.SetInsertPointAtEnd(then)
		c.compileBlock(br.Block)
		c.branchIfOpen(merge)

		c.Builder.SetInsertPointAtEnd(next)
	}

	if n.Else != nil {
		c.compileBlock(n.Else.Block)
	}
	c.branchIfOpen(merge)

	merge.MoveAfter(c.Builder.GetInsertBlock())
	c.Builder.SetInsertPointAtEnd(merge)
}

func (c *Context) compileWhile(n *ast.While) {
	cond := c.addBlock("while.cond")
	body := c.addBlock("while.body")
	end := c.addBlock("while.end")

	c.Builder.CreateBr(cond)
	c.Builder.SetInsertPointAtEnd(cond)
	c.Builder.CreateCondBr(c.compileExpr(n.Cond), body, end)

	c.Builder.SetInsertPointAtEnd(body)
	c.PushLoop(end, cond)
	c.compileBlock(n.Block)
	c.PopLoop()
	c.branchIfOpen(cond)

	end.MoveAfter(c.Builder.GetInsertBlock())
	c.Builder.SetInsertPointAtEnd(end)
}

func (c *Context) compileLoop(n *ast.Loop) {
	body := c.addBlock("loop.body")
	end := c.addBlock("loop.end")

	c.Builder.CreateBr(body)
	c.Builder.SetInsertPointAtEnd(body)
	c.PushLoop(end, body)
	c.compileBlock(n.Block)
	c.PopLoop()
	c.branchIfOpen(body)

	end.MoveAfter(c.Builder.GetInsertBlock())
	c.Builder.SetInsertPointAtEnd(end)
}

// compileFor lowers `for local; cond; actions { block }`. The local lives
// in a scope of its own around the loop, and continue runs the actions.
func (c *Context) compileFor(n *ast.For) {
	c.BeginScope()
	if n.Local != nil {
		c.compileLocal(n.Local)
	}

	cond := c.addBlock("for.cond")
	body := c.addBlock("for.body")
	actions := c.addBlock("for.actions")
	end := c.addBlock("for.end")

	c.Builder.CreateBr(cond)
	c.Builder.SetInsertPointAtEnd(cond)
	if n.Cond != nil {
		c.Builder.CreateCondBr(c.compileExpr(n.Cond), body, end)
	} else {
		c.Builder.CreateBr(body)
	}

	c.Builder.SetInsertPointAtEnd(body)
	c.PushLoop(end, actions)
	c.compileBlock(n.Block)
	c.PopLoop()
	c.branchIfOpen(actions)

	actions.MoveAfter(c.Builder.GetInsertBlock())
	c.Builder.SetInsertPointAtEnd(actions)
	if n.Actions != nil {
		c.compileExpr(n.Actions)
	}
	c.Builder.CreateBr(cond)

	end.MoveAfter(actions)
	c.Builder.SetInsertPointAtEnd(end)
	c.EndScope()
}
