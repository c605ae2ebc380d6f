package compiler

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

// opClass groups operand types that lower the same way.
type opClass int

const (
	intOps opClass = iota
	floatOps
	boolOps
	ptrOps
)

// opKey is used as the key for operator functions.
type opKey struct {
	Op    token.TokenType
	Class opClass
}

// opFunc lowers one operator. t is the operand type both sides were
// converted to; it decides signedness.
type opFunc func(c *Context, left, right llvm.Value, t types.Type) llvm.Value

func signedPred(signed, unsigned llvm.IntPredicate) opFunc {
	return func(c *Context, l, r llvm.Value, t types.Type) llvm.Value {
		if types.IsSigned(t) {
			return c.Builder.CreateICmp(signed, l, r, "")
		}
		return c.Builder.CreateICmp(unsigned, l, r, "")
	}
}

func icmp(pred llvm.IntPredicate) opFunc {
	return func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateICmp(pred, l, r, "")
	}
}

func fcmp(pred llvm.FloatPredicate) opFunc {
	return func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateFCmp(pred, l, r, "")
	}
}

// binaryOps maps an operator and operand class to its lowering.
var binaryOps = map[opKey]opFunc{
	// integers
	{token.ADD, intOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateAdd(l, r, "")
	},
	{token.SUB, intOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateSub(l, r, "")
	},
	{token.MUL, intOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateMul(l, r, "")
	},
	{token.QUO, intOps}: func(c *Context, l, r llvm.Value, t types.Type) llvm.Value {
		if types.IsSigned(t) {
			return c.Builder.CreateSDiv(l, r, "")
		}
		return c.Builder.CreateUDiv(l, r, "")
	},
	{token.REM, intOps}: func(c *Context, l, r llvm.Value, t types.Type) llvm.Value {
		if types.IsSigned(t) {
			return c.Builder.CreateSRem(l, r, "")
		}
		return c.Builder.CreateURem(l, r, "")
	},
	{token.AND, intOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateAnd(l, r, "")
	},
	{token.OR, intOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateOr(l, r, "")
	},
	{token.XOR, intOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateXor(l, r, "")
	},
	{token.SHL, intOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateShl(l, r, "")
	},
	{token.SHR, intOps}: func(c *Context, l, r llvm.Value, t types.Type) llvm.Value {
		if types.IsSigned(t) {
			return c.Builder.CreateAShr(l, r, "")
		}
		return c.Builder.CreateLShr(l, r, "")
	},
	{token.EQL, intOps}: icmp(llvm.IntEQ),
	{token.NEQ, intOps}: icmp(llvm.IntNE),
	{token.LSS, intOps}: signedPred(llvm.IntSLT, llvm.IntULT),
	{token.GTR, intOps}: signedPred(llvm.IntSGT, llvm.IntUGT),
	{token.LEQ, intOps}: signedPred(llvm.IntSLE, llvm.IntULE),
	{token.GEQ, intOps}: signedPred(llvm.IntSGE, llvm.IntUGE),

	// floats
	{token.ADD, floatOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateFAdd(l, r, "")
	},
	{token.SUB, floatOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateFSub(l, r, "")
	},
	{token.MUL, floatOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateFMul(l, r, "")
	},
	{token.QUO, floatOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateFDiv(l, r, "")
	},
	{token.REM, floatOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateFRem(l, r, "")
	},
	{token.EQL, floatOps}: fcmp(llvm.FloatOEQ),
	{token.NEQ, floatOps}: fcmp(llvm.FloatONE),
	{token.LSS, floatOps}: fcmp(llvm.FloatOLT),
	{token.GTR, floatOps}: fcmp(llvm.FloatOGT),
	{token.LEQ, floatOps}: fcmp(llvm.FloatOLE),
	{token.GEQ, floatOps}: fcmp(llvm.FloatOGE),

	// booleans
	{token.LAND, boolOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateAnd(l, r, "")
	},
	{token.LOR, boolOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateOr(l, r, "")
	},
	{token.AND, boolOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateAnd(l, r, "")
	},
	{token.OR, boolOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateOr(l, r, "")
	},
	{token.XOR, boolOps}: func(c *Context, l, r llvm.Value, _ types.Type) llvm.Value {
		return c.Builder.CreateXor(l, r, "")
	},
	{token.EQL, boolOps}: icmp(llvm.IntEQ),
	{token.NEQ, boolOps}: icmp(llvm.IntNE),

	// pointers compare as addresses
	{token.EQL, ptrOps}: icmp(llvm.IntEQ),
	{token.NEQ, ptrOps}: icmp(llvm.IntNE),
	{token.LSS, ptrOps}: icmp(llvm.IntULT),
	{token.GTR, ptrOps}: icmp(llvm.IntUGT),
	{token.LEQ, ptrOps}: icmp(llvm.IntULE),
	{token.GEQ, ptrOps}: icmp(llvm.IntUGE),
}

func classOf(t types.Type) (opClass, bool) {
	switch {
	case types.IsBool(t):
		return boolOps, true
	case types.IsInteger(t):
		return intOps, true
	case types.IsFloat(t):
		return floatOps, true
	case types.IsPtrLike(t):
		return ptrOps, true
	}
	return 0, false
}

// operandType is the type both operands of n are evaluated in.
func operandType(n *ast.BinaryOp) types.Type {
	l, r := constless(n.Left.Type()), constless(n.Right.Type())
	if n.Op.IsComparison() || n.Op.IsLogical() {
		return types.Precompute(l, r)
	}
	return constless(n.Kind)
}

func (c *Context) compileBinary(n *ast.BinaryOp) llvm.Value {
	lt, rt := constless(n.Left.Type()), constless(n.Right.Type())

	// pointer arithmetic steps over the pointee, or bytes when it is unknown
	if (n.Op == token.ADD || n.Op == token.SUB) && types.IsPtrLike(lt) && types.IsInteger(rt) {
		ptr := c.compileExpr(n.Left)
		off := c.convert(c.compileExpr(n.Right), rt, types.S64, n.Sp)
		if n.Op == token.SUB {
			off = c.Builder.CreateNeg(off, "")
		}
		step := c.LLVM.Int8Type()
		if p, ok := lt.(types.Ptr); ok && p.Elem != nil {
			step = c.LLVMType(p.Elem)
		}
		return c.Builder.CreateInBoundsGEP(step, ptr, []llvm.Value{off}, "")
	}

	t := operandType(n)
	left := c.convert(c.compileExpr(n.Left), lt, t, n.Sp)
	right := c.convert(c.compileExpr(n.Right), rt, t, n.Sp)
	return c.applyBinary(n.Op, left, right, t, n.Sp)
}

func (c *Context) applyBinary(op token.TokenType, left, right llvm.Value, t types.Type, span token.Span) llvm.Value {
	class, ok := classOf(t)
	if ok {
		if fn, ok := binaryOps[opKey{op, class}]; ok {
			return fn(c, left, right, t)
		}
	}
	c.abort(fmt.Sprintf("Unsupported operator '%s' on '%s'.", op, t), span, 1)
	return llvm.Value{}
}

func (c *Context) compileUnary(n *ast.UnaryOp) llvm.Value {
	t := constless(n.Expr.Type())
	if n.Op.IsMutating() {
		return c.compileIncDec(n, t)
	}

	v := c.compileExpr(n.Expr)
	switch n.Op {
	case token.NOT, token.BNOT:
		return c.Builder.CreateNot(v, "")
	case token.SUB:
		if types.IsFloat(t) {
			return c.Builder.CreateFNeg(v, "")
		}
		return c.Builder.CreateNeg(v, "")
	}
	c.abort(fmt.Sprintf("Unsupported unary operator '%s'.", n.Op), n.Sp, 1)
	return llvm.Value{}
}

// compileIncDec updates the operand in place. Prefix forms yield the new
// value, postfix forms the old one.
func (c *Context) compileIncDec(n *ast.UnaryOp, t types.Type) llvm.Value {
	ptr := c.compileAddress(n.Expr)
	old := c.load(ptr, t, false, "")

	var one llvm.Value
	class := intOps
	if types.IsFloat(t) {
		class = floatOps
		one = llvm.ConstFloat(c.LLVMType(t), 1)
	} else {
		one = llvm.ConstInt(c.LLVMType(t), 1, false)
	}

	op := token.ADD
	if n.Op == token.DEC {
		op = token.SUB
	}
	updated := binaryOps[opKey{op, class}](c, old, one, t)
	c.store(updated, ptr, t, false)

	if n.Pre {
		return updated
	}
	return old
}
