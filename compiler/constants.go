package compiler

import (
	"fmt"

	"github.com/thrush-lang/thrushc/ast"
	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

// compileConstant lowers a compile time expression to an LLVM constant of
// type target. Operators and casts go through the builder, which folds
// constant operands without emitting instructions.
func (c *Context) compileConstant(e ast.Expression, target types.Type) llvm.Value {
	v, t := c.constValue(e)
	return c.coerce(v, t, target)
}

func (c *Context) constValue(e ast.Expression) (llvm.Value, types.Type) {
	switch n := e.(type) {
	case *ast.Integer:
		return llvm.ConstInt(c.LLVMType(n.Kind), n.Value, n.Signed), n.Kind
	case *ast.Float:
		return llvm.ConstFloat(c.LLVMType(n.Kind), n.Value), n.Kind
	case *ast.Boolean:
		var b uint64
		if n.Value {
			b = 1
		}
		return llvm.ConstInt(c.LLVM.Int1Type(), b, false), types.Bool
	case *ast.Char:
		return llvm.ConstInt(c.LLVM.Int8Type(), uint64(n.Value), false), types.Char
	case *ast.NullPtr:
		return llvm.ConstPointerNull(c.ptrType()), types.OpaquePtr
	case *ast.Str:
		return c.compileStr(n), n.Type()
	case *ast.Group:
		return c.constValue(n.Expr)

	case *ast.Reference:
		return c.constReference(n), n.Kind
	case *ast.DirectRef:
		ref, ok := n.Expr.(*ast.Reference)
		if !ok {
			break
		}
		sym, ok := c.Lookup(ref.Name)
		if !ok {
			c.abort(fmt.Sprintf("Could not find reference '%s'.", ref.Name), n.Sp, 1)
		}
		return sym.GetPtr(), n.Kind

	case *ast.BinaryOp:
		l, lt := c.constValue(n.Left)
		r, rt := c.constValue(n.Right)
		t := operandType(n)
		l = c.convert(l, lt, t, n.Sp)
		r = c.convert(r, rt, t, n.Sp)
		return c.applyBinary(n.Op, l, r, t, n.Sp), n.Kind
	case *ast.UnaryOp:
		return c.constUnary(n), n.Kind
	case *ast.As:
		v, t := c.constValue(n.From)
		return c.convert(v, t, n.Cast, n.Sp), n.Cast

	case *ast.FixedArray:
		elem := types.FixedArrayBase(n.Kind)
		items := make([]llvm.Value, 0, len(n.Items))
		for _, it := range n.Items {
			items = append(items, c.compileConstant(it, elem))
		}
		return llvm.ConstArray(c.LLVMType(elem), items), n.Kind
	case *ast.Constructor:
		return c.constStruct(n), n.Kind
	case *ast.EnumValue:
		return c.compileConstant(n.Value, n.Kind), n.Kind
	case *ast.Builtin:
		if v, ok := c.queryBuiltin(n); ok {
			return v, n.Kind
		}
	}

	c.abort(fmt.Sprintf("Expression '%T' is not a constant.", e), spanOf(e), 1)
	return llvm.Value{}, nil
}

// constReference reads a constant through its initializer. Functions are
// constant addresses.
func (c *Context) constReference(n *ast.Reference) llvm.Value {
	sym, ok := c.Lookup(n.Name)
	if !ok {
		c.abort(fmt.Sprintf("Could not find constant '%s'.", n.Name), n.Sp, 1)
	}
	switch sym.Site {
	case FuncAllocated:
		return sym.Value
	case ConstantAllocated:
		if init := sym.Ptr.Initializer(); !init.IsNil() {
			return init
		}
	}
	c.abort(fmt.Sprintf("Reference '%s' is not a constant.", n.Name), n.Sp, 1)
	return llvm.Value{}
}

func (c *Context) constUnary(n *ast.UnaryOp) llvm.Value {
	v, t := c.constValue(n.Expr)
	switch n.Op {
	case token.NOT, token.BNOT:
		return c.Builder.CreateNot(v, "")
	case token.SUB:
		if types.IsFloat(constless(t)) {
			return c.Builder.CreateFNeg(v, "")
		}
		return c.Builder.CreateNeg(v, "")
	}
	c.abort(fmt.Sprintf("Operator '%s' is not constant.", n.Op), n.Sp, 1)
	return llvm.Value{}
}

func (c *Context) constStruct(n *ast.Constructor) llvm.Value {
	st, ok := types.StructFields(n.Kind)
	if !ok {
		c.abort(fmt.Sprintf("Constructor of '%s' is not a struct.", n.Name), n.Sp, 1)
	}
	fields := make([]llvm.Value, len(st.Fields))
	for i, f := range st.Fields {
		fields[i] = llvm.ConstNull(c.LLVMType(f))
	}
	for _, arg := range n.Args {
		if int(arg.Index) >= len(fields) {
			c.abort(fmt.Sprintf("Field '%s' is out of range.", arg.Name), n.Sp, 1)
		}
		fields[arg.Index] = c.compileConstant(arg.Value, st.Fields[arg.Index])
	}
	if st.Name == "" {
		return c.LLVM.ConstStruct(fields, st.Mods.Packed)
	}
	return llvm.ConstNamedStruct(c.LLVMType(st), fields)
}
