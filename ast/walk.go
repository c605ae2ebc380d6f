package ast

// Children returns the direct sub-nodes of n in source order. Nil operands
// are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil && !isNilNode(c) {
				out = append(out, c)
			}
		}
	}
	addExprs := func(exprs []Expression) {
		for _, e := range exprs {
			add(e)
		}
	}

	switch v := n.(type) {
	case *FixedArray:
		addExprs(v.Items)
	case *Array:
		addExprs(v.Items)
	case *Constructor:
		for _, a := range v.Args {
			add(a.Value)
		}
	case *Index:
		add(v.Source)
		addExprs(v.Indexes)
	case *Property:
		add(v.Source)
	case *BinaryOp:
		add(v.Left, v.Right)
	case *UnaryOp:
		add(v.Expr)
	case *Group:
		add(v.Expr)
	case *DirectRef:
		add(v.Expr)
	case *Deref:
		add(v.Value)
	case *As:
		add(v.From)
	case *Call:
		addExprs(v.Args)
	case *Indirect:
		add(v.Function)
		addExprs(v.Args)
	case *EnumValue:
		add(v.Value)
	case *AsmValue:
		addExprs(v.Args)
	case *Builtin:
		addExprs(v.Args)
	case *Load:
		add(v.Source)
	case *Write:
		add(v.Source, v.Value)
	case *Address:
		add(v.Source)
		addExprs(v.Indexes)

	case *Block:
		add(v.Stmts...)
	case *Local:
		add(v.Value)
	case *Const:
		add(v.Value)
	case *Static:
		add(v.Value)
	case *LLI:
		add(v.Value)
	case *Mut:
		add(v.Source, v.Value)
	case *If:
		add(v.Cond, v.Block)
		for _, e := range v.Elifs {
			add(e)
		}
		if v.Else != nil {
			add(v.Else)
		}
	case *Elif:
		add(v.Cond, v.Block)
	case *Else:
		add(v.Block)
	case *While:
		add(v.Cond, v.Block)
	case *For:
		if v.Local != nil {
			add(v.Local)
		}
		add(v.Cond, v.Actions, v.Block)
	case *Loop:
		add(v.Block)
	case *Return:
		add(v.Expr)
	case *Function:
		if v.Body != nil {
			add(v.Body)
		}
	case *Enum:
		for _, f := range v.Fields {
			add(f.Value)
		}
	}
	return out
}

// isNilNode catches typed nil pointers stored in interfaces, such as a nil
// *Block.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Block:
		return v == nil
	case *Local:
		return v == nil
	case *Else:
		return v == nil
	case *Elif:
		return v == nil
	}
	return false
}

// Inspect traverses the tree depth-first. If f returns false the children
// of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
