package ast

// Visitor is called once per node during Walk with the node's depth below
// the root.
type Visitor func(n Node, depth int)

// Walk visits root and its descendants in pre-order. Children are visited in
// the order returned by Children. The visitor must not modify the tree.
func Walk(root Node, visit Visitor) {
	walk(root, 0, visit)
}

func walk(n Node, depth int, visit Visitor) {
	if n == nil {
		return
	}
	visit(n, depth)
	for _, child := range Children(n) {
		walk(child, depth+1, visit)
	}
}

// Children returns the direct children of n in declared order: test before
// consequent before alternate, left before right, callee before arguments.
// Absent optional children and array holes are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, c := range children {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Program:
		add(n.Body...)
	case *Block:
		add(n.Body...)
	case *VarDecl:
		add(n.Init)
	case *FunctionDecl:
		add(n.Params...)
		if n.Body != nil {
			add(n.Body)
		}
	case *Return:
		add(n.Argument)
	case *If:
		add(n.Test, n.Consequent, n.Alternate)
	case *For:
		add(n.Init, n.Test, n.Update, n.Body)
	case *While:
		add(n.Test, n.Body)
	case *DoWhile:
		add(n.Body, n.Test)
	case *Switch:
		add(n.Discriminant)
		add(n.Cases...)
	case *SwitchCase:
		add(n.Test)
		add(n.Consequent...)
	case *Try:
		if n.Block != nil {
			add(n.Block)
		}
		if n.Handler != nil {
			add(n.Handler)
		}
		if n.Finalizer != nil {
			add(n.Finalizer)
		}
	case *CatchClause:
		if n.Body != nil {
			add(n.Body)
		}
	case *With:
		add(n.Object, n.Body)
	case *Labeled:
		add(n.Body)
	case *Break, *Continue, *Empty, *Debugger:
	case *Throw:
		add(n.Argument)
	case *ExpressionStatement:
		add(n.Expression)
	case *Identifier, *Literal, *This:
	case *Assignment:
		add(n.Left, n.Right)
	case *Binary:
		add(n.Left, n.Right)
	case *Conditional:
		add(n.Test, n.Consequent, n.Alternate)
	case *Sequence:
		add(n.Expressions...)
	case *Unary:
		add(n.Argument)
	case *Update:
		add(n.Argument)
	case *Call:
		add(n.Callee)
		add(n.Arguments...)
	case *New:
		add(n.Callee)
		add(n.Arguments...)
	case *Member:
		add(n.Object, n.Property)
	case *FunctionExpression:
		add(n.Params...)
		if n.Body != nil {
			add(n.Body)
		}
	case *ArrayLiteral:
		add(n.Elements...)
	case *ObjectLiteral:
		add(n.Properties...)
	case *Property:
		add(n.Value)
	}
	return out
}
