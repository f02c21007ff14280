package ast

// Free releases n and everything it owns, children first, and clears the
// released nodes so a stale reference cannot reach freed children. Each node
// is released exactly once; freeing an already released node is recorded as
// a double free by the tracker and otherwise ignored.
func (b *Builder) Free(n Node) {
	if n == nil {
		return
	}
	if b.Tracker != nil {
		if _, ok := b.Tracker.live[n]; !ok {
			b.Tracker.doubleFrees++
			return
		}
	}
	for _, child := range Children(n) {
		b.Free(child)
	}
	b.releaseOwned(n)
	if b.Tracker != nil {
		b.Tracker.releaseNode(n)
	}
	zero(n)
}

func (b *Builder) releaseOwned(n Node) {
	t := b.Tracker
	if t == nil {
		return
	}
	switch n := n.(type) {
	case *Program:
		t.releaseList(n.Body)
	case *Block:
		t.releaseList(n.Body)
	case *VarDecl:
		t.releaseString(n.Name)
	case *FunctionDecl:
		t.releaseString(n.Name)
		t.releaseList(n.Params)
	case *Switch:
		t.releaseList(n.Cases)
	case *SwitchCase:
		t.releaseList(n.Consequent)
	case *CatchClause:
		t.releaseString(n.Param)
	case *Labeled:
		t.releaseString(n.Label)
	case *Break:
		t.releaseString(n.Label)
	case *Continue:
		t.releaseString(n.Label)
	case *Identifier:
		t.releaseString(n.Name)
	case *Literal:
		switch n.LiteralKind {
		case LiteralString:
			t.releaseString(n.String)
		case LiteralRegExp:
			t.releaseString(n.Pattern)
			t.releaseString(n.Flags)
		}
	case *Sequence:
		t.releaseList(n.Expressions)
	case *Call:
		t.releaseList(n.Arguments)
	case *New:
		t.releaseList(n.Arguments)
	case *FunctionExpression:
		t.releaseString(n.Name)
		t.releaseList(n.Params)
	case *ArrayLiteral:
		t.releaseList(n.Elements)
	case *ObjectLiteral:
		t.releaseList(n.Properties)
	case *Property:
		t.releaseString(n.Key)
	}
}

func zero(n Node) {
	switch n := n.(type) {
	case *Program:
		*n = Program{}
	case *Block:
		*n = Block{}
	case *VarDecl:
		*n = VarDecl{}
	case *FunctionDecl:
		*n = FunctionDecl{}
	case *Return:
		*n = Return{}
	case *If:
		*n = If{}
	case *For:
		*n = For{}
	case *While:
		*n = While{}
	case *DoWhile:
		*n = DoWhile{}
	case *Switch:
		*n = Switch{}
	case *SwitchCase:
		*n = SwitchCase{}
	case *Try:
		*n = Try{}
	case *CatchClause:
		*n = CatchClause{}
	case *With:
		*n = With{}
	case *Labeled:
		*n = Labeled{}
	case *Break:
		*n = Break{}
	case *Continue:
		*n = Continue{}
	case *Throw:
		*n = Throw{}
	case *ExpressionStatement:
		*n = ExpressionStatement{}
	case *Identifier:
		*n = Identifier{}
	case *Literal:
		*n = Literal{}
	case *Assignment:
		*n = Assignment{}
	case *Binary:
		*n = Binary{}
	case *Conditional:
		*n = Conditional{}
	case *Sequence:
		*n = Sequence{}
	case *Unary:
		*n = Unary{}
	case *Update:
		*n = Update{}
	case *Call:
		*n = Call{}
	case *New:
		*n = New{}
	case *Member:
		*n = Member{}
	case *FunctionExpression:
		*n = FunctionExpression{}
	case *ArrayLiteral:
		*n = ArrayLiteral{}
	case *ObjectLiteral:
		*n = ObjectLiteral{}
	case *Property:
		*n = Property{}
	}
}
