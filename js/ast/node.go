package ast

// Node is implemented by every AST variant. The variant set is closed: only
// the types in this package implement it, so a type switch over Node can be
// checked for exhaustiveness when a kind is added.
type Node interface {
	Kind() Kind
	node()
}

// List is an ordered sequence of owned nodes. Order is source order.
type List []Node

// Append adds n at the end of the list. Nil nodes are dropped.
func (l List) Append(n Node) List {
	if n == nil {
		return l
	}
	return append(l, n)
}

// Concat returns head followed by the nodes of tail. Nil nodes in tail are
// dropped, as with Append.
func Concat(head, tail List) List {
	for _, n := range tail {
		head = head.Append(n)
	}
	return head
}

type Program struct {
	Body List
}

type Block struct {
	Body List
}

// VarDecl declares a single binding. A declaration list such as
// "var a, b" produces one VarDecl per name.
type VarDecl struct {
	VarKind VarKind
	Name    string
	Init    Node
}

type FunctionDecl struct {
	Name   string
	Params List
	Body   *Block
}

type Return struct {
	Argument Node
}

type If struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

type For struct {
	Init   Node
	Test   Node
	Update Node
	Body   Node
}

type While struct {
	Test Node
	Body Node
}

type DoWhile struct {
	Body Node
	Test Node
}

type Switch struct {
	Discriminant Node
	Cases        List
}

// SwitchCase has a nil Test when IsDefault is set.
type SwitchCase struct {
	Test       Node
	Consequent List
	IsDefault  bool
}

type Try struct {
	Block     *Block
	Handler   *CatchClause
	Finalizer *Block
}

type CatchClause struct {
	Param string
	Body  *Block
}

type With struct {
	Object Node
	Body   Node
}

type Labeled struct {
	Label string
	Body  Node
}

type Break struct {
	Label string
}

type Continue struct {
	Label string
}

type Throw struct {
	Argument Node
}

type ExpressionStatement struct {
	Expression Node
}

// Empty, Debugger and This carry a padding byte so that every allocated
// node has a distinct address.
type Empty struct{ _ byte }

type Debugger struct{ _ byte }

type Identifier struct {
	Name string
}

// Literal holds one value selected by LiteralKind. String holds the text
// between the quotes, undecoded. RegExp literals use Pattern and Flags.
type Literal struct {
	LiteralKind LiteralKind
	Number      float64
	String      string
	Boolean     bool
	Pattern     string
	Flags       string
}

type This struct{ _ byte }

type Assignment struct {
	Operator string
	Left     Node
	Right    Node
}

type Binary struct {
	Operator string
	Left     Node
	Right    Node
}

type Conditional struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

type Sequence struct {
	Expressions List
}

type Unary struct {
	Operator string
	Argument Node
}

type Update struct {
	Operator string
	Argument Node
	Prefix   bool
}

type Call struct {
	Callee    Node
	Arguments List
}

type New struct {
	Callee    Node
	Arguments List
}

// Member is either a dotted access, where Property is an *Identifier, or a
// computed access a[expr].
type Member struct {
	Object   Node
	Property Node
	Computed bool
}

// FunctionExpression has an empty Name when anonymous.
type FunctionExpression struct {
	Name   string
	Params List
	Body   *Block
}

// ArrayLiteral elements may contain nil entries for elisions ([1,,2]).
type ArrayLiteral struct {
	Elements List
}

type ObjectLiteral struct {
	Properties List
}

// Property keys are either identifier names or the text of a string or
// number literal key.
type Property struct {
	Key             string
	KeyIsIdentifier bool
	Value           Node
}

func (*Program) Kind() Kind             { return KindProgram }
func (*Block) Kind() Kind               { return KindBlock }
func (*VarDecl) Kind() Kind             { return KindVarDecl }
func (*FunctionDecl) Kind() Kind        { return KindFunctionDecl }
func (*Return) Kind() Kind              { return KindReturn }
func (*If) Kind() Kind                  { return KindIf }
func (*For) Kind() Kind                 { return KindFor }
func (*While) Kind() Kind               { return KindWhile }
func (*DoWhile) Kind() Kind             { return KindDoWhile }
func (*Switch) Kind() Kind              { return KindSwitch }
func (*SwitchCase) Kind() Kind          { return KindSwitchCase }
func (*Try) Kind() Kind                 { return KindTry }
func (*CatchClause) Kind() Kind         { return KindCatchClause }
func (*With) Kind() Kind                { return KindWith }
func (*Labeled) Kind() Kind             { return KindLabeled }
func (*Break) Kind() Kind               { return KindBreak }
func (*Continue) Kind() Kind            { return KindContinue }
func (*Throw) Kind() Kind               { return KindThrow }
func (*ExpressionStatement) Kind() Kind { return KindExpressionStatement }
func (*Empty) Kind() Kind               { return KindEmpty }
func (*Debugger) Kind() Kind            { return KindDebugger }
func (*Identifier) Kind() Kind          { return KindIdentifier }
func (*Literal) Kind() Kind             { return KindLiteral }
func (*This) Kind() Kind                { return KindThis }
func (*Assignment) Kind() Kind          { return KindAssignment }
func (*Binary) Kind() Kind              { return KindBinary }
func (*Conditional) Kind() Kind         { return KindConditional }
func (*Sequence) Kind() Kind            { return KindSequence }
func (*Unary) Kind() Kind               { return KindUnary }
func (*Update) Kind() Kind              { return KindUpdate }
func (*Call) Kind() Kind                { return KindCall }
func (*New) Kind() Kind                 { return KindNew }
func (*Member) Kind() Kind              { return KindMember }
func (*FunctionExpression) Kind() Kind  { return KindFunctionExpression }
func (*ArrayLiteral) Kind() Kind        { return KindArrayLiteral }
func (*ObjectLiteral) Kind() Kind       { return KindObjectLiteral }
func (*Property) Kind() Kind            { return KindProperty }

func (*Program) node()             {}
func (*Block) node()               {}
func (*VarDecl) node()             {}
func (*FunctionDecl) node()        {}
func (*Return) node()              {}
func (*If) node()                  {}
func (*For) node()                 {}
func (*While) node()               {}
func (*DoWhile) node()             {}
func (*Switch) node()              {}
func (*SwitchCase) node()          {}
func (*Try) node()                 {}
func (*CatchClause) node()         {}
func (*With) node()                {}
func (*Labeled) node()             {}
func (*Break) node()               {}
func (*Continue) node()            {}
func (*Throw) node()               {}
func (*ExpressionStatement) node() {}
func (*Empty) node()               {}
func (*Debugger) node()            {}
func (*Identifier) node()          {}
func (*Literal) node()             {}
func (*This) node()                {}
func (*Assignment) node()          {}
func (*Binary) node()              {}
func (*Conditional) node()         {}
func (*Sequence) node()            {}
func (*Unary) node()               {}
func (*Update) node()              {}
func (*Call) node()                {}
func (*New) node()                 {}
func (*Member) node()              {}
func (*FunctionExpression) node()  {}
func (*ArrayLiteral) node()        {}
func (*ObjectLiteral) node()       {}
func (*Property) node()            {}
