package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNodeBudget is reported when a Builder is asked for more nodes than its
// MaxNodes budget allows.
var ErrNodeBudget = errors.New("ast node budget exhausted")

// Builder constructs AST nodes. Ownership of every child and string passed to
// a constructor moves into the returned node. The zero value is ready to use.
type Builder struct {
	// Tracker, when set, records allocations for later comparison with Free.
	Tracker *Tracker
	// MaxNodes bounds the number of nodes built. Zero means unlimited.
	MaxNodes int

	count int
	err   error
}

// Count returns the number of nodes built so far.
func (b *Builder) Count() int { return b.count }

// Err returns a wrapped ErrNodeBudget once the budget has been exceeded.
// Constructors keep returning valid nodes after that point so callers can
// finish the current production before stopping.
func (b *Builder) Err() error { return b.err }

// Reset clears the node count and budget error. The tracker is left alone.
func (b *Builder) Reset() {
	b.count = 0
	b.err = nil
}

func (b *Builder) alloc(n Node) {
	b.count++
	if b.MaxNodes > 0 && b.count > b.MaxNodes && b.err == nil {
		b.err = fmt.Errorf("%w: more than %d nodes", ErrNodeBudget, b.MaxNodes)
	}
	if b.Tracker != nil {
		b.Tracker.allocNode(n)
	}
}

func (b *Builder) list(l List) {
	if b.Tracker != nil {
		b.Tracker.allocList(l)
	}
}

func (b *Builder) str(s string) {
	if b.Tracker != nil {
		b.Tracker.allocString(s)
	}
}

func (b *Builder) Program(body List) *Program {
	n := &Program{Body: body}
	b.alloc(n)
	b.list(body)
	return n
}

func (b *Builder) Block(body List) *Block {
	n := &Block{Body: body}
	b.alloc(n)
	b.list(body)
	return n
}

func (b *Builder) VarDecl(kind VarKind, name string, init Node) *VarDecl {
	n := &VarDecl{VarKind: kind, Name: name, Init: init}
	b.alloc(n)
	b.str(name)
	return n
}

func (b *Builder) FunctionDecl(name string, params List, body *Block) *FunctionDecl {
	n := &FunctionDecl{Name: name, Params: params, Body: body}
	b.alloc(n)
	b.str(name)
	b.list(params)
	return n
}

func (b *Builder) Return(argument Node) *Return {
	n := &Return{Argument: argument}
	b.alloc(n)
	return n
}

func (b *Builder) If(test, consequent, alternate Node) *If {
	n := &If{Test: test, Consequent: consequent, Alternate: alternate}
	b.alloc(n)
	return n
}

func (b *Builder) For(init, test, update, body Node) *For {
	n := &For{Init: init, Test: test, Update: update, Body: body}
	b.alloc(n)
	return n
}

func (b *Builder) While(test, body Node) *While {
	n := &While{Test: test, Body: body}
	b.alloc(n)
	return n
}

func (b *Builder) DoWhile(body, test Node) *DoWhile {
	n := &DoWhile{Body: body, Test: test}
	b.alloc(n)
	return n
}

func (b *Builder) Switch(discriminant Node, cases List) *Switch {
	n := &Switch{Discriminant: discriminant, Cases: cases}
	b.alloc(n)
	b.list(cases)
	return n
}

func (b *Builder) SwitchCase(test Node, consequent List, isDefault bool) *SwitchCase {
	n := &SwitchCase{Test: test, Consequent: consequent, IsDefault: isDefault}
	b.alloc(n)
	b.list(consequent)
	return n
}

func (b *Builder) Try(block *Block, handler *CatchClause, finalizer *Block) *Try {
	n := &Try{Block: block, Handler: handler, Finalizer: finalizer}
	b.alloc(n)
	return n
}

func (b *Builder) CatchClause(param string, body *Block) *CatchClause {
	n := &CatchClause{Param: param, Body: body}
	b.alloc(n)
	b.str(param)
	return n
}

func (b *Builder) With(object, body Node) *With {
	n := &With{Object: object, Body: body}
	b.alloc(n)
	return n
}

func (b *Builder) Labeled(label string, body Node) *Labeled {
	n := &Labeled{Label: label, Body: body}
	b.alloc(n)
	b.str(label)
	return n
}

func (b *Builder) Break(label string) *Break {
	n := &Break{Label: label}
	b.alloc(n)
	b.str(label)
	return n
}

func (b *Builder) Continue(label string) *Continue {
	n := &Continue{Label: label}
	b.alloc(n)
	b.str(label)
	return n
}

func (b *Builder) Throw(argument Node) *Throw {
	n := &Throw{Argument: argument}
	b.alloc(n)
	return n
}

func (b *Builder) ExpressionStatement(expression Node) *ExpressionStatement {
	n := &ExpressionStatement{Expression: expression}
	b.alloc(n)
	return n
}

func (b *Builder) Empty() *Empty {
	n := &Empty{}
	b.alloc(n)
	return n
}

func (b *Builder) Debugger() *Debugger {
	n := &Debugger{}
	b.alloc(n)
	return n
}

func (b *Builder) Identifier(name string) *Identifier {
	n := &Identifier{Name: name}
	b.alloc(n)
	b.str(name)
	return n
}

// NumberLiteral converts the source text of a numeric literal.
func (b *Builder) NumberLiteral(text string) *Literal {
	n := &Literal{LiteralKind: LiteralNumber, Number: ParseNumber(text)}
	b.alloc(n)
	return n
}

// StringLiteral takes the source text of a string literal including its
// quotes and stores the text between them.
func (b *Builder) StringLiteral(raw string) *Literal {
	s := StripQuotes(raw)
	n := &Literal{LiteralKind: LiteralString, String: s}
	b.alloc(n)
	b.str(s)
	return n
}

func (b *Builder) BooleanLiteral(v bool) *Literal {
	n := &Literal{LiteralKind: LiteralBoolean, Boolean: v}
	b.alloc(n)
	return n
}

func (b *Builder) NullLiteral() *Literal {
	n := &Literal{LiteralKind: LiteralNull}
	b.alloc(n)
	return n
}

func (b *Builder) UndefinedLiteral() *Literal {
	n := &Literal{LiteralKind: LiteralUndefined}
	b.alloc(n)
	return n
}

func (b *Builder) RegExpLiteral(pattern, flags string) *Literal {
	n := &Literal{LiteralKind: LiteralRegExp, Pattern: pattern, Flags: flags}
	b.alloc(n)
	b.str(pattern)
	b.str(flags)
	return n
}

func (b *Builder) This() *This {
	n := &This{}
	b.alloc(n)
	return n
}

func (b *Builder) Assignment(op string, left, right Node) *Assignment {
	n := &Assignment{Operator: op, Left: left, Right: right}
	b.alloc(n)
	return n
}

func (b *Builder) Binary(op string, left, right Node) *Binary {
	n := &Binary{Operator: op, Left: left, Right: right}
	b.alloc(n)
	return n
}

func (b *Builder) Conditional(test, consequent, alternate Node) *Conditional {
	n := &Conditional{Test: test, Consequent: consequent, Alternate: alternate}
	b.alloc(n)
	return n
}

func (b *Builder) Sequence(expressions List) *Sequence {
	n := &Sequence{Expressions: expressions}
	b.alloc(n)
	b.list(expressions)
	return n
}

func (b *Builder) Unary(op string, argument Node) *Unary {
	n := &Unary{Operator: op, Argument: argument}
	b.alloc(n)
	return n
}

func (b *Builder) Update(op string, argument Node, prefix bool) *Update {
	n := &Update{Operator: op, Argument: argument, Prefix: prefix}
	b.alloc(n)
	return n
}

func (b *Builder) Call(callee Node, arguments List) *Call {
	n := &Call{Callee: callee, Arguments: arguments}
	b.alloc(n)
	b.list(arguments)
	return n
}

func (b *Builder) New(callee Node, arguments List) *New {
	n := &New{Callee: callee, Arguments: arguments}
	b.alloc(n)
	b.list(arguments)
	return n
}

func (b *Builder) Member(object, property Node, computed bool) *Member {
	n := &Member{Object: object, Property: property, Computed: computed}
	b.alloc(n)
	return n
}

func (b *Builder) FunctionExpression(name string, params List, body *Block) *FunctionExpression {
	n := &FunctionExpression{Name: name, Params: params, Body: body}
	b.alloc(n)
	b.str(name)
	b.list(params)
	return n
}

func (b *Builder) ArrayLiteral(elements List) *ArrayLiteral {
	n := &ArrayLiteral{Elements: elements}
	b.alloc(n)
	b.list(elements)
	return n
}

func (b *Builder) ObjectLiteral(properties List) *ObjectLiteral {
	n := &ObjectLiteral{Properties: properties}
	b.alloc(n)
	b.list(properties)
	return n
}

// Property builds an object literal entry. Keys that are not identifiers are
// the source text of a string or numeric literal; string keys lose their
// quotes.
func (b *Builder) Property(key string, keyIsIdentifier bool, value Node) *Property {
	if !keyIsIdentifier {
		key = StripQuotes(key)
	}
	n := &Property{Key: key, KeyIsIdentifier: keyIsIdentifier, Value: value}
	b.alloc(n)
	b.str(key)
	return n
}

// StripQuotes removes exactly one pair of matching quotes from s. Text that
// does not start with a quote is returned unchanged.
func StripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	q := s[0]
	if q != '"' && q != '\'' {
		return s
	}
	if s[len(s)-1] == q {
		return s[1 : len(s)-1]
	}
	return s[1:]
}

// ParseNumber converts numeric literal text to a float64. Hexadecimal
// literals start with 0x or 0X. Everything else is decimal, including
// literals with a leading zero.
func ParseNumber(text string) float64 {
	if len(text) > 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		var v float64
		for _, c := range text[2:] {
			v = v*16 + float64(hexDigit(c))
		}
		return v
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(text, "."), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return v
		}
		return 0
	}
	return v
}

func hexDigit(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}
