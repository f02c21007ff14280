package parser

import (
	"strings"

	"github.com/dhamidi/jsfront/js/ast"
)

// Binary operator precedence, lowest first. 'in' is left out when parsing
// the initializer of a for statement.
var binaryPrecedence = map[TokenKind]int{
	TokenOr:         1,
	TokenAnd:        2,
	TokenBitOr:      3,
	TokenBitXor:     4,
	TokenBitAnd:     5,
	TokenEQ:         6,
	TokenNE:         6,
	TokenStrictEQ:   6,
	TokenStrictNE:   6,
	TokenLT:         7,
	TokenGT:         7,
	TokenLE:         7,
	TokenGE:         7,
	TokenInstanceof: 7,
	TokenIn:         7,
	TokenShl:        8,
	TokenShr:        8,
	TokenUShr:       8,
	TokenPlus:       9,
	TokenMinus:      9,
	TokenStar:       10,
	TokenSlash:      10,
	TokenPercent:    10,
}

// parseExpression parses a comma expression. A single operand is returned
// as is; two or more become a Sequence.
func (p *Parser) parseExpression(noIn bool) ast.Node {
	first := p.parseAssignment(noIn)
	if !p.check(TokenComma) {
		return first
	}
	exprs := ast.List{first}
	for !p.failed && p.match(TokenComma) {
		exprs = exprs.Append(p.parseAssignment(noIn))
	}
	return p.build.Sequence(exprs)
}

func (p *Parser) parseAssignment(noIn bool) ast.Node {
	start := p.peek()
	left := p.parseConditional(noIn)

	tok := p.peek()
	if !tok.Kind.IsAssignment() {
		return left
	}
	if !isAssignable(left) {
		p.syntaxError(start, "invalid assignment target")
	}
	p.advance()
	right := p.parseAssignment(noIn)
	return p.build.Assignment(tok.Literal, left, right)
}

func isAssignable(n ast.Node) bool {
	switch n.(type) {
	case *ast.Identifier, *ast.Member:
		return true
	}
	return false
}

func (p *Parser) parseConditional(noIn bool) ast.Node {
	test := p.parseBinary(1, noIn)
	if !p.match(TokenQuestion) {
		return test
	}
	consequent := p.parseAssignment(false)
	p.expect(TokenColon)
	alternate := p.parseAssignment(noIn)
	return p.build.Conditional(test, consequent, alternate)
}

// parseBinary parses left-associative binary operators by precedence
// climbing, starting at minPrec.
func (p *Parser) parseBinary(minPrec int, noIn bool) ast.Node {
	left := p.parseUnary()
	for !p.failed {
		tok := p.peek()
		prec, ok := binaryPrecedence[tok.Kind]
		if !ok || prec < minPrec || (noIn && tok.Kind == TokenIn) {
			break
		}
		p.advance()
		right := p.parseBinary(prec+1, noIn)
		left = p.build.Binary(tok.Literal, left, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenDelete, TokenVoid, TokenTypeof, TokenPlus, TokenMinus, TokenBitNot, TokenNot:
		p.advance()
		return p.build.Unary(tok.Literal, p.parseUnary())
	case TokenIncrement, TokenDecrement:
		p.advance()
		argStart := p.peek()
		argument := p.parseUnary()
		if !isAssignable(argument) {
			p.syntaxError(argStart, "invalid operand for prefix %s", tok.Literal)
		}
		return p.build.Update(tok.Literal, argument, true)
	}
	return p.parsePostfix()
}

// parsePostfix handles a restricted production: '++' or '--' on a new line
// is not a postfix operator, it starts the next statement.
func (p *Parser) parsePostfix() ast.Node {
	start := p.peek()
	expr := p.parseCall()
	tok := p.peek()
	if (tok.Kind == TokenIncrement || tok.Kind == TokenDecrement) && !tok.NewlineBefore {
		if !isAssignable(expr) {
			p.syntaxError(start, "invalid operand for postfix %s", tok.Literal)
		}
		p.advance()
		p.noRegexNext()
		return p.build.Update(tok.Literal, expr, false)
	}
	return expr
}

func (p *Parser) parseCall() ast.Node {
	expr := p.parseMemberOrNew()
	for !p.failed {
		switch p.peek().Kind {
		case TokenLParen:
			expr = p.build.Call(expr, p.parseArguments())
		case TokenDot, TokenLBracket:
			expr = p.parseMemberSuffix(expr)
		default:
			return expr
		}
	}
	return expr
}

// parseMemberOrNew parses a primary expression with its property accesses.
// A 'new' takes the member expression that follows as its callee and an
// optional argument list.
func (p *Parser) parseMemberOrNew() ast.Node {
	var expr ast.Node
	if p.match(TokenNew) {
		callee := p.parseMemberOrNew()
		var args ast.List
		if p.check(TokenLParen) {
			args = p.parseArguments()
		}
		expr = p.build.New(callee, args)
	} else {
		expr = p.parsePrimary()
	}
	for !p.failed && (p.check(TokenDot) || p.check(TokenLBracket)) {
		expr = p.parseMemberSuffix(expr)
	}
	return expr
}

func (p *Parser) parseMemberSuffix(object ast.Node) ast.Node {
	if p.match(TokenDot) {
		tok := p.peek()
		if tok.Kind != TokenIdent && !tok.Kind.IsKeyword() {
			p.syntaxError(tok, "expected property name after '.', found %s", describe(tok))
			return object
		}
		p.advance()
		p.noRegexNext()
		return p.build.Member(object, p.build.Identifier(tok.Literal), false)
	}
	p.expect(TokenLBracket)
	property := p.parseExpression(false)
	p.expect(TokenRBracket)
	return p.build.Member(object, property, true)
}

func (p *Parser) parseArguments() ast.List {
	var args ast.List
	p.expect(TokenLParen)
	for !p.check(TokenRParen) && !p.check(TokenEOF) && !p.failed {
		args = args.Append(p.parseAssignment(false))
		if !p.match(TokenComma) {
			break
		}
	}
	p.expect(TokenRParen)
	return args
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenIdent:
		p.advance()
		return p.build.Identifier(tok.Literal)
	case TokenNumber:
		p.advance()
		if isLegacyOctal(tok.Literal) {
			p.warn(tok.Span.Start, "legacy octal-looking literal %s is read as decimal", tok.Literal)
		}
		return p.build.NumberLiteral(tok.Literal)
	case TokenString:
		p.advance()
		return p.build.StringLiteral(tok.Literal)
	case TokenRegex:
		p.advance()
		pattern, flags := splitRegExp(tok.Literal)
		return p.build.RegExpLiteral(pattern, flags)
	case TokenTrue, TokenFalse:
		p.advance()
		return p.build.BooleanLiteral(tok.Kind == TokenTrue)
	case TokenNull:
		p.advance()
		return p.build.NullLiteral()
	case TokenUndefined:
		p.advance()
		return p.build.UndefinedLiteral()
	case TokenThis:
		p.advance()
		return p.build.This()
	case TokenLParen:
		p.advance()
		expr := p.parseExpression(false)
		p.expect(TokenRParen)
		return expr
	case TokenLBracket:
		return p.parseArrayLiteral()
	case TokenLBrace:
		return p.parseObjectLiteral()
	case TokenFunction:
		return p.parseFunctionExpression()
	}
	p.syntaxError(tok, "expected expression, found %s", describe(tok))
	return nil
}

func isLegacyOctal(lit string) bool {
	return len(lit) > 1 && lit[0] == '0' && isDigit(lit[1])
}

// splitRegExp splits "/pattern/flags" at the last '/'.
func splitRegExp(lit string) (pattern, flags string) {
	end := strings.LastIndexByte(lit, '/')
	if end <= 0 {
		return strings.TrimPrefix(lit, "/"), ""
	}
	return lit[1:end], lit[end+1:]
}

// parseArrayLiteral parses "[a, , b]". Elisions become nil elements.
func (p *Parser) parseArrayLiteral() ast.Node {
	p.advance()
	var elements ast.List
	for !p.check(TokenRBracket) && !p.check(TokenEOF) && !p.failed {
		if p.match(TokenComma) {
			elements = append(elements, nil)
			continue
		}
		elements = elements.Append(p.parseAssignment(false))
		if !p.match(TokenComma) {
			break
		}
	}
	p.expect(TokenRBracket)
	return p.build.ArrayLiteral(elements)
}

// parseObjectLiteral parses "{ key: value, ... }". It is only reached from
// expression positions, so the brace opens an object literal.
func (p *Parser) parseObjectLiteral() ast.Node {
	var props ast.List
	if !p.openBrace(BraceObject) {
		return p.build.ObjectLiteral(props)
	}
	seen := map[string]bool{}
	for !p.check(TokenRBrace) && !p.check(TokenEOF) && !p.failed {
		tok := p.peek()
		var isIdent bool
		switch {
		case tok.Kind == TokenIdent || tok.Kind.IsKeyword():
			isIdent = true
		case tok.Kind == TokenString || tok.Kind == TokenNumber:
		default:
			p.syntaxError(tok, "expected property name, found %s", describe(tok))
		}
		if p.failed {
			break
		}
		p.advance()
		p.expect(TokenColon)
		value := p.parseAssignment(false)
		prop := p.build.Property(tok.Literal, isIdent, value)
		if seen[prop.Key] {
			p.warn(tok.Span.Start, "duplicate property %q", prop.Key)
		}
		seen[prop.Key] = true
		props = props.Append(prop)
		if !p.match(TokenComma) {
			break
		}
	}
	p.closeBrace(BraceObject)
	return p.build.ObjectLiteral(props)
}

func (p *Parser) parseFunctionExpression() ast.Node {
	p.advance()
	name := ""
	if tok := p.peek(); tok.Kind == TokenIdent {
		p.advance()
		name = tok.Literal
	}
	params, body := p.parseFunctionRest()
	p.noRegexNext()
	return p.build.FunctionExpression(name, params, body)
}
