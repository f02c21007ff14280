package parser

import (
	"github.com/dhamidi/jsfront/js/ast"
)

func (p *Parser) stopped() bool {
	if p.fatal != nil {
		return true
	}
	if err := p.build.Err(); err != nil {
		p.fatal = err
		p.report(LevelFatal, p.peek().Span.Start, "%v", err)
		return true
	}
	return false
}

func (p *Parser) parseProgram() *ast.Program {
	body := p.parseStatementList(TokenEOF)
	return p.build.Program(body)
}

// parseStatementList parses statements until one of the end tokens or the
// end of input, recovering from syntax errors at statement boundaries. An
// error reported before the list started does not suppress errors inside it.
func (p *Parser) parseStatementList(ends ...TokenKind) ast.List {
	outerFailed := p.failed
	p.failed = false
	defer func() { p.failed = p.failed || outerFailed }()

	var list ast.List
	for !p.stopped() {
		tok := p.peek()
		if tok.Kind == TokenEOF || p.isAny(tok.Kind, ends) {
			break
		}
		start := tok.Span.Start.Offset
		list = ast.Concat(list, p.parseStatement())
		if p.failed {
			p.recover(start)
		}
	}
	return list
}

func (p *Parser) isAny(kind TokenKind, kinds []TokenKind) bool {
	for _, k := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// parseStatement parses one statement. Variable statements with several
// declarators yield one VarDecl per declarator, which statement lists splice
// in order.
func (p *Parser) parseStatement() ast.List {
	tok := p.peek()
	switch tok.Kind {
	case TokenVar, TokenLet, TokenConst:
		decls := p.parseVarDeclarations(false)
		p.semicolon()
		return decls
	case TokenFunction:
		return ast.List{p.parseFunctionDecl()}
	}
	return ast.List{p.parseSingleStatement()}
}

// parseSubStatement parses the body of a control statement or label, where
// exactly one node is required. Multi-declarator variable statements are
// wrapped in a block.
func (p *Parser) parseSubStatement() ast.Node {
	stmts := p.parseStatement()
	switch len(stmts) {
	case 0:
		return nil
	case 1:
		return stmts[0]
	}
	return p.build.Block(stmts)
}

func (p *Parser) parseSingleStatement() ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenSemicolon:
		p.advance()
		return p.build.Empty()
	case TokenIf:
		return p.parseIf()
	case TokenFor:
		return p.parseFor()
	case TokenWhile:
		return p.parseWhile()
	case TokenDo:
		return p.parseDoWhile()
	case TokenSwitch:
		return p.parseSwitch()
	case TokenTry:
		return p.parseTry()
	case TokenWith:
		return p.parseWith()
	case TokenReturn:
		return p.parseReturn()
	case TokenBreak, TokenContinue:
		return p.parseBreakContinue()
	case TokenThrow:
		return p.parseThrow()
	case TokenDebugger:
		p.advance()
		p.warn(tok.Span.Start, "debugger statement")
		p.semicolon()
		return p.build.Debugger()
	case TokenRBrace:
		p.syntaxError(tok, "unmatched '}'")
		return nil
	case TokenElse:
		p.syntaxError(tok, "'else' without a matching 'if'")
		return nil
	case TokenCase, TokenDefault:
		p.syntaxError(tok, "'%s' outside of a switch statement", tok.Literal)
		return nil
	case TokenCatch, TokenFinally:
		p.syntaxError(tok, "'%s' without a matching 'try'", tok.Literal)
		return nil
	}
	return p.parseExpressionOrLabeled()
}

func (p *Parser) parseBlock() *ast.Block {
	if !p.openBrace(BraceBlock) {
		return p.build.Block(nil)
	}
	body := p.parseStatementList(TokenRBrace)
	p.closeBrace(BraceBlock)
	return p.build.Block(body)
}

// parseVarDeclarations parses "var a = 1, b" and returns one VarDecl per
// declarator. With noIn set, initializers stop at 'in'.
func (p *Parser) parseVarDeclarations(noIn bool) ast.List {
	kindTok := p.advance()
	kind := ast.VarKindVar
	switch kindTok.Kind {
	case TokenLet:
		kind = ast.VarKindLet
	case TokenConst:
		kind = ast.VarKindConst
	}

	var decls ast.List
	for {
		name, ok := p.expect(TokenIdent)
		if !ok {
			break
		}
		var init ast.Node
		if p.match(TokenAssign) {
			init = p.parseAssignment(noIn)
		} else if kind == ast.VarKindConst {
			p.syntaxError(p.peek(), "missing initializer in const declaration of %q", name.Literal)
		}
		decls = decls.Append(p.build.VarDecl(kind, name.Literal, init))
		if p.failed || !p.match(TokenComma) {
			break
		}
	}
	return decls
}

func (p *Parser) parseFunctionDecl() ast.Node {
	p.advance()
	name := ""
	if tok, ok := p.expect(TokenIdent); ok {
		name = tok.Literal
	}
	params, body := p.parseFunctionRest()
	return p.build.FunctionDecl(name, params, body)
}

// parseFunctionRest parses the parameter list and body shared by function
// declarations and expressions.
func (p *Parser) parseFunctionRest() (ast.List, *ast.Block) {
	var params ast.List
	if _, ok := p.expect(TokenLParen); ok {
		seen := map[string]bool{}
		for !p.check(TokenRParen) && !p.check(TokenEOF) && !p.failed {
			name, ok := p.expect(TokenIdent)
			if !ok {
				break
			}
			if seen[name.Literal] {
				p.warn(name.Span.Start, "duplicate parameter %q", name.Literal)
			}
			seen[name.Literal] = true
			params = params.Append(p.build.Identifier(name.Literal))
			if !p.match(TokenComma) {
				break
			}
		}
		p.expect(TokenRParen)
	}

	restore := p.enterFunction()
	defer restore()
	return params, p.parseBlock()
}

// parseParenHeader parses "( expression )" after if, while, with and switch.
// A '/' right after the ')' starts a regular expression.
func (p *Parser) parseParenHeader() ast.Node {
	p.expect(TokenLParen)
	test := p.parseExpression(false)
	if _, ok := p.expect(TokenRParen); ok {
		p.allowRegexNext()
	}
	return test
}

func (p *Parser) parseIf() ast.Node {
	p.advance()
	test := p.parseParenHeader()

	p.pushControl(ControlIf)
	defer p.popControl()

	consequent := p.parseSubStatement()

	var alternate ast.Node
	if p.check(TokenElse) {
		if frame := p.innermostIf(); frame != nil {
			frame.hasElse = true
		}
		p.advance()
		alternate = p.parseSubStatement()
	}
	return p.build.If(test, consequent, alternate)
}

func (p *Parser) parseWhile() ast.Node {
	p.advance()
	test := p.parseParenHeader()

	p.pushControl(ControlWhile)
	defer p.popControl()
	body := p.parseSubStatement()
	return p.build.While(test, body)
}

func (p *Parser) parseDoWhile() ast.Node {
	p.advance()

	p.pushControl(ControlDo)
	body := p.parseSubStatement()
	p.popControl()

	p.expect(TokenWhile)
	test := p.parseParenHeader()
	// The ';' after do-while may always be inserted.
	if !p.match(TokenSemicolon) && p.debug {
		p.debugf(p.peek().Span.Start, "inserted semicolon after do-while")
	}
	return p.build.DoWhile(body, test)
}

func (p *Parser) parseFor() ast.Node {
	p.advance()
	p.expect(TokenLParen)

	var init ast.Node
	switch p.peek().Kind {
	case TokenSemicolon:
	case TokenVar, TokenLet, TokenConst:
		decls := p.parseVarDeclarations(true)
		if len(decls) == 1 {
			init = decls[0]
		} else if len(decls) > 1 {
			init = p.build.Sequence(decls)
		}
	default:
		init = p.parseExpression(true)
	}

	if p.check(TokenIn) {
		p.syntaxError(p.peek(), "for-in loops are not supported")
	}

	var test, update ast.Node
	p.expect(TokenSemicolon)
	if !p.check(TokenSemicolon) {
		test = p.parseExpression(false)
	}
	p.expect(TokenSemicolon)
	if !p.check(TokenRParen) {
		update = p.parseExpression(false)
	}
	if _, ok := p.expect(TokenRParen); ok {
		p.allowRegexNext()
	}

	p.pushControl(ControlFor)
	defer p.popControl()
	body := p.parseSubStatement()
	return p.build.For(init, test, update, body)
}

func (p *Parser) parseWith() ast.Node {
	withTok := p.advance()
	p.warn(withTok.Span.Start, "with statement")
	object := p.parseParenHeader()

	p.pushControl(ControlWith)
	defer p.popControl()
	body := p.parseSubStatement()
	return p.build.With(object, body)
}

func (p *Parser) parseSwitch() ast.Node {
	p.advance()
	discriminant := p.parseParenHeader()

	p.pushControl(ControlSwitch)
	defer p.popControl()

	var cases ast.List
	if !p.openBrace(BraceBlock) {
		return p.build.Switch(discriminant, cases)
	}
	seenDefault := false
	for !p.check(TokenRBrace) && !p.check(TokenEOF) && !p.stopped() {
		tok := p.peek()
		var test ast.Node
		isDefault := false
		switch tok.Kind {
		case TokenCase:
			p.advance()
			test = p.parseExpression(false)
		case TokenDefault:
			p.advance()
			if seenDefault {
				p.syntaxError(tok, "more than one default clause in switch statement")
			}
			seenDefault = true
			isDefault = true
		default:
			p.syntaxError(tok, "expected 'case' or 'default', found %s", describe(tok))
			p.recover(tok.Span.Start.Offset)
			continue
		}
		p.expect(TokenColon)
		consequent := p.parseStatementList(TokenCase, TokenDefault, TokenRBrace)
		cases = cases.Append(p.build.SwitchCase(test, consequent, isDefault))
	}
	p.closeBrace(BraceBlock)
	return p.build.Switch(discriminant, cases)
}

func (p *Parser) parseTry() ast.Node {
	tryTok := p.advance()
	block := p.parseBlock()

	var handler *ast.CatchClause
	if p.match(TokenCatch) {
		p.expect(TokenLParen)
		param := ""
		if tok, ok := p.expect(TokenIdent); ok {
			param = tok.Literal
		}
		p.expect(TokenRParen)
		body := p.parseBlock()
		handler = p.build.CatchClause(param, body)
	}

	var finalizer *ast.Block
	if p.match(TokenFinally) {
		finalizer = p.parseBlock()
	}

	if handler == nil && finalizer == nil {
		p.syntaxError(tryTok, "try statement without catch or finally")
	}
	return p.build.Try(block, handler, finalizer)
}

// parseReturn handles a restricted production: a line break after 'return'
// ends the statement.
func (p *Parser) parseReturn() ast.Node {
	p.advance()
	var argument ast.Node
	if !p.canInsertSemicolon() {
		argument = p.parseExpression(false)
	}
	p.semicolon()
	return p.build.Return(argument)
}

// parseBreakContinue handles the restricted productions "break Label" and
// "continue Label": a label on the next line is not part of the statement.
func (p *Parser) parseBreakContinue() ast.Node {
	keyword := p.advance()
	isBreak := keyword.Kind == TokenBreak

	label := ""
	if tok := p.peek(); tok.Kind == TokenIdent && !tok.NewlineBefore {
		p.advance()
		label = tok.Literal
		frame, ok := p.findLabel(label)
		switch {
		case !ok:
			p.syntaxError(tok, "undefined label %q", label)
		case !isBreak && !frame.loop:
			p.syntaxError(tok, "continue target %q is not a loop", label)
		}
	} else if isBreak && !p.inBreakable() {
		p.syntaxError(keyword, "break outside of a loop or switch")
	} else if !isBreak && !p.inLoop() {
		p.syntaxError(keyword, "continue outside of a loop")
	}

	p.semicolon()
	if isBreak {
		return p.build.Break(label)
	}
	return p.build.Continue(label)
}

// parseThrow handles a restricted production where no semicolon can be
// inserted: a line break after 'throw' is an error.
func (p *Parser) parseThrow() ast.Node {
	throwTok := p.advance()
	if p.peek().NewlineBefore {
		p.syntaxError(throwTok, "illegal line break after 'throw'")
		return p.build.Throw(nil)
	}
	argument := p.parseExpression(false)
	p.semicolon()
	return p.build.Throw(argument)
}

// parseExpressionOrLabeled parses an expression statement, or a labeled
// statement when the expression is a lone identifier followed by ':'.
func (p *Parser) parseExpressionOrLabeled() ast.Node {
	start := p.peek()
	expr := p.parseExpression(false)

	if id, ok := expr.(*ast.Identifier); ok && start.Kind == TokenIdent && p.check(TokenColon) {
		name := id.Name
		p.build.Free(id)
		p.advance()
		return p.parseLabeled(start, name)
	}

	p.semicolon()
	return p.build.ExpressionStatement(expr)
}

func (p *Parser) parseLabeled(labelTok Token, name string) ast.Node {
	if _, ok := p.findLabel(name); ok {
		p.syntaxError(labelTok, "label %q has already been declared", name)
	}
	next := p.peek()
	loop := next.Kind == TokenFor || next.Kind == TokenWhile || next.Kind == TokenDo
	if loop {
		// In "a: b: while (...)" the loop belongs to every label of the chain.
		off := labelTok.Span.Start.Offset
		for i := len(p.labels) - 1; i >= 0 && p.labels[i].bodyStart == off; i-- {
			p.labels[i].loop = true
			off = p.labels[i].start
		}
	}
	p.labels = append(p.labels, labelFrame{
		name:      name,
		loop:      loop,
		start:     labelTok.Span.Start.Offset,
		bodyStart: next.Span.Start.Offset,
	})
	body := p.parseSubStatement()
	p.labels = p.labels[:len(p.labels)-1]
	return p.build.Labeled(name, body)
}
