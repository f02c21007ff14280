package parser

// The adapter sits between the lexer and the grammar. It buffers one token of
// lookahead, inserts virtual semicolons, tracks which braces are open and
// what they open, and tracks the enclosing control statements and labels.

type BraceType int

const (
	BraceBlock BraceType = iota
	BraceObject
)

func (b BraceType) String() string {
	if b == BraceObject {
		return "object literal"
	}
	return "block"
}

type braceFrame struct {
	kind BraceType
	pos  Position
}

type ControlType int

const (
	ControlIf ControlType = iota
	ControlFor
	ControlWhile
	ControlDo
	ControlWith
	ControlSwitch
)

func (c ControlType) isLoop() bool {
	return c == ControlFor || c == ControlWhile || c == ControlDo
}

type controlFrame struct {
	kind    ControlType
	hasElse bool
}

type labelFrame struct {
	name string
	// loop is set when the label is attached to a loop, directly or through
	// a chain of labels, making it a valid continue target.
	loop bool
	// start and bodyStart are the offsets of the label and of the statement
	// it labels.
	start     int
	bodyStart int
}

// peek returns the next significant token, scanning it on first use. Error
// tokens from the lexer are recorded and skipped; a line terminator before a
// skipped error token still counts for the token that follows it.
func (p *Parser) peek() Token {
	if p.hasTok {
		return p.tok
	}
	newline := false
	for {
		tok := p.lexer.NextToken()
		if tok.Kind != TokenError {
			tok.NewlineBefore = tok.NewlineBefore || newline
			p.tok = tok
			p.hasTok = true
			return tok
		}
		newline = newline || tok.NewlineBefore
		p.report(LevelError, tok.Span.Start, "%s", tok.Message)
	}
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.prev = tok
		p.hasTok = false
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	tok := p.peek()
	for _, kind := range kinds {
		if tok.Kind == kind {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind TokenKind) (Token, bool) {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return tok, true
	}
	p.syntaxError(tok, "expected '%s', found %s", kind, describe(tok))
	return tok, false
}

// allowRegexNext makes a '/' at the start of the next token a regular
// expression. It has no effect once the next token has been scanned.
func (p *Parser) allowRegexNext() {
	if !p.hasTok {
		p.lexer.SetContext(ContextAllowRegex)
	}
}

// noRegexNext makes a '/' at the start of the next token a division. It is
// used after tokens that end an operand although their kind alone would allow
// a regular expression: postfix operators, keywords used as property names
// and the '}' of a function expression.
func (p *Parser) noRegexNext() {
	if !p.hasTok {
		p.lexer.SetContext(ContextNoRegex)
	}
}

// semicolon consumes the terminator of a statement. A virtual semicolon is
// inserted when the next token is '}', the end of input, or is preceded by a
// line terminator. Otherwise a missing ';' is a syntax error.
func (p *Parser) semicolon() bool {
	tok := p.peek()
	switch {
	case tok.Kind == TokenSemicolon:
		p.advance()
		return true
	case tok.Kind == TokenRBrace, tok.Kind == TokenEOF, tok.NewlineBefore:
		if p.debug {
			p.debugf(tok.Span.Start, "inserted semicolon before %s", describe(tok))
		}
		return true
	}
	p.syntaxError(tok, "expected ';', found %s", describe(tok))
	return false
}

// canInsertSemicolon reports whether the statement may end before the next
// token. Restricted productions use it to stop at a line break.
func (p *Parser) canInsertSemicolon() bool {
	tok := p.peek()
	return tok.Kind == TokenSemicolon || tok.Kind == TokenRBrace || tok.Kind == TokenEOF || tok.NewlineBefore
}

// openBrace consumes '{' and records what it opens. The grammar position
// decides: statement positions open blocks, expression positions open object
// literals.
func (p *Parser) openBrace(kind BraceType) bool {
	tok, ok := p.expect(TokenLBrace)
	if !ok {
		return false
	}
	p.braces = append(p.braces, braceFrame{kind: kind, pos: tok.Span.Start})
	if p.debug {
		p.debugf(tok.Span.Start, "'{' opens %s", kind)
	}
	return true
}

// closeBrace consumes the '}' that matches the innermost open brace, which
// must be of the given kind. The frame is popped whether or not the '}' is
// present so the stack stays consistent with the grammar.
func (p *Parser) closeBrace(kind BraceType) bool {
	if len(p.braces) == 0 {
		tok := p.peek()
		p.syntaxError(tok, "unmatched '}'")
		return false
	}
	top := p.braces[len(p.braces)-1]
	p.braces = p.braces[:len(p.braces)-1]

	if top.kind != kind {
		p.syntaxError(p.peek(), "'}' closes %s, but %s opened at %d:%d is still open",
			kind, top.kind, top.pos.Line, top.pos.Column)
		return false
	}

	tok := p.peek()
	if tok.Kind != TokenRBrace {
		if tok.Kind == TokenEOF {
			p.syntaxError(tok, "unexpected end of input: %s opened at %d:%d is not closed",
				top.kind, top.pos.Line, top.pos.Column)
		} else {
			p.syntaxError(tok, "expected '}' to close %s opened at %d:%d, found %s",
				top.kind, top.pos.Line, top.pos.Column, describe(tok))
		}
		return false
	}
	p.advance()
	if kind == BraceObject {
		p.lexer.SetContext(ContextNoRegex)
	}
	return true
}

func (p *Parser) pushControl(kind ControlType) {
	p.controls = append(p.controls, controlFrame{kind: kind})
}

func (p *Parser) popControl() {
	p.controls = p.controls[:len(p.controls)-1]
}

// innermostIf returns the nearest open if statement, which is the one a
// following else binds to.
func (p *Parser) innermostIf() *controlFrame {
	for i := len(p.controls) - 1; i >= 0; i-- {
		if p.controls[i].kind == ControlIf && !p.controls[i].hasElse {
			return &p.controls[i]
		}
	}
	return nil
}

func (p *Parser) inLoop() bool {
	for _, c := range p.controls {
		if c.kind.isLoop() {
			return true
		}
	}
	return false
}

func (p *Parser) inBreakable() bool {
	for _, c := range p.controls {
		if c.kind.isLoop() || c.kind == ControlSwitch {
			return true
		}
	}
	return false
}

func (p *Parser) findLabel(name string) (labelFrame, bool) {
	for i := len(p.labels) - 1; i >= 0; i-- {
		if p.labels[i].name == name {
			return p.labels[i], true
		}
	}
	return labelFrame{}, false
}

// enterFunction gives a function body fresh control and label stacks, since
// break, continue and labels never cross a function boundary. The returned
// func restores the outer stacks.
func (p *Parser) enterFunction() func() {
	controls, labels := p.controls, p.labels
	p.controls, p.labels = nil, nil
	return func() {
		p.controls, p.labels = controls, labels
	}
}

// recover skips to the next statement boundary after a syntax error: past a
// ';', or up to a '}' that closes the enclosing block, a token on a new line,
// or the end of input. Braces opened while skipping are matched. At least one
// token is consumed when the failed statement consumed none.
func (p *Parser) recover(start int) {
	p.failed = false
	depth := len(p.braces)

	skip := func() {
		tok := p.advance()
		switch tok.Kind {
		case TokenLBrace:
			p.braces = append(p.braces, braceFrame{kind: BraceBlock, pos: tok.Span.Start})
		case TokenRBrace:
			if len(p.braces) > depth {
				p.braces = p.braces[:len(p.braces)-1]
			}
		}
	}

	if tok := p.peek(); tok.Span.Start.Offset == start && tok.Kind != TokenEOF {
		skip()
	}
	for {
		tok := p.peek()
		atDepth := len(p.braces) == depth
		switch {
		case tok.Kind == TokenEOF:
			p.braces = p.braces[:depth]
			return
		case atDepth && tok.Kind == TokenSemicolon:
			p.advance()
			return
		case atDepth && (tok.Kind == TokenRBrace || tok.NewlineBefore):
			return
		}
		skip()
	}
}
