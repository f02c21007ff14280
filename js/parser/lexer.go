package parser

import (
	"unicode"
	"unicode/utf8"
)

// Context tells the lexer how to read a '/' at the start of the next token.
type Context int

const (
	// ContextAllowRegex reads '/' as the start of a regular expression literal.
	ContextAllowRegex Context = iota
	// ContextNoRegex reads '/' as division.
	ContextNoRegex
)

func (c Context) String() string {
	if c == ContextNoRegex {
		return "NoRegex"
	}
	return "AllowRegex"
}

// ContextAfter returns the lexer context that follows a token of kind k.
// Tokens that end an operand make a following '/' a division; everything
// else allows a regular expression.
func ContextAfter(k TokenKind) Context {
	switch k {
	case TokenIdent, TokenNumber, TokenString, TokenRegex,
		TokenTrue, TokenFalse, TokenNull, TokenUndefined, TokenThis,
		TokenRParen, TokenRBracket, TokenError:
		return ContextNoRegex
	}
	return ContextAllowRegex
}

type Lexer struct {
	input      []byte
	file       string
	pos        int
	line       int
	column     int
	hasNewline bool
	context    Context
}

func NewLexer(input []byte, file string) *Lexer {
	l := &Lexer{file: file}
	l.Reset(input)
	return l
}

// Reset prepares the lexer to scan input from the beginning.
func (l *Lexer) Reset(input []byte) {
	l.input = input
	l.pos = 0
	l.line = 1
	l.column = 1
	l.hasNewline = false
	l.context = ContextAllowRegex
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// HasNewline reports whether a line terminator was skipped before the most
// recently returned token.
func (l *Lexer) HasNewline() bool { return l.hasNewline }

func (l *Lexer) Context() Context { return l.context }

// SetContext overrides the context for the next token. The parser uses it
// where the previous token alone is not enough, such as the ')' closing an
// if header or the '}' closing an object literal.
func (l *Lexer) SetContext(c Context) { l.context = c }

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRune(l.input[l.pos:])
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else if utf8.RuneStart(ch) {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// lineTerminatorAt returns the byte length of the line terminator at the
// cursor, or zero.
func (l *Lexer) lineTerminatorAt() int {
	switch l.peek() {
	case '\n', '\r':
		return 1
	case 0xE2:
		if l.peekN(1) == 0x80 && (l.peekN(2) == 0xA8 || l.peekN(2) == 0xA9) {
			return 3
		}
	}
	return 0
}

// skipTrivia skips whitespace and comments, recording line terminators.
// It returns an error token for an unterminated block comment.
func (l *Lexer) skipTrivia() (Token, bool) {
	for !l.atEOF() {
		if n := l.lineTerminatorAt(); n > 0 {
			l.hasNewline = true
			l.advanceN(n)
			continue
		}

		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f':
			l.advance()
			continue
		case ch == '/' && l.peekN(1) == '/':
			for !l.atEOF() && l.lineTerminatorAt() == 0 {
				l.advance()
			}
			continue
		case ch == '/' && l.peekN(1) == '*':
			start := l.Position()
			if !l.skipBlockComment() {
				return l.errorToken(start, "unterminated comment"), false
			}
			continue
		case ch >= utf8.RuneSelf:
			r, size := l.peekRune()
			if r == 0xFEFF || unicode.Is(unicode.Zs, r) {
				l.advanceN(size)
				continue
			}
		}
		break
	}
	return Token{}, true
}

func (l *Lexer) skipBlockComment() bool {
	l.advanceN(2)
	for !l.atEOF() {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			return true
		}
		if n := l.lineTerminatorAt(); n > 0 {
			l.hasNewline = true
			l.advanceN(n)
			continue
		}
		l.advance()
	}
	return false
}

// NextToken scans the next significant token. Whitespace and comments are
// skipped; whether they contained a line terminator is recorded on the
// token as NewlineBefore.
func (l *Lexer) NextToken() Token {
	l.hasNewline = false
	tok, ok := l.skipTrivia()
	if ok {
		tok = l.scan(l.Position())
	}
	tok.NewlineBefore = l.hasNewline
	l.context = ContextAfter(tok.Kind)
	return tok
}

func (l *Lexer) scan(start Position) Token {
	if l.atEOF() {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	}

	ch := l.peek()

	if isIdentStart(ch) || ch == '\\' {
		return l.scanIdentOrKeyword(start)
	}
	if ch >= utf8.RuneSelf {
		r, size := l.peekRune()
		if unicode.IsLetter(r) {
			return l.scanIdentOrKeyword(start)
		}
		l.advanceN(size)
		return l.errorToken(start, "unexpected character "+string(r))
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(start)
	}

	if ch == '"' || ch == '\'' {
		return l.scanString(start)
	}

	if ch == '/' && l.context == ContextAllowRegex {
		return l.scanRegExp(start)
	}

	return l.scanOperator(start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	escaped := false
	for !l.atEOF() {
		ch := l.peek()
		if ch == '\\' {
			// \uXXXX escapes are kept in the identifier text as written.
			if l.peekN(1) != 'u' {
				l.advance()
				return l.errorToken(start, "invalid escape in identifier")
			}
			escaped = true
			l.advanceN(2)
			for i := 0; i < 4 && isHexDigit(l.peek()); i++ {
				l.advance()
			}
			continue
		}
		if ch < utf8.RuneSelf {
			if !isIdentPart(ch) {
				break
			}
			l.advance()
			continue
		}
		r, size := l.peekRune()
		if !isIdentPartRune(r) {
			break
		}
		l.advanceN(size)
	}

	tok := l.token(TokenIdent, start)
	if !escaped {
		tok.Kind = LookupKeyword(tok.Literal)
	}
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		if !isHexDigit(l.peek()) {
			return l.errorToken(start, "malformed hexadecimal literal")
		}
		for isHexDigit(l.peek()) {
			l.advance()
		}
		return l.token(TokenNumber, start)
	}

	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			l.advanceN(2)
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}
	if isIdentStart(l.peek()) {
		for isIdentPart(l.peek()) {
			l.advance()
		}
		return l.errorToken(start, "identifier starts immediately after numeric literal")
	}
	return l.token(TokenNumber, start)
}

func (l *Lexer) scanString(start Position) Token {
	quote := l.advance()
	for {
		if l.atEOF() {
			return l.errorToken(start, "unterminated string literal")
		}
		ch := l.peek()
		if ch == quote {
			l.advance()
			return l.token(TokenString, start)
		}
		if ch == '\\' {
			l.advance()
			// A backslash before a line terminator continues the string.
			if n := l.lineTerminatorAt(); n > 0 {
				if l.peek() == '\r' && l.peekN(1) == '\n' {
					n = 2
				}
				l.advanceN(n)
				continue
			}
			if !l.atEOF() {
				l.advance()
			}
			continue
		}
		if l.lineTerminatorAt() > 0 {
			return l.errorToken(start, "unterminated string literal")
		}
		l.advance()
	}
}

// scanRegExp scans /pattern/flags. A '/' inside a character class does not
// end the pattern, and the pattern may not contain a line terminator.
func (l *Lexer) scanRegExp(start Position) Token {
	l.advance()
	inClass := false
	for {
		if l.atEOF() || l.lineTerminatorAt() > 0 {
			return l.errorToken(start, "unterminated regular expression")
		}
		ch := l.advance()
		switch {
		case ch == '\\':
			if l.atEOF() || l.lineTerminatorAt() > 0 {
				return l.errorToken(start, "unterminated regular expression")
			}
			l.advance()
		case ch == '[':
			inClass = true
		case ch == ']':
			inClass = false
		case ch == '/' && !inClass:
			for isIdentPart(l.peek()) {
				l.advance()
			}
			return l.token(TokenRegex, start)
		}
	}
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case '[':
		l.advance()
		return l.token(TokenLBracket, start)
	case ']':
		l.advance()
		return l.token(TokenRBracket, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case '.':
		l.advance()
		return l.token(TokenDot, start)
	case '?':
		l.advance()
		return l.token(TokenQuestion, start)
	case ':':
		l.advance()
		return l.token(TokenColon, start)
	case '~':
		l.advance()
		return l.token(TokenBitNot, start)

	case '=':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenStrictEQ, start)
			}
			l.advanceN(2)
			return l.token(TokenEQ, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenStrictNE, start)
			}
			l.advanceN(2)
			return l.token(TokenNE, start)
		}
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '<' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShlAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShl, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '>' {
			if l.peekN(2) == '>' {
				if l.peekN(3) == '=' {
					l.advanceN(4)
					return l.token(TokenUShrAssign, start)
				}
				l.advanceN(3)
				return l.token(TokenUShr, start)
			}
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShrAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenAndAssign, start)
		}
		l.advance()
		return l.token(TokenBitAnd, start)

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenOrAssign, start)
		}
		l.advance()
		return l.token(TokenBitOr, start)

	case '^':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenXorAssign, start)
		}
		l.advance()
		return l.token(TokenBitXor, start)

	case '+':
		if l.peekN(1) == '+' {
			l.advanceN(2)
			return l.token(TokenIncrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPlusAssign, start)
		}
		l.advance()
		return l.token(TokenPlus, start)

	case '-':
		if l.peekN(1) == '-' {
			l.advanceN(2)
			return l.token(TokenDecrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenMinusAssign, start)
		}
		l.advance()
		return l.token(TokenMinus, start)

	case '*':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenStarAssign, start)
		}
		l.advance()
		return l.token(TokenStar, start)

	case '/':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenSlashAssign, start)
		}
		l.advance()
		return l.token(TokenSlash, start)

	case '%':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenPercentAssign, start)
		}
		l.advance()
		return l.token(TokenPercent, start)
	}

	l.advance()
	return l.errorToken(start, "unexpected character "+string(rune(ch)))
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) errorToken(start Position, msg string) Token {
	tok := l.token(TokenError, start)
	tok.Message = msg
	return tok
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isIdentPartRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc) ||
		r == '\u200C' || r == '\u200D'
}
