package parser

import (
	"testing"
)

func lexAll(input string) []Token {
	lexer := NewLexer([]byte(input), "test.js")
	var tokens []Token
	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"var x", []TokenKind{TokenVar, TokenIdent, TokenEOF}},
		{"(a+b)/c", []TokenKind{TokenLParen, TokenIdent, TokenPlus, TokenIdent, TokenRParen, TokenSlash, TokenIdent, TokenEOF}},
		{"return /ab/", []TokenKind{TokenReturn, TokenRegex, TokenEOF}},
		{"x = /[/]/g", []TokenKind{TokenIdent, TokenAssign, TokenRegex, TokenEOF}},
		{"x /= 2", []TokenKind{TokenIdent, TokenSlashAssign, TokenNumber, TokenEOF}},
		{"a\n/b/g", []TokenKind{TokenIdent, TokenSlash, TokenIdent, TokenSlash, TokenIdent, TokenEOF}},
		{"f(/x/)", []TokenKind{TokenIdent, TokenLParen, TokenRegex, TokenRParen, TokenEOF}},
		{"a[0] / 2", []TokenKind{TokenIdent, TokenLBracket, TokenNumber, TokenRBracket, TokenSlash, TokenNumber, TokenEOF}},
		{"typeof /x/", []TokenKind{TokenTypeof, TokenRegex, TokenEOF}},
		{"this / 2", []TokenKind{TokenThis, TokenSlash, TokenNumber, TokenEOF}},
		{"'single' \"double\"", []TokenKind{TokenString, TokenString, TokenEOF}},
		{"0x1F .5 1e3 3. 2.5e-2", []TokenKind{TokenNumber, TokenNumber, TokenNumber, TokenNumber, TokenNumber, TokenEOF}},
		{"// comment\nx", []TokenKind{TokenIdent, TokenEOF}},
		{"/* block */ x", []TokenKind{TokenIdent, TokenEOF}},
		{"== != === !==", []TokenKind{TokenEQ, TokenNE, TokenStrictEQ, TokenStrictNE, TokenEOF}},
		{"<< >> >>> <<= >>= >>>=", []TokenKind{TokenShl, TokenShr, TokenUShr, TokenShlAssign, TokenShrAssign, TokenUShrAssign, TokenEOF}},
		{"&= |= ^= %= *= -= +=", []TokenKind{TokenAndAssign, TokenOrAssign, TokenXorAssign, TokenPercentAssign, TokenStarAssign, TokenMinusAssign, TokenPlusAssign, TokenEOF}},
		{"&& || ! ~ ? :", []TokenKind{TokenAnd, TokenOr, TokenNot, TokenBitNot, TokenQuestion, TokenColon, TokenEOF}},
		{"++ --", []TokenKind{TokenIncrement, TokenDecrement, TokenEOF}},
		{"true false null undefined", []TokenKind{TokenTrue, TokenFalse, TokenNull, TokenUndefined, TokenEOF}},
		{"$el _x café", []TokenKind{TokenIdent, TokenIdent, TokenIdent, TokenEOF}},
		{"\"abc", []TokenKind{TokenError, TokenEOF}},
		{"/abc", []TokenKind{TokenError, TokenEOF}},
		{"/* open", []TokenKind{TokenError, TokenEOF}},
		{"#", []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := lexAll(tt.input)
			if len(tokens) != len(tt.expected) {
				t.Errorf("got %d tokens, want %d: %v", len(tokens), len(tt.expected), tokens)
				return
			}
			for i := range tokens {
				if tokens[i].Kind != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, tokens[i].Kind, tt.expected[i])
				}
			}
		})
	}
}

func TestLexerLiterals(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{"return /ab+c/gi", "/ab+c/gi"},
		{"x = /a\\/b/", "/a\\/b/"},
		{"'it\\'s'", "'it\\'s'"},
		{"\"a\\\nb\"", "\"a\\\nb\""},
		{"foo\\u0041bar", "foo\\u0041bar"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := lexAll(tt.input)
			var got string
			for _, tok := range tokens {
				if tok.Kind == TokenRegex || tok.Kind == TokenString || tok.Kind == TokenIdent {
					got = tok.Literal
				}
			}
			if got != tt.literal {
				t.Errorf("Literal = %q, want %q", got, tt.literal)
			}
		})
	}
}

func TestLexerNewlineBefore(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"a b", false},
		{"a\nb", true},
		{"a\r\nb", true},
		{"a // comment\nb", true},
		{"a /* one line */ b", false},
		{"a /* two\nlines */ b", true},
		{"a\u2028b", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := lexAll(tt.input)
			if len(tokens) != 3 {
				t.Fatalf("got %d tokens, want 3", len(tokens))
			}
			if tokens[0].NewlineBefore {
				t.Errorf("first token NewlineBefore = true, want false")
			}
			if tokens[1].NewlineBefore != tt.want {
				t.Errorf("NewlineBefore = %v, want %v", tokens[1].NewlineBefore, tt.want)
			}
		})
	}
}

func TestLexerContext(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want Context
	}{
		{TokenIdent, ContextNoRegex},
		{TokenNumber, ContextNoRegex},
		{TokenString, ContextNoRegex},
		{TokenRParen, ContextNoRegex},
		{TokenRBracket, ContextNoRegex},
		{TokenLParen, ContextAllowRegex},
		{TokenLBrace, ContextAllowRegex},
		{TokenComma, ContextAllowRegex},
		{TokenSemicolon, ContextAllowRegex},
		{TokenAssign, ContextAllowRegex},
		{TokenPlus, ContextAllowRegex},
		{TokenReturn, ContextAllowRegex},
		{TokenIf, ContextAllowRegex},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := ContextAfter(tt.kind); got != tt.want {
				t.Errorf("ContextAfter(%v) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLexerPosition(t *testing.T) {
	tokens := lexAll("var x\n  = 1")
	want := []struct {
		line, column, offset, length int
	}{
		{1, 1, 0, 3},
		{1, 5, 4, 1},
		{2, 3, 8, 1},
		{2, 5, 10, 1},
	}
	for i, w := range want {
		pos := tokens[i].Span.Start
		if pos.Line != w.line || pos.Column != w.column || pos.Offset != w.offset {
			t.Errorf("token %d at %d:%d (offset %d), want %d:%d (offset %d)",
				i, pos.Line, pos.Column, pos.Offset, w.line, w.column, w.offset)
		}
		if tokens[i].Length() != w.length {
			t.Errorf("token %d: Length() = %d, want %d", i, tokens[i].Length(), w.length)
		}
		if pos.File != "test.js" {
			t.Errorf("File = %q, want %q", pos.File, "test.js")
		}
	}
}

func TestLexerReset(t *testing.T) {
	lexer := NewLexer([]byte("a"), "test.js")
	lexer.NextToken()
	if lexer.Context() != ContextNoRegex {
		t.Fatalf("Context() = %v after identifier, want NoRegex", lexer.Context())
	}

	lexer.Reset([]byte("/x/"))
	if lexer.Context() != ContextAllowRegex {
		t.Errorf("Context() = %v after Reset, want AllowRegex", lexer.Context())
	}
	if tok := lexer.NextToken(); tok.Kind != TokenRegex {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenRegex)
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"function", TokenFunction},
		{"instanceof", TokenInstanceof},
		{"debugger", TokenDebugger},
		{"undefined", TokenUndefined},
		{"let", TokenLet},
		{"foo", TokenIdent},
		{"Function", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LookupKeyword(tt.input); got != tt.kind {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.input, got, tt.kind)
			}
		})
	}
}
