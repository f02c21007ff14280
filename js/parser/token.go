package parser

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenNumber
	TokenString
	TokenRegex
	TokenTrue
	TokenFalse
	TokenNull
	TokenUndefined

	// Keywords
	TokenBreak
	TokenCase
	TokenCatch
	TokenConst
	TokenContinue
	TokenDebugger
	TokenDefault
	TokenDelete
	TokenDo
	TokenElse
	TokenFinally
	TokenFor
	TokenFunction
	TokenIf
	TokenIn
	TokenInstanceof
	TokenLet
	TokenNew
	TokenReturn
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTry
	TokenTypeof
	TokenVar
	TokenVoid
	TokenWhile
	TokenWith

	// Punctuators
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenQuestion
	TokenColon

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenStrictEQ
	TokenStrictNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenIdent:         "Identifier",
	TokenNumber:        "Number",
	TokenString:        "String",
	TokenRegex:         "RegExp",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenNull:          "null",
	TokenUndefined:     "undefined",
	TokenBreak:         "break",
	TokenCase:          "case",
	TokenCatch:         "catch",
	TokenConst:         "const",
	TokenContinue:      "continue",
	TokenDebugger:      "debugger",
	TokenDefault:       "default",
	TokenDelete:        "delete",
	TokenDo:            "do",
	TokenElse:          "else",
	TokenFinally:       "finally",
	TokenFor:           "for",
	TokenFunction:      "function",
	TokenIf:            "if",
	TokenIn:            "in",
	TokenInstanceof:    "instanceof",
	TokenLet:           "let",
	TokenNew:           "new",
	TokenReturn:        "return",
	TokenSwitch:        "switch",
	TokenThis:          "this",
	TokenThrow:         "throw",
	TokenTry:           "try",
	TokenTypeof:        "typeof",
	TokenVar:           "var",
	TokenVoid:          "void",
	TokenWhile:         "while",
	TokenWith:          "with",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenQuestion:      "?",
	TokenColon:         ":",
	TokenAssign:        "=",
	TokenEQ:            "==",
	TokenNE:            "!=",
	TokenStrictEQ:      "===",
	TokenStrictNE:      "!==",
	TokenLT:            "<",
	TokenLE:            "<=",
	TokenGT:            ">",
	TokenGE:            ">=",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenNot:           "!",
	TokenBitAnd:        "&",
	TokenBitOr:         "|",
	TokenBitXor:        "^",
	TokenBitNot:        "~",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenUShr:          ">>>",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
	TokenUShrAssign:    ">>>=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsKeyword reports whether k is a reserved word, including the literal
// keywords true, false, null and undefined.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenTrue && k <= TokenWith
}

// IsAssignment reports whether k is = or a compound assignment operator.
func (k TokenKind) IsAssignment() bool {
	return k == TokenAssign || (k >= TokenPlusAssign && k <= TokenUShrAssign)
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	// NewlineBefore is set when at least one line terminator was skipped
	// between the previous token and this one.
	NewlineBefore bool
	// Message describes the problem for TokenError.
	Message string
}

// Length returns the token's length in bytes.
func (t Token) Length() int {
	return t.Span.End.Offset - t.Span.Start.Offset
}

var keywords = map[string]TokenKind{
	"break":      TokenBreak,
	"case":       TokenCase,
	"catch":      TokenCatch,
	"const":      TokenConst,
	"continue":   TokenContinue,
	"debugger":   TokenDebugger,
	"default":    TokenDefault,
	"delete":     TokenDelete,
	"do":         TokenDo,
	"else":       TokenElse,
	"finally":    TokenFinally,
	"for":        TokenFor,
	"function":   TokenFunction,
	"if":         TokenIf,
	"in":         TokenIn,
	"instanceof": TokenInstanceof,
	"let":        TokenLet,
	"new":        TokenNew,
	"return":     TokenReturn,
	"switch":     TokenSwitch,
	"this":       TokenThis,
	"throw":      TokenThrow,
	"try":        TokenTry,
	"typeof":     TokenTypeof,
	"var":        TokenVar,
	"void":       TokenVoid,
	"while":      TokenWhile,
	"with":       TokenWith,
	"true":       TokenTrue,
	"false":      TokenFalse,
	"null":       TokenNull,
	"undefined":  TokenUndefined,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
