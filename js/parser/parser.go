package parser

import (
	"fmt"
	"io"

	"github.com/dhamidi/jsfront/js/ast"
	"github.com/tliron/commonlog"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithDebug enables DEBUG diagnostics: inserted semicolons and brace
// classifications.
func WithDebug() Option {
	return func(p *Parser) {
		p.debug = true
	}
}

// WithDiagnosticSink writes every diagnostic to w as a single line.
func WithDiagnosticSink(w io.Writer) Option {
	return func(p *Parser) {
		p.sink = w
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// WithMaxNodes stops the parse with a FATAL diagnostic once more than n AST
// nodes have been built.
func WithMaxNodes(n int) Option {
	return func(p *Parser) {
		p.build.MaxNodes = n
	}
}

// WithTracker records every node allocation made during the parse.
func WithTracker(t *ast.Tracker) Option {
	return func(p *Parser) {
		p.build.Tracker = t
	}
}

// Parser is a parsing session. It owns all state of one parse: the lexer,
// the adapter stacks, the error count and the AST root. A Parser is not safe
// for concurrent use; separate parses use separate Parsers or call Reset in
// between.
type Parser struct {
	file  string
	debug bool
	sink  io.Writer
	log   commonlog.Logger

	reader io.Reader
	input  []byte
	loaded bool
	lexer  *Lexer
	build  *ast.Builder

	tok    Token
	hasTok bool
	prev   Token

	braces   []braceFrame
	controls []controlFrame
	labels   []labelFrame

	failed      bool
	fatal       error
	errorCount  int
	diagnostics []Diagnostic
	root        *ast.Program
}

func New(opts ...Option) *Parser {
	p := &Parser{
		log:   commonlog.GetLogger("jsfront.parser"),
		build: &ast.Builder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseProgram returns a session that reads a whole program from r when
// Finish is called.
func ParseProgram(r io.Reader, opts ...Option) *Parser {
	p := New(opts...)
	p.reader = r
	return p
}

// SetInput replaces the source text. Session state is left alone; call
// ResetState to start a fresh parse.
func (p *Parser) SetInput(src []byte) {
	p.reader = nil
	p.input = src
	p.loaded = true
}

// Reset discards all session state and prepares to read from r.
func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.loaded = false
	p.ResetState()
}

// ResetState clears the error count, diagnostics, adapter stacks and AST
// root. The input is kept.
func (p *Parser) ResetState() {
	p.lexer = nil
	p.tok = Token{}
	p.hasTok = false
	p.prev = Token{}
	p.braces = nil
	p.controls = nil
	p.labels = nil
	p.failed = false
	p.fatal = nil
	p.errorCount = 0
	p.diagnostics = nil
	p.root = nil
	p.build.Reset()
}

func (p *Parser) ErrorCount() int { return p.errorCount }

func (p *Parser) ResetErrorCount() { p.errorCount = 0 }

func (p *Parser) Diagnostics() []Diagnostic { return p.diagnostics }

// NodeCount returns the number of AST nodes built by the last parse.
func (p *Parser) NodeCount() int { return p.build.Count() }

func (p *Parser) readAll() error {
	if p.loaded {
		return nil
	}
	if p.reader == nil {
		p.loaded = true
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	p.input = data
	p.loaded = true
	return nil
}

// Finish parses the input and stores the resulting program in the session.
// The program is returned even when syntax errors were found, in which case
// it holds whatever statements could be recovered; check ErrorCount. The
// returned error is non-nil only when the source could not be read or the
// node budget was exhausted.
func (p *Parser) Finish() (*ast.Program, error) {
	if err := p.readAll(); err != nil {
		return nil, err
	}
	p.lexer = NewLexer(p.input, p.file)
	p.tok = Token{}
	p.hasTok = false
	p.failed = false
	p.root = p.parseProgram()
	if p.fatal != nil {
		return p.root, p.fatal
	}
	return p.root, nil
}

// TakeAST hands the stored program to the caller and clears the slot.
func (p *Parser) TakeAST() *ast.Program {
	root := p.root
	p.root = nil
	return root
}

// Free releases a tree built by this session, recording the releases on the
// session's tracker.
func (p *Parser) Free(n ast.Node) {
	p.build.Free(n)
}

// Tokens scans the input and returns every significant token up to and
// including EOF, together with the lexer context in effect after each one.
// Lex errors are returned as TokenError tokens and also recorded as
// diagnostics.
func (p *Parser) Tokens() ([]Token, []Context, error) {
	if err := p.readAll(); err != nil {
		return nil, nil, err
	}
	lexer := NewLexer(p.input, p.file)
	var tokens []Token
	var contexts []Context
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenError {
			p.report(LevelError, tok.Span.Start, "%s", tok.Message)
		}
		tokens = append(tokens, tok)
		contexts = append(contexts, lexer.Context())
		if tok.Kind == TokenEOF {
			return tokens, contexts, nil
		}
	}
}
