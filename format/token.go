package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jsfront/js/parser"
)

// TokenEncoder writes one line per token:
//
//	line:column	kind	literal	context [newline]
//
// where context is the lexer context after the token and "newline" marks a
// token preceded by a line terminator. Error tokens show their message in
// place of the literal.
type TokenEncoder struct {
	w        io.Writer
	tokens   []parser.Token
	contexts []parser.Context
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(tokens []parser.Token, contexts []parser.Context) error {
	e.tokens = tokens
	e.contexts = contexts
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenEncoder) MarshalText() ([]byte, error) {
	if len(e.contexts) != 0 && len(e.contexts) != len(e.tokens) {
		return nil, fmt.Errorf("encode tokens: %d tokens but %d contexts", len(e.tokens), len(e.contexts))
	}
	var sb strings.Builder
	for i, tok := range e.tokens {
		pos := tok.Span.Start
		text := tok.Literal
		if tok.Kind == parser.TokenError {
			text = tok.Message
		}
		fmt.Fprintf(&sb, "%d:%d\t%s\t%q", pos.Line, pos.Column, tok.Kind, text)
		if len(e.contexts) > 0 {
			fmt.Fprintf(&sb, "\t%s", e.contexts[i])
		}
		if tok.NewlineBefore {
			sb.WriteString("\tnewline")
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}
