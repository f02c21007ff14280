package parser

import (
	"fmt"

	"github.com/tliron/commonlog"
)

type Level int

const (
	LevelFatal Level = iota
	LevelError
	LevelWarning
	LevelDebug
)

var levelNames = map[Level]string{
	LevelFatal:   "FATAL",
	LevelError:   "ERROR",
	LevelWarning: "WARNING",
	LevelDebug:   "DEBUG",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// CommonLevel maps a diagnostic level onto the logging level used to
// report it.
func (l Level) CommonLevel() commonlog.Level {
	switch l {
	case LevelFatal:
		return commonlog.Critical
	case LevelError:
		return commonlog.Error
	case LevelWarning:
		return commonlog.Warning
	}
	return commonlog.Debug
}

type Diagnostic struct {
	Level   Level
	Message string
	Pos     Position
}

// IsError reports whether the diagnostic counts toward the error count.
func (d Diagnostic) IsError() bool {
	return d.Level == LevelFatal || d.Level == LevelError
}

// Location renders the position as file:line:col, omitting the file when it
// is unknown.
func (d Diagnostic) Location() string {
	if d.Pos.File == "" {
		return fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
	}
	return fmt.Sprintf("%s:%d:%d", d.Pos.File, d.Pos.Line, d.Pos.Column)
}

// String formats the diagnostic the way the text sink writes it:
// "[LEVEL] file:line:col: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Level, d.Location(), d.Message)
}

func (p *Parser) report(level Level, pos Position, format string, args ...any) {
	if level == LevelDebug && !p.debug {
		return
	}
	d := Diagnostic{Level: level, Message: fmt.Sprintf(format, args...), Pos: pos}
	if d.IsError() {
		p.errorCount++
	}
	p.diagnostics = append(p.diagnostics, d)

	if p.sink != nil {
		fmt.Fprintln(p.sink, d.String())
	}

	kv := []any{"file", pos.File, "line", pos.Line, "column", pos.Column}
	switch level {
	case LevelFatal:
		p.log.Critical(d.Message, kv...)
	case LevelError:
		p.log.Error(d.Message, kv...)
	case LevelWarning:
		p.log.Warning(d.Message, kv...)
	default:
		p.log.Debug(d.Message, kv...)
	}
}

// syntaxError records the first error of a statement. Later errors in the
// same statement are suppressed until the parser has recovered.
func (p *Parser) syntaxError(tok Token, format string, args ...any) {
	if p.failed {
		return
	}
	p.failed = true
	p.report(LevelError, tok.Span.Start, format, args...)
}

func (p *Parser) warn(pos Position, format string, args ...any) {
	p.report(LevelWarning, pos, format, args...)
}

func (p *Parser) debugf(pos Position, format string, args ...any) {
	p.report(LevelDebug, pos, format, args...)
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case TokenNumber, TokenString, TokenRegex:
		return fmt.Sprintf("%s %s", tok.Kind, tok.Literal)
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}
