// Package parser turns JavaScript source text into the tree defined in
// package ast.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   Adapter   │────▶│   Grammar   │
//	│  (bytes)    │     │  (tokens)   │     │ (terminals) │     │  (ast.*)    │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │  Regex vs   │     │ ASI, brace  │
//	                    │  division   │     │ and control │
//	                    │  context    │     │   stacks    │
//	                    └─────────────┘     └─────────────┘
//
// # Lexer
//
// The lexer skips whitespace and comments and records on each token whether a
// line terminator came before it. A '/' is read as the start of a regular
// expression or as division depending on the lexer context, which follows
// from the kind of the previous token:
//
//	(a+b)/c      ')' ends an operand, so '/' is division
//	return /ab/  'return' is a keyword, so '/ab/' is a regular expression
//
// The parser refines the context where the previous token alone is not
// enough: a '/' is division after a postfix ++ or --, after a keyword used
// as a property name (o.return), and after the closing '}' of an object
// literal or a function expression.
//
// # Semicolon insertion
//
// A statement that needs a terminator accepts a real ';', or a virtual one
// when the next token is '}', the end of input, or sits on a new line. After
// return, break, continue and throw, and before a postfix ++ or --, a line
// break ends the production:
//
//	return
//	1
//
// parses as "return;" followed by "1;".
//
// A line break right after throw is a syntax error rather than an empty
// throw, since throw always needs an operand:
//
//	throw
//	err
//
// reports "illegal line break after 'throw'".
//
// # Braces
//
// A '{' in statement position opens a block and one in expression position
// opens an object literal. Every '{' is pushed on a stack with its kind and
// must be closed by a matching '}'; a missing '}' is a syntax error that
// names where the brace was opened.
//
// # Sessions
//
// A Parser holds all state of one parse. Errors never escape as Go errors:
// they are recorded as Diagnostics and counted, and the parser skips to the
// next statement boundary and continues.
//
//	p := parser.ParseProgram(strings.NewReader(src), parser.WithFile("a.js"))
//	prog, err := p.Finish()
//	if err != nil {
//	    // the source could not be read, or the node budget ran out
//	}
//	if p.ErrorCount() > 0 {
//	    for _, d := range p.Diagnostics() {
//	        fmt.Println(d)
//	    }
//	}
package parser
