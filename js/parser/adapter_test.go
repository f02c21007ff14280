package parser

import (
	"strings"
	"testing"

	"github.com/dhamidi/jsfront/js/ast"
	"github.com/tliron/commonlog"
)

func TestRestrictedProductions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"return then newline", "function f() {\n  return\n  1\n}", []string{"ReturnStatement", "ExpressionStatement"}},
		{"return with argument", "function f() {\n  return 1\n}", []string{"ReturnStatement"}},
		{"break then label", "L: for (;;) {\n  break\n  L\n}", []string{"BreakStatement", "ExpressionStatement"}},
		{"continue then label", "L: for (;;) {\n  continue\n  L\n}", []string{"ContinueStatement", "ExpressionStatement"}},
		{"postfix on next line", "for (;;) {\n  a\n  ++b\n}", []string{"ExpressionStatement", "ExpressionStatement"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseOK(t, tt.input)
			var body ast.List
			switch n := prog.Body[0].(type) {
			case *ast.FunctionDecl:
				body = n.Body.Body
			case *ast.Labeled:
				body = n.Body.(*ast.For).Body.(*ast.Block).Body
			case *ast.For:
				body = n.Body.(*ast.Block).Body
			default:
				t.Fatalf("statement = %T", prog.Body[0])
			}
			if got := kinds(body); strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("statements = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReturnWithoutArgument(t *testing.T) {
	prog := parseOK(t, "return\n1")
	ret := prog.Body[0].(*ast.Return)
	if ret.Argument != nil {
		t.Errorf("Argument = %#v, want nil", ret.Argument)
	}
	if len(prog.Body) != 2 {
		t.Errorf("got %d statements, want 2", len(prog.Body))
	}
}

func TestPostfixOnNextLineIsPrefix(t *testing.T) {
	prog := parseOK(t, "a\n++b")
	second := prog.Body[1].(*ast.ExpressionStatement).Expression.(*ast.Update)
	if !second.Prefix {
		t.Error("Prefix = false, want true")
	}
	if id := second.Argument.(*ast.Identifier); id.Name != "b" {
		t.Errorf("Argument = %q, want %q", id.Name, "b")
	}
}

func TestSemicolonInsertion(t *testing.T) {
	tests := []struct {
		input      string
		statements int
		errors     int
	}{
		{"a = 1\nb = 2", 2, 0},
		{"{ a = 1 }", 1, 0},
		{"a = 1", 1, 0},
		{"a = 1 b = 2", 1, 1},
		{"a = b\n(c)", 1, 0},
		{"a = b\n+c", 1, 0},
		{"var x = 1\nvar y = 2", 2, 0},
		{"do {} while (x) y()", 2, 0},
		{"for (a; b\n) {}", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog, p := parse(t, tt.input)
			if p.ErrorCount() != tt.errors {
				t.Errorf("ErrorCount() = %d, want %d: %v", p.ErrorCount(), tt.errors, p.Diagnostics())
			}
			if tt.errors == 0 && len(prog.Body) != tt.statements {
				t.Errorf("got %d statements, want %d", len(prog.Body), tt.statements)
			}
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input  string
		errors int
		first  string
	}{
		{"function f() { ", 1, "unexpected end of input: block opened at 1:14 is not closed"},
		{"}", 1, "unmatched '}'"},
		{"x = {a: 1", 1, "unexpected end of input: object literal opened at 1:5 is not closed"},
		{"throw\nerr", 1, "illegal line break after 'throw'"},
		{"break;", 1, "break outside of a loop or switch"},
		{"switch (x) { case 1: continue }", 1, "continue outside of a loop"},
		{"while (x) { function f() { break } }", 1, "break outside of a loop or switch"},
		{"for (;;) break M", 1, `undefined label "M"`},
		{"L: { continue L }", 1, `continue target "L" is not a loop`},
		{"L: L: x", 1, `label "L" has already been declared`},
		{"a: { b: while (1) { continue a } }", 1, `continue target "a" is not a loop`},
		{"a: b: { while (1) { continue a } }", 1, `continue target "a" is not a loop`},
		{"for (x in o) {}", 1, "for-in loops are not supported"},
		{"1 = 2", 1, "invalid assignment target"},
		{"f()++", 1, "invalid operand for postfix ++"},
		{"else x", 1, "'else' without a matching 'if'"},
		{"try {}", 1, "try statement without catch or finally"},
		{"const c;", 1, `missing initializer in const declaration of "c"`},
		{"switch (x) { default: a; default: b }", 1, "more than one default clause in switch statement"},
		{"x = \"abc\n", 2, "unterminated string literal"},
		{"x = \"abc\ny = 1", 1, "unterminated string literal"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, p := parse(t, tt.input)
			if p.ErrorCount() != tt.errors {
				t.Errorf("ErrorCount() = %d, want %d: %v", p.ErrorCount(), tt.errors, p.Diagnostics())
			}
			var first string
			for _, d := range p.Diagnostics() {
				if d.IsError() {
					first = d.Message
					break
				}
			}
			if first != tt.first {
				t.Errorf("first error = %q, want %q", first, tt.first)
			}
		})
	}
}

func TestErrorRecovery(t *testing.T) {
	prog, p := parse(t, "var = 1;\nvar y = 2;\nlet = 3;\nz()")
	if p.ErrorCount() != 2 {
		t.Errorf("ErrorCount() = %d, want 2: %v", p.ErrorCount(), p.Diagnostics())
	}
	got := kinds(prog.Body)
	want := []string{"VariableDeclaration", "ExpressionStatement"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("statements = %v, want %v", got, want)
	}
	if d := p.Diagnostics()[0]; d.Pos.Line != 1 || d.Pos.Column != 5 {
		t.Errorf("first error at %d:%d, want 1:5", d.Pos.Line, d.Pos.Column)
	}
}

func TestErrorRecoveryInsideBlock(t *testing.T) {
	prog, p := parse(t, "function f() {\n  a b c\n  return 1\n}\ng()")
	if p.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d, want 1: %v", p.ErrorCount(), p.Diagnostics())
	}
	if got := kinds(prog.Body); strings.Join(got, ",") != "FunctionDeclaration,ExpressionStatement" {
		t.Errorf("statements = %v", got)
	}
	fn := prog.Body[0].(*ast.FunctionDecl)
	if got := kinds(fn.Body.Body); strings.Join(got, ",") != "ExpressionStatement,ReturnStatement" {
		t.Errorf("function body = %v", got)
	}
}

func TestRecoverySkipsNestedBraces(t *testing.T) {
	prog, p := parse(t, "a b { c; { d } }; e()")
	if p.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d, want 1: %v", p.ErrorCount(), p.Diagnostics())
	}
	last := prog.Body[len(prog.Body)-1].(*ast.ExpressionStatement)
	if _, ok := last.Expression.(*ast.Call); !ok {
		t.Errorf("last statement = %T, want a call", last.Expression)
	}
}

func TestUnclosedBraceDoesNotPanic(t *testing.T) {
	inputs := []string{
		"function f() { ",
		"{{{",
		"if (x) {",
		"x = {",
		"switch (x) {",
		"f(function () {",
		"}}}",
		"({)}",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, p := parse(t, input)
			if p.ErrorCount() == 0 {
				t.Error("ErrorCount() = 0, want at least one error")
			}
		})
	}
}

func TestAllocationsBalance(t *testing.T) {
	programs := []string{
		"let a = 1\na++\n",
		"var x = {a: 1};",
		"var a = 1, b = 'two', c;",
		"function f(a, b) { return a + b * 2 }",
		"L: for (var i = 0, j = 1; i < 10; i++) { if (i % 2) continue L; else break }",
		"outer: while (true) { inner: do { break outer } while (false) }",
		"switch (x) { case 1: case 'a': y(); break; default: z() }",
		"try { throw new Error('x') } catch (e) { log(e.message) } finally { done() }",
		"with (o) { p = q ? r : s }",
		"x = [1, , /re/g, {k: function named() { return this }}, null, undefined]",
		"a.b[c](d, e).f = typeof g === 'string' && !h || void 0",
		"debugger; ;",
		"return\n1",
	}

	for _, src := range programs {
		t.Run(src, func(t *testing.T) {
			tracker := ast.NewTracker()
			p := ParseProgram(strings.NewReader(src), WithLogger(commonlog.MOCK_LOGGER), WithTracker(tracker))
			prog, err := p.Finish()
			if err != nil {
				t.Fatalf("Finish() error = %v", err)
			}
			if p.ErrorCount() != 0 {
				t.Fatalf("ErrorCount() = %d: %v", p.ErrorCount(), p.Diagnostics())
			}
			if tracker.Live() != countNodes(prog) {
				t.Errorf("Live() = %d, but the tree has %d nodes", tracker.Live(), countNodes(prog))
			}

			p.Free(p.TakeAST())

			if !tracker.Balanced() {
				t.Errorf("allocated %+v, released %+v, live %d, double frees %d",
					tracker.Allocated(), tracker.Released(), tracker.Live(), tracker.DoubleFrees())
			}
		})
	}
}

func countNodes(root ast.Node) int {
	count := 0
	ast.Walk(root, func(ast.Node, int) { count++ })
	return count
}

func TestDivisionAfterOperand(t *testing.T) {
	tests := []struct {
		input string
		left  ast.Kind
	}{
		{"x = a++ / 2", ast.KindUpdate},
		{"x = a-- / 2 / 1", ast.KindBinary},
		{"x = o.return / 2", ast.KindMember},
		{"x = o.default / 2", ast.KindMember},
		{"x = {if: 1}.if / 2", ast.KindMember},
		{"x = function () {} / 2", ast.KindFunctionExpression},
		{"x = function f() { return /re/ } / 2", ast.KindFunctionExpression},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := parseOK(t, tt.input)
			assign := prog.Body[0].(*ast.ExpressionStatement).Expression.(*ast.Assignment)
			div, ok := assign.Right.(*ast.Binary)
			if !ok || div.Operator != "/" {
				t.Fatalf("right = %#v, want division", assign.Right)
			}
			if got := div.Left.Kind(); got != tt.left {
				t.Errorf("left = %v, want %v", got, tt.left)
			}
		})
	}
}

func TestLabelChainsShareTheLoop(t *testing.T) {
	tests := []string{
		"a: b: while (1) { continue a }",
		"a: b: c: for (;;) { continue b; continue a }",
		"a: b: do { continue a } while (0)",
		"a: b: while (1) { c: d: for (;;) { continue a; continue d } }",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			parseOK(t, input)
		})
	}
}
