package ast

import (
	"errors"
	"math"
	"testing"
)

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`""`, ""},
		{`"it's"`, "it's"},
		{`"a\"b"`, `a\"b`},
		{`abc`, "abc"},
		{`"`, `"`},
		{`42`, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := StripQuotes(tt.input); got != tt.want {
				t.Errorf("StripQuotes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14", 3.14},
		{".5", 0.5},
		{"1.", 1},
		{"1e3", 1000},
		{"2.5E-1", 0.25},
		{"0x1F", 31},
		{"0XfF", 255},
		{"017", 17},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseNumber(tt.input); got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if got := ParseNumber("1e400"); !math.IsInf(got, 1) {
		t.Errorf("ParseNumber(1e400) = %v, want +Inf", got)
	}
}

func TestBuilderLiterals(t *testing.T) {
	var b Builder

	s := b.StringLiteral(`'abc'`)
	if s.LiteralKind != LiteralString || s.String != "abc" {
		t.Errorf("StringLiteral = %v %q, want string \"abc\"", s.LiteralKind, s.String)
	}

	n := b.NumberLiteral("1.5")
	if n.LiteralKind != LiteralNumber || n.Number != 1.5 {
		t.Errorf("NumberLiteral = %v %v, want number 1.5", n.LiteralKind, n.Number)
	}

	re := b.RegExpLiteral("ab+c", "gi")
	if re.Pattern != "ab+c" || re.Flags != "gi" {
		t.Errorf("RegExpLiteral = /%s/%s, want /ab+c/gi", re.Pattern, re.Flags)
	}

	p := b.Property(`"key"`, false, b.NullLiteral())
	if p.Key != "key" || p.KeyIsIdentifier {
		t.Errorf("Property key = %q (identifier %v), want \"key\" (identifier false)", p.Key, p.KeyIsIdentifier)
	}

	id := b.Property("key", true, b.UndefinedLiteral())
	if id.Key != "key" || !id.KeyIsIdentifier {
		t.Errorf("Property key = %q (identifier %v), want \"key\" (identifier true)", id.Key, id.KeyIsIdentifier)
	}

	if b.Count() != 7 {
		t.Errorf("Count() = %d, want 7", b.Count())
	}
}

func TestBuilderKinds(t *testing.T) {
	var b Builder
	tests := []struct {
		node Node
		want string
	}{
		{b.Program(nil), "Program"},
		{b.Block(nil), "BlockStatement"},
		{b.VarDecl(VarKindLet, "a", nil), "VariableDeclaration"},
		{b.Update("++", b.Identifier("a"), false), "UpdateExpression"},
		{b.ArrayLiteral(nil), "ArrayExpression"},
		{b.ObjectLiteral(nil), "ObjectExpression"},
		{b.SwitchCase(nil, nil, true), "SwitchCase"},
		{b.CatchClause("e", b.Block(nil)), "CatchClause"},
		{b.This(), "ThisExpression"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.node.Kind().String(); got != tt.want {
				t.Errorf("Kind().String() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := Kind(999).String(); got != "Unknown" {
		t.Errorf("Kind(999).String() = %q, want %q", got, "Unknown")
	}
}

func TestBuilderNodeBudget(t *testing.T) {
	b := Builder{MaxNodes: 2}
	b.Identifier("a")
	b.Identifier("b")
	if b.Err() != nil {
		t.Fatalf("Err() = %v before the budget was exceeded", b.Err())
	}

	n := b.Identifier("c")
	if n == nil {
		t.Fatal("constructor returned nil after the budget was exceeded")
	}
	if !errors.Is(b.Err(), ErrNodeBudget) {
		t.Errorf("Err() = %v, want ErrNodeBudget", b.Err())
	}

	b.Reset()
	if b.Err() != nil || b.Count() != 0 {
		t.Errorf("after Reset: Err() = %v, Count() = %d", b.Err(), b.Count())
	}
}

func TestListAppend(t *testing.T) {
	var b Builder
	var l List
	l = l.Append(b.Identifier("a"))
	l = l.Append(nil)
	l = l.Append(b.Identifier("b"))
	if len(l) != 2 {
		t.Fatalf("len = %d, want 2", len(l))
	}

	joined := Concat(l, List{nil, b.Identifier("c")})
	names := ""
	for _, n := range joined {
		names += n.(*Identifier).Name
	}
	if names != "abc" {
		t.Errorf("Concat order = %q, want %q", names, "abc")
	}
}
