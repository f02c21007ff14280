package ast

import (
	"strings"
	"testing"
)

func TestWalkPreOrder(t *testing.T) {
	var b Builder
	// if (a < 1) { f(x, y); } else z = 2;
	root := b.Program(List{
		b.If(
			b.Binary("<", b.Identifier("a"), b.NumberLiteral("1")),
			b.Block(List{
				b.ExpressionStatement(b.Call(b.Identifier("f"), List{b.Identifier("x"), b.Identifier("y")})),
			}),
			b.ExpressionStatement(b.Assignment("=", b.Identifier("z"), b.NumberLiteral("2"))),
		),
	})

	var got []string
	Walk(root, func(n Node, depth int) {
		label := n.Kind().String()
		if id, ok := n.(*Identifier); ok {
			label = id.Name
		}
		got = append(got, strings.Repeat(".", depth)+label)
	})

	want := []string{
		"Program",
		".IfStatement",
		"..BinaryExpression",
		"...a",
		"...Literal",
		"..BlockStatement",
		"...ExpressionStatement",
		"....CallExpression",
		".....f",
		".....x",
		".....y",
		"..ExpressionStatement",
		"...AssignmentExpression",
		"....z",
		"....Literal",
	}

	if len(got) != len(want) {
		t.Fatalf("visited %d nodes, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChildrenSkipsAbsent(t *testing.T) {
	var b Builder
	tests := []struct {
		name string
		node Node
		want int
	}{
		{"if without else", b.If(b.Identifier("a"), b.Empty(), nil), 2},
		{"empty for", b.For(nil, nil, nil, b.Empty()), 1},
		{"bare return", b.Return(nil), 0},
		{"array with hole", b.ArrayLiteral(List{b.NumberLiteral("1"), nil, b.NumberLiteral("2")}), 2},
		{"try without catch", b.Try(b.Block(nil), nil, b.Block(nil)), 2},
		{"default case", b.SwitchCase(nil, List{b.Empty()}, true), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Children(tt.node)); got != tt.want {
				t.Errorf("len(Children) = %d, want %d", got, tt.want)
			}
		})
	}
}
