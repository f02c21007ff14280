package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/jsfront/js/ast"
)

// TreeEncoder writes an indented, human-readable dump of a tree, one node per
// line, children indented two spaces below their parent.
type TreeEncoder struct {
	w    io.Writer
	node ast.Node
	// Header is written on its own line before the dump when non-empty.
	Header string
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w, Header: "=== AST Dump ==="}
}

func (e *TreeEncoder) Encode(node ast.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.Header != "" {
		sb.WriteString(e.Header)
		sb.WriteByte('\n')
	}
	if e.node == nil {
		sb.WriteString("(empty)\n")
		return []byte(sb.String()), nil
	}
	ast.Walk(e.node, func(n ast.Node, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(n.Kind().String())
		if detail := describeNode(n); detail != "" {
			fmt.Fprintf(&sb, " (%s)", detail)
		}
		sb.WriteByte('\n')
	})
	return []byte(sb.String()), nil
}

// describeNode returns the scalar fields of n that the dump shows next to
// its kind.
func describeNode(n ast.Node) string {
	switch n := n.(type) {
	case *ast.VarDecl:
		return n.VarKind.String() + " " + n.Name
	case *ast.FunctionDecl:
		return n.Name
	case *ast.FunctionExpression:
		return n.Name
	case *ast.Identifier:
		return n.Name
	case *ast.Literal:
		return literalText(n)
	case *ast.Assignment:
		return n.Operator
	case *ast.Binary:
		return n.Operator
	case *ast.Unary:
		return n.Operator
	case *ast.Update:
		if n.Prefix {
			return n.Operator + " prefix"
		}
		return n.Operator + " postfix"
	case *ast.Member:
		if n.Computed {
			return "computed"
		}
	case *ast.Property:
		if n.KeyIsIdentifier {
			return n.Key
		}
		return `"` + n.Key + `"`
	case *ast.Labeled:
		return n.Label
	case *ast.Break:
		return n.Label
	case *ast.Continue:
		return n.Label
	case *ast.CatchClause:
		return n.Param
	case *ast.SwitchCase:
		if n.IsDefault {
			return "default"
		}
	case *ast.ArrayLiteral:
		if holes := countHoles(n.Elements); holes > 0 {
			return fmt.Sprintf("holes: %d", holes)
		}
	}
	return ""
}

func literalText(lit *ast.Literal) string {
	switch lit.LiteralKind {
	case ast.LiteralNumber:
		return formatNumber(lit.Number)
	case ast.LiteralString:
		return `"` + lit.String + `"`
	case ast.LiteralBoolean:
		return strconv.FormatBool(lit.Boolean)
	case ast.LiteralRegExp:
		return "/" + lit.Pattern + "/" + lit.Flags
	}
	return lit.LiteralKind.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func countHoles(list ast.List) int {
	holes := 0
	for _, n := range list {
		if n == nil {
			holes++
		}
	}
	return holes
}
