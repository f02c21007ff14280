package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jsfront/js/ast"
	"github.com/dhamidi/jsfront/js/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.ParseProgram(strings.NewReader(src), parser.WithLogger(commonlog.MOCK_LOGGER))
	prog, err := p.Finish()
	require.NoError(t, err)
	require.Zero(t, p.ErrorCount(), "diagnostics: %v", p.Diagnostics())
	return prog
}

// requireGolden fails with a character diff when got differs from want.
func requireGolden(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	t.Fatalf("output differs from golden text:\n%s", dmp.DiffPrettyText(diffs))
}

func TestTreeEncoder(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "declaration and postfix update",
			src:  "let a = 1\na++\n",
			want: `=== AST Dump ===
Program
  VariableDeclaration (let a)
    Literal (1)
  ExpressionStatement
    UpdateExpression (++ postfix)
      Identifier (a)
`,
		},
		{
			name: "if else",
			src:  "if (a < 1) f(x); else y = 'two'",
			want: `=== AST Dump ===
Program
  IfStatement
    BinaryExpression (<)
      Identifier (a)
      Literal (1)
    ExpressionStatement
      CallExpression
        Identifier (f)
        Identifier (x)
    ExpressionStatement
      AssignmentExpression (=)
        Identifier (y)
        Literal ("two")
`,
		},
		{
			name: "arrays and members",
			src:  "x = [1, , /re/g]; o.p[q]",
			want: `=== AST Dump ===
Program
  ExpressionStatement
    AssignmentExpression (=)
      Identifier (x)
      ArrayExpression (holes: 1)
        Literal (1)
        Literal (/re/g)
  ExpressionStatement
    MemberExpression (computed)
      MemberExpression
        Identifier (o)
        Identifier (p)
      Identifier (q)
`,
		},
		{
			name: "labels and object keys",
			src:  "L: for (;;) { break L }\nvar o = {'k': null, n: undefined}",
			want: `=== AST Dump ===
Program
  LabeledStatement (L)
    ForStatement
      BlockStatement
        BreakStatement (L)
  VariableDeclaration (var o)
    ObjectExpression
      Property ("k")
        Literal (null)
      Property (n)
        Literal (undefined)
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewTreeEncoder(&buf).Encode(parse(t, tt.src)))
			requireGolden(t, tt.want, buf.String())
		})
	}
}

func TestTreeEncoderEmpty(t *testing.T) {
	enc := NewTreeEncoder(nil)
	enc.Header = ""
	text, err := enc.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "(empty)\n", string(text))
}

func TestASTJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode(parse(t, "var x = {a: 1};")))

	want := `{
		"type": "Program",
		"body": [{
			"type": "VariableDeclaration",
			"kind": "var",
			"declarations": [{
				"type": "VariableDeclarator",
				"id": {"type": "Identifier", "name": "x"},
				"init": {
					"type": "ObjectExpression",
					"properties": [{
						"type": "Property",
						"key": {"type": "Identifier", "name": "a"},
						"value": {"type": "Literal", "value": 1},
						"kind": "init"
					}]
				}
			}]
		}]
	}`
	assert.JSONEq(t, want, buf.String())
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"type\": \"Program\""), "type is the first key")
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestASTJSONEncoderShapes(t *testing.T) {
	var buf bytes.Buffer
	enc := NewASTJSONEncoder(&buf)
	require.NoError(t, enc.Encode(parse(t, "x = [1, , /a<b/gi]; y = a < b && c; try {} finally {} 1e400")))

	var prog struct {
		Body []map[string]any `json:"body"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &prog))
	require.Len(t, prog.Body, 4)

	array := prog.Body[0]["expression"].(map[string]any)["right"].(map[string]any)
	elements := array["elements"].([]any)
	require.Len(t, elements, 3)
	assert.Nil(t, elements[1], "hole")
	regex := elements[2].(map[string]any)
	assert.Nil(t, regex["value"])
	assert.Equal(t, map[string]any{"pattern": "a<b", "flags": "gi"}, regex["regex"])

	try := prog.Body[2]
	assert.Equal(t, "TryStatement", try["type"])
	assert.Nil(t, try["handler"])
	assert.NotNil(t, try["finalizer"])

	inf := prog.Body[3]["expression"].(map[string]any)
	assert.Equal(t, "Infinity", inf["raw"])

	assert.Contains(t, buf.String(), `"operator": "&&"`)
	assert.NotContains(t, buf.String(), `\u003c`)
}

func TestASTJSONEncoderMarshalText(t *testing.T) {
	enc := NewASTJSONEncoder(nil)
	text, err := enc.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "null\n", string(text))
}

func TestTokenEncoder(t *testing.T) {
	p := parser.ParseProgram(strings.NewReader("var x\n= /a/g"), parser.WithLogger(commonlog.MOCK_LOGGER))
	tokens, contexts, err := p.Tokens()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTokenEncoder(&buf).Encode(tokens, contexts))

	want := `1:1	var	"var"	AllowRegex
1:5	Identifier	"x"	NoRegex
2:1	=	"="	AllowRegex	newline
2:3	RegExp	"/a/g"	NoRegex
2:7	EOF	""	AllowRegex
`
	requireGolden(t, want, buf.String())
}

func TestTokenEncoderErrors(t *testing.T) {
	p := parser.ParseProgram(strings.NewReader(`"open`), parser.WithLogger(commonlog.MOCK_LOGGER))
	tokens, _, err := p.Tokens()
	require.NoError(t, err)
	assert.Equal(t, 1, p.ErrorCount())

	text, err := (&TokenEncoder{tokens: tokens}).MarshalText()
	require.NoError(t, err)
	requireGolden(t, "1:1\tError\t\"unterminated string literal\"\n1:6\tEOF\t\"\"\n", string(text))

	_, err = (&TokenEncoder{tokens: tokens, contexts: []parser.Context{parser.ContextNoRegex}}).MarshalText()
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	assert.IsType(t, &TreeEncoder{}, New("tree", nil))
	assert.IsType(t, &ASTJSONEncoder{}, New("json", nil))
	assert.Nil(t, New("yaml", nil))
}
