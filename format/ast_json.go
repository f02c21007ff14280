package format

import (
	"bytes"
	"encoding/json"
	"io"
	"math"

	"github.com/dhamidi/jsfront/js/ast"
)

// ASTJSONEncoder writes a tree as ESTree-shaped JSON. Absent children and
// array holes are null. String literal values hold the source text between
// the quotes, escapes included.
type ASTJSONEncoder struct {
	w    io.Writer
	node ast.Node
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node ast.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(nodeToJSON(e.node)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// jsonObject is a JSON object that keeps its keys in insertion order, so
// "type" comes first as in ESTree dumps.
type jsonObject []jsonField

type jsonField struct {
	key   string
	value any
}

func (o jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalValue(&buf, f.key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := marshalValue(&buf, f.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalValue appends the JSON encoding of v to buf without escaping the
// '<', '>' and '&' characters that operators are made of.
func marshalValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

func object(typ string, fields ...jsonField) jsonObject {
	return append(jsonObject{{"type", typ}}, fields...)
}

func field(key string, value any) jsonField {
	return jsonField{key: key, value: value}
}

func nodeToJSON(n ast.Node) any {
	if n == nil {
		return nil
	}
	typ := n.Kind().String()
	switch n := n.(type) {
	case *ast.Program:
		return object(typ, field("body", listToJSON(n.Body)))
	case *ast.Block:
		return blockToJSON(n)
	case *ast.VarDecl:
		declarator := object("VariableDeclarator",
			field("id", identifier(n.Name)),
			field("init", nodeToJSON(n.Init)))
		return object(typ,
			field("kind", n.VarKind.String()),
			field("declarations", []any{declarator}))
	case *ast.FunctionDecl:
		return object(typ,
			field("id", optionalIdentifier(n.Name)),
			field("params", listToJSON(n.Params)),
			field("body", blockToJSON(n.Body)))
	case *ast.FunctionExpression:
		return object(typ,
			field("id", optionalIdentifier(n.Name)),
			field("params", listToJSON(n.Params)),
			field("body", blockToJSON(n.Body)))
	case *ast.Return:
		return object(typ, field("argument", nodeToJSON(n.Argument)))
	case *ast.If:
		return object(typ,
			field("test", nodeToJSON(n.Test)),
			field("consequent", nodeToJSON(n.Consequent)),
			field("alternate", nodeToJSON(n.Alternate)))
	case *ast.For:
		return object(typ,
			field("init", nodeToJSON(n.Init)),
			field("test", nodeToJSON(n.Test)),
			field("update", nodeToJSON(n.Update)),
			field("body", nodeToJSON(n.Body)))
	case *ast.While:
		return object(typ,
			field("test", nodeToJSON(n.Test)),
			field("body", nodeToJSON(n.Body)))
	case *ast.DoWhile:
		return object(typ,
			field("body", nodeToJSON(n.Body)),
			field("test", nodeToJSON(n.Test)))
	case *ast.Switch:
		return object(typ,
			field("discriminant", nodeToJSON(n.Discriminant)),
			field("cases", listToJSON(n.Cases)))
	case *ast.SwitchCase:
		return object(typ,
			field("test", nodeToJSON(n.Test)),
			field("consequent", listToJSON(n.Consequent)))
	case *ast.Try:
		var handler any
		if n.Handler != nil {
			handler = nodeToJSON(n.Handler)
		}
		return object(typ,
			field("block", blockToJSON(n.Block)),
			field("handler", handler),
			field("finalizer", blockToJSON(n.Finalizer)))
	case *ast.CatchClause:
		return object(typ,
			field("param", optionalIdentifier(n.Param)),
			field("body", blockToJSON(n.Body)))
	case *ast.With:
		return object(typ,
			field("object", nodeToJSON(n.Object)),
			field("body", nodeToJSON(n.Body)))
	case *ast.Labeled:
		return object(typ,
			field("label", identifier(n.Label)),
			field("body", nodeToJSON(n.Body)))
	case *ast.Break:
		return object(typ, field("label", optionalIdentifier(n.Label)))
	case *ast.Continue:
		return object(typ, field("label", optionalIdentifier(n.Label)))
	case *ast.Throw:
		return object(typ, field("argument", nodeToJSON(n.Argument)))
	case *ast.ExpressionStatement:
		return object(typ, field("expression", nodeToJSON(n.Expression)))
	case *ast.Empty, *ast.Debugger, *ast.This:
		return object(typ)
	case *ast.Identifier:
		return identifier(n.Name)
	case *ast.Literal:
		return literalToJSON(n)
	case *ast.Assignment:
		return object(typ,
			field("operator", n.Operator),
			field("left", nodeToJSON(n.Left)),
			field("right", nodeToJSON(n.Right)))
	case *ast.Binary:
		return object(typ,
			field("operator", n.Operator),
			field("left", nodeToJSON(n.Left)),
			field("right", nodeToJSON(n.Right)))
	case *ast.Conditional:
		return object(typ,
			field("test", nodeToJSON(n.Test)),
			field("consequent", nodeToJSON(n.Consequent)),
			field("alternate", nodeToJSON(n.Alternate)))
	case *ast.Sequence:
		return object(typ, field("expressions", listToJSON(n.Expressions)))
	case *ast.Unary:
		return object(typ,
			field("operator", n.Operator),
			field("prefix", true),
			field("argument", nodeToJSON(n.Argument)))
	case *ast.Update:
		return object(typ,
			field("operator", n.Operator),
			field("prefix", n.Prefix),
			field("argument", nodeToJSON(n.Argument)))
	case *ast.Call:
		return object(typ,
			field("callee", nodeToJSON(n.Callee)),
			field("arguments", listToJSON(n.Arguments)))
	case *ast.New:
		return object(typ,
			field("callee", nodeToJSON(n.Callee)),
			field("arguments", listToJSON(n.Arguments)))
	case *ast.Member:
		return object(typ,
			field("object", nodeToJSON(n.Object)),
			field("property", nodeToJSON(n.Property)),
			field("computed", n.Computed))
	case *ast.ArrayLiteral:
		return object(typ, field("elements", listToJSON(n.Elements)))
	case *ast.ObjectLiteral:
		return object(typ, field("properties", listToJSON(n.Properties)))
	case *ast.Property:
		var key any
		if n.KeyIsIdentifier {
			key = identifier(n.Key)
		} else {
			key = object("Literal", field("value", n.Key))
		}
		return object(typ,
			field("key", key),
			field("value", nodeToJSON(n.Value)),
			field("kind", "init"))
	}
	return object(typ)
}

// listToJSON always returns a non-nil slice so empty lists encode as [].
func listToJSON(list ast.List) []any {
	out := make([]any, len(list))
	for i, n := range list {
		out[i] = nodeToJSON(n)
	}
	return out
}

func blockToJSON(b *ast.Block) any {
	if b == nil {
		return nil
	}
	return object(b.Kind().String(), field("body", listToJSON(b.Body)))
}

func identifier(name string) jsonObject {
	return object("Identifier", field("name", name))
}

func optionalIdentifier(name string) any {
	if name == "" {
		return nil
	}
	return identifier(name)
}

func literalToJSON(lit *ast.Literal) jsonObject {
	switch lit.LiteralKind {
	case ast.LiteralNumber:
		if math.IsInf(lit.Number, 0) {
			return object("Literal", field("value", nil), field("raw", "Infinity"))
		}
		return object("Literal", field("value", lit.Number))
	case ast.LiteralString:
		return object("Literal", field("value", lit.String))
	case ast.LiteralBoolean:
		return object("Literal", field("value", lit.Boolean))
	case ast.LiteralNull:
		return object("Literal", field("value", nil), field("raw", "null"))
	case ast.LiteralUndefined:
		return object("Literal", field("value", nil), field("raw", "undefined"))
	case ast.LiteralRegExp:
		return object("Literal",
			field("value", nil),
			field("regex", jsonObject{field("pattern", lit.Pattern), field("flags", lit.Flags)}))
	}
	return object("Literal")
}
