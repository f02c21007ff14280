package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/jsfront/js/ast"
)

// Encoder renders a syntax tree. Encode writes the rendering of node to the
// encoder's writer; MarshalText returns the rendering of the node most
// recently passed to Encode.
type Encoder interface {
	encoding.TextMarshaler
	Encode(node ast.Node) error
}

// New returns the encoder registered under name ("tree" or "json"), or nil.
func New(name string, w io.Writer) Encoder {
	switch name {
	case "tree":
		return NewTreeEncoder(w)
	case "json":
		return NewASTJSONEncoder(w)
	}
	return nil
}
