package generator

import (
	"bytes"

	"github.com/mcncl/vjp/internal/codec"
	"github.com/mcncl/vjp/internal/models"
)

const indentWidth = 4

// Generator renders a Value tree as JSON text
type Generator struct {
	pretty    bool
	canonical bool
}

// Option configures a Generator
type Option func(*Generator)

// Pretty enables indented output, four spaces per level
func Pretty(v bool) Option {
	return func(g *Generator) { g.pretty = v }
}

// CanonicalEscapes writes control characters in strings as \n, \u0001 and
// so on instead of a backslash followed by the raw byte
func CanonicalEscapes(v bool) Option {
	return func(g *Generator) { g.canonical = v }
}

// NewGenerator creates a new Generator instance
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders v without any whitespace
func Generate(v models.Value) string {
	return NewGenerator().Generate(v)
}

// GeneratePretty renders v indented by four spaces per level
func GeneratePretty(v models.Value) string {
	return NewGenerator(Pretty(true)).Generate(v)
}

// Generate renders v according to the generator's options
func (g *Generator) Generate(v models.Value) string {
	var buf bytes.Buffer
	g.writeValue(&buf, v, 0)
	return buf.String()
}

func (g *Generator) writeValue(buf *bytes.Buffer, v models.Value, depth int) {
	switch v.Kind() {
	case models.ObjectKind:
		obj, _ := v.AsObject()
		g.writeObject(buf, obj, depth)
	case models.ArrayKind:
		elems, _ := v.AsArray()
		g.writeArray(buf, elems, depth)
	case models.StringKind:
		s, _ := v.AsString()
		g.writeString(buf, s)
	case models.NumberKind:
		lit, _ := v.AsNumber()
		buf.WriteString(lit)
	case models.BoolKind:
		if b, _ := v.AsBool(); b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	default:
		buf.WriteString("null")
	}
}

func (g *Generator) writeObject(buf *bytes.Buffer, obj *models.Object, depth int) {
	if obj.Len() == 0 {
		buf.WriteString("{}")
		return
	}

	buf.WriteByte('{')
	i := 0
	for key, value := range obj.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		g.newline(buf, depth+1)
		g.writeString(buf, key)
		buf.WriteByte(':')
		if g.pretty {
			buf.WriteByte(' ')
		}
		g.writeValue(buf, value, depth+1)
		i++
	}
	g.newline(buf, depth)
	buf.WriteByte('}')
}

func (g *Generator) writeArray(buf *bytes.Buffer, elems []models.Value, depth int) {
	if len(elems) == 0 {
		buf.WriteString("[]")
		return
	}

	buf.WriteByte('[')
	for i, elem := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		g.newline(buf, depth+1)
		g.writeValue(buf, elem, depth+1)
	}
	g.newline(buf, depth)
	buf.WriteByte(']')
}

func (g *Generator) writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	// Writes to a bytes.Buffer cannot fail
	if g.canonical {
		_ = codec.EscapeCanonical(s, buf)
	} else {
		_ = codec.Escape(s, buf)
	}
	buf.WriteByte('"')
}

// newline starts a new line indented for depth; compact output gets nothing
func (g *Generator) newline(buf *bytes.Buffer, depth int) {
	if !g.pretty {
		return
	}
	buf.WriteByte('\n')
	for i := 0; i < depth*indentWidth; i++ {
		buf.WriteByte(' ')
	}
}
