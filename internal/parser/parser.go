package parser

import (
	"github.com/mcncl/vjp/internal/codec"
	"github.com/mcncl/vjp/internal/errors"
	"github.com/mcncl/vjp/internal/lexer"
	"github.com/mcncl/vjp/internal/models"
)

// DefaultMaxDepth is the nesting budget used by the CLI
const DefaultMaxDepth = 1024

// Parse parses exactly one JSON value from data. maxDepth is the number of
// nested object/array levels allowed; scalars need none.
//
// The first defect aborts parsing and is returned as *errors.SyntaxError
// with an absolute byte offset into data.
func Parse(data string, maxDepth int, opts ...ParseOption) (models.Value, error) {
	p := &parser{data: data}
	for _, opt := range opts {
		opt(&p.opts)
	}

	root, pos, err := p.parseValue(0, maxDepth)
	if err != nil {
		return models.Value{}, err
	}

	tok, _, err := lexer.Lex(data, pos)
	if err != nil {
		return models.Value{}, err
	}
	if tok.Kind != lexer.EOF {
		return models.Value{}, errors.NewSyntaxError(errors.MultipleValues, tok.Start)
	}
	return root, nil
}

type parser struct {
	data string
	opts parseOpts
}

// parseValue parses the value starting at or after pos and returns it with
// the offset just past it.
func (p *parser) parseValue(pos, depth int) (models.Value, int, error) {
	tok, advance, err := lexer.Lex(p.data, pos)
	if err != nil {
		return models.Value{}, 0, err
	}
	next := pos + advance

	switch tok.Kind {
	case lexer.Number:
		if p.opts.strictNumbers && hasLeadingZero(tok.Text(p.data)) {
			return models.Value{}, 0, errors.NewSyntaxError(errors.IncorrectNum, tok.Start)
		}
		return models.NumberValue(tok.Text(p.data)), next, nil
	case lexer.String:
		s, err := codec.Unescape(p.data, tok.Start+1, tok.Length-2)
		if err != nil {
			return models.Value{}, 0, err
		}
		return models.StringValue(s), next, nil
	case lexer.True:
		return models.BoolValue(true), next, nil
	case lexer.False:
		return models.BoolValue(false), next, nil
	case lexer.Null:
		return models.NullValue(), next, nil
	case lexer.BeginObject:
		return p.parseObject(tok.Start, depth)
	case lexer.BeginArray:
		return p.parseArray(tok.Start, depth)
	default:
		return models.Value{}, 0, errors.NewSyntaxError(errors.ExpValue, tok.Start)
	}
}

// parseObject parses the object whose '{' is at or after pos. Entering it
// spends one unit of depth.
func (p *parser) parseObject(pos, depth int) (models.Value, int, error) {
	open, advance, err := lexer.Lex(p.data, pos)
	if err != nil {
		return models.Value{}, 0, err
	}
	if open.Kind != lexer.BeginObject {
		return models.Value{}, 0, errors.NewSyntaxError(errors.ExpObj, open.Start)
	}
	if depth <= 0 {
		return models.Value{}, 0, errors.NewSyntaxError(errors.MaxDepth, open.Start)
	}
	pos += advance

	obj := models.NewObject()
	tok, advance, err := lexer.Lex(p.data, pos)
	if err != nil {
		return models.Value{}, 0, err
	}
	if tok.Kind == lexer.EndObject {
		return models.ObjectValue(obj), pos + advance, nil
	}

	for {
		var key string
		var value models.Value
		key, value, pos, err = p.parseMember(pos, depth-1)
		if err != nil {
			return models.Value{}, 0, err
		}
		obj.Set(key, value)

		tok, advance, err = lexer.Lex(p.data, pos)
		if err != nil {
			return models.Value{}, 0, err
		}
		pos += advance
		switch tok.Kind {
		case lexer.EndObject:
			return models.ObjectValue(obj), pos, nil
		case lexer.ValueSep:
		default:
			return models.Value{}, 0, errors.NewSyntaxError(errors.ExpComma, tok.Start)
		}
	}
}

// parseMember parses one `"key": value` pair of an object
func (p *parser) parseMember(pos, depth int) (string, models.Value, int, error) {
	keyTok, advance, err := lexer.Lex(p.data, pos)
	if err != nil {
		return "", models.Value{}, 0, err
	}
	if keyTok.Kind != lexer.String {
		return "", models.Value{}, 0, errors.NewSyntaxError(errors.ExpKey, keyTok.Start)
	}
	key, err := codec.Unescape(p.data, keyTok.Start+1, keyTok.Length-2)
	if err != nil {
		return "", models.Value{}, 0, err
	}
	pos += advance

	colon, advance, err := lexer.Lex(p.data, pos)
	if err != nil {
		return "", models.Value{}, 0, err
	}
	if colon.Kind != lexer.NameSep {
		return "", models.Value{}, 0, errors.NewSyntaxError(errors.ExpColon, colon.Start)
	}
	pos += advance

	value, pos, err := p.parseValue(pos, depth)
	if err != nil {
		return "", models.Value{}, 0, err
	}
	return key, value, pos, nil
}

// parseArray parses the array whose '[' is at or after pos. Entering it
// spends one unit of depth.
func (p *parser) parseArray(pos, depth int) (models.Value, int, error) {
	open, advance, err := lexer.Lex(p.data, pos)
	if err != nil {
		return models.Value{}, 0, err
	}
	if open.Kind != lexer.BeginArray {
		return models.Value{}, 0, errors.NewSyntaxError(errors.ExpArr, open.Start)
	}
	if depth <= 0 {
		return models.Value{}, 0, errors.NewSyntaxError(errors.MaxDepth, open.Start)
	}
	pos += advance

	elems := []models.Value{}
	tok, advance, err := lexer.Lex(p.data, pos)
	if err != nil {
		return models.Value{}, 0, err
	}
	if tok.Kind == lexer.EndArray {
		return models.ArrayValue(elems), pos + advance, nil
	}

	for {
		var elem models.Value
		elem, pos, err = p.parseValue(pos, depth-1)
		if err != nil {
			return models.Value{}, 0, err
		}
		elems = append(elems, elem)

		tok, advance, err = lexer.Lex(p.data, pos)
		if err != nil {
			return models.Value{}, 0, err
		}
		pos += advance
		switch tok.Kind {
		case lexer.EndArray:
			return models.ArrayValue(elems), pos, nil
		case lexer.ValueSep:
		default:
			return models.Value{}, 0, errors.NewSyntaxError(errors.ExpComma, tok.Start)
		}
	}
}

// hasLeadingZero reports whether a number literal has a superfluous leading
// zero, as in 012 or -00.5
func hasLeadingZero(literal string) bool {
	if len(literal) > 0 && literal[0] == '-' {
		literal = literal[1:]
	}
	return len(literal) > 1 && literal[0] == '0' && literal[1] >= '0' && literal[1] <= '9'
}
