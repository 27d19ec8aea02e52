package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/vjp/internal/models"
	"github.com/mcncl/vjp/internal/parser"
)

func object(kv ...any) models.Value {
	o := models.NewObject()
	for i := 0; i < len(kv); i += 2 {
		o.Set(kv[i].(string), kv[i+1].(models.Value))
	}
	return models.ObjectValue(o)
}

func TestGenerate_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		value    models.Value
		expected string
	}{
		{name: "null", value: models.NullValue(), expected: "null"},
		{name: "zero value", value: models.Value{}, expected: "null"},
		{name: "true", value: models.BoolValue(true), expected: "true"},
		{name: "false", value: models.BoolValue(false), expected: "false"},
		{name: "number literal kept", value: models.NumberValue("1.50E+10"), expected: "1.50E+10"},
		{name: "string", value: models.StringValue("hello"), expected: `"hello"`},
		{name: "quote and backslash", value: models.StringValue(`a"b\c`), expected: `"a\"b\\c"`},
		{name: "non-ascii passes through", value: models.StringValue("é😀"), expected: `"é😀"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.value))
			assert.Equal(t, tt.expected, GeneratePretty(tt.value))
		})
	}
}

func TestGenerate_Compact(t *testing.T) {
	value := object(
		"a", models.NumberValue("1"),
		"b", models.ArrayValue([]models.Value{models.BoolValue(true), models.NullValue()}),
		"c", object(),
		"d", models.ArrayValue([]models.Value{}),
	)

	assert.Equal(t, `{"a":1,"b":[true,null],"c":{},"d":[]}`, Generate(value))
}

func TestGenerate_KeepsInsertionOrder(t *testing.T) {
	value := object("z", models.NumberValue("1"), "a", models.NumberValue("2"), "m", models.NumberValue("3"))
	assert.Equal(t, `{"z":1,"a":2,"m":3}`, Generate(value))
}

func TestGenerate_EscapesKeys(t *testing.T) {
	value := object(`k"1`, models.NullValue())
	assert.Equal(t, `{"k\"1":null}`, Generate(value))
}

func TestGeneratePretty(t *testing.T) {
	value := object(
		"name", models.StringValue("vjp"),
		"tags", models.ArrayValue([]models.Value{models.StringValue("json"), models.NumberValue("2")}),
		"empty", object(),
		"none", models.ArrayValue([]models.Value{}),
		"nested", object("ok", models.BoolValue(true)),
	)

	expected := `{
    "name": "vjp",
    "tags": [
        "json",
        2
    ],
    "empty": {},
    "none": [],
    "nested": {
        "ok": true
    }
}`
	assert.Equal(t, expected, GeneratePretty(value))
}

func TestGenerate_ControlCharacters(t *testing.T) {
	value := models.StringValue("a\nb\x01")

	assert.Equal(t, "\"a\\\nb\\\x01\"", Generate(value))
	assert.Equal(t, `"a\nb\u0001"`, NewGenerator(CanonicalEscapes(true)).Generate(value))
}

func TestGenerate_RoundTripValue(t *testing.T) {
	values := []models.Value{
		object(
			"text", models.StringValue("line\nbreak \"quoted\" \\ tab\t"),
			"ctl", models.StringValue("\x00\x1f"),
			"list", models.ArrayValue([]models.Value{
				models.NumberValue("-0.5e-3"),
				object(),
				models.ArrayValue([]models.Value{}),
			}),
		),
		models.StringValue("😀"),
		models.NumberValue("123456789012345678901234567890"),
	}

	generators := map[string]*Generator{
		"compact":   NewGenerator(),
		"pretty":    NewGenerator(Pretty(true)),
		"canonical": NewGenerator(CanonicalEscapes(true)),
		"both":      NewGenerator(Pretty(true), CanonicalEscapes(true)),
	}

	for name, g := range generators {
		t.Run(name, func(t *testing.T) {
			for _, v := range values {
				text := g.Generate(v)
				parsed, err := parser.Parse(text, parser.DefaultMaxDepth)
				require.NoError(t, err, "generated %q", text)
				assert.True(t, models.Equal(v, parsed), "round trip of %q produced %#v", text, parsed)
			}
		})
	}
}

func TestGenerate_RoundTripText(t *testing.T) {
	inputs := []string{
		`{"a":1,"b":[true,false,null],"c":{"d":"e"}}`,
		`[]`,
		`{}`,
		`[1.5e10,-0,"x",{"y":[[]]}]`,
		`"\"quoted\""`,
	}

	for _, input := range inputs {
		v, err := parser.Parse(input, parser.DefaultMaxDepth)
		require.NoError(t, err)
		assert.Equal(t, input, Generate(v))
	}
}
