package codec

import (
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/vjp/internal/errors"
)

// unescapeLiteral unescapes a full quoted literal, as the parser would
func unescapeLiteral(literal string) (string, error) {
	return Unescape(literal, 1, len(literal)-2)
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name     string
		literal  string
		expected string
	}{
		{name: "plain", literal: `"hello"`, expected: "hello"},
		{name: "empty", literal: `""`, expected: ""},
		{name: "short escapes", literal: `"\b\f\n\r\t"`, expected: "\b\f\n\r\t"},
		{name: "quote and backslash", literal: `"a\"b\\c"`, expected: `a"b\c`},
		{name: "solidus", literal: `"a\/b"`, expected: "a/b"},
		{name: "unknown escape passes through", literal: `"\q\z"`, expected: "qz"},
		{name: "basic multilingual plane", literal: `"\u00e9\u4E2D"`, expected: "é中"},
		{name: "nul", literal: `"\u0000"`, expected: "\x00"},
		{name: "surrogate pair", literal: `"\ud83d\ude00"`, expected: "😀"},
		{name: "surrogate pair between text", literal: `"a\uD83D\uDE00b"`, expected: "a😀b"},
		{name: "raw multibyte", literal: `"héllo"`, expected: "héllo"},
		{name: "escaped raw control", literal: "\"a\\\nb\"", expected: "a\nb"},
		{name: "invalid pair", literal: `"\ud83d\u0041"`, expected: "\uFFFDA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := unescapeLiteral(tt.literal)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestUnescape_SurrogatePairIsTwoUTF16Units(t *testing.T) {
	result, err := unescapeLiteral(`"\ud83d\ude00"`)
	require.NoError(t, err)

	runes := []rune(result)
	require.Len(t, runes, 1)
	assert.Equal(t, rune(0x1F600), runes[0])
}

func TestUnescape_Errors(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		kind    errors.Kind
		offset  int
	}{
		{name: "raw control byte", literal: "\"ab\x01\"", kind: errors.UnescapedControl, offset: 3},
		{name: "raw newline after escape", literal: "\"\\n\n\"", kind: errors.UnescapedControl, offset: 3},
		{name: "hex cut short", literal: `"\u12"`, kind: errors.HangingHex, offset: 1},
		{name: "hex not hex", literal: `"x\u12G4"`, kind: errors.NotHex, offset: 2},
		{name: "lone high surrogate", literal: `"\ud83d"`, kind: errors.HangingSurrogatePair, offset: 1},
		{name: "high surrogate then text", literal: `"\ud83dabcdef"`, kind: errors.HangingSurrogatePair, offset: 1},
		{name: "low half cut short", literal: `"\ud83d\ude0"`, kind: errors.HangingHex, offset: 7},
		{name: "low half not hex", literal: `"\ud83d\udeXX"`, kind: errors.NotHex, offset: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unescapeLiteral(tt.literal)
			var synErr *errors.SyntaxError
			require.True(t, stderrors.As(err, &synErr), "expected *SyntaxError, got %v", err)
			assert.Equal(t, tt.kind, synErr.Kind)
			assert.Equal(t, tt.offset, synErr.Offset)
		})
	}
}

func TestUnescape_AbsoluteOffsets(t *testing.T) {
	data := `{"key": "va` + "\x02" + `"}`
	_, err := Unescape(data, 9, 3)
	var synErr *errors.SyntaxError
	require.True(t, stderrors.As(err, &synErr))
	assert.Equal(t, errors.UnescapedControl, synErr.Kind)
	assert.Equal(t, 11, synErr.Offset)
}

func TestParse4Hex(t *testing.T) {
	code, err := Parse4Hex("abcd", 0, 4)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xABCD), code)

	code, err = Parse4Hex("x00Ff", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x00FF), code)

	_, err = Parse4Hex("123", 0, 3)
	assert.ErrorIs(t, err, &errors.SyntaxError{Kind: errors.HangingHex})

	_, err = Parse4Hex("12345", 0, 3)
	assert.ErrorIs(t, err, &errors.SyntaxError{Kind: errors.HangingHex})

	_, err = Parse4Hex("12g4", 0, 4)
	assert.ErrorIs(t, err, &errors.SyntaxError{Kind: errors.NotHex})
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "hello", expected: "hello"},
		{name: "quote", input: `say "hi"`, expected: `say \"hi\"`},
		{name: "backslash", input: `a\b`, expected: `a\\b`},
		{name: "control characters get a bare backslash", input: "a\nb\tc", expected: "a\\\nb\\\tc"},
		{name: "unicode untouched", input: "é😀", expected: "é😀"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			require.NoError(t, Escape(tt.input, &b))
			assert.Equal(t, tt.expected, b.String())
		})
	}
}

func TestEscapeCanonical(t *testing.T) {
	var b strings.Builder
	require.NoError(t, EscapeCanonical("\"\\\b\f\n\r\t\x01\x1fé", &b))
	assert.Equal(t, `\"\\\b\f\n\r\t\u0001\u001fé`, b.String())
}

func TestEscape_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`quotes " and \ backslashes`,
		"every control \x00\x01\x08\x0a\x0d\x1f byte",
		"unicode é 中 😀",
	}

	for _, input := range inputs {
		for name, escape := range map[string]func(string, io.StringWriter) error{
			"bare":      Escape,
			"canonical": EscapeCanonical,
		} {
			t.Run(name, func(t *testing.T) {
				var b strings.Builder
				b.WriteByte('"')
				require.NoError(t, escape(input, &b))
				b.WriteByte('"')

				result, err := unescapeLiteral(b.String())
				require.NoError(t, err)
				assert.Equal(t, input, result)
			})
		}
	}
}
