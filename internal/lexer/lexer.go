// Package lexer splits JSON text into positioned tokens, one token per call.
package lexer

import (
	"fmt"

	"github.com/mcncl/vjp/internal/errors"
)

// Kind classifies a token
type Kind int

const (
	Unknown Kind = iota
	BeginObject
	EndObject
	BeginArray
	EndArray
	ValueSep
	NameSep
	String
	Number
	Null
	False
	True
	EOF
)

var kindNames = [...]string{
	Unknown:     "unknown",
	BeginObject: "'{'",
	EndObject:   "'}'",
	BeginArray:  "'['",
	EndArray:    "']'",
	ValueSep:    "','",
	NameSep:     "':'",
	String:      "string",
	Number:      "number",
	Null:        "null",
	False:       "false",
	True:        "true",
	EOF:         "EOF",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a classified span of the input. For String tokens the span
// includes both quotes.
type Token struct {
	Kind   Kind
	Start  int
	Length int
}

// End returns the offset one past the last byte of the token
func (t Token) End() int {
	return t.Start + t.Length
}

// Text returns the token's bytes within data
func (t Token) Text(data string) string {
	return data[t.Start:t.End()]
}

const (
	literalNull  = "null"
	literalTrue  = "true"
	literalFalse = "false"
)

// Lex reads the token starting at or after pos, skipping leading
// whitespace. advance is the number of bytes consumed from pos, whitespace
// included. A character that starts no token yields a zero-length Unknown
// token at its offset; deciding what that means is up to the caller.
func Lex(data string, pos int) (tok Token, advance int, err error) {
	i := pos
	for i < len(data) && isWhitespace(data[i]) {
		i++
	}

	if i >= len(data) {
		return Token{Kind: EOF, Start: i}, i - pos, nil
	}

	switch c := data[i]; c {
	case '{':
		tok = Token{Kind: BeginObject, Start: i, Length: 1}
	case '}':
		tok = Token{Kind: EndObject, Start: i, Length: 1}
	case '[':
		tok = Token{Kind: BeginArray, Start: i, Length: 1}
	case ']':
		tok = Token{Kind: EndArray, Start: i, Length: 1}
	case ',':
		tok = Token{Kind: ValueSep, Start: i, Length: 1}
	case ':':
		tok = Token{Kind: NameSep, Start: i, Length: 1}
	case '"':
		tok, err = lexString(data, i)
	case 'n':
		tok, err = lexLiteral(data, i, literalNull, Null)
	case 't':
		tok, err = lexLiteral(data, i, literalTrue, True)
	case 'f':
		tok, err = lexLiteral(data, i, literalFalse, False)
	default:
		if c == '-' || isDigit(c) {
			tok, err = lexNumber(data, i)
		} else {
			tok = Token{Kind: Unknown, Start: i}
		}
	}
	if err != nil {
		return Token{}, 0, err
	}
	return tok, tok.End() - pos, nil
}

// Tokenize lexes data from the beginning until EOF. The EOF token is not
// included. Unknown characters are reported as UnknownToken.
func Tokenize(data string) ([]Token, error) {
	var tokens []Token
	pos := 0
	for {
		tok, advance, err := Lex(data, pos)
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case EOF:
			return tokens, nil
		case Unknown:
			return nil, errors.NewSyntaxError(errors.UnknownToken, tok.Start)
		}
		tokens = append(tokens, tok)
		pos += advance
	}
}

// lexString scans to the closing quote. Escapes are skipped in pairs and
// validated later by the codec.
func lexString(data string, start int) (Token, error) {
	i := start + 1
	for i < len(data) {
		switch data[i] {
		case '"':
			return Token{Kind: String, Start: start, Length: i - start + 1}, nil
		case '\\':
			i += 2
		default:
			i++
		}
	}
	return Token{}, errors.NewSyntaxError(errors.HangingStr, len(data))
}

func lexLiteral(data string, start int, literal string, kind Kind) (Token, error) {
	if len(data)-start < len(literal) || data[start:start+len(literal)] != literal {
		return Token{}, errors.NewSyntaxError(errors.UnknownToken, start)
	}
	return Token{Kind: kind, Start: start, Length: len(literal)}, nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
