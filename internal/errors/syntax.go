package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind identifies the class of a JSON syntax error
type Kind int

const (
	UnknownToken Kind = iota + 1
	NaN
	HangingStr
	HangingNum
	HangingHex
	HangingSurrogatePair
	ExpObj
	ExpKey
	ExpColon
	ExpValue
	ExpComma
	ExpArr
	IncorrectNum
	MultipleValues
	MaxDepth
	NotHex
	UnescapedControl
)

var kindNames = map[Kind]string{
	UnknownToken:         "UnknownToken",
	NaN:                  "NaN",
	HangingStr:           "HangingStr",
	HangingNum:           "HangingNum",
	HangingHex:           "HangingHex",
	HangingSurrogatePair: "HangingSurrogatePair",
	ExpObj:               "ExpObj",
	ExpKey:               "ExpKey",
	ExpColon:             "ExpColon",
	ExpValue:             "ExpValue",
	ExpComma:             "ExpComma",
	ExpArr:               "ExpArr",
	IncorrectNum:         "IncorrectNum",
	MultipleValues:       "MultipleValues",
	MaxDepth:             "MaxDepth",
	NotHex:               "NotHex",
	UnescapedControl:     "UnescapedControl",
}

// String returns the canonical name of the kind, e.g. "ExpComma"
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SyntaxError reports the first defect found in a JSON document.
// Offset is an absolute byte offset into the parsed text.
type SyntaxError struct {
	Kind   Kind
	Offset int
}

// NewSyntaxError creates a SyntaxError of the given kind at offset
func NewSyntaxError(kind Kind, offset int) *SyntaxError {
	return &SyntaxError{Kind: kind, Offset: offset}
}

// Error implements error interface
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}

// Is matches ErrInvalidJSON, or another *SyntaxError of the same Kind
// regardless of offset
func (e *SyntaxError) Is(target error) bool {
	if target == ErrInvalidJSON {
		return true
	}
	t, ok := target.(*SyntaxError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Report renders the error as "<Kind>: <line>:<column>" against the text it
// was produced from.
func (e *SyntaxError) Report(text string) string {
	line, col := Locate(text, e.Offset)
	return fmt.Sprintf("%s: %d:%d", e.Kind, line, col)
}

// FriendlyMessage describes the error without needing the source text
func (e *SyntaxError) FriendlyMessage() string {
	return fmt.Sprintf("JSON syntax error: %s at offset %d", e.Kind, e.Offset)
}

// Locate converts a byte offset into a 1-based line and column. Columns are
// counted in runes. Offsets past the end of text are clamped to len(text).
func Locate(text string, offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	prefix := text[:offset]
	line = strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	column = utf8.RuneCountInString(prefix[lineStart:]) + 1
	return line, column
}
