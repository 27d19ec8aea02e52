// Package codec escapes and unescapes the contents of JSON string literals.
package codec

import (
	stderrors "errors"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/mcncl/vjp/internal/errors"
)

// Unescape decodes the interior of a string literal, data[start:start+length],
// excluding the quotes. Errors carry absolute offsets into data: the control
// byte for UnescapedControl, the backslash of the offending escape otherwise.
func Unescape(data string, start, length int) (string, error) {
	end := start + length
	interior := data[start:end]
	if strings.IndexByte(interior, '\\') < 0 {
		if i := indexControl(interior); i >= 0 {
			return "", errors.NewSyntaxError(errors.UnescapedControl, start+i)
		}
		return interior, nil
	}

	var b strings.Builder
	b.Grow(length)
	for i := start; i < end; i++ {
		c := data[i]
		if c != '\\' {
			if c < 0x20 {
				return "", errors.NewSyntaxError(errors.UnescapedControl, i)
			}
			b.WriteByte(c)
			continue
		}

		if i+1 >= end {
			return "", errors.NewSyntaxError(errors.HangingStr, end)
		}
		switch n := data[i+1]; n {
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			consumed, err := unescapeUnicode(&b, data, i, end)
			if err != nil {
				return "", err
			}
			i += consumed - 1
			continue
		default:
			b.WriteByte(n)
		}
		i++
	}
	return b.String(), nil
}

// unescapeUnicode decodes the \uXXXX escape at data[i] and, for a surrogate,
// the \uYYYY escape that must follow it. It returns the number of bytes
// consumed.
func unescapeUnicode(b *strings.Builder, data string, i, end int) (int, error) {
	code, err := Parse4Hex(data, i+2, end)
	if err != nil {
		return 0, rebase(err, i)
	}
	if !utf16.IsSurrogate(rune(code)) {
		b.WriteRune(rune(code))
		return 6, nil
	}

	low := i + 6
	if low+1 >= end || data[low] != '\\' || data[low+1] != 'u' {
		return 0, errors.NewSyntaxError(errors.HangingSurrogatePair, i)
	}
	lowCode, err := Parse4Hex(data, low+2, end)
	if err != nil {
		return 0, rebase(err, low)
	}

	if r := utf16.DecodeRune(rune(code), rune(lowCode)); r != utf8.RuneError {
		b.WriteRune(r)
	} else {
		b.WriteRune(utf8.RuneError)
		b.WriteRune(rune(lowCode))
	}
	return 12, nil
}

// Parse4Hex reads exactly four hexadecimal digits at data[pos:], not
// reading at or beyond end. Errors carry pos as their offset.
func Parse4Hex(data string, pos, end int) (uint16, error) {
	if end-pos < 4 {
		return 0, errors.NewSyntaxError(errors.HangingHex, pos)
	}
	var code uint16
	for _, c := range []byte(data[pos : pos+4]) {
		var n byte
		switch {
		case c >= '0' && c <= '9':
			n = c - '0'
		case c >= 'a' && c <= 'f':
			n = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			n = c - 'A' + 10
		default:
			return 0, errors.NewSyntaxError(errors.NotHex, pos)
		}
		code = code<<4 | uint16(n)
	}
	return code, nil
}

// rebase moves a Parse4Hex error to the backslash of its escape
func rebase(err error, offset int) error {
	var synErr *errors.SyntaxError
	if stderrors.As(err, &synErr) {
		return errors.NewSyntaxError(synErr.Kind, offset)
	}
	return err
}

func indexControl(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 {
			return i
		}
	}
	return -1
}

// Escape writes s with a bare backslash before every '"', '\' and control
// character. Control characters are not rewritten to their two-character
// forms; Unescape reads them back unchanged.
func Escape(s string, w io.StringWriter) error {
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '"' && c != '\\' && c >= 0x20 {
			continue
		}
		if _, err := w.WriteString(s[last:i]); err != nil {
			return err
		}
		if _, err := w.WriteString(`\`); err != nil {
			return err
		}
		last = i
	}
	_, err := w.WriteString(s[last:])
	return err
}

const hexDigits = "0123456789abcdef"

// EscapeCanonical writes s using the short escapes \" \\ \b \f \n \r \t and
// \u00XX for the remaining control characters.
func EscapeCanonical(s string, w io.StringWriter) error {
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		var esc string
		switch c {
		case '"':
			esc = `\"`
		case '\\':
			esc = `\\`
		case '\b':
			esc = `\b`
		case '\f':
			esc = `\f`
		case '\n':
			esc = `\n`
		case '\r':
			esc = `\r`
		case '\t':
			esc = `\t`
		default:
			if c >= 0x20 {
				continue
			}
			esc = `\u00` + string([]byte{hexDigits[c>>4], hexDigits[c&0xF]})
		}
		if _, err := w.WriteString(s[last:i]); err != nil {
			return err
		}
		if _, err := w.WriteString(esc); err != nil {
			return err
		}
		last = i + 1
	}
	_, err := w.WriteString(s[last:])
	return err
}
