package models

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/mcncl/vjp/internal/errors"
	"github.com/mcncl/vjp/internal/lexer"
)

// ParseNumber validates literal against the JSON number grammar and returns
// it as a number value. Text that is not exactly one number literal is
// IncorrectNum.
func ParseNumber(literal string) (Value, error) {
	tok, _, err := lexer.Lex(literal, 0)
	if err != nil {
		return Value{}, err
	}
	if tok.Kind != lexer.Number || tok.Start != 0 {
		return Value{}, errors.NewSyntaxError(errors.IncorrectNum, 0)
	}
	if tok.Length != len(literal) {
		return Value{}, errors.NewSyntaxError(errors.IncorrectNum, tok.End())
	}
	return NumberValue(literal), nil
}

// IntValue returns a number value for n
func IntValue(n int64) Value {
	return NumberValue(strconv.FormatInt(n, 10))
}

// UintValue returns a number value for n
func UintValue(n uint64) Value {
	return NumberValue(strconv.FormatUint(n, 10))
}

// FloatValue returns a number value for f in its shortest round-trip form.
// NaN and infinities have no JSON representation.
func FloatValue(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, errors.NewGenerateError(fmt.Sprintf("%v is not representable as a JSON number", f), nil)
	}
	return NumberValue(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// Int64 converts a number value to int64. Literals with a fraction or
// exponent, or outside the int64 range, fail.
func (v Value) Int64() (int64, error) {
	if v.kind != NumberKind {
		return 0, fmt.Errorf("cannot convert %s to int64", v.kind)
	}
	return strconv.ParseInt(v.text, 10, 64)
}

// Float64 converts a number value to the nearest float64
func (v Value) Float64() (float64, error) {
	if v.kind != NumberKind {
		return 0, fmt.Errorf("cannot convert %s to float64", v.kind)
	}
	return strconv.ParseFloat(v.text, 64)
}

// BigFloat converts a number value to a big.Float with prec bits of
// mantissa, for literals that do not fit a float64
func (v Value) BigFloat(prec uint) (*big.Float, error) {
	if v.kind != NumberKind {
		return nil, fmt.Errorf("cannot convert %s to big.Float", v.kind)
	}
	f, _, err := big.ParseFloat(v.text, 10, prec, big.ToNearestEven)
	return f, err
}
