package lexer

import (
	"github.com/mcncl/vjp/internal/errors"
)

type numState int

const (
	stateIntMinus numState = iota
	stateInt
	stateDecimalPoint
	stateFrac
	stateE
	stateExpSign
	stateExp
)

type numClass int

const (
	classOther numClass = iota
	classDigit
	classPoint
	classExp
	classSign
)

func classify(c byte) numClass {
	switch {
	case isDigit(c):
		return classDigit
	case c == '.':
		return classPoint
	case c == 'e' || c == 'E':
		return classExp
	case c == '+' || c == '-':
		return classSign
	default:
		return classOther
	}
}

// transitions lists the allowed moves of the number state machine. A class
// missing from a state's row is a NaN.
var transitions = map[numState]map[numClass]numState{
	stateIntMinus:     {classDigit: stateInt},
	stateInt:          {classDigit: stateInt, classPoint: stateDecimalPoint, classExp: stateE},
	stateDecimalPoint: {classDigit: stateFrac},
	stateFrac:         {classDigit: stateFrac, classExp: stateE},
	stateE:            {classSign: stateExpSign, classDigit: stateExp},
	stateExpSign:      {classDigit: stateExp},
	stateExp:          {classDigit: stateExp},
}

// complete reports whether a number may end in state s
func (s numState) complete() bool {
	return s == stateInt || s == stateFrac || s == stateExp
}

// lexNumber validates a number literal starting at start, which holds '-'
// or a digit. The literal ends at the first character outside the number
// alphabet or at end of input.
func lexNumber(data string, start int) (Token, error) {
	state := stateInt
	if data[start] == '-' {
		state = stateIntMinus
	}

	i := start + 1
	for ; i < len(data); i++ {
		class := classify(data[i])
		if class == classOther {
			break
		}
		next, ok := transitions[state][class]
		if !ok {
			return Token{}, errors.NewSyntaxError(errors.NaN, i)
		}
		state = next
	}

	if !state.complete() {
		if i == len(data) && state == stateIntMinus {
			return Token{}, errors.NewSyntaxError(errors.HangingNum, i)
		}
		return Token{}, errors.NewSyntaxError(errors.NaN, i)
	}
	return Token{Kind: Number, Start: start, Length: i - start}, nil
}
