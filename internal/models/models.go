// Package models holds the in-memory JSON value tree.
package models

import (
	"fmt"
)

// Kind identifies which variant of a Value is populated
type Kind int

const (
	NullKind Kind = iota
	StringKind
	NumberKind
	BoolKind
	ObjectKind
	ArrayKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case StringKind:
		return "string"
	case NumberKind:
		return "number"
	case BoolKind:
		return "boolean"
	case ObjectKind:
		return "object"
	case ArrayKind:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a JSON value. Exactly one variant is populated, selected by
// Kind. The zero Value is null.
//
// Values are built by the parser or by the constructors below and are not
// modified afterwards, except through the *Object of an object value.
type Value struct {
	kind Kind
	// text holds the string contents or the number literal
	text string
	b    bool
	obj  *Object
	arr  []Value
}

// NullValue returns the null value
func NullValue() Value {
	return Value{}
}

// StringValue returns a string value
func StringValue(s string) Value {
	return Value{kind: StringKind, text: s}
}

// StringPtr returns a string value, or null when s is nil
func StringPtr(s *string) Value {
	if s == nil {
		return NullValue()
	}
	return StringValue(*s)
}

// BoolValue returns a boolean value
func BoolValue(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

// NumberValue returns a number value holding literal verbatim. literal must
// already be a valid JSON number; use ParseNumber for untrusted text.
func NumberValue(literal string) Value {
	return Value{kind: NumberKind, text: literal}
}

// ObjectValue returns an object value backed by o, or null when o is nil
func ObjectValue(o *Object) Value {
	if o == nil {
		return NullValue()
	}
	return Value{kind: ObjectKind, obj: o}
}

// ArrayValue returns an array value holding elems, or null when elems is
// nil. A non-nil empty slice is an empty array.
func ArrayValue(elems []Value) Value {
	if elems == nil {
		return NullValue()
	}
	return Value{kind: ArrayKind, arr: elems}
}

// Kind returns the populated variant
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// AsString returns the string contents if v is a string
func (v Value) AsString() (string, bool) {
	return v.text, v.kind == StringKind
}

// AsNumber returns the number literal if v is a number
func (v Value) AsNumber() (string, bool) {
	return v.text, v.kind == NumberKind
}

// AsBool returns the boolean if v is a boolean
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

// AsObject returns the object if v is an object
func (v Value) AsObject() (*Object, bool) {
	return v.obj, v.kind == ObjectKind
}

// AsArray returns the elements if v is an array
func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == ArrayKind
}

// GoString renders v for %#v and test failure output
func (v Value) GoString() string {
	switch v.kind {
	case StringKind:
		return fmt.Sprintf("String(%q)", v.text)
	case NumberKind:
		return fmt.Sprintf("Number(%s)", v.text)
	case BoolKind:
		return fmt.Sprintf("Bool(%t)", v.b)
	case ObjectKind:
		return fmt.Sprintf("Object%#v", v.obj)
	case ArrayKind:
		return fmt.Sprintf("Array%#v", v.arr)
	default:
		return "Null"
	}
}

// Equal reports whether a and b are structurally equal. Numbers compare by
// literal text and objects compare key order as well as contents.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case StringKind, NumberKind:
		return a.text == b.text
	case BoolKind:
		return a.b == b.b
	case ObjectKind:
		return a.obj.Equal(b.obj)
	case ArrayKind:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
