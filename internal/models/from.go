package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mcncl/vjp/internal/errors"
)

// FromGo builds a Value from host data: nil, string, *string, bool, the
// integer and float kinds, json.Number, map[string]any, []any, *Object and
// Value. Map keys are sorted since Go maps have no order.
func FromGo(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return x, nil
	case *Object:
		return ObjectValue(x), nil
	case string:
		return StringValue(x), nil
	case *string:
		return StringPtr(x), nil
	case bool:
		return BoolValue(x), nil
	case int:
		return IntValue(int64(x)), nil
	case int8:
		return IntValue(int64(x)), nil
	case int16:
		return IntValue(int64(x)), nil
	case int32:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint:
		return UintValue(uint64(x)), nil
	case uint8:
		return UintValue(uint64(x)), nil
	case uint16:
		return UintValue(uint64(x)), nil
	case uint32:
		return UintValue(uint64(x)), nil
	case uint64:
		return UintValue(x), nil
	case float32:
		return FloatValue(float64(x))
	case float64:
		return FloatValue(x)
	case json.Number:
		return ParseNumber(string(x))
	case map[string]any:
		if x == nil {
			return NullValue(), nil
		}
		keys := make([]string, 0, len(x))
		for key := range x {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		obj := NewObject()
		for _, key := range keys {
			elem, err := FromGo(x[key])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			obj.Set(key, elem)
		}
		return ObjectValue(obj), nil
	case []any:
		if x == nil {
			return NullValue(), nil
		}
		elems := make([]Value, len(x))
		for i, item := range x {
			elem, err := FromGo(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = elem
		}
		return ArrayValue(elems), nil
	default:
		return Value{}, errors.NewGenerateError(fmt.Sprintf("unsupported type %T", v), nil)
	}
}
