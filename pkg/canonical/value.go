package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"reflect"
	"sort"
	"strconv"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is an immutable structured record value. The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	number  string
	text    string
	items   []Value
	fields  map[string]Value
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool wraps a boolean.
func Bool(value bool) Value {
	return Value{kind: KindBool, boolean: value}
}

// String wraps a string. Invalid UTF-8 is rejected at encode time.
func String(value string) Value {
	return Value{kind: KindString, text: value}
}

// Int wraps a signed integer.
func Int(value int64) Value {
	return Value{kind: KindNumber, number: strconv.FormatInt(value, 10)}
}

// Uint wraps an unsigned integer.
func Uint(value uint64) Value {
	return Value{kind: KindNumber, number: strconv.FormatUint(value, 10)}
}

// BigInt wraps an arbitrary precision integer.
func BigInt(value *big.Int) Value {
	if value == nil {
		return Null()
	}
	return Value{kind: KindNumber, number: value.String()}
}

// Float wraps a float64. NaN and infinities have no canonical form.
func Float(value float64) (Value, error) {
	formatted, err := formatFloat(value, 64)
	if err != nil {
		return Value{}, &EncodingError{Path: rootPath, Reason: err.Error()}
	}
	return Value{kind: KindNumber, number: formatted}, nil
}

// Number parses a JSON number literal into its canonical form.
func Number(literal string) (Value, error) {
	formatted, err := canonicalNumberLiteral(literal)
	if err != nil {
		return Value{}, &EncodingError{Path: rootPath, Reason: err.Error()}
	}
	return Value{kind: KindNumber, number: formatted}, nil
}

// Sequence builds an ordered list of values.
func Sequence(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{kind: KindSequence, items: copied}
}

// Mapping builds a mapping from field names to values.
func Mapping(fields map[string]Value) Value {
	copied := make(map[string]Value, len(fields))
	for key, item := range fields {
		copied[key] = item
	}
	return Value{kind: KindMapping, fields: copied}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the string payload of a string value.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindString
}

// NumberText returns the canonical textual form of a number value.
func (v Value) NumberText() (string, bool) {
	return v.number, v.kind == KindNumber
}

// Boolean returns the payload of a bool value.
func (v Value) Boolean() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// Items returns a copy of a sequence's elements.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	copied := make([]Value, len(v.items))
	copy(copied, v.items)
	return copied
}

// Field returns a mapping field.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	item, ok := v.fields[key]
	return item, ok
}

// Keys returns a mapping's field names in canonical order.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for key := range v.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Parse decodes JSON text into a Value, keeping numbers exact.
func Parse(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var parsed any
	if err := decoder.Decode(&parsed); err != nil {
		return Value{}, fmt.Errorf("failed to decode JSON input: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("failed to decode JSON input: trailing data after value")
	}

	return FromAny(parsed)
}

// FromAny converts decoded JSON or native Go data into a Value.
func FromAny(input any) (Value, error) {
	converter := converter{active: map[uintptr]struct{}{}}
	return converter.convert(input, rootPath)
}

const rootPath = "$"

type converter struct {
	active map[uintptr]struct{}
}

func (c converter) convert(input any, path string) (Value, error) {
	switch typed := input.(type) {
	case nil:
		return Null(), nil
	case Value:
		return typed, nil
	case *Value:
		if typed == nil {
			return Null(), nil
		}
		return *typed, nil
	case bool:
		return Bool(typed), nil
	case string:
		return String(typed), nil
	case json.Number:
		formatted, err := canonicalNumberLiteral(typed.String())
		if err != nil {
			return Value{}, newEncodingError(path, "%v", err)
		}
		return Value{kind: KindNumber, number: formatted}, nil
	case int:
		return Int(int64(typed)), nil
	case int8:
		return Int(int64(typed)), nil
	case int16:
		return Int(int64(typed)), nil
	case int32:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case uint:
		return Uint(uint64(typed)), nil
	case uint8:
		return Uint(uint64(typed)), nil
	case uint16:
		return Uint(uint64(typed)), nil
	case uint32:
		return Uint(uint64(typed)), nil
	case uint64:
		return Uint(typed), nil
	case *big.Int:
		return BigInt(typed), nil
	case float32:
		formatted, err := formatFloat(float64(typed), 32)
		if err != nil {
			return Value{}, newEncodingError(path, "%v", err)
		}
		return Value{kind: KindNumber, number: formatted}, nil
	case float64:
		formatted, err := formatFloat(typed, 64)
		if err != nil {
			return Value{}, newEncodingError(path, "%v", err)
		}
		return Value{kind: KindNumber, number: formatted}, nil
	case []Value:
		return Sequence(typed...), nil
	case map[string]Value:
		return Mapping(typed), nil
	case []any:
		return c.convertSlice(typed, path)
	case map[string]any:
		return c.convertMap(typed, path)
	default:
		return c.convertReflected(reflect.ValueOf(input), path)
	}
}

func (c converter) convertSlice(items []any, path string) (Value, error) {
	if items == nil {
		return Null(), nil
	}
	if len(items) > 0 {
		pointer := reflect.ValueOf(items).Pointer()
		if _, seen := c.active[pointer]; seen {
			return Value{}, newEncodingError(path, "cyclic structure")
		}
		c.active[pointer] = struct{}{}
		defer delete(c.active, pointer)
	}

	result := make([]Value, 0, len(items))
	for index, item := range items {
		converted, err := c.convert(item, fmt.Sprintf("%s[%d]", path, index))
		if err != nil {
			return Value{}, err
		}
		result = append(result, converted)
	}
	return Value{kind: KindSequence, items: result}, nil
}

func (c converter) convertMap(fields map[string]any, path string) (Value, error) {
	if fields == nil {
		return Null(), nil
	}

	pointer := reflect.ValueOf(fields).Pointer()
	if _, seen := c.active[pointer]; seen {
		return Value{}, newEncodingError(path, "cyclic structure")
	}
	c.active[pointer] = struct{}{}
	defer delete(c.active, pointer)

	result := make(map[string]Value, len(fields))
	for key, item := range fields {
		converted, err := c.convert(item, fieldPath(path, key))
		if err != nil {
			return Value{}, err
		}
		result[key] = converted
	}
	return Value{kind: KindMapping, fields: result}, nil
}

func fieldPath(path string, key string) string {
	return fmt.Sprintf("%s[%s]", path, strconv.Quote(key))
}
