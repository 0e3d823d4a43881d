package canonical

import (
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	valueType         = reflect.TypeOf(Value{})
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// convertReflected walks typed Go containers directly so that float kinds
// keep their float form. Going through json.Marshal would print 1.0 as 1.
func (c converter) convertReflected(value reflect.Value, path string) (Value, error) {
	if !value.IsValid() {
		return Null(), nil
	}
	if value.Type() == valueType && value.CanInterface() {
		return value.Interface().(Value), nil
	}

	switch value.Kind() {
	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return Null(), nil
		}
	}

	if converted, ok, err := c.convertMarshaler(value, path); ok {
		return converted, err
	}

	switch value.Kind() {
	case reflect.Bool:
		return Bool(value.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(value.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(value.Uint()), nil
	case reflect.Float32, reflect.Float64:
		formatted, err := formatFloat(value.Float(), value.Type().Bits())
		if err != nil {
			return Value{}, newEncodingError(path, "%v", err)
		}
		return Value{kind: KindNumber, number: formatted}, nil
	case reflect.String:
		return String(value.String()), nil
	case reflect.Interface:
		return c.convertChild(value.Elem(), path)
	case reflect.Pointer:
		pointer := value.Pointer()
		if _, seen := c.active[pointer]; seen {
			return Value{}, newEncodingError(path, "cyclic structure")
		}
		c.active[pointer] = struct{}{}
		defer delete(c.active, pointer)
		return c.convertChild(value.Elem(), path)
	case reflect.Map:
		return c.convertReflectedMap(value, path)
	case reflect.Slice:
		if value.IsNil() {
			return Null(), nil
		}
		if value.Type().Elem().Kind() == reflect.Uint8 {
			return String(base64.StdEncoding.EncodeToString(value.Bytes())), nil
		}
		if value.Len() > 0 {
			pointer := value.Pointer()
			if _, seen := c.active[pointer]; seen {
				return Value{}, newEncodingError(path, "cyclic structure")
			}
			c.active[pointer] = struct{}{}
			defer delete(c.active, pointer)
		}
		return c.convertReflectedItems(value, path)
	case reflect.Array:
		return c.convertReflectedItems(value, path)
	case reflect.Struct:
		return c.convertStruct(value, path)
	default:
		return Value{}, newEncodingError(path, "unsupported value of type %s", value.Type())
	}
}

func (c converter) convertChild(child reflect.Value, path string) (Value, error) {
	if child.IsValid() && child.CanInterface() && !child.CanAddr() {
		return c.convert(child.Interface(), path)
	}
	return c.convertReflected(child, path)
}

func (c converter) convertMarshaler(value reflect.Value, path string) (Value, bool, error) {
	if !value.CanInterface() {
		return Value{}, false, nil
	}

	target := value
	if value.Kind() != reflect.Pointer && value.CanAddr() &&
		!value.Type().Implements(jsonMarshalerType) && !value.Type().Implements(textMarshalerType) {
		target = value.Addr()
	}

	switch marshaler := target.Interface().(type) {
	case json.Marshaler:
		payload, err := marshaler.MarshalJSON()
		if err != nil {
			return Value{}, true, newEncodingError(path, "failed to marshal %s: %v", value.Type(), err)
		}
		parsed, err := Parse(payload)
		if err != nil {
			return Value{}, true, newEncodingError(path, "failed to normalize %s: %v", value.Type(), err)
		}
		return parsed, true, nil
	case encoding.TextMarshaler:
		text, err := marshaler.MarshalText()
		if err != nil {
			return Value{}, true, newEncodingError(path, "failed to marshal %s: %v", value.Type(), err)
		}
		return String(string(text)), true, nil
	}
	return Value{}, false, nil
}

func (c converter) convertReflectedItems(value reflect.Value, path string) (Value, error) {
	result := make([]Value, 0, value.Len())
	for index := 0; index < value.Len(); index++ {
		converted, err := c.convertChild(value.Index(index), fmt.Sprintf("%s[%d]", path, index))
		if err != nil {
			return Value{}, err
		}
		result = append(result, converted)
	}
	return Value{kind: KindSequence, items: result}, nil
}

func (c converter) convertReflectedMap(value reflect.Value, path string) (Value, error) {
	if value.IsNil() {
		return Null(), nil
	}

	pointer := value.Pointer()
	if _, seen := c.active[pointer]; seen {
		return Value{}, newEncodingError(path, "cyclic structure")
	}
	c.active[pointer] = struct{}{}
	defer delete(c.active, pointer)

	result := make(map[string]Value, value.Len())
	iterator := value.MapRange()
	for iterator.Next() {
		key, err := mapKey(iterator.Key())
		if err != nil {
			return Value{}, newEncodingError(path, "%v", err)
		}
		converted, err := c.convertChild(iterator.Value(), fieldPath(path, key))
		if err != nil {
			return Value{}, err
		}
		result[key] = converted
	}
	return Value{kind: KindMapping, fields: result}, nil
}

func mapKey(key reflect.Value) (string, error) {
	if key.Kind() == reflect.String {
		return key.String(), nil
	}
	if key.CanInterface() {
		if marshaler, ok := key.Interface().(encoding.TextMarshaler); ok {
			if key.Kind() == reflect.Pointer && key.IsNil() {
				return "", nil
			}
			text, err := marshaler.MarshalText()
			if err != nil {
				return "", fmt.Errorf("failed to marshal map key %s: %w", key.Type(), err)
			}
			return string(text), nil
		}
	}
	switch key.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(key.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(key.Uint(), 10), nil
	}
	return "", fmt.Errorf("unsupported map key type %s", key.Type())
}

type structField struct {
	name      string
	value     reflect.Value
	depth     int
	tagged    bool
	omitEmpty bool
	omitZero  bool
	quoted    bool
}

// convertStruct follows encoding/json field rules: json tags rename or skip
// fields, embedded structs are flattened, and the shallowest field wins a
// name clash unless the clash is ambiguous.
func (c converter) convertStruct(value reflect.Value, path string) (Value, error) {
	var candidates []structField
	collectFields(value, 0, map[uintptr]struct{}{}, &candidates)

	result := map[string]Value{}
	for _, field := range dominantFields(candidates) {
		if field.omitEmpty && isEmptyValue(field.value) {
			continue
		}
		if field.omitZero && field.value.IsZero() {
			continue
		}

		converted, err := c.convertChild(field.value, fieldPath(path, field.name))
		if err != nil {
			return Value{}, err
		}
		if field.quoted {
			converted, err = quoteScalar(converted, fieldPath(path, field.name))
			if err != nil {
				return Value{}, err
			}
		}
		result[field.name] = converted
	}
	return Value{kind: KindMapping, fields: result}, nil
}

func collectFields(value reflect.Value, depth int, visited map[uintptr]struct{}, fields *[]structField) {
	structType := value.Type()
	for index := 0; index < structType.NumField(); index++ {
		field := structType.Field(index)
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, options, _ := strings.Cut(tag, ",")

		if field.Anonymous && name == "" {
			embedded := value.Field(index)
			if embedded.Kind() == reflect.Pointer {
				if embedded.IsNil() || embedded.Type().Elem().Kind() != reflect.Struct {
					continue
				}
				pointer := embedded.Pointer()
				if _, seen := visited[pointer]; seen {
					continue
				}
				visited[pointer] = struct{}{}
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				collectFields(embedded, depth+1, visited, fields)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}

		tagged := name != ""
		if !tagged {
			name = field.Name
		}
		*fields = append(*fields, structField{
			name:      name,
			value:     value.Field(index),
			depth:     depth,
			tagged:    tagged,
			omitEmpty: hasOption(options, "omitempty"),
			omitZero:  hasOption(options, "omitzero"),
			quoted:    hasOption(options, "string"),
		})
	}
}

func dominantFields(candidates []structField) []structField {
	byName := map[string][]structField{}
	for _, field := range candidates {
		byName[field.name] = append(byName[field.name], field)
	}

	result := make([]structField, 0, len(byName))
	for _, group := range byName {
		shallowest := group[0].depth
		for _, field := range group[1:] {
			if field.depth < shallowest {
				shallowest = field.depth
			}
		}

		var atDepth, tagged []structField
		for _, field := range group {
			if field.depth != shallowest {
				continue
			}
			atDepth = append(atDepth, field)
			if field.tagged {
				tagged = append(tagged, field)
			}
		}
		switch {
		case len(atDepth) == 1:
			result = append(result, atDepth[0])
		case len(tagged) == 1:
			result = append(result, tagged[0])
		}
	}
	return result
}

func hasOption(options string, option string) bool {
	for options != "" {
		var current string
		current, options, _ = strings.Cut(options, ",")
		if current == option {
			return true
		}
	}
	return false
}

func isEmptyValue(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return value.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return value.IsZero()
	}
	return false
}

// quoteScalar applies the ",string" tag option to scalar fields.
func quoteScalar(value Value, path string) (Value, error) {
	switch value.kind {
	case KindBool, KindNumber, KindString:
		encoded, err := Encode(value)
		if err != nil {
			return Value{}, newEncodingError(path, "%v", err)
		}
		return String(string(encoded)), nil
	}
	return value, nil
}
