package canonical

import (
	"bytes"
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Encode returns the canonical byte form of a Value.
func Encode(value Value) ([]byte, error) {
	var buffer bytes.Buffer
	if err := writeValue(&buffer, value, rootPath); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// EncodeAny converts native or decoded JSON data and encodes it.
func EncodeAny(input any) ([]byte, error) {
	value, err := FromAny(input)
	if err != nil {
		return nil, err
	}
	return Encode(value)
}

// MarshalJSON lets a Value be embedded in types handled by encoding/json.
func (v Value) MarshalJSON() ([]byte, error) {
	return Encode(v)
}

func writeValue(buffer *bytes.Buffer, value Value, path string) error {
	switch value.kind {
	case KindNull:
		buffer.WriteString("null")
	case KindBool:
		if value.boolean {
			buffer.WriteString("true")
		} else {
			buffer.WriteString("false")
		}
	case KindNumber:
		if value.number == "" {
			return newEncodingError(path, "number without canonical form")
		}
		buffer.WriteString(value.number)
	case KindString:
		if err := writeString(buffer, value.text); err != nil {
			return newEncodingError(path, "%v", err)
		}
	case KindSequence:
		buffer.WriteByte('[')
		for index, item := range value.items {
			if index > 0 {
				buffer.WriteByte(',')
			}
			if err := writeValue(buffer, item, fmt.Sprintf("%s[%d]", path, index)); err != nil {
				return err
			}
		}
		buffer.WriteByte(']')
	case KindMapping:
		keys := make([]string, 0, len(value.fields))
		for key := range value.fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		buffer.WriteByte('{')
		for index, key := range keys {
			if index > 0 {
				buffer.WriteByte(',')
			}
			if err := writeString(buffer, key); err != nil {
				return newEncodingError(fieldPath(path, key), "invalid key: %v", err)
			}
			buffer.WriteByte(':')
			if err := writeValue(buffer, value.fields[key], fieldPath(path, key)); err != nil {
				return err
			}
		}
		buffer.WriteByte('}')
	default:
		return newEncodingError(path, "unsupported value kind %s", value.kind)
	}

	return nil
}

const hexDigits = "0123456789abcdef"

// writeString emits an ASCII-only JSON string. Everything outside the
// printable ASCII range is written as \uXXXX, astral runes as surrogate pairs.
func writeString(buffer *bytes.Buffer, text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("string is not valid UTF-8")
	}

	buffer.WriteByte('"')
	for _, character := range text {
		switch character {
		case '"':
			buffer.WriteString(`\"`)
		case '\\':
			buffer.WriteString(`\\`)
		case '\n':
			buffer.WriteString(`\n`)
		case '\r':
			buffer.WriteString(`\r`)
		case '\t':
			buffer.WriteString(`\t`)
		case '\b':
			buffer.WriteString(`\b`)
		case '\f':
			buffer.WriteString(`\f`)
		default:
			switch {
			case character >= 0x20 && character <= 0x7e:
				buffer.WriteByte(byte(character))
			case character > 0xffff:
				high, low := utf16.EncodeRune(character)
				writeUnicodeEscape(buffer, high)
				writeUnicodeEscape(buffer, low)
			default:
				writeUnicodeEscape(buffer, character)
			}
		}
	}
	buffer.WriteByte('"')

	return nil
}

func writeUnicodeEscape(buffer *bytes.Buffer, unit rune) {
	buffer.WriteString(`\u`)
	buffer.WriteByte(hexDigits[(unit>>12)&0xf])
	buffer.WriteByte(hexDigits[(unit>>8)&0xf])
	buffer.WriteByte(hexDigits[(unit>>4)&0xf])
	buffer.WriteByte(hexDigits[unit&0xf])
}
