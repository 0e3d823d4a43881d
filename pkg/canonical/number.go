package canonical

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Floats switch to exponent notation outside this decimal-point window.
const (
	minFixedDecimalPoint = -4
	maxFixedDecimalPoint = 16
)

func canonicalNumberLiteral(literal string) (string, error) {
	trimmed := strings.TrimSpace(literal)
	if trimmed == "" {
		return "", fmt.Errorf("empty number literal")
	}

	if strings.ContainsAny(trimmed, ".eE") {
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return "", fmt.Errorf("number %s is out of float64 range", trimmed)
			}
			return "", fmt.Errorf("invalid number literal %q", literal)
		}
		return formatFloat(parsed, 64)
	}

	integer, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return "", fmt.Errorf("invalid number literal %q", literal)
	}
	return integer.String(), nil
}

// formatFloat renders the shortest round-trip digits using fixed notation
// with at least one fractional digit, or d.ddde±XX outside the fixed window.
func formatFloat(value float64, bitSize int) (string, error) {
	if math.IsNaN(value) {
		return "", fmt.Errorf("NaN has no canonical representation")
	}
	if math.IsInf(value, 0) {
		return "", fmt.Errorf("infinite value has no canonical representation")
	}
	if value == 0 {
		if math.Signbit(value) {
			return "-0.0", nil
		}
		return "0.0", nil
	}

	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	scientific := strconv.FormatFloat(value, 'e', -1, bitSize)
	mantissa, exponentText, found := strings.Cut(scientific, "e")
	if !found {
		return "", fmt.Errorf("unexpected float format %q", scientific)
	}
	exponent, err := strconv.Atoi(exponentText)
	if err != nil {
		return "", fmt.Errorf("unexpected float exponent %q", scientific)
	}

	digits := strings.Replace(mantissa, ".", "", 1)
	decimalPoint := exponent + 1

	var builder strings.Builder
	builder.WriteString(sign)
	switch {
	case decimalPoint > minFixedDecimalPoint && decimalPoint <= 0:
		builder.WriteString("0.")
		builder.WriteString(strings.Repeat("0", -decimalPoint))
		builder.WriteString(digits)
	case decimalPoint > 0 && decimalPoint <= maxFixedDecimalPoint:
		if decimalPoint >= len(digits) {
			builder.WriteString(digits)
			builder.WriteString(strings.Repeat("0", decimalPoint-len(digits)))
			builder.WriteString(".0")
		} else {
			builder.WriteString(digits[:decimalPoint])
			builder.WriteByte('.')
			builder.WriteString(digits[decimalPoint:])
		}
	default:
		builder.WriteByte(digits[0])
		if len(digits) > 1 {
			builder.WriteByte('.')
			builder.WriteString(digits[1:])
		}
		builder.WriteByte('e')
		if exponent < 0 {
			builder.WriteByte('-')
			exponent = -exponent
		} else {
			builder.WriteByte('+')
		}
		if exponent < 10 {
			builder.WriteByte('0')
		}
		builder.WriteString(strconv.Itoa(exponent))
	}

	return builder.String(), nil
}
