package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Coercion converts a resolved leaf value into a typed field value.
type Coercion int

const (
	AsString Coercion = iota
	AsTrimmedString
	AsInteger
	AsDecimal
)

func (c Coercion) String() string {
	switch c {
	case AsString:
		return "string"
	case AsTrimmedString:
		return "trimmed string"
	case AsInteger:
		return "integer"
	case AsDecimal:
		return "decimal"
	default:
		return "unknown"
	}
}

var (
	integerPrefix = regexp.MustCompile(`^[+-]?[0-9]+`)
	decimalPrefix = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?`)
)

// parseInteger reads the longest base-10 integer prefix of s after leading
// whitespace. Anything without such a prefix, or out of int64 range, is 0.
func parseInteger(s string) int64 {
	m := integerPrefix.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseDecimal reads the longest decimal prefix of s after leading
// whitespace, so "1,000.50" yields 1.
func parseDecimal(s string) float64 {
	m := decimalPrefix.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
