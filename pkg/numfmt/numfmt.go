// Package numfmt formats weights the way printed slips show them: whole
// kilograms with "." as the thousands separator.
package numfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Thousands formats v as an integer with "." grouping (12345 -> "12.345").
// Fractions are truncated. Values that are not numbers come back as their
// literal text, nil as "".
func Thousands(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		return float(n)
	case float32:
		return float(float64(n))
	case int:
		return group(int64(n))
	case int64:
		return group(n)
	case int32:
		return group(int64(n))
	case uint:
		return group(int64(n))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return n
		}
		return float(f)
	}
	return fmt.Sprint(v)
}

func float(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return digits(strconv.FormatFloat(math.Trunc(f), 'f', 0, 64))
}

func group(n int64) string { return digits(strconv.FormatInt(n, 10)) }

// digits inserts "." every three digits of an optionally signed integer string.
func digits(s string) string {
	if s == "-0" {
		s = "0"
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
