// Package coerce converts loosely-typed spreadsheet cell values into numbers.
//
// Source sheets are known to contain blanks, currency formatting, "12.5K"
// shorthand and stray error markers. Every function here is total: malformed
// input becomes the zero value, never an error.
package coerce

import (
	"regexp"
	"strconv"
	"strings"
)

// shorthandPattern matches a bare number with an optional K/M suffix after
// currency symbols and separators have been stripped.
var shorthandPattern = regexp.MustCompile(`^([0-9.]+)([KMkm])?$`)

// Number converts an arbitrary cell value to a float64. Nil and blank
// values become 0, numeric types pass through, strings go through String.
func Number(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		return String(x)
	default:
		return 0
	}
}

// String converts a cell's raw text to a float64.
//
// Rules, applied in order: strip "$" and thousands separators and trim
// whitespace; "" and a lone "-" are 0; a trailing K or M (either case)
// multiplies the numeric prefix by 1e3 or 1e6; otherwise a generic parse is
// attempted and failure yields 0. Applying String to the formatted result
// of a previous call returns the same value.
func String(s string) float64 {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}

	if m := shorthandPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0
		}
		switch strings.ToUpper(m[2]) {
		case "K":
			return n * 1_000
		case "M":
			return n * 1_000_000
		}
		return n
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// Int converts a cell's raw text to an integer rating or tier, reading a
// leading integer the way a lenient spreadsheet parse would ("3.7" -> 3).
// Blank, unparsable and zero values all fall back to def; the source data
// treats an explicit 0 the same as "not rated".
func Int(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return def
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return def
	}
	return n
}
