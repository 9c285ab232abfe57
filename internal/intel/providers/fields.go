package providers

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Registries drift between schema versions, so adapters read each logical
// field through an ordered list of candidate keys. The first key holding a
// non-empty, non-zero value wins.

// Object returns v as a JSON object, or nil.
func Object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// Slice returns v as a JSON array, or nil.
func Slice(v any) []any {
	s, _ := v.([]any)
	return s
}

// Path walks nested objects by key. Missing segments yield nil.
func Path(v any, segments ...string) any {
	cur := v
	for _, seg := range segments {
		m := Object(cur)
		if m == nil {
			return nil
		}
		cur = m[seg]
	}
	return cur
}

// Str returns the first non-empty string among keys. Numbers are formatted.
func Str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := AsString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// Int returns the first non-zero integer among keys. Numeric strings are parsed.
func Int(m map[string]any, keys ...string) int {
	for _, k := range keys {
		if n := AsInt(m[k]); n != 0 {
			return n
		}
	}
	return 0
}

// Float returns the first non-zero number among keys. Money strings are parsed.
func Float(m map[string]any, keys ...string) float64 {
	for _, k := range keys {
		if f := AsFloat(m[k]); f != 0 {
			return f
		}
	}
	return 0
}

// AsString converts a decoded JSON scalar to a string.
func AsString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// AsInt converts a decoded JSON scalar to an int, truncating fractions.
func AsInt(v any) int {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		f, err := t.Float64()
		if err != nil || math.IsNaN(f) {
			return 0
		}
		return int(f)
	case float64:
		return int(t)
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return int(ParseMoney(s))
	default:
		return 0
	}
}

// AsFloat converts a decoded JSON scalar to a float64.
func AsFloat(v any) float64 {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case float64:
		return t
	case string:
		return ParseMoney(t)
	default:
		return 0
	}
}

// Strings collects the string elements of a JSON array.
func Strings(v any) []string {
	items := Slice(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := AsString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
