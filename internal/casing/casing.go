// Package casing rewrites object keys between snake_case and camelCase at the
// HTTP boundary. The client-side code works in camelCase; the backend speaks
// snake_case. KeysToSnake/KeysToCamel operate on decoded JSON trees.
package casing

import (
	"strings"
	"unicode"
)

// SnakeToCamel converts a snake_case string to camelCase. Leading underscores
// are preserved verbatim. Runs of underscores followed by a character are
// collapsed, uppercasing that character; trailing underscores are kept.
func SnakeToCamel(s string) string {
	lead := leadingUnderscores(s)
	rest := s[len(lead):]

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(lead)

	for i := 0; i < len(rest); {
		if rest[i] != '_' {
			b.WriteByte(rest[i])
			i++
			continue
		}
		j := i
		for j < len(rest) && rest[j] == '_' {
			j++
		}
		if j == len(rest) {
			// Trailing underscores, nothing to uppercase.
			b.WriteString(rest[i:j])
			break
		}
		b.WriteRune(unicode.ToUpper(rune(rest[j])))
		i = j + 1
	}

	return b.String()
}

// CamelToSnake converts a camelCase string to snake_case. Leading underscores
// are preserved verbatim. A run of uppercase letters or digits gets a single
// underscore inserted before it, except at the start of the string.
func CamelToSnake(s string) string {
	lead := leadingUnderscores(s)
	rest := s[len(lead):]

	var b strings.Builder
	b.Grow(len(s) + 4)
	b.WriteString(lead)

	for i := 0; i < len(rest); {
		c := rest[i]
		if !isUpperOrDigit(c) {
			b.WriteByte(c)
			i++
			continue
		}
		j := i
		for j < len(rest) && isUpperOrDigit(rest[j]) {
			j++
		}
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteString(strings.ToLower(rest[i:j]))
		i = j
	}

	return b.String()
}

// KeysToCamel recursively rewrites every map key in a decoded JSON tree from
// snake_case to camelCase. Slices are mapped element-wise; scalars and nil
// pass through unchanged.
func KeysToCamel(v any) any {
	return transform(v, SnakeToCamel)
}

// KeysToSnake recursively rewrites every map key in a decoded JSON tree from
// camelCase to snake_case. Slices are mapped element-wise; scalars and nil
// pass through unchanged.
func KeysToSnake(v any) any {
	return transform(v, CamelToSnake)
}

func transform(v any, keyFn func(string) string) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[keyFn(k)] = transform(val, keyFn)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = transform(val, keyFn)
		}
		return out
	default:
		return v
	}
}

func leadingUnderscores(s string) string {
	i := 0
	for i < len(s) && s[i] == '_' {
		i++
	}
	return s[:i]
}

func isUpperOrDigit(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
