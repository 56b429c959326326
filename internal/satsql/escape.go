package satsql

import "strings"

// sqlNull is the literal emitted for a missing numeric value.
const sqlNull = "NULL"

// EscapeString prepares v for use inside a single-quoted SQL string literal.
// A nil value yields the empty string. Every single quote is doubled and all
// other characters are left as they are.
func EscapeString(v any) string {
	if v == nil {
		return ""
	}
	return strings.ReplaceAll(textOf(v), "'", "''")
}

// NumericOrNull returns the bare numeric literal stored under key, or NULL
// when the key is absent, null, or an empty string. The value is not checked
// for being numeric.
func NumericOrNull(r Record, key string) string {
	v, ok := r.Lookup(key)
	if !ok {
		return sqlNull
	}
	if s, isString := v.(string); isString && s == "" {
		return sqlNull
	}
	return textOf(v)
}
