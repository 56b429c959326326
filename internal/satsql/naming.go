package satsql

import (
	"strings"
	"unicode"
)

// knownAbbreviations maps lowercase abbreviations to their Go-conventional
// uppercase forms.
var knownAbbreviations = map[string]string{
	"id":    "ID",
	"ids":   "IDs",
	"url":   "URL",
	"api":   "API",
	"json":  "JSON",
	"sql":   "SQL",
	"norad": "NORAD",
	"rcs":   "RCS",
	"iss":   "ISS",
}

// ToGoName converts a SQL or JSON name (e.g. "satellite_id") into an
// exported Go identifier (e.g. "SatelliteID").
func ToGoName(name string) string {
	var b strings.Builder
	for _, w := range splitWords(name) {
		if upper, ok := knownAbbreviations[strings.ToLower(w)]; ok {
			b.WriteString(upper)
		} else {
			b.WriteString(capitalize(w))
		}
	}
	return b.String()
}

// splitWords breaks an identifier into words at separators ('_', '-', '.',
// ' ') and at camelCase boundaries. A run of capitals followed by a
// lowercase letter ends one rune early, so "RCSValue" yields "RCS", "Value".
func splitWords(s string) []string {
	var words []string
	for _, part := range strings.FieldsFunc(s, isWordSeparator) {
		words = append(words, splitCamel(part)...)
	}
	return words
}

func isWordSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}

func splitCamel(s string) []string {
	runes := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		switch {
		case (unicode.IsLower(prev) || unicode.IsDigit(prev)) && unicode.IsUpper(cur):
		case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		default:
			continue
		}
		words = append(words, string(runes[start:i]))
		start = i
	}
	return append(words, string(runes[start:]))
}

// capitalize returns s with its first rune uppercased and the rest lowercased.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
