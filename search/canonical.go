package search

import (
	"strings"
	"unicode"
)

// characters that force a value to be quoted when rebuilding a query
const quoteTriggers = "@#!,:"

// Rebuild renders tokens as a canonical query: included fields in the order
// they were first seen, then excluded fields, then free text. Each field is
// emitted once with its values comma separated and quoted where needed.
//
// Parsing the result yields the same filters and free text, although the
// string may differ from the one originally typed.
func Rebuild(tokens SearchTokens) string {
	var parts []string
	parts = appendTerms(parts, "", tokens.Included)
	parts = appendTerms(parts, "-", tokens.Excluded)
	if text := strings.TrimSpace(tokens.FreeText); text != "" {
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

func appendTerms(parts []string, prefix string, terms Terms) []string {
	for _, field := range terms.fields {
		var formatted []string
		for _, v := range terms.values[field] {
			if f := formatValue(v); f != "" {
				formatted = append(formatted, f)
			}
		}
		if len(formatted) == 0 {
			continue
		}
		parts = append(parts, prefix+field+":"+strings.Join(formatted, ","))
	}
	return parts
}

// normalizeValue strips any mix of surrounding quotes and whitespace.
func normalizeValue(v string) string {
	return strings.TrimFunc(v, func(r rune) bool {
		return r == '"' || r == '\'' || unicode.IsSpace(r)
	})
}

func needsQuoting(v string) bool {
	return strings.IndexFunc(v, unicode.IsSpace) >= 0 || strings.ContainsAny(v, quoteTriggers)
}

func formatValue(v string) string {
	n := normalizeValue(v)
	if n != "" && needsQuoting(n) {
		return `"` + n + `"`
	}
	return n
}

// sameValue compares two values ignoring quotes, surrounding whitespace and case.
func sameValue(a, b string) bool {
	return strings.EqualFold(normalizeValue(a), normalizeValue(b))
}
