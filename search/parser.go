package search

import (
	"regexp"
	"strings"
)

var (
	// (-)field:value where value is a run of "quoted","segments" or any
	// non-whitespace text.
	fieldPattern  = regexp.MustCompile(`(-?)(\w+):((?:"[^"]*"(?:,"[^"]*")*)|(?:[^\s]+))`)
	quotedPattern = regexp.MustCompile(`"([^"]*)"`)
)

// Parser turns query strings into SearchTokens and computes toggled queries.
// The zero value is ready to use.
type Parser struct {
	forcedQuery string
}

// NewParser creates a parser configured by opts.
func NewParser(opts ...Option) *Parser {
	o := newOptions(opts)
	return &Parser{forcedQuery: strings.TrimSpace(o.forcedQuery)}
}

var defaultParser = &Parser{}

// Parse parses query with default options.
//
// Example:
//
//	Parse(`in:inbox tags:"train","my god" -priority:low coucou`)
//
// yields included {in:[inbox] tags:[train, my god]}, excluded
// {priority:[low]} and free text "coucou".
func Parse(query string) SearchTokens {
	return defaultParser.Parse(query)
}

// Parse extracts field filters from query and returns the leftover free text.
// It never fails: anything that is not a well formed field filter is free text.
func (p *Parser) Parse(query string) SearchTokens {
	return p.parse(query, p.forcedQuery)
}

// parse is Parse with an explicit forced text. The toggle engine passes an
// empty one so forced text never leaks into generated queries.
func (p *Parser) parse(query, forced string) SearchTokens {
	tokens := SearchTokens{OriginalQuery: strings.TrimSpace(query)}
	if tokens.OriginalQuery == "" {
		tokens.FreeText = forced
		return tokens
	}

	var remaining strings.Builder
	last := 0
	for _, m := range fieldPattern.FindAllStringSubmatchIndex(query, -1) {
		excluded := m[3] > m[2]
		field := query[m[4]:m[5]]
		values := parseFieldValue(query[m[6]:m[7]])
		if len(values) == 0 {
			// not a usable filter, leave it in the free text
			continue
		}

		if excluded {
			addResolved(&tokens.Excluded, &tokens.Included, field, values)
		} else {
			addResolved(&tokens.Included, &tokens.Excluded, field, values)
		}

		remaining.WriteString(query[last:m[0]])
		remaining.WriteByte(' ')
		last = m[1]
	}
	remaining.WriteString(query[last:])

	tokens.FreeText = cleanFreeText(remaining.String(), forced)
	return tokens
}

// addResolved appends values to target and drops the same values of field
// from other, so the later occurrence of a pair wins. Values are compared
// after normalization but keep their case.
func addResolved(target, other *Terms, field string, values []string) {
	for _, v := range values {
		want := normalizeValue(v)
		other.removeWhere(field, func(existing string) bool { return normalizeValue(existing) == want })
	}
	target.add(field, values...)
}

// parseFieldValue splits a raw field value into individual values.
func parseFieldValue(raw string) []string {
	var values []string

	if strings.Contains(raw, `"`) {
		for _, m := range quotedPattern.FindAllStringSubmatch(raw, -1) {
			if normalizeValue(m[1]) != "" {
				values = append(values, m[1])
			}
		}
		return values
	}

	if strings.Contains(raw, ",") {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); normalizeValue(v) != "" {
				values = append(values, v)
			}
		}
		return values
	}

	if normalizeValue(raw) == "" {
		return nil
	}
	return []string{raw}
}

// cleanFreeText collapses whitespace and drops orphan quote characters.
func cleanFreeText(remaining, forced string) string {
	words := strings.Fields(remaining)
	kept := words[:0]
	for _, w := range words {
		if strings.Trim(w, `"`) == "" {
			continue
		}
		kept = append(kept, w)
	}
	if forced != "" {
		kept = append(kept, forced)
	}
	return strings.Join(kept, " ")
}
