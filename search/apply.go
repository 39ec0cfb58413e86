package search

import (
	"log/slog"
	"strings"
)

// Collection is a queryable set of items. Filter keeps the items matching a
// predicate and Exclude drops them. Implementations may evaluate predicates in
// memory or translate them into their own query language.
type Collection[C any] interface {
	Filter(p Predicate) C
	Exclude(p Predicate) C
}

// ApplySearch narrows coll by query. Included fields are combined with AND,
// every excluded field is removed in a single Exclude, and the free text must
// appear in the title, description or waiting-for person. An empty query
// returns coll unchanged.
func ApplySearch[C Collection[C]](coll C, query string, opts ...Option) C {
	if strings.TrimSpace(query) == "" {
		return coll
	}

	o := newOptions(opts)
	tokens := (&Parser{forcedQuery: strings.TrimSpace(o.forcedQuery)}).Parse(query)
	builder := &Builder{soonDays: o.soonDays}

	var exclusions []Predicate
	for _, field := range tokens.Included.fields {
		ff := builder.BuildFieldFilter(field, tokens.Included.values[field])
		if ff.Match != nil {
			coll = coll.Filter(ff.Match)
		}
		exclusions = append(exclusions, ff.Exclude)
	}
	for _, field := range tokens.Excluded.fields {
		ff := builder.BuildFieldFilter(field, tokens.Excluded.values[field])
		exclusions = append(exclusions, ff.Match, ff.Exclude)
	}
	if excluded := Or(exclusions...); excluded != nil {
		coll = coll.Exclude(excluded)
	}

	if tokens.FreeText != "" {
		coll = coll.Filter(FreeTextPredicate(tokens.FreeText))
	}

	slog.Debug("applied search",
		"query", tokens.OriginalQuery,
		"included_fields", tokens.Included.Len(),
		"excluded_fields", tokens.Excluded.Len(),
		"free_text", tokens.FreeText)
	return coll
}

// FreeTextPredicate matches text against the title, description and
// waiting-for person, ignoring case.
func FreeTextPredicate(text string) Predicate {
	return Or(
		&TextExpr{Field: FieldTitle, Value: text},
		&TextExpr{Field: FieldDescription, Value: text},
		&TextExpr{Field: FieldWaitingFor, Value: text},
	)
}
