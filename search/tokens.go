package search

import "strings"

// Terms maps field names to their values, remembering the order in which
// fields were first seen so canonical queries are rebuilt deterministically.
type Terms struct {
	fields []string
	values map[string][]string
}

// Fields returns field names in insertion order.
func (t Terms) Fields() []string {
	return append([]string(nil), t.fields...)
}

// Values returns a copy of the values recorded for field.
func (t Terms) Values(field string) []string {
	if t.values == nil {
		return nil
	}
	key, _ := t.lookup(field)
	return append([]string(nil), t.values[key]...)
}

// lookup returns the stored spelling of field. Field names compare
// case-insensitively; the first spelling seen is kept.
func (t Terms) lookup(field string) (string, bool) {
	if _, ok := t.values[field]; ok {
		return field, true
	}
	for _, f := range t.fields {
		if strings.EqualFold(f, field) {
			return f, true
		}
	}
	return field, false
}

// Len returns the number of fields.
func (t Terms) Len() int {
	return len(t.fields)
}

// Map returns a plain map copy, convenient for comparisons and encoding.
func (t Terms) Map() map[string][]string {
	out := make(map[string][]string, len(t.fields))
	for _, f := range t.fields {
		out[f] = append([]string(nil), t.values[f]...)
	}
	return out
}

func (t *Terms) add(field string, values ...string) {
	if len(values) == 0 {
		return
	}
	if t.values == nil {
		t.values = make(map[string][]string)
	}
	key, ok := t.lookup(field)
	if !ok {
		t.fields = append(t.fields, key)
	}
	t.values[key] = append(t.values[key], values...)
}

// removeWhere drops every value of field for which match returns true and
// deletes the field once it is empty.
func (t *Terms) removeWhere(field string, match func(string) bool) {
	field, ok := t.lookup(field)
	if !ok {
		return
	}
	vals := t.values[field]
	kept := vals[:0]
	for _, v := range vals {
		if !match(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		t.deleteField(field)
		return
	}
	t.values[field] = kept
}

func (t *Terms) deleteField(field string) {
	field, ok := t.lookup(field)
	if !ok {
		return
	}
	delete(t.values, field)
	for i, f := range t.fields {
		if f == field {
			t.fields = append(t.fields[:i], t.fields[i+1:]...)
			break
		}
	}
}

func (t *Terms) clear() {
	t.fields = nil
	t.values = nil
}

func (t Terms) clone() Terms {
	c := Terms{fields: append([]string(nil), t.fields...)}
	if t.values != nil {
		c.values = make(map[string][]string, len(t.values))
		for f, vs := range t.values {
			c.values[f] = append([]string(nil), vs...)
		}
	}
	return c
}

// SearchTokens is the structured form of a query string.
type SearchTokens struct {
	OriginalQuery string
	Included      Terms
	Excluded      Terms
	FreeText      string
}

// IsEmpty reports whether the tokens carry no filters and no free text.
func (st SearchTokens) IsEmpty() bool {
	return st.Included.Len() == 0 && st.Excluded.Len() == 0 && st.FreeText == ""
}

func (st SearchTokens) clone() SearchTokens {
	return SearchTokens{
		OriginalQuery: st.OriginalQuery,
		Included:      st.Included.clone(),
		Excluded:      st.Excluded.clone(),
		FreeText:      st.FreeText,
	}
}
