package search

import (
	"strings"
	"time"

	"github.com/boolean-maybe/sieve/item"
)

// Predicate is a boolean test over items. Collections either evaluate it
// directly or translate the expression tree into their own query language.
//
// A nil Predicate is the empty predicate: it adds no constraint and is
// dropped by And, Or and Not.
type Predicate interface {
	Evaluate(it *item.Item, now time.Time) bool
}

// Logical operators used by BinaryExpr and UnaryExpr.
const (
	OpAnd = "AND"
	OpOr  = "OR"
	OpNot = "NOT"
)

// Item attributes addressable by CompareExpr, InExpr, ExistsExpr and TextExpr.
const (
	FieldID          = "id"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldEnergy      = "energy"
	FieldCompleted   = "completed"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldWaitingFor  = "waiting_for"
	FieldDue         = "due"
	FieldParent      = "parent"
	FieldArea        = "area"
	FieldContexts    = "contexts"
	FieldTags        = "tags"
)

// BinaryExpr represents AND, OR operations
type BinaryExpr struct {
	Op    string // "AND", "OR"
	Left  Predicate
	Right Predicate
}

// Evaluate implements Predicate
func (b *BinaryExpr) Evaluate(it *item.Item, now time.Time) bool {
	switch b.Op {
	case OpAnd:
		return b.Left.Evaluate(it, now) && b.Right.Evaluate(it, now)
	case OpOr:
		return b.Left.Evaluate(it, now) || b.Right.Evaluate(it, now)
	default:
		return false
	}
}

// UnaryExpr represents NOT operation
type UnaryExpr struct {
	Op   string // "NOT"
	Expr Predicate
}

// Evaluate implements Predicate
func (u *UnaryExpr) Evaluate(it *item.Item, now time.Time) bool {
	if u.Op == OpNot {
		return !u.Expr.Evaluate(it, now)
	}
	return false
}

// And combines predicates with AND, skipping empty ones.
func And(preds ...Predicate) Predicate {
	return fold(OpAnd, preds)
}

// Or combines predicates with OR, skipping empty ones.
func Or(preds ...Predicate) Predicate {
	return fold(OpOr, preds)
}

// Not negates p. The negation of the empty predicate is empty.
func Not(p Predicate) Predicate {
	if p == nil {
		return nil
	}
	return &UnaryExpr{Op: OpNot, Expr: p}
}

func fold(op string, preds []Predicate) Predicate {
	var out Predicate
	for _, p := range preds {
		if p == nil {
			continue
		}
		if out == nil {
			out = p
			continue
		}
		out = &BinaryExpr{Op: op, Left: out, Right: p}
	}
	return out
}

// CompareExpr represents an equality test on a scalar attribute, like
// priority = 3 or energy != 'low'.
type CompareExpr struct {
	Field string      // "id", "status", "priority", "energy", "completed"
	Op    string      // "=", "!="
	Value interface{} // string, int or bool
}

// Evaluate implements Predicate
func (c *CompareExpr) Evaluate(it *item.Item, _ time.Time) bool {
	return compare(getItemAttribute(it, c.Field), c.Op, c.Value)
}

// InExpr represents IN/NOT IN operations like: status IN ['next_action', 'project']
type InExpr struct {
	Field  string        // "status", "priority", ...
	Not    bool          // true for NOT IN, false for IN
	Values []interface{} // List of values to check against
}

// Evaluate implements Predicate
func (i *InExpr) Evaluate(it *item.Item, _ time.Time) bool {
	result := valueInList(getItemAttribute(it, i.Field), i.Values)
	if i.Not {
		return !result
	}
	return result
}

// ExistsExpr is true when an optional attribute is set: a due date, a parent
// project, an area, at least one context or tag, or a non-empty description.
type ExistsExpr struct {
	Field string
}

// Evaluate implements Predicate
func (e *ExistsExpr) Evaluate(it *item.Item, _ time.Time) bool {
	switch e.Field {
	case FieldDue:
		return it.DueDate != nil
	case FieldParent:
		return it.Parent != nil
	case FieldArea:
		return it.Area != nil
	case FieldContexts:
		return len(it.Contexts) > 0
	case FieldTags:
		return len(it.Tags) > 0
	case FieldDescription:
		return strings.TrimSpace(it.Description) != ""
	default:
		return false
	}
}

// DueKind selects how DueExpr compares the due date with the evaluation time.
type DueKind int

const (
	// DueBefore matches due dates strictly before now.
	DueBefore DueKind = iota
	// DueOn matches due dates on the calendar day now+Days.
	DueOn
	// DueWithin matches due dates between now and now+Days inclusive.
	DueWithin
)

// DueExpr compares an item's due date with the evaluation time, so the same
// predicate moves with the clock.
type DueExpr struct {
	Kind DueKind
	Days int
}

// Window returns the half-open [from, to) interval of due dates matched at now.
// DueBefore has no lower bound and reports a zero from.
func (d *DueExpr) Window(now time.Time) (from, to time.Time) {
	switch d.Kind {
	case DueOn:
		from = item.StartOfDay(now).AddDate(0, 0, d.Days)
		return from, from.AddDate(0, 0, 1)
	case DueWithin:
		// inclusive upper bound
		return now, now.AddDate(0, 0, d.Days).Add(time.Nanosecond)
	default:
		return time.Time{}, now
	}
}

// Evaluate implements Predicate
func (d *DueExpr) Evaluate(it *item.Item, now time.Time) bool {
	if it.DueDate == nil {
		return false
	}
	due := it.DueDate.In(now.Location())
	from, to := d.Window(now)
	if !due.Before(to) {
		return false
	}
	return from.IsZero() || !due.Before(from)
}

// MatchMode selects how names are compared.
type MatchMode int

const (
	MatchContains MatchMode = iota
	MatchExact
)

// RelationExpr matches an item's related record (parent project, area,
// contexts or tags) by id, or by name when ID is zero. Name matching is
// case-insensitive.
type RelationExpr struct {
	Field string // "parent", "area", "contexts", "tags"
	ID    int
	Name  string
	Mode  MatchMode
}

// Evaluate implements Predicate
func (r *RelationExpr) Evaluate(it *item.Item, _ time.Time) bool {
	for _, ref := range relatedRefs(it, r.Field) {
		if r.matches(ref) {
			return true
		}
	}
	return false
}

func (r *RelationExpr) matches(ref item.Ref) bool {
	if r.ID != 0 {
		return ref.ID == r.ID
	}
	name := strings.ToLower(ref.Name)
	want := strings.ToLower(r.Name)
	if r.Mode == MatchExact {
		return name == want
	}
	return strings.Contains(name, want)
}

func relatedRefs(it *item.Item, field string) []item.Ref {
	switch field {
	case FieldParent:
		if it.Parent != nil {
			return []item.Ref{*it.Parent}
		}
	case FieldArea:
		if it.Area != nil {
			return []item.Ref{*it.Area}
		}
	case FieldContexts:
		return it.Contexts
	case FieldTags:
		return it.Tags
	}
	return nil
}

// TextExpr is a case-insensitive substring match on a text attribute.
type TextExpr struct {
	Field string // "title", "description", "waiting_for"
	Value string
}

// Evaluate implements Predicate
func (t *TextExpr) Evaluate(it *item.Item, _ time.Time) bool {
	text, ok := getItemAttribute(it, t.Field).(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(t.Value))
}

// getItemAttribute returns the value of an item field by name
func getItemAttribute(it *item.Item, field string) interface{} {
	switch field {
	case FieldID:
		return it.ID
	case FieldStatus:
		return string(it.Status)
	case FieldPriority:
		return int(it.Priority)
	case FieldEnergy:
		return string(it.Energy)
	case FieldCompleted:
		return it.Completed
	case FieldTitle:
		return it.Title
	case FieldDescription:
		return it.Description
	case FieldWaitingFor:
		return it.WaitingFor
	default:
		return nil
	}
}

// valueInList checks if a single value exists in a list of values
func valueInList(fieldValue interface{}, values []interface{}) bool {
	for _, val := range values {
		if compare(fieldValue, "=", val) {
			return true
		}
	}
	return false
}

// compare compares two values using the given operator
func compare(left interface{}, op string, right interface{}) bool {
	if op == "==" {
		op = "="
	}

	switch l := left.(type) {
	case string:
		r, ok := right.(string)
		if !ok {
			return false
		}
		return compareEquality(strings.EqualFold(l, r), op)
	case int:
		r, ok := right.(int)
		if !ok {
			return false
		}
		return compareEquality(l == r, op)
	case bool:
		r, ok := right.(bool)
		if !ok {
			return false
		}
		return compareEquality(l == r, op)
	default:
		return false
	}
}

func compareEquality(equal bool, op string) bool {
	switch op {
	case "=":
		return equal
	case "!=":
		return !equal
	default:
		return false
	}
}
