package search

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/boolean-maybe/sieve/item"
)

// contextPrefixes are stripped from context, area and tag names before matching.
const contextPrefixes = "@#!"

// fieldHandler maps one lower-cased value of a field to a predicate. It returns
// nil for values it does not understand.
type fieldHandler func(b *Builder, value string) Predicate

type fieldSpec struct {
	handle fieldHandler
	// negatable fields read a value prefixed with "-" as an exclusion of that
	// value, whether the token itself was included or excluded.
	negatable bool
}

// fieldTable holds the semantics of every recognized query field.
var fieldTable = map[string]fieldSpec{
	"in":       {handle: statusField},
	"is":       {handle: stateField},
	"has":      {handle: existenceField},
	"priority": {handle: priorityField, negatable: true},
	"energy":   {handle: energyField, negatable: true},
	"due":      {handle: dueField},
	"project":  {handle: projectField},
	"parent":   {handle: parentField},
	"context":  {handle: contextField},
	"area":     {handle: areaField},
	"tags":     {handle: tagsField},
	"waiting":  {handle: waitingField},
	"id":       {handle: idField},
}

// Builder turns field/value groups into predicates.
type Builder struct {
	soonDays int
}

// NewBuilder creates a predicate builder configured by opts.
func NewBuilder(opts ...Option) *Builder {
	o := newOptions(opts)
	return &Builder{soonDays: o.soonDays}
}

// FieldFilter is the predicate contribution of one field. Match is the
// OR of every recognized value; Exclude collects values that force an
// exclusion (priority:-low). Either may be nil.
type FieldFilter struct {
	Match   Predicate
	Exclude Predicate
}

// BuildFieldFilter evaluates values against the semantics of field. Unknown
// fields and values contribute nothing.
func (b *Builder) BuildFieldFilter(field string, values []string) FieldFilter {
	spec, ok := fieldTable[strings.ToLower(field)]
	if !ok {
		return FieldFilter{}
	}

	var match, exclude []Predicate
	for _, raw := range values {
		value := strings.ToLower(strings.TrimSpace(raw))
		if spec.negatable && strings.HasPrefix(value, "-") {
			exclude = append(exclude, spec.handle(b, value[1:]))
			continue
		}
		match = append(match, spec.handle(b, value))
	}
	return FieldFilter{Match: Or(match...), Exclude: Or(exclude...)}
}

// BuildFieldPredicate returns a single predicate for field: any matching
// value, minus any forced exclusions.
func (b *Builder) BuildFieldPredicate(field string, values []string) Predicate {
	ff := b.BuildFieldFilter(field, values)
	return And(ff.Match, Not(ff.Exclude))
}

var inStatuses = map[string]item.Status{
	"inbox":     item.StatusInbox,
	"next":      item.StatusNextAction,
	"action":    item.StatusNextAction,
	"waiting":   item.StatusWaitingFor,
	"someday":   item.StatusSomedayMaybe,
	"maybe":     item.StatusSomedayMaybe,
	"reference": item.StatusReference,
	"project":   item.StatusProject,
	"completed": item.StatusCompleted,
	"cancelled": item.StatusCancelled,
	"canceled":  item.StatusCancelled,
}

func statusField(_ *Builder, value string) Predicate {
	status, ok := inStatuses[value]
	if !ok {
		return nil
	}
	return statusIs(status)
}

func statusIs(status item.Status) Predicate {
	return &CompareExpr{Field: FieldStatus, Op: "=", Value: string(status)}
}

func notCompleted() Predicate {
	return &CompareExpr{Field: FieldCompleted, Op: "=", Value: false}
}

func stateField(b *Builder, value string) Predicate {
	switch value {
	case "overdue":
		return And(&DueExpr{Kind: DueBefore}, notCompleted())
	case "due", "today":
		return And(&DueExpr{Kind: DueOn}, notCompleted())
	case "soon":
		return And(&DueExpr{Kind: DueWithin, Days: b.soonDays}, notCompleted())
	case "active":
		return &InExpr{Field: FieldStatus, Not: true, Values: []interface{}{
			string(item.StatusCompleted),
			string(item.StatusCancelled),
			string(item.StatusReference),
		}}
	case "completed":
		return &CompareExpr{Field: FieldCompleted, Op: "=", Value: true}
	case "actionable":
		return &InExpr{Field: FieldStatus, Values: []interface{}{
			string(item.StatusNextAction),
			string(item.StatusProject),
		}}
	default:
		return nil
	}
}

var existenceFields = map[string]string{
	"due":         FieldDue,
	"project":     FieldParent,
	"context":     FieldContexts,
	"area":        FieldArea,
	"tags":        FieldTags,
	"description": FieldDescription,
}

func existenceField(_ *Builder, value string) Predicate {
	field, ok := existenceFields[value]
	if !ok {
		return nil
	}
	return &ExistsExpr{Field: field}
}

var priorityLevels = map[string]item.Priority{
	"low":    item.PriorityLow,
	"normal": item.PriorityNormal,
	"high":   item.PriorityHigh,
	"urgent": item.PriorityUrgent,
}

func priorityField(_ *Builder, value string) Predicate {
	p, ok := priorityLevels[value]
	if !ok {
		return nil
	}
	return &CompareExpr{Field: FieldPriority, Op: "=", Value: int(p)}
}

var energyLevels = map[string]item.Energy{
	"low":    item.EnergyLow,
	"normal": item.EnergyNone,
	"medium": item.EnergyMedium,
	"high":   item.EnergyHigh,
}

func energyField(_ *Builder, value string) Predicate {
	e, ok := energyLevels[value]
	if !ok {
		return nil
	}
	return &CompareExpr{Field: FieldEnergy, Op: "=", Value: string(e)}
}

var relativeDuePattern = regexp.MustCompile(`^([+-])(\d+)(days?|weeks?)$`)

func dueField(_ *Builder, value string) Predicate {
	switch value {
	case "today":
		return &DueExpr{Kind: DueOn}
	case "tomorrow":
		return &DueExpr{Kind: DueOn, Days: 1}
	case "yesterday":
		return &DueExpr{Kind: DueOn, Days: -1}
	}

	m := relativeDuePattern.FindStringSubmatch(value)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	if strings.HasPrefix(m[3], "week") {
		n *= 7
	}
	if m[1] == "-" {
		n = -n
	}
	return &DueExpr{Kind: DueOn, Days: n}
}

// parseID returns a positive integer id, or false when value is a name.
func parseID(value string) (int, bool) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func projectField(_ *Builder, value string) Predicate {
	if id, ok := parseID(value); ok {
		return Or(
			And(&CompareExpr{Field: FieldID, Op: "=", Value: id}, statusIs(item.StatusProject)),
			&RelationExpr{Field: FieldParent, ID: id},
		)
	}
	return &RelationExpr{Field: FieldParent, Name: value}
}

func parentField(_ *Builder, value string) Predicate {
	if id, ok := parseID(value); ok {
		return &RelationExpr{Field: FieldParent, ID: id}
	}
	return &RelationExpr{Field: FieldParent, Name: value}
}

func contextField(_ *Builder, value string) Predicate {
	if id, ok := parseID(value); ok {
		return &RelationExpr{Field: FieldContexts, ID: id}
	}
	return &RelationExpr{Field: FieldContexts, Name: strings.TrimLeft(value, contextPrefixes)}
}

func areaField(_ *Builder, value string) Predicate {
	if id, ok := parseID(value); ok {
		return &RelationExpr{Field: FieldArea, ID: id}
	}
	return &RelationExpr{Field: FieldArea, Name: strings.TrimLeft(value, contextPrefixes), Mode: MatchExact}
}

// tagsField keeps the historical meaning of tags as a context alias and also
// matches the item's own tags.
func tagsField(_ *Builder, value string) Predicate {
	if id, ok := parseID(value); ok {
		return &RelationExpr{Field: FieldTags, ID: id}
	}
	name := strings.TrimLeft(value, contextPrefixes)
	return Or(
		&RelationExpr{Field: FieldContexts, Name: name},
		&RelationExpr{Field: FieldTags, Name: name},
	)
}

func waitingField(_ *Builder, value string) Predicate {
	if value == "" {
		return nil
	}
	return &TextExpr{Field: FieldWaitingFor, Value: value}
}

func idField(_ *Builder, value string) Predicate {
	id, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &CompareExpr{Field: FieldID, Op: "=", Value: id}
}
