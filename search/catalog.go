package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/boolean-maybe/sieve/item"
)

// FilterCategory groups catalog entries.
type FilterCategory string

const (
	CategoryStatus       FilterCategory = "status"
	CategoryPriority     FilterCategory = "priority"
	CategoryDue          FilterCategory = "due"
	CategoryEnergy       FilterCategory = "energy"
	CategoryRelationship FilterCategory = "relationship"
	CategoryArea         FilterCategory = "area"
	CategoryContext      FilterCategory = "context"
	CategoryProject      FilterCategory = "project"
)

var categoryLabels = map[FilterCategory]string{
	CategoryStatus:       "Status",
	CategoryPriority:     "Priority",
	CategoryDue:          "Due Date",
	CategoryEnergy:       "Energy",
	CategoryRelationship: "Relationship",
	CategoryArea:         "Area",
	CategoryContext:      "Context",
	CategoryProject:      "Project",
}

// Categories returns every category in display order.
func Categories() []FilterCategory {
	return []FilterCategory{
		CategoryStatus,
		CategoryPriority,
		CategoryDue,
		CategoryEnergy,
		CategoryRelationship,
		CategoryArea,
		CategoryContext,
		CategoryProject,
	}
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (FilterCategory, bool) {
	c := FilterCategory(strings.ToLower(strings.TrimSpace(s)))
	_, ok := categoryLabels[c]
	return c, ok
}

// Label returns the display label of the category.
func (c FilterCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// FilterStrategy controls what a click on a filter does to the query.
type FilterStrategy int

const (
	// StrategyDefault defers to the strategy of the filter's category.
	StrategyDefault FilterStrategy = iota
	// StrategyNormal adds an inactive filter and removes an active one.
	// Filters of the same field accumulate.
	StrategyNormal
	// StrategyExclusive keeps at most one value per field.
	StrategyExclusive
	// StrategyInvert cycles included, excluded, removed.
	StrategyInvert
	// StrategyReplace clears every other filter, then behaves like StrategyInvert.
	StrategyReplace
)

var strategyNames = map[FilterStrategy]string{
	StrategyDefault:   "default",
	StrategyNormal:    "normal",
	StrategyExclusive: "exclusive",
	StrategyInvert:    "invert",
	StrategyReplace:   "replace",
}

func (s FilterStrategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseFilterStrategy converts a strategy name. The empty string is StrategyDefault.
func ParseFilterStrategy(s string) (FilterStrategy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return StrategyDefault, nil
	}
	for strategy, n := range strategyNames {
		if n == name {
			return strategy, nil
		}
	}
	return StrategyDefault, fmt.Errorf("unknown filter strategy %q", s)
}

var categoryStrategies = map[FilterCategory]FilterStrategy{
	CategoryStatus:       StrategyReplace,
	CategoryPriority:     StrategyExclusive,
	CategoryDue:          StrategyExclusive,
	CategoryEnergy:       StrategyExclusive,
	CategoryRelationship: StrategyNormal,
	CategoryArea:         StrategyInvert,
	CategoryContext:      StrategyNormal,
	CategoryProject:      StrategyExclusive,
}

// StrategyFor returns the toggle strategy of a category, StrategyNormal for
// unknown ones.
func StrategyFor(c FilterCategory) FilterStrategy {
	if s, ok := categoryStrategies[c]; ok {
		return s
	}
	return StrategyNormal
}

// FilterOption is a clickable filter. Active, Inverted and NextQuery are only
// meaningful on values returned by Decorate or FiltersWithState.
type FilterOption struct {
	Label    string
	Query    string
	Icon     string
	Color    string
	Category FilterCategory
	Strategy FilterStrategy

	Active    bool
	Inverted  bool
	NextQuery string
}

// NewFilterOption builds a catalog entry with the strategy of its category.
func NewFilterOption(label, query, icon, color string, category FilterCategory) FilterOption {
	return FilterOption{
		Label:    label,
		Query:    query,
		Icon:     icon,
		Color:    color,
		Category: category,
		Strategy: StrategyFor(category),
	}
}

// EffectiveStrategy returns Strategy, or the category's strategy when unset.
func (f FilterOption) EffectiveStrategy() FilterStrategy {
	if f.Strategy != StrategyDefault {
		return f.Strategy
	}
	return StrategyFor(f.Category)
}

// State returns the decorated toggle state.
func (f FilterOption) State() ToggleState {
	return ToggleState{Active: f.Active, Inverted: f.Inverted}
}

var (
	statusFilters = []FilterOption{
		NewFilterOption("Inbox", "in:inbox", "lucide-inbox", "blue", CategoryStatus),
		NewFilterOption("Next Actions", "in:next", "lucide-zap", "blue", CategoryStatus),
		NewFilterOption("Waiting For", "in:waiting", "lucide-hourglass", "blue", CategoryStatus),
		NewFilterOption("Someday", "in:someday", "lucide-history", "blue", CategoryStatus),
		NewFilterOption("Projects", "in:project", "lucide-briefcase", "blue", CategoryStatus),
		NewFilterOption("Reference", "in:reference", "lucide-archive", "blue", CategoryStatus),
		NewFilterOption("Cancelled", "in:cancelled", "lucide-trash-2", "blue", CategoryStatus),
	}

	priorityFilters = []FilterOption{
		NewFilterOption("Low Priority", "priority:low", "lucide-arrow-down", "red", CategoryPriority),
		NewFilterOption("Normal Priority", "priority:normal", "lucide-minus", "red", CategoryPriority),
		NewFilterOption("High Priority", "priority:high", "lucide-arrow-up", "red", CategoryPriority),
		NewFilterOption("Urgent Priority", "priority:urgent", "lucide-circle-alert", "red", CategoryPriority),
	}

	dueFilters = []FilterOption{
		NewFilterOption("Has Due Date", "has:due", "lucide-calendar-clock", "orange", CategoryDue),
		NewFilterOption("Overdue", "is:overdue", "lucide-triangle-alert", "orange", CategoryDue),
		NewFilterOption("Due Today", "is:due", "lucide-calendar", "orange", CategoryDue),
		NewFilterOption("Due Soon", "is:soon", "lucide-clock", "orange", CategoryDue),
	}

	energyFilters = []FilterOption{
		NewFilterOption("Low Energy", "energy:low", "lucide-battery-low", "yellow", CategoryEnergy),
		NewFilterOption("Normal Energy", "energy:normal", "lucide-battery", "yellow", CategoryEnergy),
		NewFilterOption("Medium Energy", "energy:medium", "lucide-battery-medium", "yellow", CategoryEnergy),
		NewFilterOption("High Energy", "energy:high", "lucide-battery-full", "yellow", CategoryEnergy),
	}

	relationshipFilters = []FilterOption{
		NewFilterOption("Has Project", "has:project", "lucide-folder", "blue", CategoryRelationship),
		NewFilterOption("Has Context", "has:context", "lucide-hash", "blue", CategoryRelationship),
		NewFilterOption("Has Area", "has:area", "lucide-target", "blue", CategoryRelationship),
		NewFilterOption("Has Description", "has:description", "lucide-file-text", "blue", CategoryRelationship),
	}

	popularFilters = []FilterOption{
		statusFilters[0],
		statusFilters[1],
		dueFilters[1],
		dueFilters[2],
		priorityFilters[2],
		relationshipFilters[0],
	}
)

// SearchFilter builds the filter catalog for one caller. The static entries
// are fixed; Areas, Contexts, Tags and Projects add one entry each.
type SearchFilter struct {
	Areas    []item.Ref
	Contexts []item.Ref
	Tags     []item.Ref
	Projects []item.Ref

	// Parser computes state and next queries. Nil uses the default parser.
	Parser *Parser
}

// AllFilters returns every filter in category order.
func (sf SearchFilter) AllFilters() []FilterOption {
	var filters []FilterOption
	filters = append(filters, statusFilters...)
	filters = append(filters, priorityFilters...)
	filters = append(filters, dueFilters...)
	filters = append(filters, energyFilters...)
	filters = append(filters, relationshipFilters...)

	for _, a := range sf.Areas {
		filters = append(filters, NewFilterOption(a.Name, quotedFilter("area", a.Name), "lucide-at-sign", "green", CategoryArea))
	}
	for _, c := range sf.Contexts {
		filters = append(filters, NewFilterOption(c.Name, quotedFilter("context", c.Name), "lucide-hash", "purple", CategoryContext))
	}
	for _, t := range sf.Tags {
		filters = append(filters, NewFilterOption(t.Name, quotedFilter("tags", t.Name), "lucide-tag", "purple", CategoryContext))
	}
	for _, p := range sf.Projects {
		filters = append(filters, NewFilterOption(p.Name, "project:"+strconv.Itoa(p.ID), "lucide-briefcase", "purple", CategoryProject))
	}
	return filters
}

// FiltersByCategory returns the filters of one category.
func (sf SearchFilter) FiltersByCategory(c FilterCategory) []FilterOption {
	var out []FilterOption
	for _, f := range sf.AllFilters() {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}

// PopularFilters returns a fixed shortlist for quick access.
func (sf SearchFilter) PopularFilters() []FilterOption {
	return append([]FilterOption(nil), popularFilters...)
}

// FiltersWithState decorates every filter against query, keyed by category.
// Categories without entries are omitted.
func (sf SearchFilter) FiltersWithState(query string) map[FilterCategory][]FilterOption {
	p := sf.Parser
	if p == nil {
		p = defaultParser
	}

	grouped := make(map[FilterCategory][]FilterOption)
	for _, f := range p.Decorate(query, sf.AllFilters()) {
		grouped[f.Category] = append(grouped[f.Category], f)
	}
	return grouped
}

// quotedFilter renders field:"name"; quotes inside name are dropped.
func quotedFilter(field, name string) string {
	return field + `:"` + strings.ReplaceAll(name, `"`, "") + `"`
}
