package item

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Ref points at a related record (project, area, context or tag) by id and
// display name.
type Ref struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// Item is a single GTD entry: an action, a project or a piece of reference.
type Item struct {
	ID          int
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Energy      Energy
	Parent      *Ref // parent project; Name holds its title
	Area        *Ref
	Contexts    []Ref
	Tags        []Ref
	DueDate     *time.Time
	Completed   bool
	WaitingFor  string // delegate person for waiting_for items
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the item still needs attention.
func (it *Item) IsActive() bool {
	switch it.Status {
	case StatusCompleted, StatusCancelled, StatusReference:
		return false
	}
	return true
}

// IsActionable reports whether the item can be worked on directly.
func (it *Item) IsActionable() bool {
	return it.Status == StatusNextAction || it.Status == StatusProject
}

// IsOverdue reports whether an open item is past its due date at now.
func (it *Item) IsOverdue(now time.Time) bool {
	return it.DueDate != nil && !it.Completed && it.DueDate.Before(now)
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NamesValue decodes a YAML list of names or a single comma/space separated string.
type NamesValue []string

func (nv *NamesValue) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		*nv = cleanNames(names)
	case yaml.ScalarNode:
		*nv = cleanNames(strings.FieldsFunc(value.Value, func(r rune) bool {
			return r == ',' || r == ' '
		}))
	default:
		*nv = nil
	}
	return nil
}

// ToStringSlice returns the decoded names.
func (nv NamesValue) ToStringSlice() []string {
	if nv == nil {
		return nil
	}
	return append([]string(nil), nv...)
}

func cleanNames(names []string) []string {
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
