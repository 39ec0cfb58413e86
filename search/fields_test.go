package search

import (
	"testing"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/testutil"
	"github.com/google/go-cmp/cmp"
)

// matchingIDs returns the fixture ids p selects at the fixture clock.
func matchingIDs(p Predicate) []int {
	var ids []int
	for _, it := range testutil.Items() {
		if p.Evaluate(it, testutil.Now) {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

func TestBuildFieldPredicate(t *testing.T) {
	b := NewBuilder()

	tests := []struct {
		name   string
		field  string
		values []string
		want   []int
	}{
		{name: "in inbox", field: "in", values: []string{"inbox"}, want: []int{1}},
		{name: "in alias and case", field: "in", values: []string{" Action "}, want: []int{2, 4, 8}},
		{name: "in maybe", field: "in", values: []string{"maybe"}, want: []int{6}},
		{name: "in several values", field: "in", values: []string{"waiting", "project"}, want: []int{3, 5}},
		{name: "in canceled alias", field: "in", values: []string{"canceled", "completed"}, want: []int{7}},
		{name: "is overdue", field: "is", values: []string{"overdue"}, want: []int{5}},
		{name: "is due", field: "is", values: []string{"due"}, want: []int{2}},
		{name: "is today", field: "is", values: []string{"today"}, want: []int{2}},
		{name: "is soon", field: "is", values: []string{"soon"}, want: []int{2, 8}},
		{name: "is active", field: "is", values: []string{"active"}, want: []int{1, 2, 3, 4, 5, 6, 8}},
		{name: "is completed", field: "is", values: []string{"completed"}, want: []int{7}},
		{name: "is actionable", field: "is", values: []string{"actionable"}, want: []int{2, 3, 4, 8}},
		{name: "has due", field: "has", values: []string{"due"}, want: []int{2, 4, 5, 7, 8}},
		{name: "has project", field: "has", values: []string{"project"}, want: []int{4}},
		{name: "has context", field: "has", values: []string{"context"}, want: []int{2, 4, 8}},
		{name: "has area", field: "has", values: []string{"area"}, want: []int{3, 4, 5}},
		{name: "has description", field: "has", values: []string{"description"}, want: []int{3}},
		{name: "priority", field: "priority", values: []string{"urgent"}, want: []int{5}},
		{name: "priority forced exclusion", field: "priority", values: []string{"-normal"}, want: []int{2, 4, 5, 6}},
		{name: "priority match minus exclusion", field: "priority", values: []string{"low", "-low"}, want: nil},
		{name: "energy", field: "energy", values: []string{"high"}, want: []int{4}},
		{name: "energy normal means unset", field: "energy", values: []string{"normal"}, want: []int{1, 3, 5, 7, 8}},
		{name: "energy forced exclusion", field: "energy", values: []string{"-low"}, want: []int{1, 2, 3, 4, 5, 7, 8}},
		{name: "due today", field: "due", values: []string{"today"}, want: []int{2}},
		{name: "due relative days", field: "due", values: []string{"+2days"}, want: []int{8}},
		{name: "due past day", field: "due", values: []string{"-1day"}, want: []int{5}},
		{name: "due yesterday", field: "due", values: []string{"yesterday"}, want: []int{5}},
		{name: "due relative weeks", field: "due", values: []string{"+1week", "-2days"}, want: []int{7}},
		{name: "project by id", field: "project", values: []string{"3"}, want: []int{3, 4}},
		{name: "project by id needs project status", field: "project", values: []string{"4"}, want: nil},
		{name: "project by title", field: "project", values: []string{"GARDEN"}, want: []int{4}},
		{name: "parent by id", field: "parent", values: []string{"3"}, want: []int{4}},
		{name: "context by name", field: "context", values: []string{"@phone"}, want: []int{2, 8}},
		{name: "context substring", field: "context", values: []string{"hom"}, want: []int{4, 8}},
		{name: "context by id", field: "context", values: []string{"2"}, want: []int{4, 8}},
		{name: "area exact", field: "area", values: []string{"#home"}, want: []int{3, 4}},
		{name: "area no substring", field: "area", values: []string{"hom"}, want: nil},
		{name: "area by id", field: "area", values: []string{"2"}, want: []int{5}},
		{name: "tags match contexts and tags", field: "tags", values: []string{"!phone", "errand"}, want: []int{1, 2, 8}},
		{name: "tags by id", field: "tags", values: []string{"1"}, want: []int{1, 8}},
		{name: "waiting", field: "waiting", values: []string{"alice"}, want: []int{5}},
		{name: "id", field: "id", values: []string{"6"}, want: []int{6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := b.BuildFieldPredicate(tt.field, tt.values)
			if p == nil {
				t.Fatalf("BuildFieldPredicate(%q, %q) = nil", tt.field, tt.values)
			}
			if diff := cmp.Diff(tt.want, matchingIDs(p)); diff != "" {
				t.Errorf("matching ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildFieldPredicateIgnoresUnknown(t *testing.T) {
	b := NewBuilder()

	tests := []struct {
		field  string
		values []string
	}{
		{field: "colour", values: []string{"red"}},
		{field: "in", values: []string{"bogus"}},
		{field: "is", values: []string{"late"}},
		{field: "has", values: []string{"cats"}},
		{field: "priority", values: []string{"extreme", "-extreme"}},
		{field: "due", values: []string{"someday", "+3fortnights"}},
		{field: "id", values: []string{"abc"}},
		{field: "waiting", values: []string{"  "}},
		{field: "in", values: nil},
	}

	for _, tt := range tests {
		if p := b.BuildFieldPredicate(tt.field, tt.values); p != nil {
			t.Errorf("BuildFieldPredicate(%q, %q) = %#v, want nil", tt.field, tt.values, p)
		}
	}
}

func TestBuildFieldPredicateSkipsUnknownValues(t *testing.T) {
	p := NewBuilder().BuildFieldPredicate("in", []string{"bogus", "inbox"})
	if diff := cmp.Diff([]int{1}, matchingIDs(p)); diff != "" {
		t.Errorf("matching ids mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFieldFilterSeparatesForcedExclusions(t *testing.T) {
	ff := NewBuilder().BuildFieldFilter("priority", []string{"high", "-low"})
	if ff.Match == nil || ff.Exclude == nil {
		t.Fatalf("BuildFieldFilter = %+v, want both Match and Exclude", ff)
	}
	if diff := cmp.Diff([]int{2}, matchingIDs(ff.Match)); diff != "" {
		t.Errorf("Match mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{4, 6}, matchingIDs(ff.Exclude)); diff != "" {
		t.Errorf("Exclude mismatch (-want +got):\n%s", diff)
	}
}

func TestSoonDaysOption(t *testing.T) {
	p := NewBuilder(WithSoonDays(7)).BuildFieldPredicate("is", []string{"soon"})
	if diff := cmp.Diff([]int{2, 4, 8}, matchingIDs(p)); diff != "" {
		t.Errorf("matching ids mismatch (-want +got):\n%s", diff)
	}

	if b := NewBuilder(WithSoonDays(0)); b.soonDays != DefaultSoonDays {
		t.Errorf("soonDays = %d, want %d", b.soonDays, DefaultSoonDays)
	}
}

func TestDueWindowFollowsClock(t *testing.T) {
	due := testutil.Now.AddDate(0, 0, 1)
	it := &item.Item{ID: 1, DueDate: &due}
	p := NewBuilder().BuildFieldPredicate("due", []string{"tomorrow"})

	if !p.Evaluate(it, testutil.Now) {
		t.Error("due:tomorrow should match an item due tomorrow")
	}
	if p.Evaluate(it, testutil.Now.AddDate(0, 0, 1)) {
		t.Error("due:tomorrow should not match the same item a day later")
	}
}
