package search

import (
	"testing"

	"github.com/boolean-maybe/sieve/item"
)

func TestNextQuery(t *testing.T) {
	inbox := NewFilterOption("Inbox", "in:inbox", "lucide-inbox", "blue", CategoryStatus)
	next := NewFilterOption("Next Actions", "in:next", "lucide-zap", "blue", CategoryStatus)
	high := NewFilterOption("High Priority", "priority:high", "lucide-arrow-up", "red", CategoryPriority)
	hasProject := NewFilterOption("Has Project", "has:project", "lucide-folder", "blue", CategoryRelationship)
	hasContext := NewFilterOption("Has Context", "has:context", "lucide-hash", "blue", CategoryRelationship)
	work := NewFilterOption("Work", `area:"Work"`, "lucide-at-sign", "green", CategoryArea)
	phone := NewFilterOption("phone", `context:"phone"`, "lucide-hash", "purple", CategoryContext)

	active := ToggleState{Active: true}
	inverted := ToggleState{Active: true, Inverted: true}

	tests := []struct {
		name    string
		current string
		target  FilterOption
		state   ToggleState
		want    string
	}{
		// replace
		{name: "replace swaps status", current: "in:inbox", target: next, want: "in:next"},
		{name: "replace clears other filters, keeps free text", current: "in:inbox priority:high -area:Work milk", target: next, want: "in:next milk"},
		{name: "replace active inverts", current: "in:inbox priority:high", target: inbox, state: active, want: "-in:inbox"},
		{name: "replace inverted removes", current: "-in:inbox has:due milk", target: inbox, state: inverted, want: "milk"},

		// exclusive
		{name: "exclusive adds", current: "", target: high, want: "priority:high"},
		{name: "exclusive replaces same field", current: "priority:low,normal has:due", target: high, want: "has:due priority:high"},
		{name: "exclusive drops excluded values of field", current: "-priority:low", target: high, want: "priority:high"},
		{name: "exclusive active removes", current: "priority:high in:next", target: high, state: active, want: "in:next"},

		// normal
		{name: "normal adds alongside", current: "has:project", target: hasContext, want: "has:project,context"},
		{name: "normal active removes only itself", current: "has:project,context", target: hasProject, state: active, want: "has:context"},
		{name: "normal removes excluded value", current: "-has:project in:next", target: hasProject, state: inverted, want: "in:next"},
		{name: "normal does not duplicate", current: "context:Phone", target: phone, want: "context:Phone"},

		// invert
		{name: "invert adds", current: "in:next", target: work, want: "in:next area:Work"},
		{name: "invert moves to excluded", current: "area:Work in:next", target: work, state: active, want: "in:next -area:Work"},
		{name: "invert removes excluded", current: "in:next -area:Work", target: work, state: inverted, want: "in:next"},
		{name: "invert matches case-insensitively", current: "area:work", target: work, state: active, want: "-area:Work"},
		{name: "field names match case-insensitively", current: "Context:Phone in:next", target: phone, state: active, want: "in:next"},
		{name: "exclusive clears differently cased field", current: "Priority:low", target: high, want: "priority:high"},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.NextQuery(tt.current, tt.target, tt.state); got != tt.want {
				t.Errorf("NextQuery(%q, %s) = %q, want %q", tt.current, tt.target.Query, got, tt.want)
			}
		})
	}
}

func TestNextQueryCycles(t *testing.T) {
	tests := []struct {
		name   string
		target FilterOption
		want   []string
	}{
		{
			name:   "invert",
			target: NewFilterOption("Deep Work", `area:"Deep Work"`, "lucide-at-sign", "green", CategoryArea),
			want:   []string{`area:"Deep Work"`, `-area:"Deep Work"`, ""},
		},
		{
			name:   "replace",
			target: NewFilterOption("Inbox", "in:inbox", "lucide-inbox", "blue", CategoryStatus),
			want:   []string{"in:inbox", "-in:inbox", ""},
		},
		{
			name:   "exclusive",
			target: NewFilterOption("Low Energy", "energy:low", "lucide-battery-low", "yellow", CategoryEnergy),
			want:   []string{"energy:low", "", "energy:low"},
		},
		{
			name:   "normal",
			target: NewFilterOption("Has Area", "has:area", "lucide-target", "blue", CategoryRelationship),
			want:   []string{"has:area", "", "has:area"},
		},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := ""
			for i, want := range tt.want {
				query = p.NextQuery(query, tt.target, p.StateOf(query, tt.target.Query))
				if query != want {
					t.Fatalf("click %d: query = %q, want %q", i+1, query, want)
				}
			}
		})
	}
}

func TestNextQueryWithStrategy(t *testing.T) {
	high := NewFilterOption("High Priority", "priority:high", "lucide-arrow-up", "red", CategoryPriority)
	work := NewFilterOption("Work", `area:"Work"`, "lucide-at-sign", "green", CategoryArea)
	next := NewFilterOption("Next Actions", "in:next", "lucide-zap", "blue", CategoryStatus)

	tests := []struct {
		name     string
		current  string
		target   FilterOption
		state    ToggleState
		strategy FilterStrategy
		want     string
	}{
		{name: "explicit normal", current: "priority:low", target: high, strategy: StrategyNormal, want: "priority:low,high"},
		{name: "default uses exclusive category", current: "priority:low", target: high, strategy: StrategyDefault, want: "priority:high"},
		{name: "default uses invert category", current: "area:Work", target: work, state: ToggleState{Active: true}, strategy: StrategyDefault, want: "-area:Work"},
		{name: "default uses replace category", current: "in:inbox has:due milk", target: next, strategy: StrategyDefault, want: "in:next milk"},
		{name: "explicit overrides category", current: "area:Work", target: work, state: ToggleState{Active: true}, strategy: StrategyNormal, want: ""},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.NextQueryWithStrategy(tt.current, tt.target, tt.state, tt.strategy)
			if got != tt.want {
				t.Errorf("NextQueryWithStrategy(%q, %s, %s) = %q, want %q", tt.current, tt.target.Query, tt.strategy, got, tt.want)
			}
		})
	}
}

func TestNextQueryInvalidFilter(t *testing.T) {
	p := NewParser()
	current := "in:inbox   milk"
	for _, query := range []string{"", "not a filter", "area:", `area:""`} {
		target := FilterOption{Label: "Broken", Query: query, Category: CategoryArea}
		if got := p.NextQuery(current, target, ToggleState{}); got != current {
			t.Errorf("NextQuery with filter %q = %q, want unchanged %q", query, got, current)
		}
	}
}

func TestNextQueryIgnoresForcedQuery(t *testing.T) {
	p := NewParser(WithForcedQuery("urgent"))
	inbox := NewFilterOption("Inbox", "in:inbox", "lucide-inbox", "blue", CategoryStatus)

	if got := p.NextQuery("", inbox, ToggleState{}); got != "in:inbox" {
		t.Errorf("NextQuery = %q, want %q", got, "in:inbox")
	}
}

func TestStateOf(t *testing.T) {
	tests := []struct {
		current string
		filter  string
		want    ToggleState
	}{
		{current: "", filter: "in:inbox", want: ToggleState{}},
		{current: "in:inbox", filter: "in:inbox", want: ToggleState{Active: true}},
		{current: "-in:inbox", filter: "in:inbox", want: ToggleState{Active: true, Inverted: true}},
		{current: `area:"deep work"`, filter: `area:"Deep Work"`, want: ToggleState{Active: true}},
		{current: "area:Home,Work", filter: `area:"Work"`, want: ToggleState{Active: true}},
		{current: "area:Home -area:Work", filter: `area:"Work"`, want: ToggleState{Active: true, Inverted: true}},
		{current: "area:Work", filter: "context:Work", want: ToggleState{}},
		{current: "Context:Phone", filter: `context:"phone"`, want: ToggleState{Active: true}},
		{current: "-AREA:Work", filter: `area:"Work"`, want: ToggleState{Active: true, Inverted: true}},
	}

	p := NewParser()
	for _, tt := range tests {
		if got := p.StateOf(tt.current, tt.filter); got != tt.want {
			t.Errorf("StateOf(%q, %q) = %+v, want %+v", tt.current, tt.filter, got, tt.want)
		}
	}
}

func TestDecorate(t *testing.T) {
	sf := SearchFilter{Areas: []item.Ref{{ID: 1, Name: "Work"}}}
	filters := NewParser().Decorate("in:inbox -area:Work milk", sf.AllFilters())

	byQuery := make(map[string]FilterOption, len(filters))
	for _, f := range filters {
		byQuery[f.Query] = f
	}

	tests := []struct {
		query    string
		active   bool
		inverted bool
		next     string
	}{
		{query: "in:inbox", active: true, next: "-in:inbox milk"},
		{query: "in:next", next: "in:next milk"},
		{query: `area:"Work"`, active: true, inverted: true, next: "in:inbox milk"},
		{query: "priority:high", next: "in:inbox priority:high -area:Work milk"},
		{query: "has:due", next: "in:inbox has:due -area:Work milk"},
	}

	for _, tt := range tests {
		f, ok := byQuery[tt.query]
		if !ok {
			t.Fatalf("filter %q missing", tt.query)
		}
		if f.Active != tt.active || f.Inverted != tt.inverted {
			t.Errorf("%s: state = %+v, want {Active:%v Inverted:%v}", tt.query, f.State(), tt.active, tt.inverted)
		}
		if f.NextQuery != tt.next {
			t.Errorf("%s: NextQuery = %q, want %q", tt.query, f.NextQuery, tt.next)
		}
	}
}
