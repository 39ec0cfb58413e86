package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/search"
	"github.com/boolean-maybe/sieve/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSortItems(t *testing.T) {
	tests := []struct {
		name     string
		items    []*item.Item
		expected []int // expected order of IDs
	}{
		{
			name: "sort by priority first, then title",
			items: []*item.Item{
				{ID: 1, Title: "Zebra Task", Priority: item.PriorityNormal},
				{ID: 2, Title: "Alpha Task", Priority: item.PriorityHigh},
				{ID: 3, Title: "Beta Task", Priority: item.PriorityHigh},
			},
			expected: []int{2, 3, 1}, // Alpha, Beta (both high), then Zebra
		},
		{
			name: "same priority - alphabetical by title ignoring case",
			items: []*item.Item{
				{ID: 10, Title: "zebra", Priority: item.PriorityLow},
				{ID: 11, Title: "Apple", Priority: item.PriorityLow},
				{ID: 12, Title: "mango", Priority: item.PriorityLow},
			},
			expected: []int{11, 12, 10},
		},
		{
			name: "same title - by id",
			items: []*item.Item{
				{ID: 9, Title: "Same", Priority: item.PriorityUrgent},
				{ID: 4, Title: "Same", Priority: item.PriorityUrgent},
			},
			expected: []int{4, 9},
		},
		{
			name:     "empty item list",
			items:    []*item.Item{},
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortItems(tt.items)

			if len(tt.items) != len(tt.expected) {
				t.Fatalf("item count = %d, want %d", len(tt.items), len(tt.expected))
			}
			for i, it := range tt.items {
				if it.ID != tt.expected[i] {
					t.Errorf("items[%d].ID = %d, want %d", i, it.ID, tt.expected[i])
				}
			}
		})
	}
}

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		frontmatter string
		body        string
		wantErr     error
	}{
		{
			name:        "frontmatter and body",
			content:     "---\ntitle: Hello\n---\nBody text\n",
			frontmatter: "title: Hello\n",
			body:        "Body text\n",
		},
		{
			name:        "windows line endings",
			content:     "---\r\ntitle: Hello\r\n---\r\nBody\r\n",
			frontmatter: "title: Hello\n",
			body:        "Body\n",
		},
		{
			name:        "closing delimiter at end of file",
			content:     "---\ntitle: Hello\n---",
			frontmatter: "title: Hello\n",
			body:        "",
		},
		{
			name:        "empty frontmatter",
			content:     "---\n---\nBody",
			frontmatter: "",
			body:        "Body",
		},
		{
			name:    "no frontmatter",
			content: "Just a note\n---\n",
			body:    "Just a note\n---\n",
		},
		{
			name:    "unterminated",
			content: "---\ntitle: Hello\nBody",
			wantErr: ErrUnterminatedFrontmatter,
		},
		{
			name:    "only opening delimiter",
			content: "---",
			wantErr: ErrUnterminatedFrontmatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, err := ParseFrontmatter(tt.content)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if fm != tt.frontmatter {
				t.Errorf("frontmatter = %q, want %q", fm, tt.frontmatter)
			}
			if body != tt.body {
				t.Errorf("body = %q, want %q", body, tt.body)
			}
		})
	}
}

func newFixtureStore(t *testing.T) *InMemoryStore {
	t.Helper()
	s := NewInMemoryStore(WithClock(func() time.Time { return testutil.Now }))
	if err := s.Put(testutil.Items()...); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	return s
}

func TestInMemoryStoreSearch(t *testing.T) {
	s := newFixtureStore(t)
	ctx := context.Background()

	tests := []struct {
		query string
		want  []int
	}{
		{query: "", want: []int{5, 2, 1, 7, 3, 8, 6, 4}},
		{query: "in:next", want: []int{2, 8, 4}},
		{query: "is:overdue", want: []int{5}},
		{query: "-priority:low,normal", want: []int{5, 2}},
		{query: "area:home -in:project", want: []int{4}},
		{query: "errands", want: nil},
		{query: "tags:errands", want: []int{1, 8}},
	}

	for _, tt := range tests {
		got, err := s.Search(ctx, tt.query)
		if err != nil {
			t.Fatalf("Search(%q) error: %v", tt.query, err)
		}
		if diff := cmp.Diff(tt.want, testutil.IDs(got), cmpIDs); diff != "" {
			t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestInMemoryStoreSearchOptions(t *testing.T) {
	s := newFixtureStore(t)
	got, err := s.Search(context.Background(), "is:soon", search.WithSoonDays(7))
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if diff := cmp.Diff([]int{2, 8, 4}, testutil.IDs(got)); diff != "" {
		t.Errorf("Search mismatch (-want +got):\n%s", diff)
	}
}

func TestInMemoryStoreGetItem(t *testing.T) {
	s := newFixtureStore(t)
	ctx := context.Background()

	it, err := s.GetItem(ctx, 3)
	if err != nil {
		t.Fatalf("GetItem(3) error: %v", err)
	}
	if it.Title != "Garden redesign" {
		t.Errorf("GetItem(3).Title = %q", it.Title)
	}

	if _, err := s.GetItem(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetItem(99) error = %v, want ErrNotFound", err)
	}
}

func TestInMemoryStorePutRejectsBadIDs(t *testing.T) {
	s := NewInMemoryStore()
	if err := s.Put(&item.Item{Title: "no id"}); err == nil {
		t.Error("Put should reject an item without id")
	}
	if err := s.Put(nil); err == nil {
		t.Error("Put should reject a nil item")
	}
}

func TestInMemoryStoreListeners(t *testing.T) {
	s := NewInMemoryStore()
	calls := 0
	id := s.AddListener(func() { calls++ })
	if id != 1 {
		t.Errorf("first listener id = %d, want 1", id)
	}

	if err := s.Put(&item.Item{ID: 1, Title: "a"}, &item.Item{ID: 2, Title: "b"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	s.Delete(1)
	if calls != 2 {
		t.Errorf("listener calls = %d, want 2", calls)
	}

	s.RemoveListener(id)
	s.Delete(2)
	if calls != 2 {
		t.Errorf("listener called after removal: %d calls", calls)
	}
}

func TestBuildCatalog(t *testing.T) {
	got := BuildCatalog(testutil.Items())
	want := search.SearchFilter{
		Areas:    []item.Ref{testutil.AreaHome, testutil.AreaWork},
		Contexts: []item.Ref{testutil.ContextHome, testutil.ContextPhone},
		Tags:     []item.Ref{testutil.TagErrands},
		Projects: []item.Ref{{ID: 3, Name: "Garden redesign"}},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(search.SearchFilter{}, "Parser")); diff != "" {
		t.Errorf("BuildCatalog mismatch (-want +got):\n%s", diff)
	}
}

// cmpIDs treats nil and empty id lists as equal.
var cmpIDs = cmpopts.EquateEmpty()
