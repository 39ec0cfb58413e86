package sqlstore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/search"
	"github.com/boolean-maybe/sieve/store"
	"github.com/boolean-maybe/sieve/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func clock() time.Time { return testutil.Now }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, ":memory:", WithClock(clock), WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Put(ctx, testutil.Items()...); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	return s
}

// searchQueries covers every field handler and both exclusion paths.
var searchQueries = []string{
	"",
	"in:next",
	"in:inbox,next",
	"-in:completed",
	"is:active",
	"is:overdue",
	"is:today",
	"is:soon",
	"is:completed",
	"is:actionable",
	"has:due",
	"-has:due",
	"has:project",
	"has:context",
	"has:tags",
	"has:area",
	"has:description",
	"priority:high",
	"priority:-low",
	"priority:high,-low",
	"-priority:normal",
	"energy:high",
	"energy:normal",
	"energy:-low",
	"due:today",
	"due:tomorrow",
	"due:yesterday",
	"due:+3days",
	"due:+1week",
	"due:-2days",
	"project:garden",
	"project:3",
	"parent:3",
	"context:phone",
	"-context:phone",
	"context:phone,home",
	"area:home",
	"area:Work",
	"-area:work",
	"tags:errands",
	"tags:phone",
	"waiting:alice",
	"id:5",
	"id:1,2,3",
	"report",
	"GROCERIES",
	"beds",
	`"dry cleaning"`,
	"groceries -tags:errands",
	"in:next context:phone due:+3days",
	"is:active -has:due -in:inbox",
}

func TestSearchMatchesInMemoryEvaluation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, query := range searchQueries {
		t.Run(query, func(t *testing.T) {
			want := testutil.IDs(store.SearchItems(testutil.Items(), testutil.Now, query))

			got, err := s.Search(ctx, query)
			if err != nil {
				t.Fatalf("Search(%q) error = %v", query, err)
			}
			if diff := cmp.Diff(want, testutil.IDs(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Search(%q) ids mismatch (-memory +sqlite):\n%s", query, diff)
			}
		})
	}
}

func TestSearchWithForcedQuery(t *testing.T) {
	s := newTestStore(t)

	// forced text is matched like typed free text
	got, err := s.Search(context.Background(), "has:due", search.WithForcedQuery("report"))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if diff := cmp.Diff([]int{5}, testutil.IDs(got)); diff != "" {
		t.Errorf("Search() ids mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAllItemsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetAllItems(context.Background())
	if err != nil {
		t.Fatalf("GetAllItems() error = %v", err)
	}

	want := testutil.Items()
	for _, it := range want {
		it.CreatedAt = testutil.Now
		it.UpdatedAt = testutil.Now
	}
	store.SortItems(want)

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("GetAllItems() mismatch (-want +got):\n%s", diff)
	}
}

func TestPutReplacesLinks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	updated := testutil.Items()[7]
	updated.Contexts = []item.Ref{testutil.ContextHome}
	updated.Tags = nil
	if err := s.Put(ctx, updated); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.GetItem(ctx, 8)
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if diff := cmp.Diff([]item.Ref{testutil.ContextHome}, got.Contexts); diff != "" {
		t.Errorf("Contexts mismatch (-want +got):\n%s", diff)
	}
	if len(got.Tags) != 0 {
		t.Errorf("Tags = %v, want none", got.Tags)
	}
}

func TestPutRejectsBadIDs(t *testing.T) {
	s := newTestStore(t)

	if err := s.Put(context.Background(), &item.Item{ID: 0, Title: "zero"}); err == nil {
		t.Error("Put() with id 0 succeeded, want error")
	}
	if err := s.Put(context.Background(), nil); err == nil {
		t.Error("Put(nil) succeeded, want error")
	}
}

func TestGetItemNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetItem(context.Background(), 99)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetItem(99) error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	notified := 0
	s.AddListener(func() { notified++ })

	if err := s.Delete(ctx, 8); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if notified != 1 {
		t.Errorf("listener called %d times, want 1", notified)
	}
	if _, err := s.GetItem(ctx, 8); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetItem(8) after delete error = %v, want ErrNotFound", err)
	}

	got, err := s.Search(ctx, "tags:errands")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if diff := cmp.Diff([]int{1}, testutil.IDs(got)); diff != "" {
		t.Errorf("Search() ids mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogMatchesBuildCatalog(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	want := store.BuildCatalog(testutil.Items())
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Catalog() mismatch (-want +got):\n%s", diff)
	}
}

type unknownPredicate struct{}

func (unknownPredicate) Evaluate(*item.Item, time.Time) bool { return true }

func TestQueryCompileError(t *testing.T) {
	s := newTestStore(t)

	q := s.Query().Filter(unknownPredicate{})
	if _, err := q.Items(context.Background()); err == nil {
		t.Fatal("Items() with unsupported predicate succeeded, want error")
	}
	// later filters keep the first error
	q = q.Filter(&search.ExistsExpr{Field: search.FieldDue})
	if _, _, err := q.Where(); err == nil || !strings.Contains(err.Error(), "unknownPredicate") {
		t.Errorf("Where() error = %v, want unsupported predicate", err)
	}
}

func TestQueryIsImmutable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := s.Query().Filter(&search.ExistsExpr{Field: search.FieldDue})
	a := base.Filter(&search.CompareExpr{Field: search.FieldPriority, Op: "=", Value: int(item.PriorityHigh)})
	b := base.Exclude(&search.CompareExpr{Field: search.FieldPriority, Op: "=", Value: int(item.PriorityHigh)})

	gotA, err := a.Items(ctx)
	if err != nil {
		t.Fatalf("a.Items() error = %v", err)
	}
	gotB, err := b.Items(ctx)
	if err != nil {
		t.Fatalf("b.Items() error = %v", err)
	}
	if diff := cmp.Diff([]int{2}, testutil.IDs(gotA)); diff != "" {
		t.Errorf("a ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5, 7, 8, 4}, testutil.IDs(gotB)); diff != "" {
		t.Errorf("b ids mismatch (-want +got):\n%s", diff)
	}
}

func TestCeilUnix(t *testing.T) {
	base := time.Unix(1000, 0)
	tests := []struct {
		in   time.Time
		want int64
	}{
		{base, 1000},
		{base.Add(time.Nanosecond), 1001},
		{base.Add(-time.Nanosecond), 1000},
	}
	for _, tt := range tests {
		if got := ceilUnix(tt.in); got != tt.want {
			t.Errorf("ceilUnix(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
