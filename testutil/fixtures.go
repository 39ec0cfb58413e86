package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/boolean-maybe/sieve/item"
)

// Now is the fixed clock used by fixtures: Saturday 2024-06-15 12:00 UTC.
var Now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func dueIn(days int, hour int) *time.Time {
	t := time.Date(Now.Year(), Now.Month(), Now.Day()+days, hour, 0, 0, 0, time.UTC)
	return &t
}

// Fixture areas, contexts and tags referenced by Items.
var (
	AreaHome     = item.Ref{ID: 1, Name: "Home"}
	AreaWork     = item.Ref{ID: 2, Name: "Work"}
	ContextPhone = item.Ref{ID: 1, Name: "phone"}
	ContextHome  = item.Ref{ID: 2, Name: "home"}
	TagErrands   = item.Ref{ID: 1, Name: "errands"}
)

// Items returns a fresh set of items covering every status, priority and
// relation the query language can filter on. Ids are 1..8.
func Items() []*item.Item {
	return []*item.Item{
		{
			ID: 1, Title: "Buy groceries", Status: item.StatusInbox,
			Priority: item.PriorityNormal,
			Tags:     []item.Ref{TagErrands},
		},
		{
			ID: 2, Title: "Call Bob about taxes", Status: item.StatusNextAction,
			Priority: item.PriorityHigh, Energy: item.EnergyMedium,
			Contexts: []item.Ref{ContextPhone},
			DueDate:  dueIn(0, 18),
		},
		{
			ID: 3, Title: "Garden redesign", Status: item.StatusProject,
			Description: "Raised beds along the south fence.",
			Priority:    item.PriorityNormal,
			Area:        &AreaHome,
		},
		{
			ID: 4, Title: "Plant tomatoes", Status: item.StatusNextAction,
			Priority: item.PriorityLow, Energy: item.EnergyHigh,
			Parent:   &item.Ref{ID: 3, Name: "Garden redesign"},
			Area:     &AreaHome,
			Contexts: []item.Ref{ContextHome},
			DueDate:  dueIn(5, 9),
		},
		{
			ID: 5, Title: "Quarterly report", Status: item.StatusWaitingFor,
			Priority: item.PriorityUrgent, WaitingFor: "Alice from finance",
			Area:    &AreaWork,
			DueDate: dueIn(-1, 17),
		},
		{
			ID: 6, Title: "Learn piano", Status: item.StatusSomedayMaybe,
			Priority: item.PriorityLow, Energy: item.EnergyLow,
		},
		{
			ID: 7, Title: "File old receipts", Status: item.StatusCompleted,
			Priority: item.PriorityNormal, Completed: true,
			DueDate: dueIn(-2, 10),
		},
		{
			ID: 8, Title: "Pick up dry cleaning", Status: item.StatusNextAction,
			Priority: item.PriorityNormal,
			Contexts: []item.Ref{ContextPhone, ContextHome},
			Tags:     []item.Ref{TagErrands},
			DueDate:  dueIn(2, 12),
		},
	}
}

// IDs returns the ids of items in order.
func IDs(items []*item.Item) []int {
	ids := make([]int, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

// CreateTestItem writes a markdown item file with YAML frontmatter into dir.
// extra is inserted verbatim into the frontmatter and must end with a newline.
func CreateTestItem(dir string, id int, title string, status item.Status, extra string) error {
	filename := fmt.Sprintf("%d-%s.md", id, strings.ReplaceAll(strings.ToLower(title), " ", "-"))
	path := filepath.Join(dir, filename)

	content := fmt.Sprintf(`---
title: %s
status: %s
priority: normal
%s---
%s
`, title, status, extra, title)

	return os.WriteFile(path, []byte(content), 0644)
}
