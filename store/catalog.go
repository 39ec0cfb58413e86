package store

import (
	"sort"
	"strings"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/search"
)

// BuildCatalog collects the distinct areas, contexts and tags referenced by
// items and every open project, sorted by name.
func BuildCatalog(items []*item.Item) search.SearchFilter {
	areas := make(map[item.Ref]struct{})
	contexts := make(map[item.Ref]struct{})
	tags := make(map[item.Ref]struct{})
	var projects []item.Ref

	for _, it := range items {
		if it.Area != nil {
			areas[*it.Area] = struct{}{}
		}
		for _, c := range it.Contexts {
			contexts[c] = struct{}{}
		}
		for _, t := range it.Tags {
			tags[t] = struct{}{}
		}
		if it.Status == item.StatusProject && !it.Completed {
			projects = append(projects, item.Ref{ID: it.ID, Name: it.Title})
		}
	}

	sortRefs(projects)
	return search.SearchFilter{
		Areas:    refList(areas),
		Contexts: refList(contexts),
		Tags:     refList(tags),
		Projects: projects,
	}
}

func refList(set map[item.Ref]struct{}) []item.Ref {
	refs := make([]item.Ref, 0, len(set))
	for r := range set {
		refs = append(refs, r)
	}
	sortRefs(refs)
	return refs
}

func sortRefs(refs []item.Ref) {
	sort.Slice(refs, func(i, j int) bool {
		ni, nj := strings.ToLower(refs[i].Name), strings.ToLower(refs[j].Name)
		if ni != nj {
			return ni < nj
		}
		return refs[i].ID < refs[j].ID
	})
}
