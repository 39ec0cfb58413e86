package itemstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/store"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// itemFrontmatter represents the YAML frontmatter in item files
type itemFrontmatter struct {
	ID        int                `yaml:"id,omitempty"`
	Title     string             `yaml:"title"`
	Status    string             `yaml:"status"`
	Priority  item.PriorityValue `yaml:"priority,omitempty"`
	Energy    string             `yaml:"energy,omitempty"`
	Project   int                `yaml:"project,omitempty"`
	Area      string             `yaml:"area,omitempty"`
	Contexts  item.NamesValue    `yaml:"contexts,omitempty"`
	Tags      item.NamesValue    `yaml:"tags,omitempty"`
	Due       yaml.Node          `yaml:"due,omitempty"`
	Completed bool               `yaml:"completed,omitempty"`
	Waiting   string             `yaml:"waiting,omitempty"`
}

// loadedItem is a parsed file whose relations are still names and ids.
type loadedItem struct {
	item     *item.Item
	path     string
	project  int
	area     string
	contexts []string
	tags     []string
}

var filenameIDPattern = regexp.MustCompile(`^(\d+)(?:-.*)?\.md$`)

var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// load reads every item file in the directory, parsing files concurrently.
// Unreadable files are logged and skipped.
func (s *Store) load(ctx context.Context) (map[int]*item.Item, map[int]string, error) {
	slog.Debug("loading items from directory", "dir", s.dir)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		slog.Error("failed to read item directory", "dir", s.dir, "error", err)
		return nil, nil, fmt.Errorf("reading directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, entry.Name()))
	}

	results := make([]*loadedItem, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			loaded, err := s.loadItemFile(path)
			if err != nil {
				// log error but continue loading other files
				slog.Error("failed to load item file", "file", path, "error", err)
				return nil
			}
			results[i] = loaded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("loading item files: %w", err)
	}

	items := make(map[int]*item.Item, len(results))
	files := make(map[int]string, len(results))
	var loaded []*loadedItem
	for _, li := range results {
		if li == nil {
			continue
		}
		if prev, dup := files[li.item.ID]; dup {
			slog.Warn("duplicate item id, keeping first file", "item_id", li.item.ID, "file", li.path, "kept", prev)
			continue
		}
		items[li.item.ID] = li.item
		files[li.item.ID] = li.path
		loaded = append(loaded, li)
		slog.Debug("loaded item", "item_id", li.item.ID, "file", li.path)
	}

	resolveRelations(items, loaded)
	slog.Info("finished loading items", "num_items", len(items))
	return items, files, nil
}

// loadItemFile parses a single markdown file into an item
func (s *Store) loadItemFile(path string) (*loadedItem, error) {
	filename := filepath.Base(path)
	m := filenameIDPattern.FindStringSubmatch(filename)
	if m == nil {
		return nil, fmt.Errorf("filename %q does not start with a numeric id", filename)
	}
	id, err := strconv.Atoi(m[1])
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("filename %q has an invalid id", filename)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	frontmatter, body, err := store.ParseFrontmatter(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}

	var fm itemFrontmatter
	if err := yaml.Unmarshal([]byte(frontmatter), &fm); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	// filename is authoritative for the id
	if fm.ID != 0 && fm.ID != id {
		slog.Warn("ignoring frontmatter ID mismatch, using filename",
			"file", path,
			"frontmatter_id", fm.ID,
			"filename_id", id)
	}

	it := &item.Item{
		ID:          id,
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(body),
		Priority:    item.Priority(fm.Priority),
		Completed:   fm.Completed,
		WaitingFor:  strings.TrimSpace(fm.Waiting),
		CreatedAt:   info.ModTime(),
		UpdatedAt:   info.ModTime(),
	}

	status, ok := item.ParseStatus(fm.Status)
	if !ok {
		slog.Debug("invalid status value, using default", "item_id", id, "file", path, "invalid_value", fm.Status, "default", item.StatusInbox)
	}
	it.Status = status
	if it.Status == item.StatusCompleted {
		it.Completed = true
	}

	if !item.IsValidPriority(it.Priority) {
		slog.Debug("invalid priority value, using default", "item_id", id, "file", path, "default", item.DefaultPriority)
		it.Priority = item.DefaultPriority
	}

	energy, ok := item.ParseEnergy(fm.Energy)
	if !ok {
		slog.Debug("invalid energy value, using default", "item_id", id, "file", path, "invalid_value", fm.Energy)
	}
	it.Energy = energy

	if due := strings.TrimSpace(fm.Due.Value); due != "" {
		t, err := parseDue(due, s.loc)
		if err != nil {
			slog.Debug("invalid due date, ignoring", "item_id", id, "file", path, "invalid_value", due)
		} else {
			it.DueDate = &t
		}
	}

	if err := item.ValidateItem(it); err != nil {
		slog.Warn("item has validation errors", "item_id", id, "file", path, "error", err)
	}

	return &loadedItem{
		item:     it,
		path:     path,
		project:  fm.Project,
		area:     strings.TrimSpace(fm.Area),
		contexts: fm.Contexts.ToStringSlice(),
		tags:     fm.Tags.ToStringSlice(),
	}, nil
}

func parseDue(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// resolveRelations links parents by id and gives every distinct area,
// context and tag name a stable id, assigned in name order.
func resolveRelations(items map[int]*item.Item, loaded []*loadedItem) {
	var areaNames, contextNames, tagNames []string
	for _, li := range loaded {
		if li.area != "" {
			areaNames = append(areaNames, li.area)
		}
		contextNames = append(contextNames, li.contexts...)
		tagNames = append(tagNames, li.tags...)
	}
	areas := assignRefs(areaNames)
	contexts := assignRefs(contextNames)
	tags := assignRefs(tagNames)

	for _, li := range loaded {
		it := li.item
		if li.project != 0 {
			parent := item.Ref{ID: li.project}
			if p, ok := items[li.project]; ok {
				parent.Name = p.Title
			} else {
				slog.Debug("parent project not found", "item_id", it.ID, "project", li.project)
			}
			it.Parent = &parent
		}
		if li.area != "" {
			ref := areas[strings.ToLower(li.area)]
			it.Area = &ref
		}
		it.Contexts = lookupRefs(contexts, li.contexts)
		it.Tags = lookupRefs(tags, li.tags)
	}
}

// assignRefs numbers distinct names case-insensitively. The first spelling
// seen for a name is kept.
func assignRefs(names []string) map[string]item.Ref {
	spelling := make(map[string]string)
	var keys []string
	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := spelling[key]; ok {
			continue
		}
		spelling[key] = n
		keys = append(keys, key)
	}
	sort.Strings(keys)

	refs := make(map[string]item.Ref, len(keys))
	for i, key := range keys {
		refs[key] = item.Ref{ID: i + 1, Name: spelling[key]}
	}
	return refs
}

func lookupRefs(refs map[string]item.Ref, names []string) []item.Ref {
	var out []item.Ref
	seen := make(map[int]bool)
	for _, n := range names {
		ref := refs[strings.ToLower(n)]
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		out = append(out, ref)
	}
	return out
}
