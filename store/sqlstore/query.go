package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/search"
)

// Query is an immutable search.Collection whose filters are compiled to a
// WHERE clause. Nothing touches the database until Items is called.
type Query struct {
	store *Store
	now   time.Time
	where []string
	args  []any
	err   error
}

var _ search.Collection[Query] = Query{}

// Filter keeps the items matching p. A nil predicate keeps everything.
func (q Query) Filter(p search.Predicate) Query {
	return q.with(p, false)
}

// Exclude drops the items matching p. A nil predicate drops nothing.
func (q Query) Exclude(p search.Predicate) Query {
	return q.with(p, true)
}

func (q Query) with(p search.Predicate, negate bool) Query {
	if p == nil || q.err != nil {
		return q
	}
	cond, args, err := compile(p, q.now)
	if err != nil {
		q.err = err
		return q
	}
	if negate {
		cond = "(NOT " + cond + ")"
	}
	q.where = append(slices.Clip(q.where), cond)
	q.args = append(slices.Clip(q.args), args...)
	return q
}

// Where returns the compiled WHERE clause and its arguments.
func (q Query) Where() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if len(q.where) == 0 {
		return "1", nil, nil
	}
	return strings.Join(q.where, " AND "), q.args, nil
}

const itemColumns = `items.id, items.title, items.description, items.status, items.priority,
	items.energy, items.parent_id, items.parent_title, items.area_id, a.name, items.due_date,
	items.completed, items.waiting_for, items.created_at, items.updated_at`

// Items runs the query and returns the matches ordered by priority, then
// title, then id.
func (q Query) Items(ctx context.Context) ([]*item.Item, error) {
	where, args, err := q.Where()
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	rows, err := q.store.db.QueryContext(ctx, `SELECT `+itemColumns+`
		FROM items LEFT JOIN areas a ON a.id = items.area_id
		WHERE `+where+`
		ORDER BY items.priority DESC, LOWER(items.title), items.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []*item.Item{}
	byID := make(map[int]*item.Item)
	for rows.Next() {
		it, err := q.scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
		byID[it.ID] = it
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	if len(items) == 0 {
		return items, nil
	}

	err = q.loadLinks(ctx, where, args, "item_contexts", "context_id", "contexts", func(id int, ref item.Ref) {
		byID[id].Contexts = append(byID[id].Contexts, ref)
	})
	if err != nil {
		return nil, fmt.Errorf("load contexts: %w", err)
	}
	err = q.loadLinks(ctx, where, args, "item_tags", "tag_id", "tags", func(id int, ref item.Ref) {
		byID[id].Tags = append(byID[id].Tags, ref)
	})
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	return items, nil
}

func (q Query) scanItem(rows *sql.Rows) (*item.Item, error) {
	var (
		it                   item.Item
		status, energy       string
		priority             int
		parentID, areaID     sql.NullInt64
		parentTitle          string
		areaName             sql.NullString
		due                  sql.NullInt64
		createdAt, updatedAt int64
	)
	err := rows.Scan(&it.ID, &it.Title, &it.Description, &status, &priority, &energy,
		&parentID, &parentTitle, &areaID, &areaName, &due, &it.Completed, &it.WaitingFor,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	it.Status = item.Status(status)
	it.Priority = item.Priority(priority)
	it.Energy = item.Energy(energy)
	if parentID.Valid {
		it.Parent = &item.Ref{ID: int(parentID.Int64), Name: parentTitle}
	}
	if areaID.Valid {
		it.Area = &item.Ref{ID: int(areaID.Int64), Name: areaName.String}
	}
	if due.Valid {
		t := time.Unix(due.Int64, 0).In(q.store.loc)
		it.DueDate = &t
	}
	it.CreatedAt = time.Unix(createdAt, 0).In(q.store.loc)
	it.UpdatedAt = time.Unix(updatedAt, 0).In(q.store.loc)
	return &it, nil
}

// loadLinks reads the links of every matched item in insertion order.
func (q Query) loadLinks(ctx context.Context, where string, args []any,
	linkTable, linkCol, refTable string, add func(int, item.Ref)) error {
	rows, err := q.store.db.QueryContext(ctx, `SELECT l.item_id, r.id, r.name
		FROM `+linkTable+` l JOIN `+refTable+` r ON r.id = l.`+linkCol+`
		WHERE l.item_id IN (SELECT items.id FROM items WHERE `+where+`)
		ORDER BY l.rowid`, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			itemID int
			ref    item.Ref
		)
		if err := rows.Scan(&itemID, &ref.ID, &ref.Name); err != nil {
			return err
		}
		add(itemID, ref)
	}
	return rows.Err()
}
