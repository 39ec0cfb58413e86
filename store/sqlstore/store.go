package sqlstore

// Store is a store.Store backed by a SQLite database. Search predicates are
// compiled to SQL so filtering runs inside the database.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/search"
	"github.com/boolean-maybe/sieve/store"
)

// Store keeps items in SQLite tables.
type Store struct {
	store.Listeners

	db  *sql.DB
	now func() time.Time
	loc *time.Location
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to evaluate relative date filters.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the location due dates are returned in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// Open connects to the database at dsn and creates the schema if needed.
// Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	slog.Debug("opening sqlite store", "dsn", dsn)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// an in-memory database exists per connection
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Put inserts or replaces items in one transaction and notifies listeners.
func (s *Store) Put(ctx context.Context, items ...*item.Item) error {
	for _, it := range items {
		if it == nil {
			return fmt.Errorf("nil item")
		}
		if it.ID <= 0 {
			return fmt.Errorf("item %q: id must be positive, got %d", it.Title, it.ID)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now()
	for _, it := range items {
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		it.UpdatedAt = now
		if err := putItem(ctx, tx, it); err != nil {
			return fmt.Errorf("put item %d: %w", it.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.Debug("stored items", "count", len(items))
	s.Notify()
	return nil
}

func putItem(ctx context.Context, tx *sql.Tx, it *item.Item) error {
	var parentID, areaID, due sql.NullInt64
	parentTitle := ""
	if it.Parent != nil {
		parentID = sql.NullInt64{Int64: int64(it.Parent.ID), Valid: true}
		parentTitle = it.Parent.Name
	}
	if it.Area != nil {
		if err := putRef(ctx, tx, "areas", *it.Area); err != nil {
			return err
		}
		areaID = sql.NullInt64{Int64: int64(it.Area.ID), Valid: true}
	}
	if it.DueDate != nil {
		due = sql.NullInt64{Int64: it.DueDate.Unix(), Valid: true}
	}

	_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO items
		(id, title, description, status, priority, energy, parent_id, parent_title,
		 area_id, due_date, completed, waiting_for, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Title, it.Description, string(it.Status), int(it.Priority), string(it.Energy),
		parentID, parentTitle, areaID, due, it.Completed, it.WaitingFor,
		it.CreatedAt.Unix(), it.UpdatedAt.Unix())
	if err != nil {
		return err
	}

	if err := putLinks(ctx, tx, "contexts", "item_contexts", "context_id", it.ID, it.Contexts); err != nil {
		return err
	}
	return putLinks(ctx, tx, "tags", "item_tags", "tag_id", it.ID, it.Tags)
}

func putRef(ctx context.Context, tx *sql.Tx, table string, ref item.Ref) error {
	_, err := tx.ExecContext(ctx, "INSERT INTO "+table+` (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`, ref.ID, ref.Name)
	return err
}

func putLinks(ctx context.Context, tx *sql.Tx, table, linkTable, linkCol string, itemID int, refs []item.Ref) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+linkTable+" WHERE item_id = ?", itemID); err != nil {
		return err
	}
	for _, ref := range refs {
		if err := putRef(ctx, tx, table, ref); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO "+linkTable+" (item_id, "+linkCol+") VALUES (?, ?)",
			itemID, ref.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an item and its links.
func (s *Store) Delete(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		"DELETE FROM item_contexts WHERE item_id = ?",
		"DELETE FROM item_tags WHERE item_id = ?",
		"DELETE FROM items WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("delete item %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.Notify()
	return nil
}

// Query starts a search.Collection over all items evaluated at the store's
// current time.
func (s *Store) Query() Query {
	return Query{store: s, now: s.now()}
}

// GetItem retrieves an item by ID
func (s *Store) GetItem(ctx context.Context, id int) (*item.Item, error) {
	items, err := s.Query().Filter(&search.CompareExpr{Field: search.FieldID, Op: "=", Value: id}).Items(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("item %d: %w", id, store.ErrNotFound)
	}
	return items[0], nil
}

// GetAllItems returns all items in SortItems order.
func (s *Store) GetAllItems(ctx context.Context) ([]*item.Item, error) {
	return s.Query().Items(ctx)
}

// Search applies query inside the database.
func (s *Store) Search(ctx context.Context, query string, opts ...search.Option) ([]*item.Item, error) {
	return search.ApplySearch(s.Query(), query, opts...).Items(ctx)
}

// Catalog returns the referenced areas, contexts and tags and the open
// projects.
func (s *Store) Catalog(ctx context.Context) (search.SearchFilter, error) {
	var (
		f   search.SearchFilter
		err error
	)
	if f.Areas, err = s.refs(ctx, `SELECT id, name FROM areas
		WHERE id IN (SELECT area_id FROM items WHERE area_id IS NOT NULL)`); err != nil {
		return f, fmt.Errorf("load areas: %w", err)
	}
	if f.Contexts, err = s.refs(ctx, `SELECT id, name FROM contexts
		WHERE id IN (SELECT context_id FROM item_contexts)`); err != nil {
		return f, fmt.Errorf("load contexts: %w", err)
	}
	if f.Tags, err = s.refs(ctx, `SELECT id, name FROM tags
		WHERE id IN (SELECT tag_id FROM item_tags)`); err != nil {
		return f, fmt.Errorf("load tags: %w", err)
	}
	if f.Projects, err = s.refs(ctx, `SELECT id, title AS name FROM items
		WHERE status = ? AND completed = 0`, string(item.StatusProject)); err != nil {
		return f, fmt.Errorf("load projects: %w", err)
	}
	return f, nil
}

func (s *Store) refs(ctx context.Context, query string, args ...any) ([]item.Ref, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM ("+query+") ORDER BY LOWER(name), id", args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	refs := []item.Ref{}
	for rows.Next() {
		var r item.Ref
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// Reload checks the connection; the database is always current.
func (s *Store) Reload(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	s.Notify()
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}

var _ store.Store = (*Store)(nil)
