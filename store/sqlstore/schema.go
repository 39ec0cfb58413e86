package sqlstore

// schema is applied on every Open; statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS areas (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contexts (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id           INTEGER PRIMARY KEY,
		title        TEXT    NOT NULL DEFAULT '',
		description  TEXT    NOT NULL DEFAULT '',
		status       TEXT    NOT NULL DEFAULT 'inbox',
		priority     INTEGER NOT NULL DEFAULT 2,
		energy       TEXT    NOT NULL DEFAULT '',
		parent_id    INTEGER,
		parent_title TEXT    NOT NULL DEFAULT '',
		area_id      INTEGER REFERENCES areas(id),
		due_date     INTEGER,
		completed    INTEGER NOT NULL DEFAULT 0,
		waiting_for  TEXT    NOT NULL DEFAULT '',
		created_at   INTEGER NOT NULL DEFAULT 0,
		updated_at   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS item_contexts (
		item_id    INTEGER NOT NULL REFERENCES items(id),
		context_id INTEGER NOT NULL REFERENCES contexts(id),
		PRIMARY KEY (item_id, context_id)
	)`,
	`CREATE TABLE IF NOT EXISTS item_tags (
		item_id INTEGER NOT NULL REFERENCES items(id),
		tag_id  INTEGER NOT NULL REFERENCES tags(id),
		PRIMARY KEY (item_id, tag_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_status ON items(status)`,
	`CREATE INDEX IF NOT EXISTS idx_items_due_date ON items(due_date)`,
	`CREATE INDEX IF NOT EXISTS idx_items_parent_id ON items(parent_id)`,
}
