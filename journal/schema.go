// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS entries (
	position INTEGER NOT NULL,
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	owner TEXT NOT NULL,
	type TEXT NOT NULL,
	exit_date TEXT NOT NULL,
	pl TEXT NOT NULL,
	remark TEXT NOT NULL,
	last_edited TEXT,
	last_edited_msg TEXT
);

CREATE TABLE IF NOT EXISTS recycle_bin (
	position INTEGER NOT NULL,
	id TEXT NOT NULL,
	date TEXT NOT NULL,
	owner TEXT NOT NULL,
	type TEXT NOT NULL,
	exit_date TEXT NOT NULL,
	pl TEXT NOT NULL,
	remark TEXT NOT NULL,
	last_edited TEXT,
	last_edited_msg TEXT,
	deleted_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS labels (
	kind TEXT NOT NULL,
	position INTEGER NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (kind, value)
);

CREATE TABLE IF NOT EXISTS portfolio (
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	fund TEXT NOT NULL,
	charges TEXT NOT NULL,
	profit TEXT NOT NULL,
	sharing TEXT NOT NULL,
	remark TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_position ON entries(position);
`
