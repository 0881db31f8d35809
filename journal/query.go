package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// GetEntry returns a single stored row by id.
func (j *SQLite) GetEntry(ctx context.Context, entryID string) (Entry, error) {
	var e Entry

	row := j.db.QueryRowContext(ctx, `
		SELECT id, date, owner, type, exit_date, pl, remark, last_edited, last_edited_msg
		FROM entries
		WHERE id = ?`, entryID)

	if err := scanEntry(row, &e); err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, fmt.Errorf("entry %q: %w", entryID, ErrNotFound)
		}
		return Entry{}, err
	}
	return e, nil
}

// ListExitedBetween returns stored rows whose exit date falls within
// [start, end), in table order. Exit dates are free text, so the window is
// applied after parsing rather than in SQL.
func (j *SQLite) ListExitedBetween(ctx context.Context, start, end time.Time) ([]Entry, error) {
	all, err := j.listEntries(ctx, `
		SELECT id, date, owner, type, exit_date, pl, remark, last_edited, last_edited_msg
		FROM entries ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, e := range all {
		t, ok := e.Exit()
		if !ok || t.Before(start) || !t.Before(end) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (j *SQLite) listEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := scanEntry(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
