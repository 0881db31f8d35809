package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	labelOwners = "owners"
	labelTypes  = "types"
)

// State is everything the journal persists. Saving replaces all of it.
type State struct {
	Rows      []Entry
	Bin       []RecycleEntry
	Owners    []string
	Types     []string
	Portfolio []PortfolioEntry

	// Initialized is false for a database that was never saved to, so
	// callers can seed the default dropdown sources.
	Initialized bool
}

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// SaveState replaces the stored journal with st in one transaction.
func (j *SQLite) SaveState(ctx context.Context, st State) (err error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"entries", "recycle_bin", "labels", "portfolio"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, e := range st.Rows {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO entries
			(position, id, date, owner, type, exit_date, pl, remark, last_edited, last_edited_msg)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, e.ID, e.Date, e.Owner, e.Type, e.ExitDate, e.PL, e.Remark,
			nullTime(e.LastEdited), nullString(e.LastEditedMsg),
		)
		if err != nil {
			return fmt.Errorf("insert entry %d: %w", i+1, err)
		}
	}

	for i, b := range st.Bin {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO recycle_bin
			(position, id, date, owner, type, exit_date, pl, remark, last_edited, last_edited_msg, deleted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, b.ID, b.Date, b.Owner, b.Type, b.ExitDate, b.PL, b.Remark,
			nullTime(b.LastEdited), nullString(b.LastEditedMsg), b.DeletedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert bin item %d: %w", i+1, err)
		}
	}

	for kind, items := range map[string][]string{labelOwners: st.Owners, labelTypes: st.Types} {
		for i, v := range NormalizeLabels(items) {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO labels (kind, position, value) VALUES (?, ?, ?)`, kind, i, v); err != nil {
				return fmt.Errorf("insert %s label: %w", kind, err)
			}
		}
	}

	for i, p := range st.Portfolio {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO portfolio
			(position, name, start_date, end_date, fund, charges, profit, sharing, remark)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, p.Name, p.StartDate, p.EndDate, p.Fund, p.Charges, p.Profit, p.Sharing, p.Remark,
		)
		if err != nil {
			return fmt.Errorf("insert portfolio row %d: %w", i+1, err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('initialized', ?)`,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadState reads the whole journal back in stored order.
func (j *SQLite) LoadState(ctx context.Context) (State, error) {
	var st State

	var stamp string
	err := j.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'initialized'`).Scan(&stamp)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return st, err
	default:
		st.Initialized = true
	}

	if st.Rows, err = j.listEntries(ctx, `
		SELECT id, date, owner, type, exit_date, pl, remark, last_edited, last_edited_msg
		FROM entries ORDER BY position ASC`); err != nil {
		return st, fmt.Errorf("load entries: %w", err)
	}
	if st.Bin, err = j.listBin(ctx); err != nil {
		return st, fmt.Errorf("load recycle bin: %w", err)
	}
	if st.Owners, err = j.listLabels(ctx, labelOwners); err != nil {
		return st, err
	}
	if st.Types, err = j.listLabels(ctx, labelTypes); err != nil {
		return st, err
	}
	if st.Portfolio, err = j.listPortfolio(ctx); err != nil {
		return st, fmt.Errorf("load portfolio: %w", err)
	}
	return st, nil
}

func (j *SQLite) listBin(ctx context.Context) ([]RecycleEntry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, date, owner, type, exit_date, pl, remark, last_edited, last_edited_msg, deleted_at
		FROM recycle_bin ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecycleEntry
	for rows.Next() {
		var (
			re      RecycleEntry
			deleted string
		)
		if err := scanEntry(rows, &re.Entry, &deleted); err != nil {
			return nil, err
		}
		// a bad stamp degrades to the zero time rather than failing the load
		re.DeletedAt, _ = time.Parse(time.RFC3339Nano, deleted)
		out = append(out, re)
	}
	return out, rows.Err()
}

func (j *SQLite) listLabels(ctx context.Context, kind string) ([]string, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT value FROM labels WHERE kind = ? ORDER BY position ASC`, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (j *SQLite) listPortfolio(ctx context.Context) ([]PortfolioEntry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT name, start_date, end_date, fund, charges, profit, sharing, remark
		FROM portfolio ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PortfolioEntry
	for rows.Next() {
		var p PortfolioEntry
		if err := rows.Scan(&p.Name, &p.StartDate, &p.EndDate, &p.Fund,
			&p.Charges, &p.Profit, &p.Sharing, &p.Remark); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner, e *Entry, extra ...any) error {
	var edited, msg sql.NullString
	dest := []any{&e.ID, &e.Date, &e.Owner, &e.Type, &e.ExitDate, &e.PL, &e.Remark, &edited, &msg}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	if edited.Valid {
		if t, err := time.Parse(time.RFC3339Nano, edited.String); err == nil {
			e.LastEdited = &t
		}
	}
	if msg.Valid {
		m := msg.String
		e.LastEditedMsg = &m
	}
	return nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
