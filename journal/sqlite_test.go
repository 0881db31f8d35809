package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table'`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	for _, table := range []string{"entries", "recycle_bin", "labels", "portfolio", "meta"} {
		assert.True(t, found[table], table)
	}
}

func TestSQLiteFreshDatabaseIsUninitialized(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	st, err := j.LoadState(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Initialized)
	assert.Empty(t, st.Rows)
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	ctx := context.Background()

	edited := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	msg := "P/L: 15/02 10:00"
	deleted := time.Date(2026, 2, 16, 8, 30, 0, 0, time.UTC)

	in := State{
		Rows: []Entry{
			{ID: "R2", Date: "2026-02-10", Owner: "Bob", Type: "F&O", ExitDate: "", PL: "", Remark: "open"},
			{ID: "R1", Date: "2026-02-01", Owner: "Alice", Type: "Intraday", ExitDate: "2026-02-15", PL: "120.5",
				LastEdited: &edited, LastEditedMsg: &msg},
		},
		Bin:       []RecycleEntry{{Entry: Entry{ID: "R9", Owner: "Old", PL: "-3"}, DeletedAt: deleted}},
		Owners:    []string{"Alice", "Bob", "Alice", " "},
		Types:     []string{"Intraday", "F&O"},
		Portfolio: []PortfolioEntry{{Name: "Fund A", Fund: "10000", Profit: "500", Charges: "20", Sharing: "100"}},
	}
	require.NoError(t, j.SaveState(ctx, in))

	out, err := j.LoadState(ctx)
	require.NoError(t, err)

	assert.True(t, out.Initialized)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "R2", out.Rows[0].ID, "table order kept")
	assert.Nil(t, out.Rows[0].LastEdited)
	assert.Nil(t, out.Rows[0].LastEditedMsg)
	require.NotNil(t, out.Rows[1].LastEdited)
	assert.True(t, edited.Equal(*out.Rows[1].LastEdited))
	assert.Equal(t, msg, *out.Rows[1].LastEditedMsg)

	require.Len(t, out.Bin, 1)
	assert.True(t, deleted.Equal(out.Bin[0].DeletedAt))
	assert.Equal(t, "-3", out.Bin[0].PL)

	assert.Equal(t, []string{"Alice", "Bob"}, out.Owners)
	assert.Equal(t, []string{"Intraday", "F&O"}, out.Types)
	assert.Equal(t, in.Portfolio, out.Portfolio)

	// saving again replaces rather than appends
	require.NoError(t, j.SaveState(ctx, State{Rows: in.Rows[:1]}))
	out, err = j.LoadState(ctx)
	require.NoError(t, err)
	assert.Len(t, out.Rows, 1)
	assert.Empty(t, out.Bin)
	assert.Empty(t, out.Owners)
}
