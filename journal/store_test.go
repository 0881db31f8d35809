package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 2, 15, 14, 5, 0, 0, time.Local)
	return func() time.Time { return t }
}

func newTestStore(t *testing.T, rows ...Entry) *Store {
	t.Helper()
	s := NewStore(fixedClock())
	for _, r := range rows {
		s.Append(r)
	}
	return s
}

func TestStoreAppendAssignsPositionAndID(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	assert.Equal(t, 0, s.Append(Entry{Owner: "Alice"}))
	assert.Equal(t, 1, s.Append(Entry{Owner: "Bob"}))
	assert.Equal(t, 2, s.Len())

	e, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Bob", e.Owner)
	assert.NotEmpty(t, e.ID)
}

func TestStoreLoadReplacesRepeatedIDs(t *testing.T) {
	t.Parallel()

	s := NewStore(fixedClock())
	s.Load([]Entry{{ID: "dup", Owner: "A"}, {ID: "dup", Owner: "B"}, {Owner: "C"}}, nil)

	rows := s.Entries()
	require.Len(t, rows, 3)
	assert.Equal(t, "dup", rows[0].ID)
	assert.NotEqual(t, "dup", rows[1].ID)
	assert.NotEmpty(t, rows[2].ID)
	assert.NotEqual(t, rows[1].ID, rows[2].ID)
}

func TestStoreRestoreOfLiveIDGetsFreshID(t *testing.T) {
	t.Parallel()

	s := NewStore(fixedClock())
	s.Load([]Entry{{ID: "x", Owner: "Pulled"}},
		[]RecycleEntry{{Entry: Entry{ID: "x", Owner: "Deleted"}}})

	pos, err := s.Restore(0)
	require.NoError(t, err)
	e, err := s.Get(pos)
	require.NoError(t, err)
	assert.Equal(t, "Deleted", e.Owner)
	assert.NotEqual(t, "x", e.ID)
}

func TestStoreUpdateStampsColumn(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Entry{Owner: "Alice"})
	require.NoError(t, s.Update(0, FieldPL, "120.5"))

	e, _ := s.Get(0)
	assert.Equal(t, "120.5", e.PL)
	require.NotNil(t, e.LastEdited)
	require.NotNil(t, e.LastEditedMsg)
	assert.Equal(t, "P/L: 15/02 14:05", *e.LastEditedMsg)
	assert.Equal(t, "Edited: P/L: 15/02 14:05", e.EditLabel())

	// a P/L without an exit date is stored as is
	assert.False(t, e.Realized())
}

func TestStoreFillDoesNotStamp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Entry{PL: "5"})
	require.NoError(t, s.Fill(0, FieldExit, "2026-02-15"))

	e, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-15", e.ExitDate)
	assert.Nil(t, e.LastEdited)
	assert.Nil(t, e.LastEditedMsg)
	assert.ErrorIs(t, s.Fill(3, FieldExit, "x"), ErrNotFound)
}

func TestStoreOutOfRange(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Entry{Owner: "Alice"})

	_, err := s.Get(5)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.Update(-1, FieldOwner, "x"), ErrNotFound))
	_, err = s.Remove(3)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = s.Restore(0)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.DeleteForever(9), ErrNotFound))
	assert.Equal(t, 1, s.Len())
}

func TestStoreRemoveRestore(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Entry{Owner: "A"}, Entry{Owner: "B"}, Entry{Owner: "C"})

	_, err := s.Remove(0)
	require.NoError(t, err)
	_, err = s.Remove(1) // C
	require.NoError(t, err)

	bin := s.Bin()
	require.Len(t, bin, 2)
	assert.Equal(t, "C", bin[0].Owner, "most recent first")
	assert.Equal(t, "A", bin[1].Owner)
	assert.False(t, bin[0].DeletedAt.IsZero())

	pos, err := s.Restore(1)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	owners := []string{}
	for _, e := range s.Entries() {
		owners = append(owners, e.Owner)
	}
	assert.Equal(t, []string{"B", "A"}, owners)
	assert.Len(t, s.Bin(), 1)
}

func TestStoreUndoRemoveOnce(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Entry{Owner: "A"}, Entry{Owner: "B"})
	_, err := s.Remove(0)
	require.NoError(t, err)

	pos, err := s.UndoRemove()
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	assert.Empty(t, s.Bin())

	_, err = s.UndoRemove()
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStoreUndoAfterEmptyBin(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Entry{Owner: "A"})
	_, err := s.Remove(0)
	require.NoError(t, err)
	s.EmptyBin()

	_, err = s.UndoRemove()
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestStoreSortBy(t *testing.T) {
	t.Parallel()

	s := newTestStore(t,
		Entry{Owner: "b", ExitDate: "15-02-2026", PL: "10"},
		Entry{Owner: "A", ExitDate: "2026-02-01", PL: "-5"},
		Entry{Owner: "c", ExitDate: "", PL: "2"},
		Entry{Owner: "a", ExitDate: "2026/02/10", PL: "1"},
	)

	owners := func() []string {
		var out []string
		for _, e := range s.Entries() {
			out = append(out, e.Owner)
		}
		return out
	}

	s.SortBy(FieldExit, false)
	assert.Equal(t, []string{"c", "A", "a", "b"}, owners())

	s.SortBy(FieldOwner, false)
	assert.Equal(t, []string{"A", "a", "b", "c"}, owners(), "stable, case-insensitive")

	s.SortBy(FieldPL, true)
	assert.Equal(t, []string{"b", "c", "a", "A"}, owners())
}

func TestStoreBinUnaffectedByReorder(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Entry{Owner: "A"}, Entry{Owner: "B"}, Entry{Owner: "C"})
	_, _ = s.Remove(2)
	_, _ = s.Remove(0)
	before := s.Bin()

	s.SortBy(FieldOwner, true)
	assert.Equal(t, before, s.Bin())
}

func TestParseField(t *testing.T) {
	t.Parallel()

	f, err := ParseField("P&L")
	require.NoError(t, err)
	assert.Equal(t, FieldPL, f)

	f, err = ParseField("exit")
	require.NoError(t, err)
	assert.Equal(t, "Exit", f.String())

	_, err = ParseField("cumulative")
	assert.Error(t, err)
}
