package journal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rustyeddy/pnlreport/dates"
	"github.com/rustyeddy/pnlreport/pkg/id"
)

// Field names an editable column of the journal table.
type Field int

const (
	FieldDate Field = iota
	FieldOwner
	FieldType
	FieldExit
	FieldPL
	FieldRemark
)

var fieldNames = map[Field]string{
	FieldDate:   "Date",
	FieldOwner:  "Owner",
	FieldType:   "Type",
	FieldExit:   "Exit",
	FieldPL:     "P/L",
	FieldRemark: "Rem.",
}

// String is the column label recorded in edit stamps.
func (f Field) String() string {
	if s, ok := fieldNames[f]; ok {
		return s
	}
	return "Edited"
}

// ParseField accepts the column label or a lower case alias.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date", "entry":
		return FieldDate, nil
	case "owner":
		return FieldOwner, nil
	case "type":
		return FieldType, nil
	case "exit", "exitdate", "exit-date":
		return FieldExit, nil
	case "pl", "p/l", "p&l", "pnl":
		return FieldPL, nil
	case "remark", "rem", "rem.":
		return FieldRemark, nil
	}
	return 0, fmt.Errorf("unknown column %q", s)
}

// Get returns the value of f on e.
func (e Entry) Get(f Field) string {
	switch f {
	case FieldDate:
		return e.Date
	case FieldOwner:
		return e.Owner
	case FieldType:
		return e.Type
	case FieldExit:
		return e.ExitDate
	case FieldPL:
		return e.PL
	case FieldRemark:
		return e.Remark
	}
	return ""
}

func (e *Entry) set(f Field, v string) bool {
	switch f {
	case FieldDate:
		e.Date = v
	case FieldOwner:
		e.Owner = v
	case FieldType:
		e.Type = v
	case FieldExit:
		e.ExitDate = v
	case FieldPL:
		e.PL = v
	case FieldRemark:
		e.Remark = v
	default:
		return false
	}
	return true
}

// Store is the ordered collection of journal rows plus the recycle bin.
// Row order is significant: it defines serial numbers and the order the
// cumulative P/L column runs in.
type Store struct {
	rows        []Entry
	bin         []RecycleEntry
	lastDeleted *RecycleEntry

	now func() time.Time
}

// NewStore returns an empty store. now defaults to time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

// Load replaces the rows and bin wholesale, e.g. after reading persistence
// or pulling a remote copy. Row ids are made unique, see WithIDs.
func (s *Store) Load(rows []Entry, bin []RecycleEntry) {
	s.rows = s.WithIDs(rows)
	s.bin = append([]RecycleEntry(nil), bin...)
	s.lastDeleted = nil
}

// WithIDs returns a copy of rows in which every row has an id no earlier
// row uses. Blank and repeated ids are replaced with fresh ones.
func (s *Store) WithIDs(rows []Entry) []Entry {
	out := make([]Entry, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if r.ID == "" || seen[r.ID] {
			r.ID = id.NewAt(s.now())
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}

func (s *Store) live(entryID string) bool {
	for _, r := range s.rows {
		if r.ID == entryID {
			return true
		}
	}
	return false
}

func (s *Store) Len() int { return len(s.rows) }

// Entries returns a copy of the rows in table order.
func (s *Store) Entries() []Entry {
	return append([]Entry(nil), s.rows...)
}

// Get returns the row at position (0 based).
func (s *Store) Get(pos int) (Entry, error) {
	if pos < 0 || pos >= len(s.rows) {
		return Entry{}, fmt.Errorf("row %d: %w", pos+1, ErrNotFound)
	}
	return s.rows[pos], nil
}

// Append adds e at the end and returns its position. e gets a fresh id when
// it has none or a row in the table already uses it.
func (s *Store) Append(e Entry) int {
	if e.ID == "" || s.live(e.ID) {
		e.ID = id.NewAt(s.now())
	}
	s.rows = append(s.rows, e)
	return len(s.rows) - 1
}

// Update sets one field in place and stamps the row with the column name
// and the time of the edit. Cross-field consistency is not checked.
func (s *Store) Update(pos int, f Field, value string) error {
	if pos < 0 || pos >= len(s.rows) {
		return fmt.Errorf("row %d: %w", pos+1, ErrNotFound)
	}
	e := &s.rows[pos]
	if !e.set(f, value) {
		return fmt.Errorf("field %d: %w", int(f), ErrNotFound)
	}
	now := s.now()
	msg := f.String() + ": " + stampTime(now)
	e.LastEdited = &now
	e.LastEditedMsg = &msg
	return nil
}

// Fill sets one field without stamping the row, for values the application
// fills in on the user's behalf.
func (s *Store) Fill(pos int, f Field, value string) error {
	if pos < 0 || pos >= len(s.rows) {
		return fmt.Errorf("row %d: %w", pos+1, ErrNotFound)
	}
	if !s.rows[pos].set(f, value) {
		return fmt.Errorf("field %d: %w", int(f), ErrNotFound)
	}
	return nil
}

// Remove moves the row at pos to the front of the recycle bin.
func (s *Store) Remove(pos int) (RecycleEntry, error) {
	if pos < 0 || pos >= len(s.rows) {
		return RecycleEntry{}, fmt.Errorf("row %d: %w", pos+1, ErrNotFound)
	}
	re := RecycleEntry{Entry: s.rows[pos], DeletedAt: s.now()}
	s.rows = append(s.rows[:pos], s.rows[pos+1:]...)
	s.bin = append([]RecycleEntry{re}, s.bin...)
	s.lastDeleted = &re
	return re, nil
}

// UndoRemove puts the most recently deleted row back at the end of the
// table. It works once per delete, and only while that row still heads
// the bin.
func (s *Store) UndoRemove() (int, error) {
	if s.lastDeleted == nil || len(s.bin) == 0 || s.bin[0].ID != s.lastDeleted.ID {
		s.lastDeleted = nil
		return -1, fmt.Errorf("nothing to undo: %w", ErrNotFound)
	}
	re := s.bin[0]
	s.bin = s.bin[1:]
	s.lastDeleted = nil
	return s.Append(re.Entry), nil
}

// Bin returns a copy of the recycle bin, most recent first.
func (s *Store) Bin() []RecycleEntry {
	return append([]RecycleEntry(nil), s.bin...)
}

// Restore re-appends bin item i to the table and drops it from the bin.
func (s *Store) Restore(i int) (int, error) {
	if i < 0 || i >= len(s.bin) {
		return -1, fmt.Errorf("bin item %d: %w", i+1, ErrNotFound)
	}
	re := s.bin[i]
	s.bin = append(s.bin[:i], s.bin[i+1:]...)
	if s.lastDeleted != nil && s.lastDeleted.ID == re.ID {
		s.lastDeleted = nil
	}
	return s.Append(re.Entry), nil
}

// DeleteForever erases bin item i.
func (s *Store) DeleteForever(i int) error {
	if i < 0 || i >= len(s.bin) {
		return fmt.Errorf("bin item %d: %w", i+1, ErrNotFound)
	}
	if s.lastDeleted != nil && s.lastDeleted.ID == s.bin[i].ID {
		s.lastDeleted = nil
	}
	s.bin = append(s.bin[:i], s.bin[i+1:]...)
	return nil
}

// EmptyBin erases every bin item.
func (s *Store) EmptyBin() {
	s.bin = nil
	s.lastDeleted = nil
}

// Reorder stably resorts the table. The bin is untouched.
func (s *Store) Reorder(less func(a, b Entry) bool) {
	sort.SliceStable(s.rows, func(i, j int) bool { return less(s.rows[i], s.rows[j]) })
}

// SortBy orders the table by one column. Date columns compare parsed
// dates (unreadable dates first), P/L compares numbers when both cells
// parse, and everything else compares case-insensitive text.
func (s *Store) SortBy(f Field, desc bool) {
	s.Reorder(func(a, b Entry) bool {
		c := CompareField(a, b, f)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// CompareField returns -1, 0 or 1 comparing a and b on f.
func CompareField(a, b Entry, f Field) int {
	va, vb := a.Get(f), b.Get(f)
	switch f {
	case FieldDate, FieldExit:
		ta, _ := dates.Parse(va)
		tb, _ := dates.Parse(vb)
		return ta.Compare(tb)
	case FieldPL:
		na, oka := ParseAmount(va)
		nb, okb := ParseAmount(vb)
		if oka && okb {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(strings.ToLower(va), strings.ToLower(vb))
}
