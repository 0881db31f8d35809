// Package report folds the journal rows into every derived view: dashboard
// totals, owner/type/owner×type breakdowns, daily and monthly rollups and the
// cumulative P/L column. Each call rebuilds its buckets from scratch; nothing
// is patched incrementally.
package report

import (
	"strings"
	"time"

	"github.com/rustyeddy/pnlreport/dates"
	"github.com/rustyeddy/pnlreport/journal"
)

// Row is a journal entry with its cells parsed for one aggregation pass.
type Row struct {
	Index   int
	Entry   journal.Entry
	Visible bool

	PL    float64
	HasPL bool

	Exit    time.Time
	HasExit bool

	Owner string // trimmed
	Type  string // trimmed
}

// Realized reports whether the row counts toward grouped aggregates.
func (r Row) Realized() bool { return r.HasPL && r.HasExit }

// Rows parses entries in table order. visible is aligned with entries; a
// nil or short mask leaves the remaining rows visible.
func Rows(entries []journal.Entry, visible []bool) []Row {
	out := make([]Row, len(entries))
	for i, e := range entries {
		r := Row{
			Index:   i,
			Entry:   e,
			Visible: i >= len(visible) || visible[i],
			Owner:   strings.TrimSpace(e.Owner),
			Type:    strings.TrimSpace(e.Type),
		}
		r.PL, r.HasPL = e.Amount()
		r.Exit, r.HasExit = e.Exit()
		out[i] = r
	}
	return out
}

// Window restricts grouped reports by the month of the exit date.
type Window int

const (
	WindowAll Window = iota
	WindowCurrentMonth
	WindowExcludeCurrentMonth
)

// Contains reports whether a trade that exited at exit belongs to the
// window, relative to now.
func (w Window) Contains(exit, now time.Time) bool {
	switch w {
	case WindowCurrentMonth:
		return dates.SameMonth(exit, now)
	case WindowExcludeCurrentMonth:
		return !dates.SameMonth(exit, now)
	}
	return true
}

func (w Window) String() string {
	switch w {
	case WindowCurrentMonth:
		return "current month"
	case WindowExcludeCurrentMonth:
		return "excluding current month"
	}
	return "all"
}

// realizedIn yields the visible realized rows inside the window.
func realizedIn(rows []Row, w Window, now time.Time) []Row {
	var out []Row
	for _, r := range rows {
		if r.Visible && r.Realized() && w.Contains(r.Exit, now) {
			out = append(out, r)
		}
	}
	return out
}
