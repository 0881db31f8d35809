// Package filter decides which journal rows are visible. Visibility is the
// conjunction of per-column text filters and an optional temporal Rule; it
// never reorders or mutates the rows.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/rustyeddy/pnlreport/dates"
	"github.com/rustyeddy/pnlreport/journal"
)

// Filterable lists the columns a text filter can be set on.
var Filterable = []journal.Field{
	journal.FieldDate,
	journal.FieldOwner,
	journal.FieldType,
	journal.FieldExit,
	journal.FieldPL,
	journal.FieldRemark,
}

// Rule hides rows on grounds other than column text.
type Rule interface {
	Hide(e journal.Entry, now time.Time) bool
}

// MinimizePastMonths hides rows that belong to earlier months: a row with
// an exit date before the current month, or a row with no exit date whose
// entry date is before the current month and which has no P/L. Rows with
// a past entry date but a P/L stay visible.
type MinimizePastMonths struct{}

func (MinimizePastMonths) Hide(e journal.Entry, now time.Time) bool {
	if exit, ok := e.Exit(); ok {
		return dates.BeforeMonth(exit, now)
	}
	entered, ok := e.Entered()
	if !ok || !dates.BeforeMonth(entered, now) {
		return false
	}
	_, hasPL := e.Amount()
	return !hasPL
}

type Engine struct {
	filters map[journal.Field]string

	// Rule is applied after the column filters; nil disables it.
	Rule Rule
}

func New() *Engine {
	return &Engine{filters: make(map[journal.Field]string)}
}

// Set stores the filter text for a column. Blank text clears it.
func (e *Engine) Set(f journal.Field, text string) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		delete(e.filters, f)
		return
	}
	e.filters[f] = text
}

func (e *Engine) Clear() {
	e.filters = make(map[journal.Field]string)
}

// Active returns the non-empty filters ordered by column.
func (e *Engine) Active() []Column {
	out := make([]Column, 0, len(e.filters))
	for f, text := range e.filters {
		out = append(out, Column{Field: f, Text: text})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// Column is one active text filter.
type Column struct {
	Field journal.Field
	Text  string
}

// Match reports whether row passes every column filter.
func (e *Engine) Match(row journal.Entry) bool {
	for f, text := range e.filters {
		if !strings.Contains(strings.ToLower(row.Get(f)), text) {
			return false
		}
	}
	return true
}

func (e *Engine) Visible(row journal.Entry, now time.Time) bool {
	if !e.Match(row) {
		return false
	}
	return e.Rule == nil || !e.Rule.Hide(row, now)
}

// Visibility returns one flag per row, aligned with rows.
func (e *Engine) Visibility(rows []journal.Entry, now time.Time) []bool {
	out := make([]bool, len(rows))
	for i, r := range rows {
		out[i] = e.Visible(r, now)
	}
	return out
}
