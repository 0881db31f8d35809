package report

import (
	"sort"
	"time"

	"github.com/rustyeddy/pnlreport/dates"
	"github.com/rustyeddy/pnlreport/stats"
)

// ByOwner groups visible realized rows by trimmed owner. Rows with a blank
// owner are left out.
func ByOwner(rows []Row, w Window, now time.Time) []Bucket {
	g := newGrouper()
	for _, r := range realizedIn(rows, w, now) {
		if r.Owner == "" {
			continue
		}
		g.bucket(r.Owner).add(r.PL)
	}
	return g.byPL()
}

// ByType groups visible realized rows by trimmed type.
func ByType(rows []Row, w Window, now time.Time) []Bucket {
	g := newGrouper()
	for _, r := range realizedIn(rows, w, now) {
		if r.Type == "" {
			continue
		}
		g.bucket(r.Type).add(r.PL)
	}
	return g.byPL()
}

// ByOwnerType groups by the (owner, type) pair; both must be present.
func ByOwnerType(rows []Row, w Window, now time.Time) []Bucket {
	g := newGrouper()
	for _, r := range realizedIn(rows, w, now) {
		if r.Owner == "" || r.Type == "" {
			continue
		}
		b := g.bucket(r.Owner + "\x00" + r.Type)
		b.Owner, b.Type = r.Owner, r.Type
		b.add(r.PL)
	}
	out := g.byPL()
	for i := range out {
		out[i].Key = out[i].Owner + " / " + out[i].Type
	}
	return out
}

// DailyBucket is one bar of the daily chart.
type DailyBucket struct {
	Bucket
	// Date is the parsed key, or the Unix epoch when the key does not parse.
	Date    time.Time
	HasDate bool
}

// Daily groups visible rows that have exit text and a P/L by the exit text
// exactly as typed. Two spellings of one day therefore make two bars. Bars
// are ordered by parsed date; unreadable keys sort as the Unix epoch.
func Daily(rows []Row) []DailyBucket {
	g := newGrouper()
	for _, r := range rows {
		if !r.Visible || !r.HasPL || r.Entry.ExitDate == "" {
			continue
		}
		g.bucket(r.Entry.ExitDate).add(r.PL)
	}

	out := make([]DailyBucket, len(g.buckets))
	for i, b := range g.buckets {
		d := DailyBucket{Bucket: b}
		d.Date, d.HasDate = dates.Parse(b.Key)
		if !d.HasDate {
			d.Date = time.Unix(0, 0)
		}
		out[i] = d
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// DailyTotals sums visible realized P/L per parsed exit day, keyed
// YYYY-MM-DD. The calendar heatmap reads this.
func DailyTotals(rows []Row) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range realizedIn(rows, WindowAll, time.Time{}) {
		out[dates.DayKey(r.Exit)] += r.PL
	}
	return out
}

// MonthBucket is one calendar month with drill-down breakdowns.
type MonthBucket struct {
	Bucket // Key is YYYY-MM

	Label string    // "February 2026"
	Month time.Time // first day of the month

	Days   []Bucket // ascending by YYYY-MM-DD
	Owners []Bucket // by P/L, highest first
	Types  []Bucket
}

// Monthly groups visible realized rows by the month of the exit date, most
// recent month first.
func Monthly(rows []Row, w Window, now time.Time) []MonthBucket {
	type acc struct {
		month  MonthBucket
		days   *grouper
		owners *grouper
		types  *grouper
	}

	index := make(map[string]*acc)
	var order []*acc

	for _, r := range realizedIn(rows, w, now) {
		key := dates.MonthKey(r.Exit)
		a, ok := index[key]
		if !ok {
			a = &acc{
				month: MonthBucket{
					Bucket: Bucket{Key: key},
					Label:  dates.MonthLabel(r.Exit),
					Month:  dates.StartOfMonth(r.Exit),
				},
				days:   newGrouper(),
				owners: newGrouper(),
				types:  newGrouper(),
			}
			index[key] = a
			order = append(order, a)
		}
		a.month.add(r.PL)
		a.days.bucket(dates.DayKey(r.Exit)).add(r.PL)
		if r.Owner != "" {
			a.owners.bucket(r.Owner).add(r.PL)
		}
		if r.Type != "" {
			a.types.bucket(r.Type).add(r.PL)
		}
	}

	out := make([]MonthBucket, len(order))
	for i, a := range order {
		m := a.month
		m.Days = a.days.byKey()
		m.Owners = a.owners.byPL()
		m.Types = a.types.byPL()
		out[i] = m
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out
}

// Trend returns months oldest first, for the trend chart.
func Trend(months []MonthBucket) []MonthBucket {
	out := append([]MonthBucket(nil), months...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Cell is one value of the cumulative P/L column.
type Cell struct {
	Value float64
	OK    bool
}

func (c Cell) String() string {
	if !c.OK {
		return "--"
	}
	return Money(c.Value)
}

// Cumulative runs a P/L total down the rows in their current order. Hidden
// rows and rows without a P/L get the "--" cell and do not move the total.
func Cumulative(rows []Row) []Cell {
	out := make([]Cell, len(rows))
	var running float64
	for i, r := range rows {
		if !r.Visible || !r.HasPL {
			continue
		}
		running += r.PL
		out[i] = Cell{Value: running, OK: true}
	}
	return out
}

// VisibleTotal sums the P/L of visible rows.
func VisibleTotal(rows []Row) float64 {
	var total float64
	for _, r := range rows {
		if r.Visible && r.HasPL {
			total += r.PL
		}
	}
	return total
}

// Totals are the plain dashboard tiles: every visible row with a P/L,
// whether or not it has an exit date or labels.
type Totals struct {
	NetPL     float64
	Trades    int
	Wins      int
	GrossWin  float64
	GrossLoss float64
}

func (t Totals) WinRate() float64 {
	if t.Trades == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.Trades)
}

func (t Totals) ProfitFactor() float64 {
	return stats.ProfitFactor(t.GrossWin, t.GrossLoss)
}

func PlainTotals(rows []Row) Totals {
	var t Totals
	for _, r := range rows {
		if !r.Visible || !r.HasPL {
			continue
		}
		t.Trades++
		t.NetPL += r.PL
		switch {
		case r.PL > 0:
			t.Wins++
			t.GrossWin += r.PL
		case r.PL < 0:
			t.GrossLoss += -r.PL
		}
	}
	return t
}

// Trades returns the visible realized rows in the window as a
// chronological trade sequence for stats.Calculate.
func Trades(rows []Row, w Window, now time.Time) []stats.Trade {
	in := realizedIn(rows, w, now)
	out := make([]stats.Trade, len(in))
	for i, r := range in {
		out[i] = stats.Trade{Date: r.Exit, PL: r.PL, Owner: r.Owner, Type: r.Type}
	}
	stats.SortChronological(out)
	return out
}
