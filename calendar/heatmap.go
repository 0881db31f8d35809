package calendar

import (
	"time"

	"github.com/rustyeddy/pnlreport/dates"
)

// State classifies one heatmap day.
type State int

const (
	OutOfRange State = iota
	NoData
	Profit
	Loss
)

func (s State) String() string {
	switch s {
	case NoData:
		return "no-data"
	case Profit:
		return "profit"
	case Loss:
		return "loss"
	}
	return "out-of-range"
}

type DayCell struct {
	Date  time.Time
	State State
	PL    float64
}

// Month is one rendered grid. Lead is the number of blank cells before the
// first day when weeks start on Sunday.
type Month struct {
	Month time.Time
	Label string
	Lead  int
	Days  []DayCell
	Net   float64 // in-range total
}

// Heatmap lays daily totals, keyed YYYY-MM-DD, over the months of r. A day
// with a total of exactly zero counts as profit.
func Heatmap(r Range, totals map[string]float64) []Month {
	out := make([]Month, 0, len(r.Months))
	for _, first := range r.Months {
		m := Month{
			Month: first,
			Label: dates.MonthLabel(first),
			Lead:  int(first.Weekday()),
		}
		n := dates.DaysIn(first)
		m.Days = make([]DayCell, n)
		for d := 0; d < n; d++ {
			day := first.AddDate(0, 0, d)
			cell := DayCell{Date: day}
			switch pl, ok := totals[dates.DayKey(day)]; {
			case !r.Contains(day):
				cell.State = OutOfRange
			case !ok:
				cell.State = NoData
			case pl >= 0:
				cell.State, cell.PL = Profit, pl
			default:
				cell.State, cell.PL = Loss, pl
			}
			m.Net += cell.PL
			m.Days[d] = cell
		}
		out = append(out, m)
	}
	return out
}
