// Package calendar resolves the heatmap date range and lays daily P/L totals
// out as month grids.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/pnlreport/dates"
)

// MaxMonths bounds the month list of a custom range.
const MaxMonths = 60

var ErrInvalidRange = errors.New("invalid calendar range")

// Named ranges.
const (
	Last7Days    = "7d"
	Last15Days   = "15d"
	LastMonth    = "1m"
	Last3Months  = "3m"
	Last12Months = "12m"
	Custom       = "custom"
)

// Names lists the accepted range names in menu order.
var Names = []string{Last7Days, Last15Days, LastMonth, Last3Months, Last12Months, Custom}

// Spec selects a range. From and To are only read for Custom.
type Spec struct {
	Name string
	From string
	To   string
}

// Range is an inclusive [Start, End] window and the months that cover it,
// oldest first.
type Range struct {
	Start  time.Time
	End    time.Time
	Months []time.Time
}

// Contains reports whether t lies inside the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Resolve turns a range spec into concrete bounds relative to now. Named
// ranges end today; a blank name means the last month. 1m, 3m and 12m
// render exactly 1, 3 and 12 months ending with the current one; 7d and
// 15d render the current month, plus the previous one when the window
// reaches back into it.
func Resolve(spec Spec, now time.Time) (Range, error) {
	name := strings.ToLower(strings.TrimSpace(spec.Name))
	end := dates.EndOfDay(now)
	today := dates.StartOfDay(now)

	var (
		start time.Time
		n     int
	)
	switch name {
	case Last7Days, Last15Days:
		days := 7
		if name == Last15Days {
			days = 15
		}
		start = today.AddDate(0, 0, 1-days)
		n = 1
		if !dates.SameMonth(start, today) {
			n = 2
		}
	case LastMonth, "":
		start, n = today.AddDate(0, -1, 0), 1
	case Last3Months:
		start, n = today.AddDate(0, -3, 0), 3
	case Last12Months:
		start, n = today.AddDate(-1, 0, 0), 12
	case Custom:
		return resolveCustom(spec, now.Location())
	default:
		return Range{}, fmt.Errorf("%w: unknown range %q", ErrInvalidRange, spec.Name)
	}

	return Range{Start: start, End: end, Months: monthsBack(n, now)}, nil
}

func resolveCustom(spec Spec, loc *time.Location) (Range, error) {
	from, ok := dates.ParseIn(spec.From, loc)
	if !ok {
		return Range{}, fmt.Errorf("%w: bad start date %q", ErrInvalidRange, spec.From)
	}
	to, ok := dates.ParseIn(spec.To, loc)
	if !ok {
		return Range{}, fmt.Errorf("%w: bad end date %q", ErrInvalidRange, spec.To)
	}
	if to.Before(from) {
		return Range{}, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, spec.From, spec.To)
	}

	r := Range{Start: dates.StartOfDay(from), End: dates.EndOfDay(to)}
	last := dates.StartOfMonth(to)
	for m := dates.StartOfMonth(from); !m.After(last) && len(r.Months) < MaxMonths; m = m.AddDate(0, 1, 0) {
		r.Months = append(r.Months, m)
	}
	return r, nil
}

// monthsBack returns the n months ending with now's month, oldest first.
func monthsBack(n int, now time.Time) []time.Time {
	first := dates.StartOfMonth(now).AddDate(0, 1-n, 0)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = first.AddDate(0, i, 0)
	}
	return out
}
