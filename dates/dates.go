// Package dates turns the free text typed into the journal's date columns
// into comparable calendar dates.
package dates

import (
	"strconv"
	"strings"
	"time"
)

const (
	ISOLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// fallbackLayouts are tried, in order, when the text is not a plain
// day/month/year triple.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 2 2006",
	"Mon Jan 02 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"2006.01.02",
}

// Parse is ParseIn using the local time zone.
func Parse(text string) (time.Time, bool) {
	return ParseIn(text, time.Local)
}

// ParseIn normalizes text into a calendar date at midnight in loc. It
// accepts ISO dates, year-first and year-last triples separated by '-' or
// '/', and a handful of common long forms. It never panics; anything it
// cannot read reports false.
func ParseIn(text string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.ParseInLocation(ISOLayout, s, loc); err == nil {
		return t, true
	}

	if t, ok, matched := parseTriple(s, loc); matched {
		return t, ok
	}

	for _, layout := range fallbackLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		t = t.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}

// parseTriple handles DD-MM-YYYY, DD/MM/YYYY, YYYY-MM-DD and YYYY/MM/DD.
// matched is false when s does not look like a numeric triple at all, so
// the caller can fall back to the generic layouts.
func parseTriple(s string, loc *time.Location) (t time.Time, ok bool, matched bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '/' })
	if len(parts) != 3 {
		return time.Time{}, false, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, false, false
		}
		nums[i] = n
	}

	var y, m, d int
	switch {
	case len(parts[0]) == 4:
		y, m, d = nums[0], nums[1], nums[2]
	case len(parts[2]) == 4:
		d, m, y = nums[0], nums[1], nums[2]
	default:
		return time.Time{}, false, false
	}

	if m < 1 || m > 12 || d < 1 {
		return time.Time{}, false, true
	}
	t = time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if t.Day() != d || int(t.Month()) != m {
		// 31-02-2026 and friends
		return time.Time{}, false, true
	}
	return t, true, true
}

// DayKey formats t as YYYY-MM-DD.
func DayKey(t time.Time) string { return t.Format(ISOLayout) }

// MonthKey formats t as a sortable YYYY-MM key.
func MonthKey(t time.Time) string { return t.Format(MonthLayout) }

// MonthLabel formats t as "February 2026".
func MonthLabel(t time.Time) string { return t.Format("January 2006") }

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last representable millisecond of t's day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// BeforeMonth reports whether t falls strictly before the calendar month
// containing ref.
func BeforeMonth(t, ref time.Time) bool {
	return t.Before(time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, t.Location()))
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// Today returns the ISO date of now, used as the default for new rows.
func Today(now time.Time) string { return now.Format(ISOLayout) }
