package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatsAgree(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2026-02-15",
		"15-02-2026",
		"15/02/2026",
		"2026/02/15",
		" 2026-2-15 ",
		"Feb 15, 2026",
		"15 February 2026",
		"2026-02-15T10:30:00",
	} {
		t.Run(in, func(t *testing.T) {
			got, ok := ParseIn(in, time.UTC)
			require.True(t, ok)
			assert.True(t, want.Equal(got), "got %v", got)
		})
	}
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "not-a-date", "31-02-2026", "2026-13-01", "12/05/26", "abc/def/ghij"} {
		_, ok := ParseIn(in, time.UTC)
		assert.False(t, ok, in)
	}
}

func TestParseUsesLocation(t *testing.T) {
	t.Parallel()

	ist := time.FixedZone("IST", 19800)
	got, ok := ParseIn("2026-02-15T20:00:00Z", ist)
	require.True(t, ok)
	// 20:00 UTC is already the 16th in IST
	assert.Equal(t, 16, got.Day())
	assert.Equal(t, ist, got.Location())
}

func TestMonthHelpers(t *testing.T) {
	t.Parallel()

	d := time.Date(2026, 2, 15, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-02", MonthKey(d))
	assert.Equal(t, "February 2026", MonthLabel(d))
	assert.Equal(t, "2026-02-15", DayKey(d))
	assert.Equal(t, 28, DaysIn(d))
	assert.Equal(t, 1, StartOfMonth(d).Day())
	assert.Equal(t, 999*time.Millisecond, time.Duration(EndOfDay(d).Nanosecond()))

	ref := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, BeforeMonth(d, ref))
	assert.False(t, BeforeMonth(ref, ref))
	assert.True(t, SameMonth(d, StartOfMonth(d)))
	assert.False(t, SameMonth(d, ref))
}
