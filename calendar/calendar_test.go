package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestResolveNamed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		start  time.Time
		months int
		first  time.Time
	}{
		{Last7Days, day(2026, 3, 4), 1, day(2026, 3, 1)},
		{Last15Days, day(2026, 2, 24), 2, day(2026, 2, 1)},
		{LastMonth, day(2026, 2, 10), 1, day(2026, 3, 1)},
		{"", day(2026, 2, 10), 1, day(2026, 3, 1)},
		{Last3Months, day(2025, 12, 10), 3, day(2026, 1, 1)},
		{Last12Months, day(2025, 3, 10), 12, day(2025, 4, 1)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := Resolve(Spec{Name: tt.name}, now)
			require.NoError(t, err)
			assert.True(t, r.Start.Equal(tt.start), "start %s", r.Start)
			assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, int(999*time.Millisecond), time.Local), r.End)
			require.Len(t, r.Months, tt.months)
			assert.True(t, r.Months[0].Equal(tt.first))
			assert.True(t, r.Months[len(r.Months)-1].Equal(day(2026, 3, 1)))
		})
	}
}

func TestResolveShortRangeWithinMonth(t *testing.T) {
	t.Parallel()

	r, err := Resolve(Spec{Name: Last15Days}, time.Date(2026, 3, 20, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.True(t, r.Start.Equal(day(2026, 3, 6)))
	require.Len(t, r.Months, 1)
	assert.True(t, r.Months[0].Equal(day(2026, 3, 1)))

	r, err = Resolve(Spec{Name: Last12Months}, time.Date(2026, 1, 31, 9, 0, 0, 0, time.Local))
	require.NoError(t, err)
	require.Len(t, r.Months, 12)
	assert.True(t, r.Months[0].Equal(day(2025, 2, 1)))
	assert.True(t, r.Months[11].Equal(day(2026, 1, 1)))
}

func TestResolveCustom(t *testing.T) {
	t.Parallel()

	r, err := Resolve(Spec{Name: "custom", From: "2026-01-15", To: "15/03/2026"}, now)
	require.NoError(t, err)
	assert.True(t, r.Start.Equal(day(2026, 1, 15)))
	assert.True(t, r.Contains(time.Date(2026, 3, 15, 23, 59, 59, 0, time.Local)))
	assert.False(t, r.Contains(day(2026, 3, 16)))
	assert.False(t, r.Contains(day(2026, 1, 14)))
	require.Len(t, r.Months, 3)
	assert.True(t, r.Months[0].Equal(day(2026, 1, 1)))
	assert.True(t, r.Months[2].Equal(day(2026, 3, 1)))
}

func TestResolveCustomCapped(t *testing.T) {
	t.Parallel()

	r, err := Resolve(Spec{Name: Custom, From: "2020-01-01", To: "2026-12-31"}, now)
	require.NoError(t, err)
	assert.Len(t, r.Months, MaxMonths)
	assert.True(t, r.Months[0].Equal(day(2020, 1, 1)))
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	for _, spec := range []Spec{
		{Name: "2w"},
		{Name: Custom, From: "nope", To: "2026-01-01"},
		{Name: Custom, From: "2026-01-01", To: ""},
		{Name: Custom, From: "2026-02-01", To: "2026-01-01"},
	} {
		_, err := Resolve(spec, now)
		assert.ErrorIs(t, err, ErrInvalidRange, "%+v", spec)
	}
}

func TestHeatmap(t *testing.T) {
	t.Parallel()

	r, err := Resolve(Spec{Name: Last7Days}, now)
	require.NoError(t, err)

	months := Heatmap(r, map[string]float64{
		"2026-03-01": 99,
		"2026-03-05": 50,
		"2026-03-06": -20,
		"2026-03-07": 0,
	})
	require.Len(t, months, 1)

	m := months[0]
	assert.Equal(t, "March 2026", m.Label)
	assert.Equal(t, 0, m.Lead) // 1 March 2026 is a Sunday
	require.Len(t, m.Days, 31)

	states := map[int]State{1: OutOfRange, 4: NoData, 5: Profit, 6: Loss, 7: Profit, 10: NoData, 11: OutOfRange}
	for d, want := range states {
		assert.Equal(t, want, m.Days[d-1].State, "day %d", d)
	}
	assert.Equal(t, 0.0, m.Days[0].PL, "out of range days carry no total")
	assert.InDelta(t, 30, m.Net, 1e-9)
	assert.Equal(t, "loss", m.Days[5].State.String())
}

func TestHeatmapLead(t *testing.T) {
	t.Parallel()

	r, err := Resolve(Spec{Name: Custom, From: "2026-04-01", To: "2026-04-30"}, now)
	require.NoError(t, err)
	months := Heatmap(r, nil)
	require.Len(t, months, 1)
	assert.Equal(t, 3, months[0].Lead)
	assert.Len(t, months[0].Days, 30)
	assert.Equal(t, NoData, months[0].Days[29].State)
}
