package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/pnlreport/journal"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func fixture() []journal.Entry {
	return []journal.Entry{
		{Date: "2026-02-01", Owner: "Alice", Type: "Intraday", ExitDate: "2026-02-05", PL: "100"},
		{Owner: "Bob", Type: "F&O", ExitDate: "2026-02-05", PL: "-40"},
		{Owner: "Alice", Type: "F&O", ExitDate: "2026-03-02", PL: "60"},
		{Owner: "Bob", Type: "Intraday", ExitDate: "", PL: "25"},
		{Owner: "  ", Type: "Intraday", ExitDate: "2026-03-03", PL: "10"},
		{Owner: "Carol", Type: "Delivery", ExitDate: "2026-03-04", PL: "abc"},
		{Owner: "Bob ", Type: "Intraday", ExitDate: "05-02-2026", PL: "15"},
		{Owner: "Dan", Type: "X", ExitDate: "someday", PL: "5"},
	}
}

func keys(bs []Bucket) []string {
	var out []string
	for _, b := range bs {
		out = append(out, b.Key)
	}
	return out
}

func TestByOwner(t *testing.T) {
	t.Parallel()

	rows := Rows(fixture(), nil)
	owners := ByOwner(rows, WindowAll, now)

	require.Equal(t, []string{"Alice", "Bob"}, keys(owners))
	assert.InDelta(t, 160, owners[0].PL, 1e-9)
	assert.Equal(t, 2, owners[0].Trades)
	assert.InDelta(t, -25, owners[1].PL, 1e-9)
	assert.Equal(t, 1, owners[1].Wins)
	assert.InDelta(t, 0.5, owners[1].WinRate(), 1e-9)
	assert.InDelta(t, 15.0/40.0, owners[1].RewardRisk(), 1e-9)
}

func TestByOwnerWindows(t *testing.T) {
	t.Parallel()

	rows := Rows(fixture(), nil)

	month := ByOwner(rows, WindowCurrentMonth, now)
	require.Equal(t, []string{"Alice"}, keys(month))
	assert.InDelta(t, 60, month[0].PL, 1e-9)

	past := ByOwner(rows, WindowExcludeCurrentMonth, now)
	require.Equal(t, []string{"Alice", "Bob"}, keys(past))
	assert.InDelta(t, 100, past[0].PL, 1e-9)
}

func TestByTypeAndPair(t *testing.T) {
	t.Parallel()

	rows := Rows(fixture(), nil)

	types := ByType(rows, WindowAll, now)
	require.Equal(t, []string{"Intraday", "F&O"}, keys(types))
	assert.InDelta(t, 125, types[0].PL, 1e-9)
	assert.InDelta(t, 20, types[1].PL, 1e-9)

	pairs := ByOwnerType(rows, WindowAll, now)
	require.Equal(t, []string{"Alice / Intraday", "Alice / F&O", "Bob / Intraday", "Bob / F&O"}, keys(pairs))
	assert.Equal(t, "Bob", pairs[3].Owner)
	assert.Equal(t, "F&O", pairs[3].Type)
}

func TestTiesKeepFirstSeenOrder(t *testing.T) {
	t.Parallel()

	rows := Rows([]journal.Entry{
		{Owner: "Zed", ExitDate: "2026-03-01", PL: "10"},
		{Owner: "Amy", ExitDate: "2026-03-01", PL: "10"},
	}, nil)
	assert.Equal(t, []string{"Zed", "Amy"}, keys(ByOwner(rows, WindowAll, now)))
}

func TestBucketsSumToTotals(t *testing.T) {
	t.Parallel()

	entries := []journal.Entry{
		{Owner: "Alice", Type: "Intraday", ExitDate: "2026-02-05", PL: "100"},
		{Owner: "Bob", Type: "F&O", ExitDate: "2026-02-06", PL: "-40.25"},
		{Owner: "Alice", Type: "F&O", ExitDate: "2026-03-02", PL: "60.5"},
		{Owner: "Carol", Type: "Delivery", ExitDate: "2026-03-04", PL: "-7"},
	}
	rows := Rows(entries, []bool{true, true, false, true})

	sum := func(bs []Bucket) float64 {
		var s float64
		for _, b := range bs {
			s += b.PL
		}
		return s
	}

	plain := VisibleTotal(rows)
	assert.InDelta(t, 52.75, plain, 1e-9)
	assert.InDelta(t, plain, sum(ByOwner(rows, WindowAll, now)), 1e-9)
	assert.InDelta(t, plain, sum(ByType(rows, WindowAll, now)), 1e-9)
	assert.InDelta(t, plain, sum(ByOwnerType(rows, WindowAll, now)), 1e-9)
}

func TestDailyGroupsByRawText(t *testing.T) {
	t.Parallel()

	days := Daily(Rows(fixture(), nil))

	var labels []string
	for _, d := range days {
		labels = append(labels, d.Key)
	}
	// the unreadable key sorts at the epoch; two spellings of Feb 5 stay apart
	assert.Equal(t, []string{"someday", "2026-02-05", "05-02-2026", "2026-03-02", "2026-03-03"}, labels)
	assert.False(t, days[0].HasDate)
	assert.True(t, days[0].Date.Equal(time.Unix(0, 0)))
	assert.InDelta(t, 60, days[1].PL, 1e-9)
	assert.InDelta(t, 15, days[2].PL, 1e-9)
}

func TestDailyTotals(t *testing.T) {
	t.Parallel()

	totals := DailyTotals(Rows(fixture(), nil))
	assert.InDelta(t, 75, totals["2026-02-05"], 1e-9)
	assert.InDelta(t, 60, totals["2026-03-02"], 1e-9)
	_, ok := totals["2026-03-04"]
	assert.False(t, ok)
}

func TestMonthly(t *testing.T) {
	t.Parallel()

	months := Monthly(Rows(fixture(), nil), WindowAll, now)
	require.Len(t, months, 2)

	mar, feb := months[0], months[1]
	assert.Equal(t, "2026-03", mar.Key)
	assert.Equal(t, "March 2026", mar.Label)
	assert.InDelta(t, 70, mar.PL, 1e-9)
	assert.Equal(t, 2, mar.Trades)
	assert.Equal(t, []string{"Alice"}, keys(mar.Owners))
	assert.Equal(t, []string{"F&O", "Intraday"}, keys(mar.Types))
	assert.Equal(t, []string{"2026-03-02", "2026-03-03"}, keys(mar.Days))

	assert.Equal(t, "February 2026", feb.Label)
	assert.InDelta(t, 75, feb.PL, 1e-9)
	assert.Equal(t, []string{"2026-02-05"}, keys(feb.Days), "days are keyed by parsed date")
	assert.Equal(t, []string{"Alice", "Bob"}, keys(feb.Owners))
	assert.Equal(t, 1, feb.Month.Day())

	trend := Trend(months)
	assert.Equal(t, "2026-02", trend[0].Key)
	assert.Equal(t, "2026-03", months[0].Key, "Trend does not reorder its input")

	past := Monthly(Rows(fixture(), nil), WindowExcludeCurrentMonth, now)
	require.Len(t, past, 1)
	assert.Equal(t, "2026-02", past[0].Key)
}

func TestCumulative(t *testing.T) {
	t.Parallel()

	cells := Cumulative(Rows(fixture(), nil))
	var got []string
	for _, c := range cells {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{"100.00", "60.00", "120.00", "145.00", "155.00", "--", "170.00", "175.00"}, got)
}

func TestCumulativeSkipsHiddenRows(t *testing.T) {
	t.Parallel()

	rows := Rows([]journal.Entry{{PL: "10"}, {PL: "5"}, {PL: "-3"}}, []bool{true, false, true})
	cells := Cumulative(rows)

	assert.Equal(t, []Cell{{Value: 10, OK: true}, {}, {Value: 7, OK: true}}, cells)
	assert.InDelta(t, 7, VisibleTotal(rows), 1e-9)
}

func TestPlainTotals(t *testing.T) {
	t.Parallel()

	tot := PlainTotals(Rows(fixture(), nil))
	assert.InDelta(t, 175, tot.NetPL, 1e-9)
	assert.Equal(t, 7, tot.Trades)
	assert.Equal(t, 6, tot.Wins)
	assert.InDelta(t, 215.0/40.0, tot.ProfitFactor(), 1e-9)
	assert.InDelta(t, 6.0/7.0, tot.WinRate(), 1e-9)

	assert.Equal(t, 0.0, PlainTotals(nil).WinRate())
}

func TestBuildIsIdempotent(t *testing.T) {
	t.Parallel()

	opts := Options{Now: now}
	a := Build(fixture(), nil, opts)
	b := Build(fixture(), nil, opts)
	assert.Equal(t, a, b)
	assert.Equal(t, a.Cumulative, b.Cumulative)
}

func TestBuildAndAnalyze(t *testing.T) {
	t.Parallel()

	opts := Options{Now: now}
	snap := Build(fixture(), nil, opts)
	assert.Equal(t, []string{"Alice"}, keys(snap.MonthOwners))
	assert.Len(t, snap.Months, 2)
	assert.InDelta(t, 175, snap.VisibleTotal, 1e-9)

	an := Analyze(snap.Rows, opts)
	assert.Equal(t, 2, an.Dashboard.Trades)
	assert.InDelta(t, 70, an.Dashboard.NetPL, 1e-9)
	assert.Equal(t, 5, an.Overall.Trades)
	assert.InDelta(t, 145, an.Overall.NetPL, 1e-9)

	opts.ExcludeCurrentMonth = true
	snap = Build(fixture(), nil, opts)
	assert.Len(t, snap.Months, 1)
	assert.Equal(t, 3, Analyze(snap.Rows, opts).Overall.Trades)
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1234.50", Money(1234.5))
	assert.Equal(t, "-0.10", Money(-0.1))
	assert.Equal(t, "62.5%", Percent(0.625))
	assert.Equal(t, "∞", Ratio(math.Inf(1)))
	assert.Equal(t, "3.00", Ratio(3))
}

func TestColorFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hsl(65, 70%, 60%)", ColorFor("A"))
	assert.Equal(t, "hsl(313, 70%, 60%)", ColorFor("Ab"))
	assert.Equal(t, ColorFor("Alice"), ColorFor("Alice"))
	assert.Equal(t, "", ColorFor(""))
}

func TestSeries(t *testing.T) {
	t.Parallel()

	snap := Build(fixture(), nil, Options{Now: now})

	owners := LabelSeries(snap.Owners)
	assert.Equal(t, []string{"Alice", "Bob"}, owners.Labels)
	assert.Equal(t, []float64{160, -25}, owners.Values)
	assert.Equal(t, ColorFor("Alice"), owners.Colors[0])

	daily := DailySeries(snap.Daily)
	assert.Len(t, daily.Colors, 5)
	assert.Equal(t, profitColor, daily.Colors[0])

	trend := TrendSeries(snap.Months)
	assert.Equal(t, []string{"February 2026", "March 2026"}, trend.Labels)
}

func TestPortfolioTotals(t *testing.T) {
	t.Parallel()

	tot := Portfolio([]journal.PortfolioEntry{
		{Fund: "10000", Profit: "500", Charges: "20", Sharing: "100"},
		{Fund: "5000", Profit: "-50", Charges: "5", Sharing: ""},
	})
	assert.Equal(t, 2, tot.Count)
	assert.Equal(t, "15000.00", tot.Fund.StringFixed(2))
	assert.Equal(t, "325.00", tot.Net.StringFixed(2))
}
