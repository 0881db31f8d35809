package report

import (
	"time"

	"github.com/rustyeddy/pnlreport/journal"
	"github.com/rustyeddy/pnlreport/stats"
)

type Options struct {
	Now time.Time

	// ExcludeCurrentMonth drops the running month from the overall
	// breakdowns and the monthly table.
	ExcludeCurrentMonth bool
}

func (o Options) overall() Window {
	if o.ExcludeCurrentMonth {
		return WindowExcludeCurrentMonth
	}
	return WindowAll
}

// Snapshot is every aggregate derived from one row set and visibility mask.
type Snapshot struct {
	Rows []Row

	Totals       Totals
	VisibleTotal float64
	Cumulative   []Cell

	Owners     []Bucket
	Types      []Bucket
	OwnerTypes []Bucket

	MonthOwners     []Bucket
	MonthTypes      []Bucket
	MonthOwnerTypes []Bucket

	Daily  []DailyBucket
	Months []MonthBucket
}

// Build runs the full aggregation pass. It is pure: the same entries, mask
// and options always produce the same snapshot.
func Build(entries []journal.Entry, visible []bool, opts Options) Snapshot {
	rows := Rows(entries, visible)
	overall := opts.overall()

	return Snapshot{
		Rows:         rows,
		Totals:       PlainTotals(rows),
		VisibleTotal: VisibleTotal(rows),
		Cumulative:   Cumulative(rows),

		Owners:     ByOwner(rows, overall, opts.Now),
		Types:      ByType(rows, overall, opts.Now),
		OwnerTypes: ByOwnerType(rows, overall, opts.Now),

		MonthOwners:     ByOwner(rows, WindowCurrentMonth, opts.Now),
		MonthTypes:      ByType(rows, WindowCurrentMonth, opts.Now),
		MonthOwnerTypes: ByOwnerType(rows, WindowCurrentMonth, opts.Now),

		Daily:  Daily(rows),
		Months: Monthly(rows, overall, opts.Now),
	}
}

// Analysis holds the higher-order statistics for the two windows the
// dashboard and the monthly view show.
type Analysis struct {
	Dashboard stats.Stats // current calendar month
	Overall   stats.Stats // all months, minus the current one if configured
}

// Analyze computes statistics from the same rows a Snapshot was built on.
func Analyze(rows []Row, opts Options) Analysis {
	return Analysis{
		Dashboard: stats.Calculate(Trades(rows, WindowCurrentMonth, opts.Now)),
		Overall:   stats.Calculate(Trades(rows, opts.overall(), opts.Now)),
	}
}
