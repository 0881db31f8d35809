// Package app owns the journal state and runs the refresh pipeline after
// every mutation: persist, filter, aggregate, analyze, notify, then hand
// the rows to the sync bridge.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/pnlreport/calendar"
	"github.com/rustyeddy/pnlreport/dates"
	"github.com/rustyeddy/pnlreport/filter"
	"github.com/rustyeddy/pnlreport/journal"
	"github.com/rustyeddy/pnlreport/remote"
	"github.com/rustyeddy/pnlreport/report"
)

var ErrNotConfirmed = errors.New("destructive action not confirmed")

// Persister saves and loads the whole journal state.
type Persister interface {
	SaveState(ctx context.Context, st journal.State) error
	LoadState(ctx context.Context) (journal.State, error)
}

// Sink receives a payload after every persisted mutation.
type Sink interface {
	Schedule(p remote.OutboundPayload)
}

// Source supplies a full remote copy for restore.
type Source interface {
	Fetch(ctx context.Context) (remote.InboundPayload, error)
}

// Observer is told about every completed refresh.
type Observer interface {
	Refreshed(v View)
}

type ObserverFunc func(View)

func (f ObserverFunc) Refreshed(v View) { f(v) }

// View is everything derived from the current state.
type View struct {
	Snapshot  report.Snapshot
	Analysis  report.Analysis
	Portfolio report.PortfolioTotals
	Filters   []filter.Column
	Sort      SortState
}

// SortState is the column the table was last sorted on.
type SortState struct {
	Field  journal.Field
	Desc   bool
	Active bool
}

type Options struct {
	Now func() time.Time
	Log *zap.Logger

	Sink     Sink
	Source   Source
	AutoSync bool

	MinimizePastMonths  bool
	ExcludeCurrentMonth bool
}

type App struct {
	db  Persister
	log *zap.Logger
	now func() time.Time

	store     *journal.Store
	owners    *journal.Labels
	types     *journal.Labels
	portfolio *journal.Portfolio
	filter    *filter.Engine

	sink     Sink
	source   Source
	autoSync bool

	excludeCurrentMonth bool
	sort                SortState

	refreshing bool
	view       View
	observers  []Observer
}

// Open loads the persisted state and runs a first refresh. A database that
// was never saved to starts with the default owners and types.
func Open(ctx context.Context, db Persister, opts Options) (*App, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	a := &App{
		db:                  db,
		log:                 opts.Log,
		now:                 opts.Now,
		store:               journal.NewStore(opts.Now),
		filter:              filter.New(),
		sink:                opts.Sink,
		source:              opts.Source,
		autoSync:            opts.AutoSync,
		excludeCurrentMonth: opts.ExcludeCurrentMonth,
	}
	if opts.MinimizePastMonths {
		a.filter.Rule = filter.MinimizePastMonths{}
	}

	st, err := db.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	if !st.Initialized {
		st.Owners = journal.DefaultOwners
		st.Types = journal.DefaultTypes
	}
	a.apply(st)
	a.refresh()
	return a, nil
}

func (a *App) apply(st journal.State) {
	a.store.Load(st.Rows, st.Bin)
	a.owners = journal.NewLabels(st.Owners)
	a.types = journal.NewLabels(st.Types)
	a.portfolio = journal.NewPortfolio(st.Portfolio)
}

func (a *App) state() journal.State {
	return journal.State{
		Rows:        a.store.Entries(),
		Bin:         a.store.Bin(),
		Owners:      a.owners.List(),
		Types:       a.types.List(),
		Portfolio:   a.portfolio.Entries(),
		Initialized: true,
	}
}

// Subscribe registers o for every later refresh.
func (a *App) Subscribe(o Observer) {
	a.observers = append(a.observers, o)
}

// View returns the result of the last refresh.
func (a *App) View() View { return a.view }

// Refresh recomputes every derived view from the current rows. A call made
// while a refresh is already running is ignored.
func (a *App) Refresh() { a.refresh() }

func (a *App) refresh() {
	if a.refreshing {
		return
	}
	a.refreshing = true
	defer func() { a.refreshing = false }()

	now := a.now()
	entries := a.store.Entries()
	visible := a.filter.Visibility(entries, now)

	opts := report.Options{Now: now, ExcludeCurrentMonth: a.excludeCurrentMonth}
	snap := report.Build(entries, visible, opts)
	a.view = View{
		Snapshot:  snap,
		Analysis:  report.Analyze(snap.Rows, opts),
		Portfolio: report.Portfolio(a.portfolio.Entries()),
		Filters:   a.filter.Active(),
		Sort:      a.sort,
	}

	for _, o := range a.observers {
		o.Refreshed(a.view)
	}
}

// commit runs the pipeline after a mutation of persisted state. A failed
// save still refreshes, so the view matches the rows in memory; the next
// successful save writes the whole state.
func (a *App) commit(ctx context.Context) error {
	if err := a.db.SaveState(ctx, a.state()); err != nil {
		a.log.Error("save journal", zap.Error(err))
		a.refresh()
		return fmt.Errorf("save journal: %w", err)
	}
	a.refresh()
	a.scheduleSync()
	return nil
}

func (a *App) scheduleSync() {
	if a.sink == nil || !a.autoSync {
		return
	}
	a.sink.Schedule(a.Payload())
}

// Payload is the outbound sync body for the current state.
func (a *App) Payload() remote.OutboundPayload {
	return remote.OutboundPayload{
		Rows:      a.store.Entries(),
		Owners:    a.owners.List(),
		Types:     a.types.List(),
		Timestamp: a.now(),
	}
}

func (a *App) today() string { return dates.Today(a.now()) }

func (a *App) registerLabels(e journal.Entry) {
	if a.owners.Add(e.Owner) {
		a.log.Debug("new owner", zap.String("owner", strings.TrimSpace(e.Owner)))
	}
	if a.types.Add(e.Type) {
		a.log.Debug("new type", zap.String("type", strings.TrimSpace(e.Type)))
	}
}

// AddEntry appends e, defaulting a blank entry date to today, and returns
// its position.
func (a *App) AddEntry(ctx context.Context, e journal.Entry) (int, error) {
	if strings.TrimSpace(e.Date) == "" {
		e.Date = a.today()
	}
	a.registerLabels(e)
	pos := a.store.Append(e)
	return pos, a.commit(ctx)
}

// ImportEntries appends rows in order, e.g. from a CSV file.
func (a *App) ImportEntries(ctx context.Context, rows []journal.Entry) error {
	for _, e := range rows {
		a.registerLabels(e)
		a.store.Append(e)
	}
	return a.commit(ctx)
}

// UpdateEntry edits one cell. Entering a P/L on a row with no exit date
// fills the exit date with today.
func (a *App) UpdateEntry(ctx context.Context, pos int, f journal.Field, value string) error {
	if err := a.store.Update(pos, f, value); err != nil {
		return err
	}
	e, _ := a.store.Get(pos)
	switch f {
	case journal.FieldOwner, journal.FieldType:
		a.registerLabels(e)
	case journal.FieldPL:
		if strings.TrimSpace(value) != "" && strings.TrimSpace(e.ExitDate) == "" {
			if err := a.store.Fill(pos, journal.FieldExit, a.today()); err != nil {
				return err
			}
		}
	}
	return a.commit(ctx)
}

func (a *App) Entries() []journal.Entry { return a.store.Entries() }

func (a *App) Entry(pos int) (journal.Entry, error) { return a.store.Get(pos) }

// DeleteEntry moves a row to the recycle bin.
func (a *App) DeleteEntry(ctx context.Context, pos int) (journal.RecycleEntry, error) {
	re, err := a.store.Remove(pos)
	if err != nil {
		return re, err
	}
	return re, a.commit(ctx)
}

// UndoDelete restores the last deleted row once.
func (a *App) UndoDelete(ctx context.Context) (int, error) {
	pos, err := a.store.UndoRemove()
	if err != nil {
		return pos, err
	}
	return pos, a.commit(ctx)
}

func (a *App) Bin() []journal.RecycleEntry { return a.store.Bin() }

func (a *App) RestoreFromBin(ctx context.Context, i int) (int, error) {
	pos, err := a.store.Restore(i)
	if err != nil {
		return pos, err
	}
	return pos, a.commit(ctx)
}

func (a *App) DeleteForever(ctx context.Context, i int) error {
	if err := a.store.DeleteForever(i); err != nil {
		return err
	}
	return a.commit(ctx)
}

func (a *App) EmptyBin(ctx context.Context) error {
	a.store.EmptyBin()
	return a.commit(ctx)
}

// Sort orders the table by f. Sorting the same column again flips the
// direction.
func (a *App) Sort(ctx context.Context, f journal.Field) error {
	desc := false
	if a.sort.Active && a.sort.Field == f {
		desc = !a.sort.Desc
	}
	return a.SortBy(ctx, f, desc)
}

// SortBy orders the table by f in the given direction.
func (a *App) SortBy(ctx context.Context, f journal.Field, desc bool) error {
	a.store.SortBy(f, desc)
	a.sort = SortState{Field: f, Desc: desc, Active: true}
	return a.commit(ctx)
}

// SetFilter sets one column filter. Filters are view state and are not
// persisted.
func (a *App) SetFilter(f journal.Field, text string) {
	a.filter.Set(f, text)
	a.refresh()
}

func (a *App) ClearFilters() {
	a.filter.Clear()
	a.refresh()
}

// SetMinimizePastMonths toggles the rule hiding settled rows from earlier
// months.
func (a *App) SetMinimizePastMonths(on bool) {
	if on {
		a.filter.Rule = filter.MinimizePastMonths{}
	} else {
		a.filter.Rule = nil
	}
	a.refresh()
}

func (a *App) SetExcludeCurrentMonth(on bool) {
	a.excludeCurrentMonth = on
	a.refresh()
}

// Heatmap lays the visible daily totals over the months of the range.
func (a *App) Heatmap(spec calendar.Spec) (calendar.Range, []calendar.Month, error) {
	r, err := calendar.Resolve(spec, a.now())
	if err != nil {
		return r, nil, err
	}
	return r, calendar.Heatmap(r, report.DailyTotals(a.view.Snapshot.Rows)), nil
}
