package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rustyeddy/pnlreport/journal"
)

// LabelKind selects the owner or the type dropdown source.
type LabelKind int

const (
	Owners LabelKind = iota
	Types
)

func (k LabelKind) String() string {
	if k == Types {
		return "type"
	}
	return "owner"
}

// ParseLabelKind accepts "owner(s)" and "type(s)".
func ParseLabelKind(s string) (LabelKind, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "owner":
		return Owners, nil
	case "type":
		return Types, nil
	}
	return Owners, fmt.Errorf("unknown label kind %q (want owner|type)", s)
}

func (a *App) labels(k LabelKind) *journal.Labels {
	if k == Types {
		return a.types
	}
	return a.owners
}

func (a *App) Labels(k LabelKind) []string { return a.labels(k).List() }

// MatchLabels lists the labels of kind k containing text.
func (a *App) MatchLabels(k LabelKind, text string) []string {
	return a.labels(k).Match(text)
}

// AddLabel registers value and reports whether it was new.
func (a *App) AddLabel(ctx context.Context, k LabelKind, value string) (bool, error) {
	if !a.labels(k).Add(value) {
		return false, nil
	}
	return true, a.commit(ctx)
}

// RemoveLabel drops value from the dropdown source. Rows that use it keep
// their text.
func (a *App) RemoveLabel(ctx context.Context, k LabelKind, value string) error {
	if !a.labels(k).Remove(value) {
		return fmt.Errorf("%s %q: %w", k, value, journal.ErrNotFound)
	}
	return a.commit(ctx)
}

// DrillDown lists the rows whose trimmed owner or type equals value, in
// table order, together with their positions.
func (a *App) DrillDown(k LabelKind, value string) ([]int, []journal.Entry) {
	value = strings.TrimSpace(value)
	var pos []int
	var out []journal.Entry
	for i, e := range a.store.Entries() {
		cell := e.Owner
		if k == Types {
			cell = e.Type
		}
		if strings.TrimSpace(cell) == value {
			pos = append(pos, i)
			out = append(out, e)
		}
	}
	return pos, out
}

func (a *App) Portfolio() []journal.PortfolioEntry { return a.portfolio.Entries() }

func (a *App) AddPortfolio(ctx context.Context, p journal.PortfolioEntry) (int, error) {
	pos := a.portfolio.Append(p)
	return pos, a.commit(ctx)
}

func (a *App) UpdatePortfolio(ctx context.Context, pos int, p journal.PortfolioEntry) error {
	if err := a.portfolio.Update(pos, p); err != nil {
		return err
	}
	return a.commit(ctx)
}

func (a *App) RemovePortfolio(ctx context.Context, pos int) error {
	if err := a.portfolio.Remove(pos); err != nil {
		return err
	}
	return a.commit(ctx)
}
