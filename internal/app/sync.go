package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/pnlreport/journal"
	"github.com/rustyeddy/pnlreport/remote"
)

// PullRemote replaces rows, portfolio rows, owners and types with the
// remote copy. Nothing changes unless confirmed is set, the fetch succeeds
// and the copy is saved. The recycle bin is kept.
func (a *App) PullRemote(ctx context.Context, confirmed bool) (remote.InboundPayload, error) {
	if !confirmed {
		return remote.InboundPayload{}, ErrNotConfirmed
	}
	if a.source == nil {
		return remote.InboundPayload{}, remote.ErrNoEndpoint
	}

	p, err := a.source.Fetch(ctx)
	if err != nil {
		a.log.Warn("sync pull failed", zap.Error(err))
		return p, fmt.Errorf("pull: %w", err)
	}

	st := journal.State{
		Rows:        a.store.WithIDs(p.Rows),
		Bin:         a.store.Bin(),
		Owners:      p.Owners,
		Types:       p.Types,
		Portfolio:   p.PortfolioRows,
		Initialized: true,
	}
	if err := a.db.SaveState(ctx, st); err != nil {
		a.log.Error("save pulled journal", zap.Error(err))
		return p, fmt.Errorf("save journal: %w", err)
	}

	a.apply(st)
	a.sort = SortState{}
	a.log.Info("restored from remote",
		zap.Int("rows", len(p.Rows)),
		zap.Int("portfolio", len(p.PortfolioRows)))
	a.refresh()
	return p, nil
}
