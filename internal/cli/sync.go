package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pnlreport/internal/cli/config"
	"github.com/rustyeddy/pnlreport/remote"
)

func newSyncCmd(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push to or pull from the remote sheet",
		Long: `Exchange the journal with the endpoint configured as sync.url
(or PNL_SYNC_URL).

Subcommands:
  push  - Send rows, owners and types now
  pull  - Replace rows, portfolio, owners and types with the remote copy

With sync.auto_sync on, every change is pushed after a short quiet period.`,
	}

	push := &cobra.Command{
		Use:   "push",
		Short: "Send the current rows to the remote endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				if s.Client.URL == "" {
					return remote.ErrNoEndpoint
				}
				p := s.App.Payload()
				if err := s.Client.Push(ctx, p); err != nil {
					return fmt.Errorf("push: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Pushed %d rows\n", len(p.Rows))
				return nil
			})
		},
	}

	var yes bool
	pull := &cobra.Command{
		Use:   "pull",
		Short: "Overwrite local data with the remote copy",
		Long: `Replace all rows, portfolio rows, owners and types with the remote
copy. The recycle bin is kept. Local data is untouched if the fetch fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				p, err := s.App.PullRemote(ctx, yes)
				if err != nil {
					if !yes {
						return fmt.Errorf("pull: %w (pass --yes to overwrite local data)", err)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Restored %d rows and %d portfolio rows\n",
					len(p.Rows), len(p.PortfolioRows))
				return nil
			})
		},
	}
	pull.Flags().BoolVar(&yes, "yes", false, "confirm overwriting local data")

	cmd.AddCommand(push, pull)
	return cmd
}
