package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pnlreport/internal/app"
	"github.com/rustyeddy/pnlreport/internal/cli/config"
)

func newBinCmd(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bin",
		Short: "Inspect and manage the recycle bin",
		Long: `Deleted rows wait in the recycle bin, most recent first.

Subcommands:
  list     - Show the bin
  restore  - Put a bin item back at the end of the table
  purge    - Erase one bin item for good
  empty    - Erase every bin item`,
	}

	var yes bool

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the recycle bin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				st := newStyles(rc.NoColor)
				bin := s.App.Bin()
				if len(bin) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), st.dim.Render("Recycle bin is empty."))
					return nil
				}
				rows := make([][]string, len(bin))
				for i, b := range bin {
					pl := st.dim.Render("--")
					if v, ok := b.Amount(); ok {
						pl = st.money(v)
					}
					rows[i] = []string{
						strconv.Itoa(i + 1),
						b.DeletedAt.Local().Format("2006-01-02 15:04"),
						b.Date, b.Owner, b.Type, b.ExitDate, pl, b.Remark,
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(),
					st.table([]string{"#", "Deleted", "Date", "Owner", "Type", "Exit", "P/L", "Remark"}, rows))
				return nil
			})
		},
	}

	restore := &cobra.Command{
		Use:   "restore <item>",
		Short: "Restore a bin item to the end of the table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseRow(args[0])
			if err != nil {
				return err
			}
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				pos, err := s.App.RestoreFromBin(ctx, i)
				if err != nil {
					return fmt.Errorf("restore: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Restored as row %d\n", pos+1)
				return nil
			})
		},
	}

	purge := &cobra.Command{
		Use:   "purge <item>",
		Short: "Erase one bin item permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseRow(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("purge: %w (pass --yes)", app.ErrNotConfirmed)
			}
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				if err := s.App.DeleteForever(ctx, i); err != nil {
					return fmt.Errorf("purge: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Erased bin item %d\n", i+1)
				return nil
			})
		},
	}

	empty := &cobra.Command{
		Use:   "empty",
		Short: "Erase every bin item permanently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("empty bin: %w (pass --yes)", app.ErrNotConfirmed)
			}
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				n := len(s.App.Bin())
				if err := s.App.EmptyBin(ctx); err != nil {
					return fmt.Errorf("empty bin: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Erased %d bin items\n", n)
				return nil
			})
		},
	}

	purge.Flags().BoolVar(&yes, "yes", false, "confirm the purge")
	empty.Flags().BoolVar(&yes, "yes", false, "confirm emptying the bin")

	cmd.AddCommand(list, restore, purge, empty)
	return cmd
}
