package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pnlreport/internal/app"
	"github.com/rustyeddy/pnlreport/internal/cli/config"
	"github.com/rustyeddy/pnlreport/journal"
	"github.com/rustyeddy/pnlreport/report"
)

// parseRow turns a 1-based serial number into a store position.
func parseRow(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad row number %q", arg)
	}
	return n - 1, nil
}

func newAddCmd(rc *config.RootConfig) *cobra.Command {
	var e journal.Entry

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a trade row",
		Long: `Append a trade row. The entry date defaults to today.

Examples:
  pnl add --owner Alice --type Intraday --pl 1250
  pnl add --date 15/02/2026 --owner Bob --type F&O --exit 2026-02-20 --pl -300 --remark "gap down"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				pos, err := s.App.AddEntry(ctx, e)
				if err != nil {
					return fmt.Errorf("add: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Added row %d\n", pos+1)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&e.Date, "date", "", "entry date (default today)")
	cmd.Flags().StringVar(&e.Owner, "owner", "", "owner label")
	cmd.Flags().StringVar(&e.Type, "type", "", "instrument type label")
	cmd.Flags().StringVar(&e.ExitDate, "exit", "", "exit date")
	cmd.Flags().StringVar(&e.PL, "pl", "", "profit or loss")
	cmd.Flags().StringVar(&e.Remark, "remark", "", "free text remark")
	return cmd
}

func newEditCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <row> <column> <value>",
		Short: "Change one cell of a row",
		Long: `Change one cell. Columns: date, owner, type, exit, pl, remark.
Entering a P/L on a row without an exit date fills the exit date with today.

Example:
  pnl edit 3 pl 420`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseRow(args[0])
			if err != nil {
				return err
			}
			f, err := journal.ParseField(args[1])
			if err != nil {
				return err
			}
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				if err := s.App.UpdateEntry(ctx, pos, f, args[2]); err != nil {
					return fmt.Errorf("edit: %w", err)
				}
				e, _ := s.App.Entry(pos)
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Row %d %s\n", pos+1, e.EditLabel())
				return nil
			})
		},
	}
}

func newShowCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show <row>",
		Short: "Print one row as stored, as an Org-mode entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseRow(args[0])
			if err != nil {
				return err
			}
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				e, err := s.App.Entry(pos)
				if err != nil {
					return fmt.Errorf("show: %w", err)
				}
				stored, err := s.StoredEntry(ctx, e.ID)
				if err != nil {
					return fmt.Errorf("show: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), journal.FormatEntryOrg(stored))
				return nil
			})
		},
	}
}

func newDeleteCmd(rc *config.RootConfig) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <row>",
		Short: "Move a row to the recycle bin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseRow(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("delete row %d: %w (pass --yes)", pos+1, app.ErrNotConfirmed)
			}
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				re, err := s.App.DeleteEntry(ctx, pos)
				if err != nil {
					return fmt.Errorf("delete: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Moved row %d (%s %s %s) to the bin. Run `pnl undo` to restore it.\n",
					pos+1, orDash(re.Date), orDash(re.Owner), orDash(re.PL))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the delete")
	return cmd
}

func newUndoCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Restore the last deleted row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				pos, err := s.App.UndoDelete(ctx)
				if err != nil {
					return fmt.Errorf("undo: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Restored as row %d\n", pos+1)
				return nil
			})
		},
	}
}

func newListCmd(rc *config.RootConfig) *cobra.Command {
	var (
		filters  []string
		minimize bool
		sortBy   string
		desc     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the journal table",
		Long: `Show the journal table with the running cumulative P/L.

Filters are case-insensitive substrings, one per column, combined with AND.
--sort reorders the stored table; sorting the same column again flips the
direction unless --desc is given.

Examples:
  pnl list --filter owner=ali --filter type=f&o
  pnl list --minimize
  pnl list --sort pl --desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				for _, f := range filters {
					col, text, ok := strings.Cut(f, "=")
					if !ok {
						return fmt.Errorf("bad filter %q (want column=text)", f)
					}
					field, err := journal.ParseField(col)
					if err != nil {
						return err
					}
					s.App.SetFilter(field, text)
				}
				if cmd.Flags().Changed("minimize") {
					s.App.SetMinimizePastMonths(minimize)
				}
				if sortBy != "" {
					field, err := journal.ParseField(sortBy)
					if err != nil {
						return err
					}
					if cmd.Flags().Changed("desc") {
						err = s.App.SortBy(ctx, field, desc)
					} else {
						err = s.App.Sort(ctx, field)
					}
					if err != nil {
						return fmt.Errorf("sort: %w", err)
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderRows(newStyles(rc.NoColor), s.App.View().Snapshot))
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "column=text filter (repeatable)")
	cmd.Flags().BoolVar(&minimize, "minimize", false, "hide settled rows from past months (overrides config)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort the table by column")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func renderRows(st styles, snap report.Snapshot) string {
	var rows [][]string
	for i, r := range snap.Rows {
		if !r.Visible {
			continue
		}
		e := r.Entry
		pl := st.dim.Render("--")
		if r.HasPL {
			pl = st.money(r.PL)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Date, e.Owner, e.Type, e.ExitDate, pl, e.Remark,
			st.cell(snap.Cumulative[i]),
			e.EditLabel(),
		})
	}
	if len(rows) == 0 {
		return st.dim.Render("No rows.")
	}
	out := st.table([]string{"#", "Date", "Owner", "Type", "Exit", "P/L", "Remark", "Cum.", "Edited"}, rows)
	return out + "\n" + fmt.Sprintf("Visible total: %s", st.money(snap.VisibleTotal))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "--"
	}
	return s
}
